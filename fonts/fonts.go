// Package fonts 按 配置字体 → 系统中文字体 → 内置 Go 字体 的顺序解析字体数据。
package fonts

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/visistat/asset"
)

// 内置字体名，可写作 "embed:regular" 或 "embed:bold"。
const (
	EmbedRegular = "embed:regular"
	EmbedBold    = "embed:bold"
)

// SystemCandidates 是未配置字体或配置字体不可用时尝试的系统中文字体。
var SystemCandidates = []string{
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/usr/share/fonts/wqy-zenhei/wqy-zenhei.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Medium.ttc",
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\msyh.ttc`,
}

var errNoSystemFont = errors.New("未找到可用的系统字体")

// Embedded 返回内置字体的字节数据。
func Embedded(name string) ([]byte, error) {
	switch strings.TrimPrefix(name, "embed:") {
	case "regular", "":
		return goregular.TTF, nil
	case "bold":
		return gobold.TTF, nil
	default:
		return nil, fmt.Errorf("内置字体 %s 不存在", name)
	}
}

// Load 解析 path 指向的字体。path 为空或不可读时依次回退到系统字体与内置字体，
// 回退结果的 Err 记录配置字体失败的原因。
func Load(path string) asset.Result[[]byte] {
	return load(path, SystemCandidates)
}

func load(path string, candidates []string) asset.Result[[]byte] {
	var cause error
	if path != "" {
		data, err := read(path)
		if err == nil {
			return asset.Ok(data)
		}
		cause = err
	}
	if data, err := firstReadable(candidates); err == nil {
		return asset.Fallback(data, cause)
	}
	return asset.Fallback(goregular.TTF, cause)
}

func read(path string) ([]byte, error) {
	if strings.HasPrefix(path, "embed:") {
		return Embedded(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("字体文件 %s 为空", path)
	}
	return data, nil
}

func firstReadable(candidates []string) ([]byte, error) {
	for _, p := range candidates {
		if data, err := os.ReadFile(p); err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, errNoSystemFont
}
