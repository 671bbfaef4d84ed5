package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeDebug 以缩进 JSON 写出摆放结果与测量清单，位图本身不输出。
func EncodeDebug(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("布局结果为空")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// WriteDebugJSON 将布局结果写入 path，必要时创建目录。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建调试文件失败: %w", err)
	}
	if err := EncodeDebug(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
