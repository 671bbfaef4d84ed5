// Package blurcache 缓存背景图的模糊结果。缓存只有一个槽位：记录文件描述
// 当前的模糊图，源图、半径或源图内容任一变化都会重新计算并覆盖。
package blurcache

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/zeebo/blake3"
)

// RecordFile 是缓存记录的文件名。
const RecordFile = "layout_cache.json"

const cachedPrefix = "cached_blurred_"

// Record 是持久化的缓存槽位。字段名沿用旧版缓存文件，旧记录没有 Fingerprint。
type Record struct {
	BlurredPath string `json:"blurred_bg_path"`
	Source      string `json:"source_image"`
	Radius      int    `json:"blur_radius"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Status 描述一次 Resolve 的结果。
type Status int

const (
	StatusSkipped     Status = iota // 半径为 0 或未配置背景
	StatusHit                       // 复用缓存
	StatusComputed                  // 重新计算
	StatusUnavailable               // 无法得到模糊图
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusHit:
		return "hit"
	case StatusComputed:
		return "computed"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// MarshalText 让状态在日志与 JSON 中以名称出现。
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Resolution 是 Resolve 的返回值。StatusComputed 且 Err 非空表示模糊图可用但未能写入缓存。
type Resolution struct {
	Path   string
	Image  image.Image
	Status Status
	Err    error
}

// BlurFunc 对图片做半径为 radius 的模糊。
type BlurFunc func(img image.Image, radius int) image.Image

// GaussianBlur 是默认的模糊实现。
func GaussianBlur(img image.Image, radius int) image.Image {
	return imaging.Blur(img, float64(radius))
}

// Cache 管理 dir 下的单槽位模糊缓存。
type Cache struct {
	dir     string
	baseDir string
	blur    BlurFunc
	logger  *log.Logger
}

// Option 配置 Cache。
type Option func(*Cache)

// WithBlur 替换模糊实现，测试中用于计数。
func WithBlur(fn BlurFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.blur = fn
		}
	}
}

// WithLogger 指定告警输出的 logger。
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBaseDir 指定相对源图路径的解析目录。
func WithBaseDir(dir string) Option {
	return func(c *Cache) { c.baseDir = dir }
}

// New 创建缓存，dir 不存在时在首次写入前创建。
func New(dir string, opts ...Option) *Cache {
	c := &Cache{dir: dir, blur: GaussianBlur, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir 返回缓存目录。
func (c *Cache) Dir() string { return c.dir }

// Resolve 返回 source 按 radius 模糊后的图片。任何失败都体现在返回值中，不会中断渲染。
func (c *Cache) Resolve(source string, radius int) Resolution {
	if radius <= 0 || strings.TrimSpace(source) == "" {
		return Resolution{Status: StatusSkipped}
	}

	data, err := os.ReadFile(c.resolve(source))
	if err != nil {
		return c.unavailable(source, fmt.Errorf("读取背景图失败: %w", err))
	}
	return c.ResolveData(source, data, radius)
}

// ResolveData 与 Resolve 相同，但直接使用调用方已读入的源图内容，不再读取 source。
func (c *Cache) ResolveData(source string, data []byte, radius int) Resolution {
	if radius <= 0 || strings.TrimSpace(source) == "" {
		return Resolution{Status: StatusSkipped}
	}
	fp := fingerprint(data)

	if res, ok := c.lookup(source, radius, fp); ok {
		return res
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return c.unavailable(source, fmt.Errorf("解码背景图失败: %w", err))
	}
	blurred := c.blur(src, radius)
	if blurred == nil {
		return c.unavailable(source, errors.New("模糊结果为空"))
	}

	name := CachedName(source, radius)
	path := filepath.Join(c.dir, name)
	if err := c.store(path, blurred, Record{BlurredPath: name, Source: source, Radius: radius, Fingerprint: fp}); err != nil {
		c.logger.Warn("写入模糊缓存失败", "source", source, "err", err)
		return Resolution{Image: blurred, Status: StatusComputed, Err: err}
	}
	c.logger.Debug("已更新模糊缓存", "source", source, "radius", radius, "path", path)
	return Resolution{Path: path, Image: blurred, Status: StatusComputed}
}

// Record 读取当前槽位。没有记录时 ok 为 false 且 err 为空。
func (c *Cache) Record() (rec Record, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(c.dir, RecordFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("读取缓存记录失败: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("缓存记录损坏: %w", err)
	}
	return rec, true, nil
}

// Clear 删除缓存记录及其指向的模糊图，不存在时不报错。
func (c *Cache) Clear() error {
	rec, ok, _ := c.Record()
	if ok && rec.BlurredPath != "" {
		if err := removeIfExists(filepath.Join(c.dir, filepath.Base(rec.BlurredPath))); err != nil {
			return err
		}
	}
	return removeIfExists(filepath.Join(c.dir, RecordFile))
}

// CachedName 返回模糊图文件名：cached_blurred_<源文件名>_<半径>.png。
func CachedName(source string, radius int) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%s_%d.png", cachedPrefix, stem, radius)
}

func (c *Cache) lookup(source string, radius int, fp string) (Resolution, bool) {
	rec, ok, err := c.Record()
	if err != nil {
		c.logger.Warn("忽略损坏的缓存记录", "err", err)
		return Resolution{}, false
	}
	if !ok || rec.Source != source || rec.Radius != radius {
		return Resolution{}, false
	}
	if rec.Fingerprint != "" && rec.Fingerprint != fp {
		return Resolution{}, false
	}
	path := filepath.Join(c.dir, filepath.Base(rec.BlurredPath))
	img, err := imaging.Open(path)
	if err != nil {
		c.logger.Debug("缓存记录指向的文件不可用", "path", path, "err", err)
		return Resolution{}, false
	}
	return Resolution{Path: path, Image: img, Status: StatusHit}, true
}

func (c *Cache) store(path string, img image.Image, rec Record) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("创建缓存目录失败: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("编码模糊图失败: %w", err)
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化缓存记录失败: %w", err)
	}
	if err := writeAtomic(filepath.Join(c.dir, RecordFile), data); err != nil {
		return err
	}
	c.prune()
	return nil
}

// prune 删除当前记录之外的所有模糊图，记录在写入后重新读取。
func (c *Cache) prune() {
	rec, ok, err := c.Record()
	if err != nil || !ok {
		return
	}
	keep := filepath.Base(rec.BlurredPath)
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == keep || !strings.HasPrefix(name, cachedPrefix) || filepath.Ext(name) != ".png" {
			continue
		}
		if err := removeIfExists(filepath.Join(c.dir, name)); err != nil {
			c.logger.Debug("清理旧模糊图失败", "path", name, "err", err)
		}
	}
}

func (c *Cache) unavailable(source string, err error) Resolution {
	c.logger.Warn("背景模糊不可用", "source", source, "err", err)
	return Resolution{Status: StatusUnavailable, Err: err}
}

func (c *Cache) resolve(source string) string {
	if filepath.IsAbs(source) || c.baseDir == "" {
		return source
	}
	return filepath.Join(c.baseDir, source)
}

func fingerprint(data []byte) string {
	h := blake3.New()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// writeAtomic 先写临时文件再重命名，读者只会看到旧内容或新内容。
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("重命名到 %s 失败: %w", path, err)
	}
	success = true
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("删除 %s 失败: %w", path, err)
	}
	return nil
}
