// Package compose 把背景、头像、图表与格式化后的内容合成为一张状态卡片。
package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/ByLCY/visistat/asset"
	"github.com/ByLCY/visistat/avatar"
	"github.com/ByLCY/visistat/blurcache"
	"github.com/ByLCY/visistat/chart"
	"github.com/ByLCY/visistat/config"
	"github.com/ByLCY/visistat/layout"
	"github.com/ByLCY/visistat/renderer"
	canvasrenderer "github.com/ByLCY/visistat/renderer/canvas"
	"github.com/ByLCY/visistat/status"
)

// 占位头像使用的字母。
const placeholderLetter = "A"

// Card 是一次合成的结果，附带各项资源的加载情况。
type Card struct {
	Image      image.Image
	Layout     *layout.Result
	Background asset.Status
	Avatar     asset.Status
	Blur       blurcache.Status
}

// Save 将卡片写为 PNG，必要时创建目录。
func (c *Card) Save(path string) error {
	if c == nil || c.Image == nil {
		return fmt.Errorf("卡片为空")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := imaging.Save(c.Image, path); err != nil {
		return fmt.Errorf("保存图片 %s 失败: %w", path, err)
	}
	return nil
}

// Composer 持有一份配置以及渲染所需的协作者，可重复调用 Compose。
type Composer struct {
	cfg    *config.Config
	opts   layout.Options
	logger *log.Logger
	engine renderer.Engine
	charts chart.Renderer
	cache  *blurcache.Cache
}

// Option 配置 Composer。
type Option func(*Composer)

// WithLogger 指定日志输出。
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEngine 替换排版与渲染引擎。
func WithEngine(e renderer.Engine) Option {
	return func(c *Composer) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithChartRenderer 替换图表渲染器。
func WithChartRenderer(r chart.Renderer) Option {
	return func(c *Composer) {
		if r != nil {
			c.charts = r
		}
	}
}

// WithCache 替换模糊缓存。
func WithCache(cache *blurcache.Cache) Option {
	return func(c *Composer) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// New 校验配置并创建合成器。cfg 为空时使用默认配置。
func New(cfg *config.Config, opts ...Option) (*Composer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	layoutOpts, err := cfg.LayoutOptions()
	if err != nil {
		return nil, err
	}
	c := &Composer{cfg: cfg, opts: layoutOpts, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		// 字体路径已由 LayoutOptions 按 assets_dir 解析
		c.engine = canvasrenderer.NewRenderer("")
	}
	if c.charts == nil {
		pie := chart.NewPie()
		pie.TextColor = layoutOpts.Palette.ChartText.RGBA()
		c.charts = pie
	}
	if c.cache == nil {
		c.cache = blurcache.New(cfg.CacheDirectory(),
			blurcache.WithBaseDir(cfg.AssetsDir),
			blurcache.WithLogger(c.logger),
		)
	}
	return c, nil
}

// Cache 返回合成器使用的模糊缓存。
func (c *Composer) Cache() *blurcache.Cache { return c.cache }

// Compose 渲染一张卡片。任何阶段的错误或 panic 都以 *RenderError 返回，且不返回半成品图片。
func (c *Composer) Compose(ctx context.Context, snap status.Snapshot) (card *Card, err error) {
	stage := StageBackground
	defer func() {
		if r := recover(); r != nil {
			card = nil
			err = &RenderError{Stage: stage, Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()
	fail := func(e error) (*Card, error) {
		return nil, &RenderError{Stage: stage, Err: e}
	}
	enter := func(s Stage) error {
		stage = s
		return ctx.Err()
	}

	if err := enter(StageBackground); err != nil {
		return fail(err)
	}
	bg := c.background()
	card = &Card{Background: bg.status, Blur: bg.blur}

	if err := enter(StageMeasure); err != nil {
		return fail(err)
	}
	rc, err := layout.NewRenderContext(bg.width, bg.height, c.opts)
	if err != nil {
		return fail(err)
	}
	content := status.BuildContent(snap, c.cfg.ContentOptions())
	manifest, err := layout.Measure(rc, content, c.engine)
	if err != nil {
		return fail(err)
	}
	c.logger.Debug("布局测量完成",
		"orientation", rc.Orientation,
		"size", fmt.Sprintf("%dx%d", rc.Width, rc.Height),
		"rows", len(manifest.Rows),
		"chart", manifest.ChartSize,
	)

	if err := enter(StageAvatar); err != nil {
		return fail(err)
	}
	var assets layout.Assets
	assets.Avatar, card.Avatar, err = c.avatar(manifest.AvatarSize())
	if err != nil {
		return fail(err)
	}

	if err := enter(StageCharts); err != nil {
		return fail(err)
	}
	palette := rc.Palette
	for i, spec := range manifest.Content.Charts {
		img, err := c.charts.Render(spec.Value, palette.AccentDark.RGBA(), palette.AccentLight.RGBA(), manifest.ChartSize)
		if err != nil {
			return fail(fmt.Errorf("生成图表 %s 失败: %w", spec.Label, err))
		}
		assets.Charts[i] = img
	}

	if err := enter(StagePlace); err != nil {
		return fail(err)
	}
	result, err := layout.Place(manifest, assets)
	if err != nil {
		return fail(err)
	}

	if err := enter(StageRender); err != nil {
		return fail(err)
	}
	img, err := c.engine.Render(result, bg.image)
	if err != nil {
		return fail(err)
	}
	card.Image = img
	card.Layout = result
	return card, nil
}

type backgroundResult struct {
	image         image.Image
	width, height int
	status        asset.Status
	blur          blurcache.Status
}

// background 依次尝试：缓存的模糊图 → 现场模糊 → 原图 → 纯色。画布尺寸取背景图尺寸，
// 没有背景图时取配置尺寸。
func (c *Composer) background() backgroundResult {
	res := backgroundResult{
		width:  c.cfg.Canvas.Width,
		height: c.cfg.Canvas.Height,
		status: asset.FellBack,
		blur:   blurcache.StatusSkipped,
	}
	source := c.cfg.Background.ImagePath
	if source == "" {
		return res
	}
	data, err := os.ReadFile(c.cfg.Resolve(source))
	if err != nil {
		c.logger.Warn("背景图不可用，使用纯色背景", "path", source, "err", err)
		return res
	}
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		c.logger.Warn("背景图无法解码，使用纯色背景", "path", source, "err", err)
		return res
	}
	b := src.Bounds()
	res.width, res.height = b.Dx(), b.Dy()
	res.image = src
	res.status = asset.Loaded

	radius := c.cfg.Background.BlurRadius
	if radius <= 0 {
		return res
	}
	resolved := c.cache.ResolveData(source, data, radius)
	res.blur = resolved.Status
	switch {
	case resolved.Image != nil:
		res.image = resolved.Image
	case resolved.Status == blurcache.StatusUnavailable:
		res.image = blurcache.GaussianBlur(src, radius)
	}
	return res
}

func (c *Composer) avatar(size int) (image.Image, asset.Status, error) {
	loaded := avatar.Load(c.cfg.Resolve(c.cfg.User.FixedAvatarPath), size, placeholderLetter)
	if loaded.Err != nil {
		c.logger.Debug("头像不可用，使用占位头像", "err", loaded.Err)
	}
	img, err := avatar.Prepare(loaded.Value, size, placeholderLetter)
	if err != nil {
		return nil, asset.Failed, fmt.Errorf("处理头像失败: %w", err)
	}
	return img, loaded.Status, nil
}
