package canvasrenderer

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/visistat/asset"
	"github.com/ByLCY/visistat/fonts"
	"github.com/ByLCY/visistat/layout"
	"github.com/ByLCY/visistat/renderer"
)

// Renderer measures and draws card text via github.com/tdewolff/canvas and
// composites the result onto a raster background.
//
// One canvas unit is one pixel: the vector layer is rasterized at one dot per
// unit, and pixel font sizes are converted to points at the font boundary.
type Renderer struct {
	baseDir string

	fontMu         sync.Mutex
	fontFamilies   map[string]*canvas.FontFamily
	fontStatus     map[string]asset.Result[[]byte]
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Engine   = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// NewRenderer creates a renderer resolving relative font paths against baseDir.
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{
		baseDir:      baseDir,
		fontFamilies: map[string]*canvas.FontFamily{},
		fontStatus:   map[string]asset.Result[[]byte]{},
	}
}

// Measure 实现 layout.Typesetter：宽度为字形前进宽度之和，高度为 ascent + descent，单位像素。
func (r *Renderer) Measure(text string, font layout.FontSpec) (layout.Size, error) {
	face, err := r.fontFace(font, color.Black)
	if err != nil {
		return layout.Size{}, err
	}
	m := face.Metrics()
	return layout.Size{W: face.TextWidth(text), H: m.Ascent + m.Descent}, nil
}

// FontStatus 报告某个字体来源最终是正常加载还是回退。未使用过的来源返回 Failed。
func (r *Renderer) FontStatus(src string) asset.Result[[]byte] {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if res, ok := r.fontStatus[src]; ok {
		return asset.Result[[]byte]{Status: res.Status, Err: res.Err}
	}
	return asset.Fail[[]byte](fmt.Errorf("字体 %q 尚未加载", src))
}

// Render 先将头像与图表贴到背景上，再把文字与分隔线作为一层矢量图栅格化后叠加。
func (r *Renderer) Render(result *layout.Result, background image.Image) (image.Image, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", result.Width, result.Height)
	}

	base := r.baseImage(result, background)
	for _, box := range result.Images {
		if box.Image == nil || box.Width <= 0 || box.Height <= 0 {
			continue
		}
		img := box.Image
		if b := img.Bounds(); b.Dx() != box.Width || b.Dy() != box.Height {
			img = imaging.Resize(img, box.Width, box.Height, imaging.Lanczos)
		}
		base = imaging.Overlay(base, img, image.Pt(box.X, box.Y), 1.0)
	}

	c := canvas.New(float64(result.Width), float64(result.Height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与布局一致，左上角为原点
	r.drawLines(ctx, result.Lines)
	for _, tb := range result.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return nil, err
		}
	}
	layer := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	return imaging.Overlay(base, layer, image.Pt(0, 0), 1.0), nil
}

func (r *Renderer) baseImage(result *layout.Result, background image.Image) *image.NRGBA {
	if background == nil {
		var fill color.Color = color.White
		if m := result.Manifest; m != nil {
			fill = m.Context.Palette.Background.RGBA()
		}
		return imaging.New(result.Width, result.Height, fill)
	}
	if b := background.Bounds(); b.Dx() != result.Width || b.Dy() != result.Height {
		return imaging.Fill(background, result.Width, result.Height, imaging.Center, imaging.Lanczos)
	}
	return imaging.Clone(background)
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	if tb.Content == "" {
		return nil
	}
	face, err := r.fontFace(tb.Font, tb.Color.RGBA())
	if err != nil {
		return err
	}
	// 基线位置：行顶部加上字体上升部
	baseline := float64(tb.Y) + face.Metrics().Ascent
	ctx.DrawText(float64(tb.X), baseline, canvas.NewTextLine(face, tb.Content, canvas.Left))
	return nil
}

// drawLines 绘制直线列表（像素单位）
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := float64(ln.Width)
		if w <= 0 {
			w = 1
		}
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(ln.Color.RGBA())
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(float64(ln.X2-ln.X1), float64(ln.Y2-ln.Y1))
		ctx.DrawPath(float64(ln.X1), float64(ln.Y1), p)
	}
}

func (r *Renderer) fontFace(font layout.FontSpec, col color.Color) (*canvas.FontFace, error) {
	if font.Size <= 0 {
		return nil, fmt.Errorf("字号无效: %g", font.Size)
	}
	family, err := r.ensureFontFamily(font.Src)
	if err != nil {
		return nil, err
	}
	return family.Face(layout.PxToPt(font.Size), col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(src string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[src]; ok {
		return family, nil
	}

	res := fonts.Load(r.resolve(src))
	family := canvas.NewFontFamily(familyName(src))
	if err := family.LoadFont(res.Value, 0, canvas.FontRegular); err != nil {
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, fmt.Errorf("加载字体 %q 失败: %w", src, err)
		}
		r.fontFamilies[src] = fallback
		r.fontStatus[src] = asset.Fallback[[]byte](nil, err)
		return fallback, nil
	}
	r.fontFamilies[src] = family
	r.fontStatus[src] = asset.Result[[]byte]{Status: res.Status, Err: res.Err}
	return family, nil
}

// fallback 返回内置 Go Regular 字体族，调用方需持有 fontMu。
func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Embedded(fonts.EmbedRegular)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("visistat-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

func (r *Renderer) resolve(src string) string {
	if src == "" || strings.HasPrefix(src, "embed:") || filepath.IsAbs(src) || r.baseDir == "" {
		return src
	}
	return filepath.Join(r.baseDir, src)
}

func familyName(src string) string {
	if src == "" {
		return "Body"
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}
