package canvasrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/visistat/asset"
	"github.com/ByLCY/visistat/fonts"
	"github.com/ByLCY/visistat/layout"
)

var body = layout.FontSpec{Src: fonts.EmbedRegular, Size: 20}

func TestMeasureScalesWithText(t *testing.T) {
	r := NewRenderer("")
	short, err := r.Measure("hello", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := r.Measure("hello world", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.W <= 0 || long.W <= short.W {
		t.Fatalf("width should grow with text: short=%g long=%g", short.W, long.W)
	}
	if short.H <= 0 || short.H != long.H {
		t.Fatalf("height should come from font metrics: %g vs %g", short.H, long.H)
	}
	empty, err := r.Measure("", body)
	if err != nil || empty.W != 0 {
		t.Fatalf("empty text should measure zero width, got %g (%v)", empty.W, err)
	}
}

func TestMeasureIsProportionalToFontSize(t *testing.T) {
	r := NewRenderer("")
	small, _ := r.Measure("status", body)
	big, _ := r.Measure("status", layout.FontSpec{Src: body.Src, Size: 40})
	if ratio := big.W / small.W; ratio < 1.95 || ratio > 2.05 {
		t.Fatalf("doubling the font size should double the width, ratio=%g", ratio)
	}
}

func TestMissingFontFallsBack(t *testing.T) {
	r := NewRenderer(t.TempDir())
	font := layout.FontSpec{Src: "missing.ttf", Size: 16}
	if _, err := r.Measure("abc", font); err != nil {
		t.Fatalf("missing font should fall back, got %v", err)
	}
	if st := r.FontStatus("missing.ttf"); st.Status != asset.FellBack || st.Err == nil {
		t.Fatalf("expected fell-back status with cause, got %v (%v)", st.Status, st.Err)
	}
	if st := r.FontStatus(fonts.EmbedRegular); st.Status != asset.Failed {
		t.Fatalf("unused font should report failed, got %v", st.Status)
	}
}

func TestMeasureRejectsZeroSize(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Measure("abc", layout.FontSpec{Src: fonts.EmbedRegular}); err == nil {
		t.Fatalf("zero font size should be rejected")
	}
}

func TestRenderKeepsCanvasSizeAndPastesImages(t *testing.T) {
	r := NewRenderer("")
	red := imaging.New(10, 10, color.NRGBA{R: 255, A: 255})
	res := &layout.Result{
		Width:  120,
		Height: 80,
		Texts: []layout.TextBox{
			{Content: "CPU", X: 60, Y: 5, Font: body, Color: layout.Color{R: 0, G: 0, B: 0}},
		},
		Images: []layout.ImageBox{
			{Kind: layout.ImageChart, X: 5, Y: 40, Width: 20, Height: 20, Image: red},
			{Kind: layout.ImageAvatar, X: 50, Y: 40, Width: 10, Height: 10},
		},
		Lines: []layout.Line{{X1: 0, Y1: 30, X2: 120, Y2: 30, Width: 2, Color: layout.Color{R: 0, G: 0, B: 255}}},
	}
	bg := imaging.New(120, 80, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := r.Render(res, bg)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Fatalf("output size should match canvas, got %v", b)
	}
	if c := color.NRGBAModel.Convert(out.At(15, 50)).(color.NRGBA); c.R < 200 || c.G > 50 {
		t.Fatalf("chart image should be pasted (scaled) at its box, got %+v", c)
	}
	if c := color.NRGBAModel.Convert(out.At(100, 30)).(color.NRGBA); c.B < 150 || c.R > 100 {
		t.Fatalf("separator should be drawn, got %+v", c)
	}
	if c := color.NRGBAModel.Convert(out.At(100, 70)).(color.NRGBA); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("untouched area should keep the background, got %+v", c)
	}
	if c := color.NRGBAModel.Convert(bg.At(15, 50)).(color.NRGBA); c.G != 255 {
		t.Fatalf("background must not be modified in place")
	}
}

func TestRenderWithoutBackgroundUsesPalette(t *testing.T) {
	r := NewRenderer("")
	palette := layout.DefaultPalette()
	palette.Background = layout.Color{R: 10, G: 20, B: 30}
	res := &layout.Result{
		Width:    40,
		Height:   30,
		Manifest: &layout.Manifest{Context: layout.RenderContext{Palette: palette}},
	}
	out, err := r.Render(res, nil)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if c := color.NRGBAModel.Convert(out.At(5, 5)).(color.NRGBA); c.R != 10 || c.G != 20 || c.B != 30 {
		t.Fatalf("expected palette background, got %+v", c)
	}
}

func TestRenderFitsMismatchedBackground(t *testing.T) {
	r := NewRenderer("")
	res := &layout.Result{Width: 64, Height: 32}
	out, err := r.Render(res, image.NewNRGBA(image.Rect(0, 0, 200, 200)))
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Fatalf("background should be fitted to the canvas, got %v", b)
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Render(nil, nil); err == nil {
		t.Fatalf("nil result should fail")
	}
	if _, err := r.Render(&layout.Result{}, nil); err == nil {
		t.Fatalf("zero-size result should fail")
	}
}
