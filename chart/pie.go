// Package chart renders the square percentage glyphs shown beside the card text.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/visistat/fonts"
	"github.com/ByLCY/visistat/layout"
)

// Renderer turns a 0-100 value into a square RGBA glyph of side size.
type Renderer interface {
	Render(value float64, fill, track color.Color, size int) (image.Image, error)
}

// Pie draws a filled pie: the value slice in fill starting at twelve o'clock
// and running counter-clockwise, the remainder in track, and the percentage
// centred on top.
type Pie struct {
	TextColor color.Color
	Font      []byte  // defaults to the bundled bold face
	TextRatio float64 // label size relative to the glyph side

	once   sync.Once
	family *canvas.FontFamily
	err    error
}

var _ Renderer = (*Pie)(nil)

// NewPie returns a pie renderer with white percentage text.
func NewPie() *Pie {
	return &Pie{TextColor: color.White, TextRatio: 0.09}
}

// Render implements Renderer.
func (p *Pie) Render(value float64, fill, track color.Color, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chart size must be positive, got %d", size)
	}
	if math.IsNaN(value) {
		value = 0
	}
	value = math.Max(0, math.Min(100, value))

	s := float64(size)
	r := s / 2
	c := canvas.New(s, s)
	ctx := canvas.NewContext(c)

	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetFillColor(track)
	ctx.DrawPath(r, r, disc(r))

	ctx.SetFillColor(fill)
	switch {
	case value >= 100:
		ctx.DrawPath(r, r, disc(r))
	case value > 0:
		ctx.DrawPath(r, r, wedge(r, 90, 90+360*value/100))
	}

	if err := p.drawLabel(ctx, fmt.Sprintf("%.1f%%", value), r, s); err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

func (p *Pie) drawLabel(ctx *canvas.Context, text string, r, s float64) error {
	family, err := p.fontFamily()
	if err != nil {
		return err
	}
	ratio := p.TextRatio
	if ratio <= 0 {
		ratio = 0.09
	}
	var col color.Color = color.White
	if p.TextColor != nil {
		col = p.TextColor
	}
	face := family.Face(layout.PxToPt(s*ratio), col, canvas.FontBold, canvas.FontNormal)
	baseline := r - face.Metrics().CapHeight/2
	ctx.DrawText(r, baseline, canvas.NewTextLine(face, text, canvas.Center))
	return nil
}

func (p *Pie) fontFamily() (*canvas.FontFamily, error) {
	p.once.Do(func() {
		data := p.Font
		if len(data) == 0 {
			data, p.err = fonts.Embedded(fonts.EmbedBold)
			if p.err != nil {
				return
			}
		}
		family := canvas.NewFontFamily("chart")
		if p.err = family.LoadFont(data, 0, canvas.FontBold); p.err != nil {
			return
		}
		p.family = family
	})
	return p.family, p.err
}

// disc is a full circle of radius r centred on the origin.
func disc(r float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(r, 0)
	p.Arc(r, r, 0, 0, 180)
	p.Arc(r, r, 0, 180, 360)
	p.Close()
	return p
}

// wedge is the slice between theta0 and theta1 (degrees, counter-clockwise).
func wedge(r, theta0, theta1 float64) *canvas.Path {
	rad := theta0 * math.Pi / 180
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(r*math.Cos(rad), r*math.Sin(rad))
	p.Arc(r, r, 0, theta0, theta1)
	p.Close()
	return p
}
