package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Typesetter 负责测量单行文本在指定字体下的像素宽高。
type Typesetter interface {
	Measure(text string, font FontSpec) (Size, error)
}

// Options 描述与画布尺寸无关的布局配置。
type Options struct {
	VerticalScale      float64
	HorizontalScale    float64
	MinChartVertical   int
	MinChartHorizontal int
	TitleFont          string // 用户名与标题
	ContentFont        string // 正文、图表标签
	Palette            Palette
	Labels             Labels
}

// DefaultOptions 返回缩放为 1、中文标签的默认配置。
func DefaultOptions() Options {
	return Options{
		VerticalScale:      1,
		HorizontalScale:    1,
		MinChartVertical:   24,
		MinChartHorizontal: 60,
		Palette:            DefaultPalette(),
		Labels:             LabelsZH,
	}
}

// Palette 是卡片使用的六种颜色。
type Palette struct {
	Background  Color `json:"background"`
	AccentDark  Color `json:"accentDark"`
	AccentLight Color `json:"accentLight"`
	Font        Color `json:"font"`
	TitleFont   Color `json:"titleFont"`
	ChartText   Color `json:"chartText"`
}

// DefaultPalette 与默认配置文件中的颜色一致。
func DefaultPalette() Palette {
	return Palette{
		Background:  Color{R: 0xff, G: 0xff, B: 0xff},
		AccentDark:  Color{R: 0x4c, G: 0x51, B: 0xbf},
		AccentLight: Color{R: 0xe2, G: 0xe8, B: 0xf0},
		Font:        Color{R: 0x1a, G: 0x20, B: 0x2c},
		TitleFont:   Color{R: 0x1a, G: 0x20, B: 0x2c},
		ChartText:   Color{R: 0xff, G: 0xff, B: 0xff},
	}
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGBA 转为标准库颜色，始终不透明。
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa（忽略透明度）。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(hex) {
	case 3:
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	case 6, 8:
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("颜色值 %q 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %q 无法解析: %w", value, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
