package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry 表示画布尺寸或缩放系数不可用。
var ErrInvalidGeometry = errors.New("无效的布局参数")

// HorizontalThreshold 是宽高比超过后改用横向布局的阈值（不含）。
const HorizontalThreshold = 1.2

const (
	maxDynamicScale   = 1.5
	dynamicRatioLimit = 3.0
)

// RenderContext 是一次渲染所需的全部尺寸、字体与颜色，构造后不再修改。
type RenderContext struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Orientation  Orientation `json:"orientation"`
	Scale        float64     `json:"scale"`   // 生效的缩放（横向已乘动态缩放）
	BaseRef      int         `json:"baseRef"` // 纵向取短边，横向取高度
	Margin       int         `json:"margin"`
	TitleFont    FontSpec    `json:"titleFont"`
	NameFont     FontSpec    `json:"nameFont"`
	ContentFont  FontSpec    `json:"contentFont"`
	LineSpacing  int         `json:"lineSpacing"`
	AvatarSize   int         `json:"avatarSize"`
	SmallGap     int         `json:"smallGap"`
	MinChartSize int         `json:"minChartSize"`
	Palette      Palette     `json:"palette"`
	Labels       Labels      `json:"-"`
}

// SelectOrientation 在宽高比严格大于 1.2 时选择横向布局。
func SelectOrientation(width, height int) Orientation {
	if height > 0 && float64(width)/float64(height) > HorizontalThreshold {
		return Horizontal
	}
	return Vertical
}

// DynamicScale 随宽高比在 (1.2, 3.0] 区间线性增长到 1.5，之后保持不变。
func DynamicScale(width, height int) float64 {
	if height <= 0 {
		return 1
	}
	ratio := float64(width) / float64(height)
	if ratio <= HorizontalThreshold {
		return 1
	}
	clamped := math.Min(dynamicRatioLimit, ratio)
	return 1 + (maxDynamicScale-1)*(clamped-HorizontalThreshold)/(dynamicRatioLimit-HorizontalThreshold)
}

// NewRenderContext 根据画布尺寸与配置推导所有尺寸常量。
func NewRenderContext(width, height int, opts Options) (RenderContext, error) {
	if width <= 0 || height <= 0 {
		return RenderContext{}, fmt.Errorf("%w: 画布尺寸 %dx%d", ErrInvalidGeometry, width, height)
	}
	rc := RenderContext{
		Width:       width,
		Height:      height,
		Orientation: SelectOrientation(width, height),
		Palette:     opts.Palette,
		Labels:      opts.Labels,
	}
	if rc.Labels.Charts[0] == "" {
		rc.Labels = LabelsZH
	}

	if rc.Orientation == Horizontal {
		if opts.HorizontalScale <= 0 || math.IsNaN(opts.HorizontalScale) {
			return RenderContext{}, fmt.Errorf("%w: 横向缩放 %g", ErrInvalidGeometry, opts.HorizontalScale)
		}
		rc.BaseRef = height
		rc.Scale = DynamicScale(width, height) * opts.HorizontalScale
		rc.Margin = scaled(rc.BaseRef, 0.04, rc.Scale)
		rc.TitleFont = FontSpec{Src: opts.TitleFont, Size: fontPx(rc.BaseRef, 0.06, rc.Scale)}
		rc.NameFont = FontSpec{Src: opts.TitleFont, Size: fontPx(rc.BaseRef, 0.05, rc.Scale)}
		rc.ContentFont = FontSpec{Src: opts.ContentFont, Size: fontPx(rc.BaseRef, 0.035, rc.Scale)}
		rc.LineSpacing = scaled(rc.BaseRef, 0.045, rc.Scale)
		rc.AvatarSize = scaled(rc.BaseRef, 0.12, rc.Scale)
		rc.MinChartSize = opts.MinChartHorizontal
	} else {
		if opts.VerticalScale <= 0 || math.IsNaN(opts.VerticalScale) {
			return RenderContext{}, fmt.Errorf("%w: 纵向缩放 %g", ErrInvalidGeometry, opts.VerticalScale)
		}
		rc.BaseRef = min(width, height)
		rc.Scale = opts.VerticalScale
		rc.Margin = scaled(rc.BaseRef, 0.05, rc.Scale)
		rc.TitleFont = FontSpec{Src: opts.TitleFont, Size: fontPx(rc.BaseRef, 0.08, rc.Scale)}
		rc.NameFont = FontSpec{Src: opts.TitleFont, Size: fontPx(rc.BaseRef, 0.06, rc.Scale)}
		rc.ContentFont = FontSpec{Src: opts.ContentFont, Size: fontPx(rc.BaseRef, 0.045, rc.Scale)}
		rc.LineSpacing = scaled(rc.BaseRef, 0.06, rc.Scale)
		rc.AvatarSize = scaled(rc.BaseRef, 0.15, rc.Scale)
		rc.MinChartSize = opts.MinChartVertical
	}
	rc.SmallGap = scaled(rc.BaseRef, 0.01, rc.Scale)
	rc.AvatarSize = max(1, rc.AvatarSize)
	rc.MinChartSize = max(1, rc.MinChartSize)
	return rc, nil
}
