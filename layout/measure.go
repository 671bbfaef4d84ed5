package layout

import (
	"fmt"
	"strings"
	"unicode"
)

// Row 是内容块中的一行。Indent 为相对左边距的缩进，GapBefore 为该行之前额外留出的空间。
type Row struct {
	Text      string `json:"text"`
	Indent    int    `json:"indent,omitempty"`
	GapBefore int    `json:"gapBefore,omitempty"`
}

// Header 记录头部（头像、用户名、标题）的测量结果。
type Header struct {
	NameWidth   int `json:"nameWidth"`
	NameHeight  int `json:"nameHeight"`
	TitleWidth  int `json:"titleWidth"`
	TitleHeight int `json:"titleHeight"`
	TextHeight  int `json:"textHeight"` // 用户名 + 间距 + 标题
	Height      int `json:"height"`
}

// Manifest 是测量阶段的输出：不做任何绘制，只给出摆放所需的全部尺寸。
type Manifest struct {
	Context       RenderContext   `json:"context"`
	Content       Content         `json:"content"`
	Header        Header          `json:"header"`
	Rows          []Row           `json:"rows"`
	ContentHeight int             `json:"contentHeight"`
	ChartSize     int             `json:"chartSize"`
	ChartLabels   [3]int          `json:"chartLabelWidths"`
	LabelHeight   int             `json:"labelHeight"`
	Vertical      *VerticalPlan   `json:"vertical,omitempty"`
	Horizontal    *HorizontalPlan `json:"horizontal,omitempty"`
}

// AvatarSize 是合成器需要准备的头像边长。
func (m *Manifest) AvatarSize() int { return m.Context.AvatarSize }

// Measure 执行测量阶段，按 rc 的方向选择纵向或横向方案。
func Measure(rc RenderContext, content Content, ts Typesetter) (*Manifest, error) {
	if ts == nil {
		return nil, fmt.Errorf("排版器不能为空")
	}
	if rc.Width <= 0 || rc.Height <= 0 {
		return nil, fmt.Errorf("%w: 画布尺寸 %dx%d", ErrInvalidGeometry, rc.Width, rc.Height)
	}
	m := &Manifest{Context: rc, Content: content}
	if m.Content.Charts[0].Label == "" {
		for i := range m.Content.Charts {
			m.Content.Charts[i].Label = rc.Labels.Charts[i]
		}
	}
	var err error
	if rc.Orientation == Horizontal {
		m.Horizontal, err = measureHorizontal(m, ts)
	} else {
		m.Vertical, err = measureVertical(m, ts)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Place 执行摆放阶段，纯粹根据 Manifest 计算每个元素的位置。
func Place(m *Manifest, assets Assets) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("布局清单为空")
	}
	res := &Result{
		Width:       m.Context.Width,
		Height:      m.Context.Height,
		Orientation: m.Context.Orientation,
		Manifest:    m,
	}
	switch {
	case m.Horizontal != nil:
		placeHorizontal(res, m, assets)
	case m.Vertical != nil:
		placeVertical(res, m, assets)
	default:
		return nil, fmt.Errorf("布局清单缺少方案")
	}
	return res, nil
}

type measurer struct {
	ts Typesetter
}

func (ms measurer) size(text string, font FontSpec) (int, int, error) {
	s, err := ms.ts.Measure(text, font)
	if err != nil {
		return 0, 0, fmt.Errorf("测量文本 %q 失败: %w", text, err)
	}
	return ceilPx(s.W), ceilPx(s.H), nil
}

func (ms measurer) width(text string, font FontSpec) (int, error) {
	w, _, err := ms.size(text, font)
	return w, err
}

const ellipsis = "…"

// fit 返回不超过 maxWidth 的文本及其宽高，高度始终取原文本的高度。
func (ms measurer) fit(text string, font FontSpec, maxWidth int) (string, int, int, error) {
	w, h, err := ms.size(text, font)
	if err != nil || w <= maxWidth {
		return text, w, h, err
	}
	if maxWidth <= 0 {
		return "", 0, h, nil
	}
	runes := []rune(text)
	for n := len(runes) - 1; n >= 0; n-- {
		candidate := strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + ellipsis
		cw, _, err := ms.size(candidate, font)
		if err != nil {
			return "", 0, 0, err
		}
		if cw <= maxWidth {
			return candidate, cw, h, nil
		}
	}
	return "", 0, h, nil
}

// measureHeader 测量头部文字，height 为头部块高度（不含额外留白）。
// 用户名与标题超过 maxWidth 时截断并以省略号结尾。
func measureHeader(m *Manifest, ms measurer, maxWidth int) error {
	rc := m.Context
	var err error
	h := &m.Header
	if m.Content.UserName, h.NameWidth, h.NameHeight, err = ms.fit(m.Content.UserName, rc.NameFont, maxWidth); err != nil {
		return err
	}
	if m.Content.Title, h.TitleWidth, h.TitleHeight, err = ms.fit(m.Content.Title, rc.TitleFont, maxWidth); err != nil {
		return err
	}
	h.TextHeight = h.NameHeight + rc.SmallGap + h.TitleHeight
	h.Height = max(rc.AvatarSize, h.TextHeight)
	return nil
}

// buildRows 生成内容块的所有行；行数随可选内容变化，高度据此推导。
// traffic 非空时作为最后一行追加，并在其前留出 trafficGap。
func buildRows(m *Manifest, ms measurer, infoMaxWidth int, traffic string, trafficGap int) error {
	rc := m.Context
	font := rc.ContentFont
	labels := rc.Labels
	c := m.Content

	sysPrefixW, err := ms.width(labels.SystemInfo, font)
	if err != nil {
		return err
	}
	sysLines, err := WrapText(c.SystemInfo, font, float64(infoMaxWidth-sysPrefixW), ms.ts)
	if err != nil {
		return err
	}
	rows := []Row{{Text: labels.SystemInfo + sysLines[0]}}
	for _, line := range sysLines[1:] {
		rows = append(rows, Row{Text: strings.TrimLeftFunc(line, unicode.IsSpace), Indent: sysPrefixW})
	}

	if len(c.Temperatures) == 0 {
		rows = append(rows, Row{Text: labels.Temperature + labels.NotAvailable})
	} else {
		tempPrefixW, err := ms.width(labels.Temperature, font)
		if err != nil {
			return err
		}
		first := c.Temperatures[0]
		rows = append(rows, Row{Text: labels.Temperature + first.Prefix + first.Value})
		for _, r := range c.Temperatures[1:] {
			rows = append(rows, Row{Text: r.Prefix + r.Value, Indent: tempPrefixW})
		}
	}
	if c.Power != "" {
		rows = append(rows, Row{Text: labels.Power + c.Power})
	}
	if c.Battery != "" {
		rows = append(rows, Row{Text: c.Battery})
	}
	rows = append(rows,
		Row{Text: labels.Uptime + c.Uptime},
		Row{Text: labels.CurrentTime + c.CurrentTime},
	)
	if traffic != "" {
		rows = append(rows, Row{Text: traffic, GapBefore: trafficGap})
	}

	m.Rows = rows
	m.ContentHeight = 0
	for _, r := range rows {
		m.ContentHeight += r.GapBefore + rc.LineSpacing
	}
	return nil
}

// measureChartLabels 测量三个图表标签的宽度与标签高度（取 probe 的高度）。
func measureChartLabels(m *Manifest, ms measurer, probe string) error {
	font := m.Context.ContentFont
	_, h, err := ms.size(probe, font)
	if err != nil {
		return err
	}
	m.LabelHeight = h
	for i, chart := range m.Content.Charts {
		if m.ChartLabels[i], err = ms.width(chart.Label, font); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) text(content string, x, y int, font FontSpec, col Color, width int) TextBox {
	return TextBox{Content: content, X: x, Y: y, Width: width, Font: font, Color: col}
}

// placeRows 自 (x, y) 起逐行摆放内容块，返回内容块之后的 y。
func placeRows(res *Result, m *Manifest, x, y int) int {
	rc := m.Context
	for _, r := range m.Rows {
		y += r.GapBefore
		res.Texts = append(res.Texts, m.text(r.Text, x+r.Indent, y, rc.ContentFont, rc.Palette.Font, 0))
		y += rc.LineSpacing
	}
	return y
}

// placeHeader 摆放头像与右侧的用户名、标题，top 为头部块顶端，height 为头部块高度。
func placeHeader(res *Result, m *Manifest, assets Assets, x, top, height, textGap int) {
	rc := m.Context
	h := m.Header
	res.Images = append(res.Images, ImageBox{
		Kind:   ImageAvatar,
		X:      x,
		Y:      top + (height-rc.AvatarSize)/2,
		Width:  rc.AvatarSize,
		Height: rc.AvatarSize,
		Image:  assets.Avatar,
	})
	textX := x + rc.AvatarSize + textGap
	textY := top + (height-h.TextHeight)/2
	res.Texts = append(res.Texts,
		m.text(m.Content.UserName, textX, textY, rc.NameFont, rc.Palette.TitleFont, h.NameWidth),
		m.text(m.Content.Title, textX, textY+h.NameHeight+rc.SmallGap, rc.TitleFont, rc.Palette.TitleFont, h.TitleWidth),
	)
}

func (m *Manifest) chartBox(i, x, y int, assets Assets) ImageBox {
	return ImageBox{
		Kind:   ImageChart,
		Label:  m.Content.Charts[i].Label,
		X:      x,
		Y:      y,
		Width:  m.ChartSize,
		Height: m.ChartSize,
		Image:  assets.Charts[i],
	}
}
