package layout

// 纵向布局：头部、内容块、分隔线、居中的网络流量两行、横排的三个图表。

const separatorWidth = 2

// VerticalPlan 保存纵向布局推导出的块尺寸。
type VerticalPlan struct {
	InfoMaxWidth     int `json:"infoMaxWidth"`
	HeaderHeight     int `json:"headerHeight"`     // H_A
	ContentHeight    int `json:"contentHeight"`    // H_B
	ChartBlockHeight int `json:"chartBlockHeight"` // H_C
	ChartGap         int `json:"chartGap"`
	LabelMargin      int `json:"labelMargin"`
	Required         int `json:"required"`
	OffsetY          int `json:"offsetY"`
	TrafficTitleW    int `json:"trafficTitleWidth"`
	TrafficW         int `json:"trafficWidth"`
}

func measureVertical(m *Manifest, ts Typesetter) (*VerticalPlan, error) {
	rc := m.Context
	ms := measurer{ts: ts}
	M := rc.Margin
	plan := &VerticalPlan{
		InfoMaxWidth: rc.Width - 2*M,
		ChartGap:     M / 2,
		LabelMargin:  M / 4,
	}

	if err := measureHeader(m, ms, plan.InfoMaxWidth-rc.AvatarSize-M); err != nil {
		return nil, err
	}
	plan.HeaderHeight = m.Header.Height

	if err := buildRows(m, ms, plan.InfoMaxWidth, "", 0); err != nil {
		return nil, err
	}
	plan.ContentHeight = m.ContentHeight

	var err error
	if plan.TrafficTitleW, err = ms.width(rc.Labels.TrafficTitle, rc.ContentFont); err != nil {
		return nil, err
	}
	if plan.TrafficW, err = ms.width(m.Content.Traffic, rc.ContentFont); err != nil {
		return nil, err
	}

	m.ChartSize = max(rc.MinChartSize, (rc.Width-2*M-2*plan.ChartGap)/3)
	if err := measureChartLabels(m, ms, rc.Labels.Charts[0]); err != nil {
		return nil, err
	}

	plan.ChartBlockHeight = 2*rc.LineSpacing + M + m.LabelHeight + plan.LabelMargin + m.ChartSize
	plan.Required = plan.HeaderHeight + plan.ContentHeight + plan.ChartBlockHeight + 5*M + separatorWidth
	plan.OffsetY = centerOffset(rc.Height, plan.Required)
	return plan, nil
}

func placeVertical(res *Result, m *Manifest, assets Assets) {
	rc := m.Context
	plan := m.Vertical
	M := rc.Margin
	W := rc.Width
	LS := rc.LineSpacing

	headerY := plan.OffsetY + M
	placeHeader(res, m, assets, M, headerY, plan.HeaderHeight, M)

	y := placeRows(res, m, M, headerY+plan.HeaderHeight+M)

	sepY := y + M + separatorWidth/2
	res.Lines = append(res.Lines, Line{X1: M, Y1: sepY, X2: W - M, Y2: sepY, Width: separatorWidth, Color: rc.Palette.Font})
	y = sepY + separatorWidth/2 + M

	res.Texts = append(res.Texts, m.text(rc.Labels.TrafficTitle, (W-plan.TrafficTitleW)/2, y, rc.ContentFont, rc.Palette.Font, plan.TrafficTitleW))
	y += LS
	res.Texts = append(res.Texts, m.text(m.Content.Traffic, (W-plan.TrafficW)/2, y, rc.ContentFont, rc.Palette.Font, plan.TrafficW))
	y += LS + M

	C := m.ChartSize
	total := 3*C + 2*plan.ChartGap
	startX := M + (W-2*M-total)/2
	chartY := y + m.LabelHeight + plan.LabelMargin
	labelY := y - LS + (LS+m.LabelHeight+plan.LabelMargin)/2
	for i := range m.Content.Charts {
		chartX := startX + i*(C+plan.ChartGap)
		labelW := m.ChartLabels[i]
		res.Texts = append(res.Texts, m.text(m.Content.Charts[i].Label, chartX+(C-labelW)/2, labelY, rc.ContentFont, rc.Palette.Font, labelW))
		res.Images = append(res.Images, m.chartBox(i, chartX, chartY, assets))
	}
}
