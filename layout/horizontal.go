package layout

// 横向布局：左列为头部与内容块（网络流量作为最后一行），右列竖排三个图表。

const horizontalChartGap = 15

// HorizontalPlan 保存横向布局推导出的列尺寸。
type HorizontalPlan struct {
	MiddleGap        int `json:"middleGap"`
	ChartGap         int `json:"chartGap"`
	LabelChartGap    int `json:"labelChartGap"`
	LabelTopPadding  int `json:"labelTopPadding"`
	ChartAreaX       int `json:"chartAreaX"`
	InfoMaxWidth     int `json:"infoMaxWidth"`
	HeaderHeight     int `json:"headerHeight"`
	TextBlockHeight  int `json:"textBlockHeight"`
	TextBlockY       int `json:"textBlockY"`
	ChartBlockHeight int `json:"chartBlockHeight"`
	ChartBlockY      int `json:"chartBlockY"`
}

func measureHorizontal(m *Manifest, ts Typesetter) (*HorizontalPlan, error) {
	rc := m.Context
	ms := measurer{ts: ts}
	M := rc.Margin
	plan := &HorizontalPlan{
		MiddleGap:       int(float64(M) * 0.75),
		ChartGap:        horizontalChartGap,
		LabelChartGap:   M / 3,
		LabelTopPadding: M / 4,
	}
	available := rc.Height - 2*M

	if err := measureChartLabels(m, ms, rc.Labels.Charts[1]); err != nil {
		return nil, err
	}
	overhead := 3*(m.LabelHeight+plan.LabelTopPadding+plan.LabelChartGap) + 2*plan.ChartGap
	m.ChartSize = max(rc.MinChartSize, (available-overhead)/3)

	plan.ChartAreaX = rc.Width - M - (m.ChartSize + M/2)
	plan.InfoMaxWidth = plan.ChartAreaX - M - plan.MiddleGap

	if err := measureHeader(m, ms, plan.InfoMaxWidth-rc.AvatarSize-M); err != nil {
		return nil, err
	}
	plan.HeaderHeight = m.Header.Height + M/2

	traffic := rc.Labels.TrafficTitle + " " + m.Content.Traffic
	if err := buildRows(m, ms, plan.InfoMaxWidth, traffic, M/2); err != nil {
		return nil, err
	}

	plan.TextBlockHeight = plan.HeaderHeight + M/2 + m.ContentHeight
	plan.TextBlockY = M + centerOffset(available, plan.TextBlockHeight)
	plan.ChartBlockHeight = 3*m.ChartSize + overhead
	plan.ChartBlockY = M + centerOffset(available, plan.ChartBlockHeight)
	return plan, nil
}

func placeHorizontal(res *Result, m *Manifest, assets Assets) {
	rc := m.Context
	plan := m.Horizontal
	M := rc.Margin

	placeHeader(res, m, assets, M, plan.TextBlockY, plan.HeaderHeight, M)
	placeRows(res, m, M, plan.TextBlockY+plan.HeaderHeight+M/2)

	C := m.ChartSize
	centerX := plan.ChartAreaX + C/2
	y := plan.ChartBlockY
	for i := range m.Content.Charts {
		labelY := y + plan.LabelTopPadding
		labelW := m.ChartLabels[i]
		res.Texts = append(res.Texts, m.text(m.Content.Charts[i].Label, centerX-labelW/2, labelY, rc.ContentFont, rc.Palette.Font, labelW))
		chartY := labelY + m.LabelHeight + plan.LabelChartGap
		res.Images = append(res.Images, m.chartBox(i, centerX-C/2, chartY, assets))
		y = chartY + C + plan.ChartGap
	}
}
