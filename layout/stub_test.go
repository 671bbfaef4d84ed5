package layout

import (
	"strings"
	"testing"
)

// stubTypesetter 是一个最小实现，仅用于测试：半角字符占 0.5 个字号，宽字符占 1 个字号。
type stubTypesetter struct {
	calls int
}

func (s *stubTypesetter) Measure(text string, font FontSpec) (Size, error) {
	s.calls++
	w := 0.0
	for _, r := range text {
		if isWide(r) {
			w += font.Size
		} else {
			w += font.Size * 0.5
		}
	}
	return Size{W: w, H: font.Size * 1.2}, nil
}

func sampleContent() Content {
	return Content{
		UserName:    "AstroBot 用户",
		Title:       "服务器运行状态",
		SystemInfo:  "Linux 6.1.0 (x86_64)",
		Uptime:      "1小时 1分",
		CurrentTime: "2024-05-01 12:00:00",
		Traffic:     "↑10.00MB ↓20.00MB",
		Charts: [3]ChartSpec{
			{Label: "CPU", Value: 42},
			{Label: "MEM", Value: 63.5},
			{Label: "DISK", Value: 80.1},
		},
	}
}

func fullContent() Content {
	c := sampleContent()
	c.SystemInfo = strings.Repeat("Debian GNU/Linux 12 (bookworm) 内核版本 ", 4)
	c.Temperatures = []Reading{
		{Prefix: "CPU: ", Value: "45.0°C"},
		{Prefix: "GPU: ", Value: "N/A"},
		{Prefix: "BAT: ", Value: "31.5°C"},
	}
	c.Power = "12.5W"
	c.Battery = "电池状态: 充电中 (80.0%)"
	return c
}

func mustContext(t *testing.T, w, h int, opts Options) RenderContext {
	t.Helper()
	rc, err := NewRenderContext(w, h, opts)
	if err != nil {
		t.Fatalf("构造 RenderContext 失败: %v", err)
	}
	return rc
}

func mustLayout(t *testing.T, w, h int, opts Options, content Content) *Result {
	t.Helper()
	rc := mustContext(t, w, h, opts)
	m, err := Measure(rc, content, &stubTypesetter{})
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	res, err := Place(m, Assets{})
	if err != nil {
		t.Fatalf("摆放失败: %v", err)
	}
	return res
}

func chartBoxes(res *Result) []ImageBox {
	var out []ImageBox
	for _, img := range res.Images {
		if img.Kind == ImageChart {
			out = append(out, img)
		}
	}
	return out
}

func assertChartsDisjoint(t *testing.T, res *Result) {
	t.Helper()
	charts := chartBoxes(res)
	if len(charts) != 3 {
		t.Fatalf("期望 3 个图表，实际 %d", len(charts))
	}
	for i := range charts {
		if charts[i].Width != charts[i].Height {
			t.Fatalf("图表 %d 不是正方形: %dx%d", i, charts[i].Width, charts[i].Height)
		}
		for j := i + 1; j < len(charts); j++ {
			if charts[i].Bounds().Overlaps(charts[j].Bounds()) {
				t.Fatalf("图表 %d 与 %d 重叠: %v %v", i, j, charts[i].Bounds(), charts[j].Bounds())
			}
		}
	}
}
