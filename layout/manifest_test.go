package layout

import (
	"errors"
	"strings"
	"testing"
)

func measureRows(t *testing.T, w, h int, content Content) *Manifest {
	t.Helper()
	m, err := Measure(mustContext(t, w, h, DefaultOptions()), content, &stubTypesetter{})
	if err != nil {
		t.Fatalf("测量失败: %v", err)
	}
	return m
}

func TestBaselineRowsWithoutSensors(t *testing.T) {
	m := measureRows(t, 400, 500, sampleContent())
	want := []string{
		"系统信息: Linux 6.1.0 (x86_64)",
		"系统温度: N/A",
		"运行时间: 1小时 1分",
		"当前时间: 2024-05-01 12:00:00",
	}
	if len(m.Rows) != len(want) {
		t.Fatalf("期望 %d 行，实际 %d: %+v", len(want), len(m.Rows), m.Rows)
	}
	for i, r := range m.Rows {
		if r.Text != want[i] {
			t.Fatalf("第 %d 行期望 %q，实际 %q", i, want[i], r.Text)
		}
	}
	if m.ContentHeight != 4*m.Context.LineSpacing {
		t.Fatalf("内容高度应由行数推导: %d", m.ContentHeight)
	}

	hm := measureRows(t, 900, 350, sampleContent())
	if len(hm.Rows) != len(want)+1 {
		t.Fatalf("横向布局应多出流量行，实际 %d 行", len(hm.Rows))
	}
	if hm.ContentHeight != 5*hm.Context.LineSpacing+hm.Context.Margin/2 {
		t.Fatalf("横向内容高度不符: %d", hm.ContentHeight)
	}
}

func TestOptionalRowsGrowContentBlock(t *testing.T) {
	base := measureRows(t, 400, 500, sampleContent())
	full := measureRows(t, 400, 500, fullContent())

	sysLines := 0
	for _, r := range full.Rows {
		if strings.HasPrefix(r.Text, LabelsZH.Temperature) {
			break
		}
		sysLines++
	}
	// 3 行温度 + 功率 + 电池 + 运行时间 + 当前时间
	if got, want := len(full.Rows), sysLines+3+1+1+2; got != want {
		t.Fatalf("期望 %d 行，实际 %d", want, got)
	}
	if full.ContentHeight <= base.ContentHeight {
		t.Fatalf("可选内容应增加内容高度: %d <= %d", full.ContentHeight, base.ContentHeight)
	}
	if full.Vertical.Required-base.Vertical.Required != full.ContentHeight-base.ContentHeight {
		t.Fatalf("总高度的变化应等于内容块高度的变化")
	}
}

func TestContinuationRowsAreIndented(t *testing.T) {
	m := measureRows(t, 400, 500, fullContent())
	ts := &stubTypesetter{}
	tempPrefix, _ := ts.Measure(LabelsZH.Temperature, m.Context.ContentFont)
	sysPrefix, _ := ts.Measure(LabelsZH.SystemInfo, m.Context.ContentFont)

	var sawTemp bool
	for i, r := range m.Rows {
		switch {
		case strings.HasPrefix(r.Text, LabelsZH.Temperature):
			sawTemp = true
			if r.Indent != 0 {
				t.Fatalf("首行温度不应缩进")
			}
		case strings.HasPrefix(r.Text, "GPU: "), strings.HasPrefix(r.Text, "BAT: "):
			if r.Indent != ceilPx(tempPrefix.W) {
				t.Fatalf("温度续行缩进期望 %d，实际 %d", ceilPx(tempPrefix.W), r.Indent)
			}
		case i > 0 && !sawTemp:
			if r.Indent != ceilPx(sysPrefix.W) {
				t.Fatalf("系统信息续行缩进期望 %d，实际 %d", ceilPx(sysPrefix.W), r.Indent)
			}
		}
	}
}

func TestMeasureRejectsMissingTypesetter(t *testing.T) {
	if _, err := Measure(mustContext(t, 400, 500, DefaultOptions()), sampleContent(), nil); err == nil {
		t.Fatalf("缺少排版器时应返回错误")
	}
	if _, err := Measure(RenderContext{}, sampleContent(), &stubTypesetter{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("零尺寸画布应返回 ErrInvalidGeometry，实际 %v", err)
	}
}

func TestMeasureFillsDefaultChartLabels(t *testing.T) {
	c := sampleContent()
	c.Charts = [3]ChartSpec{{Value: 1}, {Value: 2}, {Value: 3}}
	m := measureRows(t, 400, 500, c)
	for i, chart := range m.Content.Charts {
		if chart.Label != LabelsZH.Charts[i] {
			t.Fatalf("图表 %d 标签期望 %q，实际 %q", i, LabelsZH.Charts[i], chart.Label)
		}
	}
}

func TestPlaceRequiresPlan(t *testing.T) {
	if _, err := Place(nil, Assets{}); err == nil {
		t.Fatalf("空清单应返回错误")
	}
	if _, err := Place(&Manifest{}, Assets{}); err == nil {
		t.Fatalf("缺少方案时应返回错误")
	}
}
