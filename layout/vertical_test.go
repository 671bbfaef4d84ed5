package layout

import (
	"fmt"
	"testing"
)

func TestVerticalPlanGeometry(t *testing.T) {
	res := mustLayout(t, 400, 500, DefaultOptions(), sampleContent())
	m := res.Manifest
	plan := m.Vertical
	if plan == nil {
		t.Fatalf("400x500 应生成纵向方案")
	}
	// H_A=72, H_B=4*24, H_C=2*24+20+22+5+113, 5M=100, SEP=2
	if plan.Required != 478 {
		t.Fatalf("总高度期望 478，实际 %d", plan.Required)
	}
	if plan.OffsetY != 11 {
		t.Fatalf("居中偏移期望 11，实际 %d", plan.OffsetY)
	}
	if m.ChartSize != 113 {
		t.Fatalf("图表边长期望 113，实际 %d", m.ChartSize)
	}

	avatar := res.Images[0]
	if avatar.Kind != ImageAvatar || avatar.X != 20 || avatar.Y != 37 || avatar.Width != 60 {
		t.Fatalf("头像位置不符: %+v", avatar)
	}

	charts := chartBoxes(res)
	wantX := []int{20, 143, 266}
	for i, c := range charts {
		if c.X != wantX[i] || c.Y != 356 {
			t.Fatalf("图表 %d 位置期望 (%d,356)，实际 (%d,%d)", i, wantX[i], c.X, c.Y)
		}
	}
	if bottom := charts[0].Y + charts[0].Height; bottom != 500-31 {
		t.Fatalf("底部留白应与顶部一致，图表底部 %d", bottom)
	}

	if len(res.Lines) != 1 {
		t.Fatalf("期望一条分隔线，实际 %d", len(res.Lines))
	}
	sep := res.Lines[0]
	if sep.X1 != 20 || sep.X2 != 380 || sep.Y1 != 240 || sep.Width != 2 {
		t.Fatalf("分隔线位置不符: %+v", sep)
	}
}

func TestVerticalTrafficIsCentered(t *testing.T) {
	res := mustLayout(t, 400, 500, DefaultOptions(), sampleContent())
	var found int
	for _, tb := range res.Texts {
		if tb.Content == LabelsZH.TrafficTitle || tb.Content == sampleContent().Traffic {
			found++
			left := tb.X
			right := 400 - (tb.X + tb.Width)
			if d := left - right; d < -1 || d > 1 {
				t.Fatalf("%q 未水平居中: left=%d right=%d", tb.Content, left, right)
			}
		}
	}
	if found != 2 {
		t.Fatalf("期望两行网络流量文本，实际 %d", found)
	}
}

func TestVerticalNeverProducesUndersizedCharts(t *testing.T) {
	sizes := [][2]int{{200, 300}, {400, 500}, {500, 580}, {300, 1000}, {100, 90}, {40, 60}}
	scales := []float64{0.5, 1, 2, 3}
	for _, size := range sizes {
		for _, scale := range scales {
			t.Run(fmt.Sprintf("%dx%d@%g", size[0], size[1], scale), func(t *testing.T) {
				opts := DefaultOptions()
				opts.VerticalScale = scale
				res := mustLayout(t, size[0], size[1], opts, fullContent())
				m := res.Manifest
				if m.Vertical == nil {
					t.Fatalf("期望纵向方案")
				}
				if m.ChartSize < opts.MinChartVertical || m.ChartSize <= 0 {
					t.Fatalf("图表边长 %d 小于下限 %d", m.ChartSize, opts.MinChartVertical)
				}
				assertChartsDisjoint(t, res)
				if m.Vertical.Required <= size[1] {
					for _, c := range chartBoxes(res) {
						if c.Y+c.Height > size[1] {
							t.Fatalf("内容未溢出时图表不应越界: %v", c.Bounds())
						}
					}
				} else if m.Vertical.OffsetY != 0 {
					t.Fatalf("溢出时不应居中，偏移 %d", m.Vertical.OffsetY)
				}
			})
		}
	}
}
