package layout

import (
	"math"
	"testing"
)

// TestPxPtRoundTrip 验证 px↔pt 换算的往返精度（允许极小的浮点误差）。
func TestPxPtRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, px := range samples {
		back := PtToPx(PxToPt(px))
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%g back=%g diff=%g", px, back, diff)
		}
	}
}

func TestScaledTruncates(t *testing.T) {
	cases := []struct {
		base  int
		ratio float64
		scale float64
		want  int
	}{
		{350, 0.04, 1, 14},
		{350, 0.04, 1.5, 21},
		{400, 0.05, 1, 20},
		{400, 0.045, 1, 18},
		{10, 0.01, 1, 0},
	}
	for _, tc := range cases {
		if got := scaled(tc.base, tc.ratio, tc.scale); got != tc.want {
			t.Fatalf("scaled(%d, %g, %g) 期望 %d，实际 %d", tc.base, tc.ratio, tc.scale, tc.want, got)
		}
	}
	if got := fontPx(10, 0.01, 1); got != 1 {
		t.Fatalf("字号下限应为 1px，实际 %g", got)
	}
}

func TestCenterOffset(t *testing.T) {
	if got := centerOffset(500, 300); got != 100 {
		t.Fatalf("期望 100，实际 %d", got)
	}
	if got := centerOffset(300, 300); got != 0 {
		t.Fatalf("恰好填满时不应偏移，实际 %d", got)
	}
	if got := centerOffset(200, 300); got != 0 {
		t.Fatalf("溢出时不应偏移，实际 %d", got)
	}
}

func TestCeilPx(t *testing.T) {
	if got := ceilPx(10.2); got != 11 {
		t.Fatalf("期望 11，实际 %d", got)
	}
	if got := ceilPx(10); got != 10 {
		t.Fatalf("期望 10，实际 %d", got)
	}
	if got := ceilPx(-3); got != 0 {
		t.Fatalf("负值应为 0，实际 %d", got)
	}
}
