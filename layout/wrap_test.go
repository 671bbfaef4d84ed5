package layout

import (
	"reflect"
	"strings"
	"testing"
)

var wrapFont = FontSpec{Size: 10} // 半角 5px，宽字符 10px

func wrap(t *testing.T, text string, maxWidth float64) []string {
	t.Helper()
	lines, err := WrapText(text, wrapFont, maxWidth, &stubTypesetter{})
	if err != nil {
		t.Fatalf("折行失败: %v", err)
	}
	return lines
}

func TestWrapTextEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if got := wrap(t, in, 100); !reflect.DeepEqual(got, []string{""}) {
			t.Fatalf("输入 %q 期望单个空行，实际 %q", in, got)
		}
	}
}

func TestWrapTextLatinWords(t *testing.T) {
	// "hello world" = 55px
	got := wrap(t, "hello world again", 60)
	want := []string{"hello world", "again"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}
}

func TestWrapTextBreaksBetweenCJKCharacters(t *testing.T) {
	got := wrap(t, "服务器运行状态", 30)
	want := []string{"服务器", "运行状", "态"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}
}

func TestWrapTextMixedScripts(t *testing.T) {
	got := wrap(t, "Linux内核", 30)
	want := []string{"Linux", "内核"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}
}

func TestWrapTextOversizedUnitKeepsOwnLine(t *testing.T) {
	got := wrap(t, "a supercalifragilistic b", 30)
	want := []string{"a", "supercalifragilistic", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}
}

func TestWrapTextTrimsBoundaryWhitespace(t *testing.T) {
	got := wrap(t, "ab   cd", 15)
	for _, line := range got {
		if line != strings.TrimSpace(line) {
			t.Fatalf("行首尾不应有空白: %q", got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("期望 2 行，实际 %q", got)
	}
}

func TestWrapTextIdempotent(t *testing.T) {
	cases := []struct {
		text  string
		width float64
		sep   string
	}{
		{"Debian GNU/Linux 12 bookworm on a rather long hostname", 80, " "},
		{"the quick brown fox jumps over the lazy dog", 50, " "},
		{"系统信息采集完成后生成状态卡片", 45, ""},
		{"a supercalifragilistic word list", 40, " "},
	}
	for _, tc := range cases {
		first := wrap(t, tc.text, tc.width)
		second := wrap(t, strings.Join(first, tc.sep), tc.width)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("重新折行结果不一致: %q vs %q", first, second)
		}
	}
}

func TestSplitUnits(t *testing.T) {
	got := splitUnits("ab  中文x")
	want := []string{"ab", "  ", "中", "文", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("期望 %q，实际 %q", want, got)
	}
}
