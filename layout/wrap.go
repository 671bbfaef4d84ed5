package layout

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// WrapText 将文本按像素宽度贪心折行。
// 折行单元：连续空白为一个单元，每个东亚宽字符单独成一个单元，其余连续非空白字符为一个单元。
// 单元本身超宽时独占一行而不是被丢弃；空输入返回一个空行。
func WrapText(text string, font FontSpec, maxWidth float64, ts Typesetter) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{""}, nil
	}
	var (
		lines   []string
		current string
	)
	for _, unit := range splitUnits(text) {
		candidate := strings.TrimSpace(current + unit)
		size, err := ts.Measure(candidate, font)
		if err != nil {
			return nil, err
		}
		if size.W <= maxWidth || strings.TrimSpace(current) == "" {
			current += unit
			continue
		}
		lines = append(lines, strings.TrimRightFunc(current, unicode.IsSpace))
		current = strings.TrimLeftFunc(unit, unicode.IsSpace)
	}
	if strings.TrimSpace(current) != "" {
		lines = append(lines, strings.TrimRightFunc(current, unicode.IsSpace))
	}
	if len(lines) == 0 {
		return []string{""}, nil
	}
	return lines, nil
}

type unitKind int

const (
	unitNone unitKind = iota
	unitSpace
	unitWide
	unitWord
)

func splitUnits(text string) []string {
	var (
		units []string
		b     strings.Builder
		kind  = unitNone
	)
	flush := func() {
		if b.Len() > 0 {
			units = append(units, b.String())
			b.Reset()
		}
	}
	for _, r := range text {
		k := classify(r)
		if k == unitWide || k != kind {
			flush()
		}
		b.WriteRune(r)
		kind = k
	}
	flush()
	return units
}

func classify(r rune) unitKind {
	if unicode.IsSpace(r) {
		return unitSpace
	}
	if isWide(r) {
		return unitWide
	}
	return unitWord
}

// isWide 判断字符是否按东亚宽字符处理（汉字、假名、全角标点等）。
func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return unicode.Is(unicode.Han, r)
}
