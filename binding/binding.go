// Package binding 展开文本中的 ${name} 与 ${name:-default} 模板变量。
package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将 text 中的 ${name} 替换为 vars 中的值。
// ${name:-fallback} 在变量缺失或为空时使用 fallback；没有默认值的未知变量保留原占位符。
func Interpolate(text string, vars map[string]string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		name, fallback, hasFallback := parseExpr(groups[1])
		if name == "" {
			return match
		}
		val, ok := lookup(vars, name)
		switch {
		case ok && (val != "" || !hasFallback):
			return val
		case hasFallback:
			return fallback
		default:
			return match
		}
	})
}

// Names 返回 text 中引用的变量名，按出现顺序去重。
func Names(text string) []string {
	var names []string
	seen := map[string]bool{}
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		name, _, _ := parseExpr(groups[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func parseExpr(expr string) (name, fallback string, hasFallback bool) {
	if i := strings.Index(expr, ":-"); i != -1 {
		return strings.TrimSpace(expr[:i]), expr[i+2:], true
	}
	return strings.TrimSpace(expr), "", false
}

// lookup 按名称查找变量，名称不区分大小写。
func lookup(vars map[string]string, name string) (string, bool) {
	if v, ok := vars[name]; ok {
		return v, true
	}
	for k, v := range vars {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
