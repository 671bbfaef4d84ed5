package status

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ByLCY/visistat/binding"
)

// Vars 返回模板中可用的变量。
func (h HostInfo) Vars() map[string]string {
	return map[string]string{
		"hostname": h.Hostname,
		"os":       displayOS(h.OS),
		"platform": h.Platform,
		"kernel":   h.Kernel,
		"arch":     h.Arch,
	}
}

// DefaultSystemInfo 返回 "<系统> <内核版本> (<架构>)"，例如 "Linux 6.1.0 (x86_64)"。
func DefaultSystemInfo(h HostInfo) string {
	return strings.TrimSpace(displayOS(h.OS) + " " + h.Kernel + " (" + h.Arch + ")")
}

// SystemInfo 在 custom 为空或为 "default" 时返回默认描述，否则展开其中的模板变量。
func SystemInfo(custom string, h HostInfo) string {
	if c := strings.TrimSpace(custom); c == "" || strings.EqualFold(c, "default") {
		return DefaultSystemInfo(h)
	}
	return Expand(custom, h)
}

// Expand 展开 text 中的 ${name} 模板变量。
func Expand(text string, h HostInfo) string {
	return binding.Interpolate(text, h.Vars())
}

// displayOS 将 GOOS 风格的名称转为首字母大写，例如 linux → Linux。
func displayOS(goos string) string {
	if goos == "" {
		return ""
	}
	return cases.Title(language.Und).String(goos)
}

// UnknownVars 返回 text 中引用了但不受支持的模板变量。
func UnknownVars(text string) []string {
	known := HostInfo{}.Vars()
	var unknown []string
	for _, name := range binding.Names(text) {
		if _, ok := known[strings.ToLower(name)]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
