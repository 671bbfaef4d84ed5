package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/ByLCY/visistat/layout"
	"github.com/ByLCY/visistat/readout"
)

// TimeLayout 是当前时间行的格式。
const TimeLayout = "2006-01-02 15:04:05"

// 低于该值的温度视为传感器缺失。
const minValidCelsius = 0.1

const mib = 1024 * 1024

// FormatTemperatures 按 CPU、GPU、BAT 的顺序生成已启用传感器的温度行。
// 读数缺失或不大于 0.1°C 时显示 notAvailable。前缀仅在 Abbreviations 开启时出现。
func FormatTemperatures(t Temperatures, flags SensorFlags, unit readout.TempUnit, notAvailable string) []layout.Reading {
	rows := make([]layout.Reading, 0, 3)
	add := func(enabled bool, abbr string, celsius *float64) {
		if !enabled {
			return
		}
		prefix := ""
		if flags.Abbreviations {
			prefix = abbr + ": "
		}
		value := notAvailable
		if celsius != nil && *celsius > minValidCelsius {
			value = fmt.Sprintf("%.1f°%s", unit.FromCelsius(*celsius), unit)
		}
		rows = append(rows, layout.Reading{Prefix: prefix, Value: value})
	}
	add(flags.CPU, "CPU", t.CPU)
	add(flags.GPU, "GPU", t.GPU)
	add(flags.Battery, "BAT", t.Battery)
	return rows
}

// FormatBattery 返回电池状态行，b 为空时返回空字符串。
func FormatBattery(b *Battery, labels layout.Labels) string {
	if b == nil {
		return ""
	}
	if b.Charging {
		return fmt.Sprintf(labels.BatteryCharging, b.Percent)
	}
	var left string
	switch {
	case b.SecondsLeft == SecondsUnlimited:
		left = labels.BatteryUnlimited
	case b.SecondsLeft < 0:
		left = labels.BatteryUnknown
	default:
		minutes := b.SecondsLeft / 60
		left = fmt.Sprintf(labels.BatteryTimeLeft, minutes/60, minutes%60)
	}
	return fmt.Sprintf(labels.BatteryRemaining, b.Percent, left)
}

// FormatPower 返回一位小数的功率，w 为空时返回空字符串。
func FormatPower(w *float64) string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("%.1fW", *w)
}

// FormatUptime 输出 "1天 2小时 3分" 形式，省略为零的单位；不足一分钟时输出 "0分"。
func FormatUptime(d time.Duration, labels layout.Labels) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf(labels.UptimeDays, days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf(labels.UptimeHours, hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf(labels.UptimeMinutes, minutes))
	}
	if len(parts) == 0 {
		return fmt.Sprintf(labels.UptimeMinutes, 0)
	}
	return strings.Join(parts, " ")
}

// FormatTraffic 以 MiB 输出累计收发流量。
func FormatTraffic(sent, recv uint64) string {
	return fmt.Sprintf("↑%.2fMB ↓%.2fMB", float64(sent)/mib, float64(recv)/mib)
}

// FormatTime 按 TimeLayout 输出时间。
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ContentOptions 控制快照到卡片内容的转换。
type ContentOptions struct {
	UserName   string
	Title      string // 支持 ${hostname} 等模板变量
	SystemInfo string // 为空或 "default" 时自动生成
	Flags      SensorFlags
	Unit       readout.TempUnit
	Labels     layout.Labels
}

// BuildContent 将快照格式化为布局所需的内容。
func BuildContent(s Snapshot, o ContentOptions) layout.Content {
	labels := o.Labels
	if labels.SystemInfo == "" {
		labels = layout.LabelsZH
	}
	unit := o.Unit
	if unit == "" {
		unit = readout.Celsius
	}
	now := s.Now
	if now.IsZero() {
		now = time.Now()
	}

	c := layout.Content{
		UserName:     o.UserName,
		Title:        Expand(o.Title, s.Host),
		SystemInfo:   SystemInfo(o.SystemInfo, s.Host),
		Temperatures: FormatTemperatures(s.Temperatures, o.Flags, unit, labels.NotAvailable),
		Uptime:       FormatUptime(s.Uptime, labels),
		CurrentTime:  FormatTime(now),
		Traffic:      FormatTraffic(s.BytesSent, s.BytesRecv),
		Charts: [3]layout.ChartSpec{
			{Label: labels.Charts[0], Value: s.CPUPercent},
			{Label: labels.Charts[1], Value: s.MemPercent},
			{Label: labels.Charts[2], Value: s.DiskPercent},
		},
	}
	// 功率来自 CPU 传感器读数，随 CPU 温度一起开关
	if o.Flags.CPU {
		c.Power = FormatPower(s.PowerWatts)
	}
	if o.Flags.BatteryStatus {
		c.Battery = FormatBattery(s.Battery, labels)
	}
	return c
}
