package layout

// Labels 是卡片上固定文字的一套取值。格式串供 status 包使用。
type Labels struct {
	SystemInfo   string    `json:"systemInfo"`
	Temperature  string    `json:"temperature"`
	Power        string    `json:"power"`
	Uptime       string    `json:"uptime"`
	CurrentTime  string    `json:"currentTime"`
	TrafficTitle string    `json:"trafficTitle"`
	NotAvailable string    `json:"notAvailable"`
	Charts       [3]string `json:"charts"`

	BatteryCharging  string `json:"batteryCharging"`  // %.1f 百分比
	BatteryRemaining string `json:"batteryRemaining"` // %.1f 百分比, %s 剩余时间
	BatteryTimeLeft  string `json:"batteryTimeLeft"`  // %d 小时, %d 分钟
	BatteryUnlimited string `json:"batteryUnlimited"`
	BatteryUnknown   string `json:"batteryUnknown"`
	UptimeDays       string `json:"uptimeDays"`
	UptimeHours      string `json:"uptimeHours"`
	UptimeMinutes    string `json:"uptimeMinutes"`
}

var LabelsZH = Labels{
	SystemInfo:       "系统信息: ",
	Temperature:      "系统温度: ",
	Power:            "系统功率: ",
	Uptime:           "运行时间: ",
	CurrentTime:      "当前时间: ",
	TrafficTitle:     "网络流量:",
	NotAvailable:     "N/A",
	Charts:           [3]string{"CPU", "MEM", "DISK"},
	BatteryCharging:  "电池状态: 充电中 (%.1f%%)",
	BatteryRemaining: "电池状态: 剩余 %.1f%% (%s)",
	BatteryTimeLeft:  "%d时%d分",
	BatteryUnlimited: "无限",
	BatteryUnknown:   "未知",
	UptimeDays:       "%d天",
	UptimeHours:      "%d小时",
	UptimeMinutes:    "%d分",
}

var LabelsEN = Labels{
	SystemInfo:       "System: ",
	Temperature:      "Temperature: ",
	Power:            "Power: ",
	Uptime:           "Uptime: ",
	CurrentTime:      "Time: ",
	TrafficTitle:     "Network:",
	NotAvailable:     "N/A",
	Charts:           [3]string{"CPU", "MEM", "DISK"},
	BatteryCharging:  "Battery: charging (%.1f%%)",
	BatteryRemaining: "Battery: %.1f%% left (%s)",
	BatteryTimeLeft:  "%dh%dm",
	BatteryUnlimited: "unlimited",
	BatteryUnknown:   "unknown",
	UptimeDays:       "%dd",
	UptimeHours:      "%dh",
	UptimeMinutes:    "%dm",
}

// LabelsFor 按语言代码选择标签集，未知语言回退到中文。
func LabelsFor(lang string) Labels {
	switch lang {
	case "en", "en-US", "en_US", "english":
		return LabelsEN
	default:
		return LabelsZH
	}
}
