// Package status 采集主机状态并将其格式化为卡片内容。
package status

import (
	"context"
	"time"
)

// Snapshot 是一次采集得到的主机状态。温度统一为摄氏度，缺失的读数为 nil。
type Snapshot struct {
	CPUPercent  float64
	MemPercent  float64
	DiskPercent float64

	Temperatures Temperatures
	PowerWatts   *float64
	Battery      *Battery

	BytesSent uint64
	BytesRecv uint64
	Uptime    time.Duration
	Now       time.Time
	Host      HostInfo
}

// Temperatures 按 CPU、GPU、电池分类的温度（摄氏度）。
type Temperatures struct {
	CPU     *float64 `json:"cpu,omitempty"`
	GPU     *float64 `json:"gpu,omitempty"`
	Battery *float64 `json:"battery,omitempty"`
}

// 电池剩余时间的特殊取值。
const (
	SecondsUnknown   int64 = -1
	SecondsUnlimited int64 = -2
)

// Battery 描述电池电量与充放电状态。
type Battery struct {
	Percent     float64
	Charging    bool
	SecondsLeft int64 // 可为 SecondsUnknown 或 SecondsUnlimited
}

// HostInfo 是系统描述所需的主机信息。
type HostInfo struct {
	Hostname string
	OS       string // 例如 linux
	Platform string // 例如 debian
	Kernel   string
	Arch     string
}

// SensorFlags 控制哪些传感器行出现在卡片上。
type SensorFlags struct {
	CPU           bool
	GPU           bool
	Battery       bool // 电池温度
	BatteryStatus bool
	Abbreviations bool
}

// Collector 提供主机状态快照。
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
}

// CollectorFunc 让普通函数实现 Collector。
type CollectorFunc func(ctx context.Context) (Snapshot, error)

// Collect 实现 Collector。
func (f CollectorFunc) Collect(ctx context.Context) (Snapshot, error) { return f(ctx) }

// Float 返回 v 的指针，便于构造快照。
func Float(v float64) *float64 { return &v }
