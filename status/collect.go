package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/ByLCY/visistat/readout"
)

// HostOptions 配置 HostCollector。
type HostOptions struct {
	Flags        SensorFlags
	ExternalFile string           // 外部 CPU 温度 / 功率读数文件
	FileUnit     readout.TempUnit // 外部文件中无单位温度的单位
	DiskPath     string           // 默认 "/"
	CPUInterval  time.Duration    // CPU 使用率采样间隔，默认 100ms
	Logger       *log.Logger
}

// HostCollector 通过 gopsutil 读取本机状态。
type HostCollector struct {
	opts HostOptions
	now  func() time.Time
}

var _ Collector = (*HostCollector)(nil)

// NewHostCollector 创建本机采集器。
func NewHostCollector(opts HostOptions) *HostCollector {
	if opts.DiskPath == "" {
		opts.DiskPath = "/"
	}
	if opts.CPUInterval <= 0 {
		opts.CPUInterval = 100 * time.Millisecond
	}
	if opts.FileUnit == "" {
		opts.FileUnit = readout.Celsius
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &HostCollector{opts: opts, now: time.Now}
}

// Collect 实现 Collector。CPU、内存、磁盘使用率读取失败时返回错误，
// 其余读数缺失时保持为空。
func (c *HostCollector) Collect(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Now: c.now()}

	pct, err := cpu.PercentWithContext(ctx, c.opts.CPUInterval, false)
	if err != nil || len(pct) == 0 {
		return Snapshot{}, fmt.Errorf("读取 CPU 使用率失败: %w", orEmpty(err))
	}
	snap.CPUPercent = pct[0]

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("读取内存使用率失败: %w", err)
	}
	snap.MemPercent = vm.UsedPercent

	du, err := disk.UsageWithContext(ctx, c.opts.DiskPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("读取磁盘 %s 使用率失败: %w", c.opts.DiskPath, err)
	}
	snap.DiskPercent = du.UsedPercent

	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		snap.BytesSent = counters[0].BytesSent
		snap.BytesRecv = counters[0].BytesRecv
	} else {
		c.opts.Logger.Debug("读取网络流量失败", "err", err)
	}

	if up, err := host.UptimeWithContext(ctx); err == nil {
		snap.Uptime = time.Duration(up) * time.Second
	} else {
		c.opts.Logger.Debug("读取运行时间失败", "err", err)
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.Host = HostInfo{
			Hostname: info.Hostname,
			OS:       info.OS,
			Platform: info.Platform,
			Kernel:   info.KernelVersion,
			Arch:     info.KernelArch,
		}
	} else {
		c.opts.Logger.Debug("读取主机信息失败", "err", err)
	}

	c.collectSensors(ctx, &snap)
	return snap, nil
}

func (c *HostCollector) collectSensors(ctx context.Context, snap *Snapshot) {
	flags := c.opts.Flags
	if flags.CPU && c.opts.ExternalFile != "" {
		r, err := readout.Read(c.opts.ExternalFile, c.opts.FileUnit)
		if err != nil {
			c.opts.Logger.Debug("外部读数不可用", "file", c.opts.ExternalFile, "err", err)
		}
		snap.Temperatures.CPU = r.CPUCelsius
		snap.PowerWatts = r.PowerWatts
	}

	if flags.CPU || flags.GPU || flags.Battery {
		// 部分传感器读取失败时 gopsutil 仍返回已读到的结果
		stats, err := host.SensorsTemperaturesWithContext(ctx)
		if err != nil && len(stats) == 0 {
			c.opts.Logger.Debug("读取温度传感器失败", "err", err)
		}
		t := ClassifyTemperatures(stats)
		if flags.CPU && snap.Temperatures.CPU == nil {
			snap.Temperatures.CPU = t.CPU
		}
		if flags.GPU {
			snap.Temperatures.GPU = t.GPU
		}
		if flags.Battery {
			snap.Temperatures.Battery = t.Battery
		}
	}

	if flags.BatteryStatus {
		b, err := readBattery(sysfsPowerSupply)
		if err != nil {
			c.opts.Logger.Debug("读取电池状态失败", "err", err)
		}
		snap.Battery = b
	}
}

// ClassifyTemperatures 按传感器名称归类温度，同类取最大值。
func ClassifyTemperatures(stats []host.TemperatureStat) Temperatures {
	var cpuCore, cpuOther, gpuT, batT *float64
	for _, s := range stats {
		key := strings.ToLower(s.SensorKey)
		v := s.Temperature
		switch {
		case strings.HasPrefix(key, "coretemp") || strings.HasPrefix(key, "cpu_thermal") || strings.HasPrefix(key, "k10temp"):
			cpuCore = maxOf(cpuCore, v)
		case strings.Contains(key, "cpu") || strings.Contains(key, "package"):
			cpuOther = maxOf(cpuOther, v)
		case strings.Contains(key, "gpu") || strings.Contains(key, "nouveau") || strings.Contains(key, "nvidia"):
			gpuT = maxOf(gpuT, v)
		case strings.Contains(key, "battery"):
			batT = maxOf(batT, v)
		}
	}
	t := Temperatures{CPU: cpuCore, GPU: gpuT, Battery: batT}
	if t.CPU == nil {
		t.CPU = cpuOther
	}
	return t
}

func maxOf(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}

func orEmpty(err error) error {
	if err == nil {
		return errors.New("无数据")
	}
	return err
}
