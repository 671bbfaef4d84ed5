package main

import (
	"context"
	"runtime"
	"time"

	"github.com/ByLCY/visistat/status"
)

// sampleCollector 返回固定的示例数据，用于在没有真实采集的环境下预览卡片。
var sampleCollector = status.CollectorFunc(func(ctx context.Context) (status.Snapshot, error) {
	return status.Snapshot{
		CPUPercent:   42,
		MemPercent:   63.5,
		DiskPercent:  80.1,
		Temperatures: status.Temperatures{CPU: status.Float(52.5)},
		PowerWatts:   status.Float(18.2),
		Battery:      &status.Battery{Percent: 76, SecondsLeft: 2*3600 + 15*60},
		BytesSent:    10 * 1024 * 1024,
		BytesRecv:    20 * 1024 * 1024,
		Uptime:       3661 * time.Second,
		Now:          time.Now(),
		Host: status.HostInfo{
			Hostname: "sample-host",
			OS:       runtime.GOOS,
			Platform: "sample",
			Kernel:   "6.1.0",
			Arch:     runtime.GOARCH,
		},
	}, nil
})
