//go:build linux

package status

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysfsPowerSupply = "/sys/class/power_supply"

// readBattery 读取 root 下第一个 BAT* 电源的电量与状态。没有电池时返回 nil。
func readBattery(root string) (*Battery, error) {
	matches, err := filepath.Glob(filepath.Join(root, "BAT*"))
	if err != nil {
		return nil, err
	}
	for _, dir := range matches {
		capacity, err := readNumber(dir, "capacity")
		if err != nil {
			continue
		}
		status := strings.TrimSpace(readString(dir, "status"))
		// 除放电与未知外的状态都表示接通电源
		if status == "Discharging" {
			return &Battery{Percent: capacity, SecondsLeft: secondsLeft(dir)}, nil
		}
		if status == "" || status == "Unknown" {
			return &Battery{Percent: capacity, SecondsLeft: SecondsUnknown}, nil
		}
		return &Battery{Percent: capacity, Charging: true, SecondsLeft: SecondsUnlimited}, nil
	}
	return nil, fmt.Errorf("未在 %s 找到电池", root)
}

// secondsLeft 由 energy_now / power_now 或 charge_now / current_now 推算剩余时间。
func secondsLeft(dir string) int64 {
	pairs := [][2]string{{"energy_now", "power_now"}, {"charge_now", "current_now"}}
	for _, p := range pairs {
		amount, err1 := readNumber(dir, p[0])
		rate, err2 := readNumber(dir, p[1])
		if err1 != nil || err2 != nil {
			continue
		}
		if rate <= 0 {
			return SecondsUnknown
		}
		return int64(amount / rate * 3600)
	}
	return SecondsUnknown
}

func readString(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return string(data)
}

func readNumber(dir, name string) (float64, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
}
