//go:build !linux

package status

import "errors"

const sysfsPowerSupply = ""

func readBattery(string) (*Battery, error) {
	return nil, errors.New("当前平台不支持读取电池状态")
}
