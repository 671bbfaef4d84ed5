// Package readout 解析外部传感器输出文件，例如 "CPU: 45.2°C POWER: 12.5W"。
//
// 文件被切分为数值、单位、单词与符号。一个标签（cpu / power）之后出现的第一个
// 数值即为该标签的读数；功率读数必须带 W 单位。
package readout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrNoReading 表示文件中既没有 CPU 温度也没有功率。
var ErrNoReading = errors.New("未找到传感器读数")

// TempUnit 是温度单位。
type TempUnit string

const (
	Celsius    TempUnit = "C"
	Fahrenheit TempUnit = "F"
)

// ParseTempUnit 接受 C / F（大小写不敏感）与 ℃ / ℉，空字符串视为摄氏度。
func ParseTempUnit(s string) (TempUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "C", "℃":
		return Celsius, nil
	case "F", "℉":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("未知的温度单位 %q", s)
	}
}

// ToCelsius 将 unit 下的温度换算为摄氏度。
func (u TempUnit) ToCelsius(v float64) float64 {
	if u == Fahrenheit {
		return (v - 32) * 5 / 9
	}
	return v
}

// FromCelsius 将摄氏度换算为 unit 下的温度。
func (u TempUnit) FromCelsius(c float64) float64 {
	if u == Fahrenheit {
		return c*9/5 + 32
	}
	return c
}

var (
	readoutLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?`},
		{Name: "Degree", Pattern: `°`},
		{Name: "Unit", Pattern: `℃|℉|[CcFfWw]\b`},
		{Name: "Word", Pattern: `[\p{L}_]+`},
		{Name: "Punct", Pattern: `[:=]`},
		{Name: "Other", Pattern: `\S`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(readoutLexer),
		participle.Elide("Whitespace"),
	)
)

// File 是读数文件的词法序列。
type File struct {
	Tokens []*Token `parser:"@@*"`
}

// Token 是数值、单词或符号之一。单独出现的单位字母按单词处理。
type Token struct {
	Quantity *Quantity `parser:"  @@"`
	Word     *string   `parser:"| @(Word | Unit)"`
	Mark     *string   `parser:"| @(Punct | Degree | Other)"`
}

// Quantity 是带可选单位的数值。
type Quantity struct {
	Value  float64 `parser:"@Number"`
	Degree bool    `parser:"@Degree?"`
	Unit   string  `parser:"@Unit?"`
}

// Reading 是解析结果，温度统一为摄氏度。缺失的读数为 nil。
type Reading struct {
	CPUCelsius *float64
	PowerWatts *float64
}

// Parse 解析 r 中的读数。没有单位的温度按 fileUnit 解释。
func Parse(r io.Reader, fileUnit TempUnit) (Reading, error) {
	file, err := fileParser.Parse("", r)
	if err != nil {
		return Reading{}, fmt.Errorf("解析读数文件失败: %w", err)
	}
	return file.Reading(fileUnit)
}

// ParseString 解析字符串形式的读数。
func ParseString(input string, fileUnit TempUnit) (Reading, error) {
	file, err := fileParser.ParseString("", input)
	if err != nil {
		return Reading{}, fmt.Errorf("解析读数文件失败: %w", err)
	}
	return file.Reading(fileUnit)
}

// Read 打开 path 并解析其中的读数。
func Read(path string, fileUnit TempUnit) (Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return Reading{}, fmt.Errorf("无法打开读数文件 %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, fileUnit)
}

type label int

const (
	labelNone label = iota
	labelCPU
	labelPower
)

// Reading 从词法序列中提取 CPU 温度与功率，每项取第一个匹配。
func (f *File) Reading(fileUnit TempUnit) (Reading, error) {
	var out Reading
	pending := labelNone
	for _, tok := range f.Tokens {
		switch {
		case tok.Word != nil:
			switch strings.ToLower(*tok.Word) {
			case "cpu":
				if out.CPUCelsius == nil {
					pending = labelCPU
				}
			case "power":
				if out.PowerWatts == nil {
					pending = labelPower
				}
			}
		case tok.Quantity != nil:
			q := tok.Quantity
			switch pending {
			case labelCPU:
				unit := fileUnit
				if u, err := ParseTempUnit(q.Unit); err == nil && q.Unit != "" {
					unit = u
				}
				c := unit.ToCelsius(q.Value)
				out.CPUCelsius = &c
			case labelPower:
				if strings.EqualFold(q.Unit, "w") {
					w := q.Value
					out.PowerWatts = &w
				}
			}
			pending = labelNone
		}
	}
	if out.CPUCelsius == nil && out.PowerWatts == nil {
		return out, ErrNoReading
	}
	return out, nil
}
