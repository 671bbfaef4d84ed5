// Package config 读取卡片配置。支持 TOML、YAML 与 JSON（允许注释），
// 键名与旧版插件的 JSON 配置一致。
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/visistat/layout"
	"github.com/ByLCY/visistat/readout"
	"github.com/ByLCY/visistat/status"
)

// ErrUnsupportedFormat 表示无法按扩展名识别配置文件格式。
var ErrUnsupportedFormat = errors.New("不支持的配置文件格式")

// Config 是完整的卡片配置。
type Config struct {
	MainTitle  string `json:"main_title" yaml:"main_title" toml:"main_title"`
	CustomName string `json:"custom_name" yaml:"custom_name" toml:"custom_name"`
	Language   string `json:"language" yaml:"language" toml:"language"`
	AssetsDir  string `json:"assets_dir" yaml:"assets_dir" toml:"assets_dir"`
	CacheDir   string `json:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`

	Background Background   `json:"background_config" yaml:"background_config" toml:"background_config"`
	Canvas     Canvas       `json:"canvas_config" yaml:"canvas_config" toml:"canvas_config"`
	Fonts      Fonts        `json:"font_config" yaml:"font_config" toml:"font_config"`
	Colors     Colors       `json:"color_config" yaml:"color_config" toml:"color_config"`
	Sensors    Sensors      `json:"sensor_config" yaml:"sensor_config" toml:"sensor_config"`
	User       User         `json:"user_config" yaml:"user_config" toml:"user_config"`
	Layout     LayoutConfig `json:"layout_config" yaml:"layout_config" toml:"layout_config"`
}

// Background 是背景图与模糊半径。
type Background struct {
	ImagePath  string `json:"image_path" yaml:"image_path" toml:"image_path"`
	BlurRadius int    `json:"blur_radius" yaml:"blur_radius" toml:"blur_radius"`
}

// Canvas 是没有背景图时的画布尺寸。
type Canvas struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Fonts 是标题与正文字体路径，空值使用系统或内置字体。
type Fonts struct {
	TitleFontPath   string `json:"title_font_path" yaml:"title_font_path" toml:"title_font_path"`
	ContentFontPath string `json:"content_font_path" yaml:"content_font_path" toml:"content_font_path"`
}

// Colors 是六种十六进制颜色。
type Colors struct {
	Background     string `json:"background" yaml:"background" toml:"background"`
	BingDark       string `json:"bing_dark" yaml:"bing_dark" toml:"bing_dark"`
	BingLight      string `json:"bing_light" yaml:"bing_light" toml:"bing_light"`
	FontColor      string `json:"font_color" yaml:"font_color" toml:"font_color"`
	TitleFontColor string `json:"title_font_color" yaml:"title_font_color" toml:"title_font_color"`
	ChartText      string `json:"chart_text" yaml:"chart_text" toml:"chart_text"`
}

// Sensors 控制温度、功率与电池行。
type Sensors struct {
	MonitorCPUTemp       bool   `json:"monitor_cpu_temp" yaml:"monitor_cpu_temp" toml:"monitor_cpu_temp"`
	ExternalCPUTempFile  string `json:"external_cpu_temp_file" yaml:"external_cpu_temp_file" toml:"external_cpu_temp_file"`
	ExternalTempFileUnit string `json:"external_temp_file_unit" yaml:"external_temp_file_unit" toml:"external_temp_file_unit"`
	MonitorGPUTemp       bool   `json:"monitor_gpu_temp" yaml:"monitor_gpu_temp" toml:"monitor_gpu_temp"`
	MonitorBatTemp       bool   `json:"monitor_bat_temp" yaml:"monitor_bat_temp" toml:"monitor_bat_temp"`
	MonitorBatteryStatus bool   `json:"monitor_battery_status" yaml:"monitor_battery_status" toml:"monitor_battery_status"`
	TempUnit             string `json:"temp_unit" yaml:"temp_unit" toml:"temp_unit"`
	ShowTempAbbr         bool   `json:"show_temp_abbr" yaml:"show_temp_abbr" toml:"show_temp_abbr"`
}

// User 是固定的用户名与头像。
type User struct {
	FixedUserName   string `json:"fixed_user_name" yaml:"fixed_user_name" toml:"fixed_user_name"`
	FixedAvatarPath string `json:"fixed_avatar_path" yaml:"fixed_avatar_path" toml:"fixed_avatar_path"`
}

// LayoutConfig 是两种布局的缩放与图表最小尺寸。
type LayoutConfig struct {
	VerticalScale          float64 `json:"vertical_scale" yaml:"vertical_scale" toml:"vertical_scale"`
	HorizontalScale        float64 `json:"horizontal_scale" yaml:"horizontal_scale" toml:"horizontal_scale"`
	MinChartSizeVertical   int     `json:"min_chart_size_vertical" yaml:"min_chart_size_vertical" toml:"min_chart_size_vertical"`
	MinChartSizeHorizontal int     `json:"min_chart_size_horizontal" yaml:"min_chart_size_horizontal" toml:"min_chart_size_horizontal"`
}

// Default 返回默认配置。
func Default() *Config {
	opts := layout.DefaultOptions()
	p := opts.Palette
	return &Config{
		MainTitle:  "服务器运行状态",
		Language:   "zh",
		Background: Background{BlurRadius: 10},
		Canvas:     Canvas{Width: 900, Height: 350},
		Colors: Colors{
			Background:     p.Background.Hex(),
			BingDark:       p.AccentDark.Hex(),
			BingLight:      p.AccentLight.Hex(),
			FontColor:      p.Font.Hex(),
			TitleFontColor: p.TitleFont.Hex(),
			ChartText:      p.ChartText.Hex(),
		},
		Sensors: Sensors{
			MonitorCPUTemp:       true,
			ExternalTempFileUnit: "C",
			MonitorGPUTemp:       true,
			MonitorBatteryStatus: true,
			TempUnit:             "C",
			ShowTempAbbr:         true,
		},
		User: User{FixedUserName: "AstroBot 用户"},
		Layout: LayoutConfig{
			VerticalScale:          opts.VerticalScale,
			HorizontalScale:        opts.HorizontalScale,
			MinChartSizeVertical:   opts.MinChartVertical,
			MinChartSizeHorizontal: opts.MinChartHorizontal,
		},
	}
}

// Load 按扩展名解析 path，未出现的键保留默认值。相对的 assets_dir 以配置文件所在目录为基准，
// 未配置时即为该目录。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	cfg := Default()
	if err := Decode(data, filepath.Ext(path), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	dir := filepath.Dir(path)
	switch {
	case cfg.AssetsDir == "":
		cfg.AssetsDir = dir
	case !filepath.IsAbs(cfg.AssetsDir):
		cfg.AssetsDir = filepath.Join(dir, cfg.AssetsDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode 按扩展名（.toml / .yaml / .yml / .json / .jsonc）将 data 解码到 cfg。
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Validate 检查数值范围、单位与颜色，返回所有问题。
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas_config 尺寸必须为正数: %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Background.BlurRadius < 0 {
		errs = append(errs, fmt.Errorf("blur_radius 不能为负数: %d", c.Background.BlurRadius))
	}
	if c.Layout.VerticalScale <= 0 || c.Layout.HorizontalScale <= 0 {
		errs = append(errs, fmt.Errorf("layout_config 缩放必须为正数: %g / %g", c.Layout.VerticalScale, c.Layout.HorizontalScale))
	}
	if c.Layout.MinChartSizeVertical < 0 || c.Layout.MinChartSizeHorizontal < 0 {
		errs = append(errs, errors.New("图表最小尺寸不能为负数"))
	}
	if _, err := readout.ParseTempUnit(c.Sensors.TempUnit); err != nil {
		errs = append(errs, fmt.Errorf("temp_unit: %w", err))
	}
	if _, err := readout.ParseTempUnit(c.Sensors.ExternalTempFileUnit); err != nil {
		errs = append(errs, fmt.Errorf("external_temp_file_unit: %w", err))
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Palette 解析六种颜色，空值使用默认颜色。
func (c *Config) Palette() (layout.Palette, error) {
	p := layout.DefaultPalette()
	fields := []struct {
		key   string
		value string
		dst   *layout.Color
	}{
		{"background", c.Colors.Background, &p.Background},
		{"bing_dark", c.Colors.BingDark, &p.AccentDark},
		{"bing_light", c.Colors.BingLight, &p.AccentLight},
		{"font_color", c.Colors.FontColor, &p.Font},
		{"title_font_color", c.Colors.TitleFontColor, &p.TitleFont},
		{"chart_text", c.Colors.ChartText, &p.ChartText},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		col, err := layout.ParseColor(f.value)
		if err != nil {
			return p, fmt.Errorf("color_config.%s: %w", f.key, err)
		}
		*f.dst = col
	}
	return p, nil
}

// LayoutOptions 转换为布局配置。字体路径已按 assets_dir 解析。
func (c *Config) LayoutOptions() (layout.Options, error) {
	palette, err := c.Palette()
	if err != nil {
		return layout.Options{}, err
	}
	opts := layout.DefaultOptions()
	opts.VerticalScale = c.Layout.VerticalScale
	opts.HorizontalScale = c.Layout.HorizontalScale
	opts.MinChartVertical = c.Layout.MinChartSizeVertical
	opts.MinChartHorizontal = c.Layout.MinChartSizeHorizontal
	opts.TitleFont = c.Resolve(c.Fonts.TitleFontPath)
	opts.ContentFont = c.Resolve(c.Fonts.ContentFontPath)
	opts.Palette = palette
	opts.Labels = layout.LabelsFor(c.Language)
	return opts, nil
}

// SensorFlags 返回传感器开关。
func (c *Config) SensorFlags() status.SensorFlags {
	return status.SensorFlags{
		CPU:           c.Sensors.MonitorCPUTemp,
		GPU:           c.Sensors.MonitorGPUTemp,
		Battery:       c.Sensors.MonitorBatTemp,
		BatteryStatus: c.Sensors.MonitorBatteryStatus,
		Abbreviations: c.Sensors.ShowTempAbbr,
	}
}

// TempUnit 返回显示单位，无效值回退为摄氏度。
func (c *Config) TempUnit() readout.TempUnit {
	u, err := readout.ParseTempUnit(c.Sensors.TempUnit)
	if err != nil {
		return readout.Celsius
	}
	return u
}

// HostOptions 返回本机采集器的配置。
func (c *Config) HostOptions() status.HostOptions {
	unit, err := readout.ParseTempUnit(c.Sensors.ExternalTempFileUnit)
	if err != nil {
		unit = readout.Celsius
	}
	return status.HostOptions{
		Flags:        c.SensorFlags(),
		ExternalFile: c.Resolve(c.Sensors.ExternalCPUTempFile),
		FileUnit:     unit,
	}
}

// ContentOptions 返回快照格式化配置。
func (c *Config) ContentOptions() status.ContentOptions {
	return status.ContentOptions{
		UserName:   c.User.FixedUserName,
		Title:      c.MainTitle,
		SystemInfo: c.CustomName,
		Flags:      c.SensorFlags(),
		Unit:       c.TempUnit(),
		Labels:     layout.LabelsFor(c.Language),
	}
}

// Resolve 将相对路径解析到 assets_dir 下；空路径与 embed: 字体保持不变。
func (c *Config) Resolve(p string) string {
	if p == "" || strings.HasPrefix(p, "embed:") || filepath.IsAbs(p) || c.AssetsDir == "" {
		return p
	}
	return filepath.Join(c.AssetsDir, p)
}

// CacheDirectory 返回模糊缓存目录，默认与 assets_dir 相同。
func (c *Config) CacheDirectory() string {
	if c.CacheDir == "" {
		return c.AssetsDir
	}
	return c.Resolve(c.CacheDir)
}
