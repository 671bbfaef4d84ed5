package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/visistat/config"
)

var version = "dev"

// defaultConfigFiles 是未指定 -c 时在当前目录查找的配置文件。
var defaultConfigFiles = []string{"visistat.toml", "visistat.yaml", "visistat.yml", "visistat.json", "visistat.jsonc"}

type rootOptions struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "visistat",
		Short:         "生成服务器运行状态卡片",
		Long:          `visistat 采集 CPU、内存、磁盘、温度与网络流量，并按画布宽高比自动选择纵向或横向布局，输出一张状态卡片图片。`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "输出调试日志")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "配置文件 (toml / yaml / json)")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newLayoutCmd(opts))
	root.AddCommand(newCacheCmd(opts))
	return root
}

// loadConfig 读取 -c 指定的配置；未指定时依次查找当前目录下的默认文件，都不存在则使用默认配置。
func loadConfig(opts *rootOptions, logger *log.Logger) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		for _, name := range defaultConfigFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path == "" {
		logger.Debug("未找到配置文件，使用默认配置")
		cfg := config.Default()
		if wd, err := os.Getwd(); err == nil {
			cfg.AssetsDir = wd
		}
		return cfg, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	abs, _ := filepath.Abs(path)
	logger.Debug("已加载配置", "path", abs, "assets", cfg.AssetsDir)
	return cfg, nil
}
