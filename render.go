package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/visistat/compose"
	"github.com/ByLCY/visistat/config"
	"github.com/ByLCY/visistat/layout"
	"github.com/ByLCY/visistat/status"
)

type renderOptions struct {
	output string
	debug  string
	sample bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "生成状态卡片 PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			card, err := composeCard(cmd, root, opts.sample)
			if err != nil {
				return err
			}
			if err := card.Save(opts.output); err != nil {
				return err
			}
			if opts.debug != "" {
				if err := layout.WriteDebugJSON(card.Layout, opts.debug); err != nil {
					return err
				}
				logger.Debug("已写入布局调试 JSON", "path", opts.debug)
			}
			b := card.Image.Bounds()
			printSuccess(cmd.OutOrStdout(), "已生成状态卡片：%s", opts.output)
			printDetail(cmd.OutOrStdout(), "%dx%d %s, 背景 %s, 头像 %s, 模糊缓存 %s",
				b.Dx(), b.Dy(), card.Layout.Orientation, card.Background, card.Avatar, card.Blur)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "status.png", "输出 PNG 路径")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "使用示例数据代替本机采集")
	return cmd
}

// composeCard 加载配置、采集状态并合成卡片。合成失败时返回带提示前缀的错误，
// 调试模式下输出堆栈。
func composeCard(cmd *cobra.Command, root *rootOptions, sample bool) (*compose.Card, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(root, logger)
	if err != nil {
		return nil, err
	}
	warnTemplates(logger, cfg)

	composer, err := compose.New(cfg, compose.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	var collector status.Collector = status.NewHostCollector(hostOptions(cfg, logger))
	if sample {
		collector = sampleCollector
	}

	p := newProgress(logger)
	snap, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("⚠️ 状态获取失败: %w", err)
	}
	card, err := composer.Compose(ctx, snap)
	if err != nil {
		var re *compose.RenderError
		if errors.As(err, &re) && len(re.Stack) > 0 {
			logger.Debug("合成时发生 panic", "stage", re.Stage, "stack", string(re.Stack))
		}
		return nil, fmt.Errorf("⚠️ 状态获取失败: %w", err)
	}
	p.done("已合成状态卡片")
	return card, nil
}

func hostOptions(cfg *config.Config, logger *log.Logger) status.HostOptions {
	opts := cfg.HostOptions()
	opts.Logger = logger
	return opts
}

func warnTemplates(logger *log.Logger, cfg *config.Config) {
	for _, text := range []string{cfg.MainTitle, cfg.CustomName} {
		for _, name := range status.UnknownVars(text) {
			logger.Warn("未知的模板变量", "name", name, "text", text)
		}
	}
}
