package main

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/visistat/blurcache"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "管理背景模糊缓存",
	}
	cmd.AddCommand(newCacheShowCmd(root))
	cmd.AddCommand(newCacheClearCmd(root))
	return cmd
}

func openCache(cmd *cobra.Command, root *rootOptions) (*blurcache.Cache, error) {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(root, logger)
	if err != nil {
		return nil, err
	}
	return blurcache.New(cfg.CacheDirectory(), blurcache.WithBaseDir(cfg.AssetsDir), blurcache.WithLogger(logger)), nil
}

func newCacheShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示当前缓存记录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd, root)
			if err != nil {
				return err
			}
			rec, ok, err := cache.Record()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !ok {
				printDetail(w, "缓存为空：%s", cache.Dir())
				return nil
			}
			printKeyValue(w, "source", rec.Source)
			printKeyValue(w, "radius", rec.Radius)
			printKeyValue(w, "blurred", rec.BlurredPath)
			if fp := rec.Fingerprint; fp != "" {
				printKeyValue(w, "fingerprint", fp[:min(16, len(fp))])
			}
			printDetail(w, "目录：%s", cache.Dir())
			return nil
		},
	}
}

func newCacheClearCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "删除缓存记录与模糊图",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(cmd, root)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "已清除模糊缓存")
			printDetail(cmd.OutOrStdout(), "目录：%s", cache.Dir())
			return nil
		},
	}
}
