package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ByLCY/visistat/layout"
)

func newLayoutCmd(root *rootOptions) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "输出布局测量结果而不写入图片",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := composeCard(cmd, root, sample)
			if err != nil {
				return err
			}
			printLayout(cmd.OutOrStdout(), card.Layout)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "使用示例数据代替本机采集")
	return cmd
}

func printLayout(w io.Writer, res *layout.Result) {
	m := res.Manifest
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("布局 %dx%d (%s)", res.Width, res.Height, res.Orientation)))
	if m != nil {
		rc := m.Context
		printKeyValue(w, "scale", strconv.FormatFloat(rc.Scale, 'f', 3, 64))
		printKeyValue(w, "margin", rc.Margin)
		printKeyValue(w, "line spacing", rc.LineSpacing)
		printKeyValue(w, "avatar", rc.AvatarSize)
		printKeyValue(w, "chart", m.ChartSize)
		printKeyValue(w, "content rows", len(m.Rows))
		printKeyValue(w, "content height", m.ContentHeight)
		if v := m.Vertical; v != nil {
			printKeyValue(w, "required", v.Required)
			printKeyValue(w, "offset y", v.OffsetY)
			if v.Required > res.Height {
				printWarning(w, "内容高度 %d 超出画布 %d", v.Required, res.Height)
			}
		}
		if h := m.Horizontal; h != nil {
			printKeyValue(w, "text block y", h.TextBlockY)
			printKeyValue(w, "chart block y", h.ChartBlockY)
			printKeyValue(w, "chart area x", h.ChartAreaX)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, boxTable(res))
}

func boxTable(res *layout.Result) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("kind", "x", "y", "w", "h", "content").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	for _, img := range res.Images {
		t.Row(string(img.Kind), itoa(img.X), itoa(img.Y), itoa(img.Width), itoa(img.Height), img.Label)
	}
	for _, ln := range res.Lines {
		t.Row("line", itoa(ln.X1), itoa(ln.Y1), itoa(ln.X2-ln.X1), itoa(ln.Width), "")
	}
	for _, tb := range res.Texts {
		t.Row("text", itoa(tb.X), itoa(tb.Y), itoa(tb.Width), strconv.FormatFloat(tb.Font.Size, 'f', 1, 64), tb.Content)
	}
	return t
}

func itoa(v int) string { return strconv.Itoa(v) }
