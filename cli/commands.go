package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zintix-labs/lottolab/calendar"
	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

func (a *App) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "下載最新 CSV 資料",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Fetch(cmd.Context())
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [csv]",
		Short: "匯入 CSV 到資料庫（未指定檔案時匯入最近一次下載）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.Import(cmd.Context(), path)
		},
	}
}

func (a *App) summaryCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "統計摘要",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Summary(cmd.Context(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table|json|yaml")
	return cmd
}

func (a *App) chartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "產出統計圖 PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.Charts(cmd.Context())
			return err
		},
	}
}

func (a *App) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "產出摘要 PDF（含圖表）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Report(cmd.Context())
		},
	}
}

func (a *App) weeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "產出星期號碼統計 PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Weekly(cmd.Context())
		},
	}
}

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "啟動 Web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Serve(cmd.Context())
		},
	}
}

func (a *App) gapCmd() *cobra.Command {
	var withChart bool
	cmd := &cobra.Command{
		Use:   "gap <number>",
		Short: "單一號碼的出現間隔分析",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errs.Warnf("number must be an integer: %q", args[0])
			}
			return a.Gap(cmd.Context(), n, withChart)
		},
	}
	cmd.Flags().BoolVar(&withChart, "chart", false, "also write gap_NN.png into the chart dir")
	return cmd
}

func (a *App) calendarCmd() *cobra.Command {
	var (
		start, end string
		queries    []string
		colors     []string
		xlsx       bool
		out        string
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "日曆式開獎表格（最多 5 個查詢號碼上色）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := calendar.Options{}
			var err error
			if start != "" {
				if opt.Start, err = draw.ParseDate(start); err != nil {
					return errs.WrapAs(errs.Warn, err, "start is not a valid date")
				}
			}
			if end != "" {
				if opt.End, err = draw.ParseDate(end); err != nil {
					return errs.WrapAs(errs.Warn, err, "end is not a valid date")
				}
			}
			if len(queries) > calendar.MaxQuery {
				return errs.Warnf("at most %d query numbers", calendar.MaxQuery)
			}
			copy(opt.Queries[:], queries)
			copy(opt.Colors[:], colors)
			path := out
			if path == "" && xlsx {
				path = a.cfg.CalendarXLSXPath(a.now())
			}
			return a.Calendar(cmd.Context(), opt, path)
		},
	}
	f := cmd.Flags()
	f.StringVar(&start, "start", "", "start date YYYY-MM-DD (default: earliest of the last 144 draws)")
	f.StringVar(&end, "end", "", "end date YYYY-MM-DD (default: latest draw)")
	f.StringSliceVarP(&queries, "query", "q", nil, "query numbers, e.g. -q 7,18")
	f.StringSliceVar(&colors, "color", nil, "colors for each query number (#rrggbb)")
	f.BoolVar(&xlsx, "xlsx", false, "also write calendar_YYYYMMDD.xlsx into the report dir")
	f.StringVarP(&out, "output", "o", "", "write xlsx to this path")
	return cmd
}

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "檢視或建立設定檔",
		Long: `設定來源優先序（高到低）：
  1. CLI flags
  2. 環境變數 LOTTO_*
  3. 設定檔 lotto.yaml
  4. 內建預設值`,
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "顯示目前生效的設定",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.YAML()
			if err != nil {
				return errs.Wrap(err, "marshal config")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "以預設值建立設定檔（已存在時不覆寫）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().WriteFile(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "已建立 %s\n", path)
			return err
		},
	}
	initCmd.Flags().StringVar(&path, "path", config.FileName+"."+config.FileType, "config file path")
	cmd.AddCommand(show, initCmd)
	return cmd
}
