package main

import (
	"fmt"
	"io"
	"strings"

	"SentiPnL/internal/di"
	"SentiPnL/internal/domain/models"
	dservice "SentiPnL/internal/domain/service"
	"SentiPnL/pkg/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	trades    string
	sentiment string
	images    string
	noCharts  bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the sentiment/performance analysis once",
	Long: `Load the trader export and the Fear & Greed Index, merge them by day,
print per-zone statistics and write the charts to the image directory.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.trades, "trades", "", "trader CSV path (overrides data.trader_paths)")
	f.StringVar(&analyzeFlags.sentiment, "sentiment", "", "sentiment CSV path (overrides data.sentiment_paths)")
	f.StringVar(&analyzeFlags.images, "images", "", "chart output directory")
	f.BoolVar(&analyzeFlags.noCharts, "no-charts", false, "skip chart rendering")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	analyzer, cleanup, err := di.InitializeAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer cleanup()

	rep, err := analyzer.Analyze(cmd.Context(), dservice.AnalyzeOptions{SkipCharts: analyzeFlags.noCharts})
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), rep)
	return nil
}

// applyAnalyzeFlags layers CLI flags over the config. Logs go to stderr so the
// summary on stdout stays clean.
func applyAnalyzeFlags(cfg *config.Config) {
	if analyzeFlags.trades != "" {
		cfg.Data.TraderPaths = []string{analyzeFlags.trades}
	}
	if analyzeFlags.sentiment != "" {
		cfg.Data.SentimentPaths = []string{analyzeFlags.sentiment}
		cfg.Sentiment.Source = config.SentimentSourceCSV
	}
	if analyzeFlags.images != "" {
		cfg.Data.ImageDir = analyzeFlags.images
	}
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printReport(w io.Writer, rep *models.Report) {
	rows := make([][]string, 0, len(rep.Buckets))
	for _, b := range rep.Buckets {
		lev := "-"
		if b.MeanLeverage != nil {
			lev = fmt.Sprintf("%.2fx", *b.MeanLeverage)
		}
		rows = append(rows, []string{
			string(b.Bucket),
			fmt.Sprintf("%d", b.Trades),
			fmt.Sprintf("$%.2f", b.MeanPnL),
			fmt.Sprintf("%.1f%%", b.WinRate*100),
			b.TotalPnL,
			lev,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Sentiment", "Trades", "Mean PnL", "Win Rate", "Total PnL", "Mean Leverage").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintf(w, "Report %s (%d merged rows)\n", rep.ID, rep.MergedRows)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Correlation index vs PnL: %s\n", formatCorr(rep.Correlations.ValueVsPnL))
	fmt.Fprintf(w, "Correlation index vs daily PnL: %s (%d days)\n", formatCorr(rep.Correlations.ValueVsDailyPnL), rep.Correlations.Days)
	if len(rep.Charts) > 0 {
		fmt.Fprintf(w, "Charts: %s\n", strings.Join(rep.Charts, ", "))
	}
}

func formatCorr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}
