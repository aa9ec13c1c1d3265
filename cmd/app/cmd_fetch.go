package main

import (
	"fmt"
	"os"
	"path/filepath"

	"SentiPnL/internal/service/feargreed"
	applogger "SentiPnL/pkg/logger"

	"github.com/spf13/cobra"
)

var fetchFlags struct {
	out   string
	limit int
}

var fetchIndexCmd = &cobra.Command{
	Use:   "fetch-index",
	Short: "Download the Fear & Greed Index history to CSV",
	RunE:  runFetchIndex,
}

func init() {
	fetchIndexCmd.Flags().StringVar(&fetchFlags.out, "out", "data/fear_greed_index.csv", "output CSV path")
	fetchIndexCmd.Flags().IntVar(&fetchFlags.limit, "limit", -1, "number of days to fetch; 0 means full history, -1 uses sentiment.limit")
}

func runFetchIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := applogger.New(&applogger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: "stderr"})
	if err != nil {
		return err
	}

	limit := cfg.Sentiment.Limit
	if fetchFlags.limit >= 0 {
		limit = fetchFlags.limit
	}
	set, err := feargreed.New(cfg.Sentiment.APIURL, limit, cfg.Sentiment.Timeout, l).LoadSentiment(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch index: %w", err)
	}

	if dir := filepath.Dir(fetchFlags.out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(fetchFlags.out)
	if err != nil {
		return err
	}
	if err := feargreed.WriteCSV(f, set); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	l.Info("index saved", applogger.String("path", fetchFlags.out), applogger.Int("days", len(set.Points)))
	return nil
}
