package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SentiPnL/pkg/config"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sentipnl",
	Short: "Trader performance versus market sentiment",
	Long: `sentipnl joins a trader's historical fills with the Bitcoin Fear & Greed Index
by calendar day and reports PnL, win rate and leverage per sentiment zone.

Commands:
  analyze      - run one analysis and print the per-zone summary
  serve        - serve reports over HTTP and websocket
  fetch-index  - download the Fear & Greed history to CSV`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	rootCmd.AddCommand(analyzeCmd, serveCmd, fetchIndexCmd)
}

// loadConfig reads the config file, falling back to defaults when it is missing.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
