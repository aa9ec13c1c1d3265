package main

import (
	"fmt"

	"SentiPnL/internal/di"

	"github.com/spf13/cobra"
)

var analyzeOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP and websocket",
	Long: `Start the HTTP API. Reports are produced by POST /api/analyze (or at startup
with --analyze-on-start) and pushed to /api/ws subscribers.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, cleanup, err := di.InitializeApp(cfg)
		if err != nil {
			return fmt.Errorf("app initialization failed: %w", err)
		}
		defer cleanup()

		return app.Run(cmd.Context(), analyzeOnStart)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&analyzeOnStart, "analyze-on-start", false, "run one analysis once the server is up")
}
