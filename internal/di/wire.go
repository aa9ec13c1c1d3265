//go:build wireinject
// +build wireinject

package di

import (
	"SentiPnL/internal/usecase"
	"SentiPnL/pkg/config"
	"SentiPnL/pkg/server"

	"github.com/google/wire"
)

var sinkSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideTradeSource,
	ProvideSentimentSource,
	ProvideChartRenderer,
	ProvideReportCache,
	ProvideReportStore,
	ProvideReportPublisher,
)

// InitializeApp wires up all dependencies and returns the HTTP application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		sinkSet,
		ProvideHub,
		ProvideHubNotifier,
		ProvideReportAnalyzer,
		ProvideReportsHandler,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeAnalyzer wires a ReportAnalyzer for one-shot CLI runs.
func InitializeAnalyzer(cfg *config.Config) (*usecase.ReportAnalyzer, func(), error) {
	wire.Build(
		sinkSet,
		ProvideNoNotifier,
		ProvideReportAnalyzer,
	)
	return nil, nil, nil
}
