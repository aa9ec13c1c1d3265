package di

import (
	"context"
	"fmt"
	"time"

	"SentiPnL/internal/domain/repository"
	"SentiPnL/internal/handler/api"
	"SentiPnL/internal/handler/ws"
	internalrepo "SentiPnL/internal/repository"
	"SentiPnL/internal/service/cache"
	"SentiPnL/internal/service/feargreed"
	"SentiPnL/internal/service/ratelimit"
	"SentiPnL/internal/services/charts"
	"SentiPnL/internal/usecase"
	pkgch "SentiPnL/pkg/clickhouse"
	"SentiPnL/pkg/config"
	xhttp "SentiPnL/pkg/http"
	pkgkafka "SentiPnL/pkg/kafka"
	applogger "SentiPnL/pkg/logger"
	"SentiPnL/pkg/metrics"
	"SentiPnL/pkg/server"
)

// ProvideLogger builds the structured logger from the logging section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

func ProvideTradeSource(cfg *config.Config, l *applogger.Logger) repository.TradeSource {
	return internalrepo.NewCSVTradeSource(cfg.Data.TraderPaths, l)
}

// ProvideSentimentSource picks the CSV file or the live API.
func ProvideSentimentSource(cfg *config.Config, l *applogger.Logger) repository.SentimentSource {
	if cfg.Sentiment.Source == config.SentimentSourceAPI {
		return feargreed.New(cfg.Sentiment.APIURL, cfg.Sentiment.Limit, cfg.Sentiment.Timeout, l)
	}
	return internalrepo.NewCSVSentimentSource(cfg.Data.SentimentPaths, l)
}

func ProvideChartRenderer(cfg *config.Config, l *applogger.Logger) repository.ChartRenderer {
	return charts.New(cfg.Data.ImageDir,
		charts.WithDPI(cfg.Data.ChartDPI),
		charts.WithSizeInches(cfg.Data.ChartWidthIn, cfg.Data.ChartHeightIn),
		charts.WithLogger(l),
	)
}

// ProvideReportCache returns a Redis-backed cache when configured, otherwise in-process.
func ProvideReportCache(cfg *config.Config, l *applogger.Logger) (repository.ReportCache, func(), error) {
	var store cache.BytesCache
	cleanup := func() {}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, err
		}
		cleanup = func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}
		store = rc
	default:
		store = cache.NewTTLCache()
	}
	return cache.NewReportCache(store, cfg.Cache.Prefix, cfg.Cache.TTL), cleanup, nil
}

// ProvideReportStore uses ClickHouse when enabled, otherwise a bounded in-memory history.
func ProvideReportStore(cfg *config.Config, l *applogger.Logger) (repository.ReportStore, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return internalrepo.NewMemoryReportStore(100), func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	l.Info("clickhouse ready", applogger.String("database", client.Database()))

	store := internalrepo.NewCHReportStore(client, l)
	return store, func() {
		if err := store.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}, nil
}

// ProvideReportPublisher returns nil when Kafka is disabled.
func ProvideReportPublisher(cfg *config.Config, l *applogger.Logger) (repository.ReportPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready", applogger.Strings("brokers", cfg.Kafka.Brokers), applogger.String("topic", cfg.Kafka.Topic))

	pub := internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic, l)
	return pub, func() {
		if err := pub.Close(); err != nil {
			l.Warn("kafka close error", applogger.Error(err))
		}
	}, nil
}

func ProvideHub(l *applogger.Logger) *ws.Hub {
	return ws.NewHub(l)
}

// ProvideHubNotifier exposes the websocket hub as the report notifier.
func ProvideHubNotifier(h *ws.Hub) repository.ReportNotifier {
	return h
}

// ProvideNoNotifier is used by one-shot runs that have no subscribers.
func ProvideNoNotifier() repository.ReportNotifier {
	return nil
}

func ProvideReportAnalyzer(
	cfg *config.Config,
	l *applogger.Logger,
	trades repository.TradeSource,
	sentiment repository.SentimentSource,
	renderer repository.ChartRenderer,
	rc repository.ReportCache,
	store repository.ReportStore,
	pub repository.ReportPublisher,
	notifier repository.ReportNotifier,
	m repository.Metrics,
) *usecase.ReportAnalyzer {
	opts := []usecase.AnalyzerOption{
		usecase.WithLogger(l),
		usecase.WithMetrics(m),
		usecase.WithTimeout(cfg.Analysis.Timeout),
		usecase.WithCharts(renderer),
		usecase.WithCache(rc),
		usecase.WithStore(store),
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	if notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}
	return usecase.NewReportAnalyzer(trades, sentiment, opts...)
}

func ProvideReportsHandler(cfg *config.Config, l *applogger.Logger, a *usecase.ReportAnalyzer) *api.ReportsEchoHandler {
	return api.NewReportsEchoHandler(l, a, ratelimit.New(cfg.Server.AnalyzeBurst, cfg.Server.AnalyzeRPS))
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	a *usecase.ReportAnalyzer,
	h *api.ReportsEchoHandler,
	hub *ws.Hub,
	rc repository.ReportCache,
	store repository.ReportStore,
) *server.App {
	checks := make(map[string]xhttp.HealthCheck)
	if cfg.Cache.Backend == config.CacheRedis {
		if hc, ok := rc.(repository.HealthChecker); ok {
			checks["redis"] = hc.Health
		}
	}
	if hc, ok := store.(repository.HealthChecker); ok {
		checks["clickhouse"] = hc.Health
	}
	return server.New(cfg, l, a, hub, checks, h)
}
