package di

import (
	"fmt"

	drepo "StockSage/internal/domain/repository"
	"StockSage/internal/handler/api"
	internalrepo "StockSage/internal/repository"
	"StockSage/internal/service/openrouter"
	"StockSage/internal/service/telegram"
	"StockSage/internal/service/yahoo"
	"StockSage/internal/usecase"
	"StockSage/pkg/config"
	xhttp "StockSage/pkg/http"
	pkgkafka "StockSage/pkg/kafka"
	"StockSage/pkg/logger"
	"StockSage/pkg/metrics"
	"StockSage/pkg/queue"
	"StockSage/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Yahoo Finance market-data client.
func ProvideMarketData(cfg *config.Config, lgr *logger.Logger) drepo.MarketData {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.MarketData.Timeout))
	return yahoo.New(httpClient, lgr, cfg.MarketData.BaseURL,
		yahoo.WithLookback(cfg.MarketData.Range, cfg.MarketData.Interval),
		yahoo.WithCache(cfg.MarketData.CacheTTL),
	)
}

// ProvideNarrator creates the OpenRouter narrative client.
func ProvideNarrator(cfg *config.Config) drepo.Narrator {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.OpenRouter.Timeout))
	return openrouter.New(httpClient, cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey, cfg.OpenRouter.Model)
}

// ProvideReplier creates the Telegram reply client.
func ProvideReplier(cfg *config.Config) drepo.Replier {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.Telegram.Timeout))
	return telegram.New(httpClient, cfg.Telegram.BaseURL, cfg.Telegram.BotToken)
}

// ProvideOutcomePublisher creates the optional Kafka outcome publisher.
// Returns nil when Kafka is disabled.
func ProvideOutcomePublisher(cfg *config.Config) (drepo.OutcomePublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.Acks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaOutcomes(producer, cfg.Kafka.Topic), nil
}

// ProvideAnalyzer creates the analysis usecase.
func ProvideAnalyzer(
	market drepo.MarketData,
	narrator drepo.Narrator,
	m drepo.Metrics,
	lgr *logger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(market, narrator, m, lgr)
}

// ProvideAnalysisJob creates the dispatcher job.
func ProvideAnalysisJob(
	analyzer *usecase.Analyzer,
	replier drepo.Replier,
	publisher drepo.OutcomePublisher,
	m drepo.Metrics,
	lgr *logger.Logger,
) *usecase.AnalysisJob {
	return usecase.NewAnalysisJob(analyzer, replier, publisher, m, lgr)
}

// ProvideQueue creates the configured intake-queue backend with the
// analysis job registered.
func ProvideQueue(cfg *config.Config, lgr *logger.Logger, job *usecase.AnalysisJob, m drepo.Metrics) (queue.Runner, error) {
	qcfg := &queue.QueueConfig{
		Workers:   cfg.Queue.Workers,
		QueueSize: cfg.Queue.Size,
	}
	jobs := []queue.Job{job}

	switch cfg.Queue.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Queue.Redis.Addr,
			Password: cfg.Queue.Redis.Password,
			DB:       cfg.Queue.Redis.DB,
		})
		return queue.NewRedisQueue(lgr, qcfg, client, jobs), nil
	case "memory":
		return queue.NewMemoryQueue(lgr, qcfg, jobs, queue.WithDepthFunc(m.SetQueueDepth)), nil
	default:
		return nil, fmt.Errorf("unknown queue backend: %s", cfg.Queue.Backend)
	}
}

// ProvideHandler creates the webhook HTTP handler.
func ProvideHandler(lgr *logger.Logger, q queue.Runner) xhttp.Handler {
	return api.NewWebhookHandler(lgr, q)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	q queue.Runner,
	handler xhttp.Handler,
	publisher drepo.OutcomePublisher,
) *server.App {
	return server.New(cfg, lgr, q, handler, publisher)
}
