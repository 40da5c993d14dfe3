package main

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"TradeSentinel/internal/auditor"
	"TradeSentinel/internal/collector"
	"TradeSentinel/internal/config"
	"TradeSentinel/internal/evaluator"
	"TradeSentinel/internal/executor"
	"TradeSentinel/internal/metrics"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/notifier"
	"TradeSentinel/internal/recorder"
	"TradeSentinel/internal/scheduler"
)

// app holds the wired components of a running bot.
type app struct {
	sched    *scheduler.Scheduler
	telegram *notifier.TelegramNotifier
	server   *metrics.Server
	store    recorder.Recorder
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	product, err := cfg.ProductID()
	if err != nil {
		return nil, err
	}

	exchange := newExchange(cfg, product)
	log.Printf("[INFO] exchange: %s", exchange.Name())

	store := newRecorder(ctx, cfg)

	var n notifier.Notifier = notifier.Noop{}
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, "")
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, notifications disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)
	health := metrics.NewHealthStatus()

	var server *metrics.Server
	if cfg.Metrics.Addr != "" {
		server = metrics.NewServer(cfg.Metrics.Addr, reg, health)
	}

	sched := scheduler.NewScheduler(ctx, product, scheduler.Deps{
		Collector: collector.NewCollector(exchange, store, cfg.Strategy.GranularityDuration(), cfg.Strategy.HistoryBars),
		Evaluator: evaluator.New(cfg.Strategy.Params(), cfg.Strategy.ROCLookback),
		Executor:  executor.New(exchange, n, cfg.DryRun),
		Auditor:   auditor.New(store),
		Notifier:  n,
		Metrics:   m,
		Health:    health,
	})

	return &app{sched: sched, telegram: tn, server: server, store: store}, nil
}

// Close releases the persistence backend.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

// newExchange falls back to the mock exchange when there are no credentials to
// read balances with.
func newExchange(cfg *config.Config, product model.Product) collector.Exchange {
	if cfg.Exchange.Name == "mock" || cfg.Exchange.APIKey == "" {
		if cfg.Exchange.Name != "mock" {
			log.Println("[WARN] no exchange credentials, using mock exchange")
		}
		return &collector.MockExchange{
			Price: decimal.NewFromInt(50000),
			AccountList: []model.Account{
				{Currency: product.Quote, Balance: decimal.NewFromInt(10000), Available: decimal.NewFromInt(10000)},
				{Currency: product.Base, Balance: decimal.Zero, Available: decimal.Zero},
			},
		}
	}
	return collector.NewCoinbaseClient(cfg.Exchange.BaseURL, collector.CoinbaseCredentials{
		Key:        cfg.Exchange.APIKey,
		Secret:     cfg.Exchange.APISecret,
		Passphrase: cfg.Exchange.Passphrase,
	}, cfg.Proxy)
}

// newRecorder prefers Redis, then SQLite, then a no-op store.
func newRecorder(ctx context.Context, cfg *config.Config) recorder.Recorder {
	if cfg.Redis.Addr != "" {
		rr, err := recorder.NewRedisRecorder(ctx, recorder.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			log.Printf("[INFO] recorder: redis %s", cfg.Redis.Addr)
			return rr
		}
		log.Printf("[WARN] init redis recorder failed: %v", err)
	}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err == nil {
			log.Printf("[INFO] recorder: sqlite %s", cfg.Database.SQLitePath)
			return sr
		}
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
	}
	return recorder.NewNoopRecorder()
}

