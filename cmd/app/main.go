package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/config"
	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/handlers"
	"github.com/chris/sportsbook-ledger/pkg/idempotency"
	"github.com/chris/sportsbook-ledger/pkg/logger"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/scheduler"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	dydbstore "github.com/chris/sportsbook-ledger/pkg/storage/dynamodb"
	"github.com/chris/sportsbook-ledger/pkg/storage/memory"
	"github.com/chris/sportsbook-ledger/pkg/wallet"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, found := config.Load()

	zlog, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if !found {
		zlog.Info("no .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store storage.Storage
		sched scheduler.Scheduler
	)
	if cfg.UseInMemoryStorage {
		store = memory.New()
		zlog.Warn("using in-memory storage, data is lost on restart")
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			zlog.Fatal("unable to load SDK config", zap.Error(err))
		}
		store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
			Accounts:     cfg.AccountsTable,
			Events:       cfg.EventsTable,
			Wagers:       cfg.WagersTable,
			Transactions: cfg.TransactionsTable,
		})
		if cfg.SettlementQueueURL != "" {
			sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SettlementQueueURL)
		}
	}

	health := func(context.Context) error { return nil }

	var keys betting.Reserver
	if cfg.RedisAddr != "" {
		dialCtx, cancelDial := context.WithTimeout(ctx, 5*time.Second)
		rdb, err := idempotency.Connect(dialCtx, cfg.RedisAddr)
		cancelDial()
		if err != nil {
			zlog.Fatal("redis is unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		keys = idempotency.NewKeeper(rdb, cfg.IdempotencyTTL)
		health = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		zlog.Warn("REDIS_ADDR is not set, idempotency keys are ignored")
	}

	var events eventbus.Publisher = eventbus.NoOpPublisher{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		writer := eventbus.NewWriter(brokers)
		defer writer.Close()
		events = eventbus.NewKafkaPublisher(writer, cfg.KafkaTopicPlaced, cfg.KafkaTopicSettled)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	hub := websockets.NewHub(zlog)
	auth := middleware.NewAuthenticator(cfg.JWTSecret)

	settlement := betting.NewSettlementService(store, sched, events, hub, m, zlog)
	router := handlers.NewRouter(handlers.Dependencies{
		Store:          store,
		Placer:         betting.NewWagerService(store, keys, events, hub, m, zlog),
		Settler:        settlement,
		Wallet:         wallet.NewService(store, hub, m, zlog),
		Catalog:        catalog.NewService(store, settlement, zlog),
		Connections:    hub,
		Auth:           auth,
		SeedBalance:    models.NewMoney(cfg.SeedBalance),
		Currency:       cfg.Currency,
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            zlog,
	})

	if cfg.UseInMemoryStorage && cfg.Env == "local" {
		bootstrapAdmin(ctx, store, auth, cfg.Currency, zlog)
	}

	metricsSrv := metrics.StartServer(cfg.MetricsPort, registry, health)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("metrics server shutdown failed", zap.Error(err))
	}
}

// bootstrapAdmin creates an operator account for local runs and logs a token for it.
func bootstrapAdmin(ctx context.Context, store storage.AccountStore, auth *middleware.Authenticator, currency string, zlog *zap.Logger) {
	now := time.Now().UTC()
	admin := &models.Account{
		Id:        "admin",
		Username:  "admin",
		Role:      models.RoleAdmin,
		Wallet:    models.Wallet{Balance: models.ZeroMoney, Currency: currency},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := store.CreateAccount(ctx, admin); err != nil {
		zlog.Error("failed to create local admin account", zap.Error(err))
		return
	}
	token, err := auth.Issue(admin.Id, admin.Role, 24*time.Hour)
	if err != nil {
		zlog.Error("failed to issue local admin token", zap.Error(err))
		return
	}
	zlog.Info("local admin account ready", zap.String("account_id", admin.Id), zap.String("token", token))
}
