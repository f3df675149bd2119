package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/config"
	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/logger"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/scheduler"
	dydbstore "github.com/chris/sportsbook-ledger/pkg/storage/dynamodb"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, found := config.Load()

	zlog, err := logger.New(cfg.ServiceName+"-reconciliation", cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	if !found {
		zlog.Info("no .env file found, using environment variables")
	}
	if err := cfg.ValidateTables(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.SettlementQueueURL == "" {
		zlog.Fatal("SQS_QUEUE_URL environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		zlog.Fatal("unable to load SDK config", zap.Error(err))
	}
	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Accounts:     cfg.AccountsTable,
		Events:       cfg.EventsTable,
		Wagers:       cfg.WagersTable,
		Transactions: cfg.TransactionsTable,
	})
	sched := scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SettlementQueueURL)

	settlement := betting.NewSettlementService(store, sched, eventbus.NoOpPublisher{}, &websockets.NoOpPublisher{}, metrics.New(prometheus.NewRegistry()), zlog)
	lambda.Start(newHandler(settlement, cfg.StaleWagerAfter, zlog).HandleRequest)
}
