package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/config"
	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/logger"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	dydbstore "github.com/chris/sportsbook-ledger/pkg/storage/dynamodb"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, found := config.Load()

	zlog, err := logger.New(cfg.ServiceName+"-settlement", cfg.Env)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	if !found {
		zlog.Info("no .env file found, using environment variables")
	}
	if err := cfg.ValidateTables(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
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

	var events eventbus.Publisher = eventbus.NoOpPublisher{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		events = eventbus.NewKafkaPublisher(eventbus.NewWriter(brokers), cfg.KafkaTopicPlaced, cfg.KafkaTopicSettled)
	}

	// Commands consumed here are applied directly, so the service gets no scheduler.
	settlement := betting.NewSettlementService(store, nil, events, &websockets.NoOpPublisher{}, metrics.New(prometheus.NewRegistry()), zlog)
	lambda.Start(newHandler(settlement, zlog).HandleRequest)
}
