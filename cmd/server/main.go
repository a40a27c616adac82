package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"

	"docledger/internal/coordinator"
	coordinatorhandler "docledger/internal/coordinator/handler"
	coordinatormetrics "docledger/internal/coordinator/metrics"
	"docledger/internal/events"
	"docledger/internal/oracle"
	"docledger/internal/platform/config"
	"docledger/internal/platform/httpserver"
	"docledger/internal/platform/logger"
	platformredis "docledger/internal/platform/redis"
	"docledger/internal/registry"
	registryhandler "docledger/internal/registry/handler"
	registrymetrics "docledger/internal/registry/metrics"
	"docledger/internal/token"
	httptransport "docledger/internal/transport/http"
	id "docledger/pkg/domain"
	"docledger/pkg/platform/tx"
)

// devOracleAddress is the mock gateway identity for local runs; production
// deployments set DOCLEDGER_ORACLE_ADDRESS.
const devOracleAddress = "0x0000000000000000000000000000000000000001"

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		registryStore registry.Store    = registry.NewInMemoryStore()
		requestStore  coordinator.Store = coordinator.NewInMemoryStore()
		txRunner      tx.Runner
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		for _, schema := range []string{registry.Schema, coordinator.Schema} {
			if _, err := db.ExecContext(ctx, schema); err != nil {
				log.Error("failed to apply schema", "error", err)
				os.Exit(1)
			}
		}
		registryStore = registry.NewPostgresStore(db)
		requestStore = coordinator.NewPostgresStore(db)
		txRunner = tx.NewRunner(db)
	}

	// Optional Redis hash-membership cache.
	var hashCache *registry.HashCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		hashCache = registry.NewHashCache(redisClient, log)
	}

	// Events: Kafka when brokers are configured, in-memory otherwise.
	var sink events.Sink = events.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := events.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.EventsTopic)
		if err != nil {
			log.Error("failed to connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	publisher := events.NewPublisher(1024, log)
	worker := events.NewWorker(sink, publisher.Inbox(), log)

	oracleAddrRaw := cfg.Oracle.Address
	if oracleAddrRaw == "" {
		oracleAddrRaw = devOracleAddress
	}
	oracleAddr, err := id.ParseAddress(oracleAddrRaw)
	if err != nil {
		log.Error("invalid oracle address", "error", err)
		os.Exit(1)
	}

	registrySvc := registry.NewService(registryStore, hashCache, publisher, log, registrymetrics.New())

	gateway := oracle.NewMockGateway(oracleAddr, log)
	coordinatorSvc := coordinator.NewService(coordinator.Config{
		GatewayAddress: oracleAddr,
		Provider:       cfg.Oracle.Provider,
		ModelID:        cfg.Oracle.ModelID,
	}, requestStore, gateway, registrySvc, txRunner, publisher, log, coordinatormetrics.New())
	gateway.SetReceiver(coordinatorSvc)

	tokens := token.NewService(cfg.JWTSigningKey, "docledger")
	router := httptransport.NewRouter(log, tokens,
		registryhandler.New(registrySvc, log),
		coordinatorhandler.New(coordinatorSvc, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting docledger", "addr", cfg.Addr, "oracle", oracleAddr.String())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := worker.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
