package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/betarena/core/internal/api"
	"github.com/betarena/core/internal/cache"
	"github.com/betarena/core/internal/infra/logging"
	"github.com/betarena/core/internal/infra/metrics"
	"github.com/betarena/core/internal/infra/pgutils"
	"github.com/betarena/core/internal/producer"
	pgusers "github.com/betarena/core/internal/repos/users/postgres"
	"github.com/betarena/core/internal/services/betting"
	"github.com/betarena/core/internal/services/payments"
	"github.com/betarena/core/pkg/contracts/topics"
	"github.com/betarena/core/pkg/envconf"
	"github.com/betarena/core/pkg/shutdownqueue"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// local dev convenience; missing .env is fine
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	var waitingCache betting.WaitingCache

	var rdb *redis.Client

	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		waitingCache = cache.NewWaitingWagers(rdb, cfg.WaitingTTL)

		shutdownqueue.Add(func(context.Context) error {
			return rdb.Close()
		})
	}

	var pub betting.Publisher

	if cfg.KafkaBrokers != "" {
		writer := producer.NewWriter(strings.Split(cfg.KafkaBrokers, ","), topics.WagerEvents)
		kpub := producer.NewKafkaPublisher(writer)
		pub = kpub

		shutdownqueue.Add(func(context.Context) error {
			return kpub.Close()
		})
	}

	// --- Services ---
	bettingSrv := betting.New(dbConns, betting.Config{
		MinStake:  cfg.MinStake,
		InviteTTL: cfg.InviteTTL,
	}, pub, waitingCache)

	gateway := payments.NewHTTPGateway(cfg.GatewayURL, cfg.GatewayToken)
	paymentsSrv := payments.New(dbConns, gateway)

	// --- Expiry sweeper ---
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	sweeper := betting.NewSweeper(bettingSrv, cfg.SweepInterval)

	go sweeper.Run(sweepCtx)

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Stop expiry sweeper")
		sweepCancel()

		return nil
	})

	// --- Metrics / health server ---
	metricsSrv := metrics.NewServer(cfg.MetricsPort, func(c context.Context) error {
		perr := dbConns.PingContext(c)
		if perr != nil {
			return fmt.Errorf("ping db: %w", perr)
		}

		if rdb != nil {
			perr = rdb.Ping(c).Err()
			if perr != nil {
				return fmt.Errorf("ping redis: %w", perr)
			}
		}

		return nil
	})

	go func() {
		merr := metricsSrv.ListenAndServe()
		if merr != nil && !errors.Is(merr, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", merr)
		}
	}()

	shutdownqueue.Add(func(c context.Context) error {
		return metricsSrv.Shutdown(c)
	})

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, bettingSrv, paymentsSrv, pgusers.New(dbConns))

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "metrics_port", cfg.MetricsPort)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
