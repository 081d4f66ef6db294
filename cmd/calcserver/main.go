// Package main provides the calculator server binary: the HTTP/JSON API and
// the fleetcalc.v1.Analysis gRPC service over one loaded master snapshot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fleetcalc/internal/api"
	"github.com/cory-johannsen/fleetcalc/internal/calc"
	"github.com/cory-johannsen/fleetcalc/internal/config"
	"github.com/cory-johannsen/fleetcalc/internal/observability"
	"github.com/cory-johannsen/fleetcalc/internal/rpc"
	"github.com/cory-johannsen/fleetcalc/internal/server"
	"github.com/cory-johannsen/fleetcalc/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	noDB := flag.Bool("no-db", false, "run without the plan store")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "calcserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting calculator server",
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.String("grpc_addr", cfg.GRPC.Addr()),
	)

	svc, closeScripts, err := calc.Load(cfg.Data, cfg.Random, logger)
	if err != nil {
		logger.Fatal("loading calculator", zap.Error(err))
	}
	defer closeScripts()

	lifecycle := server.NewLifecycle(logger)

	var (
		plans  api.PlanStore
		health api.HealthChecker
	)
	if !*noDB {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		plans = postgres.NewPlanRepository(pool.DB())
		health = pool

		done := make(chan struct{})
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return nil
					case <-ticker.C:
						if err := pool.Health(ctx, 5*time.Second); err != nil {
							logger.Warn("database health check failed", zap.Error(err))
							continue
						}
						st := pool.Stats()
						logger.Debug("database pool",
							zap.Int32("total", st.Total),
							zap.Int32("idle", st.Idle),
							zap.Int32("acquired", st.Acquired),
						)
					}
				}
			},
			StopFn: func() {
				close(done)
				pool.Close()
			},
		})
	}

	grpcServer := rpc.NewGRPCServer(svc, logger)
	lifecycle.Add("grpc", &server.FuncService{
		StartFn: func() error {
			lis, err := net.Listen("tcp", cfg.GRPC.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.GRPC.Addr(), err)
			}
			return grpcServer.Serve(lis)
		},
		StopFn: func() {
			grpcServer.GracefulStop()
		},
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      api.NewHandler(svc, plans, health, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		StopFn: func() {
			sctx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(sctx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		},
	})

	logger.Info("calculator server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
