// Command server runs the freight back-office HTTP API.
//
// @title                       Freight Back-Office API
// @version                     1.0
// @description                 Invoices, proforma invoices and quotations for a freight forwarder.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/cargoline/backoffice/docs"
	"github.com/cargoline/backoffice/internal/api"
	"github.com/cargoline/backoffice/internal/api/handler"
	"github.com/cargoline/backoffice/internal/api/metrics"
	"github.com/cargoline/backoffice/internal/core/ports"
	"github.com/cargoline/backoffice/internal/core/service"
	"github.com/cargoline/backoffice/internal/infrastructure/config"
	mongodb "github.com/cargoline/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/cargoline/backoffice/internal/infrastructure/db/redis"
	"github.com/cargoline/backoffice/internal/infrastructure/policy"
	"github.com/cargoline/backoffice/internal/infrastructure/queue"
	"github.com/cargoline/backoffice/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "backoffice",
		Env:     cfg.Env,
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	documents := mongodb.NewDocumentRepository(db)
	clients := mongodb.NewClientRepository(db)
	events := mongodb.NewEventRepository(db)
	roles := mongodb.NewRoleRepository(db)
	counters := mongodb.NewSequenceRepository(db)

	if err := mongodb.EnsureIndexes(ctx, documents, clients, events); err != nil {
		return err
	}

	roleSource, err := selectRoleSource(cfg.Documents.RolesFile, roles, log)
	if err != nil {
		return err
	}
	sequences, err := selectSequenceStore(cfg.Documents.SequenceBackend, counters, redisdb.NewSequenceStore(rdb))
	if err != nil {
		return err
	}

	// --- Services ---
	recorder := metrics.Recorder{}
	gate := service.NewPermissionGate(roleSource, cfg.Documents.DefaultRole, logger.Component("permission_gate")).
		WithRecorder(recorder)
	numbers := service.NewNumberGenerator(documents, sequences)
	documentService := service.NewDocumentService(documents, clients, numbers, events, logger.Component("document_service")).
		WithRecorder(recorder)
	clientService := service.NewClientService(clients, logger.Component("client_service"))
	eventService := service.NewTransitionEventService(documentService, redisdb.NewDedupChecker(rdb), logger.Component("transition_events"))

	// --- Background workers ---
	dispatcher := queue.NewDispatcher(cfg.Documents.DispatchWorkers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)
	go queue.NewSweeper(documentService, cfg.Documents.OverdueSweepInterval, logger.Component("overdue_sweeper")).Run(ctx)

	e := api.NewRouter(api.Deps{
		JWTSecret:  cfg.JWTSecret,
		Documents:  documentService,
		Clients:    clientService,
		Gate:       gate,
		Dispatcher: dispatcher,
		HealthDeps: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
			"redis":   handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// selectRoleSource prefers a policy file when one is configured and falls
// back to the roles collection otherwise.
func selectRoleSource(path string, stored ports.RoleSource, log zerolog.Logger) (ports.RoleSource, error) {
	if path == "" {
		log.Info().Msg("permission policy: mongo roles collection")
		return stored, nil
	}
	src, err := policy.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Int("roles", len(src.Roles())).Msg("permission policy: file")
	return src, nil
}

// selectSequenceStore maps SEQUENCE_BACKEND to a store. A nil store makes
// the number generator derive numbers from the last stored document.
func selectSequenceStore(backend string, mongoStore, redisStore ports.SequenceStore) (ports.SequenceStore, error) {
	switch backend {
	case config.SequenceMongo:
		return mongoStore, nil
	case config.SequenceRedis:
		return redisStore, nil
	case config.SequenceLookup:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown sequence backend %q", backend)
}
