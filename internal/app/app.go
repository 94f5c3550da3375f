// Package app wires configuration, backends and services into a runnable
// HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/api"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/core/service"
	"github.com/hp-grievance/portal/internal/infrastructure/cache"
	"github.com/hp-grievance/portal/internal/infrastructure/db/mongo"
	"github.com/hp-grievance/portal/internal/infrastructure/db/redis"
	"github.com/hp-grievance/portal/internal/infrastructure/fixtures"
	"github.com/hp-grievance/portal/internal/infrastructure/queue"
	"github.com/hp-grievance/portal/internal/infrastructure/store"
	"github.com/hp-grievance/portal/internal/pkg/config"
	"github.com/hp-grievance/portal/internal/pkg/validation"
)

const (
	idempotencyTTL    = time.Hour
	idempotencySize   = 10000
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// App is a fully wired portal instance.
type App struct {
	Echo *echo.Echo

	cfg        *config.Config
	log        zerolog.Logger
	dispatcher *queue.Dispatcher
	closers    []func(context.Context) error
}

// Options overrides pieces of the wiring, mainly for tests.
type Options struct {
	// Registry receives HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
	// GenerateCode overrides the one-time code source.
	GenerateCode service.CodeGenerator
}

// New connects the configured backends and builds the router. The caller
// must call Start before serving so notifications are delivered, and Close
// when done.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var (
		rdb    *goredis.Client
		kv     ports.KeyValueStore
		pingers = map[string]ports.Pinger{}
	)

	needRedis := cfg.StoreBackend == config.BackendRedis || cfg.ChallengeBackend == config.BackendRedis
	if needRedis {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		rdb = client
		pingers["redis"] = redis.NewPinger(client)
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		kv = redis.NewKVStore(rdb)
	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "grievance-portal"})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		mkv := mongo.NewKVStore(db)
		if err := mkv.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure mongo indexes")
		}
		kv = mkv
		pingers["mongodb"] = mkv
		a.closers = append(a.closers, func(ctx context.Context) error { return mongo.Disconnect(ctx, client) })
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	default:
		kv = store.NewMemoryKV()
	}

	var (
		challenges ports.ChallengeStore
		idem       ports.IdempotencyStore
	)
	if cfg.ChallengeBackend == config.BackendRedis {
		challenges = redis.NewChallengeStore(rdb)
		idem = redis.NewIdempotencyStore(rdb)
	} else {
		challenges = cache.NewChallengeCache(cfg.OTP.CacheSize, cfg.OTP.TTL)
		idem = cache.NewIdempotencyCache(idempotencySize, idempotencyTTL)
	}

	triage, err := fixtures.LoadTriage()
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	sessions := store.NewSessionStore(kv, cfg.TokenTTL, log.With().Str("component", "session_store").Logger())
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(challenges, sessions, tokens, service.AuthOptions{
		ChallengeTTL:     cfg.OTP.TTL,
		HashCost:         cfg.OTP.HashCost,
		AllowOfficerDemo: cfg.OTP.DemoOfficerLogin,
		GenerateCode:     opts.GenerateCode,
	}, log.With().Str("component", "auth").Logger())

	grievanceService := service.NewGrievanceService(sessions, idem, log.With().Str("component", "grievances").Logger())

	a.dispatcher = queue.NewDispatcher(
		cfg.Notifications.Workers,
		queue.NewLogNotifier(log.With().Str("component", "notifier").Logger()),
		log.With().Str("component", "dispatcher").Logger(),
	)
	triageService := service.NewTriageService(triage, a.dispatcher, log.With().Str("component", "triage").Logger())

	a.Echo = api.NewRouter(api.Dependencies{
		Auth:       authService,
		Grievances: grievanceService,
		Triage:     triageService,
		Sessions:   sessions,
		Validate:   validation.New(),
		Pingers:    pingers,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
		Registry:   opts.Registry,
	})
	return a, nil
}

// Start launches the notification workers. They stop when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.dispatcher.Start(ctx)
}

// Serve listens on the configured port until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.Echo,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.log.Info().Msg("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close waits for the notification workers and releases backend connections.
// Workers only exit once the context passed to Start is cancelled.
func (a *App) Close(ctx context.Context) error {
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
