package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/hp-grievance/portal/internal/app"
	"github.com/hp-grievance/portal/internal/pkg/config"
	"github.com/hp-grievance/portal/pkg/logger"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}
}

func serveRun(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "grievance-portal",
		Version: version,
	})

	procsLog := logger.Component("maxprocs")
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, v ...any) {
		procsLog.Info().Msg(fmt.Sprintf(format, v...))
	})); err != nil {
		log.Warn().Err(err).Msg("failed to set GOMAXPROCS")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreBackend).
		Str("challenges", cfg.ChallengeBackend).
		Msg("starting grievance portal")
	if cfg.OTP.DemoOfficerLogin {
		log.Warn().Msg("demo officer login is enabled")
	}

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		return err
	}
	a.Start(ctx)

	serveErr := a.Serve(ctx)
	stop()
	if err := a.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to release backends")
	}
	return serveErr
}
