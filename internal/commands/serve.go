package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/pkg/auth"
	v1 "github.com/fintrack/backend/pkg/controllers/v1"
	"github.com/fintrack/backend/pkg/mail"
	"github.com/fintrack/backend/pkg/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// shutdownTimeout is the time running requests get to finish on shutdown.
const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			setupLogging(cfg, os.Stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

// controller builds the API controller for the configuration.
func controller(cfg config.Config) (v1.Controller, error) {
	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return v1.Controller{}, err
	}

	co := v1.Controller{
		Tokens: tokens,
		Trial: auth.TrialPolicy{
			Days:      cfg.TrialDays,
			AllowList: cfg.TrialAllowList,
		},
		Mail: v1.MailDefaults{
			From:    cfg.EmailFrom,
			Subject: "Your fintrack report",
			Text:    "Your financial report is attached.",
		},
	}

	smtp := mail.SMTP{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
	}

	if smtp.Configured() {
		co.Mailer = smtp
	} else {
		log.Warn().Msg("EMAIL_HOST is not set, sending reports is disabled")
	}

	return co, nil
}

func routerOptions(cfg config.Config) router.Options {
	return router.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:      cfg.EnablePprof,
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	url, err := cfg.URL()
	if err != nil {
		return err
	}

	if err := connect(cfg); err != nil {
		return err
	}
	defer disconnect()

	co, err := controller(cfg)
	if err != nil {
		return err
	}

	opts := routerOptions(cfg)

	r, teardown, err := router.Config(url, opts)
	defer teardown()
	if err != nil {
		return err
	}
	router.AttachRoutes(co, r.Group("/"), opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Str("url", url.String()).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
