package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/noa-park/backoffice/internal/api"
	"github.com/noa-park/backoffice/internal/auth"
	"github.com/noa-park/backoffice/internal/dashboard"
	"github.com/noa-park/backoffice/internal/infra/logging"
	"github.com/noa-park/backoffice/internal/infra/pgutils"
	"github.com/noa-park/backoffice/internal/repos/sales"
	salespg "github.com/noa-park/backoffice/internal/repos/sales/postgres"
	"github.com/noa-park/backoffice/internal/upstream"
	"github.com/noa-park/backoffice/pkg/envconf"
	"github.com/noa-park/backoffice/pkg/shutdownqueue"
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

	// --- Session token store ---
	var tokens auth.TokenStore

	if cfg.Redis.Addr != "" {
		store := auth.NewRedisTokenStore(cfg.Redis.Addr)

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("Close token store")

			return store.Close()
		})

		tokens = store
	} else {
		tokens = auth.NewMemoryTokenStore()
	}

	// --- Offline sales journal (optional) ---
	var journal sales.Journal

	if cfg.Postgres.DSN != "" {
		dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("Close db")

			return dbConns.Close()
		})

		journal = salespg.New(dbConns)
	}

	// --- Dashboard controller ---
	client := upstream.New(cfg.Upstream.BaseURL, tokens)
	ctrl := dashboard.New(client, journal, cfg.TaxRateBP)

	// Initial load settles the live/demo mode in the background; the
	// server starts serving immediately in the loading state.
	go ctrl.Load(ctx)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.NewHandler(ctrl, tokens))

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

	slog.Info("API started", "port", cfg.Port, "upstream", cfg.Upstream.BaseURL)

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
