// Package recordstore собирает встроенный сервер хранилища записей
// в запускаемое приложение.
package recordstore

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/course-manager/internal/config"
	storeserver "github.com/magabrotheeeer/course-manager/internal/recordstore/server"
)

// App — приложение сервера хранилища.
type App struct {
	server *http.Server
	logger *slog.Logger
	store  *storeserver.Server
}

// New создает приложение: поднимает хранилище, загружает сид-данные,
// монтирует API под /api.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store := storeserver.New(logger)
	if cfg.SeedPath != "" {
		if err := store.LoadSeed(cfg.SeedPath); err != nil {
			return nil, err
		}
		logger.Info("seed data loaded", slog.String("path", cfg.SeedPath))
	}

	router := chi.NewRouter()
	router.Mount("/api", store.Routes())

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		store:  store,
	}, nil
}

// Store возвращает встроенное хранилище, например для дополнительного сида.
func (a *App) Store() *storeserver.Server {
	return a.store
}

// Run запускает сервер и ждет отмены контекста, после чего гасит сервер
// с таймаутом.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
