package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	coursemanager "github.com/magabrotheeeer/course-manager/internal/app/course-manager"
	"github.com/magabrotheeeer/course-manager/internal/config"
	"github.com/magabrotheeeer/course-manager/internal/models"
	"github.com/magabrotheeeer/course-manager/internal/state"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting course-manager", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := coursemanager.New(cfg, logger, func(route string) {
		logger.Warn("session expired, navigate to login", slog.String("route", route))
	})

	unsubscribe := app.Session.Subscribe(func(user *models.User) {
		if user != nil {
			logger.Info("session changed",
				slog.String("user_id", user.ID.Canonical()),
				slog.String("role", user.Role))
		} else {
			logger.Info("session changed", slog.String("user", "none"))
		}
	})
	defer unsubscribe()

	app.Session.Bootstrap(ctx)

	courseList := app.NewCourseList()
	defer courseList.Close()
	courseList.Load(ctx)
	if courseList.State() == state.Error {
		logger.Error("failed to load courses", slog.String("error", courseList.Err()))
		os.Exit(1)
	}
	logger.Info("courses loaded", slog.Int("count", len(courseList.Items())))

	logger.Info("course-manager stopped gracefully")
}
