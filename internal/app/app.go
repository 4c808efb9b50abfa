package app

import (
	"context"
	"net/http"

	"daily-planner-go/internal/config"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/transport/httpserver"
	"daily-planner-go/internal/transport/httpserver/handler"
	"daily-planner-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	storage    Storage
	services   *Services
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing storage", "driver", cfg.Storage.Driver)
	storage, err := OpenStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing services", "api", cfg.API.BaseURL)
	services, err := NewServices(cfg, storage.Prefs, notify.NewLoggingScheduler(log), log)
	if err != nil {
		storage.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	handlers := handler.New(
		services.Session,
		services.Plans,
		services.Expenses,
		services.Water,
		services.Reminders,
		services.Admin,
		log,
	)
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: srv,
		storage:    storage,
		services:   services,
	}, nil
}

// Bootstrap restores the stored sessions before the server starts.
func (a *App) Bootstrap(ctx context.Context) {
	state := a.services.Bootstrap(ctx)
	a.log.Info("app: session restored", "state", state)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	return a.storage.Close()
}
