package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/commodity-costing/internal/config"
	"github.com/mamadbah2/commodity-costing/internal/repository/mongodb"
	"github.com/mamadbah2/commodity-costing/internal/repository/sheets"
	"github.com/mamadbah2/commodity-costing/internal/scheduler"
	"github.com/mamadbah2/commodity-costing/internal/server/handlers"
	"github.com/mamadbah2/commodity-costing/internal/server/router"
	historysvc "github.com/mamadbah2/commodity-costing/internal/service/history"
	reportingsvc "github.com/mamadbah2/commodity-costing/internal/service/reporting"
	settingssvc "github.com/mamadbah2/commodity-costing/internal/service/settings"
	"github.com/mamadbah2/commodity-costing/pkg/clients/calcapi"
	"github.com/mamadbah2/commodity-costing/pkg/logger"
)

// store is implemented by every history backend.
type store interface {
	historysvc.Repository
	settingssvc.Repository
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var backend store
	switch cfg.History.Backend {
	case config.BackendAPI:
		backend = calcapi.NewClient(cfg.CalcAPI, baseLogger.Named("client.calcapi"))
		baseLogger.Info("using calculation api backend", zap.String("base_url", cfg.CalcAPI.BaseURL))
	default:
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		backend = mongoRepo
	}

	var mirror historysvc.Mirror
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		mirror = sheets.NewHistoryMirror(sheetsRepo)

		reportingSvc := reportingsvc.NewService(sheetsRepo, baseLogger.Named("svc.reporting"))
		sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("google sheets not configured, history mirror and weekly report disabled")
	}

	historySvc := historysvc.NewService(backend, mirror, baseLogger.Named("svc.history"))
	settingsSvc := settingssvc.NewService(backend, cfg.Costing.DefaultExpenses, baseLogger.Named("svc.settings"))

	engine := router.New(router.Handlers{
		Calculator: handlers.NewCalculatorHandler(historySvc, settingsSvc, baseLogger.Named("handlers.calculator")),
		History:    handlers.NewHistoryHandler(historySvc, baseLogger.Named("handlers.history")),
		Settings:   handlers.NewSettingsHandler(settingsSvc, baseLogger.Named("handlers.settings")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
