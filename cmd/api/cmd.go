package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/leads-dashboard/internal/bootstrap"
	sheetsclient "github.com/GregMSThompson/leads-dashboard/internal/client/sheets"
	"github.com/GregMSThompson/leads-dashboard/internal/config"
	"github.com/GregMSThompson/leads-dashboard/internal/handlers"
	"github.com/GregMSThompson/leads-dashboard/internal/response"
	"github.com/GregMSThompson/leads-dashboard/internal/router"
	"github.com/GregMSThompson/leads-dashboard/internal/services"
	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, bs.Log)

	// clients
	feed := sheetsclient.NewAdapter(bs.HTTP, bs.SheetURL, cfg.Location)

	// services
	snapshots := services.NewSnapshotService(feed, time.Now)
	go snapshots.Run(ctx, cfg.RefreshInterval)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardSvc = snapshots
	deps.Validate = validator.New()
	deps.Now = time.Now

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	bs.Log.Info("server listening", "port", cfg.Port, "refresh_interval", cfg.RefreshInterval.String())
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	exitOnError("server start failed", err, bs.Log)
}
