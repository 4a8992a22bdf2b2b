package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tecu23/info-server/internal/version"
)

// serve starts the http server and the runtime hub, and handles graceful shutdown
func (app *application) serve() error {
	app.Server = &http.Server{
		Addr:         app.Config.Addr(),
		Handler:      app.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     zap.NewStdLog(app.Logger),
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go app.Hub.Run(hubCtx)

	shutdownError := make(chan error, 1)

	go func() {
		// Set up signal handling for graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		// Wait for shutdown signal
		s := <-quit
		app.Logger.Info("Shutting down server", zap.String("signal", s.String()))

		// Websocket connections are hijacked and not tracked by Shutdown.
		stopHub()

		ctx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
		defer cancel()

		shutdownError <- app.Server.Shutdown(ctx)
	}()

	app.Logger.Info("Starting server", app.startupFields()...)

	if err := app.Server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownError; err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	<-app.Hub.Done()

	app.Logger.Info("Server stopped gracefully")
	return nil
}

// startupFields describes the build and bind address for the startup log line.
func (app *application) startupFields() []zap.Field {
	service := app.Info.Service()
	return []zap.Field{
		zap.String("address", app.Config.Addr()),
		zap.String("service", service.Name),
		zap.String("version", service.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.Time("start_time", app.StartTime),
	}
}
