// Package main is the entry point of the application
package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tecu23/info-server/pkg/config"
	"github.com/tecu23/info-server/pkg/events"
	"github.com/tecu23/info-server/pkg/info"
	"github.com/tecu23/info-server/pkg/metrics"
	"github.com/tecu23/info-server/pkg/server"
)

// App encapsulates global dependencies
type application struct {
	Logger    *zap.Logger
	Config    *config.Config
	Info      *info.Aggregator
	Metrics   *metrics.Metrics
	Publisher *events.Publisher
	Hub       *server.Hub
	Server    *http.Server

	// StartTime is captured once before anything else and never reassigned.
	StartTime time.Time
}

func main() {
	startTime := time.Now()

	debug := flag.Bool("debug", false, "enable debug logging")
	envFile := flag.String("env-file", ".env", "optional dotenv file to load")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		initLogger(*debug).Fatal("invalid configuration", zap.Error(err))
	}
	if *debug {
		cfg.Debug = true
	}

	// Initialize logger
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	app := newApplication(cfg, logger, startTime)

	if err := app.serve(); err != nil {
		logger.Fatal("error serving", zap.Error(err))
	}
}

// newApplication wires every component around the single start time.
func newApplication(cfg *config.Config, logger *zap.Logger, startTime time.Time, opts ...info.Option) *application {
	publisher := events.NewPublisher()
	aggregator := info.NewAggregator(serviceInfo(), startTime, opts...)

	app := &application{
		Logger:    logger,
		Config:    cfg,
		Info:      aggregator,
		Metrics:   metrics.New(startTime),
		Publisher: publisher,
		Hub:       server.NewHub(aggregator, cfg.RuntimeInterval, publisher, logger),
		StartTime: startTime,
	}

	// Gauge updates run inline on the hub goroutine so opens and closes apply in order.
	publisher.SubscribeSync(events.EventConnectionOpened, func(events.Event) {
		app.Metrics.ConnectionOpened()
	})
	publisher.SubscribeSync(events.EventConnectionClosed, func(events.Event) {
		app.Metrics.ConnectionClosed()
	})
	publisher.SubscribeAll(func(e events.Event) {
		app.Logger.Info("connection event",
			zap.String("event", string(e.Type)),
			zap.String("connection_id", e.ConnectionID))
	})

	return app
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	return logger
}
