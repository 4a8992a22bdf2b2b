package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (app *application) routes() http.Handler {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// With no trusted proxies the client IP is always the socket peer.
	if err := router.SetTrustedProxies(app.Config.TrustedProxies); err != nil {
		app.Logger.Warn("ignoring invalid trusted proxies",
			zap.Strings("trusted_proxies", app.Config.TrustedProxies),
			zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		app.requestID(),
		app.logRequests(),
		app.recordMetrics(),
		app.recoverPanic(),
	)

	router.GET("/", app.handleInfo)
	router.GET("/health", app.handleHealth)
	router.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	router.GET("/ws", app.handleWebSocket)

	router.NoRoute(app.notFound)
	router.NoMethod(app.methodNotAllowed)

	return router
}
