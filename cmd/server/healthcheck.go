package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleHealth handles the GET /health endpoint
func (app *application) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, app.Info.Health())
}
