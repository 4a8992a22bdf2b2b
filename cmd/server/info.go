package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecu23/info-server/internal/version"
	"github.com/tecu23/info-server/pkg/info"
)

const (
	serviceName        = "devops-info-service"
	serviceDescription = "DevOps course info service"
	serviceFramework   = "Gin"
)

func serviceInfo() info.ServiceInfo {
	return info.ServiceInfo{
		Name:        serviceName,
		Version:     version.Version,
		Description: serviceDescription,
		Framework:   serviceFramework,
	}
}

// handleInfo handles the GET / endpoint
func (app *application) handleInfo(c *gin.Context) {
	report := app.Info.Report(info.RequestInfo{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
	})

	c.JSON(http.StatusOK, report)
}
