package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorResponse aborts the chain with a JSON body named after the status.
func (app *application) errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (app *application) notFound(c *gin.Context) {
	app.errorResponse(c, http.StatusNotFound, "Endpoint does not exist")
}

func (app *application) methodNotAllowed(c *gin.Context) {
	app.errorResponse(c, http.StatusMethodNotAllowed, "Method is not supported for this endpoint")
}

func (app *application) serverError(c *gin.Context) {
	app.errorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
}
