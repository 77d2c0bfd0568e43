package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirpdex/chirpdex/internal/apperr"
)

// errorBody is the machine-readable error payload
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func renderError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"ok":    false,
		"error": errorBody{Code: code, Message: message},
	})
}

// renderAppError maps a classified error to an HTTP response
func renderAppError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		renderError(c, http.StatusBadRequest, "BAD_REQUEST", apperr.MessageOf(err))
	case apperr.KindNotFound:
		renderError(c, http.StatusNotFound, "NOT_FOUND", apperr.MessageOf(err))
	case apperr.KindUpstream:
		renderError(c, http.StatusBadGateway, "UPSTREAM_ERROR", apperr.MessageOf(err))
	default:
		renderError(c, http.StatusInternalServerError, "DATABASE_ERROR", "database error")
	}
}
