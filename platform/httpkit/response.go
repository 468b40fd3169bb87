// Package httpkit provides the shared gin response helpers and middleware
// the API router and module handlers build on.
package httpkit

import (
	"net/http"

	"salesdash_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload shape every endpoint answers with,
// from validation failures on report queries to a rejected sync trigger.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// HandleError writes the HTTP response for a domain error and reports
// whether one was written. Typed *apperr.Error values map through their
// Kind, so "no synchronized data" surfaces as 404 while an unreachable
// spreadsheet surfaces as 503; anything untyped falls back to 400.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}
