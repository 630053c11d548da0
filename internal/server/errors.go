package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/nlquery"
	"github.com/roach88/stringvault/internal/record"
	"github.com/roach88/stringvault/internal/service"
)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps a service error to an HTTP status and client-facing detail.
func statusFor(err error) (int, string) {
	var ve *filter.ValidationError
	switch {
	case errors.Is(err, service.ErrEmptyValue):
		return http.StatusBadRequest, "Missing or empty value"
	case record.IsDuplicate(err):
		return http.StatusConflict, "String already exists"
	case record.IsNotFound(err):
		return http.StatusNotFound, "String not found"
	case errors.Is(err, nlquery.ErrUnparsableQuery):
		return http.StatusBadRequest, "Unable to parse natural language query"
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// abortWithError writes the mapped error reply and records err on the context
// for the logging middleware.
func abortWithError(c *gin.Context, err error) {
	status, detail := statusFor(err)
	_ = c.Error(err)
	abortWithDetail(c, status, detail)
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
