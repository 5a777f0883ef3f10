package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/store"
)

// failFromError translates service and store failures into the response
// taxonomy. Every handler funnels non-validation errors through here so the
// status conventions stay uniform.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSubjectNotFound)
	case errors.Is(err, service.ErrTargetNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, store.ErrReadFailed):
		response.Fail(c, http.StatusInternalServerError, response.ErrStoreRead)
	case errors.Is(err, store.ErrWriteFailed):
		response.Fail(c, http.StatusInternalServerError, response.ErrStoreWrite)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
