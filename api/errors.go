package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Data  any    `json:"data,omitempty"`
}

// statusFor maps a domain error to its HTTP status and code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "persistence_error"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrMissingSelection):
		return http.StatusNotFound, "missing_selection"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNoAvailability):
		return http.StatusConflict, "no_availability"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict, "already_cancelled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.JSON(status, errorResponse{Error: err.Error(), Code: code})
}

// writeAppliedError reports err for a mutation that returned the entity it
// applied. When only the save failed the entity is sent in "data", since it
// exists in memory.
func writeAppliedError(c *gin.Context, err error, applied any) {
	status, code := statusFor(err)
	resp := errorResponse{Error: err.Error(), Code: code}
	if errors.Is(err, domain.ErrPersistence) {
		resp.Data = applied
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_argument"})
}
