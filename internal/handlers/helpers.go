package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/store"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/response"
	"github.com/saandeep/portfolio-api/pkg/validator"
)

// bindAndValidate decodes the JSON body into dest and runs struct validation.
// On failure it writes the error response and reports false.
func bindAndValidate(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, apperrors.NewBadRequest("request body must be valid JSON"))
		return false
	}
	if err := validator.ValidateStruct(dest); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.Error(c, ve.AsAppError())
		} else {
			response.Error(c, apperrors.ErrBadRequest)
		}
		return false
	}
	return true
}

// respondError translates storage errors into client-visible ones before
// rendering.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		response.Error(c, apperrors.ErrNotFound)
	case errors.Is(err, store.ErrInvalidQuery):
		response.Error(c, apperrors.ErrBadRequest)
	case errors.Is(err, store.ErrStoreUnavailable):
		response.Error(c, apperrors.ErrStoreUnavailable.WithInternal(err))
	default:
		response.Error(c, err)
	}
}

// parseIntQuery reads an optional integer query parameter, returning the
// fallback when absent or malformed.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseBoolQuery reads an optional boolean query parameter, returning nil
// when absent.
func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
