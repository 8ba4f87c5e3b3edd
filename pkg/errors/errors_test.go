package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageIncludesInternal(t *testing.T) {
	base := New("TEST", "outer message", http.StatusBadRequest)
	wrapped := base.WithInternal(errors.New("inner detail"))

	require.Equal(t, "outer message: inner detail", wrapped.Error())
	require.Equal(t, "outer message", base.Error(), "original must be untouched")
}

func TestFromErrorPassesThroughAppErrors(t *testing.T) {
	appErr := FromError(ErrNotFound)
	require.Same(t, ErrNotFound, appErr)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, appErr.Code)
	require.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	require.EqualError(t, appErr.Unwrap(), "boom")
}

func TestNewValidationCarriesFieldDetail(t *testing.T) {
	appErr := NewValidation([]FieldViolation{{Field: "email", Reason: "email"}})
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.Len(t, appErr.Fields, 1)
	require.Equal(t, "email", appErr.Fields[0].Field)
}
