package validator

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(contactForm{Name: "Ann", Email: "a@x.com", Message: "hi"})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(contactForm{Name: "Ann", Email: "not-an-email", Message: "hi"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 1)
	require.Equal(t, "email", failures[0].Field)
	require.Equal(t, "email", failures[0].Tag)
}

func TestAsAppErrorIsBadRequest(t *testing.T) {
	err := ValidateStruct(contactForm{})
	failures, ok := err.(ValidationErrors)
	require.True(t, ok)

	appErr := failures.AsAppError()
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	require.Len(t, appErr.Fields, 3)
}
