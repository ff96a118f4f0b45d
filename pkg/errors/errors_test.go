package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	require.Equal(t, "failed: boom", err.Error())
}

func TestWithInternalCopiesAndKeepsIdentity(t *testing.T) {
	with := ErrSessionExpired.WithInternal(stdErrors.New("refresh rejected"))

	require.NotSame(t, ErrSessionExpired, with)
	require.Nil(t, ErrSessionExpired.Internal)
	require.True(t, stdErrors.Is(with, ErrSessionExpired))
	require.False(t, stdErrors.Is(with, ErrUnauthorized))

	wrapped := fmt.Errorf("api: list equipment: %w", with)
	require.True(t, stdErrors.Is(wrapped, ErrSessionExpired))
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	require.Same(t, appErr, FromError(appErr))

	out := FromError(stdErrors.New("raw"))
	require.Equal(t, ErrInternalServer.Code, out.Code)
	require.NotNil(t, out.Internal)
}

func TestFromStatusMapsSentinels(t *testing.T) {
	err := FromStatus(http.StatusForbidden, "")
	require.True(t, stdErrors.Is(err, ErrForbidden))
	require.Equal(t, ErrForbidden.Message, err.Message)

	err = FromStatus(http.StatusUnprocessableEntity, "Name is required")
	require.True(t, stdErrors.Is(err, ErrValidation))
	require.Equal(t, "Name is required", err.Message)
	require.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)

	err = FromStatus(http.StatusBadGateway, "")
	require.Equal(t, http.StatusBadGateway, err.StatusCode)
	require.Equal(t, "Bad Gateway", err.Message)
}

func TestFieldMessagesAreSortedAndFlattened(t *testing.T) {
	err := &AppError{
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Errors: map[string][]string{
			"name":  {"Name is required"},
			"email": {"Email is invalid", "Email is taken"},
			"":      {"general failure"},
		},
	}

	require.True(t, err.HasFieldErrors())
	require.Equal(t, []string{
		"general failure",
		"email: Email is invalid",
		"email: Email is taken",
		"name: Name is required",
	}, err.FieldMessages())
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("wrap: %w", ErrNotFound)))
	require.Zero(t, StatusCode(stdErrors.New("plain")))
}
