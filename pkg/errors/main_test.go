package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusCode_MapsTypes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewInvalidRequestError("missing", nil), StatusBadRequest},
		{NewStorageError("store down", stderrors.New("dial tcp")), StatusInternalServerError},
		{NewUnauthorizedError("nope", nil), StatusUnauthorized},
		{NewServiceUnavailableError("later", nil), StatusServiceUnavailable},
		{stderrors.New("plain"), StatusInternalServerError},
		{nil, StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatusCode(tc.err))
	}
}

func TestGetHumanReadableMessage_DoesNotLeakInternalErrors(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetHumanReadableMessage(stderrors.New("pq: password authentication failed")))

	wrapped := fmt.Errorf("save: %w", NewStorageError("unable to write record", stderrors.New("connection reset")))
	assert.Equal(t, "unable to write record", GetHumanReadableMessage(wrapped))
}

func TestWithMessage_KeepsTypeAndChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	original := NewStorageError("unable to write record", cause)

	replaced := WithMessage(original, "Failed to process waitlist signup")

	assert.Equal(t, ErrorTypeStorageError, replaced.Type)
	assert.Equal(t, "Failed to process waitlist signup", GetHumanReadableMessage(replaced))
	assert.True(t, stderrors.Is(replaced, cause))

	plain := WithMessage(cause, "Failed to send message")
	assert.Equal(t, ErrorTypeInternalServerError, plain.Type)
	assert.True(t, IsType(plain, ErrorTypeInternalServerError))
}
