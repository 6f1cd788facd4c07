package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFetchError(t *testing.T) {
	cases := []struct {
		statusCode  int
		rateLimited bool
		wantKind    ErrorKind
	}{
		{403, true, ErrorRateLimited},
		{429, false, ErrorRateLimited},
		{403, false, ErrorUnknown},
		{401, false, ErrorAuthenticationFailed},
		{400, false, ErrorInvalidRequest},
		{422, false, ErrorInvalidRequest},
		{404, false, ErrorNotFound},
		{500, false, ErrorServer},
		{503, false, ErrorServer},
		{418, false, ErrorUnknown},
	}
	for _, c := range cases {
		err := NewFetchError(c.statusCode, c.rateLimited)
		assert.Equalf(t, c.wantKind, err.Kind, "status %d", c.statusCode)
		assert.Contains(t, err.Detail, "HTTP")
	}
}

func TestFetchErrorRateLimitDetail(t *testing.T) {
	err := NewFetchError(403, true)
	assert.Equal(t, "HTTP 403 - Rate limit exceeded.", err.Detail)
}

func TestNewNetworkError(t *testing.T) {
	err := NewNetworkError(errors.New("connection refused"))
	assert.Equal(t, ErrorNetwork, err.Kind)
	assert.Contains(t, err.Detail, "connection refused")
}

func TestFetchErrorRetainsCause(t *testing.T) {
	// The status string flattens the error to text, but the underlying cause
	// must stay reachable for callers that branch on it.
	err := NewNetworkError(context.DeadlineExceeded)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	cause := errors.New("unexpected end of JSON input")
	wrapped := &FetchError{Kind: ErrorUnknown, Detail: "Malformed listing: " + cause.Error(), Cause: cause}
	assert.True(t, errors.Is(wrapped, cause))

	var fetchErr *FetchError
	require.True(t, errors.As(error(wrapped), &fetchErr))
	assert.Equal(t, cause, fetchErr.Unwrap())
}
