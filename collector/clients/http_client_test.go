package clients

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdashboard/devdashboard/collector"
)

func fetchErrorFrom(t *testing.T, err error) *collector.FetchError {
	t.Helper()
	var fetchErr *collector.FetchError
	require.True(t, errors.As(err, &fetchErr), "expected a *collector.FetchError, got %v", err)
	return fetchErr
}

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := NewDefaultHttpClient().Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGetWithQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("limit"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := NewDefaultHttpClient().GetWithQueryParams(server.URL, map[string]string{"limit": "30"})
	require.NoError(t, err)
}

func TestGetRateLimitedByBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}))
	defer server.Close()

	_, err := NewDefaultHttpClient().Get(server.URL)
	fetchErr := fetchErrorFrom(t, err)
	assert.Equal(t, collector.ErrorRateLimited, fetchErr.Kind)
	assert.Equal(t, 403, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Detail, "Rate limit exceeded")
}

func TestGetRateLimitedByHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(403)
	}))
	defer server.Close()

	_, err := NewDefaultHttpClient().Get(server.URL)
	assert.Equal(t, collector.ErrorRateLimited, fetchErrorFrom(t, err).Kind)
}

func TestGetErrorMapping(t *testing.T) {
	cases := []struct {
		statusCode int
		wantKind   collector.ErrorKind
	}{
		{401, collector.ErrorAuthenticationFailed},
		{404, collector.ErrorNotFound},
		{422, collector.ErrorInvalidRequest},
		{500, collector.ErrorServer},
	}
	for _, c := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.statusCode)
		}))
		_, err := NewDefaultHttpClient().Get(server.URL)
		assert.Equalf(t, c.wantKind, fetchErrorFrom(t, err).Kind, "status %d", c.statusCode)
		server.Close()
	}
}

func TestGetNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := NewDefaultHttpClient().Get(server.URL)
	assert.Equal(t, collector.ErrorNetwork, fetchErrorFrom(t, err).Kind)
}
