package clients

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devdashboard/devdashboard/collector"
)

const defaultTimeout = 30 * time.Second

// HttpClient is the shared outbound client for all JSON/XML source adapters.
// It performs exactly one request per call and maps failures onto the fetch
// error taxonomy; retry policy belongs to the caller.
type HttpClient struct {
	header http.Header
	client *http.Client
}

func NewDefaultHttpClient() *HttpClient {
	return NewHttpClient(http.Header{})
}

func NewHttpClient(header http.Header) *HttpClient {
	return &HttpClient{
		header: header,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Get issues one GET request and returns the response body. Any non-2xx
// response or transport failure comes back as a *collector.FetchError.
func (c *HttpClient) Get(uri string) ([]byte, error) {
	return c.GetWithQueryParams(uri, nil)
}

// GetWithQueryParams issues one GET request with the given query parameters
// appended to the uri as ?${KEY}=${VALUE}.
func (c *HttpClient) GetWithQueryParams(uri string, params map[string]string) ([]byte, error) {
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorInvalidRequest,
			Detail: "Invalid request url: " + err.Error(),
		}
	}
	req.Header = c.header
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, collector.NewNetworkError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, collector.NewNetworkError(err)
	}

	if res.StatusCode >= 300 {
		return nil, collector.NewFetchError(res.StatusCode, looksRateLimited(res, body))
	}
	return body, nil
}

// looksRateLimited distinguishes a quota rejection from a plain authorization
// failure on ambiguous status codes. GitHub returns 403 with an exhausted
// X-RateLimit-Remaining header and a "rate limit" message body.
func looksRateLimited(res *http.Response, body []byte) bool {
	if res.Header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(string(body)), "rate limit")
}
