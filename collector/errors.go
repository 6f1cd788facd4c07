package collector

import "fmt"

// ErrorKind classifies a failed fetch for status reporting.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorRateLimited
	ErrorAuthenticationFailed
	ErrorInvalidRequest
	ErrorNotFound
	ErrorNetwork
	ErrorServer
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorRateLimited:
		return "rate_limited"
	case ErrorAuthenticationFailed:
		return "authentication_failed"
	case ErrorInvalidRequest:
		return "invalid_request"
	case ErrorNotFound:
		return "not_found"
	case ErrorNetwork:
		return "network_error"
	case ErrorServer:
		return "server_error"
	default:
		return "unknown"
	}
}

// FetchError is the typed failure a client adapter returns. Detail is the
// human-readable text that ends up in the source's status string, so it must
// make sense to a dashboard user. Cause keeps the underlying error reachable
// through errors.Is/As.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Cause      error
}

func (e *FetchError) Error() string {
	return e.Detail
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewFetchError builds a FetchError from an HTTP status code. rateLimited
// should be true when the response body or headers indicate the request was
// rejected for quota reasons rather than authorization.
func NewFetchError(statusCode int, rateLimited bool) *FetchError {
	switch {
	case statusCode == 403 && rateLimited, statusCode == 429:
		return &FetchError{
			Kind:       ErrorRateLimited,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Rate limit exceeded.", statusCode),
		}
	case statusCode == 401:
		return &FetchError{
			Kind:       ErrorAuthenticationFailed,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Authentication failed. Check the configured token.", statusCode),
		}
	case statusCode == 400 || statusCode == 422:
		return &FetchError{
			Kind:       ErrorInvalidRequest,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Invalid request.", statusCode),
		}
	case statusCode == 404:
		return &FetchError{
			Kind:       ErrorNotFound,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Not found. Check the source url.", statusCode),
		}
	case statusCode >= 500:
		return &FetchError{
			Kind:       ErrorServer,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Upstream server error.", statusCode),
		}
	default:
		return &FetchError{
			Kind:       ErrorUnknown,
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("HTTP %d - Unexpected response.", statusCode),
		}
	}
}

// NewNetworkError wraps a transport-level failure (DNS, refused connection,
// timeout) where no HTTP status is available.
func NewNetworkError(err error) *FetchError {
	return &FetchError{
		Kind:   ErrorNetwork,
		Detail: "Network error: " + err.Error(),
		Cause:  err,
	}
}
