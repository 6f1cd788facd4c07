package clients

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/devdashboard/devdashboard/collector"
)

// NewGithubClient builds a go-github client, authenticated when a token is
// configured. baseURL overrides the API endpoint for tests; pass "" for the
// public API.
func NewGithubClient(ctx context.Context, token string, baseURL string) (*github.Client, error) {
	var httpClient = oauth2.NewClient(ctx, nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrap(err, "invalid github api base url")
		}
		client.BaseURL = parsed
	}
	return client, nil
}

// MapGithubError converts a go-github call failure into the fetch error
// taxonomy.
func MapGithubError(err error) *collector.FetchError {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return collector.NewFetchError(403, true)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		rateLimited := strings.Contains(strings.ToLower(respErr.Message), "rate limit")
		return collector.NewFetchError(respErr.Response.StatusCode, rateLimited)
	}
	return collector.NewNetworkError(err)
}
