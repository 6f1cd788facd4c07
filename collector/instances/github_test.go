package collector_instances

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/model"
)

const githubIssuesFixture = `[
	{
		"number": 501,
		"title": "ActiveRecord N+1 detection",
		"html_url": "https://github.com/rails/rails/issues/501",
		"user": {"login": "contributor"},
		"body": "It would be nice to detect N+1 queries in development.",
		"labels": [{"name": "activerecord"}, {"name": "feature"}],
		"comments": 8,
		"created_at": "2024-01-10T12:00:00Z"
	},
	{
		"number": 502,
		"title": "Fix typo in docs",
		"html_url": "https://github.com/rails/rails/pull/502",
		"user": {"login": "docfixer"},
		"pull_request": {"url": "https://api.github.com/repos/rails/rails/pulls/502"},
		"created_at": "2024-01-11T12:00:00Z"
	}
]`

func githubTestSource(url string, config datatypes.JSONMap) *model.Source {
	return &model.Source{
		Id:         "source-5",
		Name:       "rails issues",
		SourceType: model.SourceTypeGithub,
		Url:        &url,
		Config:     config,
	}
}

func TestGithubIssuesCollect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/rails/rails/issues", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(githubIssuesFixture))
	}))
	defer server.Close()

	c := GithubIssuesCollector{ApiBaseURL: server.URL}
	records, err := c.Collect(context.Background(), githubTestSource("https://github.com/rails/rails", datatypes.JSONMap{}))
	require.NoError(t, err)
	// The pull request entry is skipped.
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "501", record.ExternalId)
	assert.Equal(t, "ActiveRecord N+1 detection", record.Title)
	assert.Equal(t, "https://github.com/rails/rails/issues/501", record.Url)
	assert.Equal(t, "contributor", record.Author)
	assert.Equal(t, []string{"activerecord", "feature"}, record.Tags)
	assert.Equal(t, 8, record.Metrics.Comments)
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), record.PostedAt)
}

func TestGithubIssuesCollectRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(403)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}))
	defer server.Close()

	c := GithubIssuesCollector{ApiBaseURL: server.URL}
	_, err := c.Collect(context.Background(), githubTestSource("https://github.com/rails/rails", datatypes.JSONMap{}))
	require.Error(t, err)

	var fetchErr *collector.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, collector.ErrorRateLimited, fetchErr.Kind)
	assert.Equal(t, "HTTP 403 - Rate limit exceeded. Add a GitHub token.", fetchErr.Detail)
}

func TestGithubIssuesCollectBadUrl(t *testing.T) {
	c := GithubIssuesCollector{}
	_, err := c.Collect(context.Background(), githubTestSource("https://example.org/not-a-repo-path/x/y", datatypes.JSONMap{}))

	var fetchErr *collector.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, collector.ErrorInvalidRequest, fetchErr.Kind)
}

func TestSplitOwnerRepo(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		repo  string
		ok    bool
	}{
		{"https://github.com/rails/rails", "rails", "rails", true},
		{"https://github.com/rails/rails/", "rails", "rails", true},
		{"github.com/huggingface/transformers", "huggingface", "transformers", true},
		{"owner/repo", "owner", "repo", true},
		{"https://github.com/onlyowner", "", "", false},
		{"", "", "", false},
	}
	for _, c := range cases {
		owner, repo, ok := splitOwnerRepo(c.url)
		assert.Equalf(t, c.ok, ok, "url %q", c.url)
		assert.Equal(t, c.owner, owner)
		assert.Equal(t, c.repo, repo)
	}
}

func TestIssueToRecordMissingFields(t *testing.T) {
	record := issueToRecord(&github.Issue{Number: github.Int(9)})
	assert.Equal(t, "9", record.ExternalId)
	assert.Equal(t, "", record.Title)
	assert.Equal(t, "", record.Author)
	assert.Equal(t, []string{}, record.Tags)
}
