package collector_instances

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/devdashboard/devdashboard/model"
)

func trendingTestSource(config datatypes.JSONMap) *model.Source {
	return &model.Source{
		Id:         "source-6",
		Name:       "trending go repos",
		SourceType: model.SourceTypeGithubTrending,
		Config:     config,
	}
}

func TestGithubTrendingCollect(t *testing.T) {
	createdAt := time.Now().Add(-3 * time.Hour).UTC().Format(time.RFC3339)
	fixture := fmt.Sprintf(`{
		"total_count": 1,
		"incomplete_results": false,
		"items": [{
			"id": 9001,
			"full_name": "gopher/fastcache",
			"description": "A zero-allocation cache",
			"html_url": "https://github.com/gopher/fastcache",
			"owner": {"login": "gopher"},
			"stargazers_count": 512,
			"forks_count": 24,
			"language": "Go",
			"created_at": %q,
			"license": {"key": "mit"},
			"topics": ["cache", "performance"]
		}]
	}`, createdAt)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("q"), "language:go")
		assert.Contains(t, r.URL.Query().Get("q"), "created:>")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixture))
	}))
	defer server.Close()

	c := GithubTrendingCollector{ApiBaseURL: server.URL}
	records, err := c.Collect(context.Background(), trendingTestSource(datatypes.JSONMap{
		"language": "go",
		"since":    "daily",
	}))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "9001", record.ExternalId)
	assert.Equal(t, "gopher/fastcache - A zero-allocation cache", record.Title)
	assert.Equal(t, "gopher", record.Author)
	assert.Equal(t, "Go", record.Language)
	assert.Equal(t, 512, record.Metrics.Stars)
	assert.Equal(t, 24, record.Metrics.Forks)
	assert.ElementsMatch(t, []string{"cache", "performance", "trending", "new-repo", "popular", "license:mit"}, record.Tags)
}

func TestRepoToRecordDerivedTags(t *testing.T) {
	now := time.Now()

	t.Run("old small repo gets only the trending tag", func(t *testing.T) {
		repo := &github.Repository{
			ID:              github.Int64(1),
			FullName:        github.String("a/b"),
			StargazersCount: github.Int(10),
			CreatedAt:       &github.Timestamp{Time: now.Add(-90 * 24 * time.Hour)},
		}
		record := repoToRecord(repo, now)
		assert.Equal(t, []string{"trending"}, record.Tags)
		assert.Equal(t, "a/b", record.Title)
	})

	t.Run("popular needs more than 100 stars", func(t *testing.T) {
		repo := &github.Repository{
			ID:              github.Int64(2),
			FullName:        github.String("a/b"),
			StargazersCount: github.Int(100),
			CreatedAt:       &github.Timestamp{Time: now.Add(-48 * time.Hour)},
		}
		record := repoToRecord(repo, now)
		assert.NotContains(t, record.Tags, "popular")
	})

	t.Run("repo created within a day is new", func(t *testing.T) {
		repo := &github.Repository{
			ID:        github.Int64(3),
			FullName:  github.String("a/b"),
			CreatedAt: &github.Timestamp{Time: now.Add(-2 * time.Hour)},
		}
		record := repoToRecord(repo, now)
		assert.Contains(t, record.Tags, "new-repo")
	})
}
