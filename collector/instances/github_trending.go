package collector_instances

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/github"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
)

const (
	newRepoWindow     = 24 * time.Hour
	popularStarsFloor = 100
)

// GithubTrendingCollector approximates GitHub's trending page through the
// repository search API: repositories created inside the configured window,
// ordered by stars. No per-source url is involved.
type GithubTrendingCollector struct {
	ApiBaseURL string
}

func (c GithubTrendingCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)

	client, err := clients.NewGithubClient(ctx, cfg.Token, c.ApiBaseURL)
	if err != nil {
		return nil, collector.NewNetworkError(err)
	}

	window := sinceWindow(cfg.Since)
	if window == 0 {
		window = 7 * 24 * time.Hour
	}
	query := fmt.Sprintf("created:>%s", time.Now().Add(-window).Format("2006-01-02"))
	if cfg.Language != "" {
		query += " language:" + cfg.Language
	}

	result, _, err := client.Search.Repositories(ctx, query, &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: cfg.MaxItems},
	})
	if err != nil {
		return nil, githubFetchError(err)
	}

	records := make([]collector.Record, 0, len(result.Repositories))
	for i := range result.Repositories {
		records = append(records, repoToRecord(&result.Repositories[i], time.Now()))
		if len(records) >= cfg.MaxItems {
			break
		}
	}
	return records, nil
}

func repoToRecord(repo *github.Repository, now time.Time) collector.Record {
	title := repo.GetFullName()
	if repo.GetDescription() != "" {
		title = title + " - " + repo.GetDescription()
	}

	tags := append([]string{}, repo.Topics...)
	tags = append(tags, "trending")
	if now.Sub(repo.GetCreatedAt().Time) < newRepoWindow {
		tags = append(tags, "new-repo")
	}
	if repo.GetStargazersCount() > popularStarsFloor {
		tags = append(tags, "popular")
	}
	if key := repo.GetLicense().GetKey(); key != "" {
		tags = append(tags, "license:"+key)
	}

	return collector.Record{
		ExternalId: fmt.Sprint(repo.GetID()),
		Title:      title,
		Url:        repo.GetHTMLURL(),
		Author:     repo.GetOwner().GetLogin(),
		Summary:    collector.SanitizeSummary(repo.GetDescription()),
		Tags:       tags,
		PostedAt:   repo.GetCreatedAt().Time,
		Language:   repo.GetLanguage(),
		Metrics: collector.EngagementMetrics{
			Stars: repo.GetStargazersCount(),
			Forks: repo.GetForksCount(),
		},
	}
}
