package collector_instances

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/github"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
)

// GithubIssuesCollector lists recent issues of a single repository. The
// source url points at the repository ("https://github.com/owner/repo" or
// plain "owner/repo").
type GithubIssuesCollector struct {
	// ApiBaseURL overrides the GitHub API endpoint in tests. Empty means the
	// public API.
	ApiBaseURL string
}

func (c GithubIssuesCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)

	owner, repo, ok := splitOwnerRepo(source.UrlString())
	if !ok {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorInvalidRequest,
			Detail: "Source url is not a GitHub repository: " + source.UrlString(),
		}
	}

	client, err := clients.NewGithubClient(ctx, cfg.Token, c.ApiBaseURL)
	if err != nil {
		return nil, collector.NewNetworkError(err)
	}

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Sort:        "created",
		Direction:   "desc",
		Labels:      cfg.Labels,
		ListOptions: github.ListOptions{PerPage: cfg.MaxItems},
	}
	if window := sinceWindow(cfg.Since); window > 0 {
		opts.Since = time.Now().Add(-window)
	}

	issues, _, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, githubFetchError(err)
	}

	records := make([]collector.Record, 0, len(issues))
	for _, issue := range issues {
		// The issues endpoint also returns pull requests.
		if issue.PullRequestLinks != nil {
			continue
		}
		records = append(records, issueToRecord(issue))
		if len(records) >= cfg.MaxItems {
			break
		}
	}
	return records, nil
}

func issueToRecord(issue *github.Issue) collector.Record {
	tags := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		tags = append(tags, label.GetName())
	}
	return collector.Record{
		ExternalId: strconv.Itoa(issue.GetNumber()),
		Title:      issue.GetTitle(),
		Url:        issue.GetHTMLURL(),
		Author:     issue.GetUser().GetLogin(),
		Summary:    collector.SanitizeSummary(issue.GetBody()),
		Tags:       tags,
		PostedAt:   issue.GetCreatedAt(),
		Metrics: collector.EngagementMetrics{
			Comments: issue.GetComments(),
		},
	}
}

// githubFetchError maps a go-github failure, pinning the rate-limit detail to
// actionable guidance since unauthenticated GitHub quota is tiny.
func githubFetchError(err error) *collector.FetchError {
	fetchErr := clients.MapGithubError(err)
	if fetchErr.Kind == collector.ErrorRateLimited {
		fetchErr.Detail = "HTTP 403 - Rate limit exceeded. Add a GitHub token."
	}
	return fetchErr
}

func splitOwnerRepo(url string) (owner string, repo string, ok bool) {
	trimmed := strings.TrimSuffix(url, "/")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "github.com/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func sinceWindow(since string) time.Duration {
	switch since {
	case "daily":
		return 24 * time.Hour
	case "weekly":
		return 7 * 24 * time.Hour
	}
	return 0
}
