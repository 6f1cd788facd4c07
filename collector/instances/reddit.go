package collector_instances

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
)

// Reddit blocks the default Go user agent.
const redditUserAgent = "devdashboard/1.0"

// RedditCollector pulls newest submissions of a subreddit through the public
// JSON listing. The source url is the subreddit url
// ("https://www.reddit.com/r/golang").
type RedditCollector struct {
	Client *clients.HttpClient
}

func NewRedditCollector() *RedditCollector {
	header := http.Header{}
	header.Set("User-Agent", redditUserAgent)
	return &RedditCollector{Client: clients.NewHttpClient(header)}
}

type redditSubmission struct {
	Id            string  `json:"id"`
	Title         string  `json:"title"`
	Permalink     string  `json:"permalink"`
	Author        string  `json:"author"`
	Selftext      string  `json:"selftext"`
	Subreddit     string  `json:"subreddit"`
	LinkFlairText string  `json:"link_flair_text"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	CreatedUtc    float64 `json:"created_utc"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditSubmission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *RedditCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)

	body, err := c.Client.GetWithQueryParams(listingUrl(source.UrlString()), map[string]string{
		"limit": strconv.Itoa(cfg.MaxItems),
	})
	if err != nil {
		return nil, err
	}

	listing := &redditListing{}
	if err := json.Unmarshal(body, listing); err != nil {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorUnknown,
			Detail: "Malformed reddit listing: " + err.Error(),
			Cause:  err,
		}
	}

	records := make([]collector.Record, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		records = append(records, submissionToRecord(&child.Data))
		if len(records) >= cfg.MaxItems {
			break
		}
	}
	return records, nil
}

func submissionToRecord(s *redditSubmission) collector.Record {
	tags := []string{}
	if s.Subreddit != "" {
		tags = append(tags, s.Subreddit)
	}
	if s.LinkFlairText != "" {
		tags = append(tags, s.LinkFlairText)
	}
	return collector.Record{
		ExternalId: s.Id,
		Title:      s.Title,
		Url:        "https://www.reddit.com" + s.Permalink,
		Author:     s.Author,
		Summary:    collector.SanitizeSummary(s.Selftext),
		Tags:       tags,
		PostedAt:   time.Unix(int64(s.CreatedUtc), 0).UTC(),
		Metrics: collector.EngagementMetrics{
			Upvotes:  s.Score,
			Comments: s.NumComments,
		},
	}
}

// listingUrl normalizes a subreddit url into its newest-first JSON listing.
func listingUrl(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if strings.HasSuffix(trimmed, ".json") {
		return trimmed
	}
	return fmt.Sprintf("%s/new.json", trimmed)
}
