package collector_instances

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

const hackerNewsDefaultBaseUrl = "https://hacker-news.firebaseio.com/v0"

// HackerNewsCollector pulls the current top stories from the Firebase-backed
// Hacker News API: one listing call for the story ids, then one item call per
// story up to the configured bound.
type HackerNewsCollector struct {
	Client *clients.HttpClient
	// BaseUrl overrides the API endpoint in tests.
	BaseUrl string
}

func NewHackerNewsCollector() *HackerNewsCollector {
	return &HackerNewsCollector{Client: clients.NewDefaultHttpClient(), BaseUrl: hackerNewsDefaultBaseUrl}
}

type hackerNewsItem struct {
	Id          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Url         string `json:"url"`
	By          string `json:"by"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
}

func (c *HackerNewsCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)

	body, err := c.Client.Get(c.BaseUrl + "/topstories.json")
	if err != nil {
		return nil, err
	}
	var ids []int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorUnknown,
			Detail: "Malformed top stories listing: " + err.Error(),
			Cause:  err,
		}
	}

	records := make([]collector.Record, 0, cfg.MaxItems)
	for _, id := range ids {
		if len(records) >= cfg.MaxItems {
			break
		}
		item, err := c.fetchItem(id)
		if err != nil {
			// A single unavailable story should not fail the whole cycle.
			Logger.Log.Warnf("fail to fetch hacker news item %d: %v", id, err)
			continue
		}
		if item.Type != "story" || item.Title == "" {
			continue
		}
		records = append(records, storyToRecord(item))
	}
	return records, nil
}

func (c *HackerNewsCollector) fetchItem(id int) (*hackerNewsItem, error) {
	body, err := c.Client.Get(fmt.Sprintf("%s/item/%d.json", c.BaseUrl, id))
	if err != nil {
		return nil, err
	}
	item := &hackerNewsItem{}
	if err := json.Unmarshal(body, item); err != nil {
		return nil, err
	}
	return item, nil
}

func storyToRecord(item *hackerNewsItem) collector.Record {
	url := item.Url
	// Ask HN and similar text posts carry no external url.
	if url == "" {
		url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", item.Id)
	}
	return collector.Record{
		ExternalId: strconv.Itoa(item.Id),
		Title:      item.Title,
		Url:        url,
		Author:     item.By,
		Summary:    collector.SanitizeSummary(item.Text),
		Tags:       []string{},
		PostedAt:   time.Unix(item.Time, 0).UTC(),
		Metrics: collector.EngagementMetrics{
			Upvotes:  item.Score,
			Comments: item.Descendants,
		},
	}
}
