package collector_instances

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
)

// RssCollector handles generic RSS/Atom feeds. The body is fetched through
// the shared http client so failures map onto the fetch error taxonomy, then
// handed to gofeed for format detection and parsing.
type RssCollector struct {
	Client *clients.HttpClient
}

func NewRssCollector() *RssCollector {
	return &RssCollector{Client: clients.NewDefaultHttpClient()}
}

func (c *RssCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)

	body, err := c.Client.Get(source.UrlString())
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorUnknown,
			Detail: "Malformed feed: " + err.Error(),
			Cause:  err,
		}
	}

	records := make([]collector.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		// Optional keyword filter: drop items whose title and description
		// match none of the configured keywords.
		if !collector.MatchesAnyKeyword(item.Title+" "+item.Description, cfg.Keywords) {
			continue
		}
		records = append(records, feedItemToRecord(item))
		if len(records) >= cfg.MaxItems {
			break
		}
	}
	return records, nil
}

func feedItemToRecord(item *gofeed.Item) collector.Record {
	externalId := item.GUID
	if externalId == "" {
		externalId = item.Link
	}

	author := ""
	if item.Author != nil {
		author = item.Author.Name
	}

	postedAt := time.Time{}
	switch {
	case item.PublishedParsed != nil:
		postedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		postedAt = *item.UpdatedParsed
	case item.Published != "":
		if parsed, err := dateparse.ParseAny(item.Published); err == nil {
			postedAt = parsed
		}
	}

	tags := item.Categories
	if tags == nil {
		tags = []string{}
	}

	return collector.Record{
		ExternalId: externalId,
		Title:      item.Title,
		Url:        item.Link,
		Author:     author,
		Summary:    collector.SanitizeSummary(item.Description),
		Tags:       tags,
		PostedAt:   postedAt,
	}
}
