package collector_instances

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/clients"
	"github.com/devdashboard/devdashboard/model"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

// DiscourseCollector pulls the latest topics of a Discourse forum (the
// HuggingFace forums and similar) through /latest.json. The source url is the
// forum root.
type DiscourseCollector struct {
	Client *clients.HttpClient
}

func NewDiscourseCollector() *DiscourseCollector {
	return &DiscourseCollector{Client: clients.NewDefaultHttpClient()}
}

type discourseTopic struct {
	Id         int      `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	PostsCount int      `json:"posts_count"`
	LikeCount  int      `json:"like_count"`
	Posters    []struct {
		UserId int `json:"user_id"`
	} `json:"posters"`
}

type discourseLatest struct {
	Users []struct {
		Id       int    `json:"id"`
		Username string `json:"username"`
	} `json:"users"`
	TopicList struct {
		Topics []discourseTopic `json:"topics"`
	} `json:"topic_list"`
}

func (c *DiscourseCollector) Collect(ctx context.Context, source *model.Source) ([]collector.Record, error) {
	cfg := collector.ParseSourceConfig(source)
	base := strings.TrimSuffix(source.UrlString(), "/")

	body, err := c.Client.Get(base + "/latest.json")
	if err != nil {
		return nil, err
	}

	latest := &discourseLatest{}
	if err := json.Unmarshal(body, latest); err != nil {
		return nil, &collector.FetchError{
			Kind:   collector.ErrorUnknown,
			Detail: "Malformed discourse response: " + err.Error(),
			Cause:  err,
		}
	}

	usernames := map[int]string{}
	for _, u := range latest.Users {
		usernames[u.Id] = u.Username
	}

	records := make([]collector.Record, 0, len(latest.TopicList.Topics))
	for i := range latest.TopicList.Topics {
		records = append(records, topicToRecord(&latest.TopicList.Topics[i], base, usernames))
		if len(records) >= cfg.MaxItems {
			break
		}
	}
	return records, nil
}

func topicToRecord(topic *discourseTopic, base string, usernames map[int]string) collector.Record {
	author := ""
	// The first poster in /latest.json is the topic creator.
	if len(topic.Posters) > 0 {
		author = usernames[topic.Posters[0].UserId]
	}

	postedAt := time.Time{}
	if topic.CreatedAt != "" {
		parsed, err := dateparse.ParseAny(topic.CreatedAt)
		if err != nil {
			Logger.Log.Warnf("unparseable discourse topic time %q: %v", topic.CreatedAt, err)
		} else {
			postedAt = parsed
		}
	}

	replies := topic.PostsCount - 1
	if replies < 0 {
		replies = 0
	}

	tags := topic.Tags
	if tags == nil {
		tags = []string{}
	}

	return collector.Record{
		ExternalId: strconv.Itoa(topic.Id),
		Title:      topic.Title,
		Url:        fmt.Sprintf("%s/t/%s/%d", base, topic.Slug, topic.Id),
		Author:     author,
		Summary:    collector.SanitizeSummary(topic.Excerpt),
		Tags:       tags,
		PostedAt:   postedAt,
		Metrics: collector.EngagementMetrics{
			Comments: replies,
			Likes:    topic.LikeCount,
		},
	}
}
