package collector_builder

import (
	"github.com/devdashboard/devdashboard/collector"
	collector_instances "github.com/devdashboard/devdashboard/collector/instances"
	"github.com/devdashboard/devdashboard/model"
)

// NewDefaultRegistry wires every supported source type to its collector.
// Source types absent from the registry report the unsupported outcome.
func NewDefaultRegistry() collector.Registry {
	return collector.Registry{
		model.SourceTypeGithub:         collector_instances.GithubIssuesCollector{},
		model.SourceTypeGithubTrending: collector_instances.GithubTrendingCollector{},
		model.SourceTypeReddit:         collector_instances.NewRedditCollector(),
		model.SourceTypeDiscourse:      collector_instances.NewDiscourseCollector(),
		model.SourceTypeRss:            collector_instances.NewRssCollector(),
		model.SourceTypeHackerNews:     collector_instances.NewHackerNewsCollector(),
	}
}
