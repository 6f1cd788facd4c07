package collector

import (
	"context"
	"time"

	"github.com/devdashboard/devdashboard/model"
)

// Record is the normalized intermediate item every source collector produces.
// It carries everything the scorer and the persistence gate need, detached
// from the upstream payload shape.
type Record struct {
	ExternalId string
	Title      string
	Url        string
	Author     string
	Summary    string
	Tags       []string
	PostedAt   time.Time
	// Language is the record's primary language or topic used for the
	// preferred-language score bonus. Empty when the source has no notion of
	// language.
	Language string
	Metrics  EngagementMetrics
}

// EngagementMetrics are the raw upstream engagement numbers. Which fields a
// source fills in is source-specific; unfilled fields stay zero and do not
// contribute to the score.
type EngagementMetrics struct {
	Stars    int
	Forks    int
	Upvotes  int
	Comments int
	Likes    int
}

// ScoredRecord is a record annotated with its priority score, ready for the
// persistence gate.
type ScoredRecord struct {
	Record
	PriorityScore float64
}

// SourceCollector fetches one bounded page of items for a source and
// normalizes them. Implementations never retry and never write to the
// database; a failed call is returned as a *FetchError for the orchestrator
// to report.
type SourceCollector interface {
	Collect(ctx context.Context, source *model.Source) ([]Record, error)
}

// Registry maps a source type to its collector. Lookup happens once per
// fetch; a missing entry yields the unsupported outcome.
type Registry map[string]SourceCollector

// CollectorFor returns the collector registered for the source's type.
func (r Registry) CollectorFor(source *model.Source) (SourceCollector, bool) {
	c, ok := r[source.SourceType]
	return c, ok
}
