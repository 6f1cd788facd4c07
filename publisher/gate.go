package publisher

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/model"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

const dedupKeyDelimiter = "__"

// PostGate is the deduplication and persistence step of a fetch cycle. A post
// is identified by (source name, external id); candidates that already exist
// are skipped without touching the stored row, so the first fetched version
// of an item is the one that stays.
//
// The in-memory map caches ids known to exist since the process started, to
// skip the DB lookup on the common re-fetch path. It can return false
// negatives (a post missing from the map may still exist in the DB), never
// false positives.
type PostGate struct {
	db *gorm.DB

	m          sync.RWMutex
	existingId map[string]bool
}

func NewPostGate(db *gorm.DB) *PostGate {
	return &PostGate{
		db:         db,
		existingId: make(map[string]bool),
	}
}

// IngestResult summarizes one gate pass for the status reporter.
type IngestResult struct {
	Created      []model.Post
	SkippedCount int
}

// Ingest persists the candidates that are new for this source. Safe for
// concurrent use across different sources; single-flight per source is the
// orchestrator's cooperative convention, not enforced here.
func (g *PostGate) Ingest(source *model.Source, records []collector.ScoredRecord) (IngestResult, error) {
	result := IngestResult{Created: []model.Post{}}

	for i := range records {
		record := &records[i]
		if record.ExternalId == "" {
			Logger.Log.Warnf("dropping record without external id from source %s", source.Name)
			result.SkippedCount++
			continue
		}
		if g.postExists(source.Name, record.ExternalId) {
			result.SkippedCount++
			continue
		}

		post := buildPost(source, record)
		if err := g.db.Create(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a check-then-insert race; the stored row wins.
				g.markExists(source.Name, record.ExternalId)
				result.SkippedCount++
				continue
			}
			return result, errors.Wrap(err, "fail to save post "+record.ExternalId)
		}
		g.markExists(source.Name, record.ExternalId)
		result.Created = append(result.Created, post)
	}
	return result, nil
}

func buildPost(source *model.Source, record *collector.ScoredRecord) model.Post {
	score := record.PriorityScore
	post := model.Post{
		Id:            uuid.New().String(),
		Source:        source.Name,
		ExternalId:    record.ExternalId,
		Title:         record.Title,
		Url:           record.Url,
		Author:        record.Author,
		Summary:       record.Summary,
		PostedAt:      record.PostedAt,
		PriorityScore: &score,
		Status:        model.PostStatusUnread,
	}
	post.SetTags(record.Tags)
	return post
}

func (g *PostGate) postExists(sourceName string, externalId string) bool {
	key := sourceName + dedupKeyDelimiter + externalId

	g.m.RLock()
	if g.existingId[key] {
		g.m.RUnlock()
		return true
	}
	g.m.RUnlock()

	var count int64
	g.db.Model(&model.Post{}).
		Where("source = ? AND external_id = ?", sourceName, externalId).
		Count(&count)
	if count > 0 {
		g.markExists(sourceName, externalId)
		return true
	}
	return false
}

func (g *PostGate) markExists(sourceName string, externalId string) {
	g.m.Lock()
	g.existingId[sourceName+dedupKeyDelimiter+externalId] = true
	g.m.Unlock()
}
