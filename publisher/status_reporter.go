package publisher

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/devdashboard/devdashboard/collector/sink"
	"github.com/devdashboard/devdashboard/model"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

const (
	StatusRefreshing      = "refreshing..."
	StatusOk              = "ok"
	statusUnsupportedType = "error: unsupported source type"
)

// StatusReporter owns every mutation of a source's status string. The status
// is the only user-visible error surface, and each mutation broadcasts
// exactly one event through the sink.
type StatusReporter struct {
	db   *gorm.DB
	sink sink.StatusSink
}

func NewStatusReporter(db *gorm.DB, statusSink sink.StatusSink) *StatusReporter {
	return &StatusReporter{db: db, sink: statusSink}
}

// MarkRefreshing flags the source as in-flight. Called synchronously before
// any network activity so the dashboard reflects the state immediately. This
// marker is advisory only, not a lock.
func (r *StatusReporter) MarkRefreshing(source *model.Source) {
	r.setStatus(source, StatusRefreshing, false)
}

// ReportSuccess records a completed fetch and its new-post count.
func (r *StatusReporter) ReportSuccess(source *model.Source, newCount int) {
	status := StatusOk
	if newCount > 0 {
		status = fmt.Sprintf("ok (%d new)", newCount)
	}
	r.setStatus(source, status, true)
}

// ReportError records a failed fetch with a human-readable detail.
func (r *StatusReporter) ReportError(source *model.Source, detail string) {
	r.setStatus(source, "error: "+detail, false)
}

// ReportUnsupported records that no collector is registered for the source's
// type.
func (r *StatusReporter) ReportUnsupported(source *model.Source) {
	r.setStatus(source, statusUnsupportedType, false)
}

func (r *StatusReporter) setStatus(source *model.Source, status string, touchLastFetched bool) {
	source.Status = status
	updates := map[string]interface{}{"status": status}
	if touchLastFetched {
		now := time.Now()
		source.LastFetchedAt = &now
		updates["last_fetched_at"] = now
	}

	if err := r.db.Model(&model.Source{}).Where("id = ?", source.Id).Updates(updates).Error; err != nil {
		Logger.Log.Errorf("fail to update status of source %s: %v", source.Name, err)
	}

	if err := r.sink.Push(&sink.StatusEvent{SourceId: source.Id, NewStatus: status}); err != nil {
		Logger.Log.Errorf("fail to broadcast status of source %s: %v", source.Name, err)
	}
}
