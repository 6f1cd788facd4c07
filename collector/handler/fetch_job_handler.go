package fetch_job_handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/devdashboard/devdashboard/collector"
	"github.com/devdashboard/devdashboard/collector/sink"
	"github.com/devdashboard/devdashboard/model"
	"github.com/devdashboard/devdashboard/publisher"
	"github.com/devdashboard/devdashboard/utils"
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

const maxConcurrentFetches = 4

// FetchJobHandler is the per-source entry point of the ingestion pipeline. It
// sequences collector -> scorer -> gate -> status reporter and isolates
// failures so one source can never abort another's fetch.
type FetchJobHandler struct {
	DB       *gorm.DB
	Registry collector.Registry
	Gate     *publisher.PostGate
	Reporter *publisher.StatusReporter
}

func NewFetchJobHandler(db *gorm.DB, registry collector.Registry, statusSink sink.StatusSink) *FetchJobHandler {
	return &FetchJobHandler{
		DB:       db,
		Registry: registry,
		Gate:     publisher.NewPostGate(db),
		Reporter: publisher.NewStatusReporter(db, statusSink),
	}
}

// FetchSource runs one full fetch cycle for one source. All failures end up
// in the source's status string; nothing propagates to the caller.
func (h *FetchJobHandler) FetchSource(ctx context.Context, source *model.Source) {
	// Disabled auto-fetch short-circuits before any network call or state
	// change. Silent no-op, not an error.
	if !source.AutoFetchEnabled {
		Logger.Log.Debugf("skip fetch for source %s: auto fetch disabled", source.Name)
		return
	}

	sourceCollector, ok := h.Registry.CollectorFor(source)
	if !ok {
		h.Reporter.ReportUnsupported(source)
		utils.EmitCounter("fetch.unsupported", []string{"source_type:" + source.SourceType})
		return
	}

	// Flip the status before the network call so the UI shows the in-flight
	// state immediately.
	h.Reporter.MarkRefreshing(source)

	records, err := sourceCollector.Collect(ctx, source)
	if err != nil {
		h.reportFetchFailure(source, err)
		return
	}

	cfg := collector.ParseSourceConfig(source)
	now := time.Now()
	scored := make([]collector.ScoredRecord, 0, len(records))
	for i := range records {
		scored = append(scored, collector.ScoredRecord{
			Record:        records[i],
			PriorityScore: collector.Score(&records[i], cfg, now),
		})
	}

	result, err := h.Gate.Ingest(source, scored)
	if err != nil {
		h.Reporter.ReportError(source, "Failed to save posts: "+err.Error())
		utils.EmitCounter("fetch.failure", []string{"source_type:" + source.SourceType, "kind:persistence"})
		return
	}

	h.Reporter.ReportSuccess(source, len(result.Created))
	utils.EmitCounter("fetch.success", []string{"source_type:" + source.SourceType})
	if len(result.Created) > 0 {
		Logger.Log.Infof("fetched source %s: %d new, %d skipped", source.Name, len(result.Created), result.SkippedCount)
	}
}

func (h *FetchJobHandler) reportFetchFailure(source *model.Source, err error) {
	var fetchErr *collector.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &collector.FetchError{Kind: collector.ErrorUnknown, Detail: err.Error()}
	}
	h.Reporter.ReportError(source, fetchErr.Detail)
	utils.EmitCounter("fetch.failure", []string{
		"source_type:" + source.SourceType,
		"kind:" + fetchErr.Kind.String(),
	})
	Logger.Log.Errorf("fetch failed for source %s: %s", source.Name, fetchErr.Detail)
}

// RefreshAllActive fetches every active source, fanning out with bounded
// concurrency. There is no completion order across sources; per-source
// failures stay in their own status strings.
func (h *FetchJobHandler) RefreshAllActive(ctx context.Context) error {
	var sources []model.Source
	if err := h.DB.Where("active = ?", true).Find(&sources).Error; err != nil {
		return err
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentFetches)
	for i := range sources {
		source := &sources[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			h.FetchSource(ctx, source)
		}()
	}
	wg.Wait()
	return nil
}
