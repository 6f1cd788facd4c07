package sink

import (
	Logger "github.com/devdashboard/devdashboard/utils/log"
)

// StdErrSink logs events instead of publishing them. Used in development
// where no redis is running.
type StdErrSink struct{}

func NewStdErrSink() *StdErrSink {
	return &StdErrSink{}
}

func (s *StdErrSink) Push(event *StatusEvent) error {
	if event == nil {
		return nil
	}
	Logger.Log.Infof("=== mock status broadcast === source: %s, status: %s", event.SourceId, event.NewStatus)
	return nil
}
