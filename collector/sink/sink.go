package sink

// StatusEvent is emitted on every source status mutation. Consumed by the
// real-time broadcast layer outside this repository.
type StatusEvent struct {
	SourceId  string `json:"source_id"`
	NewStatus string `json:"new_status"`
}

type StatusSink interface {
	Push(event *StatusEvent) error
}
