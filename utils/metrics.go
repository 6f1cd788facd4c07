package utils

import (
	"os"
	"sync"

	"github.com/DataDog/datadog-go/statsd"

	Logger "github.com/devdashboard/devdashboard/utils/log"
)

var (
	statsdOnce   sync.Once
	statsdClient *statsd.Client
)

// GetStatsdClient returns the process-wide dogstatsd client, or nil when the
// agent address is not configured. Callers must treat nil as "metrics
// disabled" and skip emission.
func GetStatsdClient() *statsd.Client {
	statsdOnce.Do(func() {
		addr := os.Getenv("DD_AGENT_ADDR")
		if addr == "" {
			return
		}
		client, err := statsd.New(addr, statsd.WithNamespace("devdashboard."))
		if err != nil {
			Logger.Log.Error("fail to initialize statsd client: ", err)
			return
		}
		statsdClient = client
	})
	return statsdClient
}

// EmitCounter increments a counter metric with the given tags, no-op when
// metrics are disabled.
func EmitCounter(name string, tags []string) {
	client := GetStatsdClient()
	if client == nil {
		return
	}
	if err := client.Incr(name, tags, 1); err != nil {
		Logger.Log.Error("fail to emit counter metric: ", err)
	}
}
