package flag

import "flag"

const (
	APIServer   = "api_server"
	FetchWorker = "fetch_worker"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'fetch_worker'")
}

// Parse must be called from main after all flags are registered.
func Parse() {
	flag.Parse()
}
