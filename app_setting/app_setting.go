package app_setting

import (
	"time"

	"github.com/caarlos0/env/v9"
)

// AppSetting carries the runtime knobs shared by the server and the worker.
// Values come from the environment after the dotenv files are loaded.
type AppSetting struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	// How often the worker refreshes all active sources.
	FetchInterval time.Duration `env:"FETCH_INTERVAL" envDefault:"5m"`
	// Use the stderr sink instead of redis for status broadcast. Handy for
	// local runs without a redis instance.
	DisableRedisBroadcast bool `env:"DISABLE_REDIS_BROADCAST" envDefault:"false"`
	// Path of the yaml file consumed by cmd/seed.
	SourceSeedPath string `env:"SOURCE_SEED_PATH" envDefault:"sources.yaml"`
}

func ParseAppSetting() (AppSetting, error) {
	setting := AppSetting{}
	if err := env.Parse(&setting); err != nil {
		return setting, err
	}
	return setting, nil
}
