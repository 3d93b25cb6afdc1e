package test

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// INTEGRATION_EVENT_TIMEOUT bounds how long scenarios wait for a broadcast
	EventTimeout time.Duration `envconfig:"INTEGRATION_EVENT_TIMEOUT" default:"2s"`
	// INTEGRATION_CREATORS sets the concurrency level of the racing-creators scenario
	Creators int `envconfig:"INTEGRATION_CREATORS" default:"8"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
