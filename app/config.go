package app

import (
	"github.com/dmitrymomot/headcount/core/server"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Server server.Config

	AppName  string `env:"APP_NAME" envDefault:"headcount"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	// LogLevel overrides the level implied by Env when set.
	LogLevel string `env:"LOG_LEVEL"`

	// SubscriberBuffer is the per-subscriber update buffer. A subscriber
	// that falls this many updates behind misses the next ones.
	SubscriberBuffer int `env:"SUBSCRIBER_BUFFER" envDefault:"4"`
}
