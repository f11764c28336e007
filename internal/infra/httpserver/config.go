package httpserver

import "time"

// Config defines server settings.
type Config struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	Address         string        `yaml:"address" json:"address"` // e.g. ":8080"
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	GracefulTimeout time.Duration `yaml:"graceful_timeout" json:"graceful_timeout"`
	// upper bound for a single handler; the request context is cancelled after it
	HandlerTimeout time.Duration `yaml:"handler_timeout" json:"handler_timeout"`
	EnableHealth   bool          `yaml:"enable_health" json:"enable_health"`
	// ServiceName is injected from app_info.app_name
	ServiceName string `yaml:"-" json:"-"`
}
