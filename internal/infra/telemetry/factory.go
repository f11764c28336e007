package telemetry

import (
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
)

type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	c, ok := cfg.(*Config)
	if !ok {
		return nil, fmt.Errorf("invalid config type for telemetry component (*Config required)")
	}
	if c == nil || !c.Enabled {
		return nil, fmt.Errorf("telemetry component disabled")
	}
	return NewComponent(c), nil
}
