package bootstrap

import (
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
)

type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

// Create expects *bootstrap.Config.
func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	dbCfg, ok := cfg.(*Config)
	if !ok {
		return nil, fmt.Errorf("invalid config type for database component (need *bootstrap.Config)")
	}
	if dbCfg == nil || !dbCfg.Enabled {
		return nil, fmt.Errorf("database component disabled")
	}
	dbCfg.ApplyDefaults()
	if err := dbCfg.Validate(); err != nil {
		return nil, err
	}
	return NewComponent(*dbCfg), nil
}
