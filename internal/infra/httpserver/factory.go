package httpserver

import (
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
)

type Factory struct {
	container *core.Container
}

func NewFactory(c *core.Container) *Factory { return &Factory{container: c} }

func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	httpCfg, ok := cfg.(*Config)
	if !ok {
		return nil, fmt.Errorf("invalid config type for http_server component (need *httpserver.Config)")
	}
	if !httpCfg.Enabled {
		return nil, fmt.Errorf("http_server component disabled")
	}
	return NewServer(httpCfg, f.container), nil
}
