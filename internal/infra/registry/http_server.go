package registry

import (
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/api"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/config"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/httpserver"
)

func init() {
	Register(consts.COMPONENT_HTTP_SERVER, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.HTTPServer == nil || !cfg.HTTPServer.Enabled {
			return false, nil, nil
		}
		if cfg.APPInfo != nil {
			cfg.HTTPServer.ServiceName = cfg.APPInfo.APPName
		}
		comp, err := httpserver.NewFactory(c).Create(cfg.HTTPServer)
		if err != nil {
			return true, nil, err
		}
		server := comp.(*httpserver.Server)
		dependOnIfRegistered(c, server, consts.COMPONENT_TELEMETRY, consts.COMPONENT_TASK_API)
		if c.Has(consts.COMPONENT_TASK_API) {
			if err := server.AddRouteRegistrar(api.RegisterRoutes); err != nil {
				return true, nil, err
			}
		}
		return true, server, nil
	}, consts.COMPONENT_TELEMETRY, consts.COMPONENT_TASK_API)
}
