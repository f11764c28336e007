package registry

import (
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/api"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/bootstrap"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/dao"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/config"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
)

func init() {
	Register(consts.COMPONENT_DATABASE, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Database == nil || !cfg.Database.Enabled {
			return false, nil, nil
		}
		comp, err := bootstrap.NewFactory().Create(cfg.Database)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})

	Register(consts.COMPONENT_TASK_DAO, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if !c.Has(consts.COMPONENT_DATABASE) {
			return false, nil, nil
		}
		db, err := core.ResolveAs[*bootstrap.Component](c, consts.COMPONENT_DATABASE)
		if err != nil {
			return true, nil, err
		}
		var opts dao.Options
		if biz := cfg.BizConfig; biz != nil {
			opts.TenantID = biz.TenantID
			opts.DefaultTitle = biz.DefaultTitle
		}
		d := dao.NewTaskDao(db, opts)
		dependOnIfRegistered(c, d, consts.COMPONENT_PROMETHEUS, consts.COMPONENT_TELEMETRY)
		return true, d, nil
	}, consts.COMPONENT_DATABASE, consts.COMPONENT_PROMETHEUS, consts.COMPONENT_TELEMETRY)

	Register(consts.COMPONENT_TASK_API, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.HTTPServer == nil || !cfg.HTTPServer.Enabled || !c.Has(consts.COMPONENT_TASK_DAO) {
			return false, nil, nil
		}
		store, err := core.ResolveAs[*dao.TaskDao](c, consts.COMPONENT_TASK_DAO)
		if err != nil {
			return true, nil, fmt.Errorf("resolve task store: %w", err)
		}
		var webFolder string
		if cfg.BizConfig != nil {
			webFolder = cfg.BizConfig.WebFolder
		}
		return true, api.NewTaskController(store, webFolder), nil
	}, consts.COMPONENT_TASK_DAO)
}
