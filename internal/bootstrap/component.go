package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
)

// Component owns the application pool. On start it either bootstraps the
// database or just connects to it, depending on bootstrap.enabled.
type Component struct {
	*core.BaseComponent
	cfg  Config
	init func(ctx context.Context, cfg Config) (*postgres.Pool, error)
	pool *postgres.Pool
}

func NewComponent(cfg Config) *Component {
	cfg.ApplyDefaults()
	c := &Component{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_DATABASE, consts.COMPONENT_LOGGING),
		cfg:           cfg,
	}
	if cfg.Bootstrap.Enabled {
		c.init = InitDatabase
	} else {
		c.init = func(ctx context.Context, cfg Config) (*postgres.Pool, error) {
			return postgres.Open(ctx, cfg.AppOptions())
		}
	}
	return c
}

func (c *Component) Start(ctx context.Context) error {
	if err := c.BaseComponent.Start(ctx); err != nil {
		return err
	}
	begin := time.Now()
	pool, err := c.init(ctx, c.cfg)
	if err != nil {
		_ = c.BaseComponent.Stop(ctx)
		return fmt.Errorf("database init failed: %w", err)
	}
	c.pool = pool
	logging.Infof(ctx, "[database] ready bootstrap=%t database=%s dur=%s", c.cfg.Bootstrap.Enabled, c.cfg.App.Database, time.Since(begin))
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	defer func() { _ = c.BaseComponent.Stop(ctx) }()
	if c.pool == nil {
		return nil
	}
	err := c.pool.Close()
	c.pool = nil
	logging.Info(ctx, "[database] pool closed")
	return err
}

func (c *Component) HealthCheck() error {
	if err := c.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	if c.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.pool.Ping(ctx)
}

// Pool returns the application pool; nil before Start.
func (c *Component) Pool() *postgres.Pool { return c.pool }
