// Package app wires configuration, components and the lifecycle manager.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/bootstrap"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/dao"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/config"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/hooks"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/registry"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/security"
)

type App struct {
	container        *core.Container
	lifecycleManager *core.LifecycleManager
	configManager    *config.ConfigManager

	bootOnce sync.Once
	bootErr  error

	shutdownTimeout time.Duration
}

func New(env string, configPath string) *App {
	abs := configPath
	if p, err := filepath.Abs(configPath); err == nil {
		abs = p
	}
	container := core.NewContainer()
	app := &App{
		configManager:    config.NewConfigManager(env, abs),
		container:        container,
		lifecycleManager: core.NewLifecycleManager(container),
		shutdownTimeout:  30 * time.Second,
	}
	_ = app.AddHook("health_report", hooks.AfterStart, app.logHealth, 100)
	return app
}

// logHealth reports unhealthy components once everything has started.
func (app *App) logHealth(ctx context.Context) error {
	for name, err := range app.lifecycleManager.HealthReport() {
		if err != nil {
			logging.Warn(ctx, "component unhealthy after start", zap.String("component", name), zap.Error(err))
		}
	}
	return nil
}

func (app *App) SetShutdownTimeout(d time.Duration) { app.shutdownTimeout = d }

func (app *App) boot() error {
	app.bootOnce.Do(func() {
		if err := app.configManager.LoadConfig(); err != nil {
			app.bootErr = fmt.Errorf("load config failed: %w", err)
			return
		}
		if err := registry.BuildAndRegisterAll(app.configManager.GetConfig(), app.container); err != nil {
			app.bootErr = fmt.Errorf("register components failed: %w", err)
		}
	})
	return app.bootErr
}

func (app *App) GetComponent(name string) (core.Component, error) {
	return app.container.Resolve(name)
}

func (app *App) GetConfig() *config.AppConfig {
	return app.configManager.GetConfig()
}

func (app *App) AddHook(name string, phase hooks.Phase, fn hooks.HookFunc, priority int) error {
	return app.lifecycleManager.AddHook(name, phase, fn, priority)
}

// Run serves until SIGINT or SIGTERM.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.RunWithContext(ctx)
}

// RunWithContext starts all components, blocks until ctx is done, then shuts down.
func (app *App) RunWithContext(ctx context.Context) error {
	if err := app.boot(); err != nil {
		return err
	}
	if err := app.lifecycleManager.StartAll(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	app.Shutdown()
	return nil
}

func (app *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
	defer cancel()
	app.lifecycleManager.StopAll(ctx)
}

// Bootstrap recreates the application database once and returns the number
// of tasks present afterwards. Only the logging component is started.
func (app *App) Bootstrap(ctx context.Context) (int, error) {
	if err := app.configManager.LoadConfig(); err != nil {
		return 0, fmt.Errorf("load config failed: %w", err)
	}
	cfg := app.configManager.GetConfig()

	logger, err := logging.NewFactory().Create(cfg.Logging)
	if err != nil {
		return 0, err
	}
	if err := logger.Start(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = logger.Stop(context.Background()) }()

	pool, err := bootstrap.InitDatabase(ctx, *cfg.Database)
	if err != nil {
		return 0, err
	}
	defer func() { _ = pool.Close() }()

	var opts dao.Options
	if cfg.BizConfig != nil {
		opts.TenantID = cfg.BizConfig.TenantID
		opts.DefaultTitle = cfg.BizConfig.DefaultTitle
	}
	store := dao.NewTaskDao(staticPool{pool}, opts)
	if err := store.Start(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = store.Stop(context.Background()) }()

	tasks, err := store.List(ctx, &security.UserCtx{UserID: consts.DefaultTenantID})
	if err != nil {
		return 0, err
	}
	logging.Infof(ctx, "[bootstrap] done, %d tasks present", len(tasks))
	return len(tasks), nil
}

type staticPool struct{ pool *postgres.Pool }

func (s staticPool) Pool() *postgres.Pool { return s.pool }
