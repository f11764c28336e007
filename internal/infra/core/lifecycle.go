package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/hooks"
)

// LifecycleManager starts components in dependency order and stops them in reverse.
type LifecycleManager struct {
	container      *Container
	hookManager    *hooks.Manager
	mutex          sync.Mutex
	shutdownCalled bool
	timeout        time.Duration
}

func NewLifecycleManager(container *Container) *LifecycleManager {
	return &LifecycleManager{
		container:   container,
		hookManager: hooks.NewManager(),
		timeout:     30 * time.Second,
	}
}

// SetTimeout bounds each component Start and Stop call.
func (lm *LifecycleManager) SetTimeout(timeout time.Duration) {
	lm.timeout = timeout
}

func (lm *LifecycleManager) AddHook(name string, phase hooks.Phase, fn hooks.HookFunc, priority int) error {
	return lm.hookManager.Register(&hooks.Hook{Name: name, Phase: phase, Function: fn, Priority: priority})
}

// StartAll starts every registered component. When one fails, the components started
// before it are stopped and the error is returned.
func (lm *LifecycleManager) StartAll(ctx context.Context) error {
	if err := lm.hookManager.Execute(ctx, hooks.BeforeStart); err != nil {
		return fmt.Errorf("before_start hooks failed: %w", err)
	}
	if err := lm.container.ValidateDependencies(); err != nil {
		return err
	}
	components, err := lm.container.SortComponentsByDependencies()
	if err != nil {
		return fmt.Errorf("failed to sort components: %w", err)
	}

	for i, comp := range components {
		startCtx, cancel := context.WithTimeout(ctx, lm.timeout)
		err := comp.Start(startCtx)
		cancel()
		if err != nil {
			log.Printf("failed to start component %s: %v", comp.Name(), err)
			lm.stopReverse(context.Background(), components[:i])
			return fmt.Errorf("failed to start component %s: %w", comp.Name(), err)
		}
		log.Printf("component %s started", comp.Name())
	}

	if err := lm.hookManager.Execute(ctx, hooks.AfterStart); err != nil {
		log.Printf("after_start hooks failed: %v", err)
	}
	return nil
}

// StopAll stops active components in reverse start order. Later calls are no-ops.
func (lm *LifecycleManager) StopAll(ctx context.Context) {
	lm.mutex.Lock()
	if lm.shutdownCalled {
		lm.mutex.Unlock()
		return
	}
	lm.shutdownCalled = true
	lm.mutex.Unlock()

	if err := lm.hookManager.Execute(ctx, hooks.BeforeShutdown); err != nil {
		log.Printf("before_shutdown hooks failed: %v", err)
	}

	components, err := lm.container.SortComponentsByDependencies()
	if err != nil {
		log.Printf("failed to sort components for shutdown: %v", err)
		return
	}
	lm.stopReverse(ctx, components)

	if err := lm.hookManager.Execute(ctx, hooks.AfterShutdown); err != nil {
		log.Printf("after_shutdown hooks failed: %v", err)
	}
}

func (lm *LifecycleManager) stopReverse(ctx context.Context, components []Component) {
	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]
		if !comp.IsActive() {
			continue
		}
		stopCtx, cancel := context.WithTimeout(ctx, lm.timeout)
		if err := comp.Stop(stopCtx); err != nil {
			log.Printf("error stopping component %s: %v", comp.Name(), err)
		}
		cancel()
	}
}

// HealthReport runs HealthCheck on every registered component.
func (lm *LifecycleManager) HealthReport() map[string]error {
	components, err := lm.container.SortComponentsByDependencies()
	if err != nil {
		return map[string]error{"container": err}
	}
	report := make(map[string]error, len(components))
	for _, comp := range components {
		report[comp.Name()] = comp.HealthCheck()
	}
	return report
}
