// Package bootstrap resets the application database and applies the setup scripts.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/migrate"
)

// Conn is what the sequencer needs from a pool.
type Conn interface {
	migrate.Execer
	Close() error
}

// Opener opens a pool for the given options.
type Opener[C Conn] func(ctx context.Context, opts postgres.Options) (C, error)

// Sequencer runs the three bootstrap phases strictly in order: recreate the
// application database through a privileged pool, apply the remaining scripts
// through an application pool, then hand out a fresh application pool.
type Sequencer[C Conn] struct {
	cfg  Config
	open Opener[C]
}

func NewSequencer[C Conn](cfg Config, open Opener[C]) *Sequencer[C] {
	cfg.ApplyDefaults()
	return &Sequencer[C]{cfg: cfg, open: open}
}

// Run destroys all application data. It is meant for development start-up only.
func (s *Sequencer[C]) Run(ctx context.Context) (C, error) {
	var zero C
	scripts := s.cfg.Bootstrap

	root, err := s.open(ctx, s.cfg.RootOptions())
	if err != nil {
		return zero, err
	}
	_, err = migrate.RunScript(ctx, root, scripts.RecreateScript)
	closeQuietly(ctx, "root", root)
	if err != nil {
		return zero, err
	}

	app, err := s.open(ctx, s.cfg.AppOptions())
	if err != nil {
		return zero, err
	}
	results, err := migrate.RunDir(ctx, app, scripts.ScriptDir, scripts.ScriptExt, scripts.RecreateScript)
	closeQuietly(ctx, "app-scripts", app)
	if err != nil {
		return zero, err
	}
	logging.Info(ctx, "bootstrap scripts applied", zap.Int("scripts", len(results)), zap.Int("failed_statements", failed(results)))

	return s.open(ctx, s.cfg.AppOptions())
}

// InitDatabase runs the sequencer against PostgreSQL.
func InitDatabase(ctx context.Context, cfg Config) (*postgres.Pool, error) {
	return NewSequencer[*postgres.Pool](cfg, postgres.Open).Run(ctx)
}

func closeQuietly(ctx context.Context, name string, c Conn) {
	if err := c.Close(); err != nil {
		logging.Warn(ctx, "close bootstrap pool failed", zap.String("pool", name), zap.Error(err))
	}
}

func failed(results []migrate.Result) int {
	n := 0
	for _, r := range results {
		n += r.Failed
	}
	return n
}
