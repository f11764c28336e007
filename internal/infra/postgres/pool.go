// Package postgres opens bounded, fail-fast connection pools.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
)

// Pool is a bounded set of connections to a single database. Every call acquires
// a connection for its own duration and releases it afterwards.
type Pool struct {
	name  string
	db    *gorm.DB
	sqlDB *sql.DB
}

// Open connects to opts.Database and pings it once. Any failure, including a
// connect timeout, is returned as *apperr.ConnectionError. Nothing is retried.
func Open(ctx context.Context, opts Options) (*Pool, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, connectionError(opts, err)
	}
	connCfg, err := pgx.ParseConfig(opts.URL())
	if err != nil {
		return nil, connectionError(opts, err)
	}
	connCfg.ConnectTimeout = opts.ConnectTimeout

	sqlDB := stdlib.OpenDB(*connCfg)
	pool, err := OpenDialector(ctx, opts, gormpg.New(gormpg.Config{Conn: sqlDB}))
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return pool, nil
}

// OpenDialector builds a Pool on top of any gorm dialector. Open uses it for
// PostgreSQL; tests use it with SQLite.
func OpenDialector(ctx context.Context, opts Options, dialector gorm.Dialector) (*Pool, error) {
	opts.applyDefaults()
	if opts.MaxConns <= 0 {
		return nil, connectionError(opts, fmt.Errorf("max_conns must be > 0, got %d", opts.MaxConns))
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(opts.LogLevel, opts.SlowThreshold),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, connectionError(opts, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, connectionError(opts, err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxConns)
	sqlDB.SetMaxIdleConns(opts.MaxConns)

	// connect timeout is enforced by the driver; the ping adds one round trip on top.
	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout+time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, connectionError(opts, err)
	}
	logging.Infof(ctx, "[postgres] pool %s opened database=%s max_conns=%d", opts.Name, opts.Database, opts.MaxConns)
	return &Pool{name: opts.Name, db: gdb, sqlDB: sqlDB}, nil
}

func connectionError(opts Options, err error) error {
	return &apperr.ConnectionError{Host: opts.Host, Database: opts.Database, User: opts.User, Err: err}
}

func (p *Pool) Name() string { return p.name }

// DB returns a gorm session bound to ctx.
func (p *Pool) DB(ctx context.Context) *gorm.DB { return p.db.WithContext(ctx) }

func (p *Pool) SQLDB() *sql.DB { return p.sqlDB }

// Exec runs stmt verbatim, without placeholder processing.
func (p *Pool) Exec(ctx context.Context, stmt string) error {
	_, err := p.sqlDB.ExecContext(ctx, stmt)
	return err
}

func (p *Pool) Ping(ctx context.Context) error { return p.sqlDB.PingContext(ctx) }

func (p *Pool) Close() error {
	if p == nil || p.sqlDB == nil {
		return nil
	}
	return p.sqlDB.Close()
}
