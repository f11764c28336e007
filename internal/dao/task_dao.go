package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/prometheus"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/model"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/security"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/sqlb"
)

var errMissingActor = errors.New("missing user context")

// PoolProvider hands out the application pool once it is started.
type PoolProvider interface {
	Pool() *postgres.Pool
}

// TaskStore is the task repository contract consumed by the API layer.
type TaskStore interface {
	Create(ctx context.Context, utx *security.UserCtx, patch model.TaskPatch) (*model.Task, error)
	Get(ctx context.Context, utx *security.UserCtx, id int64) (*model.Task, error)
	// Update needs a non-nil utx to stamp mid. A nil actor or an invalid patch is
	// reported as a StorageError before any statement runs.
	Update(ctx context.Context, utx *security.UserCtx, id int64, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, utx *security.UserCtx, id int64) (*model.Task, error)
	List(ctx context.Context, utx *security.UserCtx) ([]model.Task, error)
}

type Options struct {
	TenantID     int64  `yaml:"tenant_id" json:"tenant_id"`
	DefaultTitle string `yaml:"default_title" json:"default_title"`
}

// TaskDao reads and writes the task table. The actor only stamps modification
// metadata; it never narrows which rows are visible.
type TaskDao struct {
	*core.BaseComponent
	provider PoolProvider
	pool     *postgres.Pool
	opts     Options
	sql      sqlb.Builder
	tracer   trace.Tracer

	metrics *prometheus.OpMetrics
}

var _ TaskStore = (*TaskDao)(nil)

func NewTaskDao(provider PoolProvider, opts Options) *TaskDao {
	if opts.TenantID == 0 {
		opts.TenantID = consts.DefaultTenantID
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = consts.DefaultTaskTitle
	}
	return &TaskDao{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_TASK_DAO, consts.COMPONENT_DATABASE),
		provider:      provider,
		opts:          opts,
		sql:           sqlb.New(consts.TableTask, model.TaskColumns...),
		tracer:        otel.Tracer("taskboard/dao"),
	}
}

func (d *TaskDao) Start(ctx context.Context) error {
	if err := d.BaseComponent.Start(ctx); err != nil {
		return err
	}
	d.pool = d.provider.Pool()
	if d.pool == nil {
		return fmt.Errorf("task_dao: database pool not ready")
	}
	d.metrics = prometheus.NewOpMetrics("dao", "Repository")
	logging.Info(ctx, "task_dao started", zap.Int64("tenant_id", d.opts.TenantID))
	return nil
}

func (d *TaskDao) Stop(ctx context.Context) error {
	d.pool = nil
	return d.BaseComponent.Stop(ctx)
}

// Create inserts a task owned by the configured tenant and returns the stored row.
// An empty title or unknown status is rejected as a StorageError.
func (d *TaskDao) Create(ctx context.Context, utx *security.UserCtx, patch model.TaskPatch) (task *model.Task, err error) {
	ctx, finish := d.observe(ctx, "create", utx)
	defer func() { finish(err) }()

	if err := patch.Validate(); err != nil {
		return nil, apperr.NewStorageError("create", err)
	}
	fields := append(patch.WithDefaults(d.opts.DefaultTitle).Fields(), sqlb.Field{Column: "cid", Value: d.opts.TenantID})
	query, args := d.sql.Insert(fields)

	var t model.Task
	res := d.pool.DB(ctx).Raw(query, args...).Scan(&t)
	if res.Error != nil {
		return nil, apperr.NewStorageError("create", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NewStorageError("create", errors.New("insert returned no row"))
	}
	return &t, nil
}

func (d *TaskDao) Get(ctx context.Context, utx *security.UserCtx, id int64) (task *model.Task, err error) {
	ctx, finish := d.observe(ctx, "get", utx)
	defer func() { finish(err) }()

	query, args := d.sql.Select([]sqlb.Field{{Column: "id", Value: id}})
	return d.fetchOne(ctx, "get", id, query, args)
}

// Update applies the populated patch fields and always stamps mid and mtime.
func (d *TaskDao) Update(ctx context.Context, utx *security.UserCtx, id int64, patch model.TaskPatch) (task *model.Task, err error) {
	ctx, finish := d.observe(ctx, "update", utx)
	defer func() { finish(err) }()

	if utx == nil {
		return nil, apperr.NewStorageError("update", errMissingActor)
	}
	if err := patch.Validate(); err != nil {
		return nil, apperr.NewStorageError("update", err)
	}
	fields := append(patch.Fields(),
		sqlb.Field{Column: "mid", Value: utx.UserID},
		sqlb.Field{Column: "mtime", Value: sqlb.Raw("CURRENT_TIMESTAMP")},
	)
	query, args := d.sql.Update(fields, []sqlb.Field{{Column: "id", Value: id}})
	return d.fetchOne(ctx, "update", id, query, args)
}

// Delete removes the row and returns it as it was before removal.
func (d *TaskDao) Delete(ctx context.Context, utx *security.UserCtx, id int64) (task *model.Task, err error) {
	ctx, finish := d.observe(ctx, "delete", utx)
	defer func() { finish(err) }()

	query, args := d.sql.Delete([]sqlb.Field{{Column: "id", Value: id}})
	return d.fetchOne(ctx, "delete", id, query, args)
}

// List returns every task, newest id first.
func (d *TaskDao) List(ctx context.Context, utx *security.UserCtx) (tasks []model.Task, err error) {
	ctx, finish := d.observe(ctx, "list", utx)
	defer func() { finish(err) }()

	query, args := d.sql.Select(nil, "!id")
	tasks = make([]model.Task, 0)
	if err := d.pool.DB(ctx).Raw(query, args...).Scan(&tasks).Error; err != nil {
		return nil, apperr.NewStorageError("list", err)
	}
	return tasks, nil
}

// fetchOne runs a single-row statement. No row means the id does not exist.
func (d *TaskDao) fetchOne(ctx context.Context, op string, id int64, query string, args []any) (*model.Task, error) {
	var t model.Task
	res := d.pool.DB(ctx).Raw(query, args...).Scan(&t)
	if res.Error != nil {
		return nil, apperr.NewStorageError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NewEntityNotFound(consts.EntityTask, id)
	}
	return &t, nil
}

func (d *TaskDao) observe(ctx context.Context, op string, utx *security.UserCtx) (context.Context, func(error)) {
	begin := time.Now()
	ctx, span := d.tracer.Start(ctx, "task."+op, trace.WithAttributes(attribute.String("db.table", consts.TableTask)))
	if utx != nil {
		span.SetAttributes(attribute.Int64("user.id", utx.UserID))
	}
	return ctx, func(err error) {
		result := "ok"
		if err != nil {
			result = string(apperr.KindOf(err))
			if result != string(apperr.KindNotFound) {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				logging.Error(ctx, "task_dao operation failed", zap.String("op", op), zap.Error(err))
			}
		}
		span.End()
		d.metrics.Observe(op, result, time.Since(begin))
	}
}
