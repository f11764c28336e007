package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/sqlb"
)

// TaskStatus mirrors the task_status_enum database type.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusOpen || s == TaskStatusClosed
}

func (s TaskStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid task status %q", string(s))
	}
	return string(s), nil
}

func (s *TaskStatus) Scan(src any) error {
	var v string
	switch t := src.(type) {
	case string:
		v = t
	case []byte:
		v = string(t)
	default:
		return fmt.Errorf("cannot scan %T into TaskStatus", src)
	}
	if !TaskStatus(v).Valid() {
		return fmt.Errorf("unknown task status %q", v)
	}
	*s = TaskStatus(v)
	return nil
}

// Task is a row of the task table as returned to callers.
type Task struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	CreatorID int64      `gorm:"column:cid" json:"cid"`
	Title     string     `gorm:"column:title" json:"title"`
	Status    TaskStatus `gorm:"column:status" json:"status"`
}

func (Task) TableName() string { return consts.TableTask }

// TaskColumns is the column list every task query returns.
var TaskColumns = []string{"id", "cid", "title", "status"}

// TaskPatch describes a partial write. Nil fields are left alone.
type TaskPatch struct {
	Title  *string     `json:"title,omitempty"`
	Status *TaskStatus `json:"status,omitempty"`
}

// Fields lists the populated patch fields in column order.
func (p TaskPatch) Fields() []sqlb.Field {
	fields := make([]sqlb.Field, 0, 2)
	if p.Title != nil {
		fields = append(fields, sqlb.Field{Column: "title", Value: *p.Title})
	}
	if p.Status != nil {
		fields = append(fields, sqlb.Field{Column: "status", Value: *p.Status})
	}
	return fields
}

// WithDefaults fills the fields a create needs when the patch leaves them out.
func (p TaskPatch) WithDefaults(title string) TaskPatch {
	if p.Title == nil {
		p.Title = &title
	}
	if p.Status == nil {
		open := TaskStatusOpen
		p.Status = &open
	}
	return p
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid status %q", string(*p.Status))
	}
	return nil
}
