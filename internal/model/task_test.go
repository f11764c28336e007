package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/sqlb"
)

func ptr[T any](v T) *T { return &v }

func TestPatchFieldsOnlyPopulated(t *testing.T) {
	assert.Empty(t, TaskPatch{}.Fields())
	assert.Equal(t, []sqlb.Field{{Column: "title", Value: "B"}}, TaskPatch{Title: ptr("B")}.Fields())
	assert.Equal(t,
		[]sqlb.Field{{Column: "title", Value: "A"}, {Column: "status", Value: TaskStatusClosed}},
		TaskPatch{Status: ptr(TaskStatusClosed), Title: ptr("A")}.Fields())
}

func TestPatchWithDefaults(t *testing.T) {
	p := TaskPatch{}.WithDefaults("untitled")
	assert.Equal(t, "untitled", *p.Title)
	assert.Equal(t, TaskStatusOpen, *p.Status)

	orig := TaskPatch{Title: ptr("x"), Status: ptr(TaskStatusClosed)}
	p = orig.WithDefaults("untitled")
	assert.Equal(t, "x", *p.Title)
	assert.Equal(t, TaskStatusClosed, *p.Status)
}

func TestPatchValidate(t *testing.T) {
	assert.NoError(t, TaskPatch{}.Validate())
	assert.Error(t, TaskPatch{Title: ptr("")}.Validate())
	assert.Error(t, TaskPatch{Status: ptr(TaskStatus("done"))}.Validate())
}

func TestStatusScanAndValue(t *testing.T) {
	var s TaskStatus
	require.NoError(t, s.Scan([]byte("closed")))
	assert.Equal(t, TaskStatusClosed, s)
	require.NoError(t, s.Scan("open"))
	assert.Equal(t, TaskStatusOpen, s)
	assert.Error(t, s.Scan("archived"))
	assert.Error(t, s.Scan(int64(1)))

	v, err := TaskStatusOpen.Value()
	require.NoError(t, err)
	assert.Equal(t, "open", v)
	_, err = TaskStatus("").Value()
	assert.Error(t, err)
}
