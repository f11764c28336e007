package sqlb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var tasks = New("task", "id", "cid", "title", "status")

func TestInsert(t *testing.T) {
	sql, args := tasks.Insert([]Field{{"title", "x"}, {"status", "open"}, {"cid", int64(123)}})
	assert.Equal(t, "INSERT INTO task (title, status, cid) VALUES (?, ?, ?) RETURNING id, cid, title, status", sql)
	assert.Equal(t, []any{"x", "open", int64(123)}, args)

	sql, args = tasks.Insert(nil)
	assert.Equal(t, "INSERT INTO task DEFAULT VALUES RETURNING id, cid, title, status", sql)
	assert.Empty(t, args)
}

func TestSelect(t *testing.T) {
	sql, args := tasks.Select([]Field{{"id", int64(7)}})
	assert.Equal(t, "SELECT id, cid, title, status FROM task WHERE id = ?", sql)
	assert.Equal(t, []any{int64(7)}, args)

	sql, args = tasks.Select(nil, "!id", "title")
	assert.Equal(t, "SELECT id, cid, title, status FROM task ORDER BY id DESC, title", sql)
	assert.Empty(t, args)
}

func TestUpdateInlinesRaw(t *testing.T) {
	sql, args := tasks.Update(
		[]Field{{"title", "B"}, {"mid", int64(42)}, {"mtime", Raw("CURRENT_TIMESTAMP")}},
		[]Field{{"id", int64(100)}},
	)
	assert.Equal(t, "UPDATE task SET title = ?, mid = ?, mtime = CURRENT_TIMESTAMP WHERE id = ? RETURNING id, cid, title, status", sql)
	assert.Equal(t, []any{"B", int64(42), int64(100)}, args)
}

func TestDelete(t *testing.T) {
	sql, args := tasks.Delete([]Field{{"id", int64(100)}, {"cid", int64(123)}})
	assert.Equal(t, "DELETE FROM task WHERE id = ? AND cid = ? RETURNING id, cid, title, status", sql)
	assert.Equal(t, []any{int64(100), int64(123)}, args)
}
