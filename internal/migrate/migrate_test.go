package migrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
)

type fakeExecer struct {
	stmts  []string
	failOn string
}

func (f *fakeExecer) Exec(_ context.Context, stmt string) error {
	f.stmts = append(f.stmts, stmt)
	if f.failOn != "" && strings.Contains(stmt, f.failOn) {
		return errors.New("type already exists")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestSplitStatementsIsNaive(t *testing.T) {
	got := SplitStatements("CREATE TABLE a (id int);\n\n  ;INSERT INTO a VALUES (1);  \n")
	assert.Equal(t, []string{"CREATE TABLE a (id int)", "INSERT INTO a VALUES (1)"}, got)

	// a ';' inside a literal splits the statement.
	got = SplitStatements("INSERT INTO a (t) VALUES ('x;y')")
	assert.Equal(t, []string{"INSERT INTO a (t) VALUES ('x", "y')"}, got)
}

func TestRunScriptContinuesPastFailingStatement(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "01-schema.sql", "CREATE TYPE s AS ENUM ('open');\nCREATE TABLE task (id int);\nINSERT INTO task VALUES (1);")

	db := &fakeExecer{failOn: "CREATE TYPE"}
	res, err := RunScript(context.Background(), db, p)
	require.NoError(t, err)
	assert.Equal(t, Result{Path: p, Statements: 3, Failed: 1}, res)
	assert.Len(t, db.stmts, 3)
	assert.Equal(t, "INSERT INTO task VALUES (1)", db.stmts[2])
}

func TestRunScriptUnreadableFileIsIOError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.sql")
	db := &fakeExecer{}
	_, err := RunScript(context.Background(), db, missing)

	var ioErr *apperr.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, missing, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, db.stmts)
}

func TestListScriptsSortsFiltersAndExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02-dev-seed.sql", "")
	writeFile(t, dir, "00-recreate-db.sql", "")
	writeFile(t, dir, "01-create-schema.sql", "")
	writeFile(t, dir, "README.md", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "03-nested.sql"), 0o755))

	files, err := ListScripts(dir, ".sql", filepath.Join(dir, "./00-recreate-db.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "01-create-schema.sql"),
		filepath.Join(dir, "02-dev-seed.sql"),
	}, files)
}

func TestListScriptsExcludesAcrossRelativeAndAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "00-recreate-db.sql", "")
	writeFile(t, dir, "01-create-schema.sql", "")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	files, err := ListScripts(rel, ".sql", filepath.Join(dir, "00-recreate-db.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(rel, "01-create-schema.sql")}, files)

	files, err = ListScripts(dir, ".sql", filepath.Join(rel, "00-recreate-db.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "01-create-schema.sql")}, files)
}

func TestListScriptsMissingDir(t *testing.T) {
	_, err := ListScripts(filepath.Join(t.TempDir(), "nope"), ".sql")
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
}

func TestRunDirAppliesInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "10-b.sql", "SELECT 10;")
	writeFile(t, dir, "02-a.sql", "SELECT 2; SELECT 3;")
	writeFile(t, dir, "00-recreate-db.sql", "DROP DATABASE app_db;")

	db := &fakeExecer{}
	results, err := RunDir(context.Background(), db, dir, ".sql", filepath.Join(dir, "00-recreate-db.sql"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"SELECT 2", "SELECT 3", "SELECT 10"}, db.stmts)
}
