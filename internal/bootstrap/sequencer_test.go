package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
)

type journal struct{ events []string }

type fakeConn struct {
	id int
	j  *journal
}

func (c *fakeConn) Exec(_ context.Context, stmt string) error {
	c.j.events = append(c.j.events, fmt.Sprintf("exec#%d %s", c.id, stmt))
	if stmt == "CREATE TYPE task_status_enum" {
		return errors.New("already exists")
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.j.events = append(c.j.events, fmt.Sprintf("close#%d", c.id))
	return nil
}

func fakeOpener(j *journal, failOn string) Opener[*fakeConn] {
	n := 0
	return func(_ context.Context, opts postgres.Options) (*fakeConn, error) {
		if opts.Database == failOn {
			return nil, &apperr.ConnectionError{Host: opts.Host, Database: opts.Database, User: opts.User, Err: errors.New("refused")}
		}
		n++
		j.events = append(j.events, fmt.Sprintf("open#%d %s/%s max=%d", n, opts.Database, opts.User, opts.MaxConns))
		return &fakeConn{id: n, j: j}, nil
	}
}

func scriptDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"00-recreate-db.sql":   "DROP DATABASE IF EXISTS app_db; CREATE DATABASE app_db",
		"01-create-schema.sql": "CREATE TYPE task_status_enum; CREATE TABLE task",
		"02-dev-seed.sql":      "INSERT INTO task",
		"notes.txt":            "ignored",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func testConfig(dir string) Config {
	return Config{
		Bootstrap: ScriptsConfig{
			Enabled:        true,
			ScriptDir:      dir,
			RecreateScript: filepath.Join(dir, "00-recreate-db.sql"),
		},
	}
}

func TestSequencerPhasesRunInOrder(t *testing.T) {
	dir := scriptDir(t)
	j := &journal{}

	conn, err := NewSequencer(testConfig(dir), fakeOpener(j, "")).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, conn.id, "returned pool is a fresh one")

	assert.Equal(t, []string{
		"open#1 postgres/postgres max=1",
		"exec#1 DROP DATABASE IF EXISTS app_db",
		"exec#1 CREATE DATABASE app_db",
		"close#1",
		"open#2 app_db/app_user max=5",
		"exec#2 CREATE TYPE task_status_enum",
		"exec#2 CREATE TABLE task",
		"exec#2 INSERT INTO task",
		"close#2",
		"open#3 app_db/app_user max=5",
	}, j.events)
}

func TestSequencerPrivilegedConnectionFailureIsFatal(t *testing.T) {
	j := &journal{}
	_, err := NewSequencer(testConfig(scriptDir(t)), fakeOpener(j, "postgres")).Run(context.Background())
	assert.Equal(t, apperr.KindConnection, apperr.KindOf(err))
	assert.Empty(t, j.events)
}

func TestSequencerMissingRecreateScriptIsFatal(t *testing.T) {
	dir := scriptDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "00-recreate-db.sql")))
	j := &journal{}

	_, err := NewSequencer(testConfig(dir), fakeOpener(j, "")).Run(context.Background())
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
	assert.Equal(t, []string{"open#1 postgres/postgres max=1", "close#1"}, j.events)
}

func TestSequencerMissingScriptDirIsFatal(t *testing.T) {
	dir := scriptDir(t)
	cfg := testConfig(dir)
	cfg.Bootstrap.ScriptDir = filepath.Join(dir, "gone")
	j := &journal{}

	_, err := NewSequencer(cfg, fakeOpener(j, "")).Run(context.Background())
	assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
	assert.Equal(t, "close#2", j.events[len(j.events)-1])
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	root := cfg.RootOptions()
	assert.Equal(t, "localhost", root.Host)
	assert.Equal(t, "postgres", root.Database)
	assert.Equal(t, 1, root.MaxConns)

	app := cfg.AppOptions()
	assert.Equal(t, "app_db", app.Database)
	assert.Equal(t, "app_user", app.User)
	assert.Equal(t, 5, app.MaxConns)
	assert.Equal(t, "500ms", app.ConnectTimeout.String())
	assert.Equal(t, "sql/00-recreate-db.sql", cfg.Bootstrap.RecreateScript)

	cfg.App.MaxConns = -1
	assert.Error(t, cfg.Validate())
}
