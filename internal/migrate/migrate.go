// Package migrate applies directories of .sql setup scripts in lexical order.
//
// Statements are split on every ';' with no awareness of string literals or
// function bodies, so script files must not contain ';' anywhere except as a
// statement terminator.
package migrate

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/apperr"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
)

// Execer runs a single statement.
type Execer interface {
	Exec(ctx context.Context, stmt string) error
}

// Result summarizes one script run.
type Result struct {
	Path       string
	Statements int
	Failed     int
}

// SplitStatements splits content on ';' and drops whitespace-only pieces.
func SplitStatements(content string) []string {
	parts := strings.Split(content, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// RunScript executes every statement of the file at path in order. A file that
// cannot be read is fatal and returns *apperr.IOError. A failing statement is
// logged and counted and the run continues with the next one.
func RunScript(ctx context.Context, db Execer, path string) (Result, error) {
	res := Result{Path: path}
	content, err := os.ReadFile(path)
	if err != nil {
		logging.Error(ctx, "read script failed", zap.String("path", path), zap.Error(err))
		return res, &apperr.IOError{Path: path, Err: err}
	}

	for i, stmt := range SplitStatements(string(content)) {
		res.Statements++
		if err := db.Exec(ctx, stmt); err != nil {
			res.Failed++
			logging.Warn(ctx, "script statement failed",
				zap.String("path", path),
				zap.Int("statement", i),
				zap.Error(err),
			)
		}
	}
	logging.Info(ctx, "script applied",
		zap.String("path", path),
		zap.Int("statements", res.Statements),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// ListScripts returns the files in dir (non-recursive) whose name ends with ext,
// minus the exclude paths, sorted by path.
func ListScripts(dir, ext string, exclude ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &apperr.IOError{Path: dir, Err: err}
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[absPath(e)] = struct{}{}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, excluded := skip[absPath(path)]; excluded {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// absPath makes relative and absolute spellings of one file compare equal.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// RunDir lists dir and runs each script in order. It stops at the first IO failure.
func RunDir(ctx context.Context, db Execer, dir, ext string, exclude ...string) ([]Result, error) {
	files, err := ListScripts(dir, ext, exclude...)
	if err != nil {
		logging.Error(ctx, "list scripts failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}
	results := make([]Result, 0, len(files))
	for _, f := range files {
		res, err := RunScript(ctx, db, f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
