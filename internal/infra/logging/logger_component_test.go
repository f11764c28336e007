package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFactoryDefaultsAndValidation(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(&LoggingConfig{Enabled: false})
	require.Error(t, err)

	_, err = f.Create(&LoggingConfig{Enabled: true, Format: "xml"})
	require.Error(t, err)

	_, err = f.Create(&LoggingConfig{Enabled: true, Output: "stdout", RotateConfig: &RotateConfig{Enabled: true}})
	require.Error(t, err, "rotation only applies to file output")

	cfg := &LoggingConfig{Enabled: true, Output: "file"}
	comp, err := f.Create(cfg)
	require.NoError(t, err)
	assert.Equal(t, "logging", comp.Name())
	assert.Equal(t, "INFO", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	require.NotNil(t, cfg.FileConfig)
}

func TestFileOutputCarriesRequestID(t *testing.T) {
	dir := t.TempDir()
	cfg := &LoggingConfig{
		Enabled:    true,
		Level:      "debug",
		Format:     "json",
		Output:     "file",
		FileConfig: &FileConfig{Dir: dir, Filename: "test"},
	}
	comp, err := NewFactory().Create(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, comp.Start(ctx))
	require.NoError(t, comp.HealthCheck())

	Info(WithRequestID(ctx, "req-1"), "task created", zap.Int64("id", 1000))
	Debugf(ctx, "listed %d tasks", 2)
	require.NoError(t, comp.Stop(ctx))

	f, err := os.Open(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		entries = append(entries, m)
	}
	require.Len(t, entries, 3)
	assert.Equal(t, "task created", entries[1]["message"])
	assert.Equal(t, "req-1", entries[1]["request_id"])
	assert.EqualValues(t, 1000, entries[1]["id"])
	assert.Equal(t, "listed 2 tasks", entries[2]["message"])
	assert.NotContains(t, entries[2], "request_id")
}

func TestGlobalLoggerIsNoopUntilStarted(t *testing.T) {
	ResetGlobalLogger()
	_, ok := L().(*noopLogger)
	assert.True(t, ok)
	assert.Nil(t, UnderlyingZap())
	Info(context.Background(), "dropped")
}
