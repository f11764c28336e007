package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestStdoutExporterWritesSpans(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spans.json")
	comp := NewComponent(&Config{Enabled: true, ServiceName: "taskboard", StdoutFile: out})

	ctx := context.Background()
	require.NoError(t, comp.Start(ctx))
	require.NoError(t, comp.HealthCheck())

	_, span := otel.Tracer("test").Start(ctx, "task.create")
	span.End()
	require.NoError(t, comp.Stop(ctx))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task.create")
	assert.Contains(t, string(data), "taskboard")
}

func TestStartRequiresServiceName(t *testing.T) {
	comp := NewComponent(&Config{Enabled: true})
	assert.Error(t, comp.Start(context.Background()))
}

func TestOTLPRequiresEndpoint(t *testing.T) {
	comp := NewComponent(&Config{Enabled: true, ServiceName: "taskboard", Exporter: ExporterOTLP})
	assert.Error(t, comp.Start(context.Background()))
}

func TestFactoryRejectsDisabled(t *testing.T) {
	_, err := NewFactory().Create(&Config{})
	assert.Error(t, err)
	_, err = NewFactory().Create("nope")
	assert.Error(t, err)
}
