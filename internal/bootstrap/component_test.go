package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	_ "modernc.org/sqlite"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
)

func sqliteInit(t *testing.T) func(ctx context.Context, cfg Config) (*postgres.Pool, error) {
	dsn := filepath.Join(t.TempDir(), "app.db")
	return func(ctx context.Context, cfg Config) (*postgres.Pool, error) {
		return postgres.OpenDialector(ctx, cfg.AppOptions(), sqlite.Dialector{DriverName: "sqlite", DSN: dsn})
	}
}

func TestComponentOwnsPool(t *testing.T) {
	ctx := context.Background()
	c := NewComponent(Config{Enabled: true})
	c.init = sqliteInit(t)

	assert.Equal(t, consts.COMPONENT_DATABASE, c.Name())
	assert.Equal(t, []string{consts.COMPONENT_LOGGING}, c.Dependencies())
	assert.Nil(t, c.Pool())
	assert.Error(t, c.HealthCheck())

	require.NoError(t, c.Start(ctx))
	require.NotNil(t, c.Pool())
	assert.Equal(t, "app", c.Pool().Name())
	assert.Equal(t, 5, c.Pool().SQLDB().Stats().MaxOpenConnections)
	require.NoError(t, c.HealthCheck())

	require.NoError(t, c.Stop(ctx))
	assert.Nil(t, c.Pool())
	assert.False(t, c.IsActive())
}

func TestComponentStartFailure(t *testing.T) {
	c := NewComponent(Config{Enabled: true})
	cause := errors.New("refused")
	c.init = func(context.Context, Config) (*postgres.Pool, error) { return nil, cause }

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, c.Pool())
	assert.False(t, c.IsActive())
}

func TestFactory(t *testing.T) {
	comp, err := NewFactory().Create(&Config{Enabled: true})
	require.NoError(t, err)
	assert.IsType(t, &Component{}, comp)

	_, err = NewFactory().Create(&Config{})
	assert.Error(t, err)
	_, err = NewFactory().Create(&Config{Enabled: true, Port: -1})
	assert.Error(t, err)
	_, err = NewFactory().Create(Config{Enabled: true})
	assert.Error(t, err)
}
