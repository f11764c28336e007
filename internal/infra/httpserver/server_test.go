package httpserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
)

func newRouted(t *testing.T, fns ...RouteRegisterFunc) *Server {
	t.Helper()
	s := NewServer(&Config{Enabled: true, EnableHealth: true, ServiceName: "taskboard"}, core.NewContainer())
	for _, fn := range fns {
		require.NoError(t, s.AddRouteRegistrar(fn))
	}
	require.NoError(t, s.buildRouter())
	return s
}

func TestHealthz(t *testing.T) {
	s := newRouted(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	var seen string
	s := newRouted(t, func(r chi.Router, _ *core.Container) error {
		r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
			seen = logging.RequestIDFrom(r.Context())
		})
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(consts.HEADER_RequestID, "req-1")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(consts.HEADER_RequestID))

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))
	assert.NotEmpty(t, rec.Header().Get(consts.HEADER_RequestID))
	assert.Equal(t, seen, rec.Header().Get(consts.HEADER_RequestID))
}

func TestPanicIsRecovered(t *testing.T) {
	s := newRouted(t, func(r chi.Router, _ *core.Container) error {
		r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
		return nil
	})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegistrarErrorFailsBuild(t *testing.T) {
	s := NewServer(&Config{Enabled: true}, core.NewContainer())
	require.NoError(t, s.AddRouteRegistrar(func(chi.Router, *core.Container) error {
		return fmt.Errorf("no store")
	}))
	assert.Error(t, s.buildRouter())
}

func TestStartServeStop(t *testing.T) {
	ctx := context.Background()
	s := NewServer(&Config{Enabled: true, Address: "127.0.0.1:0", EnableHealth: true}, core.NewContainer())
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.HealthCheck())

	resp, err := http.Get("http://" + s.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	require.NoError(t, s.AddRouteRegistrar(nil))
	assert.Error(t, s.AddRouteRegistrar(func(chi.Router, *core.Container) error { return nil }))

	require.NoError(t, s.Stop(ctx))
	assert.Error(t, s.HealthCheck())
}

func TestListenFailureLeavesServerInactive(t *testing.T) {
	ctx := context.Background()
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	s := NewServer(&Config{Enabled: true, Address: busy.Addr().String()}, core.NewContainer())
	require.Error(t, s.Start(ctx))
	assert.False(t, s.IsActive())
	assert.Error(t, s.HealthCheck())

	s.cfg.Address = "127.0.0.1:0"
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsActive())
	require.NoError(t, s.Stop(ctx))
}
