// pkg/health/health_test.go
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHealthCheck implements HealthCheck for testing
type mockHealthCheck struct {
	name string
	err  error
}

func (m *mockHealthCheck) Name() string { return m.name }

func (m *mockHealthCheck) Check(ctx context.Context) error { return m.err }

// slowHealthCheck blocks until its delay passes or the context ends
type slowHealthCheck struct {
	name  string
	delay time.Duration
}

func (s *slowHealthCheck) Name() string { return s.name }

func (s *slowHealthCheck) Check(ctx context.Context) error {
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestHealthChecker_AddAndRemove(t *testing.T) {
	hc := NewHealthChecker()
	check := &mockHealthCheck{name: "test"}

	hc.AddCheck(check)
	require.Len(t, hc.checks, 1)
	assert.Same(t, check, hc.checks["test"])

	hc.AddCheck(&mockHealthCheck{name: "test"})
	assert.Len(t, hc.checks, 1, "same name replaces")

	hc.RemoveCheck("test")
	assert.Empty(t, hc.checks)
}

func TestHealthChecker_CheckHealth(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		expected string
	}{
		{"no checks", nil, "healthy"},
		{"all healthy", []HealthCheck{
			&mockHealthCheck{name: "a"},
			&mockHealthCheck{name: "b"},
		}, "healthy"},
		{"one failing", []HealthCheck{
			&mockHealthCheck{name: "a"},
			&mockHealthCheck{name: "b", err: errors.New("broken")},
		}, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			for _, c := range tt.checks {
				hc.AddCheck(c)
			}

			status := hc.CheckHealth(context.Background())

			assert.Equal(t, tt.expected, status.Status)
			assert.Len(t, status.Checks, len(tt.checks))
		})
	}
}

func TestHealthChecker_FailureMessage(t *testing.T) {
	hc := NewHealthChecker()
	hc.AddCheck(&mockHealthCheck{name: "sim", err: errors.New("stalled")})

	status := hc.CheckHealth(context.Background())

	assert.Equal(t, ComponentHealth{Status: "unhealthy", Message: "stalled"}, status.Checks["sim"])
}

func TestHealthChecker_CheckHealthWithTimeout(t *testing.T) {
	hc := NewHealthChecker()
	hc.AddCheck(&slowHealthCheck{name: "slow", delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	status := hc.CheckHealth(ctx)
	assert.Equal(t, "unhealthy", status.Status)
}

func TestHealthChecker_LivenessHandler(t *testing.T) {
	hc := NewHealthChecker()
	hc.AddCheck(&mockHealthCheck{name: "bad", err: errors.New("x")})

	rec := httptest.NewRecorder()
	hc.LivenessHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code, "liveness ignores checks")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestHealthChecker_ReadinessHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		status string
	}{
		{"ready", nil, http.StatusOK, "healthy"},
		{"not ready", errors.New("stalled"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			hc.AddCheck(&mockHealthCheck{name: "sim", err: tt.err})

			rec := httptest.NewRecorder()
			hc.ReadinessHandler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.code, rec.Code)
			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestNewServeMux(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("shmup_ticks_total 3\n"))
	})
	mux := NewServeMux(NewHealthChecker(), metrics)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	NewServeMux(NewHealthChecker(), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulationHealthCheck(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name    string
		since   time.Duration
		wantErr bool
	}{
		{"fresh", 10 * time.Millisecond, false},
		{"at limit", time.Second, false},
		{"stalled", 3 * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewSimulationHealthCheck(func() time.Time { return base }, time.Second)
			check.now = func() time.Time { return base.Add(tt.since) }

			assert.Equal(t, "simulation", check.Name())
			if tt.wantErr {
				assert.Error(t, check.Check(context.Background()))
			} else {
				assert.NoError(t, check.Check(context.Background()))
			}
		})
	}
}

func TestPopulationHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		ticks   uint64
		count   int
		wantErr bool
	}{
		{"before first step", 0, 0, false},
		{"quota met", 10, 15, false},
		{"below quota", 10, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewPopulationHealthCheck(15, func() (uint64, int) { return tt.ticks, tt.count })
			assert.Equal(t, "population", check.Name())
			assert.Equal(t, tt.wantErr, check.Check(context.Background()) != nil)
		})
	}
}

func TestMemoryHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		usage   int64
		wantErr bool
	}{
		{"under limit", 100, 50, false},
		{"at limit", 100, 100, false},
		{"over limit", 100, 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NewMemoryHealthCheck(tt.limit, func() int64 { return tt.usage })
			assert.Equal(t, "memory", check.Name())
			assert.Equal(t, tt.wantErr, check.Check(context.Background()) != nil)
		})
	}

	runtimeCheck := NewMemoryHealthCheck(1<<20, nil)
	assert.NoError(t, runtimeCheck.Check(context.Background()))
}
