// Package health provides liveness and readiness probes for a running
// simulation. They are served next to the metrics endpoint so a soak run
// or a headless instance can be watched from outside.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"
)

// HealthCheck defines the interface for individual health checks.
// Each component can implement this interface to provide its health status.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks for the application.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler reports that the process is up and serving requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]string{"status": "alive"}
	json.NewEncoder(w).Encode(response)
}

// ReadinessHandler executes all health checks and answers 200 OK when they
// pass, or 503 Service Unavailable when any fails.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")

	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(health)
}

// NewServeMux routes /healthz and /readyz to hc and /metrics to metrics,
// when given.
func NewServeMux(hc *HealthChecker, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", hc.LivenessHandler)
	mux.HandleFunc("/readyz", hc.ReadinessHandler)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

// SimulationHealthCheck fails when the world has not been stepped recently,
// which means the frame loop has stalled.
type SimulationHealthCheck struct {
	lastStep func() time.Time
	maxStale time.Duration
	now      func() time.Time
}

// NewSimulationHealthCheck creates a staleness check. lastStep is usually
// World.LastStep.
func NewSimulationHealthCheck(lastStep func() time.Time, maxStale time.Duration) *SimulationHealthCheck {
	return &SimulationHealthCheck{
		lastStep: lastStep,
		maxStale: maxStale,
		now:      time.Now,
	}
}

// Name returns the name of this health check.
func (s *SimulationHealthCheck) Name() string {
	return "simulation"
}

// Check verifies that a step happened within the allowed window.
func (s *SimulationHealthCheck) Check(ctx context.Context) error {
	if stale := s.now().Sub(s.lastStep()); stale > s.maxStale {
		return fmt.Errorf("no world step for %s (limit %s)", stale.Round(time.Millisecond), s.maxStale)
	}
	return nil
}

// PopulationHealthCheck fails when the enemy population has fallen below
// its quota after the world has started stepping.
type PopulationHealthCheck struct {
	population func() (ticks uint64, count int)
	quota      int
}

// NewPopulationHealthCheck creates a quota check. population returns the
// tick counter and the enemy plus explosion count.
func NewPopulationHealthCheck(quota int, population func() (uint64, int)) *PopulationHealthCheck {
	return &PopulationHealthCheck{
		population: population,
		quota:      quota,
	}
}

// Name returns the name of this health check.
func (p *PopulationHealthCheck) Name() string {
	return "population"
}

// Check verifies the quota is met once the first step has run.
func (p *PopulationHealthCheck) Check(ctx context.Context) error {
	ticks, count := p.population()
	if ticks > 0 && count < p.quota {
		return fmt.Errorf("population %d below quota %d", count, p.quota)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go heap.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = heapMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

func heapMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.HeapAlloc / (1024 * 1024))
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}
