// Package health reports provider availability for liveness and
// readiness probes. The engine is stateless, so health reduces to one
// question: can at least one completion provider still take traffic?
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/circuitbreaker"
	"github.com/openjuris/summarizer/internal/providers"
)

// Status of the engine as a whole.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded" // some providers open, at least one available
	StatusDown     Status = "down"     // every provider's breaker is open
)

// ProviderStatus is the per-provider slice of a report.
type ProviderStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// Report is returned by the health endpoint.
type Report struct {
	Status    Status           `json:"status"`
	Providers []ProviderStatus `json:"providers"`
	Timestamp time.Time        `json:"timestamp"`
}

// Checker derives health reports from the provider registry's breaker
// states.
type Checker struct {
	registry *providers.Registry
	logger   *zap.Logger
}

func NewChecker(registry *providers.Registry, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{registry: registry, logger: logger}
}

// Check snapshots every provider's breaker. Half-open counts as
// available: the breaker is willing to probe.
func (c *Checker) Check() Report {
	entries := c.registry.Entries()
	statuses := make([]ProviderStatus, 0, len(entries))
	available := 0
	for _, e := range entries {
		state := e.Breaker.State()
		if state != circuitbreaker.StateOpen {
			available++
		}
		statuses = append(statuses, ProviderStatus{
			Name:  e.Provider.Name(),
			State: state.String(),
		})
	}

	status := StatusHealthy
	switch {
	case available == 0:
		status = StatusDown
	case available < len(entries):
		status = StatusDegraded
	}

	return Report{
		Status:    status,
		Providers: statuses,
		Timestamp: time.Now().UTC(),
	}
}

// RegisterRoutes mounts the probe endpoints on mux. Liveness is
// unconditional; readiness and /health follow breaker state.
func (c *Checker) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", c.handleHealth)
	mux.HandleFunc("/health/live", c.handleLiveness)
	mux.HandleFunc("/health/ready", c.handleReadiness)
}

func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	report := c.Check()
	code := http.StatusOK
	if report.Status == StatusDown {
		code = http.StatusServiceUnavailable
	}
	c.writeJSON(w, code, report)
}

func (c *Checker) handleLiveness(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (c *Checker) handleReadiness(w http.ResponseWriter, r *http.Request) {
	report := c.Check()
	code := http.StatusOK
	if report.Status == StatusDown {
		code = http.StatusServiceUnavailable
	}
	c.writeJSON(w, code, map[string]any{
		"ready":  report.Status != StatusDown,
		"status": report.Status,
	})
}

func (c *Checker) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
