package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HostHealth reports the health of one backend host as seen through its
// circuit breaker.
type HostHealth struct {
	// Name is the host identifier.
	Name string

	// CircuitState is the current breaker state.
	CircuitState gobreaker.State

	// Counts are the breaker counters.
	Counts gobreaker.Counts

	// LastSuccessAt is when the host last answered successfully.
	LastSuccessAt *time.Time

	// LastFailureAt is when the host last failed.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// IsHealthy reports whether the breaker is closed.
func (h *HostHealth) IsHealthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// Registry tracks the resilient clients for the backend hosts a driver
// client talks to. Each Client instance owns its own registry; there is no
// process-wide one.
type Registry struct {
	mu    sync.RWMutex
	hosts map[string]*registeredHost
}

type registeredHost struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty host registry.
func NewRegistry() *Registry {
	return &Registry{hosts: make(map[string]*registeredHost)}
}

// Register adds a host client under name, replacing any previous entry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hosts[name] = &registeredHost{client: client}
}

// RecordSuccess notes a successful request for a host.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hosts[name]; ok {
		now := time.Now()
		h.lastSuccessAt = &now
	}
}

// RecordFailure notes a failed request for a host.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hosts[name]; ok {
		now := time.Now()
		h.lastFailureAt = &now
		if err != nil {
			h.lastError = err.Error()
		}
	}
}

// Health returns the health of one host, or nil if it is not registered.
func (r *Registry) Health(name string) *HostHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hosts[name]
	if !ok {
		return nil
	}
	return &HostHealth{
		Name:          name,
		CircuitState:  h.client.State(),
		Counts:        h.client.Counts(),
		LastSuccessAt: h.lastSuccessAt,
		LastFailureAt: h.lastFailureAt,
		LastError:     h.lastError,
	}
}

// AllHealth returns the health of every registered host.
func (r *Registry) AllHealth() []*HostHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*HostHealth, 0, len(r.hosts))
	for name, h := range r.hosts {
		health = append(health, &HostHealth{
			Name:          name,
			CircuitState:  h.client.State(),
			Counts:        h.client.Counts(),
			LastSuccessAt: h.lastSuccessAt,
			LastFailureAt: h.lastFailureAt,
			LastError:     h.lastError,
		})
	}
	return health
}
