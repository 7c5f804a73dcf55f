package service

import (
	"context"
	"fmt"
)

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports whether the backing stores are reachable.
type HealthService struct {
	deps map[string]Pinger
}

func NewHealthService() *HealthService {
	return &HealthService{deps: make(map[string]Pinger)}
}

// Register adds a named dependency; nil pingers are ignored.
func (h *HealthService) Register(name string, p Pinger) *HealthService {
	if p != nil {
		h.deps[name] = p
	}
	return h
}

// Check pings every registered dependency and returns the first failure.
func (h *HealthService) Check(ctx context.Context) error {
	for name, p := range h.deps {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s unavailable: %w", name, err)
		}
	}
	return nil
}
