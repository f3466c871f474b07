package play

import (
	"context"
	"sync"
)

// Registry keeps live drivers by session id. A session missing from
// memory is resumed from the store.
type Registry struct {
	deps Deps

	mu       sync.Mutex
	sessions map[string]*Driver
}

// NewRegistry creates a Registry.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, sessions: make(map[string]*Driver)}
}

// Start begins a session and registers it.
func (r *Registry) Start(ctx context.Context, assignmentID string) (*Driver, Reply, error) {
	d, reply, err := Start(ctx, r.deps, assignmentID)
	if err != nil {
		return nil, Reply{}, err
	}
	r.mu.Lock()
	r.sessions[d.ID()] = d
	r.mu.Unlock()
	return d, reply, nil
}

// Get returns the driver for id.
func (r *Registry) Get(ctx context.Context, id string) (*Driver, error) {
	r.mu.Lock()
	d, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		return d, nil
	}

	d, err := Resume(ctx, r.deps, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		return existing, nil
	}
	r.sessions[id] = d
	return d, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
