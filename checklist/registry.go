package checklist

import (
	"context"
	"sync"
)

// Registry records the last outcome reported by each check. Entries live for
// the editing session; writes for one name replace the previous value.
type Registry interface {
	Register(ctx context.Context, name string, violated bool) error
	Unregister(ctx context.Context, name string) error
	// Count returns how many names are currently registered as violated.
	Count(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) (map[string]bool, error)
	Clear(ctx context.Context) error
}

// MemoryRegistry is an in-process Registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]bool
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]bool)}
}

func (r *MemoryRegistry) Register(_ context.Context, name string, violated bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = violated
	return nil
}

func (r *MemoryRegistry) Unregister(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
	return nil
}

func (r *MemoryRegistry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, v := range r.entries {
		if v {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRegistry) Snapshot(_ context.Context) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]bool, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out, nil
}

func (r *MemoryRegistry) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]bool)
	return nil
}
