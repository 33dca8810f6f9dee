package codec

import "sync"

// WarningRegistry remembers which group names have already produced a
// legacy-offset deprecation warning, so each group warns at most once per
// registry lifetime. The process-wide default registry lives for the life
// of the process; tests inject their own via Codec.WithWarnings and call
// Reset between cases.
type WarningRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWarningRegistry creates an empty registry.
func NewWarningRegistry() *WarningRegistry {
	return &WarningRegistry{seen: make(map[string]struct{})}
}

// Once reports whether this is the first time name was seen.
func (r *WarningRegistry) Once(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[name]; ok {
		return false
	}
	r.seen[name] = struct{}{}
	return true
}

// Reset forgets all previously seen names.
func (r *WarningRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
}

var defaultWarnings = NewWarningRegistry()

// DefaultWarnings returns the process-wide registry shared by every codec
// not given its own.
func DefaultWarnings() *WarningRegistry {
	return defaultWarnings
}
