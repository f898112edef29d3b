package rules

// Store exposes the read-only rule table to handlers and the reply engine.
type Store interface {
	List() []Rule
}

// MemoryStore implements Store with an in-memory slice. Rules are static
// process-wide configuration and are never mutated after startup.
type MemoryStore struct {
	items []Rule
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied rules.
func NewMemoryStore(items []Rule) *MemoryStore {
	return &MemoryStore{items: append([]Rule(nil), items...)}
}

// List returns the rules in evaluation order.
func (s *MemoryStore) List() []Rule {
	return append([]Rule(nil), s.items...)
}
