package table

import "sync"

// Registry maps lobby ids to their table actors. It replaces the
// ambient process-global table map with an injected lookup service.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Get returns the table for a lobby, or nil.
func (r *Registry) Get(lobbyID string) *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[lobbyID]
}

// Put registers a table under its lobby id.
func (r *Registry) Put(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.LobbyID()] = t
}

// Remove closes and forgets a lobby's table.
func (r *Registry) Remove(lobbyID string) {
	r.mu.Lock()
	t := r.tables[lobbyID]
	delete(r.tables, lobbyID)
	r.mu.Unlock()
	if t != nil {
		t.Close()
	}
}

// Close closes every live table. Used at shutdown so pending
// next-hand timers cannot fire against a torn-down process.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tables {
		t.Close()
		delete(r.tables, id)
	}
}

// Len returns the number of live tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}
