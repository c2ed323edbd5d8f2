package storage

import "sync"

// MemoryStore is an in-memory Store used by tests in place of the
// database-backed store.
type MemoryStore struct {
	documents map[string]string
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]string),
	}
}

// Get returns the raw document stored under key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.documents[key]
	return value, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	m.documents[key] = value
	m.mu.Unlock()
	return nil
}

// Remove deletes the document under key.
func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	delete(m.documents, key)
	m.mu.Unlock()
	return nil
}

// Keys returns the stored keys (for testing assertions).
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.documents))
	for k := range m.documents {
		keys = append(keys, k)
	}
	return keys
}
