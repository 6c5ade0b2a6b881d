package session

import "sync"

// Op is a single put or delete applied as part of a batch.
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// Put returns an Op storing value under key.
func Put(key, value string) Op { return Op{Key: key, Value: value} }

// Del returns an Op removing key.
func Del(key string) Op { return Op{Key: key, Delete: true} }

// Backend is the persistent key-value storage behind a Store. Apply must write
// all ops of a batch atomically.
type Backend interface {
	Get(key string) (string, bool, error)
	Apply(ops []Op) error
	Close() error
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Apply(ops []Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Delete {
			delete(m.data, op.Key)
			continue
		}
		m.data[op.Key] = op.Value
	}
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
