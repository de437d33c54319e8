package store

import "sync"

// Memory is an in-process Store used by tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte

	// Fail, when set, is consulted before every write; a non-nil result is
	// returned instead of writing.
	Fail func(op, key string) error
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if m.Fail != nil {
		if err := m.Fail("set", key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Remove(key string) error {
	if m.Fail != nil {
		if err := m.Fail("remove", key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
