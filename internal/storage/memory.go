package storage

import "sync"

// Memory keeps values in a map for the life of the process.
// ReadErr and WriteErr, when set, are returned instead of touching the map.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int

	ReadErr  error
	WriteErr error
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Name returns the backend identifier
func (m *Memory) Name() string {
	return "memory"
}

// Read returns a copy of the value stored under key
func (m *Memory) Read(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, false, m.ReadErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Write stores a copy of value under key
func (m *Memory) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Set seeds a value without counting it as a write
func (m *Memory) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
}

// Writes returns how many Write calls were made, including failed ones
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}

func init() {
	Register("memory", func(string) (Backend, error) { return NewMemory(), nil })
}
