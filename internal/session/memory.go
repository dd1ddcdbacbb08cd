package session

import (
	"sync"

	"github.com/google/uuid"
)

// Memory is a standalone Values implementation, used where no HTTP request backs the session.
type Memory struct {
	id   string
	mu   sync.RWMutex
	data map[string]interface{}
}

// NewMemory creates an empty session with a random id.
func NewMemory() *Memory {
	return &Memory{id: uuid.NewString(), data: make(map[string]interface{})}
}

func (m *Memory) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

// Regenerate assigns a new id and keeps the values.
func (m *Memory) Regenerate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = uuid.NewString()
	return nil
}

func (m *Memory) Get(key string) interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key]
}

func (m *Memory) Set(key string, val interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
}
