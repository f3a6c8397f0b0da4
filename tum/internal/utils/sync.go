package utils

import (
	"sync"
)

// OptionalMutex is a mutex that can be switched off for callers that guarantee external
// synchronization. The zero value does not lock.
type OptionalMutex struct {
	mutex    sync.Mutex
	useMutex bool
}

// Init sets whether the mutex locks. It must be called before the mutex is shared.
func (m *OptionalMutex) Init(useMutex bool) {
	m.useMutex = useMutex
}

func (m *OptionalMutex) Enabled() bool {
	return m.useMutex
}

func (m *OptionalMutex) Lock() {
	if m.useMutex {
		m.mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if m.useMutex {
		m.mutex.Unlock()
	}
}

// Do runs fn with the mutex held
func (m *OptionalMutex) Do(fn func() error) error {
	m.Lock()
	defer m.Unlock()

	return fn()
}
