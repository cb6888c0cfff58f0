package vault

import (
	"errors"
	"sync"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (store *InMemoryVault) Import(key string, value []byte) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[key] = append([]byte(nil), value...)
	return nil
}

func (store *InMemoryVault) Get(key string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	value, ok := store.keys[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Close is a no-op; it lets InMemoryVault stand in for a durable vault.
func (store *InMemoryVault) Close() error {
	return nil
}
