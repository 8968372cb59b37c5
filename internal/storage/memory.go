package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// NewMemoryStoreFromDir seeds the store from <key>.json files in dir.
// Missing files are skipped.
func NewMemoryStoreFromDir(dir string) (*MemoryStore, error) {
	s := NewMemoryStore()
	for _, key := range []string{KeyExpenses, KeyRecurringExpenses, KeyBudgets, KeySavingsGoals, KeyCustomCategories} {
		data, err := os.ReadFile(filepath.Join(dir, key+".json"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", key, err)
		}
		s.values[key] = data
	}
	return s, nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
