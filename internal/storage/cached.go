package storage

import (
	"context"

	"fintrack/internal/cache"
)

// Entry is a cached value and the revision it was read at.
type Entry struct {
	Value    []byte
	Revision int64
}

// CachedStore is a cache in front of another Store. When the backing store
// is Revisioned, a cached entry is only served while its revision matches
// the stored one, so writes from other processes are never masked.
type CachedStore struct {
	next  Store
	cache cache.Cache[Entry]
}

func NewCachedStore(next Store, c cache.Cache[Entry]) *CachedStore {
	return &CachedStore{next: next, cache: c}
}

// Load implements Store.
func (s *CachedStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if e, ok := s.cache.Get(key); ok {
		current, err := s.current(ctx, key, e)
		if err != nil {
			return nil, false, err
		}
		if current {
			return clone(e.Value), true, nil
		}
		s.cache.Delete(key)
	}

	if rs, ok := s.next.(Revisioned); ok {
		v, rev, found, err := rs.LoadRevision(ctx, key)
		if err != nil || !found {
			return v, found, err
		}
		s.cache.Set(key, Entry{Value: clone(v), Revision: rev})
		return v, true, nil
	}

	v, ok, err := s.next.Load(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Set(key, Entry{Value: clone(v)})
	return v, true, nil
}

// Save implements Store. The cache entry is dropped when the write fails.
// For a Revisioned store it is also dropped on success: the new revision is
// read back by the next Load.
func (s *CachedStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.next.Save(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	if _, ok := s.next.(Revisioned); ok {
		s.cache.Delete(key)
		return nil
	}
	s.cache.Set(key, Entry{Value: clone(value)})
	return nil
}

func (s *CachedStore) current(ctx context.Context, key string, e Entry) (bool, error) {
	rs, ok := s.next.(Revisioned)
	if !ok {
		return true, nil
	}
	rev, found, err := rs.Revision(ctx, key)
	if err != nil {
		return false, err
	}
	return found && rev == e.Revision, nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
