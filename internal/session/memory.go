package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Key]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (string, error) {
	if !key.valid() {
		return "", ErrUnknownKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", ErrAbsent
	}
	return v, nil
}

func (s *MemoryStore) Put(ctx context.Context, key Key, value string) error {
	if !key.valid() {
		return ErrUnknownKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, key Key) error {
	if !key.valid() {
		return ErrUnknownKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
