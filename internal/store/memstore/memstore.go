// Package memstore is a map-backed Store used by tests and by the
// redis-less development mode. Change notifications fire synchronously
// in the writing goroutine.
package memstore

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	subsMu sync.Mutex
	subs   map[int]func(string)
	nextID int
}

func New() *Store {
	return &Store{
		data: make(map[string][]byte),
		subs: make(map[int]func(string)),
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.data[key] = cp
	s.mu.Unlock()

	s.notify(key)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	s.notify(key)
	return nil
}

func (s *Store) Subscribe(fn func(key string)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(key string) {
	s.subsMu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
