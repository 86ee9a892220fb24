// Package redisstore persists collections in Redis and uses a pub/sub
// channel as the cross-process change signal. Writes from this process
// also notify in-process subscribers directly, so a consumer sees its
// own writes even before the pub/sub round trip; the two signals are
// expected to be debounced by the consumer.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/savedsphere/sphered/internal/logger"
)

// ChangeChannel is the pub/sub channel carrying changed keys.
const ChangeChannel = "sphere:changes"

type Store struct {
	client *redis.Client
	log    logger.Logger

	subsMu sync.Mutex
	subs   map[int]func(string)
	nextID int
}

func New(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
		subs:   make(map[int]func(string)),
	}
}

// Start launches the pub/sub listener that forwards change
// notifications from other processes to local subscribers. It returns
// once the subscription is confirmed; the listener stops when ctx is
// cancelled.
func (s *Store) Start(ctx context.Context) error {
	ps := s.client.Subscribe(ctx, ChangeChannel)
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to change channel: %w", err)
	}

	go func() {
		defer func() { _ = ps.Close() }()
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.notify(msg.Payload)
			}
		}
	}()

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	// Best effort: a missed publish only delays refresh in other
	// processes until their next write lands.
	if err := s.client.Publish(ctx, ChangeChannel, key).Err(); err != nil {
		s.log.Warn("failed to publish change notification",
			logger.String("key", key),
			logger.Error(err))
	}

	s.notify(key)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	if err := s.client.Publish(ctx, ChangeChannel, key).Err(); err != nil {
		s.log.Warn("failed to publish change notification",
			logger.String("key", key),
			logger.Error(err))
	}

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
