// Package progress keeps the latest progress snapshot of every running scan.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xw1nchester/dealscan-backend/internal/scan"
	"go.uber.org/zap"
)

var ErrProgressNotFound = errors.New("progress not found")

const keyPrefix = "dealscan:progress:"

func key(scanID uuid.UUID) string {
	return keyPrefix + scanID.String()
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore keeps snapshots as JSON strings that expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *redisStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *redisStore) Publish(ctx context.Context, p scan.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key(p.ScanID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}

	s.logger.Debug(
		"progress published",
		zap.String("scan_id", p.ScanID.String()),
		zap.Int("store_index", p.StoreIndex),
		zap.Int("total_stores", p.TotalStores),
	)

	return nil
}

func (s *redisStore) Get(ctx context.Context, scanID uuid.UUID) (*scan.Progress, error) {
	data, err := s.client.Get(ctx, key(scanID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	var p scan.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}

	return &p, nil
}

type entry struct {
	progress  scan.Progress
	expiresAt time.Time
}

type memoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	snapshots map[uuid.UUID]entry
}

// NewMemoryStore keeps snapshots in process. Like the Redis store, a snapshot
// expires ttl after its last publish; ttl <= 0 keeps snapshots forever.
// Used when Redis is unreachable and in tests.
func NewMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{
		ttl:       ttl,
		now:       time.Now,
		snapshots: make(map[uuid.UUID]entry),
	}
}

func (s *memoryStore) Publish(_ context.Context, p scan.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evict(now)

	e := entry{progress: p}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}
	s.snapshots[p.ScanID] = e

	return nil
}

func (s *memoryStore) Get(_ context.Context, scanID uuid.UUID) (*scan.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.snapshots[scanID]
	if !ok {
		return nil, ErrProgressNotFound
	}
	if e.expired(s.now()) {
		delete(s.snapshots, scanID)
		return nil, ErrProgressNotFound
	}

	p := e.progress
	return &p, nil
}

// Len reports the number of snapshots held, expired ones included until evicted.
func (s *memoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.snapshots)
}

func (s *memoryStore) evict(now time.Time) {
	for id, e := range s.snapshots {
		if e.expired(now) {
			delete(s.snapshots, id)
		}
	}
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
