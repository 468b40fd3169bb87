package reporting

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/logger"
)

// Snapshot caches the full record set in Redis for a short TTL so that a
// burst of dashboard queries does not hit Postgres once per panel. A nil
// client disables caching; every lookup then misses.
type Snapshot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *logger.Logger
}

// NewSnapshot creates a snapshot cache for the given table.
func NewSnapshot(client *redis.Client, table string, ttl time.Duration, log *logger.Logger) *Snapshot {
	return &Snapshot{
		client: client,
		key:    "reporting:snapshot:" + table,
		ttl:    ttl,
		log:    log,
	}
}

// Get returns the cached record set, or ok false on a miss. Cache errors
// are logged and degrade to a miss; the store remains the source of truth.
func (s *Snapshot) Get(ctx context.Context) ([]records.CallRecord, bool) {
	if s.client == nil {
		return nil, false
	}

	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("snapshot read failed", "error", err)
		}
		return nil, false
	}

	var recs []records.CallRecord
	if err := json.Unmarshal(payload, &recs); err != nil {
		s.log.Warn("snapshot decode failed", "error", err)
		return nil, false
	}
	return recs, true
}

// Set stores the record set with the configured TTL.
func (s *Snapshot) Set(ctx context.Context, recs []records.CallRecord) {
	if s.client == nil {
		return
	}

	payload, err := json.Marshal(recs)
	if err != nil {
		s.log.Warn("snapshot encode failed", "error", err)
		return
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl).Err(); err != nil {
		s.log.Warn("snapshot write failed", "error", err)
	}
}

// Invalidate drops the cached snapshot. Called when a sync pass commits so
// the next query sees the fresh table instead of waiting out the TTL.
func (s *Snapshot) Invalidate(ctx context.Context) {
	if s.client == nil {
		return
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.log.Warn("snapshot invalidate failed", "error", err)
	}
}
