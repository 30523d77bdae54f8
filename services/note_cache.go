package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/notehub/notehub/model"
)

// NoteCache keeps a user's note list in Redis so repeated GET /api/notes calls
// skip Mongo. Every write to a note drops the owner's entry. A nil *NoteCache
// is valid and disables caching entirely.
type NoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNoteCache(redisURL string, ttl time.Duration) (*NoteCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &NoteCache{client: client, ttl: ttl}, nil
}

func noteListKey(ownerID string) string {
	return "notes:" + ownerID
}

// GetList returns the cached list for ownerID, or (nil, false) on miss or any
// cache error. The store is always the fallback.
func (nc *NoteCache) GetList(ctx context.Context, ownerID string) ([]*model.Note, bool) {
	if nc == nil {
		return nil, false
	}

	data, err := nc.client.Get(ctx, noteListKey(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}

	var notes []*model.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		// Unreadable entry, drop it so it cannot keep poisoning reads.
		nc.client.Del(ctx, noteListKey(ownerID))
		return nil, false
	}
	return notes, true
}

// SetList caches the list for ownerID. Errors are ignored; the cache is an
// optimization, never a source of truth.
func (nc *NoteCache) SetList(ctx context.Context, ownerID string, notes []*model.Note) {
	if nc == nil {
		return
	}

	data, err := json.Marshal(notes)
	if err != nil {
		return
	}
	nc.client.Set(ctx, noteListKey(ownerID), data, nc.ttl)
}

// Invalidate drops the cached list for ownerID after any note write.
func (nc *NoteCache) Invalidate(ctx context.Context, ownerID string) {
	if nc == nil {
		return
	}
	nc.client.Del(ctx, noteListKey(ownerID))
}

func (nc *NoteCache) Close() error {
	if nc == nil {
		return nil
	}
	return nc.client.Close()
}
