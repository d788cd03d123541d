package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/etnz/club"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "club:snapshot"

// Redis stores the snapshot msgpack encoded under a single key.
type Redis struct {
	rdb *redis.Client
	key string
	log zerolog.Logger
}

// OpenRedis connects to the server at url and checks it answers.
func OpenRedis(ctx context.Context, url, key string, log zerolog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return NewRedis(rdb, key, log), nil
}

// NewRedis uses an existing client. An empty key means DefaultRedisKey.
func NewRedis(rdb *redis.Client, key string, log zerolog.Logger) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{rdb: rdb, key: key, log: log}
}

// Load reads and decodes the key, ErrNotFound if it does not exist.
func (r *Redis) Load(ctx context.Context) (club.Snapshot, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return club.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return club.Snapshot{}, fmt.Errorf("failed to get %q: %w", r.key, err)
	}
	var s club.Snapshot
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&s); err != nil {
		return club.Snapshot{}, fmt.Errorf("failed to decode %q: %w", r.key, err)
	}
	return s, nil
}

// Save encodes and sets the key.
func (r *Redis) Save(ctx context.Context, s club.Snapshot) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", r.key, err)
	}
	r.log.Debug().Str("key", r.key).Int("bytes", buf.Len()).Msg("snapshot saved")
	return nil
}

// Close closes the client.
func (r *Redis) Close() error { return r.rdb.Close() }
