// Package store persists the club snapshot.
//
// Three backends are available: a JSON file, a SQLite database and a Redis
// key. They all hold a single document, the club.Snapshot, and report
// ErrNotFound until the first save.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/club"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = club.ErrNotFound

// Kind selects a backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
)

// Config describes the backend to open.
type Config struct {
	Kind     Kind
	Path     string // file and sqlite
	RedisURL string // redis://[user:pass@]host:port/db
	RedisKey string
	Logger   zerolog.Logger
}

// Backend is a club.Store that holds resources.
type Backend interface {
	club.Store
	Close() error
}

// Open opens the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	log := cfg.Logger.With().Str("component", "store").Str("kind", string(cfg.Kind)).Logger()
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case KindFile, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFile(cfg.Path, log), nil
	case KindSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite store requires a path")
		}
		return OpenSQLite(ctx, cfg.Path, log)
	case KindRedis:
		return OpenRedis(ctx, cfg.RedisURL, cfg.RedisKey, log)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
