// Package storage resolves the service's operating mode at startup.
//
// Persistence is available iff DATABASE_URL is configured and the pool could
// be opened and pinged. The decision is made exactly once; a Store that came
// up in demo mode stays in demo mode for the process lifetime. Demo mode is
// an ordinary operating mode, not an error state: every read path has a
// corpus-backed answer and every write path degrades to a logged no-op.
package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/database"
	"github.com/rs/zerolog"
)

// ErrNotPersistent is returned by operations that need a durable store and
// have no safe demo-mode fallback, such as creating a topic.
var ErrNotPersistent = errors.New("no persistent store configured")

// Store wraps an optional PostgreSQL pool.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Resolve builds the Store for this process. A missing DATABASE_URL or an
// unreachable database yields a demo-mode Store; startup never aborts here.
func Resolve(ctx context.Context, cfg *config.Config, log zerolog.Logger) *Store {
	s := &Store{log: log.With().Str("component", "storage").Logger()}

	if cfg.DatabaseURL == "" {
		s.log.Warn().Msg("DATABASE_URL not set, running in demo mode with in-memory questions")
		return s
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		s.log.Warn().Err(err).Msg("database unreachable, falling back to demo mode")
		return s
	}

	s.pool = pool
	return s
}

// Persistent reports whether a durable store is available. Callers branch on
// this before touching Pool.
func (s *Store) Persistent() bool {
	return s.pool != nil
}

// Pool returns the underlying connection pool. Nil in demo mode.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the pool if one was opened.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
