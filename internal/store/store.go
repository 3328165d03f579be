package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"inkwell/internal/archive"
	"inkwell/internal/config"
	"inkwell/internal/logging"
)

// collectionKey names the single durable entry holding the serialized
// collection.
const collectionKey = "articles"

// Store manages the article collection and mirrors it to SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	articles []archive.Article
	revision uint64
}

// Option customizes store construction.
type Option func(*Store)

// WithClock overrides the timestamp source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open connects to the collection database, acquires the single-writer lock,
// and loads the collection into memory, seeding it when storage is empty or
// unreadable.
func Open(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   dbPath,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(store)
	}

	ctx := context.Background()
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	store.loadCollection(ctx)

	return store, nil
}

// Close releases the database connection and the data directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// loadCollection reads the durable entry into memory. Absent or unparseable
// payloads fall back to the seed collection; this path never fails.
func (s *Store) loadCollection(ctx context.Context) {
	var payload string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT payload FROM collections WHERE name = ?`,
		collectionKey,
	).Scan(&payload)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.Info("no stored collection, seeding defaults")
		s.resetToSeed(ctx)
		return
	case err != nil:
		s.logger.Warn("read stored collection", logging.Error(err))
		s.resetToSeed(ctx)
		return
	}

	var articles []archive.Article
	if err := json.Unmarshal([]byte(payload), &articles); err != nil {
		s.logger.Warn("stored collection is unreadable, reseeding", logging.Error(err))
		s.resetToSeed(ctx)
		return
	}

	s.mu.Lock()
	s.articles = articles
	s.mu.Unlock()
}

func (s *Store) resetToSeed(ctx context.Context) {
	seed := archive.Seed(s.now())
	s.mu.Lock()
	s.articles = seed
	s.revision++
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// persistLocked serializes the collection and writes it through. Failures are
// logged and swallowed: the in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(s.articles)
	if err != nil {
		s.logger.Warn("serialize collection", logging.Error(err))
		return
	}

	err = s.execWithRetry(
		ctx,
		`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		collectionKey,
		string(payload),
		s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		s.logger.Warn("persist collection", logging.Error(err))
	}
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
