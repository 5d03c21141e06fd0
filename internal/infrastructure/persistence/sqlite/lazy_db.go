package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/glyphs/internal/logging"
)

// LazyDB opens the database on first use, so commands that never touch a
// remote provider skip the WASM start-up and migrations.
type LazyDB struct {
	path string

	mu  sync.Mutex
	db  *sql.DB
	err error
}

// NewLazyDB returns an unopened handle for path.
func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

// DB opens the database once. A failed open is remembered and not retried.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil && l.err == nil {
		l.db, l.err = Open(ctx, l.path)
		if l.err != nil {
			logging.FromContext(ctx).Warn().Err(l.err).Str("path", l.path).Msg("asset database unavailable")
		}
	}
	if l.err != nil {
		return nil, fmt.Errorf("asset database: %w", l.err)
	}
	return l.db, nil
}

// Opened reports whether the database was opened.
func (l *LazyDB) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database location.
func (l *LazyDB) Path() string {
	return l.path
}

// Close closes the database if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.err = sql.ErrConnDone
	return err
}
