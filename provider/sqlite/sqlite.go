// Package sqlite stores cache entries in a SQLite file through the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	pr "github.com/unkn0wn-root/expcache/provider"
)

var ErrNilDB = errors.New("sqlite provider: nil db")

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    expires_at INTEGER NOT NULL DEFAULT 0
);
`

type Provider struct {
	sqlDB   *sql.DB
	closeDB bool
	now     func() time.Time
}

var _ pr.Provider = (*Provider)(nil)

// Open opens and prepares a SQLite database at path.
func Open(path string) (*Provider, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	p, err := New(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	p.closeDB = true
	return p, nil
}

// New wraps an open database and ensures the table exists. Close leaves
// sqlDB open.
func New(sqlDB *sql.DB) (*Provider, error) {
	if sqlDB == nil {
		return nil, ErrNilDB
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure kv table: %w", err)
	}
	return &Provider{sqlDB: sqlDB, now: time.Now}, nil
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := p.sqlDB.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv_entries WHERE key = ?`, key)

	var value []byte
	var expiresAt int64
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv entry: %w", err)
	}
	if expiresAt > 0 && p.now().UnixMilli() > expiresAt {
		return nil, false, nil
	}
	return value, true, nil
}

func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = p.now().Add(ttl).UnixMilli()
	}
	if value == nil {
		value = []byte{}
	}
	_, err := p.sqlDB.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	if err != nil {
		return false, fmt.Errorf("put kv entry: %w", err)
	}
	return true, nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	if _, err := p.sqlDB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}

// Purge deletes rows whose ttl hint has passed. Rows without a hint stay.
func (p *Provider) Purge(ctx context.Context) (int64, error) {
	res, err := p.sqlDB.ExecContext(ctx,
		`DELETE FROM kv_entries WHERE expires_at > 0 AND expires_at < ?`, p.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge kv entries: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the connection only when the provider opened it.
func (p *Provider) Close(context.Context) error {
	if !p.closeDB {
		return nil
	}
	p.closeDB = false
	return p.sqlDB.Close()
}
