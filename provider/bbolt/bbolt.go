// Package bbolt stores cache entries in a single bbolt bucket. It is the
// on-device persistent store: entries survive process restarts.
package bbolt

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	pr "github.com/unkn0wn-root/expcache/provider"
)

var ErrNilDB = errors.New("bbolt provider: nil db")

const defaultBucket = "expcache"

type Provider struct {
	db      *bolt.DB
	bucket  []byte
	closeDB bool
	now     func() time.Time
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// Bucket is the name of the bucket to use. Default "expcache".
	Bucket string
	// OpenTimeout bounds waiting for the file lock. Default 1s.
	OpenTimeout time.Duration
}

// Open opens (or creates) the database at path. The provider owns the
// returned handle and closes it on Close.
func Open(path string, cfg Config) (*Provider, error) {
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	p, err := New(db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	p.closeDB = true
	return p, nil
}

// New wraps an already open database. Close leaves db open.
func New(db *bolt.DB, cfg Config) (*Provider, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	bucket := []byte(defaultBucket)
	if cfg.Bucket != "" {
		bucket = []byte(cfg.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		return nil, err
	}
	return &Provider{db: db, bucket: bucket, now: time.Now}, nil
}

// Layout: 8 bytes big endian expiresAt (unix millis, 0 = never) || raw value
func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	var found bool
	err := p.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(p.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		if len(v) < 8 {
			// foreign or truncated record; surface as a miss
			return nil
		}
		expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
		if expiresAt > 0 && p.now().UnixMilli() > expiresAt {
			return nil
		}
		// bbolt memory is only valid inside the transaction
		out = append([]byte(nil), v[8:]...)
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = p.now().Add(ttl).UnixMilli()
	}
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	err := p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Put([]byte(key), buf)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(p.bucket).Delete([]byte(key))
	})
}

// Close closes the database only when the provider opened it.
func (p *Provider) Close(context.Context) error {
	if !p.closeDB {
		return nil
	}
	err := p.db.Close()
	p.closeDB = false
	return err
}
