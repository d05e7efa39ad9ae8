// Integrity records for cache entries.
package metastore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fathomdata/larder/pkg/types"
)

// GetCacheRecord returns the cache record for name, or ErrNotFound.
func (s *Store) GetCacheRecord(name string) (types.CacheRecord, error) {
	if name == "" {
		return types.CacheRecord{}, types.ErrInvalidName
	}
	var rec types.CacheRecord
	err := s.withDB(func(db *sql.DB) error {
		row := db.QueryRow(
			"SELECT name, hash, expire_at, last_read_at, created_at, updated_at FROM cache WHERE name = ?",
			name,
		)
		r, err := hydrateCacheRecord(row)
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting cache record %s: %w", name, err)
		}
		rec = r
		return nil
	})
	return rec, err
}

// UpsertCacheRecord records the blob hash and expiry for name. A nil
// expireAt means the entry never expires.
func (s *Store) UpsertCacheRecord(name, hash string, expireAt *time.Time) error {
	if name == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		now := s.now().Format(time.RFC3339)
		var expire any
		if expireAt != nil {
			expire = expireAt.UTC().Format(time.RFC3339)
		}
		_, err := db.Exec(
			`INSERT INTO cache (name, hash, expire_at, last_read_at, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?)
             ON CONFLICT(name) DO UPDATE SET
                 hash = excluded.hash,
                 expire_at = excluded.expire_at,
                 last_read_at = excluded.last_read_at,
                 updated_at = excluded.updated_at`,
			name, hash, expire, now, now, now,
		)
		if err != nil {
			return fmt.Errorf("upserting cache record %s: %w", name, err)
		}
		return nil
	})
}

// TouchCacheRecord bumps last_read_at on a cache hit.
func (s *Store) TouchCacheRecord(name string) error {
	if name == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		now := s.now().Format(time.RFC3339)
		res, err := db.Exec("UPDATE cache SET last_read_at = ? WHERE name = ?", now, name)
		if err != nil {
			return fmt.Errorf("touching cache record %s: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("touching cache record %s: %w", name, err)
		}
		if n == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

// DeleteCacheRecord removes the record for name. Absent records are not an
// error: invalidation is idempotent.
func (s *Store) DeleteCacheRecord(name string) error {
	if name == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.Exec("DELETE FROM cache WHERE name = ?", name); err != nil {
			return fmt.Errorf("deleting cache record %s: %w", name, err)
		}
		return nil
	})
}

// ListCacheRecords returns all cache records ordered by name.
func (s *Store) ListCacheRecords() ([]types.CacheRecord, error) {
	records := []types.CacheRecord{}
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.Query(
			"SELECT name, hash, expire_at, last_read_at, created_at, updated_at FROM cache ORDER BY name ASC",
		)
		if err != nil {
			return fmt.Errorf("listing cache records: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			r, err := hydrateCacheRecord(rows)
			if err != nil {
				return fmt.Errorf("hydrating cache record: %w", err)
			}
			records = append(records, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// hydrateCacheRecord converts a row into a types.CacheRecord.
func hydrateCacheRecord(row scanner) (types.CacheRecord, error) {
	var (
		rec      types.CacheRecord
		expire   sql.NullString
		lastRead string
		created  string
		updated  string
	)
	if err := row.Scan(&rec.Name, &rec.Hash, &expire, &lastRead, &created, &updated); err != nil {
		return types.CacheRecord{}, err
	}
	var err error
	if expire.Valid {
		t, err := parseTime(expire.String)
		if err != nil {
			return types.CacheRecord{}, err
		}
		rec.ExpireAt = &t
	}
	if rec.LastReadAt, err = parseTime(lastRead); err != nil {
		return types.CacheRecord{}, err
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return types.CacheRecord{}, err
	}
	if rec.UpdatedAt, err = parseTime(updated); err != nil {
		return types.CacheRecord{}, err
	}
	return rec, nil
}
