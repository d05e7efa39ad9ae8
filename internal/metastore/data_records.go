// Integrity records for named data entries.
package metastore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fathomdata/larder/pkg/types"
)

// GetDataRecord returns the integrity record for name, or ErrNotFound.
func (s *Store) GetDataRecord(name string) (types.DataRecord, error) {
	if name == "" {
		return types.DataRecord{}, types.ErrInvalidName
	}
	var rec types.DataRecord
	err := s.withDB(func(db *sql.DB) error {
		row := db.QueryRow(
			"SELECT name, hash, encrypted, last_read_at, created_at, updated_at FROM data WHERE name = ?",
			name,
		)
		r, err := hydrateDataRecord(row)
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting data record %s: %w", name, err)
		}
		rec = r
		return nil
	})
	return rec, err
}

// UpsertDataRecord records the hash for name, creating the record on first
// sight and bumping last_read_at and updated_at on every call.
func (s *Store) UpsertDataRecord(name, hash string, encrypted bool) error {
	if name == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		now := s.now().Format(time.RFC3339)
		_, err := db.Exec(
			`INSERT INTO data (name, hash, encrypted, last_read_at, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?)
             ON CONFLICT(name) DO UPDATE SET
                 hash = excluded.hash,
                 encrypted = excluded.encrypted,
                 last_read_at = excluded.last_read_at,
                 updated_at = excluded.updated_at`,
			name, hash, boolToInt(encrypted), now, now, now,
		)
		if err != nil {
			return fmt.Errorf("upserting data record %s: %w", name, err)
		}
		return nil
	})
}

// DeleteDataRecord removes the record for name. Deleting an absent record
// returns ErrNotFound.
func (s *Store) DeleteDataRecord(name string) error {
	if name == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		res, err := db.Exec("DELETE FROM data WHERE name = ?", name)
		if err != nil {
			return fmt.Errorf("deleting data record %s: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting data record %s: %w", name, err)
		}
		if n == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

// ListDataRecords returns all data records ordered by name.
func (s *Store) ListDataRecords() ([]types.DataRecord, error) {
	records := []types.DataRecord{}
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.Query(
			"SELECT name, hash, encrypted, last_read_at, created_at, updated_at FROM data ORDER BY name ASC",
		)
		if err != nil {
			return fmt.Errorf("listing data records: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			r, err := hydrateDataRecord(rows)
			if err != nil {
				return fmt.Errorf("hydrating data record: %w", err)
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

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateDataRecord converts a row into a types.DataRecord.
func hydrateDataRecord(row scanner) (types.DataRecord, error) {
	var (
		rec       types.DataRecord
		encrypted int
		lastRead  string
		created   string
		updated   string
	)
	if err := row.Scan(&rec.Name, &rec.Hash, &encrypted, &lastRead, &created, &updated); err != nil {
		return types.DataRecord{}, err
	}
	rec.Encrypted = encrypted != 0
	var err error
	if rec.LastReadAt, err = parseTime(lastRead); err != nil {
		return types.DataRecord{}, err
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return types.DataRecord{}, err
	}
	if rec.UpdatedAt, err = parseTime(updated); err != nil {
		return types.DataRecord{}, err
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
