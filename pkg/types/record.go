package types

import "time"

// DataRecord tracks the last content fingerprint the system wrote or
// successfully validated for a named data entry. The hash is the system's
// belief about the artifact, reconciled against disk on every read.
type DataRecord struct {
	Name       string    `json:"name"`
	Hash       string    `json:"hash"`
	Encrypted  bool      `json:"encrypted"`
	LastReadAt time.Time `json:"last_read_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CacheRecord tracks a cache blob's fingerprint and expiry. A nil ExpireAt
// means the entry never expires.
type CacheRecord struct {
	Name       string     `json:"name"`
	Hash       string     `json:"hash"`
	ExpireAt   *time.Time `json:"expire_at,omitempty"`
	LastReadAt time.Time  `json:"last_read_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Expired reports whether the record's expiry instant has passed.
func (r CacheRecord) Expired(now time.Time) bool {
	return r.ExpireAt != nil && !now.Before(*r.ExpireAt)
}
