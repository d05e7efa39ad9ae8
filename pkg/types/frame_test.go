package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameEqual(t *testing.T) {
	base := &Frame{
		Columns: []string{"id", "score"},
		Rows:    [][]any{{"a", "1.5"}, {"b", "2"}},
	}

	t.Run("equal to itself", func(t *testing.T) {
		assert.True(t, base.Equal(base))
	})

	t.Run("ignores representation-only differences", func(t *testing.T) {
		other := &Frame{
			Columns: []string{"id", "score"},
			Rows:    [][]any{{"a", 1.5}, {"b", 2}},
		}
		assert.True(t, base.Equal(other))
	})

	t.Run("detects differing cells", func(t *testing.T) {
		other := &Frame{
			Columns: []string{"id", "score"},
			Rows:    [][]any{{"a", "1.5"}, {"b", "3"}},
		}
		assert.False(t, base.Equal(other))
	})

	t.Run("detects differing columns", func(t *testing.T) {
		other := &Frame{
			Columns: []string{"id", "value"},
			Rows:    base.Rows,
		}
		assert.False(t, base.Equal(other))
	})

	t.Run("nil is never equal", func(t *testing.T) {
		assert.False(t, base.Equal(nil))
	})
}

func TestCacheRecordExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil expiry never expires", func(t *testing.T) {
		assert.False(t, CacheRecord{}.Expired(now))
	})

	t.Run("future expiry is live", func(t *testing.T) {
		at := now.Add(time.Hour)
		assert.False(t, CacheRecord{ExpireAt: &at}.Expired(now))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		at := now.Add(-time.Second)
		assert.True(t, CacheRecord{ExpireAt: &at}.Expired(now))
	})

	t.Run("the expiry instant itself is expired", func(t *testing.T) {
		at := now
		assert.True(t, CacheRecord{ExpireAt: &at}.Expired(now))
	})
}
