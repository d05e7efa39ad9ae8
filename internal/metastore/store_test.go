package metastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomdata/larder/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "larder.db"))
	require.NoError(t, s.Init())
	return s
}

func TestInit(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		s := New(filepath.Join(t.TempDir(), "larder.db"))
		require.NoError(t, s.Init())
		require.NoError(t, s.Init())
	})

	t.Run("seeds schema version and store id once", func(t *testing.T) {
		s := newTestStore(t)

		version, err := s.GetMeta("schema_version")
		require.NoError(t, err)
		assert.Equal(t, "1", version)

		id1, err := s.StoreID()
		require.NoError(t, err)
		require.NotEmpty(t, id1)

		require.NoError(t, s.Init())
		id2, err := s.StoreID()
		require.NoError(t, err)
		assert.Equal(t, id1, id2)
	})
}

func TestMeta(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		_, err := s.GetMeta("absent")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.SetMeta("default_ttl", "24"))
		v, err := s.GetMeta("default_ttl")
		require.NoError(t, err)
		assert.Equal(t, "24", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.SetMeta("default_ttl", "48"))
		v, err := s.GetMeta("default_ttl")
		require.NoError(t, err)
		assert.Equal(t, "48", v)
	})

	t.Run("empty key is invalid", func(t *testing.T) {
		assert.ErrorIs(t, s.SetMeta("", "x"), types.ErrInvalidName)
	})
}

func TestDataRecords(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		_, err := s.GetDataRecord("inputs.raw.survey")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("upsert creates then updates", func(t *testing.T) {
		require.NoError(t, s.UpsertDataRecord("inputs.raw.survey", "aaa", false))

		rec, err := s.GetDataRecord("inputs.raw.survey")
		require.NoError(t, err)
		assert.Equal(t, "aaa", rec.Hash)
		assert.False(t, rec.Encrypted)
		created := rec.CreatedAt

		require.NoError(t, s.UpsertDataRecord("inputs.raw.survey", "bbb", true))
		rec, err = s.GetDataRecord("inputs.raw.survey")
		require.NoError(t, err)
		assert.Equal(t, "bbb", rec.Hash)
		assert.True(t, rec.Encrypted)
		assert.Equal(t, created, rec.CreatedAt, "created_at survives updates")
	})

	t.Run("list orders by name", func(t *testing.T) {
		require.NoError(t, s.UpsertDataRecord("a.first", "h1", false))
		records, err := s.ListDataRecords()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a.first", records[0].Name)
		assert.Equal(t, "inputs.raw.survey", records[1].Name)
	})

	t.Run("delete removes, second delete is ErrNotFound", func(t *testing.T) {
		require.NoError(t, s.DeleteDataRecord("a.first"))
		assert.ErrorIs(t, s.DeleteDataRecord("a.first"), types.ErrNotFound)
	})
}

func TestCacheRecords(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		_, err := s.GetCacheRecord("sq5")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("nil expiry round-trips as never", func(t *testing.T) {
		require.NoError(t, s.UpsertCacheRecord("sq5", "h1", nil))
		rec, err := s.GetCacheRecord("sq5")
		require.NoError(t, err)
		assert.Nil(t, rec.ExpireAt)
	})

	t.Run("expiry round-trips to the second", func(t *testing.T) {
		at := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Second)
		require.NoError(t, s.UpsertCacheRecord("sq5", "h2", &at))

		rec, err := s.GetCacheRecord("sq5")
		require.NoError(t, err)
		require.NotNil(t, rec.ExpireAt)
		assert.True(t, at.Equal(*rec.ExpireAt))
	})

	t.Run("touch bumps last_read_at only", func(t *testing.T) {
		before, err := s.GetCacheRecord("sq5")
		require.NoError(t, err)

		s.now = func() time.Time { return time.Now().UTC().Add(time.Minute) }
		require.NoError(t, s.TouchCacheRecord("sq5"))

		after, err := s.GetCacheRecord("sq5")
		require.NoError(t, err)
		assert.True(t, after.LastReadAt.After(before.LastReadAt))
		assert.Equal(t, before.Hash, after.Hash)
	})

	t.Run("touching an absent record is ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, s.TouchCacheRecord("absent"), types.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.DeleteCacheRecord("sq5"))
		require.NoError(t, s.DeleteCacheRecord("sq5"))
	})
}
