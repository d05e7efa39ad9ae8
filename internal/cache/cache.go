// Package cache implements the named-value computation cache: gob blobs on
// disk with TTL expiry and hash-validated invalidation tracked in the
// metadata store. A blob and its cache record are only valid together;
// either one missing, or a fingerprint mismatch, reads as absent so the
// caller recomputes.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fathomdata/larder/internal/hashutil"
	"github.com/fathomdata/larder/internal/metastore"
	"github.com/fathomdata/larder/pkg/types"
)

// BlobExt is the extension of cache blob files.
const BlobExt = ".gob"

// Cache stores named values under a blob directory.
type Cache struct {
	dir        string
	store      *metastore.Store
	defaultTTL float64
	log        *slog.Logger
	now        func() time.Time
}

// New builds a Cache over the config's cache dir and default TTL. A nil
// logger falls back to slog.Default.
func New(cfg types.Config, store *metastore.Store, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		dir:        cfg.CacheDir,
		store:      store,
		defaultTTL: cfg.CacheTTLHours,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the cached value for name, or absent. Expired or corrupted
// entries are deleted on the way out; metadata-store failures degrade to
// absent with a warning rather than failing the read.
func (c *Cache) Get(name string, opts ...Option) (any, bool) {
	o := applyOptions(opts)
	path := c.blobPath(name, o.file)

	rec, err := c.store.GetCacheRecord(name)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			c.log.Warn("metadata store unavailable, treating cache entry as absent", "name", name, "error", err)
		}
		return nil, false
	}

	if rec.Expired(c.now()) {
		c.invalidate(name, path)
		return nil, false
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn("unreadable cache blob, invalidating", "name", name, "path", path, "error", err)
		}
		c.invalidate(name, path)
		return nil, false
	}

	if hashutil.Sum(blob) != rec.Hash {
		c.log.Warn("cache blob corrupted, invalidating", "name", name, "path", path)
		c.invalidate(name, path)
		return nil, false
	}

	value, err := decodeBlob(blob)
	if err != nil {
		c.log.Warn("undecodable cache blob, invalidating", "name", name, "path", path, "error", err)
		c.invalidate(name, path)
		return nil, false
	}

	if err := c.store.TouchCacheRecord(name); err != nil {
		c.log.Warn("failed to touch cache record", "name", name, "error", err)
	}
	return value, true
}

// Put serializes value, writes the blob atomically, and records its hash
// and expiry.
func (c *Cache) Put(name string, value any, opts ...Option) error {
	if name == "" {
		return types.ErrInvalidName
	}
	o := applyOptions(opts)
	path := c.blobPath(name, o.file)

	blob, err := encodeBlob(value)
	if err != nil {
		return fmt.Errorf("caching %s: %w", name, err)
	}
	if err := writeBlobAtomic(path, blob); err != nil {
		return fmt.Errorf("caching %s: %w", name, err)
	}
	if err := c.store.UpsertCacheRecord(name, hashutil.Sum(blob), c.expiry(o)); err != nil {
		return fmt.Errorf("caching %s: %w", name, err)
	}
	return nil
}

// GetOrCompute returns the cached value for name, computing and storing it
// on a miss. compute runs at most once. A refresh option that resolves true
// force-invalidates before the lookup. Persist failures after a successful
// compute are logged; the computed value is still returned.
func (c *Cache) GetOrCompute(name string, compute func() (any, error), opts ...Option) (any, error) {
	o := applyOptions(opts)

	if c.resolveRefresh(name, o) {
		c.invalidate(name, c.blobPath(name, o.file))
	}

	if value, ok := c.Get(name, opts...); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	if err := c.Put(name, value, opts...); err != nil {
		c.log.Warn("failed to persist computed value", "name", name, "error", err)
	}
	return value, nil
}

// Invalidate removes the record and blob for name. Idempotent.
func (c *Cache) Invalidate(name string, opts ...Option) error {
	if name == "" {
		return types.ErrInvalidName
	}
	o := applyOptions(opts)
	c.invalidate(name, c.blobPath(name, o.file))
	return nil
}

// invalidate drops the record and the blob together, best effort.
func (c *Cache) invalidate(name, path string) {
	if err := c.store.DeleteCacheRecord(name); err != nil {
		c.log.Warn("failed to delete cache record", "name", name, "error", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn("failed to remove cache blob", "name", name, "path", path, "error", err)
	}
}

// resolveRefresh evaluates the refresh option. A refresh callable that
// fails or panics counts as false with a warning.
func (c *Cache) resolveRefresh(name string, o options) (refresh bool) {
	if o.refresh == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("refresh callable panicked, treating as false", "name", name, "panic", r)
			refresh = false
		}
	}()
	ok, err := o.refresh()
	if err != nil {
		c.log.Warn("refresh callable failed, treating as false", "name", name, "error", err)
		return false
	}
	return ok
}

// expiry resolves the expire-at instant: per-call TTL > configured default
// > never (nil).
func (c *Cache) expiry(o options) *time.Time {
	ttl := c.defaultTTL
	if o.ttl != nil {
		ttl = *o.ttl
	} else if ttl <= 0 {
		return nil
	}
	at := c.now().Add(time.Duration(ttl * float64(time.Hour)))
	return &at
}

// blobPath returns the caller-supplied path or the default
// {dir}/{name}.gob, with path separators in the name flattened.
func (c *Cache) blobPath(name, file string) string {
	if file != "" {
		return file
	}
	safe := strings.NewReplacer("/", "__", "\\", "__").Replace(name)
	return filepath.Join(c.dir, safe+BlobExt)
}

// writeBlobAtomic writes to a unique temp file and renames into place so a
// concurrent reader never sees a torn blob.
func writeBlobAtomic(path string, blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing blob: %w", err)
	}
	return nil
}
