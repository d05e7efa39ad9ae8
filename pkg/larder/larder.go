// Package larder composes the catalog resolver, data loader, cache engine,
// and metadata store into a Project, the public entry point for the CLI,
// the HTTP server, and embedding callers.
package larder

import (
	"log/slog"

	"github.com/fathomdata/larder/internal/cache"
	"github.com/fathomdata/larder/internal/catalog"
	"github.com/fathomdata/larder/internal/codec"
	"github.com/fathomdata/larder/internal/loader"
	"github.com/fathomdata/larder/internal/metastore"
	"github.com/fathomdata/larder/internal/secrets"
	"github.com/fathomdata/larder/pkg/types"
)

// Version is the larder release version.
const Version = "0.1.0"

// Project wires the core components over one configuration. All components
// share the same metadata store and content-hash discipline.
type Project struct {
	cfg      types.Config
	store    *metastore.Store
	resolver *catalog.Resolver
	registry *codec.Registry
	loader   *loader.Loader
	cache    *cache.Cache
	log      *slog.Logger
}

// Open validates the config, initializes the metadata store, and builds
// the component graph. A nil logger falls back to slog.Default.
func Open(cfg types.Config, log *slog.Logger) (*Project, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	store := metastore.New(cfg.StorePath)
	if err := store.Init(); err != nil {
		return nil, err
	}

	resolver := catalog.New(cfg)
	registry := codec.NewRegistry()
	keeper := secrets.FromEnv(cfg.Key())

	return &Project{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		registry: registry,
		loader:   loader.New(resolver, store, registry, keeper, log),
		cache:    cache.New(cfg, store, log),
		log:      log,
	}, nil
}

// Config returns the project configuration.
func (p *Project) Config() types.Config { return p.cfg }

// Resolve maps a logical name or file path to its catalog entry.
func (p *Project) Resolve(name string) (types.CatalogEntry, error) {
	return p.resolver.Resolve(name)
}

// Entries lists every catalog entry.
func (p *Project) Entries() ([]types.CatalogEntry, error) {
	return p.resolver.Entries()
}

// Load reads, verifies, and parses a catalog entry or file path.
func (p *Project) Load(name string) (any, error) {
	return p.loader.Load(name)
}

// Save encodes and writes a value to a catalog entry, recording its hash.
func (p *Project) Save(name string, value any) error {
	return p.loader.Save(name, value)
}

// Verify re-hashes one entry and reports its integrity status.
func (p *Project) Verify(name string) (loader.VerifyResult, error) {
	return p.loader.Verify(name)
}

// VerifyAll re-hashes every catalog entry.
func (p *Project) VerifyAll() ([]loader.VerifyResult, error) {
	return p.loader.VerifyAll()
}

// Rebaseline explicitly re-records an entry's current hash, the remediation
// path for a locked entry that legitimately changed.
func (p *Project) Rebaseline(name string) error {
	return p.loader.Rebaseline(name)
}

// CacheGet returns a cached value, or absent.
func (p *Project) CacheGet(name string, opts ...cache.Option) (any, bool) {
	return p.cache.Get(name, opts...)
}

// CachePut stores a value under a cache name.
func (p *Project) CachePut(name string, value any, opts ...cache.Option) error {
	return p.cache.Put(name, value, opts...)
}

// CacheGetOrCompute returns the cached value, computing on a miss.
func (p *Project) CacheGetOrCompute(name string, compute func() (any, error), opts ...cache.Option) (any, error) {
	return p.cache.GetOrCompute(name, compute, opts...)
}

// CacheInvalidate drops a cache entry's record and blob.
func (p *Project) CacheInvalidate(name string, opts ...cache.Option) error {
	return p.cache.Invalidate(name, opts...)
}

// LoadCached wraps Load in the cache under the composite name
// "data.<name>", so repeated loads of a large entry skip parsing until the
// cache expires or is refreshed.
func (p *Project) LoadCached(name string, opts ...cache.Option) (any, error) {
	return p.cache.GetOrCompute("data."+name, func() (any, error) {
		return p.loader.Load(name)
	}, opts...)
}

// DataRecords lists the integrity records for data entries.
func (p *Project) DataRecords() ([]types.DataRecord, error) {
	return p.store.ListDataRecords()
}

// CacheRecords lists the integrity records for cache entries.
func (p *Project) CacheRecords() ([]types.CacheRecord, error) {
	return p.store.ListCacheRecords()
}

// StoreID returns the metadata store's identifier.
func (p *Project) StoreID() (string, error) {
	return p.store.StoreID()
}

// RegisterCodec installs or replaces the codec for a format.
func (p *Project) RegisterCodec(format types.Format, c codec.Codec) {
	p.registry.Register(format, c)
}
