// Package loader reads and writes catalog entries with content-integrity
// reconciliation: every successful read verifies the file's SHA-256 against
// the metadata store and records the outcome. Locked entries hard-fail on
// drift; unlocked entries warn and re-baseline.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fathomdata/larder/internal/catalog"
	"github.com/fathomdata/larder/internal/codec"
	"github.com/fathomdata/larder/internal/hashutil"
	"github.com/fathomdata/larder/internal/metastore"
	"github.com/fathomdata/larder/internal/secrets"
	"github.com/fathomdata/larder/pkg/types"
)

// Loader composes the resolver, store, codec registry, and cipher.
type Loader struct {
	resolver *catalog.Resolver
	store    *metastore.Store
	registry *codec.Registry
	keeper   *secrets.Keeper
	log      *slog.Logger
}

// New builds a Loader. A nil logger falls back to slog.Default.
func New(resolver *catalog.Resolver, store *metastore.Store, registry *codec.Registry, keeper *secrets.Keeper, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{resolver: resolver, store: store, registry: registry, keeper: keeper, log: log}
}

// Load resolves a logical name or file path, verifies its content hash
// against the integrity record, decrypts if the entry is flagged, and
// parses according to the entry's format.
//
// A hash mismatch on a locked entry fails with ErrIntegrityViolation and
// leaves the record untouched. On an unlocked entry it logs a warning and
// proceeds with the new content, recording the new hash.
func (l *Loader) Load(name string) (any, error) {
	entry, err := l.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	raw, err := readEntry(entry)
	if err != nil {
		return nil, err
	}
	current := hashutil.Sum(raw)

	if err := l.reconcile(entry, current); err != nil {
		return nil, err
	}

	if entry.Encrypted {
		raw, err = l.keeper.Decrypt(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.RecordName(), err)
		}
	}

	value, err := l.registry.Parse(raw, entry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.RecordName(), err)
	}
	return value, nil
}

// Save encodes a value according to the entry's format, encrypts when
// flagged, writes it atomically, and records the new hash.
func (l *Loader) Save(name string, value any) error {
	entry, err := l.resolver.Resolve(name)
	if err != nil {
		return err
	}

	data, err := l.registry.Encode(value, entry)
	if err != nil {
		return fmt.Errorf("%s: %w", entry.RecordName(), err)
	}
	if entry.Encrypted {
		data, err = l.keeper.Encrypt(data)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.RecordName(), err)
		}
	}

	if err := writeAtomic(entry.FilePath, data); err != nil {
		return fmt.Errorf("%s: %w", entry.RecordName(), err)
	}
	if err := l.store.UpsertDataRecord(entry.RecordName(), hashutil.Sum(data), entry.Encrypted); err != nil {
		l.log.Warn("failed to record hash after save", "name", entry.RecordName(), "error", err)
	}
	return nil
}

// Rebaseline re-records the current content hash for an entry. This is the
// explicit remediation path for a locked entry that legitimately changed:
// loads never do it implicitly.
func (l *Loader) Rebaseline(name string) error {
	entry, err := l.resolver.Resolve(name)
	if err != nil {
		return err
	}
	hash, err := hashutil.File(entry.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", entry.RecordName(), types.ErrFileNotFound)
		}
		return err
	}
	return l.store.UpsertDataRecord(entry.RecordName(), hash, entry.Encrypted)
}

// reconcile compares the current hash with the integrity record and
// updates the record. Store read failures degrade to "no record" with a
// warning so a load can proceed without metadata.
func (l *Loader) reconcile(entry types.CatalogEntry, current string) error {
	name := entry.RecordName()

	rec, err := l.store.GetDataRecord(name)
	switch {
	case err == nil:
		if rec.Hash != current {
			if entry.Locked {
				return fmt.Errorf("%s: %w", name, types.ErrIntegrityViolation)
			}
			l.log.Warn("file changed since last read", "name", name, "path", entry.FilePath)
		}
	case errors.Is(err, types.ErrNotFound):
		// First read; the upsert below creates the record.
	default:
		l.log.Warn("metadata store unavailable, proceeding unrecorded", "name", name, "error", err)
		return nil
	}

	if err := l.store.UpsertDataRecord(name, current, entry.Encrypted); err != nil {
		l.log.Warn("failed to update integrity record", "name", name, "error", err)
	}
	return nil
}

// readEntry reads the entry's file, mapping absence to ErrFileNotFound.
func readEntry(entry types.CatalogEntry) ([]byte, error) {
	raw, err := os.ReadFile(entry.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", entry.FilePath, types.ErrFileNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", entry.FilePath, err)
	}
	return raw, nil
}

// writeAtomic writes data to a unique temp file in the target directory and
// renames it into place, so readers never observe a torn file.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dir: %w", err)
	}
	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
