package types

import "errors"

// Errors returned by the resolver, loader, and cache engine.
var (
	// ErrEntryNotFound means a dot-notation path has no matching catalog leaf.
	ErrEntryNotFound = errors.New("catalog entry not found")

	// ErrFileNotFound means a resolved file path does not exist on disk.
	ErrFileNotFound = errors.New("data file not found")

	// ErrIntegrityViolation means a locked entry's content no longer matches
	// its recorded hash. Never auto-repaired; the caller must rebaseline
	// explicitly.
	ErrIntegrityViolation = errors.New("locked data changed since last read")

	// ErrUnsupportedFormat means no codec is registered for the entry's format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMissingEncryptionKey means an entry is marked encrypted but no key is
	// configured.
	ErrMissingEncryptionKey = errors.New("encryption key not configured")
)

// Store and validation errors.
var (
	// ErrNotFound means the metadata store has no record under the given name.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidName means a record or cache name is empty.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrInvalidDelimiter means a delimiter value is neither a known alias nor
	// a single character.
	ErrInvalidDelimiter = errors.New("invalid delimiter")

	// ErrMissingPath means a structured catalog leaf has no path field.
	ErrMissingPath = errors.New("catalog leaf missing path")
)

// Config validation errors.
var (
	ErrProjectRootEmpty = errors.New("project root must not be empty")
	ErrStorePathEmpty   = errors.New("store path must not be empty")
	ErrCacheDirEmpty    = errors.New("cache dir must not be empty")
)
