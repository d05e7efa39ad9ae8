package loader

import (
	"errors"
	"os"

	"github.com/fathomdata/larder/internal/hashutil"
	"github.com/fathomdata/larder/pkg/types"
)

// Status classifies an entry's integrity at verification time.
type Status string

const (
	// StatusOK means the recorded hash matches the file.
	StatusOK Status = "ok"
	// StatusDrift means an unlocked entry's content changed since last read.
	StatusDrift Status = "drift"
	// StatusViolation means a locked entry's content changed.
	StatusViolation Status = "violation"
	// StatusMissing means the file does not exist on disk.
	StatusMissing Status = "missing"
	// StatusUnrecorded means the entry has never been read.
	StatusUnrecorded Status = "unrecorded"
)

// VerifyResult reports one entry's integrity state.
type VerifyResult struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Status Status `json:"status"`
	Locked bool   `json:"locked"`
}

// Verify re-hashes an entry's file without parsing it and reports how it
// compares to the integrity record. Verify never updates the record.
func (l *Loader) Verify(name string) (VerifyResult, error) {
	entry, err := l.resolver.Resolve(name)
	if err != nil {
		return VerifyResult{}, err
	}
	return l.verifyEntry(entry)
}

// VerifyAll verifies every catalog entry.
func (l *Loader) VerifyAll() ([]VerifyResult, error) {
	entries, err := l.resolver.Entries()
	if err != nil {
		return nil, err
	}
	results := make([]VerifyResult, 0, len(entries))
	for _, entry := range entries {
		res, err := l.verifyEntry(entry)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (l *Loader) verifyEntry(entry types.CatalogEntry) (VerifyResult, error) {
	res := VerifyResult{Name: entry.RecordName(), Path: entry.FilePath, Locked: entry.Locked}

	current, err := hashutil.File(entry.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Status = StatusMissing
			return res, nil
		}
		return VerifyResult{}, err
	}

	rec, err := l.store.GetDataRecord(entry.RecordName())
	switch {
	case errors.Is(err, types.ErrNotFound):
		res.Status = StatusUnrecorded
	case err != nil:
		return VerifyResult{}, err
	case rec.Hash == current:
		res.Status = StatusOK
	case entry.Locked:
		res.Status = StatusViolation
	default:
		res.Status = StatusDrift
	}
	return res, nil
}
