// Package codec parses and writes the serialization formats the catalog
// supports. Formats are dispatched through an open registry so new codecs
// can be added without touching the loader.
package codec

import (
	"fmt"

	"github.com/fathomdata/larder/pkg/types"
)

// Codec pairs a parser with an optional writer for one format. A nil Write
// marks a read-only format.
type Codec struct {
	Parse func(data []byte, entry types.CatalogEntry) (any, error)
	Write func(value any, entry types.CatalogEntry) ([]byte, error)
}

// Registry maps format tags to codecs.
type Registry struct {
	codecs map[types.Format]Codec
}

// NewRegistry returns a registry with the built-in codecs registered:
// csv, json, gob, excel, stata, and sas. The stat formats are read-only.
func NewRegistry() *Registry {
	r := &Registry{codecs: map[types.Format]Codec{}}
	r.Register(types.FormatCSV, Codec{Parse: parseCSV, Write: writeCSV})
	r.Register(types.FormatJSON, Codec{Parse: parseJSON, Write: writeJSON})
	r.Register(types.FormatGob, Codec{Parse: parseGob, Write: writeGob})
	r.Register(types.FormatExcel, Codec{Parse: parseExcel, Write: writeExcel})
	r.Register(types.FormatStata, Codec{Parse: parseStata})
	r.Register(types.FormatSAS, Codec{Parse: parseSAS})
	return r
}

// Register installs or replaces the codec for a format.
func (r *Registry) Register(format types.Format, c Codec) {
	r.codecs[format] = c
}

// Lookup returns the codec for a format, or ErrUnsupportedFormat.
func (r *Registry) Lookup(format types.Format) (Codec, error) {
	c, ok := r.codecs[format]
	if !ok {
		return Codec{}, fmt.Errorf("%q: %w", format, types.ErrUnsupportedFormat)
	}
	return c, nil
}

// Parse decodes data according to the entry's format.
func (r *Registry) Parse(data []byte, entry types.CatalogEntry) (any, error) {
	c, err := r.Lookup(entry.Format)
	if err != nil {
		return nil, err
	}
	return c.Parse(data, entry)
}

// Encode serializes value according to the entry's format. Read-only
// formats fail with ErrUnsupportedFormat.
func (r *Registry) Encode(value any, entry types.CatalogEntry) ([]byte, error) {
	c, err := r.Lookup(entry.Format)
	if err != nil {
		return nil, err
	}
	if c.Write == nil {
		return nil, fmt.Errorf("%q is read-only: %w", entry.Format, types.ErrUnsupportedFormat)
	}
	return c.Write(value, entry)
}
