package types

import "unicode/utf8"

// Format identifies the serialization of a catalog entry's file.
type Format string

// Supported format tags. The codec registry decides which of these have
// readers and writers available; spss, spss_por, and sas_xpt are recognized
// here but currently have no Go reader.
const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatGob     Format = "gob"
	FormatExcel   Format = "excel"
	FormatStata   Format = "stata"
	FormatSAS     Format = "sas"
	FormatSPSS    Format = "spss"
	FormatSPSSPor Format = "spss_por"
	FormatSASXpt  Format = "sas_xpt"
)

// CatalogEntry is a resolved catalog leaf: a logical name bound to a
// concrete file plus its parsing metadata.
type CatalogEntry struct {
	// LogicalPath is the dot-notation name, empty for ad-hoc file paths.
	LogicalPath string `json:"logical_path,omitempty"`

	// FilePath is the resolved file-system location.
	FilePath string `json:"file_path"`

	Format Format `json:"format"`

	// Delimiter applies to delimited-text formats only; zero means the
	// format default.
	Delimiter rune `json:"delimiter,omitempty"`

	// Locked entries are immutable: a hash mismatch on read is a hard
	// failure, never a warning.
	Locked bool `json:"locked"`

	// Encrypted entries pass through the project cipher before parsing.
	Encrypted bool `json:"encrypted"`

	// Private is derived: true when the parent directory is named "private".
	Private bool `json:"private"`

	// Extra carries free-form catalog fields verbatim, uninterpreted.
	Extra map[string]any `json:"extra,omitempty"`
}

// RecordName returns the key this entry's integrity record is stored under:
// the logical path when the entry comes from the catalog, otherwise the
// file path itself.
func (e CatalogEntry) RecordName() string {
	if e.LogicalPath != "" {
		return e.LogicalPath
	}
	return e.FilePath
}

// delimiterAliases maps the named delimiter aliases accepted in catalog
// configuration.
var delimiterAliases = map[string]rune{
	"comma":     ',',
	"tab":       '\t',
	"semicolon": ';',
	"space":     ' ',
}

// ResolveDelimiter maps a named alias or a literal single character to the
// delimiter rune. Empty input resolves to zero (format default).
func ResolveDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if r, ok := delimiterAliases[s]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, ErrInvalidDelimiter
}
