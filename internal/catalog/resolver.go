// Package catalog resolves logical dataset names against the declarative
// data tree in project configuration. A name containing a path separator is
// treated as a direct file-system path and gets a synthesized entry instead.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fathomdata/larder/pkg/types"
)

// Resolver walks the configured data tree. It holds no file handles, does
// no I/O, and never checks that resolved paths exist; that is the loader's
// job.
type Resolver struct {
	tree map[string]any
	root string
}

// New builds a Resolver over the config's data tree, anchoring relative
// paths at the project root.
func New(cfg types.Config) *Resolver {
	return &Resolver{tree: cfg.Data, root: cfg.ProjectRoot}
}

// Resolve maps a logical dot-notation name or a direct file path to a
// CatalogEntry. Dot paths fail with ErrEntryNotFound when any segment is
// absent; file paths always synthesize an entry with inferred defaults.
func (r *Resolver) Resolve(name string) (types.CatalogEntry, error) {
	if name == "" {
		return types.CatalogEntry{}, types.ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return r.synthesize(name), nil
	}

	node := any(r.tree)
	for _, seg := range strings.Split(name, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return types.CatalogEntry{}, fmt.Errorf("%s: %w", name, types.ErrEntryNotFound)
		}
		node, ok = m[seg]
		if !ok {
			return types.CatalogEntry{}, fmt.Errorf("%s: %w", name, types.ErrEntryNotFound)
		}
	}

	switch leaf := node.(type) {
	case string:
		entry := r.synthesize(leaf)
		entry.LogicalPath = name
		return entry, nil
	case map[string]any:
		return r.structured(name, leaf)
	default:
		return types.CatalogEntry{}, fmt.Errorf("%s: %w", name, types.ErrEntryNotFound)
	}
}

// Entries returns every catalog leaf, sorted by logical path.
func (r *Resolver) Entries() ([]types.CatalogEntry, error) {
	names := []string{}
	collectLeaves(r.tree, "", &names)
	sort.Strings(names)

	entries := make([]types.CatalogEntry, 0, len(names))
	for _, name := range names {
		entry, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// collectLeaves walks the tree depth-first, appending the dotted name of
// every leaf. A map with a "path" key is itself a leaf.
func collectLeaves(node map[string]any, prefix string, names *[]string) {
	for key, child := range node {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := child.(type) {
		case string:
			*names = append(*names, name)
		case map[string]any:
			if _, ok := v["path"]; ok {
				*names = append(*names, name)
			} else {
				collectLeaves(v, name, names)
			}
		}
	}
}

// synthesize builds an ad-hoc entry for a raw file path: format and
// delimiter inferred from the extension, unlocked, unencrypted.
func (r *Resolver) synthesize(path string) types.CatalogEntry {
	resolved := r.resolvePath(path)
	format, delim := inferFormat(resolved)
	return types.CatalogEntry{
		FilePath:  resolved,
		Format:    format,
		Delimiter: delim,
		Private:   isPrivate(resolved),
	}
}

// structured builds an entry from a map leaf. Explicit fields override
// inference; inference only fills gaps. Unknown fields are preserved in
// Extra verbatim.
func (r *Resolver) structured(name string, leaf map[string]any) (types.CatalogEntry, error) {
	rawPath, ok := leaf["path"].(string)
	if !ok || rawPath == "" {
		return types.CatalogEntry{}, fmt.Errorf("%s: %w", name, types.ErrMissingPath)
	}

	entry := r.synthesize(rawPath)
	entry.LogicalPath = name

	if v, ok := leaf["type"].(string); ok && v != "" {
		entry.Format = types.Format(v)
	}
	if v, ok := leaf["delimiter"].(string); ok && v != "" {
		delim, err := types.ResolveDelimiter(v)
		if err != nil {
			return types.CatalogEntry{}, fmt.Errorf("%s: %w", name, err)
		}
		entry.Delimiter = delim
	}
	if v, ok := leaf["locked"].(bool); ok {
		entry.Locked = v
	}
	if v, ok := leaf["encrypted"].(bool); ok {
		entry.Encrypted = v
	}

	for key, v := range leaf {
		switch key {
		case "path", "type", "delimiter", "locked", "encrypted":
		default:
			if entry.Extra == nil {
				entry.Extra = map[string]any{}
			}
			entry.Extra[key] = v
		}
	}
	return entry, nil
}

// resolvePath anchors relative paths at the project root.
func (r *Resolver) resolvePath(path string) string {
	if filepath.IsAbs(path) || r.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(r.root, path)
}

// isPrivate reports whether the path's parent directory is named "private".
func isPrivate(path string) bool {
	return filepath.Base(filepath.Dir(path)) == "private"
}

// extFormats maps file extensions to inferred formats and delimiters.
var extFormats = map[string]struct {
	format types.Format
	delim  rune
}{
	".csv":      {types.FormatCSV, ','},
	".tsv":      {types.FormatCSV, '\t'},
	".txt":      {types.FormatCSV, '\t'},
	".dat":      {types.FormatCSV, '\t'},
	".json":     {types.FormatJSON, 0},
	".gob":      {types.FormatGob, 0},
	".xlsx":     {types.FormatExcel, 0},
	".xlsm":     {types.FormatExcel, 0},
	".dta":      {types.FormatStata, 0},
	".sas7bdat": {types.FormatSAS, 0},
	".sav":      {types.FormatSPSS, 0},
	".por":      {types.FormatSPSSPor, 0},
	".xpt":      {types.FormatSASXpt, 0},
}

// inferFormat maps a file extension to a format tag and default delimiter.
// Unknown extensions leave the format empty; the codec registry rejects
// those at parse time.
func inferFormat(path string) (types.Format, rune) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", 0
	}
	return f.format, f.delim
}
