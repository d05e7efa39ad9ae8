// Package metastore implements the SQLite metadata store backing the data
// catalog and the cache engine. It holds three small tables: generic
// key/value metadata, integrity records for data entries, and integrity
// records for cache entries.
package metastore

// Schema DDL. Timestamps are RFC3339 TEXT; expire_at NULL means no expiry.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createData = `CREATE TABLE IF NOT EXISTS data (
    name TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    encrypted INTEGER NOT NULL DEFAULT 0,
    last_read_at TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createCache = `CREATE TABLE IF NOT EXISTS cache (
    name TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    expire_at TEXT,
    last_read_at TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createMeta,
	createData,
	createCache,
}

// Meta keys seeded on Init.
const (
	metaKeySchemaVersion = "schema_version"
	metaKeyStoreID       = "store_id"

	schemaVersion = "1"
)
