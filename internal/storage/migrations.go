package storage

import (
	"database/sql"
	"fmt"
)

// migrate runs all schema migrations in order; each is idempotent
func migrate(db *sql.DB) error {
	migrations := []string{
		migrationCreateSlots,
		migrationCreateMeta,
		migrationSchemaVersion,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateSlots = `
CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const migrationCreateMeta = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT
);
`

const migrationSchemaVersion = `
INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', '1');
`
