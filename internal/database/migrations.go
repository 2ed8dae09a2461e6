// internal/database/migrations.go
package database

// kv_store holds one JSON document per key, e.g. the dish catalog
// ("menu-categories") and the menu history ("menu-history").
const createTablesSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
