// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is the ticket log layout. Amounts are integer cents.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS tickets (
    order_id TEXT PRIMARY KEY,
    placed_at INTEGER NOT NULL,   -- Unix nanoseconds, UTC
    item_count INTEGER NOT NULL,
    subtotal INTEGER NOT NULL,
    surcharge INTEGER NOT NULL,
    total INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tickets_placed_at ON tickets(placed_at);

CREATE TABLE IF NOT EXISTS ticket_lines (
    order_id TEXT NOT NULL REFERENCES tickets(order_id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    item_id TEXT NOT NULL,
    name TEXT NOT NULL,
    unit_price INTEGER NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    PRIMARY KEY (order_id, position)
);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
