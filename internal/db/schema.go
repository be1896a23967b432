package db

// SchemaVersion is the schema version this build expects. A store reporting
// any other version stops the process at startup.
const SchemaVersion = 1

// SchemaSQL is the complete schema for fresh installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(); do not hardcode CREATE TABLE statements
// in test files. Keep it in sync with the migration list in migrations.go.
const SchemaSQL = `
-- Schema version guard (see CheckVersion)
CREATE TABLE IF NOT EXISTS version (
	version INTEGER PRIMARY KEY
);

-- Commissions: one row per tracked work request. (timestamp, email) is the
-- natural key; re-ingesting the same pair is silently ignored.
CREATE TABLE IF NOT EXISTS commissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	email TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	twitch TEXT NOT NULL DEFAULT '',
	twitter TEXT NOT NULL DEFAULT '',
	discord TEXT NOT NULL DEFAULT '',
	reference_images TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	expression TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	artist_choice TEXT NOT NULL DEFAULT '',
	if_queue_is_full TEXT NOT NULL DEFAULT '',
	assigned_to TEXT,
	allow_any_artist BOOLEAN NOT NULL DEFAULT 0,
	specialty BOOLEAN NOT NULL DEFAULT 0,
	accepted BOOLEAN NOT NULL DEFAULT 0,
	hidden BOOLEAN NOT NULL DEFAULT 0,
	invoiced BOOLEAN NOT NULL DEFAULT 0,
	paid BOOLEAN NOT NULL DEFAULT 0,
	finished BOOLEAN NOT NULL DEFAULT 0,
	channel_name TEXT,
	message_id TEXT,
	counter INTEGER NOT NULL DEFAULT 0,
	UNIQUE (timestamp, email) ON CONFLICT IGNORE
);

CREATE INDEX IF NOT EXISTS idx_commissions_message_id ON commissions(message_id);
CREATE INDEX IF NOT EXISTS idx_commissions_channel ON commissions(channel_name);

-- Channels: per-channel monotonic message counter, starts at -1 so the
-- first counted send lands on 0.
CREATE TABLE IF NOT EXISTS channels (
	channel_name TEXT PRIMARY KEY,
	counter INTEGER NOT NULL DEFAULT -1
);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}
