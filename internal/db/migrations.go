package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrSchemaVersion signals a store whose schema version does not match
// SchemaVersion. Fatal at startup: the process must not run against a
// mis-versioned database.
var ErrSchemaVersion = errors.New("database schema version mismatch")

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_commission_queue_schema",
		Up:      migrationV1,
	},
}

func migrationV1(conn *sql.DB) error {
	_, err := conn.Exec(SchemaSQL)
	return err
}

// currentVersion reads the stored schema version. A database without a
// version table reports 0 (fresh install).
func currentVersion(conn *sql.DB) (int, error) {
	var exists int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'version'",
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var version sql.NullInt64
	err = conn.QueryRow("SELECT MAX(version) FROM version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// Migrate applies every pending migration and records the resulting version.
func Migrate(conn *sql.DB) error {
	version, err := currentVersion(conn)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= version {
			continue
		}
		if err := m.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := conn.Exec("INSERT INTO version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// CheckVersion verifies the stored schema version matches what this build
// expects. Called once at startup before any repository is used.
func CheckVersion(conn *sql.DB) error {
	version, err := currentVersion(conn)
	if err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("%w: have %d, need %d", ErrSchemaVersion, version, SchemaVersion)
	}
	return nil
}
