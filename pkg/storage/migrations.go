package storage

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	// Migration 1: Initial schema
	`CREATE TABLE IF NOT EXISTS vehicles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		unit_number TEXT NOT NULL DEFAULT '',
		station     TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS inventory_items (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		item_code    TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		min_quantity INTEGER NOT NULL DEFAULT 0,
		consumable   INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS maintenance_schedules (
		id             TEXT PRIMARY KEY,
		kind           TEXT NOT NULL CHECK(kind IN ('periodic_maintenance', 'replacement', 'certification', 'inspection')),
		item_id        TEXT REFERENCES inventory_items(id),
		vehicle_id     TEXT REFERENCES vehicles(id),
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		interval_type  TEXT NOT NULL CHECK(interval_type IN ('months', 'years', 'hours', 'miles')),
		interval_value INTEGER NOT NULL,
		cost_estimate  REAL NOT NULL DEFAULT 0.0,
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_item ON maintenance_schedules(item_id);
	CREATE INDEX IF NOT EXISTS idx_schedules_vehicle ON maintenance_schedules(vehicle_id);

	CREATE TABLE IF NOT EXISTS maintenance_records (
		id             TEXT PRIMARY KEY,
		schedule_id    TEXT REFERENCES maintenance_schedules(id),
		item_id        TEXT REFERENCES inventory_items(id),
		vehicle_id     TEXT REFERENCES vehicles(id),
		work_type      TEXT NOT NULL,
		performed_by   TEXT NOT NULL DEFAULT '',
		performed_date DATETIME NOT NULL,
		next_due_date  DATETIME,
		completed      INTEGER NOT NULL DEFAULT 1,
		cost           REAL NOT NULL DEFAULT 0.0,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_schedule ON maintenance_records(schedule_id);
	CREATE INDEX IF NOT EXISTS idx_records_performed ON maintenance_records(performed_date);

	CREATE TABLE IF NOT EXISTS item_certifications (
		id                 TEXT PRIMARY KEY,
		item_id            TEXT NOT NULL REFERENCES inventory_items(id),
		location           TEXT NOT NULL DEFAULT '',
		certification_type TEXT NOT NULL,
		certification_date DATETIME NOT NULL,
		expiration_date    DATETIME NOT NULL,
		agency             TEXT NOT NULL DEFAULT '',
		certificate_number TEXT NOT NULL DEFAULT '',
		passed             INTEGER NOT NULL DEFAULT 1,
		notes              TEXT NOT NULL DEFAULT '',
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_certifications_item ON item_certifications(item_id);
	CREATE INDEX IF NOT EXISTS idx_certifications_expiration ON item_certifications(expiration_date);

	CREATE TABLE IF NOT EXISTS stock_levels (
		item_id    TEXT NOT NULL REFERENCES inventory_items(id),
		location   TEXT NOT NULL,
		quantity   INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (item_id, location)
	);

	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// runMigrations applies pending schema migrations.
func runMigrations(db *sql.DB) error {
	// Ensure migration tracking table exists
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for i := currentVersion; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
