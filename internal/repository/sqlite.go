package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS facilities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			facility_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			max_capacity INTEGER NOT NULL DEFAULT 1000,
			current_load INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS facility_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			facility_id TEXT NOT NULL,
			staffing_level INTEGER NOT NULL,
			productivity_rate REAL NOT NULL,
			equipment_status TEXT NOT NULL,
			downtime_minutes INTEGER NOT NULL DEFAULT 0,
			timestamp DATETIME NOT NULL,
			FOREIGN KEY (facility_id) REFERENCES facilities(id)
		);

		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			facility_id TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			message TEXT NOT NULL,
			severity TEXT NOT NULL DEFAULT 'info',
			resolved INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (facility_id) REFERENCES facilities(id)
		);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			from_facility_id TEXT NOT NULL,
			to_facility_id TEXT NOT NULL,
			message TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'normal',
			status TEXT NOT NULL DEFAULT 'sent',
			created_at DATETIME NOT NULL,
			FOREIGN KEY (from_facility_id) REFERENCES facilities(id),
			FOREIGN KEY (to_facility_id) REFERENCES facilities(id)
		);

		CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			from_facility_id TEXT NOT NULL,
			to_facility_id TEXT NOT NULL,
			distance_miles INTEGER NOT NULL,
			estimated_time_hours REAL NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			FOREIGN KEY (from_facility_id) REFERENCES facilities(id),
			FOREIGN KEY (to_facility_id) REFERENCES facilities(id)
		);

		CREATE INDEX IF NOT EXISTS idx_metrics_facility ON facility_metrics(facility_id, timestamp);
		CREATE INDEX IF NOT EXISTS idx_alerts_facility ON alerts(facility_id);
		CREATE INDEX IF NOT EXISTS idx_alerts_resolved ON alerts(resolved, created_at);
		CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
