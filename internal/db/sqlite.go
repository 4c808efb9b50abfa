package db

import (
	"database/sql"
	"fmt"

	"daily-planner-go/pkg/logger"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// NewSQLite opens the device-local database and creates the preferences table.
func NewSQLite(path string, log logger.Logger) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection keeps :memory: databases shared and serializes writes.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if err := migrateSQLite(conn); err != nil {
		conn.Close()
		return nil, err
	}

	log.Info("db: connected", "driver", "sqlite", "path", path)
	return conn, nil
}

func migrateSQLite(conn *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := conn.Exec(m); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}
