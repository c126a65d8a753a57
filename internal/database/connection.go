package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. PostgreSQL is used when
// DATABASE_URL is set, otherwise a local SQLite file.
func Connect() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vocadrill.db")
	if p := os.Getenv("DB_PATH"); p != "" {
		dbPath = p
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// ConnectInMemory opens a throwaway in-memory SQLite database. Used by tests.
func ConnectInMemory() error {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open in-memory database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	db.SetMaxOpenConns(1)
	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// schemaStatements returns the CREATE TABLE statements for the given driver.
// SQLite and PostgreSQL disagree on auto-incremented keys, so the surrogate
// key column is generated per driver.
func schemaStatements(driver string) []string {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				email TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS units (
				id %s,
				user_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)
		`, serial),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				unit_id INTEGER NOT NULL,
				en TEXT NOT NULL,
				ru TEXT NOT NULL,
				FOREIGN KEY (unit_id) REFERENCES units(id)
			)
		`, serial),
		// One practice session per user: user_id is the primary key, so a
		// second create for the same owner hits the uniqueness constraint
		// instead of silently racing.
		`
			CREATE TABLE IF NOT EXISTS sessions (
				user_id INTEGER PRIMARY KEY,
				id TEXT NOT NULL,
				unit_ids TEXT NOT NULL,
				queue_json TEXT NOT NULL,
				total INTEGER NOT NULL,
				done INTEGER NOT NULL DEFAULT 0,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)
		`,
	}
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	for _, stmt := range schemaStatements(DB.DriverName()) {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
