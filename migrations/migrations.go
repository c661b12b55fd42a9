package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

var mysqlTables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(50) NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id CHAR(36) PRIMARY KEY,
		user_id INT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);`,
}

var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS tasks (
		task_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id)
	);`,
}

// AutoMigrate creates the users, tasks and sessions tables if they do not exist.
// Each statement is retried up to retries times while the database warms up.
func AutoMigrate(driver string, retries int, db *sql.DB) error {
	var tables []string
	switch driver {
	case "mysql":
		tables = mysqlTables
	case "sqlite3":
		tables = sqliteTables
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, query := range tables {
		_, err := db.Exec(query)
		// Retry creating the table
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}
