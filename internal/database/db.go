package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema statements are idempotent so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(40) PRIMARY KEY NOT NULL,
		password VARCHAR(60) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		id INT AUTO_INCREMENT PRIMARY KEY NOT NULL,
		user_id VARCHAR(40) NOT NULL,
		token_type VARCHAR(10) NOT NULL,
		token TEXT NOT NULL,
		is_valid BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		INDEX idx_tokens_user (user_id, token_type)
	)`,
	`CREATE TABLE IF NOT EXISTS files (
		id INT AUTO_INCREMENT PRIMARY KEY NOT NULL,
		filename VARCHAR(50) NOT NULL,
		ext VARCHAR(10) NOT NULL,
		mimetype VARCHAR(100) NOT NULL,
		size BIGINT NOT NULL,
		date DATETIME NOT NULL,
		original_name VARCHAR(150) NOT NULL
	)`,
}

// Migrate creates the application tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
