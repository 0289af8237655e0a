package database

import (
	"context"
	"fmt"
	"log"
)

const kvTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key VARCHAR(100) PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

// CreateTables creates the tables the store needs
func (db *DB) CreateTables(ctx context.Context) error {
	log.Println("Creating database tables...")

	if _, err := db.Pool.Exec(ctx, kvTable); err != nil {
		return fmt.Errorf("failed to create kv_store: %w", err)
	}

	log.Println("✅ All tables created successfully")
	return nil
}
