package database

import (
	"context"
	"fmt"
	"log/slog"

	"face2geek/internal/middleware"

	"gorm.io/gorm"
)

// postgresIndexes are read-path indexes GORM tags cannot express.
var postgresIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_snippets_user_created_desc ON snippets (user_id, created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications (user_id) WHERE is_read = false`,
}

// TableStatus reports whether a model's table exists.
type TableStatus struct {
	Table  string
	Exists bool
}

// SchemaStatus summarizes the managed schema.
type SchemaStatus struct {
	Dialect string
	Tables  []TableStatus
}

// Pending returns the names of missing tables.
func (s *SchemaStatus) Pending() []string {
	var out []string
	for _, t := range s.Tables {
		if !t.Exists {
			out = append(out, t.Table)
		}
	}
	return out
}

// ApplySchema migrates every persistent model and creates dialect-specific indexes.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate", slog.String("dialect", db.Dialector.Name()))
	if err := tx.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		for _, stmt := range postgresIndexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create index: %w", err)
			}
		}
	}
	return nil
}

// GetSchemaStatus lists each managed table and whether it exists.
func GetSchemaStatus(ctx context.Context, db *gorm.DB) (*SchemaStatus, error) {
	status := &SchemaStatus{Dialect: db.Dialector.Name()}
	migrator := db.WithContext(ctx).Migrator()

	for _, model := range PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model: %w", err)
		}
		status.Tables = append(status.Tables, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: migrator.HasTable(model),
		})
	}
	return status, nil
}
