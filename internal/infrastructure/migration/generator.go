package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"numbers/internal/shared/logger"
)

// Generator creates new golang-migrate script pairs.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration writes an empty up and down migration file pair.
func (g *Generator) CreateMigration(name string) error {
	timestamp := time.Now().Format("20060102150405")

	upFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created at: %s\n\n", name, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(upFilePath, []byte(upContent), 0o644); err != nil {
		return fmt.Errorf("failed to create up migration file: %w", err)
	}

	downContent := fmt.Sprintf("-- Rollback: %s\n-- Created at: %s\n\n", name, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(downFilePath, []byte(downContent), 0o644); err != nil {
		return fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created",
		"up_file", upFilePath, "down_file", downFilePath)
	return nil
}
