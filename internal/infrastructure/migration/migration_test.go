package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewManager_PicksStrategyByEnvironment(t *testing.T) {
	tests := []struct {
		environment string
		wantName    string
	}{
		{"development", "gorm_auto_migrate"},
		{"test", "golang_migrate"},
		{"production", "golang_migrate"},
		{"PRODUCTION", "golang_migrate"},
		{"staging", "gorm_auto_migrate"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			manager := NewManager(tt.environment)
			assert.Equal(t, tt.wantName, manager.GetStrategy().GetName())
		})
	}
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewGormAutoMigrateStrategy().GetName())
	assert.Equal(t, "golang_migrate", NewGolangMigrateStrategy("scripts").GetName())
	assert.Equal(t, "goose", NewGooseStrategy("scripts").GetName())
}

func TestGormAutoMigrateStrategy_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	manager := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	require.NoError(t, manager.Migrate(db, AutoMigrateModels()...))

	for _, table := range []string{"numbers", "assignments", "assignment_revisions"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := t.TempDir()

	generator := NewGenerator(filepath.Join(dir, "scripts"))
	require.NoError(t, generator.CreateMigration("add_number_labels"))

	entries, err := os.ReadDir(filepath.Join(dir, "scripts"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var up, down bool
	for _, entry := range entries {
		switch {
		case filepath.Ext(entry.Name()) != ".sql":
			t.Fatalf("unexpected file %s", entry.Name())
		case len(entry.Name()) > 7 && entry.Name()[len(entry.Name())-7:] == ".up.sql":
			up = true
		default:
			down = true
		}
	}
	assert.True(t, up)
	assert.True(t, down)
}
