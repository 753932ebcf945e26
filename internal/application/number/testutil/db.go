package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"numbers/internal/shared/db"
)

// NewTestTxManager returns a TransactionManager over an in-memory
// database, for usecase tests whose repositories are mocks and only need
// real transaction scoping.
func NewTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}
