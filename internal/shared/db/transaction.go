// Package db carries the transaction plumbing shared by the lifecycle
// and audit repositories.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager scopes a unit of work to one database transaction.
// Every lifecycle mutation (assign, reassign, disassociate, update,
// delete) and its revision append run under a single RunInTransaction
// call.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn inside one transaction. The transaction
// handle travels in the derived context; repositories pick it up via
// GetTxFromContext. An error from fn rolls everything back, including
// any revision rows appended along the way.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTxFromContext returns the ambient transaction, or defaultDB when the
// call is not inside a RunInTransaction scope.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
