package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey int

// txCtxKey carries the open *gorm.DB transaction through a request context
// so that repositories called inside RunInTx join the same transaction.
const txCtxKey ctxKey = 0

// TransactionManager runs a unit of work inside a single database
// transaction. Services use it when one operation touches several
// repositories, for example writing a quotation together with its line
// items and an audit entry.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type txManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &txManager{db: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey, tx))
	})
}

// GetDB returns the transaction bound to ctx when one is open, otherwise
// the root handle. Every repository method resolves its *gorm.DB through
// this call.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
