package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager runs callbacks in a transaction carried by the context, where
// repositories pick it up through QuerierFromCtx. RunInTx always begins a
// new transaction; nested units of work use RunInSavepoint.
type TxManager struct {
	db beginner
}

// NewTxManager wraps a pool (or anything that can Begin).
func NewTxManager(db beginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx runs fn in a read-committed transaction. It commits when fn
// returns nil and rolls back on an error or panic.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	return run(ctx, tx, fn, "transaction")
}

// RunInSavepoint executes fn inside a savepoint of the transaction carried
// by ctx. An error from fn rolls back to the savepoint only, leaving the
// enclosing transaction usable. Without a transaction in ctx it behaves
// like RunInTx.
func (m *TxManager) RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	parent, ok := txFromCtx(ctx)
	if !ok {
		return m.RunInTx(ctx, fn)
	}

	sp, err := parent.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}
	return run(ctx, sp, fn, "savepoint")
}

func run(ctx context.Context, tx pgx.Tx, fn func(ctx context.Context) error, kind string) error {
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback %s failed: %w (original error: %v)", kind, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", kind, err)
	}

	return nil
}
