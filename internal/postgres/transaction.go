package postgres

import (
	"context"
	"database/sql"
	"fmt"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Tx is a transaction carried through the context. Each nested level opens
// a savepoint named after its depth.
type Tx struct {
	*sqlx.Tx
	ID    string
	depth int
}

func (tx *Tx) savepoint() string {
	return fmt.Sprintf("sp_%d", tx.depth)
}

// GetTx returns the transaction carried by ctx
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// BeginTx starts a read-committed transaction, or a savepoint if ctx is
// already inside one. Row locks taken with FOR UPDATE make this enough for
// the coupon ledger.
func (db *DB) BeginTx(ctx context.Context) (context.Context, *Tx, error) {
	if tx, ok := GetTx(ctx); ok {
		tx.depth++
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+tx.savepoint()); err != nil {
			tx.depth--
			return ctx, nil, ierr.WithError(err).WithHint("Could not start transaction").Mark(ierr.ErrDatabase)
		}
		db.logger.Debugw("savepoint opened", "tx_id", tx.ID, "depth", tx.depth)
		return ctx, tx, nil
	}

	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return ctx, nil, ierr.WithError(err).WithHint("Could not start transaction").Mark(ierr.ErrDatabase)
	}
	tx := &Tx{Tx: sqlxTx, ID: types.GenerateUUID()}
	db.logger.Debugw("transaction opened", "tx_id", tx.ID)
	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

// CommitTx commits the innermost level of the transaction in ctx
func (db *DB) CommitTx(ctx context.Context) error {
	return db.finish(ctx, "RELEASE SAVEPOINT ", (*sqlx.Tx).Commit)
}

// RollbackTx undoes the innermost level of the transaction in ctx
func (db *DB) RollbackTx(ctx context.Context) error {
	return db.finish(ctx, "ROLLBACK TO SAVEPOINT ", (*sqlx.Tx).Rollback)
}

func (db *DB) finish(ctx context.Context, savepointStmt string, end func(*sqlx.Tx) error) error {
	tx, ok := GetTx(ctx)
	if !ok {
		return ierr.NewError("no transaction in context").Mark(ierr.ErrSystem)
	}

	if tx.depth > 0 {
		if _, err := tx.ExecContext(ctx, savepointStmt+tx.savepoint()); err != nil {
			return ierr.WithError(err).WithMessage(savepointStmt + tx.savepoint()).Mark(ierr.ErrDatabase)
		}
		tx.depth--
		return nil
	}

	if err := end(tx.Tx); err != nil {
		return ierr.WithError(err).WithMessage("finishing transaction " + tx.ID).Mark(ierr.ErrDatabase)
	}
	db.logger.Debugw("transaction closed", "tx_id", tx.ID)
	return nil
}

// WithTx runs fn in a transaction, committing when it returns nil. Inside
// an outer WithTx a failing fn only rolls back its own savepoint.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic inside transaction", "tx_id", tx.ID, "panic", r)
			_ = db.RollbackTx(ctx)
			panic(r)
		}
	}()

	if err = fn(ctx); err != nil {
		if rbErr := db.RollbackTx(ctx); rbErr != nil {
			db.logger.Errorw("rollback failed", "tx_id", tx.ID, "error", rbErr)
		}
		return err
	}
	return db.CommitTx(ctx)
}
