package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/jmoiron/sqlx"
)

// TracedQuerier logs every statement with its duration. Failures other
// than sql.ErrNoRows are logged at error level.
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{Querier: q, logger: logger, txID: txID}
}

// trace returns the callback that records the outcome of query
func (tq *TracedQuerier) trace(query string, args any) func(error) {
	start := time.Now()
	return func(err error) {
		fields := []any{
			"query", query,
			"args", fmt.Sprintf("%v", args),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if tq.txID != "" {
			fields = append(fields, "tx_id", tq.txID)
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			tq.logger.Errorw("query failed", append(fields, "error", err)...)
			return
		}
		tq.logger.Debugw("query", fields...)
	}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	done := tq.trace(query, args)
	res, err := tq.Querier.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

func (tq *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	done := tq.trace(query, arg)
	res, err := tq.Querier.NamedExecContext(ctx, query, arg)
	done(err)
	return res, err
}

func (tq *TracedQuerier) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	done := tq.trace(query, args)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (tq *TracedQuerier) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	done := tq.trace(query, args)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (tq *TracedQuerier) QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	done := tq.trace(query, args)
	rows, err := tq.Querier.QueryxContext(ctx, query, args...)
	done(err)
	return rows, err
}
