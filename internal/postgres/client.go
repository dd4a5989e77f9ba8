package postgres

import (
	"context"

	"go.uber.org/fx"
)

// IClient is the storage handle the repositories and services depend on
type IClient interface {
	// WithTx wraps fn in a transaction carried by the context
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// Querier returns the transaction in ctx if any, otherwise the pool
	Querier(ctx context.Context) Querier
}

var _ IClient = (*DB)(nil)

// Module provides the sqlx pool and the monitored client to fx
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewSentryClient,
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}
