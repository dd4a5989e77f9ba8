package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/logger"
	sentryService "github.com/hotelhub/hotelhub/internal/sentry"
)

// SentryClient wraps the pool with a Sentry span per transaction
type SentryClient struct {
	db     *DB
	sentry *sentryService.Service
	logger *logger.Logger
}

func NewSentryClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		db:     db,
		sentry: sentry,
		logger: logger,
	}
}

func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
	})
	if span != nil {
		defer span.Finish()
	}
	return c.db.WithTx(spanCtx, fn)
}

func (c *SentryClient) Querier(ctx context.Context) Querier {
	return c.db.Querier(ctx)
}
