package testutil

import (
	"context"
	"sync"

	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

type mockTxKey struct{}

// MockPostgresClient stands in for the database in service tests. Top-level
// transactions run one at a time, which gives the in-memory stores the same
// serialization the row locks give in postgres. Nothing is rolled back.
type MockPostgresClient struct {
	mu     sync.Mutex
	logger *logger.Logger
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx runs fn, holding the client lock unless ctx is already inside a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(mockTxKey{}) != nil {
		return fn(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(context.WithValue(ctx, mockTxKey{}, true))
}

// Querier is never used by the in-memory stores
func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}
