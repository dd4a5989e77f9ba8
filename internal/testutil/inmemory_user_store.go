package testutil

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	email := user.NormalizeEmail(u.Email)
	err := s.InMemoryStore.CreateUnique(ctx, u.ID, clone(u), func(existing *user.User) bool {
		return user.NormalizeEmail(existing.Email) == email
	})
	return withHint(err, "A user with this email already exists")
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("user", id)
	}
	return clone(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	u, ok := s.InMemoryStore.Find(ctx, func(u *user.User) bool {
		return user.NormalizeEmail(u.Email) == email && u.Status == types.StatusPublished
	})
	if !ok {
		return nil, notFound("user", email)
	}
	return clone(u), nil
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter.QueryFilter, userMatcher(filter), func(a, b *user.User) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	return s.InMemoryStore.Count(ctx, userMatcher(filter))
}

func userMatcher(filter *types.UserFilter) MatchFunc[*user.User] {
	return func(u *user.User) bool {
		if !matchesStatus(filter.QueryFilter, u.Status) {
			return false
		}
		if len(filter.UserIDs) > 0 && !lo.Contains(filter.UserIDs, u.ID) {
			return false
		}
		if filter.Role != nil && u.Role != *filter.Role {
			return false
		}
		if filter.Email != "" && user.NormalizeEmail(u.Email) != user.NormalizeEmail(filter.Email) {
			return false
		}
		return true
	}
}
