package types

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/samber/lo"
)

// UserRole is the coarse authorization level of an account
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
	UserRoleClient   UserRole = "client"
)

func (r UserRole) Validate() error {
	allowed := []UserRole{UserRoleAdmin, UserRoleEmployee, UserRoleClient}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid user role").
			WithHintf("Role must be one of %v", allowed).
			WithReportableDetails(map[string]any{"role": r}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UserFilter struct {
	*QueryFilter

	UserIDs []string  `json:"user_ids,omitempty" form:"user_ids"`
	Role    *UserRole `json:"role,omitempty" form:"role"`
	Email   string    `json:"email,omitempty" form:"email"`
}

func NewUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *UserFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Role != nil {
		return f.Role.Validate()
	}
	return nil
}
