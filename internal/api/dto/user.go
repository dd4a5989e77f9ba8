package dto

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Email    string         `json:"email" validate:"required,email"`
	Phone    string         `json:"phone" validate:"omitempty,max=32"`
	Role     types.UserRole `json:"role" validate:"required"`
	Password string         `json:"password" validate:"required,min=8"`
}

func (r *CreateUserRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Role.Validate()
}

// ToUser builds the user without credentials; the caller sets PasswordHash
func (r *CreateUserRequest) ToUser(ctx context.Context) *user.User {
	return &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      r.Name,
		Email:     user.NormalizeEmail(r.Email),
		Phone:     r.Phone,
		Role:      r.Role,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UserResponse struct {
	*user.User
}

func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{User: u}
}

type ListUsersResponse = types.ListResponse[*UserResponse]

// UserReservationStatsResponse is one row of the per-guest reservation report
type UserReservationStatsResponse struct {
	User             *UserResponse   `json:"user"`
	ReservationCount int             `json:"reservation_count"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
}

type ListUserReservationStatsResponse struct {
	Items []*UserReservationStatsResponse `json:"items"`
}
