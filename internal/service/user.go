package service

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/auth"
	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetUserInfo(ctx context.Context) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	ListReservationStats(ctx context.Context) (*dto.ListUserReservationStatsResponse, error)
}

type userService struct {
	ServiceParams
	authProvider auth.Provider
}

func NewUserService(params ServiceParams, authProvider auth.Provider) UserService {
	return &userService{
		ServiceParams: params,
		authProvider:  authProvider,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	u := req.ToUser(ctx)
	u.PasswordHash = string(hashedPassword)

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("user created", "user_id", u.ID, "role", u.Role)
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if id != types.GetUserID(ctx) && !types.IsStaff(ctx) {
		return nil, ierr.NewError("cannot read another user").
			WithHint("You can only view your own profile").
			Mark(ierr.ErrPermissionDenied)
	}

	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUserInfo(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("user ID is required").
			WithHint("Please sign in").
			Mark(ierr.ErrUnauthorized)
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	})
	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invalid := ierr.NewError("invalid credentials").
		WithHint("Invalid email or password").
		Mark(ierr.ErrUnauthorized)

	u, err := s.UserRepo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.Logger.Debugw("password mismatch", "user_id", u.ID)
		return nil, invalid
	}

	token, err := s.authProvider.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(u),
	}, nil
}

// ListReservationStats reports reservation counts and spend for every user,
// including users without reservations.
func (s *userService) ListReservationStats(ctx context.Context) (*dto.ListUserReservationStatsResponse, error) {
	users, err := s.UserRepo.List(ctx, types.NewNoLimitUserFilter())
	if err != nil {
		return nil, err
	}

	summaries, err := s.ReservationRepo.SummarizeByRecipient(ctx)
	if err != nil {
		return nil, err
	}
	byRecipient := lo.KeyBy(summaries, func(rs *reservation.RecipientSummary) string {
		return rs.RecipientID
	})

	items := make([]*dto.UserReservationStatsResponse, 0, len(users))
	for _, u := range users {
		stats := &dto.UserReservationStatsResponse{
			User:       dto.NewUserResponse(u),
			TotalSpent: decimal.Zero,
		}
		if summary, ok := byRecipient[u.ID]; ok {
			stats.ReservationCount = summary.ReservationCount
			stats.TotalSpent = summary.TotalSpent
		}
		items = append(items, stats)
	}

	return &dto.ListUserReservationStatsResponse{Items: items}, nil
}
