package service

import (
	"github.com/hotelhub/hotelhub/internal/cache"
	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/email"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/pubsub"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	UserRepo             user.Repository
	SiteRepo             site.Repository
	RoomTypeRepo         room.TypeRepository
	RoomRepo             room.Repository
	CouponRepo           coupon.Repository
	CouponAssignmentRepo couponassignment.Repository
	ReservationRepo      reservation.Repository

	// Publishers
	NotificationPublisher pubsub.Publisher

	Email *email.Email
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	userRepo user.Repository,
	siteRepo site.Repository,
	roomTypeRepo room.TypeRepository,
	roomRepo room.Repository,
	couponRepo coupon.Repository,
	couponAssignmentRepo couponassignment.Repository,
	reservationRepo reservation.Repository,
	notificationPublisher pubsub.PubSub,
	email *email.Email,
) ServiceParams {
	return ServiceParams{
		Logger:                logger,
		Config:                config,
		DB:                    db,
		Cache:                 cache,
		UserRepo:              userRepo,
		SiteRepo:              siteRepo,
		RoomTypeRepo:          roomTypeRepo,
		RoomRepo:              roomRepo,
		CouponRepo:            couponRepo,
		CouponAssignmentRepo:  couponAssignmentRepo,
		ReservationRepo:       reservationRepo,
		NotificationPublisher: notificationPublisher,
		Email:                 email,
	}
}
