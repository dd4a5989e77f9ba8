package repository

import (
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	postgresRepo "github.com/hotelhub/hotelhub/internal/repository/postgres"
)

func NewUserRepository(client postgres.IClient, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(client, logger)
}

func NewSiteRepository(client postgres.IClient, logger *logger.Logger) site.Repository {
	return postgresRepo.NewSiteRepository(client, logger)
}

func NewRoomTypeRepository(client postgres.IClient, logger *logger.Logger) room.TypeRepository {
	return postgresRepo.NewRoomTypeRepository(client, logger)
}

func NewRoomRepository(client postgres.IClient, logger *logger.Logger) room.Repository {
	return postgresRepo.NewRoomRepository(client, logger)
}

func NewCouponRepository(client postgres.IClient, logger *logger.Logger) coupon.Repository {
	return postgresRepo.NewCouponRepository(client, logger)
}

func NewCouponAssignmentRepository(client postgres.IClient, logger *logger.Logger) couponassignment.Repository {
	return postgresRepo.NewCouponAssignmentRepository(client, logger)
}

func NewReservationRepository(client postgres.IClient, logger *logger.Logger) reservation.Repository {
	return postgresRepo.NewReservationRepository(client, logger)
}
