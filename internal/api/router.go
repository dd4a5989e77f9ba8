package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/hotelhub/hotelhub/internal/api/v1"
	"github.com/hotelhub/hotelhub/internal/auth"
	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/rest/middleware"
	"github.com/hotelhub/hotelhub/internal/types"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Auth        *v1.AuthHandler
	User        *v1.UserHandler
	Site        *v1.SiteHandler
	Room        *v1.RoomHandler
	Coupon      *v1.CouponHandler
	Reservation *v1.ReservationHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, authProvider auth.Provider) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(logger),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	public := router.Group("/v1")
	public.POST("/auth/login", handlers.Auth.Login)

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(authProvider, logger))

	staff := middleware.RequireStaff()
	admin := middleware.RequireRole(types.UserRoleAdmin)
	codeLimiter := middleware.NewRateLimiter(cfg.RateLimit.CouponValidationPerMinute)

	users := private.Group("/users")
	{
		users.GET("/me", handlers.User.GetUserInfo)
		users.POST("", admin, handlers.User.CreateUser)
		users.GET("", staff, handlers.User.ListUsers)
		users.GET("/reservation-stats", admin, handlers.User.ListReservationStats)
		users.GET("/:id", handlers.User.GetUser)
	}

	sites := private.Group("/sites")
	{
		sites.POST("", admin, handlers.Site.CreateSite)
		sites.GET("", handlers.Site.ListSites)
		sites.GET("/:id", handlers.Site.GetSite)
	}

	roomTypes := private.Group("/room-types")
	{
		roomTypes.POST("", admin, handlers.Site.CreateRoomType)
		roomTypes.GET("", handlers.Site.ListRoomTypes)
	}

	rooms := private.Group("/rooms")
	{
		rooms.POST("", staff, handlers.Room.CreateRoom)
		rooms.GET("", handlers.Room.ListRooms)
		rooms.GET("/:id", handlers.Room.GetRoom)
		rooms.PUT("/:id", staff, handlers.Room.UpdateRoom)
	}

	coupons := private.Group("/coupons")
	{
		coupons.GET("/validate", codeLimiter.Middleware(), handlers.Coupon.ValidateCoupon)
		coupons.POST("", admin, handlers.Coupon.CreateCoupon)
		coupons.GET("", staff, handlers.Coupon.ListCoupons)
		coupons.GET("/:id", staff, handlers.Coupon.GetCoupon)
		coupons.PUT("/:id", admin, handlers.Coupon.UpdateCoupon)
		coupons.DELETE("/:id", admin, handlers.Coupon.DeleteCoupon)
		coupons.POST("/:id/activate", admin, handlers.Coupon.ActivateCoupon)
		coupons.POST("/:id/deactivate", admin, handlers.Coupon.DeactivateCoupon)
		coupons.POST("/:id/assignments", admin, handlers.Coupon.AssignCoupon)
		coupons.GET("/:id/assignments", admin, handlers.Coupon.ListCouponAssignments)
	}

	private.PUT("/coupon-assignments/:id/authorization", admin, handlers.Coupon.SetAssignmentAuthorized)
	private.GET("/me/coupons", handlers.Coupon.ListMyCoupons)

	reservations := private.Group("/reservations")
	{
		reservations.POST("/quote", handlers.Reservation.QuoteReservation)
		reservations.POST("", handlers.Reservation.CreateReservation)
		reservations.GET("", staff, handlers.Reservation.ListReservations)
		reservations.GET("/mine", handlers.Reservation.ListMyReservations)
		reservations.GET("/:id", handlers.Reservation.GetReservation)
		reservations.PUT("/:id", handlers.Reservation.UpdateReservation)
		reservations.POST("/:id/cancel", handlers.Reservation.CancelReservation)
		reservations.POST("/:id/check-in", staff, handlers.Reservation.CheckIn)
		reservations.POST("/:id/check-out", staff, handlers.Reservation.CheckOut)
	}

	return router
}
