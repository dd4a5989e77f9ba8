package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api"
	v1 "github.com/hotelhub/hotelhub/internal/api/v1"
	"github.com/hotelhub/hotelhub/internal/auth"
	"github.com/hotelhub/hotelhub/internal/cache"
	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/email"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/pubsub"
	"github.com/hotelhub/hotelhub/internal/pubsub/memory"
	pubsubRouter "github.com/hotelhub/hotelhub/internal/pubsub/router"
	"github.com/hotelhub/hotelhub/internal/repository"
	"github.com/hotelhub/hotelhub/internal/sentry"
	"github.com/hotelhub/hotelhub/internal/service"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/migrations"
	"go.uber.org/fx"
)

// @title HotelHub API
// @version 1.0
// @description Hotel reservations with coupon redemption
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.NewInMemoryCache,
			auth.NewProvider,

			// Messaging
			memory.NewPubSub,
			pubsubRouter.NewRouter,

			// Email
			email.NewEmailClient,
			email.NewEmail,
		),
		sentry.Module(),
		postgres.Module(),
	)

	// Repositories
	opts = append(opts,
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSiteRepository,
			repository.NewRoomTypeRepository,
			repository.NewRoomRepository,
			repository.NewCouponRepository,
			repository.NewCouponAssignmentRepository,
			repository.NewReservationRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewNotificationService,
			service.NewPricingService,
			service.NewUserService,
			service.NewSiteService,
			service.NewRoomService,
			service.NewCouponService,
			service.NewCouponAssignmentService,
			service.NewReservationService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			migrate,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	db postgres.IClient,
	userService service.UserService,
	siteService service.SiteService,
	roomService service.RoomService,
	couponService service.CouponService,
	assignmentService service.CouponAssignmentService,
	reservationService service.ReservationService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(db, logger),
		Auth:        v1.NewAuthHandler(userService, logger),
		User:        v1.NewUserHandler(userService, logger),
		Site:        v1.NewSiteHandler(siteService, logger),
		Room:        v1.NewRoomHandler(roomService, logger),
		Coupon:      v1.NewCouponHandler(couponService, assignmentService, logger),
		Reservation: v1.NewReservationHandler(reservationService, logger),
	}
}

// migrate applies pending schema migrations before anything serves traffic
func migrate(lc fx.Lifecycle, cfg *config.Configuration, db *postgres.DB, log *logger.Logger) {
	if !cfg.Postgres.AutoMigrate {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			applied, err := db.Migrate(ctx, migrations.Postgres())
			if err != nil {
				return err
			}
			log.Infow("database migrated", "applied", applied)
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	pubSub pubsub.PubSub,
	notificationService service.NotificationService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, pubSub, notificationService, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeConsumer:
		startMessageRouter(lc, router, pubSub, notificationService, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	pubSub pubsub.PubSub,
	notificationService service.NotificationService,
	log *logger.Logger,
) {
	router.AddNoPublishHandler(
		"coupon_assigned_email",
		types.TopicCouponAssigned,
		pubSub,
		notificationService.HandleCouponAssigned,
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(context.Background()); err != nil {
					log.Errorw("message router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return router.Close()
		},
	})
}
