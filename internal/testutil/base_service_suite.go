package testutil

import (
	"context"
	"time"

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
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo             user.Repository
	SiteRepo             site.Repository
	RoomTypeRepo         room.TypeRepository
	RoomRepo             room.Repository
	CouponRepo           coupon.Repository
	CouponAssignmentRepo couponassignment.Repository
	ReservationRepo      reservation.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	stores      Stores
	db          postgres.IClient
	logger      *logger.Logger
	config      *config.Configuration
	cache       cache.Cache
	pubSub      *InMemoryPubSub
	emailSender *MockEmailSender
	email       *email.Email
	now         time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config)
	s.pubSub = NewInMemoryPubSub()
	s.emailSender = NewMockEmailSender()
	s.email = email.NewEmail(s.emailSender, s.logger)
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
	_ = s.pubSub.Close()
}

func (s *BaseServiceTestSuite) setupStores() {
	assignments := NewInMemoryCouponAssignmentStore()
	reservations := NewInMemoryReservationStore()
	s.stores = Stores{
		UserRepo:             NewInMemoryUserStore(),
		SiteRepo:             NewInMemorySiteStore(),
		RoomTypeRepo:         NewInMemoryRoomTypeStore(),
		RoomRepo:             NewInMemoryRoomStore(),
		CouponRepo:           NewInMemoryCouponStore(assignments, reservations),
		CouponAssignmentRepo: assignments,
		ReservationRepo:      reservations,
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.SiteRepo.(*InMemorySiteStore).Clear()
	s.stores.RoomTypeRepo.(*InMemoryRoomTypeStore).Clear()
	s.stores.RoomRepo.(*InMemoryRoomStore).Clear()
	s.stores.CouponRepo.(*InMemoryCouponStore).Clear()
	s.stores.CouponAssignmentRepo.(*InMemoryCouponAssignmentStore).Clear()
	s.stores.ReservationRepo.(*InMemoryReservationStore).Clear()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext replaces the request context, e.g. to act as another user
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

func (s *BaseServiceTestSuite) GetEmail() *email.Email {
	return s.email
}

func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.emailSender
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetUUID returns a new prefixed id
func (s *BaseServiceTestSuite) GetUUID(prefix string) string {
	return types.GenerateUUIDWithPrefix(prefix)
}
