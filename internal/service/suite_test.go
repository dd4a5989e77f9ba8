package service

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/auth"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/testutil"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// hotelSuite wires every service over the in-memory stores and seeds a
// small hotel: one room at 100 per night, two guests and a receptionist.
type hotelSuite struct {
	testutil.BaseServiceTestSuite
	params       ServiceParams
	pricing      PricingService
	coupons      CouponService
	ledger       CouponAssignmentService
	notification NotificationService
	reservations ReservationService
	users        UserService
	rooms        RoomService
	sites        SiteService
	testData     struct {
		guest   *user.User
		other   *user.User
		staff   *user.User
		site    *site.Site
		roomTyp *room.RoomType
		room    *room.Room
	}
}

func (s *hotelSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:                s.GetLogger(),
		Config:                s.GetConfig(),
		DB:                    s.GetDB(),
		Cache:                 s.GetCache(),
		UserRepo:              stores.UserRepo,
		SiteRepo:              stores.SiteRepo,
		RoomTypeRepo:          stores.RoomTypeRepo,
		RoomRepo:              stores.RoomRepo,
		CouponRepo:            stores.CouponRepo,
		CouponAssignmentRepo:  stores.CouponAssignmentRepo,
		ReservationRepo:       stores.ReservationRepo,
		NotificationPublisher: s.GetPubSub(),
		Email:                 s.GetEmail(),
	}

	s.pricing = NewPricingService(s.params)
	s.coupons = NewCouponService(s.params)
	s.notification = NewNotificationService(s.params)
	s.ledger = NewCouponAssignmentService(s.params, s.notification)
	s.reservations = NewReservationService(s.params, s.pricing, s.ledger)
	s.users = NewUserService(s.params, auth.NewProvider(s.GetConfig()))
	s.rooms = NewRoomService(s.params)
	s.sites = NewSiteService(s.params)

	s.setupTestData()
}

func (s *hotelSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.guest = s.createUser("Ada Guest", "ada@example.com", types.UserRoleClient)
	s.testData.other = s.createUser("Bo Guest", "bo@example.com", types.UserRoleClient)
	s.testData.staff = s.createUser("Cy Desk", "cy@example.com", types.UserRoleEmployee)

	s.testData.site = &site.Site{
		ID:        s.GetUUID(types.UUID_PREFIX_SITE),
		Name:      "Harbour",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().SiteRepo.Create(ctx, s.testData.site))

	s.testData.roomTyp = &room.RoomType{
		ID:        s.GetUUID(types.UUID_PREFIX_ROOM_TYPE),
		Name:      "Double",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().RoomTypeRepo.Create(ctx, s.testData.roomTyp))

	s.testData.room = s.createRoom("101", decimal.NewFromInt(100), types.RoomAvailable)
}

func (s *hotelSuite) createUser(name, email string, role types.UserRole) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)

	u := &user.User{
		ID:           s.GetUUID(types.UUID_PREFIX_USER),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	return u
}

func (s *hotelSuite) createRoom(number string, price decimal.Decimal, availability types.RoomAvailability) *room.Room {
	rm := &room.Room{
		ID:           s.GetUUID(types.UUID_PREFIX_ROOM),
		Number:       number,
		SiteID:       s.testData.site.ID,
		RoomTypeID:   s.testData.roomTyp.ID,
		NightlyPrice: price,
		Availability: availability,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().RoomRepo.Create(s.GetContext(), rm))
	return rm
}

// createCoupon stores a coupon directly so tests can use windows in the past
func (s *hotelSuite) createCoupon(code string, kind types.DiscountType, value int64, start, end time.Time, maxUses int) *coupon.Coupon {
	c := &coupon.Coupon{
		ID:           s.GetUUID(types.UUID_PREFIX_COUPON),
		Code:         code,
		DiscountType: kind,
		Value:        decimal.NewFromInt(value),
		StartDate:    start,
		EndDate:      end,
		MaxUses:      maxUses,
		Active:       true,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().CouponRepo.Create(s.GetContext(), c))
	return c
}

// validCoupon is valid from yesterday for thirty days
func (s *hotelSuite) validCoupon(code string, kind types.DiscountType, value int64, maxUses int) *coupon.Coupon {
	now := s.GetNow()
	return s.createCoupon(code, kind, value, now.AddDate(0, 0, -1), now.AddDate(0, 0, 30), maxUses)
}

func (s *hotelSuite) as(u *user.User) context.Context {
	return testutil.ContextAs(u.ID, u.Role)
}

// stay returns check-in and check-out dates nights apart, starting next week
func (s *hotelSuite) stay(nights int) (time.Time, time.Time) {
	checkIn := types.ToDate(s.GetNow().AddDate(0, 0, 7))
	return checkIn, checkIn.AddDate(0, 0, nights)
}
