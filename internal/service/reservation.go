package service

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ReservationService owns the reservation lifecycle. Every save re-prices the
// reservation in the same transaction that persists it.
type ReservationService interface {
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	// QuoteReservation prices a stay without writing anything
	QuoteReservation(ctx context.Context, req dto.QuoteReservationRequest) (*dto.QuoteResponse, error)
	GetReservation(ctx context.Context, id string) (*dto.ReservationResponse, error)
	ListReservations(ctx context.Context, filter *types.ReservationFilter) (*dto.ListReservationsResponse, error)
	ListMyReservations(ctx context.Context, filter *types.ReservationFilter) (*dto.ListReservationsResponse, error)
	UpdateReservation(ctx context.Context, id string, req dto.UpdateReservationRequest) (*dto.ReservationResponse, error)
	// CancelReservation is allowed for the owner of a pending reservation only
	CancelReservation(ctx context.Context, id string) (*dto.ReservationResponse, error)
	CheckIn(ctx context.Context, id string) (*dto.ReservationResponse, error)
	CheckOut(ctx context.Context, id string) (*dto.ReservationResponse, error)
}

type reservationService struct {
	ServiceParams
	pricing PricingService
	ledger  CouponAssignmentService
}

func NewReservationService(params ServiceParams, pricing PricingService, ledger CouponAssignmentService) ReservationService {
	return &reservationService{
		ServiceParams: params,
		pricing:       pricing,
		ledger:        ledger,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipientID, err := s.resolveRecipient(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	res := &reservation.Reservation{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RESERVATION),
		RecipientID:       recipientID,
		RoomID:            req.RoomID,
		CheckIn:           types.ToDate(req.CheckIn),
		CheckOut:          types.ToDate(req.CheckOut),
		ReservationStatus: types.ReservationStatusPending,
		GrossTotal:        decimal.Zero,
		DiscountAmount:    decimal.Zero,
		NetTotal:          decimal.Zero,
		Eligibility:       types.EligibilityNoCoupon,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		rm, err := getCachedRoom(txCtx, s.ServiceParams, res.RoomID)
		if err != nil {
			return err
		}
		if !rm.IsAvailable() {
			return ierr.NewError("room is not available").
				WithHintf("Room %s is not available for booking", rm.Number).
				WithReportableDetails(map[string]any{"room_id": rm.ID}).
				Mark(ierr.ErrInvalidOperation)
		}

		c, a, err := s.resolveCoupon(txCtx, recipientID, req.CouponCode, req.CouponAssignmentID, true)
		if err != nil {
			return err
		}
		if c != nil {
			res.CouponID = lo.ToPtr(c.ID)
		}
		if a != nil {
			res.CouponAssignmentID = lo.ToPtr(a.ID)
		}

		// the row must exist before the ledger can point at it
		if err := s.ReservationRepo.Create(txCtx, res); err != nil {
			return err
		}
		return s.save(txCtx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("reservation created",
		"reservation_id", res.ID,
		"recipient_id", res.RecipientID,
		"room_id", res.RoomID,
		"net_total", res.NetTotal.String(),
		"outcome", res.Eligibility,
	)
	return dto.NewReservationResponse(res), nil
}

func (s *reservationService) QuoteReservation(ctx context.Context, req dto.QuoteReservationRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipientID, err := s.resolveRecipient(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	if _, err := s.UserRepo.Get(ctx, recipientID); err != nil {
		return nil, err
	}
	rm, err := getCachedRoom(ctx, s.ServiceParams, req.RoomID)
	if err != nil {
		return nil, err
	}

	c, a, err := s.resolveCoupon(ctx, recipientID, req.CouponCode, req.CouponAssignmentID, false)
	if err != nil {
		return nil, err
	}
	consumed, err := s.countConsumed(ctx, c)
	if err != nil {
		return nil, err
	}

	result, err := s.pricing.Quote(PricingInput{
		Stay: StayDraft{
			RecipientID:  recipientID,
			CheckIn:      types.ToDate(req.CheckIn),
			CheckOut:     types.ToDate(req.CheckOut),
			NightlyPrice: rm.NightlyPrice,
		},
		Coupon:        c,
		Assignment:    a,
		ConsumedCount: consumed,
		Now:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.QuoteResponse{
		RoomID:            rm.ID,
		RecipientID:       recipientID,
		Nights:            result.Nights,
		NightlyPrice:      rm.NightlyPrice,
		GrossTotal:        result.Gross,
		DiscountAmount:    result.Discount,
		NetTotal:          result.Net,
		Eligibility:       result.Eligibility,
		EligibilityReason: result.Reason,
	}
	if c != nil {
		resp.CouponID = lo.ToPtr(c.ID)
	}
	if a != nil && a.ID != "" {
		resp.CouponAssignmentID = lo.ToPtr(a.ID)
	}
	return resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	res, err := s.getAccessible(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewReservationResponse(res), nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter *types.ReservationFilter) (*dto.ListReservationsResponse, error) {
	if filter == nil {
		filter = types.NewReservationFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reservations, err := s.ReservationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.ReservationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(reservations, func(r *reservation.Reservation, _ int) *dto.ReservationResponse {
		return dto.NewReservationResponse(r)
	})
	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *reservationService) ListMyReservations(ctx context.Context, filter *types.ReservationFilter) (*dto.ListReservationsResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("user ID is required").
			WithHint("Please sign in").
			Mark(ierr.ErrUnauthorized)
	}

	if filter == nil {
		filter = types.NewReservationFilter()
	}
	filter.RecipientID = userID
	return s.ListReservations(ctx, filter)
}

func (s *reservationService) UpdateReservation(ctx context.Context, id string, req dto.UpdateReservationRequest) (*dto.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var res *reservation.Reservation
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.getAccessible(txCtx, id)
		if err != nil {
			return err
		}
		if res.ReservationStatus != types.ReservationStatusPending {
			return ierr.NewError("only pending reservations can be modified").
				WithHintf("Reservation is %s and can no longer be modified", res.ReservationStatus).
				WithReportableDetails(map[string]any{
					"reservation_id": res.ID,
					"status":         res.ReservationStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		if req.RoomID != nil && *req.RoomID != res.RoomID {
			rm, err := getCachedRoom(txCtx, s.ServiceParams, *req.RoomID)
			if err != nil {
				return err
			}
			if !rm.IsAvailable() {
				return ierr.NewError("room is not available").
					WithHintf("Room %s is not available for booking", rm.Number).
					WithReportableDetails(map[string]any{"room_id": rm.ID}).
					Mark(ierr.ErrInvalidOperation)
			}
			res.RoomID = rm.ID
		}
		if req.CheckIn != nil {
			res.CheckIn = types.ToDate(*req.CheckIn)
		}
		if req.CheckOut != nil {
			res.CheckOut = types.ToDate(*req.CheckOut)
		}

		if req.CouponCode != nil && *req.CouponCode != "" {
			if res.HasCoupon() {
				return ierr.NewError("reservation already references a coupon").
					WithHint("A coupon is already attached to this reservation").
					WithReportableDetails(map[string]any{"reservation_id": res.ID}).
					Mark(ierr.ErrInvalidOperation)
			}
			c, a, err := s.resolveCoupon(txCtx, res.RecipientID, *req.CouponCode, "", true)
			if err != nil {
				return err
			}
			res.CouponID = lo.ToPtr(c.ID)
			res.CouponAssignmentID = lo.ToPtr(a.ID)
		}

		return s.save(txCtx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("reservation updated",
		"reservation_id", res.ID,
		"net_total", res.NetTotal.String(),
		"outcome", res.Eligibility,
	)
	return dto.NewReservationResponse(res), nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	return s.transition(ctx, id, types.ReservationStatusCancelled, func(res *reservation.Reservation) error {
		if res.RecipientID != types.GetUserID(ctx) {
			return ierr.NewError("only the guest can cancel a reservation").
				WithHint("You can only cancel your own reservations").
				WithReportableDetails(map[string]any{"reservation_id": res.ID}).
				Mark(ierr.ErrPermissionDenied)
		}
		return nil
	})
}

func (s *reservationService) CheckIn(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	return s.transition(ctx, id, types.ReservationStatusCheckedIn, requireStaff(ctx))
}

func (s *reservationService) CheckOut(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	return s.transition(ctx, id, types.ReservationStatusCheckedOut, requireStaff(ctx))
}

func requireStaff(ctx context.Context) func(*reservation.Reservation) error {
	return func(res *reservation.Reservation) error {
		if !types.IsStaff(ctx) {
			return ierr.NewError("staff role required").
				WithHint("Only hotel staff can check guests in or out").
				WithReportableDetails(map[string]any{"reservation_id": res.ID}).
				Mark(ierr.ErrPermissionDenied)
		}
		return nil
	}
}

func (s *reservationService) transition(
	ctx context.Context,
	id string,
	next types.ReservationStatus,
	authorize func(*reservation.Reservation) error,
) (*dto.ReservationResponse, error) {
	var res *reservation.Reservation
	var from types.ReservationStatus
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.ReservationRepo.Get(txCtx, id)
		if err != nil {
			return err
		}
		if err := authorize(res); err != nil {
			return err
		}

		from = res.ReservationStatus
		if err := res.TransitionTo(next); err != nil {
			return err
		}
		if next == types.ReservationStatusCancelled {
			if err := s.releaseUnusedCoupon(txCtx, res); err != nil {
				return err
			}
		}
		return s.save(txCtx, res)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("reservation status changed",
		"reservation_id", res.ID,
		"from", from,
		"to", next,
	)
	return dto.NewReservationResponse(res), nil
}

// releaseUnusedCoupon drops a coupon reference the reservation never
// redeemed, so that cancelling cannot consume it.
func (s *reservationService) releaseUnusedCoupon(ctx context.Context, res *reservation.Reservation) error {
	if res.CouponAssignmentID == nil {
		res.CouponID = nil
		return nil
	}

	a, err := s.CouponAssignmentRepo.Get(ctx, *res.CouponAssignmentID)
	if err != nil {
		return err
	}
	if !a.ConsumedBy(res.ID) {
		res.CouponID = nil
		res.CouponAssignmentID = nil
	}
	return nil
}

// save re-prices res and persists it. It must be called inside a transaction
// and after res has been inserted.
func (s *reservationService) save(ctx context.Context, res *reservation.Reservation) error {
	if _, err := s.UserRepo.Get(ctx, res.RecipientID); err != nil {
		return err
	}
	rm, err := getCachedRoom(ctx, s.ServiceParams, res.RoomID)
	if err != nil {
		return err
	}

	input, err := s.pricingInput(ctx, res, rm)
	if err != nil {
		return err
	}

	result, err := s.pricing.PriceAndRedeem(ctx, input)
	if err != nil {
		return err
	}

	res.Nights = result.Nights
	res.GrossTotal = result.Gross
	res.DiscountAmount = result.Discount
	res.NetTotal = result.Net
	res.Eligibility = result.Eligibility
	res.EligibilityReason = result.Reason
	res.UpdatedAt = time.Now().UTC()
	res.UpdatedBy = types.GetUserID(ctx)

	return s.ReservationRepo.Update(ctx, res)
}

// pricingInput loads the referenced coupon and assignment with row locks,
// coupon first, so that consumption and budget checks are serialized.
func (s *reservationService) pricingInput(ctx context.Context, res *reservation.Reservation, rm *room.Room) (PricingInput, error) {
	input := PricingInput{
		Stay: StayDraft{
			ReservationID: res.ID,
			RecipientID:   res.RecipientID,
			CheckIn:       res.CheckIn,
			CheckOut:      res.CheckOut,
			NightlyPrice:  rm.NightlyPrice,
		},
		Now: time.Now().UTC(),
	}

	if res.CouponID != nil {
		c, err := s.CouponRepo.GetForUpdate(ctx, *res.CouponID)
		if err != nil {
			return input, err
		}
		consumed, err := s.countConsumed(ctx, c)
		if err != nil {
			return input, err
		}
		input.Coupon = c
		input.ConsumedCount = consumed
	}

	if res.CouponAssignmentID != nil {
		a, err := s.CouponAssignmentRepo.GetForUpdate(ctx, *res.CouponAssignmentID)
		if err != nil {
			return input, err
		}
		input.Assignment = a
	}

	return input, nil
}

// resolveCoupon turns a code and/or an assignment id into the coupon and
// assignment to price with. A code alone resolves the recipient's own
// assignment, created on first use unless persist is false.
func (s *reservationService) resolveCoupon(
	ctx context.Context,
	recipientID, code, assignmentID string,
	persist bool,
) (*coupon.Coupon, *couponassignment.CouponAssignment, error) {
	var c *coupon.Coupon
	var a *couponassignment.CouponAssignment
	var err error

	if code != "" {
		c, err = s.CouponRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, nil, err
		}
	}

	switch {
	case assignmentID != "":
		a, err = s.CouponAssignmentRepo.Get(ctx, assignmentID)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			c, err = s.CouponRepo.Get(ctx, a.CouponID)
			if err != nil {
				return nil, nil, err
			}
		}
	case c != nil && persist:
		a, err = s.ledger.GetOrCreate(ctx, c.ID, recipientID)
		if err != nil {
			return nil, nil, err
		}
	case c != nil:
		a, err = s.CouponAssignmentRepo.GetByPair(ctx, c.ID, recipientID)
		if ierr.IsNotFound(err) {
			// preview of the grant a booking would create, never stored
			a, err = couponassignment.New(c.ID, recipientID, types.GetDefaultBaseModel(ctx)), nil
			a.ID = ""
		}
		if err != nil {
			return nil, nil, err
		}
	}

	return c, a, nil
}

func (s *reservationService) countConsumed(ctx context.Context, c *coupon.Coupon) (int, error) {
	if c == nil {
		return 0, nil
	}
	return s.CouponAssignmentRepo.CountConsumed(ctx, c.ID)
}

func (s *reservationService) resolveRecipient(ctx context.Context, requested string) (string, error) {
	caller := types.GetUserID(ctx)
	if caller == "" {
		return "", ierr.NewError("user ID is required").
			WithHint("Please sign in").
			Mark(ierr.ErrUnauthorized)
	}
	if requested == "" || requested == caller {
		return caller, nil
	}
	if !types.IsStaff(ctx) {
		return "", ierr.NewError("cannot book for another guest").
			WithHint("Only staff can book on behalf of another guest").
			WithReportableDetails(map[string]any{"recipient_id": requested}).
			Mark(ierr.ErrPermissionDenied)
	}
	return requested, nil
}

// getAccessible loads a reservation visible to the caller: staff see all,
// guests only their own.
func (s *reservationService) getAccessible(ctx context.Context, id string) (*reservation.Reservation, error) {
	if id == "" {
		return nil, ierr.NewError("reservation_id is required").
			WithHint("Reservation ID is required").
			Mark(ierr.ErrValidation)
	}

	res, err := s.ReservationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !types.IsStaff(ctx) && res.RecipientID != types.GetUserID(ctx) {
		return nil, ierr.NewError("reservation belongs to another guest").
			WithHint("Reservation not found").
			WithReportableDetails(map[string]any{"reservation_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return res, nil
}
