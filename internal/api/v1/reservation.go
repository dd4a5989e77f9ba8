package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/service"
	"github.com/hotelhub/hotelhub/internal/types"
)

type ReservationHandler struct {
	reservationService service.ReservationService
	logger             *logger.Logger
}

func NewReservationHandler(reservationService service.ReservationService, logger *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		logger:             logger,
	}
}

// @Summary Create a reservation
// @Description Books a room, pricing it and redeeming the referenced coupon in one transaction
// @Tags Reservations
// @Accept json
// @Produce json
// @Param reservation body dto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.reservationService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Quote a reservation
// @Description Prices a stay without creating a reservation or touching coupons
// @Tags Reservations
// @Accept json
// @Produce json
// @Param reservation body dto.QuoteReservationRequest true "Quote request"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reservations/quote [post]
// @Security BearerAuth
func (h *ReservationHandler) QuoteReservation(c *gin.Context) {
	var req dto.QuoteReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.reservationService.QuoteReservation(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reservations/{id} [get]
// @Security BearerAuth
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	resp, err := h.reservationService.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List reservations
// @Tags Reservations
// @Produce json
// @Param filter query types.ReservationFilter false "Filter options"
// @Success 200 {object} dto.ListReservationsResponse
// @Router /reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	h.list(c, h.reservationService.ListReservations)
}

// @Summary List my reservations
// @Tags Reservations
// @Produce json
// @Param filter query types.ReservationFilter false "Filter options"
// @Success 200 {object} dto.ListReservationsResponse
// @Router /reservations/mine [get]
// @Security BearerAuth
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	h.list(c, h.reservationService.ListMyReservations)
}

func (h *ReservationHandler) list(
	c *gin.Context,
	fn func(context.Context, *types.ReservationFilter) (*dto.ListReservationsResponse, error),
) {
	filter := types.NewReservationFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := fn(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a reservation
// @Description Changes room, dates or attaches a coupon, then re-prices the reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param reservation body dto.UpdateReservationRequest true "Update request"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /reservations/{id} [put]
// @Security BearerAuth
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.reservationService.UpdateReservation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /reservations/{id}/cancel [post]
// @Security BearerAuth
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.transition(c, h.reservationService.CancelReservation)
}

// @Summary Check in a reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reservations/{id}/check-in [post]
// @Security BearerAuth
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.reservationService.CheckIn)
}

// @Summary Check out a reservation
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reservations/{id}/check-out [post]
// @Security BearerAuth
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.reservationService.CheckOut)
}

func (h *ReservationHandler) transition(
	c *gin.Context,
	fn func(context.Context, string) (*dto.ReservationResponse, error),
) {
	resp, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
