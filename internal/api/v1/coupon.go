package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api/dto"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/service"
	"github.com/hotelhub/hotelhub/internal/types"
)

type CouponHandler struct {
	couponService     service.CouponService
	assignmentService service.CouponAssignmentService
	logger            *logger.Logger
}

func NewCouponHandler(
	couponService service.CouponService,
	assignmentService service.CouponAssignmentService,
	logger *logger.Logger,
) *CouponHandler {
	return &CouponHandler{
		couponService:     couponService,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// @Summary Create a new coupon
// @Description Creates a new coupon. A blank code is generated.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon request"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [post]
// @Security BearerAuth
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary Get a coupon by ID
// @Description Retrieves a coupon by ID
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [get]
// @Security BearerAuth
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	response, err := h.couponService.GetCoupon(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List coupons with filtering
// @Description Lists coupons with filtering
// @Tags Coupons
// @Produce json
// @Param filter query types.CouponFilter false "Filter options"
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [get]
// @Security BearerAuth
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	filter := types.NewCouponFilter()
	if !bindQuery(c, filter) {
		return
	}

	response, err := h.couponService.ListCoupons(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update a coupon
// @Description Updates the terms of a coupon. The result is re-validated.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param coupon body dto.UpdateCouponRequest true "Coupon update request"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [put]
// @Security BearerAuth
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	var req dto.UpdateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.couponService.UpdateCoupon(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Activate a coupon
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id}/activate [post]
// @Security BearerAuth
func (h *CouponHandler) ActivateCoupon(c *gin.Context) {
	h.setActive(c, true)
}

// @Summary Deactivate a coupon
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id}/deactivate [post]
// @Security BearerAuth
func (h *CouponHandler) DeactivateCoupon(c *gin.Context) {
	h.setActive(c, false)
}

func (h *CouponHandler) setActive(c *gin.Context, active bool) {
	response, err := h.couponService.SetCouponActive(c.Request.Context(), c.Param("id"), active)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a coupon
// @Description Deletes a coupon and its assignments. Reservations keep their totals.
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [delete]
// @Security BearerAuth
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	if err := h.couponService.DeleteCoupon(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "coupon deleted successfully"})
}

// @Summary Assign a coupon to recipients
// @Description Grants the coupon to every listed recipient that does not hold it yet
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body dto.AssignCouponRequest true "Recipients"
// @Success 201 {object} dto.AssignCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupons/{id}/assignments [post]
// @Security BearerAuth
func (h *CouponHandler) AssignCoupon(c *gin.Context) {
	var req dto.AssignCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.assignmentService.AssignCouponBulk(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List assignments of a coupon
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Param filter query types.CouponAssignmentFilter false "Filter options"
// @Success 200 {object} dto.ListCouponAssignmentsResponse
// @Router /coupons/{id}/assignments [get]
// @Security BearerAuth
func (h *CouponHandler) ListCouponAssignments(c *gin.Context) {
	filter := types.NewCouponAssignmentFilter()
	if !bindQuery(c, filter) {
		return
	}
	filter.CouponID = c.Param("id")

	response, err := h.assignmentService.ListCouponAssignments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Authorize or revoke an assignment
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body dto.SetAuthorizedRequest true "Authorization flag"
// @Success 200 {object} dto.CouponAssignmentResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /coupon-assignments/{id}/authorization [put]
// @Security BearerAuth
func (h *CouponHandler) SetAssignmentAuthorized(c *gin.Context) {
	var req dto.SetAuthorizedRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.assignmentService.SetAuthorized(c.Request.Context(), c.Param("id"), req.Authorized)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Validate a coupon code
// @Description Resolves a code for the caller and reports whether it could be redeemed now
// @Tags Coupons
// @Produce json
// @Param code query string true "Coupon code"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 429 {object} ierr.ErrorResponse
// @Router /coupons/validate [get]
// @Security BearerAuth
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Error(ierr.NewError("coupon code is required").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.assignmentService.ValidateCouponCode(c.Request.Context(), code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List my coupons
// @Description Lists the coupon assignments granted to the caller
// @Tags Coupons
// @Produce json
// @Success 200 {object} dto.ListCouponAssignmentsResponse
// @Router /me/coupons [get]
// @Security BearerAuth
func (h *CouponHandler) ListMyCoupons(c *gin.Context) {
	response, err := h.assignmentService.ListMyCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
