package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/service"
	"github.com/hotelhub/hotelhub/internal/types"
)

type SiteHandler struct {
	siteService service.SiteService
	logger      *logger.Logger
}

func NewSiteHandler(siteService service.SiteService, logger *logger.Logger) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
		logger:      logger,
	}
}

// @Summary Create a site
// @Tags Sites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param site body dto.CreateSiteRequest true "Site request"
// @Success 201 {object} dto.SiteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /sites [post]
func (h *SiteHandler) CreateSite(c *gin.Context) {
	var req dto.CreateSiteRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.siteService.CreateSite(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a site
// @Tags Sites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Site ID"
// @Success 200 {object} dto.SiteResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sites/{id} [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	resp, err := h.siteService.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List sites
// @Tags Sites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListSitesResponse
// @Router /sites [get]
func (h *SiteHandler) ListSites(c *gin.Context) {
	filter := types.NewDefaultQueryFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.siteService.ListSites(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create a room type
// @Tags RoomTypes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room_type body dto.CreateRoomTypeRequest true "Room type request"
// @Success 201 {object} dto.RoomTypeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /room-types [post]
func (h *SiteHandler) CreateRoomType(c *gin.Context) {
	var req dto.CreateRoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.siteService.CreateRoomType(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List room types
// @Tags RoomTypes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListRoomTypesResponse
// @Router /room-types [get]
func (h *SiteHandler) ListRoomTypes(c *gin.Context) {
	filter := types.NewDefaultQueryFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.siteService.ListRoomTypes(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
