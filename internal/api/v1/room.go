package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/service"
	"github.com/hotelhub/hotelhub/internal/types"
)

type RoomHandler struct {
	roomService service.RoomService
	logger      *logger.Logger
}

func NewRoomHandler(roomService service.RoomService, logger *logger.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		logger:      logger,
	}
}

// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room body dto.CreateRoomRequest true "Room request"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.roomService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a room
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	resp, err := h.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Security BearerAuth
// @Param filter query types.RoomFilter false "Filter"
// @Success 200 {object} dto.ListRoomsResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	filter := types.NewRoomFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.roomService.ListRooms(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a room
// @Description Change the room type, nightly price or availability
// @Tags Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param room body dto.UpdateRoomRequest true "Update request"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.roomService.UpdateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
