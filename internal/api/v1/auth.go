package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/service"
)

type AuthHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

func NewAuthHandler(userService service.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// @Summary Login
// @Description Exchange email and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Debugw("login failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
