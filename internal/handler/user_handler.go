package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/service"
	"github.com/Torqix/aarohan-backend/pkg/middleware"
	"github.com/Torqix/aarohan-backend/pkg/response"
	"github.com/Torqix/aarohan-backend/pkg/telemetry"
)

// UserHandler handles account provisioning and profile requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Session handles POST /auth/session - provisions the account from the
// verified token on sign-in
func (h *UserHandler) Session(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "UserHandler.Session")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}
	email, _ := middleware.GetEmail(c)
	name, _ := middleware.GetName(c)

	user, err := h.userService.EnsureUser(ctx, userID, email, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromUser(user)))
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "UserHandler.Me")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromUser(user)))
}
