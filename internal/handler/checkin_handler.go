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

// CheckInHandler handles door-scan HTTP requests
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// CheckIn handles POST /admin/events/:id/checkin (admin only)
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "CheckInHandler.CheckIn")
	defer span.End()

	adminID, ok := middleware.GetUserID(c)
	if !ok || adminID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	reg, err := h.checkInService.CheckIn(ctx, c.Param("id"), req.RegistrationID, adminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromCheckIn(reg)))
}
