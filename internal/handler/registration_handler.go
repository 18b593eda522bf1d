package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/service"
	"github.com/Torqix/aarohan-backend/pkg/middleware"
	"github.com/Torqix/aarohan-backend/pkg/response"
	"github.com/Torqix/aarohan-backend/pkg/telemetry"
)

// RegistrationHandler handles registration-related HTTP requests
type RegistrationHandler struct {
	regService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(regService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// registerResponse bundles the registration with the team it created or
// joined, so the client gets the invite code in one round trip
type registerResponse struct {
	Registration *dto.RegistrationResponse `json:"registration"`
	Team         *dto.TeamResponse         `json:"team,omitempty"`
}

// Register handles POST /events/:id/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.Register")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	reg, team, err := h.regService.Register(ctx, c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := &registerResponse{Registration: dto.FromRegistration(reg)}
	if team != nil {
		resp.Team = dto.FromTeam(team, true)
	}
	c.JSON(http.StatusCreated, response.Success(resp))
}

// ListMine handles GET /registrations - the caller's registrations
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.ListMine")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	regs, err := h.regService.ListByUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromRegistrations(regs)))
}

// GetByID handles GET /registrations/:id - owner or admin only
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.GetByID")
	defer span.End()

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	reg, err := h.regService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if reg.UserID != userID && role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, response.Forbidden(""))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromRegistration(reg)))
}

// GetTeam handles GET /teams/:id
func (h *RegistrationHandler) GetTeam(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.GetTeam")
	defer span.End()

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	team, err := h.regService.GetTeam(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	isMember := false
	for _, m := range team.Members {
		if m == userID {
			isMember = true
			break
		}
	}
	c.JSON(http.StatusOK, response.Success(dto.FromTeam(team, isMember || role == domain.RoleAdmin)))
}

// ListByEvent handles GET /admin/events/:id/registrations (admin only)
func (h *RegistrationHandler) ListByEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.ListByEvent")
	defer span.End()

	limit := 50
	offset := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	regs, total, err := h.regService.ListByEvent(ctx, c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paginated(dto.FromRegistrations(regs), offset/limit+1, limit, int64(total)))
}

// UpdateStatus handles PATCH /admin/registrations/:id/status (admin only)
func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "RegistrationHandler.UpdateStatus")
	defer span.End()

	var req dto.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Status must be approved or rejected"))
		return
	}

	reg, err := h.regService.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromRegistration(reg)))
}
