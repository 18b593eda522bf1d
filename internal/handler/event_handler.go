package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/service"
	"github.com/Torqix/aarohan-backend/pkg/response"
	"github.com/Torqix/aarohan-backend/pkg/telemetry"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /events - browse events with optional filters
func (h *EventHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "EventHandler.List")
	defer span.End()

	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	events, total, err := h.eventService.List(ctx, &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(dto.FromEvents(events), query.Page, query.PerPage, int64(total)))
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "EventHandler.GetByID")
	defer span.End()

	event, err := h.eventService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromEvent(event)))
}

// Create handles POST /admin/events (admin only)
func (h *EventHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "EventHandler.Create")
	defer span.End()

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	event, err := h.eventService.Create(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.FromEvent(event)))
}

// Update handles PATCH /admin/events/:id (admin only)
func (h *EventHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "EventHandler.Update")
	defer span.End()

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	event, err := h.eventService.Update(ctx, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromEvent(event)))
}

// Delete handles DELETE /admin/events/:id (admin only)
func (h *EventHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "EventHandler.Delete")
	defer span.End()

	if err := h.eventService.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}
