package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/service"
	"github.com/Torqix/aarohan-backend/pkg/middleware"
	"github.com/Torqix/aarohan-backend/pkg/response"
	"github.com/Torqix/aarohan-backend/pkg/telemetry"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder handles POST /payments/orders
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "PaymentHandler.CreateOrder")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	order, err := h.paymentService.CreateOrder(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(order))
}

// Verify handles POST /payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "PaymentHandler.Verify")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	payment, err := h.paymentService.Verify(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromPayment(payment)))
}

// MarkFailed handles POST /payments/failed
func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "PaymentHandler.MarkFailed")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.MarkFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	payment, err := h.paymentService.MarkFailed(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromPayment(payment)))
}

// GetByID handles GET /payments/:id - owner or admin only
func (h *PaymentHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "PaymentHandler.GetByID")
	defer span.End()

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	payment, err := h.paymentService.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if payment.UserID != userID && role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, response.Forbidden(""))
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.FromPayment(payment)))
}
