package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/gateway"
	"github.com/Torqix/aarohan-backend/internal/repository"
	"github.com/Torqix/aarohan-backend/pkg/logger"
)

// paymentService implements the PaymentService interface
type paymentService struct {
	paymentRepo repository.PaymentRepository
	regRepo     repository.RegistrationRepository
	eventRepo   repository.EventRepository
	gateway     gateway.Gateway
	publisher   events.Publisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	regRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	gw gateway.Gateway,
	publisher events.Publisher,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		regRepo:     regRepo,
		eventRepo:   eventRepo,
		gateway:     gw,
		publisher:   publisher,
	}
}

// CreateOrder opens a gateway order for a registration's fee. The amount is
// always the event's current price read on the server; the client never
// supplies it. An open pending order is reused instead of creating another.
func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	reg, err := s.regRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil || reg.UserID != userID {
		return nil, domain.ErrRegistrationNotFound
	}
	if reg.PaymentStatus == domain.PaymentStatusCompleted ||
		reg.PaymentStatus == domain.PaymentStatusNotRequired {
		return nil, domain.ErrPaymentNotPending
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	if !event.IsPaid || event.Price <= 0 {
		return nil, domain.ErrPaymentNotPending
	}

	payment, err := s.paymentRepo.GetPendingByRegistration(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		payment, err = domain.NewPayment(reg.ID, reg.UserID, reg.EventID, event.Price, domain.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	// The pending payment is persisted before the gateway call; a gateway
	// failure keeps it around so the next attempt retries the order.
	if err := s.ensureGatewayOrder(ctx, payment); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "payment order ready",
		zap.String("payment_id", payment.ID),
		zap.String("registration_id", reg.ID),
		zap.String("gateway_order_id", payment.GatewayOrderID))

	return &dto.CreateOrderResponse{
		PaymentID: payment.ID,
		OrderID:   payment.GatewayOrderID,
		Amount:    payment.AmountMinorUnits(),
		Currency:  payment.Currency,
		KeyID:     s.gateway.KeyID(),
		Price:     payment.Amount,
	}, nil
}

// ensureGatewayOrder opens a gateway order for the payment unless one is
// already attached.
func (s *paymentService) ensureGatewayOrder(ctx context.Context, payment *domain.Payment) error {
	if payment.GatewayOrderID != "" {
		return nil
	}

	order, err := s.gateway.CreateOrder(ctx, payment.AmountMinorUnits(), payment.Currency, payment.ID)
	if err != nil {
		logger.WarnCtx(ctx, "gateway order creation failed",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrOrderCreationFailed, err)
	}

	if err := s.paymentRepo.SetGatewayOrder(ctx, payment.ID, order.ID); err != nil {
		return err
	}
	payment.GatewayOrderID = order.ID
	return nil
}

// Verify validates the checkout callback signature and settles the payment.
// The signature is checked against our stored order id, not the one the
// client echoes back.
func (s *paymentService) Verify(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}
	if req.GatewayOrderID != payment.GatewayOrderID {
		return nil, domain.ErrInvalidSignature
	}
	if err := s.gateway.VerifySignature(payment.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		logger.WarnCtx(ctx, "payment signature rejected",
			zap.String("payment_id", payment.ID),
			zap.String("gateway_order_id", payment.GatewayOrderID))
		return nil, err
	}

	settled, err := s.paymentRepo.CompleteWithRegistration(ctx, payment.ID, req.GatewayPaymentID)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "payment completed",
		zap.String("payment_id", settled.ID),
		zap.String("registration_id", settled.RegistrationID))

	s.publisher.Publish(ctx, events.TopicPaymentCompleted, settled.ID, events.PaymentEvent{
		PaymentID:      settled.ID,
		RegistrationID: settled.RegistrationID,
		EventID:        settled.EventID,
		UserID:         settled.UserID,
		Amount:         settled.Amount,
		Currency:       settled.Currency,
		Status:         settled.Status,
		Timestamp:      time.Now(),
	})

	return settled, nil
}

// MarkFailed records a dismissed or declined checkout. Failed is terminal; a
// retry goes through CreateOrder again.
func (s *paymentService) MarkFailed(ctx context.Context, userID string, req *dto.MarkFailedRequest) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}

	failed, err := s.paymentRepo.FailWithRegistration(ctx, payment.ID, req.Reason)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.TopicPaymentFailed, failed.ID, events.PaymentEvent{
		PaymentID:      failed.ID,
		RegistrationID: failed.RegistrationID,
		EventID:        failed.EventID,
		UserID:         failed.UserID,
		Amount:         failed.Amount,
		Currency:       failed.Currency,
		Status:         failed.Status,
		Timestamp:      time.Now(),
	})

	return failed, nil
}

// GetByID retrieves a payment
func (s *paymentService) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, nil
}
