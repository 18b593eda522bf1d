package dto

import (
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// CheckInRequest represents a door-scan check-in request. The registration
// id comes from the attendee's QR code.
type CheckInRequest struct {
	RegistrationID string `json:"registration_id" binding:"required"`
}

// CheckInResponse confirms the gate decision for the scanned registration
type CheckInResponse struct {
	RegistrationID string     `json:"registration_id"`
	EventID        string     `json:"event_id"`
	UserID         string     `json:"user_id"`
	CheckedIn      bool       `json:"checked_in"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy    string     `json:"checked_in_by,omitempty"`
}

// FromCheckIn builds the response from the updated registration
func FromCheckIn(r *domain.Registration) *CheckInResponse {
	return &CheckInResponse{
		RegistrationID: r.ID,
		EventID:        r.EventID,
		UserID:         r.UserID,
		CheckedIn:      r.CheckedIn,
		CheckedInAt:    r.CheckedInAt,
		CheckedInBy:    r.CheckedInBy,
	}
}
