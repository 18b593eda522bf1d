package domain

import (
	"errors"
	"fmt"
	"time"
)

// RegistrationStatus constants
const (
	RegistrationStatusPending  = "pending"
	RegistrationStatusApproved = "approved"
	RegistrationStatusRejected = "rejected"
)

// PaymentStatus constants shared by registrations and payments
const (
	PaymentStatusPending     = "pending"
	PaymentStatusCompleted   = "completed"
	PaymentStatusFailed      = "failed"
	PaymentStatusNotRequired = "not_required"
)

// TeamRole constants
const (
	TeamRoleLeader = "leader"
	TeamRoleMember = "member"
)

// Registration is a user's claim on one slot at one event. Its id is
// deterministic ("eventID_userID") so the primary key enforces at most one
// registration per (event, user) pair.
type Registration struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	UserID        string     `json:"user_id"`
	Phone         string     `json:"phone"`
	College       string     `json:"college"`
	StudentID     string     `json:"student_id,omitempty"`
	TeamID        string     `json:"team_id,omitempty"`
	TeamName      string     `json:"team_name,omitempty"`
	TeamRole      string     `json:"team_role,omitempty"` // leader, member
	PaymentStatus string     `json:"payment_status"`      // pending, completed, failed, not_required
	PaymentID     string     `json:"payment_id,omitempty"`
	Status        string     `json:"status"` // pending, approved, rejected
	CheckedIn     bool       `json:"checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy   string     `json:"checked_in_by,omitempty"`
	RegisteredAt  time.Time  `json:"registered_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RegistrationID derives the deterministic registration id for an
// (event, user) pair.
func RegistrationID(eventID, userID string) string {
	return fmt.Sprintf("%s_%s", eventID, userID)
}

// NewRegistration creates a pending registration. PaymentStatus is filled in
// by the registration engine from the event read inside its transaction.
func NewRegistration(eventID, userID, phone, college, studentID string) (*Registration, error) {
	if eventID == "" {
		return nil, errors.New("event id is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if phone == "" {
		return nil, errors.New("phone is required")
	}
	if college == "" {
		return nil, errors.New("college is required")
	}

	now := time.Now()
	return &Registration{
		ID:           RegistrationID(eventID, userID),
		EventID:      eventID,
		UserID:       userID,
		Phone:        phone,
		College:      college,
		StudentID:    studentID,
		Status:       RegistrationStatusPending,
		RegisteredAt: now,
		UpdatedAt:    now,
	}, nil
}

// AttachTeam links the registration to a team with the given role.
func (r *Registration) AttachTeam(teamID, teamName, role string) {
	r.TeamID = teamID
	r.TeamName = teamName
	r.TeamRole = role
}

// EligibleForCheckIn reports whether the registration may pass the check-in
// gate: approved, and paid unless payment was not required.
func (r *Registration) EligibleForCheckIn() error {
	if r.Status != RegistrationStatusApproved {
		return ErrNotApproved
	}
	if r.PaymentStatus != PaymentStatusCompleted && r.PaymentStatus != PaymentStatusNotRequired {
		return ErrPaymentPending
	}
	if r.CheckedIn {
		return ErrAlreadyCheckedIn
	}
	return nil
}
