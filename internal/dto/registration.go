package dto

import (
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// RegisterRequest represents a request to register for an event. For team
// events exactly one of TeamName (create a team) or InviteCode (join one)
// must be set.
type RegisterRequest struct {
	Phone      string `json:"phone" binding:"required,min=7,max=20"`
	College    string `json:"college" binding:"required,min=1,max=200"`
	StudentID  string `json:"student_id" binding:"max=64"`
	TeamName   string `json:"team_name" binding:"omitempty,min=1,max=100"`
	InviteCode string `json:"invite_code" binding:"omitempty,len=10"`
}

// Validate applies the team-field exclusivity rule
func (r *RegisterRequest) Validate() (bool, string) {
	if r.TeamName != "" && r.InviteCode != "" {
		return false, "Provide either a team name or an invite code, not both"
	}
	return true, ""
}

// UpdateRegistrationStatusRequest represents an admin approve/reject request
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// RegistrationResponse represents a registration response
type RegistrationResponse struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	UserID        string     `json:"user_id"`
	Phone         string     `json:"phone"`
	College       string     `json:"college"`
	StudentID     string     `json:"student_id,omitempty"`
	TeamID        string     `json:"team_id,omitempty"`
	TeamName      string     `json:"team_name,omitempty"`
	TeamRole      string     `json:"team_role,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	PaymentID     string     `json:"payment_id,omitempty"`
	Status        string     `json:"status"`
	CheckedIn     bool       `json:"checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	RegisteredAt  time.Time  `json:"registered_at"`
}

// FromRegistration converts a domain Registration to RegistrationResponse
func FromRegistration(r *domain.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		ID:            r.ID,
		EventID:       r.EventID,
		UserID:        r.UserID,
		Phone:         r.Phone,
		College:       r.College,
		StudentID:     r.StudentID,
		TeamID:        r.TeamID,
		TeamName:      r.TeamName,
		TeamRole:      r.TeamRole,
		PaymentStatus: r.PaymentStatus,
		PaymentID:     r.PaymentID,
		Status:        r.Status,
		CheckedIn:     r.CheckedIn,
		CheckedInAt:   r.CheckedInAt,
		RegisteredAt:  r.RegisteredAt,
	}
}

// FromRegistrations converts a slice of domain Registrations
func FromRegistrations(regs []*domain.Registration) []*RegistrationResponse {
	out := make([]*RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, FromRegistration(r))
	}
	return out
}

// TeamResponse represents a team with its loaded member list
type TeamResponse struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code,omitempty"`
	LeaderID   string    `json:"leader_id"`
	Members    []string  `json:"members"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromTeam converts a domain Team to TeamResponse. The invite code is only
// included when the caller is a member of the team.
func FromTeam(t *domain.Team, includeCode bool) *TeamResponse {
	resp := &TeamResponse{
		ID:        t.ID,
		EventID:   t.EventID,
		Name:      t.Name,
		LeaderID:  t.LeaderID,
		Members:   t.Members,
		CreatedAt: t.CreatedAt,
	}
	if includeCode {
		resp.InviteCode = t.InviteCode
	}
	return resp
}
