package dto

import (
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required,min=1,max=200"`
	Description     string    `json:"description" binding:"max=2000"`
	Category        string    `json:"category" binding:"required,oneof=technical cultural sports other"`
	Date            time.Time `json:"date" binding:"required"`
	Location        string    `json:"location" binding:"max=200"`
	BannerURL       string    `json:"banner_url" binding:"omitempty,url"`
	MaxParticipants int       `json:"max_participants" binding:"required,gt=0"`
	IsPaid          bool      `json:"is_paid"`
	Price           float64   `json:"price" binding:"gte=0"`
	IsTeamEvent     bool      `json:"is_team_event"`
	MaxTeamSize     int       `json:"max_team_size" binding:"omitempty,gte=1"`
}

// Validate applies the cross-field rules gin's binding tags cannot express
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.IsPaid && r.Price <= 0 {
		return false, "Paid events must have a positive price"
	}
	if !r.IsPaid && r.Price > 0 {
		return false, "Free events must not have a price"
	}
	if r.IsTeamEvent && r.MaxTeamSize < 2 {
		return false, "Team events must allow at least 2 members"
	}
	if r.Date.Before(time.Now()) {
		return false, "Event date must be in the future"
	}
	return true, ""
}

// UpdateEventRequest represents the request to update an event. Pointer
// fields distinguish "not provided" from zero values.
type UpdateEventRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" binding:"omitempty,max=2000"`
	Category        *string    `json:"category" binding:"omitempty,oneof=technical cultural sports other"`
	Date            *time.Time `json:"date"`
	Location        *string    `json:"location" binding:"omitempty,max=200"`
	BannerURL       *string    `json:"banner_url" binding:"omitempty,url"`
	MaxParticipants *int       `json:"max_participants" binding:"omitempty,gt=0"`
	MaxTeamSize     *int       `json:"max_team_size" binding:"omitempty,gte=2"`
	Status          *string    `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Price           *float64   `json:"price" binding:"omitempty,gte=0"`
}

// Validate validates the UpdateEventRequest
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.Title == nil && r.Description == nil && r.Category == nil && r.Date == nil &&
		r.Location == nil && r.BannerURL == nil && r.MaxParticipants == nil &&
		r.MaxTeamSize == nil && r.Status == nil && r.Price == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// ListEventsQuery represents the query parameters for listing events
type ListEventsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=technical cultural sports other"`
	Status   string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Page     int    `form:"page,default=1" binding:"gte=1"`
	PerPage  int    `form:"per_page,default=20" binding:"gte=1,lte=100"`
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Category            string    `json:"category"`
	Date                time.Time `json:"date"`
	Location            string    `json:"location"`
	BannerURL           string    `json:"banner_url,omitempty"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	SlotsLeft           int       `json:"slots_left"`
	IsPaid              bool      `json:"is_paid"`
	Price               float64   `json:"price"`
	IsTeamEvent         bool      `json:"is_team_event"`
	MaxTeamSize         int       `json:"max_team_size,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// FromEvent converts a domain Event to EventResponse
func FromEvent(e *domain.Event) *EventResponse {
	slotsLeft := e.MaxParticipants - e.CurrentParticipants
	if slotsLeft < 0 {
		slotsLeft = 0
	}
	return &EventResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Category:            e.Category,
		Date:                e.Date,
		Location:            e.Location,
		BannerURL:           e.BannerURL,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		SlotsLeft:           slotsLeft,
		IsPaid:              e.IsPaid,
		Price:               e.Price,
		IsTeamEvent:         e.IsTeamEvent,
		MaxTeamSize:         e.MaxTeamSize,
		Status:              e.Status,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// FromEvents converts a slice of domain Events
func FromEvents(events []*domain.Event) []*EventResponse {
	out := make([]*EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromEvent(e))
	}
	return out
}
