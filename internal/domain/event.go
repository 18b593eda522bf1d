package domain

import (
	"errors"
	"time"
)

// EventStatus constants
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// EventCategory constants
const (
	EventCategoryTechnical = "technical"
	EventCategoryCultural  = "cultural"
	EventCategorySports    = "sports"
	EventCategoryOther     = "other"
)

// Event represents a fest event open for registration.
// CurrentParticipants is owned by the registration engine: it is only ever
// mutated inside the registration transaction, never by direct update.
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Category            string    `json:"category"` // technical, cultural, sports, other
	Date                time.Time `json:"date"`
	Location            string    `json:"location"`
	BannerURL           string    `json:"banner_url"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	IsPaid              bool      `json:"is_paid"`
	Price               float64   `json:"price"`
	IsTeamEvent         bool      `json:"is_team_event"`
	MaxTeamSize         int       `json:"max_team_size"`
	Status              string    `json:"status"` // upcoming, ongoing, completed, cancelled
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewEvent creates an upcoming event with a zero participant count.
func NewEvent(id, title, description, category string, date time.Time, maxParticipants int) (*Event, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if maxParticipants <= 0 {
		return nil, errors.New("max participants must be positive")
	}
	switch category {
	case EventCategoryTechnical, EventCategoryCultural, EventCategorySports, EventCategoryOther:
	default:
		return nil, errors.New("invalid category")
	}

	now := time.Now()
	return &Event{
		ID:              id,
		Title:           title,
		Description:     description,
		Category:        category,
		Date:            date,
		MaxParticipants: maxParticipants,
		Status:          EventStatusUpcoming,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsFull reports whether the event has reached capacity.
func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// AcceptsRegistrations reports whether new registrations are allowed for the
// event's lifecycle state.
func (e *Event) AcceptsRegistrations() bool {
	return e.Status == EventStatusUpcoming || e.Status == EventStatusOngoing
}
