package domain

import "errors"

// Rejection errors: semantically valid requests that cannot proceed.
// Handlers report these to the caller verbatim; they are never retried.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventCancelled    = errors.New("event is cancelled")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotTeamEvent      = errors.New("event does not accept team registrations")
	ErrTeamRequired      = errors.New("team events require a team name or invite code")
	ErrInvalidInviteCode = errors.New("invalid team invite code")
	ErrTeamFull          = errors.New("team is full")
	ErrNotApproved       = errors.New("registration is not approved")
	ErrPaymentPending    = errors.New("payment is pending")
	ErrAlreadyCheckedIn  = errors.New("registration already checked in")
	ErrEventMismatch     = errors.New("registration does not belong to this event")
	ErrInvalidSignature  = errors.New("invalid payment signature")
	ErrPaymentNotPending = errors.New("payment is not in pending state")

	// ErrOrderCreationFailed wraps a gateway failure while opening an order.
	// The pending payment is kept so the caller can retry.
	ErrOrderCreationFailed = errors.New("payment order creation failed")
)

// Integrity errors: state that should be impossible. Surfaced as failures and
// logged as severe, since they indicate a prior bug or external tampering.
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
)
