package domain

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Invite codes avoid visually ambiguous characters (0/O, 1/l/I).
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// InviteCodeLength is the number of characters in a team invite code.
// 10 characters over a 56-symbol alphabet gives ~58 bits of entropy.
const InviteCodeLength = 10

// Team represents a group registration for a team event. The member list is
// persisted as a join table; Members here is the loaded view of it.
type Team struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	LeaderID   string    `json:"leader_id"`
	Members    []string  `json:"members"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTeam creates a team with the leader as its first member and a freshly
// generated invite code.
func NewTeam(eventID, leaderID, name string) (*Team, error) {
	if name == "" {
		return nil, errors.New("team name is required")
	}
	if eventID == "" || leaderID == "" {
		return nil, errors.New("event id and leader id are required")
	}

	code, err := GenerateInviteCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Team{
		ID:         uuid.New().String(),
		EventID:    eventID,
		Name:       name,
		InviteCode: code,
		LeaderID:   leaderID,
		Members:    []string{leaderID},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GenerateInviteCode returns a URL-safe random code from crypto/rand.
// Bytes outside the largest multiple of the alphabet size are rejected and
// redrawn so every symbol is equally likely.
func GenerateInviteCode() (string, error) {
	// 256 - 256%56 = 224
	const limit = byte(256 - 256%len(inviteCodeAlphabet))

	code := make([]byte, 0, InviteCodeLength)
	buf := make([]byte, InviteCodeLength*2)
	for len(code) < InviteCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)])
			if len(code) == InviteCodeLength {
				break
			}
		}
	}
	return string(code), nil
}
