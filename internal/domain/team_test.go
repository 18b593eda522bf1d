package domain

import (
	"strings"
	"testing"
)

func TestNewTeam(t *testing.T) {
	team, err := NewTeam("event-123", "user-456", "Code Warriors")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if team.ID == "" {
		t.Error("Expected team ID to be set")
	}
	if team.LeaderID != "user-456" {
		t.Errorf("Expected leader user-456, got %s", team.LeaderID)
	}
	if len(team.Members) != 1 || team.Members[0] != "user-456" {
		t.Errorf("Expected members to contain only the leader, got %v", team.Members)
	}
	if len(team.InviteCode) != InviteCodeLength {
		t.Errorf("Expected invite code of length %d, got %d", InviteCodeLength, len(team.InviteCode))
	}
}

func TestNewTeam_Validation(t *testing.T) {
	if _, err := NewTeam("event-123", "user-456", ""); err == nil {
		t.Error("Expected error for empty team name")
	}
	if _, err := NewTeam("", "user-456", "Code Warriors"); err == nil {
		t.Error("Expected error for empty event id")
	}
	if _, err := NewTeam("event-123", "", "Code Warriors"); err == nil {
		t.Error("Expected error for empty leader id")
	}
}

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(code) != InviteCodeLength {
			t.Fatalf("Expected length %d, got %d", InviteCodeLength, len(code))
		}
		for _, c := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, c) {
				t.Fatalf("Code %q contains character outside alphabet", code)
			}
		}
		if seen[code] {
			t.Fatalf("Duplicate invite code generated: %s", code)
		}
		seen[code] = true
	}
}

func TestGenerateInviteCode_UniformAlphabetUse(t *testing.T) {
	// With 2000 codes (20000 draws over 56 symbols) every symbol appears
	// unless the sampling is skewed toward part of the alphabet.
	counts := make(map[rune]int)
	for i := 0; i < 2000; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for _, c := range code {
			counts[c]++
		}
	}
	for _, c := range inviteCodeAlphabet {
		if counts[c] == 0 {
			t.Errorf("Symbol %q never drawn", c)
		}
	}
}
