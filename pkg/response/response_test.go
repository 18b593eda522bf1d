package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSuccess(t *testing.T) {
	data := map[string]string{"name": "test"}
	resp := Success(data)

	if !resp.Success {
		t.Error("Expected success to be true")
	}
	if resp.Data == nil {
		t.Error("Expected data to be set")
	}
	if resp.Error != nil {
		t.Error("Expected error to be nil")
	}
	if resp.Meta != nil {
		t.Error("Expected meta to be nil")
	}
}

func TestSuccess_JSONFormat(t *testing.T) {
	data := map[string]string{"id": "123"}
	resp := Success(data)

	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if parsed["success"] != true {
		t.Errorf("Expected success=true, got %v", parsed["success"])
	}
	if _, ok := parsed["error"]; ok {
		t.Error("Expected error field to be omitted")
	}
	if _, ok := parsed["meta"]; ok {
		t.Error("Expected meta field to be omitted")
	}
}

func TestError(t *testing.T) {
	resp := Error(ErrCodeEventFull, "Event is full")

	if resp.Success {
		t.Error("Expected success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected error to be set")
	}
	if resp.Error.Code != ErrCodeEventFull {
		t.Errorf("Expected code %s, got %s", ErrCodeEventFull, resp.Error.Code)
	}
	if resp.Error.Message != "Event is full" {
		t.Errorf("Expected message 'Event is full', got %q", resp.Error.Message)
	}
}

func TestErrorWithDetails(t *testing.T) {
	details := map[string]string{"phone": "required"}
	resp := ErrorWithDetails(ErrCodeValidationFailed, "Validation failed", details)

	if resp.Error.Details == nil {
		t.Fatal("Expected details to be set")
	}
	if resp.Error.Details["phone"] != "required" {
		t.Errorf("Expected phone detail 'required', got %q", resp.Error.Details["phone"])
	}
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		perPage        int
		wantTotalPages int
	}{
		{"exact pages", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"empty", 0, 20, 0},
		{"single item", 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Paginated([]string{}, 1, tt.perPage, tt.total)
			if resp.Meta == nil {
				t.Fatal("Expected meta to be set")
			}
			if resp.Meta.TotalPages != tt.wantTotalPages {
				t.Errorf("Expected %d total pages, got %d", tt.wantTotalPages, resp.Meta.TotalPages)
			}
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeEventFull, http.StatusConflict},
		{ErrCodeAlreadyRegistered, http.StatusConflict},
		{ErrCodeTeamFull, http.StatusConflict},
		{ErrCodeInvalidInviteCode, http.StatusNotFound},
		{ErrCodePaymentPending, http.StatusPaymentRequired},
		{ErrCodeInvalidSignature, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := GetHTTPStatus(tt.code); got != tt.want {
			t.Errorf("GetHTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
