package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"STUDENT", RoleStudent, false},
		{"student", RoleStudent, false},
		{" Admin ", RoleAdmin, false},
		{"ADMIN", RoleAdmin, false},
		{"WIZARD", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	user := User{
		ID:           1,
		Username:     "alice",
		PasswordHash: "super-secret-hash",
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(encoded), "super-secret-hash") {
		t.Error("password hash must never appear in JSON output")
	}
}

func TestNewUserResponse(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	user := User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@x.com",
		FullName:     "Alice A",
		Role:         RoleStudent,
		PasswordHash: "hash",
		Active:       true,
		CreatedAt:    created,
	}

	resp := NewUserResponse(user)
	if resp.ID != 7 || resp.Username != "alice" || resp.Email != "alice@x.com" ||
		resp.FullName != "Alice A" || resp.Role != "STUDENT" || !resp.Active {
		t.Errorf("unexpected projection: %+v", resp)
	}
	if resp.CreatedAt != "2026-01-15T10:30:00Z" {
		t.Errorf("unexpected created_at display string: %q", resp.CreatedAt)
	}
}
