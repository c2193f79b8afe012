package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/fpt-usermanagement/apiserver/types"
)

func testUser() types.User {
	return types.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@x.com",
		FullName: "Alice A",
		Role:     types.RoleStudent,
		Active:   true,
	}
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := testUser()

	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != strconv.Itoa(user.ID) {
		t.Errorf("expected subject %d, got %q", user.ID, claims.Subject)
	}
	if claims.Username != user.Username {
		t.Errorf("expected username %q, got %q", user.Username, claims.Username)
	}
	if claims.Role != "STUDENT" {
		t.Errorf("expected role STUDENT, got %q", claims.Role)
	}
}

func TestJWTManager_Verify_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewJWTManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestJWTManager_Verify_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Error("expected verification to fail for an expired token")
	}
}

func TestJWTManager_Verify_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Error("expected verification to fail for a malformed token")
	}
}
