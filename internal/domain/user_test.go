package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("Test User", "test@example.com", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Name != "Test User" {
		t.Errorf("Expected name %q, got %q", "Test User", user.Name)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email %q, got %q", "test@example.com", user.Email)
	}

	if user.Role != RoleUser {
		t.Errorf("Expected role %s, got %s", RoleUser, user.Role)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid inputs
	if _, err := NewUser("", "test@example.com", "password123"); err != ErrEmptyUserName {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserName, err)
	}

	if _, err := NewUser("Test User", "", "password123"); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	if _, err := NewUser("Test User", "not-an-email", "password123"); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	if _, err := NewUser("Test User", "test@example.com", "short"); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	validUser := User{
		ID:             uuid.New(),
		Name:           "Test User",
		Email:          "test@example.com",
		HashedPassword: "$2a$10$hash",
		Role:           RoleUser,
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Role = Role("superadmin")
	if err := invalidUser.Validate(); err != ErrInvalidRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidRole, err)
	}

	// A stored user without a plaintext password must carry a hash.
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserIsAdmin(t *testing.T) {
	t.Parallel()

	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("Expected IsAdmin to be true for admin role")
	}

	user := User{Role: RoleUser}
	if user.IsAdmin() {
		t.Error("Expected IsAdmin to be false for user role")
	}
}

func TestValidateEmailFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"user@.com", false},
		{"user@com.", false},
	}

	for _, tc := range tests {
		if got := validateEmailFormat(tc.email); got != tc.valid {
			t.Errorf("validateEmailFormat(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}
