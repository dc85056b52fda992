package email

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/prajayganiga-design/Mini-project/internal/config"
)

func TestValidateEmailAddress_Valid(t *testing.T) {
	tests := []string{
		"user@example.com",
		"test.user@example.com",
		"user+tag@example.co.uk",
		"User Name <user@example.com>", // RFC 5322 format with display name
	}

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			if err := validateEmailAddress(email); err != nil {
				t.Errorf("Expected valid email %q to pass validation, got error: %v", email, err)
			}
		})
	}
}

func TestValidateEmailAddress_Invalid(t *testing.T) {
	tests := []struct {
		email       string
		description string
	}{
		{"", "empty string"},
		{"notanemail", "no @ symbol"},
		{"@example.com", "missing local part"},
		{"user@", "missing domain"},
		{"victim@example.com\r\nBcc: attacker@evil.com", "CRLF header injection"},
		{"test@example.com\nCc: hacker@evil.com", "LF header injection"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if err := validateEmailAddress(tt.email); err == nil {
				t.Errorf("Expected error for invalid email %q (%s), but got none", tt.email, tt.description)
			}
		})
	}
}

func TestNewServiceDisabledWithoutAPIKey(t *testing.T) {
	svc, err := NewService(config.EmailConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Expected no error for empty config, got: %v", err)
	}
	if svc != nil {
		t.Fatal("Expected nil service when no API key is configured")
	}
}

func TestNewServiceRejectsBadSender(t *testing.T) {
	cfg := config.EmailConfig{ResendAPIKey: "re_test_key", From: "not-an-address"}
	if _, err := NewService(cfg, zerolog.Nop()); err == nil {
		t.Fatal("Expected error for malformed sender address")
	}
}

func TestNewServiceWithValidConfig(t *testing.T) {
	cfg := config.EmailConfig{ResendAPIKey: "re_test_key", From: "Events <events@example.com>"}
	svc, err := NewService(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if svc == nil {
		t.Fatal("Expected non-nil service")
	}
}
