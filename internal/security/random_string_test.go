package security

import (
	"strings"
	"testing"

	"github.com/terraincognita07/ovumcy/internal/config"
	"github.com/terraincognita07/ovumcy/internal/services"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "restricted alphabet", length: 64, alphabet: "AB"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error for length %d alphabet %q", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != test.length {
				t.Fatalf("expected length %d, got %d", test.length, len(got))
			}
			if strings.Trim(got, test.alphabet) != "" {
				t.Fatalf("expected only %q characters, got %q", test.alphabet, got)
			}
		})
	}
}

func TestTemporaryPasswordSatisfiesStrengthPolicy(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 50; attempt++ {
		password, err := TemporaryPassword(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(password) != minTemporaryPasswordLength {
			t.Fatalf("expected minimum length %d, got %d", minTemporaryPasswordLength, len(password))
		}
		if err := services.ValidatePasswordStrength(password); err != nil {
			t.Fatalf("expected %q to pass the strength policy, got %v", password, err)
		}
		if strings.ContainsAny(password, "0O1lI") {
			t.Fatalf("expected no look-alike characters, got %q", password)
		}
	}
}

func TestSecretKeyIsAcceptedByConfig(t *testing.T) {
	t.Parallel()

	secret, err := SecretKey(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secret) != minSecretKeyLength {
		t.Fatalf("expected length %d, got %d", minSecretKeyLength, len(secret))
	}
	if _, err := config.ValidateSecretKey(secret); err != nil {
		t.Fatalf("expected generated secret to validate, got %v", err)
	}

	longer, err := SecretKey(64)
	if err != nil || len(longer) != 64 {
		t.Fatalf("expected 64-character secret, got %d (%v)", len(longer), err)
	}
}
