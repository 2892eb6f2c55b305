package services

import (
	"errors"
	"net/mail"
	"strings"
)

const (
	maxAuthEmailLength    = 254
	maxAuthEmailLocalPart = 64
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeAuthEmail lowercases and trims raw, returning "" unless the result
// is a bare address with a dotted domain.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > maxAuthEmailLength {
		return ""
	}
	if parsed, err := mail.ParseAddress(email); err != nil || parsed.Address != email {
		return ""
	}

	local, domain, _ := strings.Cut(email, "@")
	if len(local) > maxAuthEmailLocalPart {
		return ""
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	password := strings.TrimSpace(passwordRaw)
	if password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}
