package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordRunes = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var (
	ErrWeakPassword    = errors.New("weak password")
	ErrPasswordTooLong = errors.New("password too long")
)

type passwordClass uint8

const (
	classUpper passwordClass = 1 << iota
	classLower
	classDigit

	requiredPasswordClasses = classUpper | classLower | classDigit
)

// ValidatePasswordStrength requires at least eight characters mixing upper
// case, lower case and digits, within bcrypt's input limit.
func ValidatePasswordStrength(password string) error {
	switch {
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	case utf8.RuneCountInString(password) < minPasswordRunes:
		return ErrWeakPassword
	}

	var seen passwordClass
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			seen |= classUpper
		case unicode.IsLower(char):
			seen |= classLower
		case unicode.IsDigit(char):
			seen |= classDigit
		}
		if seen == requiredPasswordClasses {
			return nil
		}
	}
	return ErrWeakPassword
}
