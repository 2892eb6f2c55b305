package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/ovumcy/internal/models"
	"github.com/terraincognita07/ovumcy/internal/security"
	"github.com/terraincognita07/ovumcy/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

var (
	ErrResetEmailInvalid = errors.New("valid email is required")
	ErrResetUserNotFound = errors.New("user not found")
)

type PasswordResetRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	UpdatePassword(userID uint, passwordHash string) error
}

type PasswordResetter struct {
	users      PasswordResetRepository
	bcryptCost int
}

func NewPasswordResetter(users PasswordResetRepository) *PasswordResetter {
	return &PasswordResetter{users: users, bcryptCost: bcrypt.DefaultCost}
}

// Reset replaces the password of the account behind email with a fresh
// temporary one and returns it.
func (resetter *PasswordResetter) Reset(email string) (string, error) {
	normalized := services.NormalizeAuthEmail(email)
	if normalized == "" {
		return "", ErrResetEmailInvalid
	}

	user, err := resetter.users.FindByNormalizedEmail(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %s", ErrResetUserNotFound, normalized)
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), resetter.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	if err := resetter.users.UpdatePassword(user.ID, string(hash)); err != nil {
		return "", fmt.Errorf("update user password: %w", err)
	}
	return temporaryPassword, nil
}

func RunResetPasswordCommand(users PasswordResetRepository, email string, out io.Writer) error {
	temporaryPassword, err := NewPasswordResetter(users).Reset(email)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Change it through /api/auth/change-password after signing in.")
	return nil
}

func RunGenerateSecretCommand(length int, out io.Writer) error {
	secret, err := security.SecretKey(length)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}
