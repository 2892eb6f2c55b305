package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountPasswordChangeInvalidInput = errors.New("account password change invalid input")
	ErrAccountPasswordMismatch           = errors.New("account password mismatch")
	ErrAccountInvalidCurrentPassword     = errors.New("account invalid current password")
	ErrAccountNewPasswordMustDiffer      = errors.New("account new password must differ")
	ErrAccountPasswordMissing            = errors.New("account password missing")
	ErrAccountUpdateFailed               = errors.New("account update failed")
	ErrAccountDeleteFailed               = errors.New("account delete failed")
)

type AccountUserRepository interface {
	UpdatePassword(userID uint, passwordHash string) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AccountService struct {
	users      AccountUserRepository
	bcryptCost int
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users, bcryptCost: bcrypt.DefaultCost}
}

// ValidatePasswordChange checks the request against the stored hash. A weak new
// password is reported with the policy error from ValidatePasswordStrength.
func (service *AccountService) ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrAccountPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrAccountPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrAccountInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrAccountNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}

func (service *AccountService) ChangePassword(userID uint, passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	if err := service.ValidatePasswordChange(passwordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), service.bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccountUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountUpdateFailed, err)
	}
	return nil
}

func (service *AccountService) ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccountInvalidCurrentPassword
	}
	return nil
}

func (service *AccountService) DeleteAccount(userID uint, passwordHash string, rawPassword string) error {
	if err := service.ValidateDeleteAccountPassword(passwordHash, rawPassword); err != nil {
		return err
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDeleteFailed, err)
	}
	return nil
}
