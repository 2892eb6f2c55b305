package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthEmailExists    = errors.New("auth email already registered")
	ErrAuthUserNotFound   = errors.New("auth user not found")
	ErrAuthRegisterFailed = errors.New("auth register failed")
	ErrAuthLookupFailed   = errors.New("auth lookup failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users      AuthUserRepository
	bcryptCost int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, bcryptCost: bcrypt.DefaultCost}
}

func (service *AuthService) Register(emailRaw string, passwordRaw string, now time.Time) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	if exists {
		return models.User{}, ErrAuthEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for both unknown emails and
// wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLookupFailed, err)
	}
	return user, nil
}
