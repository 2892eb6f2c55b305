package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/ovumcy/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	db            *gorm.DB
	secretKey     []byte
	tokenTTL      time.Duration
	location      *time.Location
	analytics     services.AnalyticsConfig
	now           func() time.Time
	loginThrottle *loginThrottle

	services *Services
}

type HandlerOptions struct {
	SecretKey string
	TokenTTL  time.Duration
	Location  *time.Location
	Analytics services.AnalyticsConfig
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	secret := strings.TrimSpace(options.SecretKey)
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	tokenTTL := options.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}

	handler := &Handler{
		db:            database,
		secretKey:     []byte(secret),
		tokenTTL:      tokenTTL,
		location:      location,
		analytics:     options.Analytics,
		now:           time.Now,
		loginThrottle: newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
	}
	return handler.withDependencies(database), nil
}

// today is the current calendar day in the configured timezone.
func (handler *Handler) today() time.Time {
	return services.CalendarDay(handler.now().In(handler.location))
}
