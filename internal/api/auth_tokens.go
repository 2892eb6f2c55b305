package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/ovumcy/internal/models"
)

const (
	tokenIssuer = "ovumcy"
	tokenLeeway = 30 * time.Second
)

var errInvalidToken = errors.New("invalid token")

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// issueToken signs an HS256 bearer token for user valid for handler.tokenTTL.
func (handler *Handler) issueToken(user *models.User) (string, error) {
	issuedAt := handler.now()
	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(handler.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// parseToken verifies signature, issuer and expiry and returns the user id.
func (handler *Handler) parseToken(raw string) (uint, error) {
	claims := &authClaims{}
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (any, error) { return handler.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithTimeFunc(handler.now),
	)
	if err != nil || claims.UserID == 0 {
		return 0, errInvalidToken
	}
	return claims.UserID, nil
}
