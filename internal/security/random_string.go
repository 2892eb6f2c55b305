package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	secretAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	minTemporaryPasswordLength = 8
	minSecretKeyLength         = 32
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// TemporaryPassword draws from an alphabet without look-alike characters and
// retries until the result mixes upper case, lower case and digits.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	for {
		candidate, err := RandomString(length, passwordAlphabet)
		if err != nil {
			return "", err
		}
		if hasMixedClasses(candidate) {
			return candidate, nil
		}
	}
}

// SecretKey returns a URL-safe token signing key of at least 32 characters.
func SecretKey(length int) (string, error) {
	if length < minSecretKeyLength {
		length = minSecretKeyLength
	}
	return RandomString(length, secretAlphabet)
}

func hasMixedClasses(value string) bool {
	return strings.ContainsAny(value, "ABCDEFGHJKLMNPQRSTUVWXYZ") &&
		strings.ContainsAny(value, "abcdefghijkmnopqrstuvwxyz") &&
		strings.ContainsAny(value, "23456789")
}
