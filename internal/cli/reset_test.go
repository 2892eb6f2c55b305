package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/ovumcy/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type resetRepositoryStub struct {
	users     map[string]models.User
	lookupErr error
	updateErr error
	updated   map[uint]string
}

func newResetRepositoryStub(users ...models.User) *resetRepositoryStub {
	stub := &resetRepositoryStub{users: map[string]models.User{}, updated: map[uint]string{}}
	for _, user := range users {
		stub.users[user.Email] = user
	}
	return stub
}

func (stub *resetRepositoryStub) FindByNormalizedEmail(email string) (models.User, error) {
	if stub.lookupErr != nil {
		return models.User{}, stub.lookupErr
	}
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *resetRepositoryStub) UpdatePassword(userID uint, passwordHash string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	stub.updated[userID] = passwordHash
	return nil
}

func newTestResetter(users PasswordResetRepository) *PasswordResetter {
	resetter := NewPasswordResetter(users)
	resetter.bcryptCost = bcrypt.MinCost
	return resetter
}

func TestResetStoresHashOfTemporaryPassword(t *testing.T) {
	t.Parallel()

	repo := newResetRepositoryStub(models.User{ID: 7, Email: "reset@example.com"})
	password, err := newTestResetter(repo).Reset("  RESET@example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(password) != temporaryPasswordLength {
		t.Fatalf("expected %d-character password, got %d", temporaryPasswordLength, len(password))
	}

	hash, ok := repo.updated[7]
	if !ok {
		t.Fatal("expected password hash to be stored for user 7")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Fatalf("expected stored hash to match temporary password: %v", err)
	}
}

func TestResetErrors(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("disk full")
	tests := []struct {
		name    string
		email   string
		repo    *resetRepositoryStub
		wantErr error
	}{
		{name: "invalid email", email: "nope", repo: newResetRepositoryStub(), wantErr: ErrResetEmailInvalid},
		{name: "unknown user", email: "ghost@example.com", repo: newResetRepositoryStub(), wantErr: ErrResetUserNotFound},
		{name: "lookup failure", email: "a@example.com", repo: &resetRepositoryStub{lookupErr: storageErr}},
		{
			name:  "update failure",
			email: "a@example.com",
			repo: &resetRepositoryStub{
				users:     map[string]models.User{"a@example.com": {ID: 1, Email: "a@example.com"}},
				updateErr: storageErr,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestResetter(test.repo).Reset(test.email)
			if err == nil {
				t.Fatal("expected error")
			}
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestRunGenerateSecretCommandPrintsKey(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := RunGenerateSecretCommand(48, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret := strings.TrimSpace(out.String()); len(secret) != 48 {
		t.Fatalf("expected 48-character secret, got %q", secret)
	}
}
