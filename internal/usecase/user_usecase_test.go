package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jssrooms/backend/internal/domain/apperror"
	"github.com/jssrooms/backend/internal/domain/models"
	"github.com/jssrooms/backend/internal/infra/adapters/memory"
)

func newUserFixture(t *testing.T) UserUsecase {
	t.Helper()
	return NewUserUsecase([]byte("test-secret"), memory.NewUserRepository())
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	users := newUserFixture(t)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "1JS22CS001", "Ananya", "hunter2", "")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.Role != models.RoleUser {
		t.Fatalf("role %q, want default user", user.Role)
	}
	if user.Password != "" {
		t.Fatal("password hash leaked in returned user")
	}

	got, err := users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.USN != "1JS22CS001" {
		t.Fatalf("usn %q, want 1JS22CS001", got.USN)
	}
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	users := newUserFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		usn      string
		password string
		role     string
	}{
		{"blank usn", "  ", "pw", ""},
		{"empty password", "1JS22CS001", "", ""},
		{"bogus role", "1JS22CS001", "pw", "superuser"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.CreateUser(ctx, tc.usn, "x", tc.password, tc.role)
			if !errors.Is(err, apperror.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateUserDuplicateUSN(t *testing.T) {
	t.Parallel()

	users := newUserFixture(t)
	ctx := context.Background()

	if _, err := users.CreateUser(ctx, "1JS22CS001", "Ananya", "pw", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := users.CreateUser(ctx, "1JS22CS001", "Impostor", "pw", "")
	if !errors.Is(err, apperror.ErrAlreadyRegistered) {
		t.Fatalf("duplicate usn: got %v, want ErrAlreadyRegistered", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	users := newUserFixture(t)
	ctx := context.Background()

	if _, err := users.CreateUser(ctx, "1JS22CS001", "Ananya", "hunter2", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	user, err := users.ValidateCredentials(ctx, "1JS22CS001", "hunter2")
	if err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if user.Password != "" {
		t.Fatal("password hash leaked")
	}

	if _, err := users.ValidateCredentials(ctx, "1JS22CS001", "wrong"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v, want ErrUnauthorized", err)
	}

	if _, err := users.ValidateCredentials(ctx, "0XX00XX000", "hunter2"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("unknown usn: got %v, want ErrUnauthorized", err)
	}
}

func TestGenerateJWT(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	users := NewUserUsecase(secret, memory.NewUserRepository())

	user, err := users.CreateUser(context.Background(), "1JS22CS001", "Ananya", "pw", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	signed, err := users.GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse token: %v", err)
	}

	if claims.Subject != user.ID.String() {
		t.Fatalf("subject %q, want user ID", claims.Subject)
	}
	if claims.USN != "1JS22CS001" || claims.Role != models.RoleAdmin {
		t.Fatalf("claims %+v, want usn and admin role", claims)
	}
}
