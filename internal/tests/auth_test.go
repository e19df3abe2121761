package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/service"
)

// ──────────────────────────────────────────────
// AUTH: REGISTRATION, LOGIN, TOKENS
// ──────────────────────────────────────────────

const testSecret = "test-secret"

func newAuthService(userRepo *MockUserRepository, clock service.Clock) *service.AuthService {
	return service.NewAuthService(userRepo, testSecret, time.Hour, clock)
}

func TestRegister_NewUser_IssuesToken(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	result, err := auth.Register(context.Background(), service.RegisterRequest{
		CPF:      "12345678900",
		Password: "hunter2",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.ID == "" {
		t.Error("expected user ID to be set")
	}
	if result.User.PasswordHash == "hunter2" {
		t.Error("password must not be stored in plain text")
	}
	if result.Token == "" {
		t.Error("expected a token to be issued")
	}

	claims, err := auth.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.CPF != "12345678900" {
		t.Errorf("cpf claim mismatch: %s", claims.CPF)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim to be set")
	}
	if claims.Subject != result.User.ID {
		t.Errorf("subject claim mismatch: %s", claims.Subject)
	}
}

func TestRegister_DuplicateCPF_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	req := service.RegisterRequest{CPF: "12345678900", Password: "hunter2"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := auth.Register(context.Background(), req)
	if !errors.Is(err, service.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegister_MissingFields_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	testCases := []struct {
		name string
		req  service.RegisterRequest
	}{
		{"missing cpf", service.RegisterRequest{Password: "hunter2"}},
		{"missing password", service.RegisterRequest{CPF: "12345678900"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := auth.Register(context.Background(), tc.req); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLogin_CorrectPassword_Succeeds(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	if _, err := auth.Register(context.Background(), service.RegisterRequest{CPF: "12345678900", Password: "hunter2"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	result, err := auth.Login(context.Background(), "12345678900", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_WrongPassword_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	if _, err := auth.Register(context.Background(), service.RegisterRequest{CPF: "12345678900", Password: "hunter2"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, err := auth.Login(context.Background(), "12345678900", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser_SameErrorAsWrongPassword(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	auth := newAuthService(userRepo, FixedClock{Time: today})

	// Unknown account and bad password must be indistinguishable.
	_, err := auth.Login(context.Background(), "00000000000", "hunter2")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyToken_Garbage_Rejected(t *testing.T) {
	t.Parallel()

	auth := newAuthService(NewMockUserRepository(), FixedClock{Time: today})

	if _, err := auth.VerifyToken("not-a-token"); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_WrongSecret_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	issuer := newAuthService(userRepo, FixedClock{Time: today})
	verifier := service.NewAuthService(userRepo, "other-secret", time.Hour, FixedClock{Time: today})

	result, err := issuer.Register(context.Background(), service.RegisterRequest{CPF: "12345678900", Password: "hunter2"})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := verifier.VerifyToken(result.Token); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Expired_Rejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	issuer := newAuthService(userRepo, FixedClock{Time: today})

	result, err := issuer.Register(context.Background(), service.RegisterRequest{CPF: "12345678900", Password: "hunter2"})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Same secret, but the verifier's clock is past the one-hour TTL.
	later := service.NewAuthService(userRepo, testSecret, time.Hour, FixedClock{Time: today.Add(2 * time.Hour)})
	if _, err := later.VerifyToken(result.Token); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}
