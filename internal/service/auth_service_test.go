package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
	"github.com/rockymountnc/licensetracker/pkg/tokens"
)

func newTestAuthService() (*AuthService, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	authority := tokens.NewAuthority("test-secret", 30*time.Minute, repo)
	return NewAuthService(repo, authority), repo
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:        "mthompson",
		FirstName:       "Maria",
		LastName:        "Thompson",
		Email:           "maria.thompson@example.gov",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", resp.TokenType)
	}
	if resp.User.Username != "mthompson" {
		t.Errorf("username = %q, want mthompson", resp.User.Username)
	}
	if resp.User.ID == "" {
		t.Error("expected a generated user ID")
	}
	if resp.User.Groups == nil {
		t.Error("groups should serialize as an empty list, not null")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.RegisterRequest)
		wantCode string
	}{
		{
			name:     "missing username",
			mutate:   func(r *models.RegisterRequest) { r.Username = "" },
			wantCode: CodeEmptyFields,
		},
		{
			name:     "whitespace only first name",
			mutate:   func(r *models.RegisterRequest) { r.FirstName = "   " },
			wantCode: CodeEmptyFields,
		},
		{
			name:     "password mismatch",
			mutate:   func(r *models.RegisterRequest) { r.ConfirmPassword = "hunter23" },
			wantCode: CodePasswordMismatch,
		},
		{
			name:     "invalid email",
			mutate:   func(r *models.RegisterRequest) { r.Email = "not-an-email" },
			wantCode: CodeInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService()
			req := registerReq()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			verr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", verr.Code, tt.wantCode)
			}
		})
	}
}

func TestRegisterMissingFieldsDetails(t *testing.T) {
	svc, _ := newTestAuthService()
	req := registerReq()
	req.Username = ""
	req.Email = ""

	_, err := svc.Register(context.Background(), req)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, ok := verr.Details["username"]; !ok {
		t.Error("details should name the missing username field")
	}
	if _, ok := verr.Details["email"]; !ok {
		t.Error("details should name the missing email field")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	req := registerReq()
	req.Email = "other@example.gov"
	_, err := svc.Register(ctx, req)
	verr, ok := AsValidationError(err)
	if !ok || verr.Code != CodeUsernameTaken {
		t.Fatalf("expected USERNAME_TAKEN, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	req := registerReq()
	req.Username = "mthompson2"
	_, err := svc.Register(ctx, req)
	verr, ok := AsValidationError(err)
	if !ok || verr.Code != CodeEmailTaken {
		t.Fatalf("expected EMAIL_TAKEN, got %v", err)
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, identifier := range []string{"mthompson", "maria.thompson@example.gov"} {
		resp, err := svc.Login(ctx, &models.LoginRequest{
			LoginIdentifier: identifier,
			Password:        "hunter22",
		})
		if err != nil {
			t.Fatalf("Login(%q) failed: %v", identifier, err)
		}
		if resp.AccessToken == "" {
			t.Errorf("Login(%q): expected a token", identifier)
		}
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		LoginIdentifier: "nobody",
		Password:        "whatever",
	})
	verr, ok := AsValidationError(err)
	if !ok || verr.Code != CodeLoginNotFound {
		t.Fatalf("expected USERNAME_OR_EMAIL_NOT_FOUND, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, &models.LoginRequest{
		LoginIdentifier: "mthompson",
		Password:        "wrong",
	})
	verr, ok := AsValidationError(err)
	if !ok || verr.Code != CodeIncorrectPassword {
		t.Fatalf("expected INCORRECT_PASSWORD, got %v", err)
	}
}

func TestAuthenticateBearer(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.AuthenticateBearer(ctx, "Bearer "+resp.AccessToken)
	if err != nil {
		t.Fatalf("AuthenticateBearer failed: %v", err)
	}
	if user.Username != "mthompson" {
		t.Errorf("username = %q, want mthompson", user.Username)
	}
}

func TestAuthenticateBearerRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService()

	for _, header := range []string{"", "Bearer", "Bearer garbage", "Basic abc"} {
		if _, err := svc.AuthenticateBearer(context.Background(), header); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("header %q: expected ErrUnauthenticated, got %v", header, err)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(ctx, resp.AccessToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := svc.AuthenticateBearer(ctx, "Bearer "+resp.AccessToken); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestLogoutGarbageIsNoOp(t *testing.T) {
	svc, _ := newTestAuthService()

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("Logout of a malformed token should succeed, got %v", err)
	}
}

func TestAuthenticateBearerDeletedUser(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Simulate the account disappearing out from under a live token.
	svc.repo = repository.NewMemoryRepository()

	if _, err := svc.AuthenticateBearer(ctx, "Bearer "+resp.AccessToken); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for a deleted user, got %v", err)
	}
}
