package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rockymountnc/licensetracker/internal/metrics"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
	"github.com/rockymountnc/licensetracker/pkg/tokens"
)

type AuthService struct {
	repo      repository.Repository
	authority *tokens.Authority
}

func NewAuthService(repo repository.Repository, authority *tokens.Authority) *AuthService {
	return &AuthService{repo: repo, authority: authority}
}

// Register creates an account and signs the new user in, returning a fresh
// access token alongside the stored profile.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, NewValidationError(CodeUsernameTaken, "username is already taken")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, NewValidationError(CodeEmailTaken, "email is already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           userID.String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Groups:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, NewValidationError(CodeUsernameTaken, "username is already taken")
		}
		return nil, err
	}

	return s.issueFor(user)
}

// Login resolves the identifier as a username or an email and verifies the
// password before issuing a token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	if req.LoginIdentifier == "" || req.Password == "" {
		return nil, NewValidationError(CodeEmptyFields, "login identifier and password are required")
	}

	user, err := s.repo.GetUserByLogin(ctx, req.LoginIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewValidationError(CodeLoginNotFound, "no account matches that username or email")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewValidationError(CodeIncorrectPassword, "incorrect password")
	}

	return s.issueFor(user)
}

// Logout revokes the presented token. Revocation is best effort: malformed
// or foreign tokens are swallowed and only storage failures surface.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	if err := s.authority.Revoke(ctx, tokenString); err != nil {
		return err
	}
	metrics.TokensRevoked.Inc()
	return nil
}

// AuthenticateBearer resolves an Authorization header to the stored user.
// A token that verifies but names a user who no longer exists is treated
// the same as an invalid token.
func (s *AuthService) AuthenticateBearer(ctx context.Context, header string) (*models.User, error) {
	tokenString, ok := tokens.BearerToken(header)
	if !ok {
		return nil, ErrUnauthenticated
	}

	verification := s.authority.Verify(ctx, tokenString)
	if !verification.Valid() {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, verification.Claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) issueFor(user *models.User) (*models.TokenResponse, error) {
	token, err := s.authority.Issue(tokens.Principal{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Groups:    user.Groups,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	metrics.TokensIssued.Inc()

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.ToResponse(),
	}, nil
}

func validateRegistration(req *models.RegisterRequest) error {
	missing := map[string]string{}
	for field, value := range map[string]string{
		"username":         req.Username,
		"first_name":       req.FirstName,
		"last_name":        req.LastName,
		"email":            req.Email,
		"password":         req.Password,
		"confirm_password": req.ConfirmPassword,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "this field is required"
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Code:    CodeEmptyFields,
			Message: "all fields are required",
			Details: missing,
		}
	}

	if req.Password != req.ConfirmPassword {
		return NewValidationError(CodePasswordMismatch, "passwords do not match")
	}

	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return NewValidationError(CodeInvalidEmail, "email address is not valid")
	}

	return nil
}
