// Package tokens issues and verifies the bearer credentials used by the
// license tracker API. Tokens are self-contained HS256 JWTs; revocation is
// handled through a shared blacklist store that is consulted before any
// cryptographic verification.
package tokens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// DefaultRole is the primary role claim for principals with no group
// memberships.
const DefaultRole = "User"

// BlacklistRetention is how long revoked tokens are kept. Entries older than
// this are swept before every membership check, so a revoked token whose
// embedded expiry lies beyond the retention window verifies again once the
// sweep drops it. Access TTLs are configured well below 24h, which keeps
// that window unreachable in practice.
const BlacklistRetention = 24 * time.Hour

const bearerPrefix = "Bearer "

// Principal is the identity a token is minted for.
type Principal struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Groups    []string
}

// Claims is the payload embedded in every access token.
type Claims struct {
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      string   `json:"role"`
	Groups    []string `json:"groups"`
	jwt.RegisteredClaims
}

// BlacklistStore records revoked token strings. Implementations must be
// shared across instances so a logout on one instance is honored everywhere.
type BlacklistStore interface {
	// InsertToken records a token as revoked. Inserting a token that is
	// already present is a no-op, not an error.
	InsertToken(ctx context.Context, token string) error
	// TokenExists reports whether a token has been revoked.
	TokenExists(ctx context.Context, token string) (bool, error)
	// DeleteTokensBefore drops entries blacklisted before the cutoff.
	DeleteTokensBefore(ctx context.Context, cutoff time.Time) error
}

// Status classifies the outcome of verifying a single token.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusRevoked
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusRevoked:
		return "revoked"
	default:
		return "invalid"
	}
}

// Verification is the result of a Verify call. Claims is set only when
// Status is StatusValid. Callers that do not care why verification failed
// should branch on Valid() alone; the HTTP layer never distinguishes
// failure modes to clients.
type Verification struct {
	Status Status
	Claims *Claims
}

// Valid reports whether the token verified successfully.
func (v Verification) Valid() bool {
	return v.Status == StatusValid
}

// Authority mints and validates access tokens. The signing secret, default
// TTL and blacklist store are injected at construction; an Authority holds
// no other state and is safe for concurrent use.
type Authority struct {
	secret     []byte
	defaultTTL time.Duration
	blacklist  BlacklistStore
	now        func() time.Time
}

func NewAuthority(secret string, defaultTTL time.Duration, blacklist BlacklistStore) *Authority {
	return &Authority{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

// Issue mints a signed access token for the principal. A non-positive ttl
// falls back to the authority's configured default. The primary role claim
// is the principal's first group, or DefaultRole when it belongs to none.
// Issue has no side effects; tokens are never stored server-side.
func (a *Authority) Issue(p Principal, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = a.defaultTTL
	}

	role := DefaultRole
	if len(p.Groups) > 0 {
		role = p.Groups[0]
	}
	groups := p.Groups
	if groups == nil {
		groups = []string{}
	}

	claims := Claims{
		UserID:    p.ID,
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      role,
		Groups:    groups,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(a.now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(a.now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify checks a raw token string. The blacklist is consulted first: the
// retention sweep runs, then membership is checked, and a revoked token
// fails immediately without any signature or expiry work. Only then is the
// token decoded and its signature and expiry validated.
func (a *Authority) Verify(ctx context.Context, tokenString string) Verification {
	// Sweep is best-effort; holding entries a few extra milliseconds
	// past retention is harmless.
	_ = a.blacklist.DeleteTokensBefore(ctx, a.now().Add(-BlacklistRetention))

	revoked, err := a.blacklist.TokenExists(ctx, tokenString)
	if err != nil {
		// Fail closed: an unreachable blacklist store means we cannot
		// prove the token was not revoked.
		return Verification{Status: StatusInvalid}
	}
	if revoked {
		return Verification{Status: StatusRevoked}
	}

	claims, err := a.decode(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Verification{Status: StatusExpired}
		}
		return Verification{Status: StatusInvalid}
	}

	return Verification{Status: StatusValid, Claims: claims}
}

// Revoke blacklists a raw token string. Revocation is best-effort logout
// semantics: an empty, malformed or forged token is acknowledged without a
// blacklist mutation, a well-formed token is recorded even when it has
// already expired, and recording a token twice is idempotent. Only a
// storage failure is surfaced to the caller.
func (a *Authority) Revoke(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}

	if _, err := a.decode(tokenString); err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		// Not a token this authority issued; nothing to blacklist.
		return nil
	}

	return a.blacklist.InsertToken(ctx, tokenString)
}

func (a *Authority) decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return a.now() }))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// BearerToken extracts the raw token from an Authorization header value.
// The scheme prefix is case-sensitive; a missing or malformed header yields
// ok=false.
func BearerToken(header string) (token string, ok bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token = strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", false
	}
	return token, true
}
