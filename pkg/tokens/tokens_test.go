package tokens

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// memBlacklist is an in-memory BlacklistStore with controllable timestamps.
type memBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time

	insertErr error
	existsErr error
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *memBlacklist) InsertToken(ctx context.Context, token string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[token]; exists {
		return nil
	}
	m.entries[token] = m.now()
	return nil
}

func (m *memBlacklist) TokenExists(ctx context.Context, token string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.entries[token]
	return exists, nil
}

func (m *memBlacklist) DeleteTokensBefore(ctx context.Context, cutoff time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, at := range m.entries {
		if at.Before(cutoff) {
			delete(m.entries, token)
		}
	}
	return nil
}

func (m *memBlacklist) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func testPrincipal() Principal {
	return Principal{
		ID:        "user-123",
		Username:  "alice",
		Email:     "alice@example.gov",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Groups:    []string{"Admin"},
	}
}

// ============================================================================
// Issuance Tests
// ============================================================================

func TestIssueClaims(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)

	tokenString, err := authority.Issue(testPrincipal(), 0)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if parts := strings.Split(tokenString, "."); len(parts) != 3 {
		t.Errorf("Expected 3 JWT parts, got %d", len(parts))
	}

	v := authority.Verify(context.Background(), tokenString)
	if !v.Valid() {
		t.Fatalf("Expected valid verification, got %v", v.Status)
	}

	claims := v.Claims
	if claims.UserID != "user-123" {
		t.Errorf("Expected user_id user-123, got %s", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}
	if claims.Email != "alice@example.gov" {
		t.Errorf("Expected email alice@example.gov, got %s", claims.Email)
	}
	if claims.FirstName != "Alice" || claims.LastName != "Nguyen" {
		t.Errorf("Name claims not preserved: %s %s", claims.FirstName, claims.LastName)
	}
	if claims.Role != "Admin" {
		t.Errorf("Expected role Admin, got %s", claims.Role)
	}
	if len(claims.Groups) != 1 || claims.Groups[0] != "Admin" {
		t.Errorf("Expected groups [Admin], got %v", claims.Groups)
	}

	if claims.ExpiresAt == nil {
		t.Fatal("Expected ExpiresAt to be set")
	}
	expected := time.Now().Add(30 * time.Minute)
	if claims.ExpiresAt.Time.Before(expected.Add(-5*time.Second)) ||
		claims.ExpiresAt.Time.After(expected.Add(5*time.Second)) {
		t.Errorf("Expected expiry around %v, got %v", expected, claims.ExpiresAt.Time)
	}
}

func TestIssuePrimaryRole(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	tests := []struct {
		name       string
		groups     []string
		wantRole   string
		wantGroups int
	}{
		{
			name:       "single group becomes primary role",
			groups:     []string{"Admin"},
			wantRole:   "Admin",
			wantGroups: 1,
		},
		{
			name:       "first of several groups wins",
			groups:     []string{"User", "Admin"},
			wantRole:   "User",
			wantGroups: 2,
		},
		{
			name:       "empty groups default to User",
			groups:     []string{},
			wantRole:   DefaultRole,
			wantGroups: 0,
		},
		{
			name:       "nil groups default to User",
			groups:     nil,
			wantRole:   DefaultRole,
			wantGroups: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPrincipal()
			p.Groups = tt.groups

			tokenString, err := authority.Issue(p, time.Minute)
			if err != nil {
				t.Fatalf("Failed to issue token: %v", err)
			}

			v := authority.Verify(context.Background(), tokenString)
			if !v.Valid() {
				t.Fatalf("Expected valid token, got %v", v.Status)
			}
			if v.Claims.Role != tt.wantRole {
				t.Errorf("Expected role %s, got %s", tt.wantRole, v.Claims.Role)
			}
			if v.Claims.Groups == nil {
				t.Error("Expected groups claim to be present, got nil")
			}
			if len(v.Claims.Groups) != tt.wantGroups {
				t.Errorf("Expected %d groups, got %d", tt.wantGroups, len(v.Claims.Groups))
			}
		})
	}
}

func TestIssueTTLFallback(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 5*time.Minute, newMemBlacklist())

	tokenString, err := authority.Issue(testPrincipal(), -1)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	v := authority.Verify(context.Background(), tokenString)
	if !v.Valid() {
		t.Fatalf("Expected valid token, got %v", v.Status)
	}

	expected := time.Now().Add(5 * time.Minute)
	if v.Claims.ExpiresAt.Time.Before(expected.Add(-5*time.Second)) ||
		v.Claims.ExpiresAt.Time.After(expected.Add(5*time.Second)) {
		t.Errorf("Expected default TTL expiry around %v, got %v", expected, v.Claims.ExpiresAt.Time)
	}
}

// ============================================================================
// Verification Tests
// ============================================================================

func TestVerifyRejectsGarbage(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	tests := []struct {
		name        string
		tokenString string
	}{
		{"empty token", ""},
		{"not a jwt", "this-is-not-a-jwt-token-at-all"},
		{"missing parts", "header.payload"},
		{"only dots", "..."},
		{"invalid format", "invalid.token.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := authority.Verify(context.Background(), tt.tokenString)
			if v.Status != StatusInvalid {
				t.Errorf("Expected StatusInvalid, got %v", v.Status)
			}
			if v.Claims != nil {
				t.Error("Expected nil claims on failure")
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a1 := NewAuthority("secret-one-that-is-long-enough", 30*time.Minute, newMemBlacklist())
	a2 := NewAuthority("secret-two-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	tokenString, err := a1.Issue(testPrincipal(), time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if v := a2.Verify(context.Background(), tokenString); v.Status != StatusInvalid {
		t.Errorf("Expected StatusInvalid for foreign signature, got %v", v.Status)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	issued := time.Now()
	authority.now = func() time.Time { return issued }

	tokenString, err := authority.Issue(testPrincipal(), 10*time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	// Still valid one second before expiry.
	authority.now = func() time.Time { return issued.Add(10*time.Minute - time.Second) }
	if v := authority.Verify(context.Background(), tokenString); !v.Valid() {
		t.Fatalf("Expected token valid before expiry, got %v", v.Status)
	}

	// Expired once the TTL has elapsed.
	authority.now = func() time.Time { return issued.Add(10*time.Minute + time.Second) }
	if v := authority.Verify(context.Background(), tokenString); v.Status != StatusExpired {
		t.Errorf("Expected StatusExpired, got %v", v.Status)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	tokenString, err := authority.Issue(testPrincipal(), time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(tokenString, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if v := authority.Verify(context.Background(), tampered); v.Status != StatusInvalid {
		t.Errorf("Expected StatusInvalid for tampered payload, got %v", v.Status)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	if v := authority.Verify(context.Background(), unsigned); v.Status != StatusInvalid {
		t.Errorf("Expected StatusInvalid for alg=none token, got %v", v.Status)
	}
}

func TestVerifyFailsClosedOnStoreError(t *testing.T) {
	bl := newMemBlacklist()
	bl.existsErr = context.DeadlineExceeded
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)

	tokenString, err := authority.Issue(testPrincipal(), time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if v := authority.Verify(context.Background(), tokenString); v.Status != StatusInvalid {
		t.Errorf("Expected StatusInvalid when blacklist is unreachable, got %v", v.Status)
	}
}

// ============================================================================
// Revocation Tests
// ============================================================================

func TestRevokeThenVerify(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)
	ctx := context.Background()

	tokenString, err := authority.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if v := authority.Verify(ctx, tokenString); !v.Valid() {
		t.Fatalf("Expected token valid before revocation, got %v", v.Status)
	}

	if err := authority.Revoke(ctx, tokenString); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	// Revoked even though the embedded expiry has not passed.
	if v := authority.Verify(ctx, tokenString); v.Status != StatusRevoked {
		t.Errorf("Expected StatusRevoked, got %v", v.Status)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)
	ctx := context.Background()

	tokenString, err := authority.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if err := authority.Revoke(ctx, tokenString); err != nil {
		t.Fatalf("First revoke failed: %v", err)
	}
	if err := authority.Revoke(ctx, tokenString); err != nil {
		t.Fatalf("Second revoke failed: %v", err)
	}

	if bl.size() != 1 {
		t.Errorf("Expected exactly one blacklist entry, got %d", bl.size())
	}
}

func TestRevokeGarbageIsNoOp(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)
	ctx := context.Background()

	tests := []struct {
		name        string
		tokenString string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.token"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := authority.Revoke(ctx, tt.tokenString); err != nil {
				t.Fatalf("Revoke should acknowledge success, got %v", err)
			}
		})
	}

	if bl.size() != 0 {
		t.Errorf("Expected no blacklist mutation for garbage tokens, got %d entries", bl.size())
	}
}

func TestRevokeForeignSignatureIsNoOp(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)
	foreign := NewAuthority("different-secret-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	tokenString, err := foreign.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if err := authority.Revoke(context.Background(), tokenString); err != nil {
		t.Fatalf("Revoke should acknowledge success, got %v", err)
	}
	if bl.size() != 0 {
		t.Errorf("Expected no blacklist entry for a token we did not issue, got %d", bl.size())
	}
}

func TestRevokeExpiredTokenStillBlacklists(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)

	issued := time.Now()
	authority.now = func() time.Time { return issued }

	tokenString, err := authority.Issue(testPrincipal(), time.Minute)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	authority.now = func() time.Time { return issued.Add(2 * time.Minute) }

	if err := authority.Revoke(context.Background(), tokenString); err != nil {
		t.Fatalf("Revoke of expired token failed: %v", err)
	}
	if bl.size() != 1 {
		t.Errorf("Expected expired token to be recorded, got %d entries", bl.size())
	}
}

func TestRevokeSurfacesStorageFailure(t *testing.T) {
	bl := newMemBlacklist()
	bl.insertErr = context.DeadlineExceeded
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)

	tokenString, err := authority.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if err := authority.Revoke(context.Background(), tokenString); err == nil {
		t.Fatal("Expected storage error to surface, got nil")
	}
}

// ============================================================================
// Blacklist Retention Tests
// ============================================================================

// A revoked token older than the retention window is swept before the
// membership check, so it verifies as valid again if its own expiry has not
// passed. Flagged in the design review as likely unintended, preserved here.
func TestRevocationLapsesAfterRetention(t *testing.T) {
	bl := newMemBlacklist()
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, bl)
	ctx := context.Background()

	issued := time.Now()
	authority.now = func() time.Time { return issued }
	bl.now = func() time.Time { return issued }

	tokenString, err := authority.Issue(testPrincipal(), 48*time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if err := authority.Revoke(ctx, tokenString); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if v := authority.Verify(ctx, tokenString); v.Status != StatusRevoked {
		t.Fatalf("Expected StatusRevoked right after revoke, got %v", v.Status)
	}

	// Inside the retention window the revocation holds.
	authority.now = func() time.Time { return issued.Add(23 * time.Hour) }
	if v := authority.Verify(ctx, tokenString); v.Status != StatusRevoked {
		t.Errorf("Expected StatusRevoked inside retention window, got %v", v.Status)
	}

	// Past the window the sweep drops the entry and the still-unexpired
	// token verifies again.
	authority.now = func() time.Time { return issued.Add(25 * time.Hour) }
	if v := authority.Verify(ctx, tokenString); !v.Valid() {
		t.Errorf("Expected token valid again after retention sweep, got %v", v.Status)
	}
	if bl.size() != 0 {
		t.Errorf("Expected swept blacklist, got %d entries", bl.size())
	}
}

// ============================================================================
// Bearer Header Tests
// ============================================================================

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"well-formed header", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"empty header", "", "", false},
		{"missing scheme", "abc.def.ghi", "", false},
		{"lowercase scheme", "bearer abc.def.ghi", "", false},
		{"scheme only", "Bearer ", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if token != tt.wantToken {
				t.Errorf("Expected token %q, got %q", tt.wantToken, token)
			}
		})
	}
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	authority := NewAuthority("test-secret-key-that-is-long-enough", 30*time.Minute, newMemBlacklist())

	base := time.Now()
	authority.now = func() time.Time { return base }
	first, err := authority.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	authority.now = func() time.Time { return base.Add(time.Second) }
	second, err := authority.Issue(testPrincipal(), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if first == second {
		t.Error("Expected tokens issued at different times to differ")
	}
}
