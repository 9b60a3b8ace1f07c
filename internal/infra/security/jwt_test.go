package security

import (
	"testing"
	"time"
)

func testIssuer(now time.Time) JWTIssuer {
	return JWTIssuer{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		Now:        func() time.Time { return now },
	}
}

func TestIssuePairRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(now)

	pair, err := issuer.IssuePair("user-1", "sam@example.com", "guest")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !pair.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected access expiry %v", pair.ExpiresAt)
	}

	claims, err := issuer.ParseAccess(pair.Access)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "sam@example.com" || claims.Role != "guest" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	refresh, err := issuer.ParseRefresh(pair.Refresh)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.UserID != "user-1" {
		t.Fatalf("unexpected refresh subject %q", refresh.UserID)
	}
}

func TestParseRejectsWrongUse(t *testing.T) {
	issuer := testIssuer(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	pair, err := issuer.IssuePair("user-1", "sam@example.com", "guest")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.ParseAccess(pair.Refresh); err != ErrTokenInvalid {
		t.Fatalf("refresh token as access: expected ErrTokenInvalid, got %v", err)
	}
	if _, err := issuer.ParseRefresh(pair.Access); err != ErrTokenInvalid {
		t.Fatalf("access token as refresh: expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseRejectsExpiredAndForeign(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(issued)
	pair, err := issuer.IssuePair("user-1", "sam@example.com", "guest")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	late := testIssuer(issued.Add(16 * time.Minute))
	if _, err := late.ParseAccess(pair.Access); err != ErrTokenInvalid {
		t.Fatalf("expired access: expected ErrTokenInvalid, got %v", err)
	}

	other := testIssuer(issued)
	other.Secret = []byte("different-secret")
	if _, err := other.ParseAccess(pair.Access); err != ErrTokenInvalid {
		t.Fatalf("foreign signature: expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	issuer := testIssuer(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	first, err := issuer.IssuePair("user-1", "sam@example.com", "guest")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := issuer.IssuePair("user-1", "sam@example.com", "guest")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if first.Refresh == second.Refresh {
		t.Fatal("refresh tokens from the same instant must differ")
	}
}
