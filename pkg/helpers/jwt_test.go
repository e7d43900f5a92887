package helpers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret-test-secret", "auth-test", ttl)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	return m
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)
	in := TokenClaims{UserID: "u-1", Email: "a@b.com", Role: "user"}
	tok, exp, err := m.Issue(in)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}
	got, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if *got != in {
		t.Fatalf("claims = %+v, want %+v", *got, in)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, time.Second).WithClock(func() time.Time { return now })
	tok, _, err := m.Issue(TokenClaims{UserID: "u-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(tok); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
	now = now.Add(2 * time.Second)
	got, err := m.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if got != nil {
		t.Fatal("expired token must not yield claims")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := newTestManager(t, time.Hour)
	tok, _, _ := m.Issue(TokenClaims{UserID: "u-1", Role: "user"})

	other, _ := NewTokenManager("another-secret", "auth-test", time.Hour)
	if _, err := other.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: err = %v", err)
	}

	parts := strings.Split(tok, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := m.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered payload: err = %v", err)
	}

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(bad); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("malformed %q: err = %v", bad, err)
		}
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t, time.Hour)
	c := &claims{
		TokenClaims:      TokenClaims{UserID: "u-1"},
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "auth-test", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte("test-secret-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify(tok); err == nil {
		t.Fatal("expected HS512 token to be rejected")
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.Verify(none); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}

func TestVerifyRequiresExpiry(t *testing.T) {
	m := newTestManager(t, time.Hour)
	c := &claims{TokenClaims: TokenClaims{UserID: "u-1"}, RegisteredClaims: jwt.RegisteredClaims{Issuer: "auth-test"}}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret-test-secret"))
	if _, err := m.Verify(tok); err == nil {
		t.Fatal("expected token without exp to be rejected")
	}
}

func TestNewTokenManagerValidation(t *testing.T) {
	if _, err := NewTokenManager("", "iss", time.Hour); err == nil {
		t.Fatal("expected empty secret to fail")
	}
	if _, err := NewTokenManager("s", "iss", 0); err == nil {
		t.Fatal("expected zero ttl to fail")
	}
}
