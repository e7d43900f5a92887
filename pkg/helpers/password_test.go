package helpers

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	for _, pw := range []string{"secret1", "p", "unicode-пароль", strings.Repeat("x", 72)} {
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("hash %q: %v", pw, err)
		}
		if hash == pw {
			t.Fatal("hash must not equal plaintext")
		}
		ok, err := h.Verify(pw, hash)
		if err != nil || !ok {
			t.Fatalf("verify %q: ok=%v err=%v", pw, ok, err)
		}
	}
}

func TestVerifyMismatchIsNotAnError(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ok, err := h.Verify("secret2", hash)
	if err != nil {
		t.Fatalf("mismatch returned error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret1")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	ok, err := h.Verify("secret1", "not-a-bcrypt-hash")
	if ok || !errors.Is(err, ErrHashing) {
		t.Fatalf("ok=%v err=%v, want ErrHashing", ok, err)
	}
}

func TestHashTooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrHashing) {
		t.Fatalf("err = %v, want ErrHashing", err)
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	if h := NewPasswordHasher(1); h.Cost != bcrypt.MinCost {
		t.Fatalf("cost = %d", h.Cost)
	}
	if h := NewPasswordHasher(99); h.Cost != bcrypt.MaxCost {
		t.Fatalf("cost = %d", h.Cost)
	}
}
