package util

import (
	"testing"
)

func TestHashPassword_AndVerifyPassword_RoundTrip(t *testing.T) {
	plain := "correct horse battery staple"

	hashed, err := HashPassword(plain)
	if err != nil {
		t.Fatalf("HashPassword err: %v", err)
	}
	if hashed == "" || hashed == plain {
		t.Fatalf("unexpected hash %q", hashed)
	}

	if err := VerifyPassword(plain, hashed); err != nil {
		t.Fatalf("VerifyPassword should succeed, got: %v", err)
	}
}

func TestVerifyPassword_WrongPassword_ReturnsError(t *testing.T) {
	hashed, err := HashPassword("the-real-one")
	if err != nil {
		t.Fatalf("HashPassword err: %v", err)
	}

	if err := VerifyPassword("a-guess", hashed); err == nil {
		t.Fatalf("expected error for wrong password, got nil")
	}
}

func TestVerifyPassword_GarbageHash_ReturnsError(t *testing.T) {
	if err := VerifyPassword("anything", "$2y$nope"); err == nil {
		t.Fatalf("expected error for invalid hash, got nil")
	}
}

func TestHashPassword_SamePasswordDifferentHashes(t *testing.T) {
	a, err := HashPassword("repeat-me")
	if err != nil {
		t.Fatalf("HashPassword err: %v", err)
	}
	b, err := HashPassword("repeat-me")
	if err != nil {
		t.Fatalf("HashPassword err: %v", err)
	}
	if a == b {
		t.Fatalf("expected salted hashes to differ")
	}
}
