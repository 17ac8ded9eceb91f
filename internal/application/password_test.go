package application

import (
	"errors"
	"strings"
	"testing"
)

// Small parameters keep the derivation fast in tests.
var testArgonParams = Argon2idParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("clave-segura", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if err := VerifyPassword(hash, "clave-segura"); err != nil {
		t.Fatalf("VerifyPassword rejected the correct password: %v", err)
	}
	if err := VerifyPassword(hash, "clave-mala"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("misma", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("misma", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$bcrypt$x$y$z$w"} {
		if err := VerifyPassword(hash, "pw"); !errors.Is(err, ErrInvalidPasswordHash) {
			t.Fatalf("VerifyPassword(%q) = %v, want ErrInvalidPasswordHash", hash, err)
		}
	}
}
