package password

import (
	"errors"
	"strings"
	"testing"
)

func TestBcryptHasher_HashVerify_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(WithCost(4)) // min cost to keep tests fast

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := h.Verify("pw1", hash); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := h.Verify("wrong", hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch for wrong password, got %v", err)
	}
}

func TestBcryptHasher_Hash_Salted(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ (salting)")
	}
}

func TestBcryptHasher_Hash_TooLong(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for password over 72 bytes")
	}
}

func TestBcryptHasher_WithCost_IgnoresOutOfRange(t *testing.T) {
	h := NewBcryptHasher(WithCost(99))
	if h.cost != 8 {
		t.Errorf("expected out-of-range cost to be ignored, got %d", h.cost)
	}
}

func TestArgon2Hasher_HashVerify_RoundTrip(t *testing.T) {
	h := NewArgon2Hasher(WithArgon2Memory(8 * 1024))

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if err := h.Verify("pw1", hash); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := h.Verify("wrong", hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch for wrong password, got %v", err)
	}
}

func TestArgon2Hasher_Verify_BadFormat(t *testing.T) {
	h := NewArgon2Hasher()
	if err := h.Verify("pw", "$2a$08$notargon"); err == nil {
		t.Error("expected error for non-argon2id hash")
	}
}

func TestNewFromConfig_SelectsAlgorithm(t *testing.T) {
	h, err := NewFromConfig(&Config{})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := h.(*BcryptHasher); !ok {
		t.Errorf("expected bcrypt by default, got %T", h)
	}

	h, err = NewFromConfig(&Config{Algorithm: AlgorithmArgon2id})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := h.(*Argon2Hasher); !ok {
		t.Errorf("expected argon2id, got %T", h)
	}

	if _, err := NewFromConfig(&Config{Algorithm: "md5"}); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
