package password

import (
	"strings"
	"testing"
)

// Low-cost hashers keep the suite fast; cost is configuration, not input.
func testBcrypt() *BcryptHasher { return NewBcryptHasher(4) }

func TestBcrypt_HashIsSalted(t *testing.T) {
	h := testBcrypt()

	first, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if err := h.Verify("password123", first); err != nil {
		t.Errorf("first hash should verify: %v", err)
	}
	if err := h.Verify("password123", second); err != nil {
		t.Errorf("second hash should verify: %v", err)
	}
}

func TestBcrypt_VerifyWrongPassword(t *testing.T) {
	h := testBcrypt()

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := h.Verify("password124", hash); err == nil {
		t.Fatal("wrong password must not verify")
	}
}

func TestBcrypt_VerifyMalformedHash(t *testing.T) {
	h := testBcrypt()

	for _, hash := range []string{"", "not-a-hash", "$2a$garbage", strings.Repeat("x", 60)} {
		if err := h.Verify("password123", hash); err == nil {
			t.Errorf("malformed hash %q must not verify", hash)
		}
	}
}

func TestBcrypt_HashRejectsOverlongPassword(t *testing.T) {
	h := testBcrypt()

	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Fatal("expected error for password over bcrypt's 72-byte limit")
	}
}

func TestBcrypt_HashNeverEqualsPlaintext(t *testing.T) {
	h := testBcrypt()

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "password123" || strings.Contains(hash, "password123") {
		t.Fatal("hash must not contain the plaintext")
	}
}

func TestBcrypt_DummyVerifyDoesNotPanic(t *testing.T) {
	h := testBcrypt()
	h.DummyVerify("anything")
	h.DummyVerify("")
}

func TestArgon2_RoundTrip(t *testing.T) {
	h := NewArgon2Hasher(1, 16*1024, 1)

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if err := h.Verify("password123", hash); err != nil {
		t.Errorf("correct password should verify: %v", err)
	}
	if err := h.Verify("password124", hash); err == nil {
		t.Error("wrong password must not verify")
	}
}

func TestArgon2_HashIsSalted(t *testing.T) {
	h := NewArgon2Hasher(1, 16*1024, 1)

	first, _ := h.Hash("password123")
	second, _ := h.Hash("password123")
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestArgon2_VerifyMalformedHash(t *testing.T) {
	h := NewArgon2Hasher(1, 16*1024, 1)

	malformed := []string{
		"",
		"$argon2id$",
		"$argon2id$v=19$m=bad$salt$hash",
		"$2a$12$bcrypt-style-hash",
		"$argon2id$v=19$m=16384,t=1,p=1$!!!$hash",
	}
	for _, hash := range malformed {
		if err := h.Verify("password123", hash); err == nil {
			t.Errorf("malformed hash %q must not verify", hash)
		}
	}
}

func TestNewHasher_FromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default is bcrypt", Config{}, "*password.BcryptHasher"},
		{"explicit argon2id", Config{Algorithm: AlgorithmArgon2id}, "*password.Argon2Hasher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.cfg)
			switch tt.want {
			case "*password.BcryptHasher":
				if _, ok := h.(*BcryptHasher); !ok {
					t.Fatalf("expected BcryptHasher, got %T", h)
				}
			case "*password.Argon2Hasher":
				if _, ok := h.(*Argon2Hasher); !ok {
					t.Fatalf("expected Argon2Hasher, got %T", h)
				}
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Algorithm: "md5"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("unsupported algorithm must fail validation")
	}

	cfg = Config{BcryptCost: 99}
	cfg.Algorithm = AlgorithmBcrypt
	if err := cfg.Validate(); err == nil {
		t.Fatal("out-of-range bcrypt cost must fail validation")
	}
}
