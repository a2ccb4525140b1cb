package auth

import "testing"

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("salt length = %d, want 32 hex characters", len(salt))
	}
	for _, r := range salt {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("salt contains non-hex character %q", r)
		}
	}

	other, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if salt == other {
		t.Error("two generated salts collided")
	}
}

func TestHashPassword(t *testing.T) {
	h := HashPassword("secret", "aabbcc")
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64 hex characters", len(h))
	}
	if h != HashPassword("secret", "aabbcc") {
		t.Error("hashing is not deterministic")
	}
	if h == HashPassword("secret", "ccbbaa") {
		t.Error("different salts produced the same hash")
	}
	if h == HashPassword("other", "aabbcc") {
		t.Error("different passwords produced the same hash")
	}
}

func TestHashPassword_SaltDefeatsReuse(t *testing.T) {
	// Same password under two distinct generated salts must hash
	// differently, otherwise precomputed hashes transfer across accounts.
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if s1 == s2 {
		t.Fatal("generated salts collided")
	}
	if HashPassword("hunter2", s1) == HashPassword("hunter2", s2) {
		t.Error("same password hashed identically under distinct salts")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	stored := HashPassword("secret", salt)

	if !verifyPassword("secret", salt, stored) {
		t.Error("correct password rejected")
	}
	if verifyPassword("wrong", salt, stored) {
		t.Error("wrong password accepted")
	}
	if verifyPassword("secret", salt, "not-a-hash") {
		t.Error("corrupted stored hash accepted")
	}
}
