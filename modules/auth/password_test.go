package auth

import (
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext password")
	}

	if !hasher.Verify("correct horse battery staple", hash) {
		t.Error("Verify() with correct password = false, want true")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() with wrong password = true, want false")
	}
}

func TestPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt salts each hash, so identical inputs must not collide.
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}
}

func TestPasswordHasher_VerifyBadHash(t *testing.T) {
	hasher := NewPasswordHasher()

	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Error("Verify() against malformed hash = true, want false")
	}
}
