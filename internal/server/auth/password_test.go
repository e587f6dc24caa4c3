package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "pw1" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected an algorithm-tagged bcrypt digest, got %q", digest)
	}
	if !CheckPassword("pw1", digest) {
		t.Fatal("CheckPassword must accept the original plaintext")
	}
	if CheckPassword("pw2", digest) {
		t.Fatal("CheckPassword must reject a different plaintext")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	d1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	d2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if d1 == d2 {
		t.Fatal("two digests of the same password must differ (random salt)")
	}
	if !CheckPassword("same-password", d1) || !CheckPassword("same-password", d2) {
		t.Fatal("both digests must verify")
	}
}

func TestCheckPassword_GarbageDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("anything", "not-a-bcrypt-digest") {
		t.Fatal("garbage digest must not verify")
	}
}
