package utils

import "testing"

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	b, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if a == b {
		t.Error("two generated tokens should not be equal")
	}
	if len(a) == 0 {
		t.Error("token should not be empty")
	}
}

func TestHashAndVerifyToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}

	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}

	if !VerifyToken(hash, token) {
		t.Error("token should verify against its own hash")
	}
	if VerifyToken(hash, token+"x") {
		t.Error("modified token should not verify")
	}
}
