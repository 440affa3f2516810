package service

import (
	"strings"
	"testing"
)

func TestGeneratePassword_LengthAndAlphabet(t *testing.T) {
	secret, err := GeneratePassword()
	if err != nil {
		t.Fatalf("generate password: %v", err)
	}
	if len(secret) != passwordLength {
		t.Fatalf("expected %d chars, got %d", passwordLength, len(secret))
	}
	for _, c := range secret {
		if !strings.ContainsRune(passwordAlphabet, c) {
			t.Fatalf("character %q outside alphabet", c)
		}
	}
}

func TestGeneratePassword_NotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		secret, err := GeneratePassword()
		if err != nil {
			t.Fatalf("generate password: %v", err)
		}
		if seen[secret] {
			t.Fatalf("duplicate secret generated: %s", secret)
		}
		seen[secret] = true
	}
}
