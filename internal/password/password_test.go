package password

import (
	"bytes"
	"testing"
)

func TestHashProducesUniqueSalts(t *testing.T) {
	hash1, salt1, err := Hash("Tr0ub4dor&3")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, salt2, err := Hash("Tr0ub4dor&3")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if bytes.Equal(salt1, salt2) {
		t.Error("expected distinct salts for repeated hashing")
	}
	if bytes.Equal(hash1, hash2) {
		t.Error("expected distinct digests for repeated hashing")
	}

	if !Verify("Tr0ub4dor&3", hash1, salt1) {
		t.Error("Verify() = false for first digest")
	}
	if !Verify("Tr0ub4dor&3", hash2, salt2) {
		t.Error("Verify() = false for second digest")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, salt, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if Verify("wrong", hash, salt) {
		t.Error("Verify() = true for wrong password")
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	hash, salt, err := Hash("password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name string
		hash []byte
		salt []byte
	}{
		{name: "nil-hash", hash: nil, salt: salt},
		{name: "nil-salt", hash: hash, salt: nil},
		{name: "both-nil", hash: nil, salt: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify("password", tt.hash, tt.salt) {
				t.Error("Verify() = true for malformed input")
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8, DefaultAlphabet)
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("GenerateCode() length = %d, want 8", len(code))
	}
	for _, r := range code {
		found := false
		for _, a := range DefaultAlphabet {
			if r == a {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("GenerateCode() produced %q outside alphabet", r)
		}
	}
}

func TestGenerateCodeInvalidArgs(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
	}{
		{name: "zero-length", length: 0, alphabet: DefaultAlphabet},
		{name: "negative-length", length: -1, alphabet: DefaultAlphabet},
		{name: "empty-alphabet", length: 8, alphabet: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateCode(tt.length, tt.alphabet); err != ErrInvalidCodeSpec {
				t.Fatalf("GenerateCode() error = %v, want ErrInvalidCodeSpec", err)
			}
		})
	}
}
