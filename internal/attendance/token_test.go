package attendance

import (
	"encoding/hex"
	"testing"
)

func TestNewTokenLength(t *testing.T) {
	token, err := NewToken(16)
	if err != nil {
		t.Fatalf("NewToken() failed: %v", err)
	}

	// 16 random bytes hex-encode to a fixed 32 characters.
	if len(token) != 32 {
		t.Fatalf("token length = %d, want 32", len(token))
	}

	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
}

func TestNewTokenDefaultsSize(t *testing.T) {
	token, err := NewToken(0)
	if err != nil {
		t.Fatalf("NewToken() failed: %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("token length = %d, want 32 for default size", len(token))
	}
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewToken(16)
		if err != nil {
			t.Fatalf("NewToken() failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
