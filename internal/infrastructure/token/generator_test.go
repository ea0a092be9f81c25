package token

import (
	"strings"
	"testing"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestNewTokenShape(t *testing.T) {
	g := NewGenerator()
	tok, err := g.NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if len(tok) != 32 {
		t.Errorf("len = %d, want 32", len(tok))
	}
	for _, r := range tok {
		if !strings.ContainsRune(urlSafeAlphabet, r) {
			t.Errorf("token contains non-URL-safe rune %q", r)
		}
	}
}

func TestNewTokenNoDuplicates(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		tok, err := g.NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[tok] = true
	}
}
