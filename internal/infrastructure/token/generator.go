package token

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/openplanhq/trackd/internal/application/ports"
)

// rawLen random bytes encode to exactly 32 URL-safe characters (192 bits of
// entropy before encoding).
const rawLen = 24

// Generator produces invitation tokens from crypto/rand. The raw-URL base64
// alphabet needs no escaping in links.
type Generator struct{}

// NewGenerator builds a Generator.
func NewGenerator() *Generator { return &Generator{} }

// NewToken returns a fresh 32-character URL-safe token.
func (Generator) NewToken() (string, error) {
	b := make([]byte, rawLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

var _ ports.TokenGenerator = (*Generator)(nil)
