package certificate

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

const (
	DefaultNumberPrefix = "PROV-"
	DefaultNumberLength = 8

	base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RandomNumber returns prefix followed by length uppercase base36 characters read from r
// (crypto/rand when r is nil).
func RandomNumber(r io.Reader, prefix string, length int) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	if length <= 0 {
		length = DefaultNumberLength
	}

	base := big.NewInt(int64(len(base36Alphabet)))
	var b strings.Builder
	b.Grow(len(prefix) + length)
	b.WriteString(prefix)
	for i := 0; i < length; i++ {
		n, err := rand.Int(r, base)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// ValidNumber reports whether s is prefix followed by length uppercase base36 characters.
func ValidNumber(s string, prefix string, length int) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	body := s[len(prefix):]
	if len(body) != length {
		return false
	}
	for i := 0; i < len(body); i++ {
		if !strings.ContainsRune(base36Alphabet, rune(body[i])) {
			return false
		}
	}
	return true
}
