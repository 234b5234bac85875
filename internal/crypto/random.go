// Package crypto holds the small random helpers the dev server needs.
package crypto

import (
	"crypto/rand"
	"errors"
	"io"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+[]{}|;:,.<>?")

// GenerateSecret returns a random printable string of length n, suitable as
// an HMAC signing key.
func GenerateSecret(n int) (string, error) {
	return generate(rand.Reader, n)
}

func generate(r io.Reader, n int) (string, error) {
	if n <= 0 {
		return "", errors.New("length must be positive")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	out := make([]rune, n)
	for i, b := range buf {
		out[i] = letters[int(b)%len(letters)]
	}
	return string(out), nil
}
