// Package auth implements the optional password authentication of the API:
// a PBKDF2 stretched key, an HMAC challenge handshake, and a
// ChaCha20-Poly1305 framed connection for everything after it.
package auth

import (
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"errors"
)

const (
	AutoGenKeyLength = 16
	Base62Chars      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	PBKDF2Iterations = 100000
	PBKDF2Salt       = "inputtrack-Key-v1"
	sessionContext   = "inputtrack-Session-v1"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// GenerateKey returns a random base62 password of AutoGenKeyLength characters.
func GenerateKey() (string, error) {
	random := make([]byte, AutoGenKeyLength)
	if _, err := rand.Read(random); err != nil {
		return "", err
	}
	key := make([]byte, AutoGenKeyLength)
	for i, b := range random {
		key[i] = Base62Chars[int(b)%len(Base62Chars)]
	}
	return string(key), nil
}

// DeriveKey stretches password to a 32 byte key.
func DeriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return pbkdf2.Key(sha256.New, password, []byte(PBKDF2Salt), PBKDF2Iterations, 32)
}

// DeriveSessionKey mixes key and both handshake nonces into the key used by Conn.
func DeriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte(sessionContext))
	return h.Sum(nil)
}
