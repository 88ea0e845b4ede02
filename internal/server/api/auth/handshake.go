package auth

import (
	"bufio"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Alia5/inputtrack/apitypes"
	apierror "github.com/Alia5/inputtrack/internal/server/api/error"
)

// Handshake wire format:
//
//	client: magic | client nonce[32] | HMAC-SHA256(key, context | client nonce)
//	server: "OK\0" | server nonce[32], or a problem+json line on failure
const (
	HandshakeMagic = "iTRK1\x00"
	NonceSize      = 32
	authContext    = "inputtrack-Auth-v1"
	okPrefix       = "OK\x00"
)

var errMissingKey = errors.New("handshake: missing key")

func clientMAC(key, clientNonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(authContext))
	_, _ = mac.Write(clientNonce)
	return mac.Sum(nil)
}

// IsAuthHandshake reports whether r starts with the handshake magic without
// consuming it. It peeks one byte at a time so that a short plain request
// is recognised without waiting for more input.
func IsAuthHandshake(r *bufio.Reader) (bool, error) {
	for n := 1; n <= len(HandshakeMagic); n++ {
		b, err := r.Peek(n)
		if err != nil {
			return false, err
		}
		if b[n-1] != HandshakeMagic[n-1] {
			return false, nil
		}
	}
	return true, nil
}

// ReadClientNonce reads the nonce that follows the magic.
func ReadClientNonce(r io.Reader) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("read client nonce: %w", err)
	}
	return nonce, nil
}

// WriteServerHandshake sends "OK\0" and a fresh server nonce.
func WriteServerHandshake(w io.Writer) ([]byte, error) {
	if w == nil {
		return nil, errors.New("write response: nil writer")
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate server nonce: %w", err)
	}
	if _, err := w.Write(append([]byte(okPrefix), nonce...)); err != nil {
		return nil, fmt.Errorf("write response: %w", err)
	}
	return nonce, nil
}

// ClientHandshake authenticates to a server and returns both nonces.
// A server rejection is returned as *apitypes.ApiError.
func ClientHandshake(r *bufio.Reader, w io.Writer, key []byte) (clientNonce, serverNonce []byte, err error) {
	if len(key) == 0 {
		return nil, nil, errMissingKey
	}
	clientNonce = make([]byte, NonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, nil, fmt.Errorf("generate client nonce: %w", err)
	}

	msg := make([]byte, 0, len(HandshakeMagic)+NonceSize+sha256.Size)
	msg = append(msg, HandshakeMagic...)
	msg = append(msg, clientNonce...)
	msg = append(msg, clientMAC(key, clientNonce)...)
	if _, err := w.Write(msg); err != nil {
		return nil, nil, fmt.Errorf("write handshake: %w", err)
	}

	prefix := make([]byte, len(okPrefix))
	if _, err := io.ReadFull(r, prefix); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, apierror.ErrUnauthorized("connection closed during handshake")
		}
		return nil, nil, fmt.Errorf("read handshake response: %w", err)
	}
	if string(prefix) != okPrefix {
		rest, _ := io.ReadAll(r)
		line := strings.TrimSuffix(string(append(prefix, rest...)), "\n")
		var apiErr apitypes.ApiError
		if err := json.Unmarshal([]byte(line), &apiErr); err == nil && (apiErr.Status != 0 || apiErr.Title != "") {
			return nil, nil, &apiErr
		}
		return nil, nil, fmt.Errorf("invalid handshake response: %q", line)
	}

	serverNonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(r, serverNonce); err != nil {
		return nil, nil, fmt.Errorf("read server nonce: %w", err)
	}
	return clientNonce, serverNonce, nil
}

// ServerHandshake verifies a client handshake, magic included, and answers it.
// A wrong password yields a 401 *apitypes.ApiError and nothing is written.
func ServerHandshake(r *bufio.Reader, w io.Writer, key []byte) (clientNonce, serverNonce []byte, err error) {
	if len(key) == 0 {
		return nil, nil, errMissingKey
	}
	magic := make([]byte, len(HandshakeMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, nil, fmt.Errorf("read handshake magic: %w", err)
	}
	if string(magic) != HandshakeMagic {
		return nil, nil, apierror.ErrUnauthorized("authentication required")
	}

	clientNonce, err = ReadClientNonce(r)
	if err != nil {
		return nil, nil, err
	}
	got := make([]byte, sha256.Size)
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, nil, fmt.Errorf("read client auth: %w", err)
	}
	if !hmac.Equal(got, clientMAC(key, clientNonce)) {
		return nil, nil, apierror.ErrUnauthorized("invalid password")
	}

	serverNonce, err = WriteServerHandshake(w)
	if err != nil {
		return nil, nil, err
	}
	return clientNonce, serverNonce, nil
}
