package auth_test

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/server/api/auth"
)

func TestReadClientNonce(t *testing.T) {
	valid := bytes.Repeat([]byte{7}, auth.NonceSize)
	nonce, err := auth.ReadClientNonce(bytes.NewReader(valid))
	require.NoError(t, err)
	assert.Equal(t, valid, nonce)

	_, err = auth.ReadClientNonce(bytes.NewReader([]byte{1, 2, 3}))
	assert.EqualError(t, err, "read client nonce: unexpected EOF")

	_, err = auth.ReadClientNonce(bytes.NewReader(nil))
	assert.EqualError(t, err, "read client nonce: EOF")
}

func TestWriteServerHandshake(t *testing.T) {
	var buf bytes.Buffer
	nonce, err := auth.WriteServerHandshake(&buf)
	require.NoError(t, err)
	assert.Len(t, nonce, auth.NonceSize)
	assert.Equal(t, "OK\x00", buf.String()[:3])
	assert.Equal(t, nonce, buf.Bytes()[3:])

	_, err = auth.WriteServerHandshake(nil)
	assert.Error(t, err)

	_, w := io.Pipe()
	w.Close()
	_, err = auth.WriteServerHandshake(w)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestIsAuthHandshake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
		err   bool
	}{
		{name: "magic", input: auth.HandshakeMagic + "rest", want: true},
		{name: "plain request", input: "ping\x00xx", want: false},
		{name: "short plain request", input: "i\x00", want: false},
		{name: "too short", input: "iT", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(bytes.NewBufferString(tt.input))
			ok, err := auth.IsAuthHandshake(r)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, len(tt.input), r.Buffered(), "peek must not consume")
		})
	}
}

type handshakeResult struct {
	clientNonce, serverNonce []byte
	err                      error
}

func runHandshake(t *testing.T, clientPassword, serverPassword string) (client, server handshakeResult) {
	t.Helper()
	clientKey, err := auth.DeriveKey(clientPassword)
	require.NoError(t, err)
	serverKey, err := auth.DeriveKey(serverPassword)
	require.NoError(t, err)

	cc, sc := net.Pipe()
	done := make(chan handshakeResult, 1)
	go func() {
		cn, sn, err := auth.ServerHandshake(bufio.NewReader(sc), sc, serverKey)
		if err != nil {
			sc.Close()
		}
		done <- handshakeResult{cn, sn, err}
	}()
	cn, sn, err := auth.ClientHandshake(bufio.NewReader(cc), cc, clientKey)
	client = handshakeResult{cn, sn, err}
	server = <-done
	cc.Close()
	sc.Close()
	return client, server
}

func TestHandshake(t *testing.T) {
	client, server := runHandshake(t, "hunter2", "hunter2")
	require.NoError(t, client.err)
	require.NoError(t, server.err)
	assert.Equal(t, server.clientNonce, client.clientNonce)
	assert.Equal(t, server.serverNonce, client.serverNonce)
}

func TestHandshakeWrongPassword(t *testing.T) {
	client, server := runHandshake(t, "hunter2", "letmein")

	var apiErr *apitypes.ApiError
	require.ErrorAs(t, server.err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	require.ErrorAs(t, client.err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestServerHandshakeRejectsPlainRequest(t *testing.T) {
	key, err := auth.DeriveKey("pw")
	require.NoError(t, err)
	_, _, err = auth.ServerHandshake(bufio.NewReader(bytes.NewBufferString("ping\x00\x00")), io.Discard, key)

	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestClientHandshakeProblemResponse(t *testing.T) {
	key, err := auth.DeriveKey("pw")
	require.NoError(t, err)
	resp := bufio.NewReader(bytes.NewBufferString(`{"status":403,"title":"Forbidden","detail":"no"}` + "\n"))
	_, _, err = auth.ClientHandshake(resp, io.Discard, key)

	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	_, _, err = auth.ClientHandshake(resp, io.Discard, nil)
	assert.Error(t, err)
}
