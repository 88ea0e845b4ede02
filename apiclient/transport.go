package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/Alia5/inputtrack/internal/server/api/auth"
)

// Config controls low-level transport behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Password     string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Responder produces canned responses for a mock Transport.
type Responder func(path string, payload any, pathParams map[string]string) (string, error)

// Transport implements the management protocol used by Client.
// Requests are framed as `<path>[ SP <payload>] \x00`; only the null byte
// ends a request, so payloads may contain newlines. The server answers with
// one JSON line and closes the connection.
type Transport struct {
	addr string
	mock Responder
	cfg  Config
}

// NewTransport creates a new low-level transport.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithPassword creates a transport that authenticates with password.
func NewTransportWithPassword(addr, password string) *Transport {
	cfg := defaultConfig()
	cfg.Password = password
	return NewTransportWithConfig(addr, &cfg)
}

// NewTransportWithConfig creates a new low-level transport with optional timeouts configuration.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport creates a transport that returns canned responses without networking.
func NewMockTransport(responder Responder) *Transport {
	return &Transport{addr: "mock", mock: responder, cfg: defaultConfig()}
}

// Do sends a request and returns the response line without its trailing newline.
// Payload handling rules:
//
//	[]byte -> sent as-is
//	string -> UTF-8 bytes
//	struct/other -> JSON marshaled bytes
//	nil -> no payload appended
func (t *Transport) Do(path string, payload any, pathParams map[string]string) (string, error) {
	return t.DoCtx(context.Background(), path, payload, pathParams)
}

// DoCtx is like Do but honors the provided context and configured timeouts.
func (t *Transport) DoCtx(ctx context.Context, path string, payload any, pathParams map[string]string) (string, error) {
	if t.mock != nil {
		return t.mock(path, payload, pathParams)
	}
	pb, err := toPayloadBytes(payload)
	if err != nil {
		return "", err
	}
	line := []byte(fillPath(path, pathParams))
	if len(pb) > 0 {
		line = append(append(line, ' '), pb...)
	}

	conn, r, err := t.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if t.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}
	if _, err := conn.Write(append(line, '\x00')); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	resp, err := io.ReadAll(r)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(resp), "\n"), nil
}

// dial connects and authenticates when a password is configured. Reads must
// go through the returned reader.
func (t *Transport) dial(ctx context.Context) (net.Conn, *bufio.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("dial: %w", err)
	}
	d := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return nil, nil, fmt.Errorf("dial: %w", err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			slog.Warn("failed to set TCP_NODELAY", "error", err)
		}
	}
	r := bufio.NewReader(conn)
	if t.cfg.Password == "" {
		return conn, r, nil
	}

	key, err := auth.DeriveKey(t.cfg.Password)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	clientNonce, serverNonce, err := auth.ClientHandshake(r, conn, key)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	sc, err := auth.WrapConn(conn, r, auth.DeriveSessionKey(key, serverNonce, clientNonce))
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return sc, bufio.NewReader(sc), nil
}

func fillPath(pattern string, params map[string]string) string {
	out := pattern
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return strings.ToLower(out)
}

func toPayloadBytes(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		return b, nil
	}
}
