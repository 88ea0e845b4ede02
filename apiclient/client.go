// Package apiclient is the Go client for the inputtrack API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Alia5/inputtrack/apitypes"
)

// Client provides a high-level interface to the inputtrack API, handling
// request formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a client for the server at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport settings.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport, usually a mock.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the identity and version of the server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	return do[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// Keys lists the logical keys the server resolves, in ordinal order.
func (c *Client) Keys() (*apitypes.KeyListResponse, error) {
	return c.KeysCtx(context.Background())
}

func (c *Client) KeysCtx(ctx context.Context) (*apitypes.KeyListResponse, error) {
	return do[apitypes.KeyListResponse](ctx, c, "keys/list", nil, nil)
}

// Buttons lists the logical pointer buttons.
func (c *Client) Buttons() (*apitypes.ButtonListResponse, error) {
	return c.ButtonsCtx(context.Background())
}

func (c *Client) ButtonsCtx(ctx context.Context) (*apitypes.ButtonListResponse, error) {
	return do[apitypes.ButtonListResponse](ctx, c, "buttons/list", nil, nil)
}

// Threshold returns the quick action threshold for new sessions.
func (c *Client) Threshold() (time.Duration, error) {
	return c.ThresholdCtx(context.Background())
}

func (c *Client) ThresholdCtx(ctx context.Context) (time.Duration, error) {
	resp, err := do[apitypes.ThresholdResponse](ctx, c, "threshold", nil, nil)
	if err != nil {
		return 0, err
	}
	return time.Duration(resp.ThresholdMs) * time.Millisecond, nil
}

// SetThreshold changes the threshold of the server and its open sessions.
// d is sent with millisecond precision.
func (c *Client) SetThreshold(d time.Duration) (time.Duration, error) {
	return c.SetThresholdCtx(context.Background(), d)
}

func (c *Client) SetThresholdCtx(ctx context.Context, d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, fmt.Errorf("negative threshold %v", d)
	}
	resp, err := do[apitypes.ThresholdResponse](ctx, c, "threshold", strconv.FormatInt(d.Milliseconds(), 10), nil)
	if err != nil {
		return 0, err
	}
	return time.Duration(resp.ThresholdMs) * time.Millisecond, nil
}

// Sessions lists open session IDs, oldest first.
func (c *Client) Sessions() (*apitypes.SessionListResponse, error) {
	return c.SessionsCtx(context.Background())
}

func (c *Client) SessionsCtx(ctx context.Context) (*apitypes.SessionListResponse, error) {
	return do[apitypes.SessionListResponse](ctx, c, "session/list", nil, nil)
}

// Session returns the state of one session.
func (c *Client) Session(id string) (*apitypes.SessionStateResponse, error) {
	return c.SessionCtx(context.Background(), id)
}

func (c *Client) SessionCtx(ctx context.Context, id string) (*apitypes.SessionStateResponse, error) {
	return do[apitypes.SessionStateResponse](ctx, c, "session/{id}", nil, map[string]string{"id": id})
}

func do[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	raw, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	if err := json.NewDecoder(bytes.NewReader([]byte(data))).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
