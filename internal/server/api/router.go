package api

import (
	"context"
	"log/slog"
	"net"
	"strings"
)

// Request contains route parameters and additional args from the command.
type Request struct {
	Ctx     context.Context
	Params  map[string]string
	Payload string
}

// Response holds the JSON string to return to the client.
type Response struct {
	JSON string
}

// HandlerFunc processes a request and populates the response.
// The logger is connection scoped.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// StreamHandlerFunc owns a long-lived connection until it returns. Bytes the
// server buffered past the request line are readable from conn. A returned
// error is logged by the server.
type StreamHandlerFunc func(req *Request, conn net.Conn, logger *slog.Logger) error

// Router matches lower-case paths against patterns with {name} placeholders.
type Router struct {
	routes       []route[HandlerFunc]
	streamRoutes []route[StreamHandlerFunc]
}

type route[H any] struct {
	parts   []string
	names   []string
	handler H
}

func newRoute[H any](pattern string, h H) route[H] {
	orig := strings.Split(pattern, "/")
	rt := route[H]{parts: make([]string, len(orig)), names: make([]string, len(orig)), handler: h}
	for i, p := range orig {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			rt.names[i] = p[1 : len(p)-1]
			continue
		}
		rt.parts[i] = strings.ToLower(p)
	}
	return rt
}

func (rt route[H]) match(parts []string) (map[string]string, bool) {
	if len(rt.parts) != len(parts) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range parts {
		if rt.names[i] != "" {
			params[rt.names[i]] = p
			continue
		}
		if rt.parts[i] != p {
			return nil, false
		}
	}
	return params, true
}

func matchRoutes[H any](routes []route[H], path string) (H, map[string]string, bool) {
	parts := strings.Split(strings.ToLower(path), "/")
	for _, rt := range routes {
		if params, ok := rt.match(parts); ok {
			return rt.handler, params, true
		}
	}
	var zero H
	return zero, nil, false
}

// NewRouter returns a new Router instance.
func NewRouter() *Router { return &Router{} }

// Register registers a handler for a path pattern like "session/{id}".
func (r *Router) Register(pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, newRoute(pattern, handler))
}

// RegisterStream registers a handler for long-lived connections.
func (r *Router) RegisterStream(pattern string, handler StreamHandlerFunc) {
	r.streamRoutes = append(r.streamRoutes, newRoute(pattern, handler))
}

// Match returns the handler and params for path, or nil.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	h, params, _ := matchRoutes(r.routes, path)
	return h, params
}

// MatchStream returns the stream handler and params for path, or nil.
func (r *Router) MatchStream(path string) (StreamHandlerFunc, map[string]string) {
	h, params, _ := matchRoutes(r.streamRoutes, path)
	return h, params
}
