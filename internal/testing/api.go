// Package testing holds helpers shared by API tests.
package testing

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/Alia5/inputtrack/internal/log"
	"github.com/Alia5/inputtrack/internal/server/api"
)

// StartAPIServer starts an API server on a free loopback port and calls
// register so the test can add the routes it needs. The server is closed
// when the test ends.
func StartAPIServer(t *testing.T, cfg api.ServerConfig, register func(srv *api.Server)) (addr string, srv *api.Server) {
	t.Helper()
	srv = api.New("127.0.0.1:0", cfg, slog.Default(), log.NewRaw(nil))
	if register != nil {
		register(srv)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv.Addr(), srv
}

// ExecCmd dials addr, sends cmd with the null terminator and returns the
// response line without its trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	if _, err := fmt.Fprintf(c, "%s\x00", cmd); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(line, "\n")
}
