package api_test

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/internal/server/api"
	th "github.com/Alia5/inputtrack/internal/testing"
)

func TestServerRoutesRequests(t *testing.T) {
	addr, _ := th.StartAPIServer(t, api.ServerConfig{}, func(srv *api.Server) {
		srv.Router().Register("echo/{word}", func(req *api.Request, res *api.Response, _ *slog.Logger) error {
			res.JSON = `{"word":"` + req.Params["word"] + `","payload":"` + req.Payload + `"}`
			return nil
		})
		srv.Router().Register("fail", func(*api.Request, *api.Response, *slog.Logger) error {
			return errors.New("kaputt")
		})
	})

	assert.JSONEq(t, `{"word":"hi","payload":"a b"}`, th.ExecCmd(t, addr, "ECHO/hi a b"))
	assert.JSONEq(t, `{"status":500,"title":"Internal Server Error","detail":"kaputt"}`, th.ExecCmd(t, addr, "fail"))
	assert.JSONEq(t, `{"status":404,"title":"Not Found","detail":"unknown path: nope"}`, th.ExecCmd(t, addr, "nope"))
	assert.JSONEq(t, `{"status":400,"title":"Bad Request","detail":"empty path"}`, th.ExecCmd(t, addr, ""))
}

func TestServerStreamRoutesWinOverParams(t *testing.T) {
	addr, _ := th.StartAPIServer(t, api.ServerConfig{}, func(srv *api.Server) {
		srv.Router().Register("session/{id}", func(req *api.Request, res *api.Response, _ *slog.Logger) error {
			res.JSON = `"plain"`
			return nil
		})
		srv.Router().RegisterStream("session/open", func(req *api.Request, conn net.Conn, _ *slog.Logger) error {
			// echo one line back, including bytes sent along with the request
			line, err := bufio.NewReader(conn).ReadString('\n')
			if err != nil {
				return err
			}
			_, err = io.WriteString(conn, "stream:"+line)
			return err
		})
	})

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Write([]byte("session/open\x00hello\n"))
	require.NoError(t, err)
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(c).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "stream:hello\n", line)

	assert.Equal(t, `"plain"`, th.ExecCmd(t, addr, "session/abc"))
}

func TestServerStreamHandlerErrorClosesConn(t *testing.T) {
	addr, _ := th.StartAPIServer(t, api.ServerConfig{}, func(srv *api.Server) {
		srv.Router().RegisterStream("boom", func(*api.Request, net.Conn, *slog.Logger) error {
			return errors.New("boom")
		})
	})

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Write([]byte("boom\x00"))
	require.NoError(t, err)
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = c.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

func TestServerRequiresAuthWhenPasswordSet(t *testing.T) {
	addr, _ := th.StartAPIServer(t, api.ServerConfig{Password: "pw"}, nil)
	assert.JSONEq(t,
		`{"status":401,"title":"Unauthorized","detail":"authentication required"}`,
		th.ExecCmd(t, addr, "ping"))
}

func TestServerThreshold(t *testing.T) {
	srv := api.New("127.0.0.1:0", api.ServerConfig{}, nil, nil)
	assert.Equal(t, 200*time.Millisecond, srv.Threshold())

	s := srv.Sessions().Open(srv.Threshold(), nil)
	srv.SetThreshold(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, srv.Threshold())
	assert.Equal(t, 40*time.Millisecond, s.Tracker.Threshold())
}

func TestServerCloseEndsStreams(t *testing.T) {
	addr, srv := th.StartAPIServer(t, api.ServerConfig{}, func(srv *api.Server) {
		srv.Router().RegisterStream("session/open", api.SessionStreamHandler(srv))
	})

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Write([]byte("session/open\x00"))
	require.NoError(t, err)

	r := bufio.NewReader(c)
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "sessionId")
	require.Equal(t, 1, srv.Sessions().Len())

	done := make(chan struct{})
	go func() {
		srv.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, 0, srv.Sessions().Len())
}

func TestMalformedFrameEndsSession(t *testing.T) {
	addr, srv := th.StartAPIServer(t, api.ServerConfig{}, func(srv *api.Server) {
		srv.Router().RegisterStream("session/open", api.SessionStreamHandler(srv))
	})

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Write([]byte("session/open\x00"))
	require.NoError(t, err)
	r := bufio.NewReader(c)
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = r.ReadString('\n')
	require.NoError(t, err)

	bad := make([]byte, 20)
	bad[0] = 0x7f
	_, err = c.Write(bad)
	require.NoError(t, err)

	_, err = r.ReadString('\n')
	assert.ErrorIs(t, err, io.EOF)
	assert.Eventually(t, func() bool { return srv.Sessions().Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
