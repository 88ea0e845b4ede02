package e2e_bench_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Alia5/inputtrack/apiclient"
	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/cmd"
	"github.com/Alia5/inputtrack/internal/log"
	"github.com/Alia5/inputtrack/internal/server/api"
)

type TimeWhat int

const (
	TimeWhat_ClientWritePress TimeWhat = iota
	TimeWhat_WaitDown
	TimeWhat_ClientWriteRelease
	TimeWhat_WaitPressed
)

// Benchmark_Session_Delay measures a key press travelling client -> server
// tracker -> client event stream, with and without stream encryption.
func Benchmark_Session_Delay(b *testing.B) {
	type bench struct {
		name   string
		timeOn func(tw TimeWhat, b *testing.B)
	}
	benches := []bench{
		{
			name: "1 Go-Client-Write",
			timeOn: func(tw TimeWhat, b *testing.B) {
				if tw == TimeWhat_ClientWritePress {
					b.StartTimer()
				}
			},
		},
		{
			name: "2 KeyDown-Without-Client",
			timeOn: func(tw TimeWhat, b *testing.B) {
				if tw == TimeWhat_WaitDown {
					b.StartTimer()
				}
			},
		},
		{
			name: "3 E2E-KeyDown",
			timeOn: func(tw TimeWhat, b *testing.B) {
				if tw == TimeWhat_ClientWritePress || tw == TimeWhat_WaitDown {
					b.StartTimer()
				}
			},
		},
		{
			name:   "4 E2E-PressAndRelease",
			timeOn: func(_ TimeWhat, b *testing.B) { b.StartTimer() },
		},
	}

	b.SetParallelism(1)

	for _, encrypted := range []bool{false, true} {
		mode := "plain"
		if encrypted {
			mode = "encrypted"
		}
		b.Run(mode, func(b *testing.B) {
			client := startServer(b, encrypted)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stream, err := client.OpenSession(ctx)
			if err != nil {
				b.Fatalf("OpenSession failed: %v", err)
			}
			defer stream.Close()
			events, errs := stream.Events(ctx)

			for _, bench := range benches {
				b.Run(bench.name, func(b *testing.B) {
					for b.Loop() {
						b.StopTimer()
						bench.timeOn(TimeWhat_ClientWritePress, b)
						err := stream.KeyDown("KeyA")
						b.StopTimer()
						if err != nil {
							b.Fatalf("KeyDown failed: %v", err)
						}

						bench.timeOn(TimeWhat_WaitDown, b)
						waitForEvent(b, events, errs, "key_down")

						b.StopTimer()
						bench.timeOn(TimeWhat_ClientWriteRelease, b)
						err = stream.KeyUp("KeyA")
						b.StopTimer()
						if err != nil {
							b.Fatalf("KeyUp failed: %v", err)
						}

						bench.timeOn(TimeWhat_WaitPressed, b)
						waitForEvent(b, events, errs, "key_pressed")
						waitForEvent(b, events, errs, "key_up")

						b.StartTimer()
					}
				})
			}
		})
	}
}

func startServer(b *testing.B, encrypted bool) *apiclient.Client {
	b.Helper()
	s := cmd.Serve{
		ApiServerConfig: api.ServerConfig{
			Addr:             "127.0.0.1:0",
			DefaultThreshold: time.Second,
			NoAuth:           !encrypted,
		},
		ConnectionTimeout: 5 * time.Second,
		KeyFile:           filepath.Join(b.TempDir(), "key.txt"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	b.Cleanup(cancel)

	ready := make(chan *api.Server, 1)
	go func() {
		if err := s.StartServer(ctx, logger, log.NewRaw(nil), func(srv *api.Server) { ready <- srv }); err != nil {
			b.Errorf("server failed: %v", err)
		}
	}()
	var srv *api.Server
	select {
	case srv = <-ready:
	case <-time.After(5 * time.Second):
		b.Fatal("server did not start")
	}

	if !encrypted {
		return apiclient.New(srv.Addr())
	}
	pwd, err := os.ReadFile(s.KeyFile)
	if err != nil {
		b.Fatalf("read key file: %v", err)
	}
	return apiclient.NewWithPassword(srv.Addr(), strings.TrimSpace(string(pwd)))
}

func waitForEvent(b *testing.B, events <-chan apitypes.InputEvent, errs <-chan error, want string) {
	timeout := time.After(time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				b.Fatalf("event stream closed while waiting for %s", want)
			}
			if ev.Type == want {
				return
			}
		case err := <-errs:
			b.Fatalf("event stream failed while waiting for %s: %v", want, err)
		case <-timeout:
			b.Fatalf("timed out waiting for %s", want)
		}
	}
}
