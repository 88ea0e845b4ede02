package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/internal/log"
)

// SessionStreamHandler turns the connection into a tracking session. It
// writes the session ID, then reads raw frames and writes every published
// event back as one JSON line.
func SessionStreamHandler(s *Server) StreamHandlerFunc {
	return func(req *Request, conn net.Conn, logger *slog.Logger) error {
		sess := s.Sessions().Open(s.Threshold(), logger)
		defer s.Sessions().Remove(sess.ID)
		id := sess.ID.String()
		logger = logger.With("session", id)
		rawLogger := s.RawLogger()

		writeLine := func(v any) error {
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			b = append(b, '\n')
			rawLogger.Log(id, log.Outbound, b)
			_, err = conn.Write(b)
			return err
		}
		if err := writeLine(apitypes.SessionOpenResponse{SessionID: id}); err != nil {
			return fmt.Errorf("write session id: %w", err)
		}
		logger.Info("session opened")

		sess.Tracker.Bus().SubscribeAll(func(ev input.Event) {
			if err := writeLine(apitypes.FromEvent(ev)); err != nil {
				logger.Debug("event write failed", "event", string(ev.Name()), "error", err)
			}
		})

		src := NewFrameSource(conn, &sess.mu, func(f apitypes.RawFrame) {
			if b, err := f.MarshalBinary(); err == nil {
				rawLogger.Log(id, log.Inbound, b)
			}
		})
		if err := sess.Tracker.Attach(src); err != nil {
			return err
		}

		select {
		case <-src.Done():
		case <-req.Ctx.Done():
		}
		_ = sess.Tracker.Detach()

		stats := sess.Tracker.Stats()
		logger.Info("session closed", "published", stats.Bus.Published, "dropped", stats.Dropped)

		err := src.Err()
		if err == nil || errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrDeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("session %s: %w", id, err)
	}
}
