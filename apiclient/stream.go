package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/apitypes"
)

var ErrStreamClosed = errors.New("stream closed")

// SessionStream is an open tracking session. Raw input is sent with the
// KeyDown..Wheel methods; published events arrive through Events.
type SessionStream struct {
	ID string

	conn net.Conn
	r    *bufio.Reader

	wmu    sync.Mutex
	closed bool

	readOnce sync.Once
}

// OpenSession starts a tracking session on the server.
func (c *Client) OpenSession(ctx context.Context) (*SessionStream, error) {
	if c.transport.mock != nil {
		return nil, errors.New("stream connections not supported with mock transport")
	}
	conn, r, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write([]byte("session/open\x00")); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(dl)
	} else if c.transport.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.transport.cfg.ReadTimeout))
	}
	line, err := r.ReadBytes('\n')
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read session id: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	open, err := parse[apitypes.SessionOpenResponse](string(line))
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &SessionStream{ID: open.SessionID, conn: conn, r: r}, nil
}

// Send writes one raw frame.
func (s *SessionStream) Send(f apitypes.RawFrame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.closed {
		return ErrStreamClosed
	}
	_, err = s.conn.Write(b)
	return err
}

func (s *SessionStream) KeyDown(code string) error {
	return s.Send(apitypes.RawFrame{Kind: apitypes.FrameKeyDown, Code: code})
}

func (s *SessionStream) KeyUp(code string) error {
	return s.Send(apitypes.RawFrame{Kind: apitypes.FrameKeyUp, Code: code})
}

func (s *SessionStream) ButtonDown(index int) error {
	return s.Send(apitypes.RawFrame{Kind: apitypes.FrameButtonDown, Index: int16(index)})
}

func (s *SessionStream) ButtonUp(index int) error {
	return s.Send(apitypes.RawFrame{Kind: apitypes.FrameButtonUp, Index: int16(index)})
}

// Move reports an absolute pointer position and the host supplied delta.
func (s *SessionStream) Move(pos, delta mgl64.Vec2) error {
	return s.Send(apitypes.RawFrame{
		Kind: apitypes.FrameMove,
		X:    float32(pos[0]), Y: float32(pos[1]),
		DX: float32(delta[0]), DY: float32(delta[1]),
	})
}

func (s *SessionStream) Wheel(delta mgl64.Vec2) error {
	return s.Send(apitypes.RawFrame{Kind: apitypes.FrameWheel, DX: float32(delta[0]), DY: float32(delta[1])})
}

// Events starts reading published events in the background. Both channels
// are closed when the stream ends; the error channel carries at most one
// error. Events may only be called once.
func (s *SessionStream) Events(ctx context.Context) (<-chan apitypes.InputEvent, <-chan error) {
	evCh := make(chan apitypes.InputEvent, 64)
	errCh := make(chan error, 1)
	started := false
	s.readOnce.Do(func() {
		started = true
		go s.readLoop(ctx, evCh, errCh)
	})
	if !started {
		errCh <- errors.New("Events called twice on the same stream")
		close(evCh)
		close(errCh)
	}
	return evCh, errCh
}

func (s *SessionStream) readLoop(ctx context.Context, evCh chan<- apitypes.InputEvent, errCh chan<- error) {
	defer close(errCh)
	defer close(evCh)

	stop := context.AfterFunc(ctx, func() { _ = s.conn.SetReadDeadline(time.Now()) })
	defer stop()

	for {
		line, err := s.r.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			errCh <- err
			return
		}
		var ev apitypes.InputEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			errCh <- fmt.Errorf("decode event: %w", err)
			return
		}
		select {
		case evCh <- ev:
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		}
	}
}

// Close ends the session.
func (s *SessionStream) Close() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
