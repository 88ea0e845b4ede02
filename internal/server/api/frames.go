package api

import (
	"errors"
	"io"
	"sync"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
)

// FrameSource is an input.Source reading apitypes.RawFrame values from a
// connection. Each frame is dispatched while holding lock.
type FrameSource struct {
	rc    io.ReadCloser
	lock  sync.Locker
	onRaw func(apitypes.RawFrame)

	done chan struct{}
	err  error
}

// NewFrameSource reads frames from rc. lock may be nil. onRaw, when set, sees
// every decoded frame before it is dispatched.
func NewFrameSource(rc io.ReadCloser, lock sync.Locker, onRaw func(apitypes.RawFrame)) *FrameSource {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &FrameSource{rc: rc, lock: lock, onRaw: onRaw, done: make(chan struct{})}
}

// Listen starts the read loop. The returned Closer closes the connection and
// waits for the loop to exit.
func (s *FrameSource) Listen(h input.Handlers) (io.Closer, error) {
	go s.run(h)
	return closerFunc(func() error {
		err := s.rc.Close()
		<-s.done
		return err
	}), nil
}

func (s *FrameSource) run(h input.Handlers) {
	defer close(s.done)
	for {
		f, err := apitypes.ReadRawFrame(s.rc)
		if err != nil {
			s.err = err
			return
		}
		if s.onRaw != nil {
			s.onRaw(f)
		}
		s.lock.Lock()
		f.Dispatch(h)
		s.lock.Unlock()
	}
}

// Done is closed when the read loop has stopped.
func (s *FrameSource) Done() <-chan struct{} { return s.done }

// Err returns the error that stopped the loop, or nil on a clean end of stream.
// Only valid after Done is closed.
func (s *FrameSource) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
