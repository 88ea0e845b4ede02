package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Direction of a raw frame relative to the server.
type Direction bool

const (
	Inbound  Direction = true
	Outbound Direction = false
)

func (d Direction) String() string {
	if d == Inbound {
		return "C->S"
	}
	return "S->C"
}

// RawLogger records raw session frames.
type RawLogger interface {
	Log(session string, dir Direction, data []byte)
}

type rawLogger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewRaw returns a RawLogger writing one line per frame to w.
// A nil w discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

func (r *rawLogger) Log(session string, dir Direction, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	line := fmt.Sprintf("%s %s %s %d bytes: % x\n",
		r.now().Format("2006/01/02 15:04:05.000"), session, dir, len(data), data)

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}
