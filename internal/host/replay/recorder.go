package replay

import (
	"io"
	"sync"
	"time"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
)

// Recorder captures raw notifications into a Script while passing them on.
type Recorder struct {
	clock input.Clock

	mu    sync.Mutex
	start time.Time
	steps []Step
}

// NewRecorder returns a recorder timing steps with clock. The first recorded
// notification is at offset zero.
func NewRecorder(clock input.Clock) *Recorder {
	if clock == nil {
		clock = input.SystemClock
	}
	return &Recorder{clock: clock}
}

// Wrap returns handlers that record each notification before calling next.
func (r *Recorder) Wrap(next input.Handlers) input.Handlers {
	return input.Handlers{
		KeyDown: func(e input.RawKey) {
			r.add(apitypes.RawFrame{Kind: apitypes.FrameKeyDown, Code: e.Code})
			forward(next.KeyDown, e)
		},
		KeyUp: func(e input.RawKey) {
			r.add(apitypes.RawFrame{Kind: apitypes.FrameKeyUp, Code: e.Code})
			forward(next.KeyUp, e)
		},
		ButtonDown: func(e input.RawButton) {
			r.add(apitypes.RawFrame{Kind: apitypes.FrameButtonDown, Index: int16(e.Index)})
			forward(next.ButtonDown, e)
		},
		ButtonUp: func(e input.RawButton) {
			r.add(apitypes.RawFrame{Kind: apitypes.FrameButtonUp, Index: int16(e.Index)})
			forward(next.ButtonUp, e)
		},
		Move: func(e input.RawMove) {
			r.add(apitypes.RawFrame{
				Kind: apitypes.FrameMove,
				X:    float32(e.Position[0]), Y: float32(e.Position[1]),
				DX: float32(e.Delta[0]), DY: float32(e.Delta[1]),
			})
			forward(next.Move, e)
		},
		Wheel: func(e input.RawWheel) {
			r.add(apitypes.RawFrame{Kind: apitypes.FrameWheel, DX: float32(e.Delta[0]), DY: float32(e.Delta[1])})
			forward(next.Wheel, e)
		},
	}
}

func (r *Recorder) add(f apitypes.RawFrame) {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.start.IsZero() {
		r.start = now
	}
	r.steps = append(r.steps, Step{At: now.Sub(r.start), Frame: f})
}

// Script returns a copy of everything recorded so far.
func (r *Recorder) Script() *Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return &Script{Steps: steps}
}

func forward[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

// RecordingSource wraps a source so everything it delivers is recorded.
type RecordingSource struct {
	input.Source
	Recorder *Recorder
}

func (s RecordingSource) Listen(h input.Handlers) (io.Closer, error) {
	return s.Source.Listen(s.Recorder.Wrap(h))
}
