package replay

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alia5/inputtrack/input"
)

// ErrAlreadyPlaying is returned when a Player is listened to twice.
var ErrAlreadyPlaying = errors.New("player already started")

// Player is an input.Source replaying a Script. Before each step the clock is
// set to Start plus the step offset, so the tracker classifies the scripted
// timing rather than the time the replay takes.
type Player struct {
	Script *Script
	Clock  *input.ManualClock
	Start  time.Time
	// Speed paces the replay against the wall clock; 2 plays twice as fast.
	// Zero replays without waiting.
	Speed  float64
	Logger *slog.Logger

	once    sync.Once
	started atomic.Bool
	stop    chan struct{}
	done    chan struct{}
	played  int
}

// NewPlayer returns a player driving clock from start.
func NewPlayer(s *Script, clock *input.ManualClock, start time.Time) *Player {
	return &Player{Script: s, Clock: clock, Start: start}
}

func (p *Player) init() {
	p.once.Do(func() {
		p.stop = make(chan struct{})
		p.done = make(chan struct{})
	})
}

// Listen starts the replay goroutine.
func (p *Player) Listen(h input.Handlers) (io.Closer, error) {
	p.init()
	if !p.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	go p.run(h, logger)

	var closeOnce sync.Once
	return closer(func() error {
		closeOnce.Do(func() { close(p.stop) })
		<-p.done
		return nil
	}), nil
}

func (p *Player) run(h input.Handlers, logger *slog.Logger) {
	defer close(p.done)
	wallStart := time.Now()
	for i, step := range p.Script.Steps {
		if p.Speed > 0 {
			due := wallStart.Add(time.Duration(float64(step.At) / p.Speed))
			if wait := time.Until(due); wait > 0 {
				t := time.NewTimer(wait)
				select {
				case <-t.C:
				case <-p.stop:
					t.Stop()
					return
				}
			}
		}
		select {
		case <-p.stop:
			return
		default:
		}
		p.Clock.Set(p.Start.Add(step.At))
		logger.Debug("replay step", "index", i, "at", step.At, "kind", step.Frame.Kind)
		step.Frame.Dispatch(h)
		p.played = i + 1
	}
}

// Done is closed when the script ended or the replay was closed.
func (p *Player) Done() <-chan struct{} {
	p.init()
	return p.done
}

// Played returns how many steps were dispatched. Only valid after Done.
func (p *Player) Played() int { return p.played }

type closer func() error

func (f closer) Close() error { return f() }
