// Package loop runs the render loop: poll the host's events, draw one
// frame, present it, until the window is asked to close.
package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fosdem/glstage/lib/metrics"
	"github.com/fosdem/glstage/lib/rendering"
	"github.com/fosdem/glstage/lib/stats"
	"github.com/fosdem/glstage/lib/utils"
	"github.com/fosdem/glstage/lib/window"
)

type State int

const (
	Running State = iota
	Quit
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Loop struct {
	host     window.Host
	renderer *rendering.Renderer
	stats    *stats.Counter

	state      State
	quit       atomic.Bool
	deltaTimer utils.DeltaTimer
	log        *slog.Logger
}

// New returns a loop in the Running state. stats may be nil.
func New(host window.Host, renderer *rendering.Renderer, st *stats.Counter) *Loop {
	l := &Loop{
		host:     host,
		renderer: renderer,
		stats:    st,
		state:    Running,
		log:      slog.With("module", "loop"),
	}
	l.setState(Running)
	return l
}

func (l *Loop) State() State {
	return l.state
}

// RequestQuit makes the next Step stop the loop. It is the only method
// that may be called from another goroutine.
func (l *Loop) RequestQuit() {
	l.quit.Store(true)
}

func (l *Loop) setState(s State) {
	l.state = s
	if l.stats != nil {
		l.stats.SetState(s.String())
	}
}

// Step runs one iteration and returns the state afterwards. Once the loop
// has quit, Step does nothing.
func (l *Loop) Step() State {
	if l.state == Quit {
		return Quit
	}

	events := l.host.PollEvents()
	for _, ev := range events {
		if ev.Kind == window.Quit {
			l.log.Info("window asked to close")
			l.setState(Quit)
			return Quit
		}
	}
	if l.quit.Load() {
		l.log.Info("quit requested")
		l.setState(Quit)
		return Quit
	}

	for _, ev := range events {
		if ev.Kind == window.Resize {
			l.log.Debug(fmt.Sprintf("resized to %dx%d", ev.Width, ev.Height))
			l.renderer.Resize(ev.Width, ev.Height)
		}
	}

	glErrors := 0
	err := l.renderer.DrawFrame()
	var glErr *rendering.GLError
	if errors.As(err, &glErr) {
		glErrors = len(glErr.Codes)
	}

	l.host.SwapBuffers()

	dt := l.deltaTimer.Next()
	metrics.FramesDrawn.Inc()
	if dt > 0 {
		metrics.FrameSeconds.Observe(dt.Seconds())
	}
	if l.stats != nil {
		l.stats.Update(glErrors)
	}
	return Running
}

// Run steps until the loop quits.
func (l *Loop) Run() {
	l.deltaTimer.Reset()
	for l.Step() == Running {
	}
}
