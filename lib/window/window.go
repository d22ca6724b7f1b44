// Package window defines what the renderer needs from a host windowing
// library: a GL context made current on the calling thread, a loader for GL
// entry points, event polling and buffer presentation.
//
// Backends register themselves from their own packages; the executable
// imports the backends it wants to offer.
package window

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"unsafe"
)

type EventKind int

const (
	Quit EventKind = iota
	Resize
)

func (k EventKind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Resize:
		return "resize"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

type Event struct {
	Kind EventKind

	// Width and Height are set for Resize and hold the new framebuffer
	// size in pixels.
	Width  int
	Height int
}

// Host is a window with a current OpenGL context. All methods must be
// called from the thread that opened it.
type Host interface {
	// ProcAddr resolves a GL entry point for the current context.
	ProcAddr(name string) unsafe.Pointer

	// PollEvents drains the pending event queue.
	PollEvents() []Event

	SwapBuffers()
	FramebufferSize() (int, int)
	Destroy()
}

type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool

	GLMajor int
	GLMinor int
}

// ContextInitError reports that a window or its GL context could not be
// brought up.
type ContextInitError struct {
	Backend string
	Err     error
}

func (e *ContextInitError) Error() string {
	return fmt.Sprintf("could not initialise %s context: %s", e.Backend, e.Err)
}

func (e *ContextInitError) Unwrap() error {
	return e.Err
}

type OpenFunc func(opts Options) (Host, error)

var backends = map[string]OpenFunc{}

func Register(name string, open OpenFunc) {
	if _, ok := backends[name]; ok {
		panic(fmt.Sprintf("window backend %s registered twice", name))
	}
	backends[name] = open
}

func Backends() []string {
	names := slices.Collect(maps.Keys(backends))
	sort.Strings(names)
	return names
}

// Open creates a window with the named backend and makes its context
// current.
func Open(backend string, opts Options) (Host, error) {
	open, ok := backends[backend]
	if !ok {
		return nil, &ContextInitError{
			Backend: backend,
			Err:     fmt.Errorf("no such window backend (have %v)", Backends()),
		}
	}
	return open(opts)
}
