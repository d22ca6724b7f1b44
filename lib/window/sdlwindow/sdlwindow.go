// Package sdlwindow is the SDL2 window backend. Importing it registers the
// "sdl" backend.
package sdlwindow

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glstage/lib/window"
	"github.com/veandco/go-sdl2/sdl"
)

const backendName = "sdl"

func init() {
	window.Register(backendName, Open)
}

type Window struct {
	window    *sdl.Window
	glContext sdl.GLContext
	log       *slog.Logger
}

func Open(opts window.Options) (window.Host, error) {
	w := &Window{log: slog.With("module", backendName)}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, &window.ContextInitError{
			Backend: backendName,
			Err:     fmt.Errorf("failed to initialize SDL2: %w", err),
		}
	}

	// attributes only apply to contexts created after they are set
	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, opts.GLMajor},
		{sdl.GL_CONTEXT_MINOR_VERSION, opts.GLMinor},
		{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, &window.ContextInitError{
				Backend: backendName,
				Err:     fmt.Errorf("failed to set GL attribute %d: %w", a.attr, err),
			}
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL)
	if opts.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	w.window, err = sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(opts.Width), int32(opts.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, &window.ContextInitError{
			Backend: backendName,
			Err:     fmt.Errorf("failed to create window: %w", err),
		}
	}

	w.glContext, err = w.window.GLCreateContext()
	if err != nil {
		w.Destroy()
		return nil, &window.ContextInitError{
			Backend: backendName,
			Err:     fmt.Errorf("failed to create OpenGL %d.%d context: %w", opts.GLMajor, opts.GLMinor, err),
		}
	}
	err = w.window.GLMakeCurrent(w.glContext)
	if err != nil {
		w.Destroy()
		return nil, &window.ContextInitError{
			Backend: backendName,
			Err:     fmt.Errorf("failed to set current OpenGL context: %w", err),
		}
	}

	interval := 0
	if opts.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn(fmt.Sprintf("could not set swap interval: %s", err))
	}

	return w, nil
}

func (w *Window) ProcAddr(name string) unsafe.Pointer {
	return sdl.GLGetProcAddress(name)
}

func (w *Window) PollEvents() []window.Event {
	var events []window.Event
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := translate(ev); ok {
			events = append(events, e)
		}
	}
	return events
}

func translate(ev sdl.Event) (window.Event, bool) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return window.Event{Kind: window.Quit}, true
	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
			return window.Event{Kind: window.Quit}, true
		}
	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return window.Event{Kind: window.Resize, Width: int(ev.Data1), Height: int(ev.Data2)}, true
		}
	}
	return window.Event{}, false
}

func (w *Window) SwapBuffers() {
	w.window.GLSwap()
}

func (w *Window) FramebufferSize() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) Destroy() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.window != nil {
		_ = w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
