// Package glfwwindow is the glfw window backend. Importing it registers
// the "glfw" backend.
package glfwwindow

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glstage/lib/kbdctl"
	"github.com/fosdem/glstage/lib/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const backendName = "glfw"

func init() {
	window.Register(backendName, Open)
}

type Window struct {
	Window *glfw.Window

	events []window.Event
	log    *slog.Logger
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func Open(opts window.Options) (window.Host, error) {
	w := &Window{log: slog.With("module", backendName)}
	w.log.Debug("initializing window")

	if err := glfw.Init(); err != nil {
		return nil, &window.ContextInitError{Backend: backendName, Err: err}
	}

	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, opts.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &window.ContextInitError{
			Backend: backendName,
			Err:     fmt.Errorf("could not create %dx%d window with OpenGL %d.%d core: %w", opts.Width, opts.Height, opts.GLMajor, opts.GLMinor, err),
		}
	}
	w.Window = win

	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.push(window.Event{Kind: window.Quit})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(window.Event{Kind: window.Resize, Width: width, Height: height})
	})
	kbdctl.SetupShortcutKeys(win, func() {
		w.push(window.Event{Kind: window.Quit})
	})

	return w, nil
}

func (w *Window) push(ev window.Event) {
	w.events = append(w.events, ev)
}

func (w *Window) ProcAddr(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (w *Window) PollEvents() []window.Event {
	glfw.PollEvents()
	events := w.events
	w.events = nil
	return events
}

func (w *Window) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Window.GetFramebufferSize()
}

func (w *Window) Destroy() {
	if w.Window != nil {
		w.Window.Destroy()
		w.Window = nil
	}
	glfw.Terminate()
}
