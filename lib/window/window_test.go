package window_test

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/fosdem/glstage/lib/test"
	"github.com/fosdem/glstage/lib/window"
)

type nullHost struct {
	opts window.Options
}

func (h *nullHost) ProcAddr(string) unsafe.Pointer { return nil }
func (h *nullHost) PollEvents() []window.Event     { return nil }
func (h *nullHost) SwapBuffers()                   {}
func (h *nullHost) FramebufferSize() (int, int)    { return h.opts.Width, h.opts.Height }
func (h *nullHost) Destroy()                       {}

func init() {
	window.Register("null", func(opts window.Options) (window.Host, error) {
		return &nullHost{opts: opts}, nil
	})
}

func TestOpenRegisteredBackend(t *testing.T) {
	host, err := window.Open("null", window.Options{Width: 900, Height: 700})
	test.DemandSuccess(t, err)
	w, h := host.FramebufferSize()
	test.ExpectEquality(t, w, 900)
	test.ExpectEquality(t, h, 700)
	test.ExpectSuccess(t, slices.Contains(window.Backends(), "null"))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := window.Open("vulkan", window.Options{})
	var initErr *window.ContextInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ContextInitError, got %v", err)
	}
	test.ExpectEquality(t, initErr.Backend, "vulkan")
	test.ExpectSuccess(t, initErr.Unwrap() != nil)
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		test.ExpectSuccess(t, recover() != nil)
	}()
	window.Register("null", nil)
}

func TestEventKindString(t *testing.T) {
	test.ExpectEquality(t, window.Quit.String(), "quit")
	test.ExpectEquality(t, window.Resize.String(), "resize")
	test.ExpectEquality(t, window.EventKind(7).String(), "event(7)")
}
