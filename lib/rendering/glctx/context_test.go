package glctx

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/fosdem/glstage/lib/window"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestEnumsMatchBindings(t *testing.T) {
	pairs := []struct {
		name string
		ours uint32
		gl   uint32
	}{
		{"NO_ERROR", glapi.NO_ERROR, gl.NO_ERROR},
		{"INVALID_ENUM", glapi.INVALID_ENUM, gl.INVALID_ENUM},
		{"INVALID_VALUE", glapi.INVALID_VALUE, gl.INVALID_VALUE},
		{"INVALID_OPERATION", glapi.INVALID_OPERATION, gl.INVALID_OPERATION},
		{"OUT_OF_MEMORY", glapi.OUT_OF_MEMORY, gl.OUT_OF_MEMORY},
		{"INVALID_FRAMEBUFFER_OPERATION", glapi.INVALID_FRAMEBUFFER_OPERATION, gl.INVALID_FRAMEBUFFER_OPERATION},
		{"VENDOR", glapi.VENDOR, gl.VENDOR},
		{"RENDERER", glapi.RENDERER, gl.RENDERER},
		{"VERSION", glapi.VERSION, gl.VERSION},
		{"SHADING_LANGUAGE_VERSION", glapi.SHADING_LANGUAGE_VERSION, gl.SHADING_LANGUAGE_VERSION},
		{"COLOR_BUFFER_BIT", glapi.COLOR_BUFFER_BIT, gl.COLOR_BUFFER_BIT},
		{"FRAGMENT_SHADER", glapi.FRAGMENT_SHADER, gl.FRAGMENT_SHADER},
		{"VERTEX_SHADER", glapi.VERTEX_SHADER, gl.VERTEX_SHADER},
		{"COMPILE_STATUS", glapi.COMPILE_STATUS, gl.COMPILE_STATUS},
		{"LINK_STATUS", glapi.LINK_STATUS, gl.LINK_STATUS},
		{"INFO_LOG_LENGTH", glapi.INFO_LOG_LENGTH, gl.INFO_LOG_LENGTH},
		{"CURRENT_PROGRAM", glapi.CURRENT_PROGRAM, gl.CURRENT_PROGRAM},
		{"ARRAY_BUFFER", glapi.ARRAY_BUFFER, gl.ARRAY_BUFFER},
		{"ELEMENT_ARRAY_BUFFER", glapi.ELEMENT_ARRAY_BUFFER, gl.ELEMENT_ARRAY_BUFFER},
		{"STATIC_DRAW", glapi.STATIC_DRAW, gl.STATIC_DRAW},
		{"TRIANGLES", glapi.TRIANGLES, gl.TRIANGLES},
		{"UNSIGNED_INT", glapi.UNSIGNED_INT, gl.UNSIGNED_INT},
		{"FLOAT", glapi.FLOAT, gl.FLOAT},
	}
	for _, p := range pairs {
		if p.ours != p.gl {
			t.Errorf("%s: glapi has 0x%x, bindings have 0x%x", p.name, p.ours, p.gl)
		}
	}
}

func TestNewWithoutLoader(t *testing.T) {
	_, err := New(nil)
	var initErr *window.ContextInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected a ContextInitError, got %v", err)
	}
	if initErr.Backend != "opengl" {
		t.Errorf("unexpected backend %q", initErr.Backend)
	}
}

func TestNewWithUnresolvableLoader(t *testing.T) {
	_, err := New(func(string) unsafe.Pointer { return nil })
	var initErr *window.ContextInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected a ContextInitError, got %v", err)
	}
}
