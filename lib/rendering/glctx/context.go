// Package glctx holds the process-wide OpenGL function table.
//
// The table is resolved once against the loader of the window host and
// the resulting *Context is handed to every component that issues GL
// calls. Nothing resolves addresses a second time.
package glctx

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/fosdem/glstage/lib/window"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// ProcAddrFunc returns the address of the named GL entry point, or nil.
type ProcAddrFunc func(name string) unsafe.Pointer

type Context struct {
	info glapi.Info
}

var _ glapi.GL = (*Context)(nil)

// New resolves the function table for the context that is current on the
// calling thread.
func New(getProcAddr ProcAddrFunc) (*Context, error) {
	if getProcAddr == nil {
		return nil, &window.ContextInitError{Backend: "opengl", Err: fmt.Errorf("no loader function supplied")}
	}
	err := gl.InitWithProcAddrFunc(getProcAddr)
	if err != nil {
		return nil, &window.ContextInitError{Backend: "opengl", Err: fmt.Errorf("could not resolve GL functions: %w", err)}
	}

	c := &Context{}
	c.info = glapi.QueryInfo(c)
	slog.Info(
		fmt.Sprintf("OpenGL version %s / %s / %s", c.info.Vendor, c.info.Renderer, c.info.Version),
		"module", "glctx",
	)
	return c, nil
}

func (c *Context) Info() glapi.Info {
	return c.info
}

func (c *Context) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (c *Context) GetError() uint32 {
	return gl.GetError()
}

func (c *Context) GetIntegerv(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear(mask uint32) {
	gl.Clear(mask)
}

func (c *Context) CreateShader(kind uint32) uint32 {
	return gl.CreateShader(kind)
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (c *Context) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (c *Context) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (c *Context) GetShaderInfoLog(shader uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize+1)
	gl.GetShaderInfoLog(shader, bufSize, nil, &buf[0])
	return gl.GoStr(&buf[0])
}

func (c *Context) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (c *Context) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (c *Context) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (c *Context) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (c *Context) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (c *Context) GetProgramInfoLog(program uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize+1)
	gl.GetProgramInfoLog(program, bufSize, nil, &buf[0])
	return gl.GoStr(&buf[0])
}

func (c *Context) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (c *Context) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (c *Context) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (c *Context) BufferData(target uint32, size int, data any, usage uint32) {
	gl.BufferData(target, size, gl.Ptr(data), usage)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (c *Context) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(int(offset)))
}
