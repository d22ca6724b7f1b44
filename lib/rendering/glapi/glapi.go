// Package glapi describes the subset of the OpenGL function table that the
// renderer uses. It carries no cgo so that shader and mesh code can be
// exercised against glfake without a GPU.
package glapi

// GL is the function table. Implementations forward every call to the
// driver without validating arguments; misuse only shows up through
// GetError.
type GL interface {
	GetString(name uint32) string
	GetError() uint32
	GetIntegerv(pname uint32) int32

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	// GetShaderInfoLog fills a buffer of bufSize bytes with the info log.
	GetShaderInfoLog(shader uint32, bufSize int32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32, bufSize int32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data any, usage uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}

// Info describes the driver behind a context.
type Info struct {
	Vendor      string `json:"vendor"`
	Renderer    string `json:"renderer"`
	Version     string `json:"version"`
	GLSLVersion string `json:"glsl_version"`
}

func QueryInfo(gl GL) Info {
	return Info{
		Vendor:      gl.GetString(VENDOR),
		Renderer:    gl.GetString(RENDERER),
		Version:     gl.GetString(VERSION),
		GLSLVersion: gl.GetString(SHADING_LANGUAGE_VERSION),
	}
}
