// Package glfake is an in-memory glapi.GL for tests.
//
// It keeps enough driver state to behave like a strict implementation:
// shaders are checked for a #version line, balanced braces and a main
// function, programs check that every fragment input is written by the
// vertex stage, and misuse is recorded in the error queue read by
// GetError. Diagnostics follow the Mesa "0:LINE(COL): error: ..." layout.
package glfake

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/fosdem/glstage/lib/rendering/glapi"
)

type shader struct {
	kind     uint32
	source   string
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	deleted  bool
}

type vertexArray struct {
	elements uint32
	enabled  map[uint32]bool
}

type GL struct {
	Strings map[uint32]string

	// EmptyLogs makes failed compiles and links report a zero-length
	// info log.
	EmptyLogs bool

	// Calls records the name of every GL function called, in order.
	Calls []string

	ViewportRect [4]int32
	ClearColour  [4]float32
	Clears       int
	Draws        int

	nextID   uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	vaos     map[uint32]*vertexArray
	buffers  map[uint32]int
	bound    map[uint32]uint32
	vao      uint32
	current  uint32
	errors   []uint32
}

var _ glapi.GL = (*GL)(nil)

func New() *GL {
	return &GL{
		Strings: map[uint32]string{
			glapi.VENDOR:                   "glfake",
			glapi.RENDERER:                 "glfake software",
			glapi.VERSION:                  "4.1 (Core Profile) glfake",
			glapi.SHADING_LANGUAGE_VERSION: "4.10",
		},
		shaders:  map[uint32]*shader{},
		programs: map[uint32]*program{},
		vaos:     map[uint32]*vertexArray{},
		buffers:  map[uint32]int{},
		bound:    map[uint32]uint32{},
	}
}

func (g *GL) call(name string) {
	g.Calls = append(g.Calls, name)
}

func (g *GL) fail(code uint32) {
	g.errors = append(g.errors, code)
}

func (g *GL) id() uint32 {
	g.nextID++
	return g.nextID
}

// CallCount returns how many times the named function was called.
func (g *GL) CallCount(name string) int {
	n := 0
	for _, c := range g.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// LiveShaders is the number of shader objects not yet deleted.
func (g *GL) LiveShaders() int {
	n := 0
	for _, s := range g.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms is the number of program objects not yet deleted.
func (g *GL) LivePrograms() int {
	n := 0
	for _, p := range g.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// Attached returns the shaders currently attached to a program.
func (g *GL) Attached(prog uint32) []uint32 {
	p, ok := g.programs[prog]
	if !ok {
		return nil
	}
	return slices.Clone(p.attached)
}

func (g *GL) GetString(name uint32) string {
	g.call("GetString")
	s, ok := g.Strings[name]
	if !ok {
		g.fail(glapi.INVALID_ENUM)
	}
	return s
}

func (g *GL) GetError() uint32 {
	g.call("GetError")
	if len(g.errors) == 0 {
		return glapi.NO_ERROR
	}
	code := g.errors[0]
	g.errors = g.errors[1:]
	return code
}

func (g *GL) GetIntegerv(pname uint32) int32 {
	g.call("GetIntegerv")
	switch pname {
	case glapi.CURRENT_PROGRAM:
		return int32(g.current)
	default:
		g.fail(glapi.INVALID_ENUM)
		return 0
	}
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.call("Viewport")
	if width < 0 || height < 0 {
		g.fail(glapi.INVALID_VALUE)
		return
	}
	g.ViewportRect = [4]int32{x, y, width, height}
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.call("ClearColor")
	g.ClearColour = [4]float32{r, gr, b, a}
}

func (g *GL) Clear(mask uint32) {
	g.call("Clear")
	if mask&^uint32(glapi.COLOR_BUFFER_BIT) != 0 {
		g.fail(glapi.INVALID_VALUE)
		return
	}
	g.Clears++
}

func (g *GL) CreateShader(kind uint32) uint32 {
	g.call("CreateShader")
	if kind != glapi.VERTEX_SHADER && kind != glapi.FRAGMENT_SHADER {
		g.fail(glapi.INVALID_ENUM)
		return 0
	}
	id := g.id()
	g.shaders[id] = &shader{kind: kind}
	return id
}

func (g *GL) shader(id uint32) *shader {
	s, ok := g.shaders[id]
	if !ok || s.deleted {
		g.fail(glapi.INVALID_VALUE)
		return nil
	}
	return s
}

func (g *GL) ShaderSource(id uint32, source string) {
	g.call("ShaderSource")
	if s := g.shader(id); s != nil {
		s.source = source
	}
}

func (g *GL) CompileShader(id uint32) {
	g.call("CompileShader")
	s := g.shader(id)
	if s == nil {
		return
	}
	s.log = compile(s.source)
	s.compiled = s.log == ""
	if g.EmptyLogs {
		s.log = ""
	}
}

func (g *GL) GetShaderiv(id uint32, pname uint32) int32 {
	g.call("GetShaderiv")
	s := g.shader(id)
	if s == nil {
		return 0
	}
	switch pname {
	case glapi.COMPILE_STATUS:
		return boolean(s.compiled)
	case glapi.SHADER_TYPE:
		return int32(s.kind)
	case glapi.DELETE_STATUS:
		return boolean(s.deleted)
	case glapi.INFO_LOG_LENGTH:
		return logLength(s.log)
	default:
		g.fail(glapi.INVALID_ENUM)
		return 0
	}
}

func (g *GL) GetShaderInfoLog(id uint32, bufSize int32) string {
	g.call("GetShaderInfoLog")
	s := g.shader(id)
	if s == nil {
		return ""
	}
	return truncate(s.log, bufSize)
}

func (g *GL) DeleteShader(id uint32) {
	g.call("DeleteShader")
	if id == 0 {
		return
	}
	if s := g.shader(id); s != nil {
		s.deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	g.call("CreateProgram")
	id := g.id()
	g.programs[id] = &program{}
	return id
}

func (g *GL) program(id uint32) *program {
	p, ok := g.programs[id]
	if !ok || p.deleted {
		g.fail(glapi.INVALID_VALUE)
		return nil
	}
	return p
}

func (g *GL) AttachShader(prog, id uint32) {
	g.call("AttachShader")
	p := g.program(prog)
	s := g.shader(id)
	if p == nil || s == nil {
		return
	}
	if slices.Contains(p.attached, id) {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	p.attached = append(p.attached, id)
}

func (g *GL) DetachShader(prog, id uint32) {
	g.call("DetachShader")
	p := g.program(prog)
	if p == nil {
		return
	}
	i := slices.Index(p.attached, id)
	if i < 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	p.attached = slices.Delete(p.attached, i, i+1)
}

func (g *GL) LinkProgram(prog uint32) {
	g.call("LinkProgram")
	p := g.program(prog)
	if p == nil {
		return
	}
	stages := make([]*shader, 0, len(p.attached))
	for _, id := range p.attached {
		stages = append(stages, g.shaders[id])
	}
	p.log = link(stages)
	p.linked = p.log == ""
	if g.EmptyLogs {
		p.log = ""
	}
}

func (g *GL) GetProgramiv(prog uint32, pname uint32) int32 {
	g.call("GetProgramiv")
	p := g.program(prog)
	if p == nil {
		return 0
	}
	switch pname {
	case glapi.LINK_STATUS:
		return boolean(p.linked)
	case glapi.DELETE_STATUS:
		return boolean(p.deleted)
	case glapi.INFO_LOG_LENGTH:
		return logLength(p.log)
	default:
		g.fail(glapi.INVALID_ENUM)
		return 0
	}
}

func (g *GL) GetProgramInfoLog(prog uint32, bufSize int32) string {
	g.call("GetProgramInfoLog")
	p := g.program(prog)
	if p == nil {
		return ""
	}
	return truncate(p.log, bufSize)
}

func (g *GL) UseProgram(prog uint32) {
	g.call("UseProgram")
	if prog == 0 {
		g.current = 0
		return
	}
	p := g.program(prog)
	if p == nil {
		return
	}
	if !p.linked {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	g.current = prog
}

func (g *GL) DeleteProgram(prog uint32) {
	g.call("DeleteProgram")
	if prog == 0 {
		return
	}
	if p := g.program(prog); p != nil {
		p.deleted = true
		if g.current == prog {
			g.current = 0
		}
	}
}

func (g *GL) GenVertexArray() uint32 {
	g.call("GenVertexArray")
	id := g.id()
	g.vaos[id] = &vertexArray{enabled: map[uint32]bool{}}
	return id
}

func (g *GL) BindVertexArray(vao uint32) {
	g.call("BindVertexArray")
	if _, ok := g.vaos[vao]; !ok && vao != 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	g.vao = vao
}

func (g *GL) GenBuffer() uint32 {
	g.call("GenBuffer")
	id := g.id()
	g.buffers[id] = 0
	return id
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.call("BindBuffer")
	if target != glapi.ARRAY_BUFFER && target != glapi.ELEMENT_ARRAY_BUFFER {
		g.fail(glapi.INVALID_ENUM)
		return
	}
	if _, ok := g.buffers[buffer]; !ok && buffer != 0 {
		g.fail(glapi.INVALID_VALUE)
		return
	}
	g.bound[target] = buffer
	if target == glapi.ELEMENT_ARRAY_BUFFER && g.vao != 0 {
		g.vaos[g.vao].elements = buffer
	}
}

func (g *GL) BufferData(target uint32, size int, data any, usage uint32) {
	g.call("BufferData")
	buffer := g.bound[target]
	if buffer == 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	if size < 0 {
		g.fail(glapi.INVALID_VALUE)
		return
	}
	g.buffers[buffer] = size
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.call("EnableVertexAttribArray")
	if g.vao == 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	g.vaos[g.vao].enabled[index] = true
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.call("VertexAttribPointer")
	if g.vao == 0 || g.bound[glapi.ARRAY_BUFFER] == 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	if size < 1 || size > 4 || stride < 0 {
		g.fail(glapi.INVALID_VALUE)
	}
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	g.call("DrawElements")
	if mode != glapi.TRIANGLES || xtype != glapi.UNSIGNED_INT {
		g.fail(glapi.INVALID_ENUM)
		return
	}
	if g.current == 0 || g.vao == 0 {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	elements := g.vaos[g.vao].elements
	if elements == 0 || int(offset)+int(count)*4 > g.buffers[elements] {
		g.fail(glapi.INVALID_OPERATION)
		return
	}
	g.Draws++
}

func boolean(b bool) int32 {
	if b {
		return glapi.TRUE
	}
	return glapi.FALSE
}

// logLength counts the terminating NUL like a driver does.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func truncate(log string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if int(bufSize-1) < len(log) {
		return log[:bufSize-1]
	}
	return log
}

func compile(source string) string {
	if !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return "0:1(1): error: missing #version directive\n"
	}

	depth := 0
	line, col := 1, 0
	for _, r := range source {
		col++
		switch r {
		case '\n':
			line++
			col = 0
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return fmt.Sprintf("0:%d(%d): error: syntax error, unexpected '}'\n", line, col)
			}
			depth--
		}
	}
	if depth > 0 {
		return fmt.Sprintf("0:%d(%d): error: syntax error, unexpected end of file\n", line, col+1)
	}

	if !strings.Contains(source, "void main") {
		return "0:1(1): error: main function not defined\n"
	}
	return ""
}

var varying = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|out)\s+(\w+)\s+(\w+)\s*;`)

func interfaceOf(source, qualifier string) map[string]string {
	vars := map[string]string{}
	for _, m := range varying.FindAllStringSubmatch(source, -1) {
		if m[1] == qualifier {
			vars[m[3]] = m[2]
		}
	}
	return vars
}

func link(stages []*shader) string {
	var vert, frag *shader
	for _, s := range stages {
		if !s.compiled {
			return "error: linking with uncompiled/unspecialized shader\n"
		}
		switch s.kind {
		case glapi.VERTEX_SHADER:
			vert = s
		case glapi.FRAGMENT_SHADER:
			frag = s
		}
	}
	if vert == nil {
		return "error: program lacks a vertex shader\n"
	}
	if frag == nil {
		return "error: program lacks a fragment shader\n"
	}

	outputs := interfaceOf(vert.source, "out")
	inputs := interfaceOf(frag.source, "in")
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		typ, ok := outputs[name]
		if !ok {
			fmt.Fprintf(&b, "error: fragment shader varying %s not written by vertex shader\n", name)
			continue
		}
		if typ != inputs[name] {
			fmt.Fprintf(&b, "error: %s declared as type %s in vertex shader but type %s in fragment shader\n", name, typ, inputs[name])
		}
	}
	return b.String()
}
