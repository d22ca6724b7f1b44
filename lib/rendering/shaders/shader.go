package shaders

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fosdem/glstage/lib/rendering/glapi"
)

type Kind uint32

const (
	Vertex   Kind = glapi.VERTEX_SHADER
	Fragment Kind = glapi.FRAGMENT_SHADER
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("shader kind 0x%x", uint32(k))
	}
}

// KindFromName picks the stage from the file extension.
func KindFromName(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vert", ".vs":
		return Vertex, nil
	case ".frag", ".fs":
		return Fragment, nil
	default:
		return 0, fmt.Errorf("cannot tell shader stage of %s from its extension", name)
	}
}

// Source is shader text ready to be handed to the driver.
type Source struct {
	Name string
	Kind Kind
	Text string
}

type CompileError struct {
	Kind Kind
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	log := strings.TrimSpace(e.Log)
	if log == "" {
		return fmt.Sprintf("failed to compile %s shader %s", e.Kind, e.Name)
	}
	return fmt.Sprintf("failed to compile %s shader %s: %s", e.Kind, e.Name, log)
}

// Shader owns one compiled shader object.
type Shader struct {
	gl   glapi.GL
	id   uint32
	kind Kind
	name string
}

// Compile compiles src against gl. The returned shader must be deleted
// once the programs using it have been linked.
func Compile(gl glapi.GL, src Source) (*Shader, error) {
	id := gl.CreateShader(uint32(src.Kind))
	if id == 0 {
		return nil, &CompileError{Kind: src.Kind, Name: src.Name, Log: "glCreateShader failed"}
	}

	gl.ShaderSource(id, src.Text)
	gl.CompileShader(id)

	if gl.GetShaderiv(id, glapi.COMPILE_STATUS) == glapi.FALSE {
		var log string
		logLength := gl.GetShaderiv(id, glapi.INFO_LOG_LENGTH)
		if logLength > 0 {
			log = gl.GetShaderInfoLog(id, logLength)
		}
		gl.DeleteShader(id)
		return nil, &CompileError{Kind: src.Kind, Name: src.Name, Log: log}
	}

	slog.Debug(fmt.Sprintf("compiled %s shader %s", src.Kind, src.Name), "module", "shaders")
	return &Shader{gl: gl, id: id, kind: src.Kind, name: src.Name}, nil
}

func (s *Shader) ID() uint32 {
	return s.id
}

func (s *Shader) Kind() Kind {
	return s.kind
}

func (s *Shader) Name() string {
	return s.name
}

// Delete releases the shader object. Programs already linked from it are
// unaffected.
func (s *Shader) Delete() {
	if s.id == 0 {
		return
	}
	s.gl.DeleteShader(s.id)
	s.id = 0
}
