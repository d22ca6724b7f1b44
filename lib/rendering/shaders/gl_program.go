package shaders

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fosdem/glstage/lib/metrics"
	"github.com/fosdem/glstage/lib/rendering/glapi"
)

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	log := strings.TrimSpace(e.Log)
	if log == "" {
		return "failed to link program"
	}
	return fmt.Sprintf("failed to link program: %s", log)
}

// Program owns one linked program object.
type Program struct {
	gl glapi.GL
	id uint32
}

// Link links the given shaders into a new program. The shaders are
// detached again before returning, so they can be deleted independently
// of the program.
func Link(gl glapi.GL, shaders ...*Shader) (*Program, error) {
	for _, s := range shaders {
		if s.id == 0 {
			return nil, fmt.Errorf("cannot link %s shader %s: it has been deleted", s.kind, s.name)
		}
	}

	program := gl.CreateProgram()
	if program == 0 {
		return nil, &LinkError{Log: "glCreateProgram failed"}
	}

	for _, s := range shaders {
		gl.AttachShader(program, s.id)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s.id)
	}

	if gl.GetProgramiv(program, glapi.LINK_STATUS) == glapi.FALSE {
		var logmsg string
		logLength := gl.GetProgramiv(program, glapi.INFO_LOG_LENGTH)
		if logLength > 0 {
			logmsg = gl.GetProgramInfoLog(program, logLength)
		}
		gl.DeleteProgram(program)
		return nil, &LinkError{Log: logmsg}
	}

	return &Program{gl: gl, id: program}, nil
}

// BuildProgram compiles every source and links the results. The
// intermediate shader objects are always released before it returns.
func BuildProgram(gl glapi.GL, sources ...Source) (*Program, error) {
	compiled := make([]*Shader, 0, len(sources))
	defer func() {
		for _, s := range compiled {
			s.Delete()
		}
	}()

	for _, src := range sources {
		s, err := Compile(gl, src)
		if err != nil {
			metrics.ShaderBuilds.WithLabelValues("compile_error").Inc()
			return nil, err
		}
		compiled = append(compiled, s)
	}

	program, err := Link(gl, compiled...)
	if err != nil {
		metrics.ShaderBuilds.WithLabelValues("link_error").Inc()
		return nil, err
	}

	metrics.ShaderBuilds.WithLabelValues("ok").Inc()
	slog.Info(fmt.Sprintf("linked program %d from %d shaders", program.id, len(compiled)), "module", "shaders")
	return program, nil
}

func (p *Program) ID() uint32 {
	return p.id
}

// Use makes p the active program for subsequent draw calls. It stays
// active until another program is used.
func (p *Program) Use() {
	p.gl.UseProgram(p.id)
}

func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.gl.DeleteProgram(p.id)
	p.id = 0
}
