package rendering

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fosdem/glstage/lib/metrics"
	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/fosdem/glstage/lib/rendering/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// maxDrainedErrors bounds DrainErrors, since a lost context can keep
// reporting the same code forever.
const maxDrainedErrors = 16

type GLError struct {
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = glapi.ErrorName(c)
	}
	return fmt.Sprintf("GL reported %s", strings.Join(names, ", "))
}

// DrainErrors empties the GL error queue.
func DrainErrors(gl glapi.GL) []uint32 {
	var codes []uint32
	for range maxDrainedErrors {
		code := gl.GetError()
		if code == glapi.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	return codes
}

// Renderer issues the per-frame draw sequence for one program and one
// mesh.
type Renderer struct {
	gl      glapi.GL
	program *shaders.Program
	mesh    *Mesh

	BGColour mgl32.Vec4

	// CheckErrors drains glGetError after every draw.
	CheckErrors bool

	Frames uint64
}

func NewRenderer(gl glapi.GL, program *shaders.Program, mesh *Mesh, bgColour mgl32.Vec4) *Renderer {
	return &Renderer{
		gl:       gl,
		program:  program,
		mesh:     mesh,
		BGColour: bgColour,
	}
}

func (r *Renderer) Start(width, height int) {
	r.gl.ClearColor(r.BGColour[0], r.BGColour[1], r.BGColour[2], r.BGColour[3])
	r.Resize(width, height)
	r.program.Use()
}

func (r *Renderer) Resize(width, height int) {
	r.gl.Viewport(0, 0, int32(width), int32(height))
}

// DrawFrame clears the colour buffer and draws the mesh. A non-nil error
// is always a *GLError and leaves the renderer usable.
func (r *Renderer) DrawFrame() error {
	r.gl.Clear(glapi.COLOR_BUFFER_BIT)
	r.program.Use()
	r.gl.BindVertexArray(r.mesh.VAO)
	r.gl.DrawElements(glapi.TRIANGLES, r.mesh.Count, glapi.UNSIGNED_INT, 0)
	r.Frames++

	if !r.CheckErrors {
		return nil
	}
	codes := DrainErrors(r.gl)
	if len(codes) == 0 {
		return nil
	}
	for _, c := range codes {
		metrics.GLErrors.WithLabelValues(glapi.ErrorName(c)).Inc()
	}
	err := &GLError{Codes: codes}
	slog.Warn(fmt.Sprintf("frame %d: %s", r.Frames, err), "module", "rendering")
	return err
}
