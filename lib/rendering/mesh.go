package rendering

import (
	"fmt"

	"github.com/fosdem/glstage/lib/rendering/glapi"
	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4
const u32 = 4

// positionAttrib matches layout(location = 0) in the vertex shader.
const positionAttrib = 0

type Shape string

const (
	Triangle Shape = "triangle"
	Quad     Shape = "quad"
)

type Geometry struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

func ShapeGeometry(shape Shape) (Geometry, error) {
	switch shape {
	case Triangle:
		return Geometry{
			Vertices: []mgl32.Vec3{
				{-0.5, -0.5, 0},
				{0.5, -0.5, 0},
				{0, 0.5, 0},
			},
			Indices: []uint32{0, 1, 2},
		}, nil
	case Quad:
		return Geometry{
			Vertices: []mgl32.Vec3{
				{-0.5, -0.5, 0},
				{0.5, -0.5, 0},
				{0.5, 0.5, 0},
				{-0.5, 0.5, 0},
			},
			Indices: []uint32{0, 1, 2, 0, 2, 3},
		}, nil
	default:
		return Geometry{}, fmt.Errorf("unknown mesh shape %q", shape)
	}
}

// Flatten packs the positions as consecutive xyz floats.
func (g Geometry) Flatten() []float32 {
	out := make([]float32, 0, len(g.Vertices)*3)
	for _, v := range g.Vertices {
		out = append(out, v.X(), v.Y(), v.Z())
	}
	return out
}

// Mesh is geometry resident on the GPU. It lives for the whole process and
// is never released.
type Mesh struct {
	VAO   uint32
	VBO   uint32
	EBO   uint32
	Count int32
}

func NewMesh(gl glapi.GL, geom Geometry) (*Mesh, error) {
	if len(geom.Vertices) == 0 || len(geom.Indices) == 0 {
		return nil, fmt.Errorf("cannot upload empty geometry")
	}
	for _, i := range geom.Indices {
		if int(i) >= len(geom.Vertices) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", i, len(geom.Vertices))
		}
	}

	m := &Mesh{Count: int32(len(geom.Indices))}
	vertices := geom.Flatten()

	m.VAO = gl.GenVertexArray()
	gl.BindVertexArray(m.VAO)

	m.VBO = gl.GenBuffer()
	gl.BindBuffer(glapi.ARRAY_BUFFER, m.VBO)
	gl.BufferData(glapi.ARRAY_BUFFER, len(vertices)*f32, vertices, glapi.STATIC_DRAW)

	m.EBO = gl.GenBuffer()
	gl.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(glapi.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*u32, geom.Indices, glapi.STATIC_DRAW)

	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(positionAttrib, 3, glapi.FLOAT, false, 3*f32, 0)

	// the element buffer binding is VAO state, the array buffer is not
	gl.BindBuffer(glapi.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}
