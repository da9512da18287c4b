// Package render flattens a polyhedron into the flat vertex-attribute and
// triangle-index buffers the rendering pipeline consumes. Faces become fans
// of triangles from their first vertex, normals are per-face (flat shading),
// and texture coordinates address a palette tile chosen by face congruence
// class, so every face of the same shape shares a color.
package render

import (
	"fmt"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// Mesh is a triangle mesh suitable for rendering. All arrays are flat:
// Vertices and Normals carry 3 floats per vertex, TexCoords 2, and Indices
// 3 uint32s per triangle. Each input face contributes its own run of
// vertices so normals stay flat across the face.
type Mesh struct {
	Vertices  []float32 `json:"vertices"`  // [x0,y0,z0, x1,y1,z1, ...]
	TexCoords []float32 `json:"texCoords"` // [u0,v0, u1,v1, ...]
	Normals   []float32 `json:"normals"`   // [nx0,ny0,nz0, ...]
	Indices   []uint32  `json:"indices"`   // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Interleaved packs the buffers into the fixed per-vertex attribute order
// of the shader contract: position (3 floats), texture coordinate (2),
// normal (3).
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)+len(m.TexCoords)+len(m.Normals))
	for i := 0; i < m.VertexCount(); i++ {
		out = append(out, m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2])
		out = append(out, m.TexCoords[2*i], m.TexCoords[2*i+1])
		out = append(out, m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2])
	}
	return out
}

// paletteGrid is the side length of the palette texture's tile grid.
const paletteGrid = 8

// Build flattens a valid closed manifold polyhedron into render buffers.
// Triangle winding follows the source face winding, so outward orientation
// survives the flattening.
func Build(p *polyhedron.Polyhedron) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	classes := classifyFaces(p)
	m := &Mesh{}

	for fi, f := range p.Faces {
		// Tile center of this face's congruence class. Classes wrap past the
		// grid so coordinates stay inside [0,1].
		tile := classes[fi] % (paletteGrid * paletteGrid)
		u := (float32(tile%paletteGrid) + 0.5) / paletteGrid
		v := (float32(tile/paletteGrid) + 0.5) / paletteGrid

		normal := p.FaceNormal(f)
		nx, ny, nz := float32(normal.X), float32(normal.Y), float32(normal.Z)

		first := uint32(m.VertexCount())
		for _, idx := range f.Indices {
			pos := p.Vertices[idx]
			m.Vertices = append(m.Vertices, float32(pos.X), float32(pos.Y), float32(pos.Z))
			m.TexCoords = append(m.TexCoords, u, v)
			m.Normals = append(m.Normals, nx, ny, nz)
		}
		for i := uint32(1); i < uint32(f.Sides())-1; i++ {
			m.Indices = append(m.Indices, first, first+i, first+i+1)
		}
	}

	return m, nil
}
