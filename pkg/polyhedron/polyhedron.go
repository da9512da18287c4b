// Package polyhedron defines the mesh value shared by the seed generator,
// the Conway operator engine and the render adapter: a flat vertex list plus
// faces expressed as ordered loops of vertex indices. A Polyhedron is never
// mutated after construction; every operator allocates a fresh one, so meshes
// can be read concurrently without synchronization.
package polyhedron

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is an ordered loop of vertex indices (length >= 3). Winding is
// consistent across the whole mesh, so outward orientation is recoverable
// from index order alone.
type Face struct {
	Indices []int
}

// Sides returns the number of sides (and vertices) of the face.
func (f Face) Sides() int {
	return len(f.Indices)
}

// Last returns the last two indices of the loop, i.e. the directed edge that
// closes back onto Indices[0].
func (f Face) Last() (int, int) {
	n := len(f.Indices)
	return f.Indices[n-2], f.Indices[n-1]
}

// Polyhedron is a closed manifold mesh. Vertex index is position in Vertices;
// faces reference vertices by index only. Edges are not stored: they are
// derived on demand from the face loops.
type Polyhedron struct {
	Vertices []v3.Vec
	Faces    []Face
}

// New creates a polyhedron from a vertex list and face loops. It does not
// validate; call Validate to check the closed-manifold invariants.
func New(vertices []v3.Vec, faces []Face) *Polyhedron {
	return &Polyhedron{Vertices: vertices, Faces: faces}
}

// VertexCount returns the number of vertices.
func (p *Polyhedron) VertexCount() int {
	return len(p.Vertices)
}

// FaceCount returns the number of faces.
func (p *Polyhedron) FaceCount() int {
	return len(p.Faces)
}

// Edge is an unordered pair of vertex indices with A < B.
type Edge struct {
	A, B int
}

// NewEdge normalizes a vertex pair into an Edge.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Edges derives the undirected edge list by scanning the face loops.
// Order is deterministic: first appearance during the scan.
func (p *Polyhedron) Edges() []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, f := range p.Faces {
		prev := f.Indices[len(f.Indices)-1]
		for _, cur := range f.Indices {
			e := NewEdge(prev, cur)
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
			prev = cur
		}
	}
	return edges
}

// EdgeCount returns the number of undirected edges.
func (p *Polyhedron) EdgeCount() int {
	return len(p.Edges())
}

// FaceVertices returns the positions of a face's vertices in loop order.
func (p *Polyhedron) FaceVertices(f Face) []v3.Vec {
	vs := make([]v3.Vec, len(f.Indices))
	for i, idx := range f.Indices {
		vs[i] = p.Vertices[idx]
	}
	return vs
}

// FaceCentroid returns the vertex average of a face. This is the position
// every operator uses for a face-derived vertex.
func (p *Polyhedron) FaceCentroid(f Face) v3.Vec {
	var sum v3.Vec
	for _, idx := range f.Indices {
		sum = sum.Add(p.Vertices[idx])
	}
	return sum.DivScalar(float64(len(f.Indices)))
}

// FaceNormal returns the unit outward normal of a face, computed as the
// cross-product sum of consecutive edges. Positions are taken relative to the
// first vertex, which reduces error for faces far from the origin.
func (p *Polyhedron) FaceNormal(f Face) v3.Vec {
	first := p.Vertices[f.Indices[0]]
	var normal v3.Vec
	var prev v3.Vec
	for _, idx := range f.Indices[1:] {
		cur := p.Vertices[idx].Sub(first)
		normal = normal.Add(prev.Cross(cur))
		prev = cur
	}
	// The edges closing back to the first vertex contribute nothing, since
	// positions are relative to that vertex.
	return normal.Normalize()
}

// FaceMeanRadius returns the mean distance from the face's vertices to the
// given point, typically its centroid. Kis scales its apex offset by this.
func (p *Polyhedron) FaceMeanRadius(f Face, point v3.Vec) float64 {
	var sum float64
	for _, idx := range f.Indices {
		sum += p.Vertices[idx].Sub(point).Length()
	}
	return sum / float64(len(f.Indices))
}
