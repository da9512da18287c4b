package operator

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// ambo (rectification) maps each edge to a vertex at its midpoint and emits
// two face families: one face per input face, walking its edge midpoints in
// loop order, and one face per input vertex, walking the midpoints of its
// incident edges in rotational order. Vertices of degree < 3 cannot form a
// face and are rejected.
func ambo(p *polyhedron.Polyhedron) (*polyhedron.Polyhedron, error) {
	adj, err := polyhedron.NewAdjacency(p)
	if err != nil {
		return nil, &InvalidMeshError{Op: "a", Err: err}
	}

	// Output vertex per undirected edge, indexed in edge scan order.
	edges := p.Edges()
	edgeIndex := make(map[polyhedron.Edge]int, len(edges))
	positions := make([]v3.Vec, len(edges))
	for i, e := range edges {
		edgeIndex[e] = i
		positions[i] = p.Vertices[e.A].Add(p.Vertices[e.B]).MulScalar(0.5)
	}

	faces := make([]polyhedron.Face, 0, len(p.Faces)+len(p.Vertices))

	// Family (a): one face per input face, its edge midpoints in loop order.
	for _, f := range p.Faces {
		loop := make([]int, 0, len(f.Indices))
		prev := f.Indices[len(f.Indices)-1]
		for _, cur := range f.Indices {
			loop = append(loop, edgeIndex[polyhedron.NewEdge(prev, cur)])
			prev = cur
		}
		faces = append(faces, polyhedron.Face{Indices: loop})
	}

	// Family (b): one face per input vertex, the midpoints of its incident
	// edges in rotational order. The neighbor walk runs opposite to the face
	// loops above, which is exactly what keeps the winding consistent: the
	// two families meet along each output edge with opposite direction.
	for v := range p.Vertices {
		if adj.Degree(v) < 3 {
			return nil, &DegenerateTopologyError{
				Op:      "a",
				Message: fmt.Sprintf("vertex %d has degree %d, cannot form a face", v, adj.Degree(v)),
			}
		}
		neighbors, err := adj.VerticesAround(v)
		if err != nil {
			return nil, &InvalidMeshError{Op: "a", Err: err}
		}
		loop := make([]int, 0, len(neighbors))
		for _, u := range neighbors {
			loop = append(loop, edgeIndex[polyhedron.NewEdge(v, u)])
		}
		faces = append(faces, polyhedron.Face{Indices: loop})
	}

	return polyhedron.New(positions, faces), nil
}
