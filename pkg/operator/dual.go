package operator

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// dual maps each face to a vertex (its centroid) and each vertex to a face
// whose loop walks the centroids of the faces around that vertex. The walk
// follows the input winding, so outward orientation is preserved: the dual
// of a closed manifold mesh is again closed and manifold, with vertex and
// face counts swapped.
func dual(p *polyhedron.Polyhedron) (*polyhedron.Polyhedron, error) {
	adj, err := polyhedron.NewAdjacency(p)
	if err != nil {
		return nil, &InvalidMeshError{Op: "d", Err: err}
	}

	// Output vertex i is the centroid of input face i.
	positions := make([]v3.Vec, len(p.Faces))
	for i, f := range p.Faces {
		positions[i] = p.FaceCentroid(f)
	}

	faces := make([]polyhedron.Face, 0, len(p.Vertices))
	for v := range p.Vertices {
		if adj.Degree(v) < 3 {
			return nil, &DegenerateTopologyError{
				Op:      "d",
				Message: fmt.Sprintf("vertex %d has degree %d, dual face needs at least 3", v, adj.Degree(v)),
			}
		}
		around, err := adj.FacesAround(v)
		if err != nil {
			return nil, &InvalidMeshError{Op: "d", Err: err}
		}
		faces = append(faces, polyhedron.Face{Indices: around})
	}

	return polyhedron.New(positions, faces), nil
}
