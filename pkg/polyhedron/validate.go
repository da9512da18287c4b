package polyhedron

import (
	"fmt"
)

// TopologyError reports a closed-manifold invariant violation.
type TopologyError struct {
	Code    string
	Message string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks the closed-manifold invariants:
//
//   - every face has at least 3 distinct, in-range vertex indices;
//   - every directed edge appears in exactly one face loop;
//   - the reverse of every directed edge appears in exactly one other face
//     (so the mesh is closed and winding is globally consistent);
//   - the faces around every vertex form a single rotational cycle.
//
// It returns nil for a valid mesh, or a *TopologyError describing the first
// violation found.
func (p *Polyhedron) Validate() error {
	if len(p.Faces) == 0 {
		return &TopologyError{Code: "EMPTY_MESH", Message: "polyhedron has no faces"}
	}

	for fi, f := range p.Faces {
		if len(f.Indices) < 3 {
			return &TopologyError{
				Code:    "DEGENERATE_FACE",
				Message: fmt.Sprintf("face %d has %d vertices, need at least 3", fi, len(f.Indices)),
			}
		}
		seen := make(map[int]bool, len(f.Indices))
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(p.Vertices) {
				return &TopologyError{
					Code:    "INDEX_OUT_OF_RANGE",
					Message: fmt.Sprintf("face %d references vertex %d, mesh has %d vertices", fi, idx, len(p.Vertices)),
				}
			}
			if seen[idx] {
				return &TopologyError{
					Code:    "REPEATED_VERTEX",
					Message: fmt.Sprintf("face %d repeats vertex %d", fi, idx),
				}
			}
			seen[idx] = true
		}
	}

	adj, err := NewAdjacency(p)
	if err != nil {
		return &TopologyError{Code: "NONMANIFOLD_EDGE", Message: err.Error()}
	}

	for fi, f := range p.Faces {
		prev := f.Indices[len(f.Indices)-1]
		for _, cur := range f.Indices {
			if _, ok := adj.FaceWithEdge(cur, prev); !ok {
				return &TopologyError{
					Code:    "OPEN_EDGE",
					Message: fmt.Sprintf("edge %d->%d of face %d has no partner face", prev, cur, fi),
				}
			}
			prev = cur
		}
	}

	for v := range p.Vertices {
		if _, err := adj.FacesAround(v); err != nil {
			return &TopologyError{Code: "SPLIT_VERTEX", Message: err.Error()}
		}
	}

	return nil
}
