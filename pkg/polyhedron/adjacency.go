package polyhedron

import (
	"fmt"
)

// directedEdge is an ordered vertex index pair as it appears in a face loop.
type directedEdge struct {
	from, to int
}

// Adjacency is the combinatorial neighborhood structure of a polyhedron,
// built once per use. It answers "which face owns this directed edge" and
// "what is the rotational order of faces and neighbors around a vertex"
// using only the face loops, never vertex coordinates, so the derived order
// is reproducible independent of floating-point layout.
type Adjacency struct {
	p *Polyhedron

	// edgeFace maps each directed edge to the index of the face whose loop
	// contains it. In a closed, consistently wound mesh each directed edge
	// appears in exactly one face and its reverse in exactly one other.
	edgeFace map[directedEdge]int

	// pred[v] maps each face containing vertex v to v's predecessor in that
	// face's loop.
	pred []map[int]int

	// firstFace[v] is the lowest-index face containing v, used as the
	// deterministic starting point for rotational walks.
	firstFace []int
}

// NewAdjacency builds the adjacency maps for p. It fails if any directed
// edge appears in more than one face, since rotational walks are undefined
// on such meshes.
func NewAdjacency(p *Polyhedron) (*Adjacency, error) {
	a := &Adjacency{
		p:         p,
		edgeFace:  make(map[directedEdge]int),
		pred:      make([]map[int]int, len(p.Vertices)),
		firstFace: make([]int, len(p.Vertices)),
	}
	for v := range a.firstFace {
		a.firstFace[v] = -1
	}

	for fi, f := range p.Faces {
		prev := f.Indices[len(f.Indices)-1]
		for _, cur := range f.Indices {
			e := directedEdge{from: prev, to: cur}
			if owner, dup := a.edgeFace[e]; dup {
				return nil, fmt.Errorf("directed edge %d->%d appears in faces %d and %d", prev, cur, owner, fi)
			}
			a.edgeFace[e] = fi
			if a.pred[cur] == nil {
				a.pred[cur] = make(map[int]int)
			}
			a.pred[cur][fi] = prev
			if a.firstFace[cur] == -1 {
				a.firstFace[cur] = fi
			}
			prev = cur
		}
	}
	return a, nil
}

// FaceWithEdge returns the index of the face whose loop contains the
// directed edge from->to, or false if no face does.
func (a *Adjacency) FaceWithEdge(from, to int) (int, bool) {
	fi, ok := a.edgeFace[directedEdge{from: from, to: to}]
	return fi, ok
}

// Degree returns the number of faces (equally, edges) incident to vertex v.
func (a *Adjacency) Degree(v int) int {
	return len(a.pred[v])
}

// FacesAround returns the faces incident to vertex v in rotational order,
// starting from the lowest-index incident face. The walk steps from a face
// to the face across the edge joining v to its predecessor, which follows
// the mesh winding. It fails if the walk does not close into a single cycle
// covering every incident face (a pinched or open vertex).
func (a *Adjacency) FacesAround(v int) ([]int, error) {
	faces, _, err := a.walkAround(v)
	return faces, err
}

// VerticesAround returns the neighbor vertices of v in the same rotational
// order as FacesAround: element i is v's predecessor in face i of the walk.
func (a *Adjacency) VerticesAround(v int) ([]int, error) {
	_, neighbors, err := a.walkAround(v)
	return neighbors, err
}

func (a *Adjacency) walkAround(v int) (faces []int, neighbors []int, err error) {
	start := a.firstFace[v]
	if start == -1 {
		return nil, nil, fmt.Errorf("vertex %d belongs to no face", v)
	}

	incident := len(a.pred[v])
	fi := start
	for {
		faces = append(faces, fi)
		u, ok := a.pred[v][fi]
		if !ok {
			return nil, nil, fmt.Errorf("vertex %d not found in face %d during walk", v, fi)
		}
		neighbors = append(neighbors, u)

		next, ok := a.edgeFace[directedEdge{from: v, to: u}]
		if !ok {
			return nil, nil, fmt.Errorf("open edge %d->%d at vertex %d", v, u, v)
		}
		if next == start {
			break
		}
		if len(faces) > incident {
			return nil, nil, fmt.Errorf("walk around vertex %d does not close", v)
		}
		fi = next
	}

	if len(faces) != incident {
		return nil, nil, fmt.Errorf("vertex %d link is split: walked %d of %d incident faces", v, len(faces), incident)
	}
	return faces, neighbors, nil
}
