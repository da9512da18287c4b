// Package operator implements the Conway operators Dual, Ambo and Kis as
// pure transformations over polyhedron meshes. Each application reads an
// immutable input mesh and allocates a wholly new output mesh; the input is
// never aliased or mutated.
//
// New vertex positions (face centroids, edge midpoints, pyramid apexes) are
// geometric, but all ordering decisions — how faces and edges chain around a
// vertex — are made from the combinatorial adjacency structure alone, so the
// output is reproducible independent of floating-point layout.
package operator

import (
	"fmt"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// Kind tags the closed set of supported operators.
type Kind int

const (
	KindDual Kind = iota
	KindAmbo
	KindKis
)

// DefaultKisApexScale is the library default apex offset scale for Kis,
// as a fraction of the face's mean centroid distance. Notation-built Kis
// operators use scale 0 (apex exactly at the centroid).
const DefaultKisApexScale = 0.1

// Operator is one Conway operator invocation. Sides and ApexScale are only
// meaningful for Kis: Sides restricts the operator to faces with exactly
// that many sides (0 means every face), and ApexScale lifts each pyramid
// apex off its face centroid along the face normal.
type Operator struct {
	Kind      Kind
	Sides     int
	ApexScale float64
}

// Dual returns the dual operator.
func Dual() Operator {
	return Operator{Kind: KindDual}
}

// Ambo returns the ambo (rectification) operator.
func Ambo() Operator {
	return Operator{Kind: KindAmbo}
}

// Kis returns a kis operator restricted to faces with the given side count,
// with the apex at the face centroid. A side count of 0 matches every face.
func Kis(sides int) Operator {
	return Operator{Kind: KindKis, Sides: sides}
}

// KisWithApexScale returns a kis operator with an explicit apex scale.
func KisWithApexScale(sides int, apexScale float64) Operator {
	return Operator{Kind: KindKis, Sides: sides, ApexScale: apexScale}
}

// String renders the operator in Conway notation.
func (o Operator) String() string {
	switch o.Kind {
	case KindDual:
		return "d"
	case KindAmbo:
		return "a"
	case KindKis:
		if o.Sides == 0 {
			return "k"
		}
		return fmt.Sprintf("k%d", o.Sides)
	}
	return "?"
}

// InvalidMeshError reports that an operator was applied to a mesh violating
// the closed-manifold precondition. This is a programming or input error,
// not a recoverable condition; the chain evaluating the operator aborts.
type InvalidMeshError struct {
	Op  string
	Err error
}

func (e *InvalidMeshError) Error() string {
	return fmt.Sprintf("operator %s: invalid input mesh: %v", e.Op, e.Err)
}

func (e *InvalidMeshError) Unwrap() error { return e.Err }

// DegenerateTopologyError reports that an operator would produce an invalid
// face, such as ambo at a vertex of degree less than 3.
type DegenerateTopologyError struct {
	Op      string
	Message string
}

func (e *DegenerateTopologyError) Error() string {
	return fmt.Sprintf("operator %s: degenerate topology: %s", e.Op, e.Message)
}

// Apply transforms p with the operator and returns the new mesh. The input
// must be a valid closed manifold mesh; otherwise *InvalidMeshError is
// returned and no mesh is produced.
func (o Operator) Apply(p *polyhedron.Polyhedron) (*polyhedron.Polyhedron, error) {
	if err := p.Validate(); err != nil {
		return nil, &InvalidMeshError{Op: o.String(), Err: err}
	}

	switch o.Kind {
	case KindDual:
		return dual(p)
	case KindAmbo:
		return ambo(p)
	case KindKis:
		return kis(p, o.Sides, o.ApexScale)
	}
	return nil, fmt.Errorf("unknown operator kind %d", int(o.Kind))
}
