package notation

import (
	"fmt"

	"github.com/chazu/polyhedrator/pkg/operator"
	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/seed"
)

// DefaultEdgeLength is the seed edge length used by the viewer.
const DefaultEdgeLength = 2.0

// ChainError reports the operator at which chain evaluation aborted, by its
// byte position in the original notation string.
type ChainError struct {
	Position int
	Op       operator.Operator
	Err      error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("operator %s at position %d: %v", e.Op, e.Position, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// Apply evaluates the chain on a seed mesh, rightmost operator first,
// threading each output mesh into the next application. Evaluation stops at
// the first failing operator and reports it via *ChainError; on failure no
// mesh is returned.
func (c Chain) Apply(p *polyhedron.Polyhedron) (*polyhedron.Polyhedron, error) {
	for i := len(c.Ops) - 1; i >= 0; i-- {
		next, err := c.Ops[i].Apply(p)
		if err != nil {
			return nil, &ChainError{Position: c.Positions[i], Op: c.Ops[i], Err: err}
		}
		p = next
	}
	return p, nil
}

// Generate parses full notation (operators plus trailing seed letter) and
// evaluates it with the given seed edge length.
func Generate(s string, edgeLength float64) (*polyhedron.Polyhedron, error) {
	solid, chain, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return evaluate(solid, chain, edgeLength)
}

// GenerateWithSeed evaluates an operator-only notation string on an
// explicitly chosen seed, the path taken when the seed is picked in the UI.
func GenerateWithSeed(solid seed.Solid, ops string, edgeLength float64) (*polyhedron.Polyhedron, error) {
	chain, err := ParseOperators(ops)
	if err != nil {
		return nil, err
	}
	return evaluate(solid, chain, edgeLength)
}

func evaluate(solid seed.Solid, chain Chain, edgeLength float64) (*polyhedron.Polyhedron, error) {
	p, err := solid.Polyhedron(edgeLength)
	if err != nil {
		return nil, err
	}
	return chain.Apply(p)
}
