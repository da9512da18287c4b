// Package seed generates the five Platonic solids used as the starting
// meshes for Conway operator chains. Generation is deterministic: the same
// solid always yields bit-identical vertex order and face structure, with
// consistently wound faces.
package seed

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// Solid identifies one of the five Platonic solids.
type Solid int

const (
	Tetrahedron Solid = iota
	Cube
	Octahedron
	Dodecahedron
	Icosahedron
)

// All lists the five solids in canonical order.
func All() []Solid {
	return []Solid{Tetrahedron, Cube, Octahedron, Dodecahedron, Icosahedron}
}

// UnknownSeedError reports an unrecognized solid identifier.
type UnknownSeedError struct {
	Name string
}

func (e *UnknownSeedError) Error() string {
	return fmt.Sprintf("unknown seed %q", e.Name)
}

// Parse resolves a solid from its full name (case-insensitive) or its
// single-letter abbreviation (T, C, O, D, I).
func Parse(name string) (Solid, error) {
	switch strings.ToLower(name) {
	case "t", "tetrahedron":
		return Tetrahedron, nil
	case "c", "cube":
		return Cube, nil
	case "o", "octahedron":
		return Octahedron, nil
	case "d", "dodecahedron":
		return Dodecahedron, nil
	case "i", "icosahedron":
		return Icosahedron, nil
	}
	return 0, &UnknownSeedError{Name: name}
}

// String returns the solid's full name.
func (s Solid) String() string {
	switch s {
	case Tetrahedron:
		return "Tetrahedron"
	case Cube:
		return "Cube"
	case Octahedron:
		return "Octahedron"
	case Dodecahedron:
		return "Dodecahedron"
	case Icosahedron:
		return "Icosahedron"
	}
	return fmt.Sprintf("Solid(%d)", int(s))
}

// Letter returns the solid's single-letter abbreviation.
func (s Solid) Letter() string {
	switch s {
	case Tetrahedron:
		return "T"
	case Cube:
		return "C"
	case Octahedron:
		return "O"
	case Dodecahedron:
		return "D"
	case Icosahedron:
		return "I"
	}
	return "?"
}

func goldenRatio() float64 {
	return (1.0 + math.Sqrt(5.0)) / 2.0
}

// Polyhedron builds the solid's mesh with the given edge length, centered
// at the origin.
func (s Solid) Polyhedron(edgeLength float64) (*polyhedron.Polyhedron, error) {
	switch s {
	case Tetrahedron:
		return tetrahedron(edgeLength), nil
	case Cube:
		return cube(edgeLength), nil
	case Octahedron:
		return octahedron(edgeLength), nil
	case Dodecahedron:
		return dodecahedron(edgeLength), nil
	case Icosahedron:
		return icosahedron(edgeLength), nil
	}
	return nil, &UnknownSeedError{Name: s.String()}
}

func faces(loops ...[]int) []polyhedron.Face {
	fs := make([]polyhedron.Face, len(loops))
	for i, loop := range loops {
		fs[i] = polyhedron.Face{Indices: loop}
	}
	return fs
}

func tetrahedron(edgeLength float64) *polyhedron.Polyhedron {
	s := edgeLength / 2.0
	q := s / math.Sqrt2

	return polyhedron.New(
		[]v3.Vec{
			{X: s, Y: 0, Z: -q},
			{X: -s, Y: 0, Z: -q},
			{X: 0, Y: s, Z: q},
			{X: 0, Y: -s, Z: q},
		},
		faces(
			[]int{0, 1, 2},
			[]int{0, 2, 3},
			[]int{0, 3, 1},
			[]int{1, 3, 2},
		),
	)
}

func cube(edgeLength float64) *polyhedron.Polyhedron {
	s := edgeLength / 2.0

	return polyhedron.New(
		[]v3.Vec{
			{X: s, Y: s, Z: s},
			{X: s, Y: s, Z: -s},
			{X: s, Y: -s, Z: s},
			{X: s, Y: -s, Z: -s},
			{X: -s, Y: s, Z: s},
			{X: -s, Y: s, Z: -s},
			{X: -s, Y: -s, Z: s},
			{X: -s, Y: -s, Z: -s},
		},
		faces(
			[]int{0, 2, 3, 1},
			[]int{4, 5, 7, 6},
			[]int{0, 1, 5, 4},
			[]int{2, 6, 7, 3},
			[]int{0, 4, 6, 2},
			[]int{1, 3, 7, 5},
		),
	)
}

func octahedron(edgeLength float64) *polyhedron.Polyhedron {
	s := edgeLength / math.Sqrt2

	return polyhedron.New(
		[]v3.Vec{
			{X: s, Y: 0, Z: 0},
			{X: -s, Y: 0, Z: 0},
			{X: 0, Y: s, Z: 0},
			{X: 0, Y: -s, Z: 0},
			{X: 0, Y: 0, Z: s},
			{X: 0, Y: 0, Z: -s},
		},
		faces(
			[]int{0, 2, 4},
			[]int{0, 4, 3},
			[]int{0, 3, 5},
			[]int{0, 5, 2},
			[]int{1, 4, 2},
			[]int{1, 2, 5},
			[]int{1, 5, 3},
			[]int{1, 3, 4},
		),
	)
}

func dodecahedron(edgeLength float64) *polyhedron.Polyhedron {
	// Closed forms for the cube-plus-roof construction.
	s := (edgeLength * (math.Sqrt(5.0) + 1.0)) / 4.0
	phi := (edgeLength * (math.Sqrt(5.0) + 3.0)) / 4.0
	inv := edgeLength / 2.0

	return polyhedron.New(
		[]v3.Vec{
			{X: s, Y: s, Z: s},
			{X: s, Y: s, Z: -s},
			{X: s, Y: -s, Z: s},
			{X: s, Y: -s, Z: -s},
			{X: -s, Y: s, Z: s},
			{X: -s, Y: s, Z: -s},
			{X: -s, Y: -s, Z: s},
			{X: -s, Y: -s, Z: -s},
			{X: 0, Y: phi, Z: inv},
			{X: 0, Y: phi, Z: -inv},
			{X: 0, Y: -phi, Z: inv},
			{X: 0, Y: -phi, Z: -inv},
			{X: phi, Y: inv, Z: 0},
			{X: phi, Y: -inv, Z: 0},
			{X: -phi, Y: inv, Z: 0},
			{X: -phi, Y: -inv, Z: 0},
			{X: inv, Y: 0, Z: phi},
			{X: -inv, Y: 0, Z: phi},
			{X: inv, Y: 0, Z: -phi},
			{X: -inv, Y: 0, Z: -phi},
		},
		faces(
			[]int{0, 8, 4, 17, 16},
			[]int{0, 12, 1, 9, 8},
			[]int{0, 16, 2, 13, 12},
			[]int{1, 12, 13, 3, 18},
			[]int{1, 18, 19, 5, 9},
			[]int{2, 10, 11, 3, 13},
			[]int{3, 11, 7, 19, 18},
			[]int{4, 8, 9, 5, 14},
			[]int{4, 14, 15, 6, 17},
			[]int{5, 19, 7, 15, 14},
			[]int{6, 10, 2, 16, 17},
			[]int{6, 15, 7, 11, 10},
		),
	)
}

func icosahedron(edgeLength float64) *polyhedron.Polyhedron {
	s := edgeLength / 2.0
	phi := goldenRatio() * s

	return polyhedron.New(
		[]v3.Vec{
			{X: -s, Y: phi, Z: 0},
			{X: s, Y: phi, Z: 0},
			{X: -s, Y: -phi, Z: 0},
			{X: s, Y: -phi, Z: 0},
			{X: 0, Y: -s, Z: phi},
			{X: 0, Y: s, Z: phi},
			{X: 0, Y: -s, Z: -phi},
			{X: 0, Y: s, Z: -phi},
			{X: phi, Y: 0, Z: -s},
			{X: phi, Y: 0, Z: s},
			{X: -phi, Y: 0, Z: -s},
			{X: -phi, Y: 0, Z: s},
		},
		faces(
			[]int{0, 1, 7},
			[]int{0, 5, 1},
			[]int{0, 7, 10},
			[]int{0, 10, 11},
			[]int{0, 11, 5},
			[]int{1, 5, 9},
			[]int{1, 8, 7},
			[]int{1, 9, 8},
			[]int{2, 3, 4},
			[]int{2, 4, 11},
			[]int{2, 6, 3},
			[]int{2, 10, 6},
			[]int{2, 11, 10},
			[]int{3, 6, 8},
			[]int{3, 8, 9},
			[]int{3, 9, 4},
			[]int{4, 5, 11},
			[]int{4, 9, 5},
			[]int{6, 7, 8},
			[]int{6, 10, 7},
		),
	)
}
