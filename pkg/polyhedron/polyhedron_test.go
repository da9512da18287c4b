package polyhedron_test

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/seed"
)

// testCube returns a unit-edge cube mesh.
func testCube(t *testing.T) *polyhedron.Polyhedron {
	t.Helper()
	p, err := seed.Cube.Polyhedron(1.0)
	if err != nil {
		t.Fatalf("cube seed: %v", err)
	}
	return p
}

func TestEdgesCube(t *testing.T) {
	p := testCube(t)

	edges := p.Edges()
	if len(edges) != 12 {
		t.Fatalf("cube has %d edges, want 12", len(edges))
	}
	if p.EdgeCount() != 12 {
		t.Errorf("EdgeCount = %d, want 12", p.EdgeCount())
	}

	seen := make(map[polyhedron.Edge]bool)
	for _, e := range edges {
		if e.A >= e.B {
			t.Errorf("edge %v not normalized", e)
		}
		if seen[e] {
			t.Errorf("edge %v repeated", e)
		}
		seen[e] = true
	}
}

func TestEdgesDeterministicOrder(t *testing.T) {
	a := testCube(t).Edges()
	b := testCube(t).Edges()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("edge order differs at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFaceCentroidCube(t *testing.T) {
	p := testCube(t)

	// Face 0 is the +X face; its centroid sits at (0.5, 0, 0).
	c := p.FaceCentroid(p.Faces[0])
	want := v3.Vec{X: 0.5}
	if c.Sub(want).Length() > 1e-12 {
		t.Errorf("centroid = %v, want %v", c, want)
	}
}

func TestFaceNormalsPointOutward(t *testing.T) {
	p := testCube(t)

	for i, f := range p.Faces {
		n := p.FaceNormal(f)
		if math.Abs(n.Length()-1) > 1e-12 {
			t.Errorf("face %d: normal not unit length: %v", i, n)
		}
		// The cube is origin-centered, so the outward normal agrees with
		// the centroid direction.
		if n.Dot(p.FaceCentroid(f)) <= 0 {
			t.Errorf("face %d: normal %v points inward", i, n)
		}
	}
}

func TestFaceMeanRadius(t *testing.T) {
	p := testCube(t)

	f := p.Faces[0]
	got := p.FaceMeanRadius(f, p.FaceCentroid(f))
	// Unit square face: every corner is sqrt(2)/2 from the center.
	want := math.Sqrt2 / 2
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("mean radius = %v, want %v", got, want)
	}
}

func TestFaceLast(t *testing.T) {
	f := polyhedron.Face{Indices: []int{0, 2, 3, 1}}
	a, b := f.Last()
	if a != 3 || b != 1 {
		t.Errorf("Last = (%d, %d), want (3, 1)", a, b)
	}
	if f.Sides() != 4 {
		t.Errorf("Sides = %d, want 4", f.Sides())
	}
}
