package operator_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/operator"
	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/seed"
)

func mustSeed(t *testing.T, s seed.Solid) *polyhedron.Polyhedron {
	t.Helper()
	p, err := s.Polyhedron(1.0)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return p
}

func apply(t *testing.T, op operator.Operator, p *polyhedron.Polyhedron) *polyhedron.Polyhedron {
	t.Helper()
	out, err := op.Apply(p)
	if err != nil {
		t.Fatalf("%s: %v", op, err)
	}
	return out
}

// faceSizeHistogram counts faces by side count.
func faceSizeHistogram(p *polyhedron.Polyhedron) map[int]int {
	h := make(map[int]int)
	for _, f := range p.Faces {
		h[f.Sides()]++
	}
	return h
}

func TestDualCube(t *testing.T) {
	out := apply(t, operator.Dual(), mustSeed(t, seed.Cube))

	// Dual of the cube is the octahedron.
	if out.VertexCount() != 6 || out.FaceCount() != 8 || out.EdgeCount() != 12 {
		t.Fatalf("dual cube: V=%d E=%d F=%d, want 6/12/8",
			out.VertexCount(), out.EdgeCount(), out.FaceCount())
	}
	if h := faceSizeHistogram(out); h[3] != 8 {
		t.Errorf("dual cube faces: %v, want 8 triangles", h)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("dual cube: %v", err)
	}
}

func TestDualVerticesAreFaceCentroids(t *testing.T) {
	p := mustSeed(t, seed.Cube)
	out := apply(t, operator.Dual(), p)

	for fi, f := range p.Faces {
		want := p.FaceCentroid(f)
		if out.Vertices[fi].Sub(want).Length() > 1e-12 {
			t.Errorf("dual vertex %d = %v, want centroid %v", fi, out.Vertices[fi], want)
		}
	}
}

func TestDualDualCounts(t *testing.T) {
	for _, s := range seed.All() {
		p := mustSeed(t, s)
		dd := apply(t, operator.Dual(), apply(t, operator.Dual(), p))

		if dd.VertexCount() != p.VertexCount() || dd.FaceCount() != p.FaceCount() {
			t.Errorf("%s: dd has V=%d F=%d, want V=%d F=%d",
				s, dd.VertexCount(), dd.FaceCount(), p.VertexCount(), p.FaceCount())
		}
		// Same combinatorial type: the face size multisets match.
		ph, ddh := faceSizeHistogram(p), faceSizeHistogram(dd)
		if !reflect.DeepEqual(ph, ddh) {
			t.Errorf("%s: dd face sizes %v, want %v", s, ddh, ph)
		}
	}
}

func TestAmboTetrahedron(t *testing.T) {
	out := apply(t, operator.Ambo(), mustSeed(t, seed.Tetrahedron))

	// Ambo of the tetrahedron is the octahedron.
	if out.VertexCount() != 6 || out.FaceCount() != 8 || out.EdgeCount() != 12 {
		t.Fatalf("ambo tetrahedron: V=%d E=%d F=%d, want 6/12/8",
			out.VertexCount(), out.EdgeCount(), out.FaceCount())
	}
	if h := faceSizeHistogram(out); h[3] != 8 {
		t.Errorf("ambo tetrahedron faces: %v, want 8 triangles", h)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("ambo tetrahedron: %v", err)
	}
}

func TestAmboVertexCountIsInputEdgeCount(t *testing.T) {
	for _, s := range seed.All() {
		p := mustSeed(t, s)
		out := apply(t, operator.Ambo(), p)

		if out.VertexCount() != p.EdgeCount() {
			t.Errorf("%s: ambo has %d vertices, want %d (input edges)",
				s, out.VertexCount(), p.EdgeCount())
		}
		if out.FaceCount() != p.FaceCount()+p.VertexCount() {
			t.Errorf("%s: ambo has %d faces, want %d",
				s, out.FaceCount(), p.FaceCount()+p.VertexCount())
		}
	}
}

func TestAmboVerticesAreEdgeMidpoints(t *testing.T) {
	p := mustSeed(t, seed.Cube)
	out := apply(t, operator.Ambo(), p)

	for i, e := range p.Edges() {
		want := p.Vertices[e.A].Add(p.Vertices[e.B]).MulScalar(0.5)
		if out.Vertices[i].Sub(want).Length() > 1e-12 {
			t.Errorf("ambo vertex %d = %v, want midpoint %v", i, out.Vertices[i], want)
		}
	}
}

func TestKisCubeAllFaces(t *testing.T) {
	p := mustSeed(t, seed.Cube)
	out := apply(t, operator.Kis(0), p)

	// Tetrakis hexahedron: 8 + 6 vertices, 24 triangles, 36 edges.
	if out.VertexCount() != 14 || out.FaceCount() != 24 || out.EdgeCount() != 36 {
		t.Fatalf("kis cube: V=%d E=%d F=%d, want 14/36/24",
			out.VertexCount(), out.EdgeCount(), out.FaceCount())
	}
	if err := out.Validate(); err != nil {
		t.Errorf("kis cube: %v", err)
	}

	// Original vertices keep their indices and positions.
	for i, v := range p.Vertices {
		if out.Vertices[i] != v {
			t.Errorf("vertex %d moved: %v -> %v", i, v, out.Vertices[i])
		}
	}
}

func TestKisSideFilter(t *testing.T) {
	p := mustSeed(t, seed.Cube)

	// k4 matches every cube face; k3 matches none.
	k4 := apply(t, operator.Kis(4), p)
	if k4.FaceCount() != 24 {
		t.Errorf("k4 cube: %d faces, want 24", k4.FaceCount())
	}

	k3 := apply(t, operator.Kis(3), p)
	if !reflect.DeepEqual(k3, p) {
		t.Errorf("k3 cube changed the mesh")
	}
}

func TestKisApexOffset(t *testing.T) {
	p := mustSeed(t, seed.Cube)

	flat := apply(t, operator.Kis(0), p)
	raised := apply(t, operator.KisWithApexScale(0, operator.DefaultKisApexScale), p)

	for fi, f := range p.Faces {
		centroid := p.FaceCentroid(f)
		apexIdx := 8 + fi

		if flat.Vertices[apexIdx].Sub(centroid).Length() > 1e-12 {
			t.Errorf("face %d: zero-scale apex not at centroid", fi)
		}

		offset := raised.Vertices[apexIdx].Sub(centroid)
		want := operator.DefaultKisApexScale * p.FaceMeanRadius(f, centroid)
		if d := offset.Length() - want; d > 1e-12 || d < -1e-12 {
			t.Errorf("face %d: apex offset %v, want %v", fi, offset.Length(), want)
		}
		if offset.Dot(p.FaceNormal(f)) <= 0 {
			t.Errorf("face %d: apex offset points inward", fi)
		}
	}
}

func TestOperatorsPreserveManifold(t *testing.T) {
	ops := []operator.Operator{
		operator.Dual(),
		operator.Ambo(),
		operator.Kis(0),
		operator.Kis(3),
		operator.KisWithApexScale(0, 0.2),
	}
	for _, s := range seed.All() {
		for _, op := range ops {
			out := apply(t, op, mustSeed(t, s))
			if err := out.Validate(); err != nil {
				t.Errorf("%s on %s: %v", op, s, err)
			}
			if chi := out.VertexCount() - out.EdgeCount() + out.FaceCount(); chi != 2 {
				t.Errorf("%s on %s: V-E+F = %d, want 2", op, s, chi)
			}
		}
	}
}

func TestOperatorsDoNotMutateInput(t *testing.T) {
	p := mustSeed(t, seed.Cube)
	snapshot := mustSeed(t, seed.Cube)

	for _, op := range []operator.Operator{operator.Dual(), operator.Ambo(), operator.Kis(0)} {
		apply(t, op, p)
		if !reflect.DeepEqual(p, snapshot) {
			t.Fatalf("%s mutated its input", op)
		}
	}
}

// degreeTwoMesh is a closed, consistently wound mesh whose vertices all have
// degree 2: two triangles glued back to back.
func degreeTwoMesh() *polyhedron.Polyhedron {
	return polyhedron.New(
		[]v3.Vec{{X: 0}, {X: 1}, {Y: 1}},
		[]polyhedron.Face{
			{Indices: []int{0, 1, 2}},
			{Indices: []int{2, 1, 0}},
		},
	)
}

func TestDegenerateTopology(t *testing.T) {
	p := degreeTwoMesh()
	if err := p.Validate(); err != nil {
		t.Fatalf("degree-2 mesh should validate: %v", err)
	}

	for _, op := range []operator.Operator{operator.Dual(), operator.Ambo()} {
		_, err := op.Apply(p)
		var degenerate *operator.DegenerateTopologyError
		if !errors.As(err, &degenerate) {
			t.Errorf("%s on degree-2 mesh: error = %T (%v), want *DegenerateTopologyError", op, err, err)
		}
	}
}

func TestInvalidMeshRejected(t *testing.T) {
	// Open mesh: a lone triangle.
	open := polyhedron.New(
		[]v3.Vec{{X: 0}, {X: 1}, {Y: 1}},
		[]polyhedron.Face{{Indices: []int{0, 1, 2}}},
	)

	for _, op := range []operator.Operator{operator.Dual(), operator.Ambo(), operator.Kis(0)} {
		_, err := op.Apply(open)
		var invalid *operator.InvalidMeshError
		if !errors.As(err, &invalid) {
			t.Errorf("%s on open mesh: error = %T (%v), want *InvalidMeshError", op, err, err)
			continue
		}
		var topo *polyhedron.TopologyError
		if !errors.As(err, &topo) {
			t.Errorf("%s: InvalidMeshError does not wrap the topology error", op)
		}
	}
}

func TestOperatorString(t *testing.T) {
	cases := []struct {
		op   operator.Operator
		want string
	}{
		{operator.Dual(), "d"},
		{operator.Ambo(), "a"},
		{operator.Kis(0), "k"},
		{operator.Kis(4), "k4"},
		{operator.KisWithApexScale(5, 0.3), "k5"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestDualIsDeterministic(t *testing.T) {
	for _, s := range seed.All() {
		a := apply(t, operator.Dual(), mustSeed(t, s))
		b := apply(t, operator.Dual(), mustSeed(t, s))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: repeated dual differs", s)
		}
	}
}

func vertexDegrees(t *testing.T, p *polyhedron.Polyhedron) []int {
	t.Helper()
	adj, err := polyhedron.NewAdjacency(p)
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}
	degrees := make([]int, p.VertexCount())
	for v := range degrees {
		degrees[v] = adj.Degree(v)
	}
	sort.Ints(degrees)
	return degrees
}

func TestDualSwapsDegreesAndSizes(t *testing.T) {
	p := mustSeed(t, seed.Dodecahedron)
	out := apply(t, operator.Dual(), p)

	// Dodecahedron: 20 degree-3 vertices, 12 pentagons. Its dual, the
	// icosahedron, has 12 degree-5 vertices and 20 triangles.
	var faceSizes []int
	for _, f := range out.Faces {
		faceSizes = append(faceSizes, f.Sides())
	}
	sort.Ints(faceSizes)
	for _, n := range faceSizes {
		if n != 3 {
			t.Fatalf("dual dodecahedron face sizes %v, want all 3", faceSizes)
		}
	}
	degrees := vertexDegrees(t, out)
	for _, d := range degrees {
		if d != 5 {
			t.Fatalf("dual dodecahedron degrees %v, want all 5", degrees)
		}
	}
}
