package polyhedron_test

import (
	"reflect"
	"testing"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/seed"
)

func TestFacesAroundCube(t *testing.T) {
	p := testCube(t)
	adj, err := polyhedron.NewAdjacency(p)
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}

	faces, err := adj.FacesAround(0)
	if err != nil {
		t.Fatalf("FacesAround(0): %v", err)
	}
	if want := []int{0, 2, 4}; !reflect.DeepEqual(faces, want) {
		t.Errorf("FacesAround(0) = %v, want %v", faces, want)
	}

	neighbors, err := adj.VerticesAround(0)
	if err != nil {
		t.Fatalf("VerticesAround(0): %v", err)
	}
	if want := []int{1, 4, 2}; !reflect.DeepEqual(neighbors, want) {
		t.Errorf("VerticesAround(0) = %v, want %v", neighbors, want)
	}
}

func TestFaceWithEdge(t *testing.T) {
	p := testCube(t)
	adj, err := polyhedron.NewAdjacency(p)
	if err != nil {
		t.Fatalf("NewAdjacency: %v", err)
	}

	// Face 0 is [0, 2, 3, 1]: it owns 0->2, and its partner across that
	// edge owns the reverse.
	fi, ok := adj.FaceWithEdge(0, 2)
	if !ok || fi != 0 {
		t.Errorf("FaceWithEdge(0, 2) = %d, %v; want 0, true", fi, ok)
	}
	fi, ok = adj.FaceWithEdge(2, 0)
	if !ok || fi != 4 {
		t.Errorf("FaceWithEdge(2, 0) = %d, %v; want 4, true", fi, ok)
	}
	if _, ok := adj.FaceWithEdge(0, 7); ok {
		t.Error("FaceWithEdge(0, 7) found a face for a non-edge")
	}
}

func TestWalksCoverAllSeeds(t *testing.T) {
	for _, s := range seed.All() {
		p, err := s.Polyhedron(1.0)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		adj, err := polyhedron.NewAdjacency(p)
		if err != nil {
			t.Fatalf("%s: NewAdjacency: %v", s, err)
		}

		for v := range p.Vertices {
			faces, err := adj.FacesAround(v)
			if err != nil {
				t.Fatalf("%s: FacesAround(%d): %v", s, v, err)
			}
			if len(faces) != adj.Degree(v) {
				t.Errorf("%s: vertex %d walk covered %d faces, degree is %d",
					s, v, len(faces), adj.Degree(v))
			}
			neighbors, err := adj.VerticesAround(v)
			if err != nil {
				t.Fatalf("%s: VerticesAround(%d): %v", s, v, err)
			}
			if len(neighbors) != len(faces) {
				t.Errorf("%s: vertex %d has %d neighbors but %d faces",
					s, v, len(neighbors), len(faces))
			}
			seen := make(map[int]bool)
			for _, n := range neighbors {
				if seen[n] {
					t.Errorf("%s: vertex %d neighbor %d repeated", s, v, n)
				}
				seen[n] = true
			}
		}
	}
}

func TestNewAdjacencyRejectsDuplicateDirectedEdge(t *testing.T) {
	p := testCube(t)
	// Reverse one face so two faces traverse a shared edge the same way.
	rev := make([]int, 4)
	for i, idx := range p.Faces[0].Indices {
		rev[3-i] = idx
	}
	p.Faces[0].Indices = rev

	if _, err := polyhedron.NewAdjacency(p); err == nil {
		t.Fatal("NewAdjacency accepted a mesh with a duplicated directed edge")
	}
}
