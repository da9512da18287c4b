package operator

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// kis replaces each face matching the side filter with a fan of triangles
// sharing a new apex vertex. The apex sits at the face centroid, offset
// along the face normal by apexScale times the mean centroid distance of
// the face's vertices. Non-matching faces pass through unchanged.
//
// All input vertices keep their indices; apex vertices are appended after
// them in face order.
func kis(p *polyhedron.Polyhedron, sides int, apexScale float64) (*polyhedron.Polyhedron, error) {
	positions := make([]v3.Vec, len(p.Vertices), len(p.Vertices)+len(p.Faces))
	copy(positions, p.Vertices)

	var faces []polyhedron.Face
	for _, f := range p.Faces {
		if sides != 0 && sides != f.Sides() {
			loop := make([]int, len(f.Indices))
			copy(loop, f.Indices)
			faces = append(faces, polyhedron.Face{Indices: loop})
			continue
		}

		centroid := p.FaceCentroid(f)
		apex := centroid
		if apexScale != 0 {
			offset := apexScale * p.FaceMeanRadius(f, centroid)
			apex = centroid.Add(p.FaceNormal(f).MulScalar(offset))
		}
		apexIndex := len(positions)
		positions = append(positions, apex)

		prev := f.Indices[len(f.Indices)-1]
		for _, cur := range f.Indices {
			faces = append(faces, polyhedron.Face{Indices: []int{prev, cur, apexIndex}})
			prev = cur
		}
	}

	return polyhedron.New(positions, faces), nil
}
