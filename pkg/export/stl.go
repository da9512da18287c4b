// Package export writes generated polyhedra to interchange formats: binary
// STL for fabrication tooling and GLB for scene tooling.
package export

import (
	"fmt"

	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/polyhedrator/pkg/polyhedron"
)

// Triangles fan-triangulates a valid polyhedron into sdfx render triangles,
// keeping the source winding.
func Triangles(p *polyhedron.Polyhedron) ([]*sdf.Triangle3, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var tris []*sdf.Triangle3
	for _, f := range p.Faces {
		vs := p.FaceVertices(f)
		for i := 1; i < len(vs)-1; i++ {
			t := sdf.Triangle3{vs[0], vs[i], vs[i+1]}
			tris = append(tris, &t)
		}
	}
	return tris, nil
}

// SaveSTL writes the polyhedron to path as an STL file.
func SaveSTL(path string, p *polyhedron.Polyhedron) error {
	tris, err := Triangles(p)
	if err != nil {
		return err
	}
	if err := sdfxrender.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
