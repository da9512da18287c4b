package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/polyhedrator/pkg/render"
)

// SaveGLB writes a render mesh to path as a binary glTF (GLB) file with
// position, texture coordinate and normal accessors matching the render
// buffers.
func SaveGLB(path string, m *render.Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("export: empty mesh")
	}

	count := m.VertexCount()
	positions := make([][3]float32, count)
	normals := make([][3]float32, count)
	texCoords := make([][2]float32, count)
	for i := 0; i < count; i++ {
		positions[i] = [3]float32{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
		normals[i] = [3]float32{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
		texCoords[i] = [2]float32{m.TexCoords[2*i], m.TexCoords[2*i+1]}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "polyhedrator"

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION:   uint32(modeler.WritePosition(doc, positions)),
			gltf.NORMAL:     uint32(modeler.WriteNormal(doc, normals)),
			gltf.TEXCOORD_0: uint32(modeler.WriteTextureCoord(doc, texCoords)),
		},
		Indices: gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
	}

	doc.Materials = []*gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}}
	prim.Material = gltf.Index(0)

	doc.Meshes = []*gltf.Mesh{{Name: "polyhedron", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "polyhedron", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []uint32{0}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
