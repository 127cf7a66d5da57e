package importer

import (
	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/scene"
)

const stuntAreaPrefix = "ASA_"

// loadStuntAreas creates one mesh node per stunt area under the node of its
// vehicle part.
func (im *Importer) loadStuntAreas(areas []*amf.StuntArea) []*scene.Node {
	mat := geom.NewCorrectionMatrix4(im.Options.Scale)
	var nodes []*scene.Node
	for _, area := range areas {
		mesh := scene.NewMesh(len(area.Vertices), len(area.Faces))
		for i, v := range area.Vertices {
			mesh.Verts[i] = *mat.ApplyTo(&v)
		}
		for i, f := range area.Faces {
			mesh.Faces[i] = scene.Face{V: f}
		}
		mesh.Invalidate()

		n := im.Scene.CreateNode(stuntAreaPrefix + area.Name)
		n.Mesh = mesh
		im.Bones.ResolveName(area.PartName).AttachChildKeepWorld(n)
		nodes = append(nodes, n)
	}
	return nodes
}
