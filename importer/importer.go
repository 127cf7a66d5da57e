// Package importer rebuilds the meshes, skins, morphs and materials of an AMF
// model archive in a host scene.
package importer

import (
	"fmt"

	"github.com/binzume/apexconv/adf"
	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/material"
	"github.com/binzume/apexconv/scene"
	"github.com/pkg/errors"
)

// Extensions lists the archive file extensions the importer reads.
var Extensions = []string{"rbm", "rbn", "vmodc", "modelc"}

// Importer runs imports into one scene. Bones resolved during an import are
// forgotten when the next one starts.
type Importer struct {
	Scene     *scene.Scene
	Options   *Options
	Bones     *BoneRegistry
	Materials *material.Synthesizer
}

func New(s *scene.Scene, opt *Options) *Importer {
	if opt == nil {
		opt = DefaultOptions()
	}
	return &Importer{
		Scene:     s,
		Options:   opt,
		Bones:     NewBoneRegistry(s),
		Materials: material.NewSynthesizer(s),
	}
}

// Load imports the archive at path. Only a missing or malformed archive is an
// error; meshes and materials that cannot be built are reported to the scene
// listener and skipped.
func (im *Importer) Load(path string) error {
	if im.Options.ClearListener {
		im.Scene.Listener.Clear()
	}
	im.Bones.Reset()

	a, err := adf.Open(path)
	if err != nil {
		return errors.Wrap(err, "open archive")
	}
	defer a.Close()
	return im.load(a, path)
}

// LoadArchive imports an archive that is already open. path locates a separate
// mesh file and may be empty.
func (im *Importer) LoadArchive(a *adf.Archive, path string) error {
	if im.Options.ClearListener {
		im.Scene.Listener.Clear()
	}
	im.Bones.Reset()
	return im.load(a, path)
}

func (im *Importer) load(a *adf.Archive, path string) error {
	areas, err := amf.DecodeStuntAreas(a)
	if err != nil {
		return errors.Wrap(err, "stunt areas")
	}
	if len(areas) > 0 {
		im.loadStuntAreas(areas)
		return nil
	}
	model, err := amf.Decode(a, path)
	if err != nil {
		return errors.Wrap(err, "decode model")
	}
	im.loadModel(model)
	return nil
}

func (im *Importer) createMaterials(model *amf.Model) map[uint32]*scene.Material {
	l := im.Scene.Listener
	materials := map[uint32]*scene.Material{}
	if !im.Scene.Capabilities.ColorVars {
		l.Warning("Color variables are not available, materials won't be created.")
		return materials
	}
	im.Materials.ForceStandard = im.Options.ForceStandardMaterial
	for _, m := range model.Materials {
		mat := im.Materials.Create(m)
		if im.Options.EnableViewMaterial {
			mat.ShowInViewport = true
		}
		materials[m.NameHash] = mat
		if im.Options.DumpMaterialInfo {
			if d, err := material.Dump(m); err != nil {
				l.Warning("Could not dump material %s: %v", m.Name, err)
			} else {
				l.Info("%s", d)
			}
		}
	}
	return materials
}

func (im *Importer) loadModel(model *amf.Model) {
	l := im.Scene.Listener
	materials := im.createMaterials(model)

	for _, lod := range model.LODs {
		layer := im.Scene.GetLayer(fmt.Sprint("LOD", lod.Index))
		for _, m := range lod.Meshes {
			node, err := im.loadMesh(m, materials)
			if err != nil {
				l.Error("Couldn't import model: %s LOD: %d (%v)", m.Name(), lod.Index, err)
				continue
			}
			layer.AddNode(node)
		}
	}
}

// loadMesh creates the node of one LOD mesh with its material and deformation.
func (im *Importer) loadMesh(m *amf.Mesh, materials map[uint32]*scene.Material) (*scene.Node, error) {
	mesh, tags, err := im.buildMesh(m)
	if err != nil {
		return nil, err
	}
	node := im.Scene.CreateNode(m.Name())
	node.Mesh = mesh

	if len(m.SubMeshes) > 1 {
		multi := scene.NewMultiMaterial(m.Name(), len(m.SubMeshes))
		for i, sub := range m.SubMeshes {
			if mat, ok := materials[sub.NameHash]; ok {
				if err := multi.SetSub(i, mat); err != nil {
					return nil, err
				}
			}
		}
		node.Material = multi
	} else if mat, ok := materials[m.SubMeshes[0].NameHash]; ok {
		node.Material = mat
	}

	kind, err := im.applyDeform(m, node)
	if err != nil {
		im.Scene.Listener.Error("Couldn't bind %s to %s: %v", m.Name(), kind, err)
		kind = DeformNone
	}
	tags.skin = kind == DeformSkin || kind == DeformSprite && len(m.SpritePositions) > 1
	tags.morph = kind == DeformMorph

	if im.Options.DebugName {
		node.Name += tags.suffix(m.Type)
	}
	return node, nil
}
