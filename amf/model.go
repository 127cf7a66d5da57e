package amf

import (
	"github.com/binzume/apexconv/adf"
	"github.com/pkg/errors"
)

var (
	TypeMeshHeader  = adf.Hash("AmfMeshHeader")
	TypeMeshBuffers = adf.Hash("AmfMeshBuffers")
	TypeModel       = adf.Hash("AmfModel")
	TypeStuntAreas  = adf.Hash("StuntAreas")
)

type LodGroup struct {
	Index  int
	Meshes []*Mesh
}

// Model is the decoded mesh header and model record pair.
type Model struct {
	MeshPath    string
	HighLodPath string
	LodFactor   float32
	LodSlots    []int
	LODs        []*LodGroup
	Materials   []*Material
}

// Decode builds the model held by a. When the header or buffers live in a separate
// mesh file, it is looked up next to path (path may be empty).
func Decode(a *adf.Archive, path string) (*Model, error) {
	mv, err := a.FindInstance(TypeModel)
	if err != nil {
		return nil, err
	}
	hv, err := a.FindInstance(TypeMeshHeader)
	if err != nil {
		return nil, err
	}
	bv, err := a.FindInstance(TypeMeshBuffers)
	if err != nil {
		return nil, err
	}
	if mv == nil {
		return nil, decodeErrorf("no AmfModel record")
	}

	if hv == nil || bv == nil {
		ma, err := openMeshArchive(path, mv.Field("mesh").String())
		if err != nil {
			return nil, err
		}
		if ma != nil {
			defer ma.Close()
			if hv == nil {
				if hv, err = ma.FindInstance(TypeMeshHeader); err != nil {
					return nil, errors.Wrap(err, "amf: mesh file")
				}
			}
			if bv == nil {
				if bv, err = ma.FindInstance(TypeMeshBuffers); err != nil {
					return nil, errors.Wrap(err, "amf: mesh file")
				}
			}
		}
	}
	if hv == nil {
		return nil, decodeErrorf("no AmfMeshHeader record")
	}

	m := &Model{
		MeshPath:    mv.Field("mesh").String(),
		HighLodPath: hv.Field("highLodPath").String(),
		LodFactor:   mv.Field("lodFactor").Float(),
		LodSlots:    mv.Field("lodSlots").Ints(),
	}
	var buffers *Buffers
	if bv != nil {
		buffers = decodeBuffers(bv)
	}

	groups := hv.Field("lodGroups")
	for i := 0; i < groups.Len(); i++ {
		g := groups.Index(i)
		lod := &LodGroup{Index: int(g.Field("index").Uint())}
		if len(m.LodSlots) > 0 && lod.Index >= len(m.LodSlots) {
			return nil, decodeErrorf("LOD index %d out of range (%d slots)", lod.Index, len(m.LodSlots))
		}
		meshes := g.Field("meshes")
		for j := 0; j < meshes.Len(); j++ {
			mesh := decodeMesh(meshes.Index(j))
			mesh.link(buffers)
			lod.Meshes = append(lod.Meshes, mesh)
		}
		m.LODs = append(m.LODs, lod)
	}

	mats := mv.Field("materials")
	for i := 0; i < mats.Len(); i++ {
		m.Materials = append(m.Materials, decodeMaterial(mats.Index(i)))
	}
	return m, nil
}

func (m *Model) NumLODs() int {
	return len(m.LODs)
}

func (m *Model) LODIndex(i int) int {
	if i < 0 || i >= len(m.LODs) {
		return -1
	}
	return m.LODs[i].Index
}

func (m *Model) NumLODMeshes(ld int) int {
	if ld < 0 || ld >= len(m.LODs) {
		return 0
	}
	return len(m.LODs[ld].Meshes)
}

// LODMesh returns mesh i of LOD group ld, or nil when out of range.
func (m *Model) LODMesh(ld, i int) *Mesh {
	if i < 0 || i >= m.NumLODMeshes(ld) {
		return nil
	}
	return m.LODs[ld].Meshes[i]
}

func (m *Model) NumMaterials() int {
	return len(m.Materials)
}

func (m *Model) Material(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return m.Materials[i]
}
