package amf

import "github.com/binzume/apexconv/adf"

type MaterialType int

const (
	MaterialTraditional MaterialType = 0
	MaterialPBR         MaterialType = 1
)

func (t MaterialType) String() string {
	if t == MaterialPBR {
		return "PBR"
	}
	return "Traditional"
}

type TextureRef struct {
	Path string
	Hash uint32
}

type Material struct {
	Name          string
	NameHash      uint32
	RenderBlockID string
	Type          MaterialType
	// Textures holds one entry per slot; nil means nothing is bound there.
	Textures   []*TextureRef
	Attributes *adf.Value
}

// AttributesHash is the type hash of the attribute block, 0 when absent.
func (m *Material) AttributesHash() uint32 {
	return m.Attributes.TypeHash()
}

func decodeMaterial(v *adf.Value) *Material {
	m := &Material{
		Name:          v.Field("name").String(),
		NameHash:      uint32(v.Field("name").Hash()),
		RenderBlockID: v.Field("renderBlockId").String(),
		Type:          MaterialType(v.Field("materialType").Uint()),
		Attributes:    v.Field("attributes"),
	}
	tex := v.Field("textures")
	for i := 0; i < tex.Len(); i++ {
		t := tex.Index(i)
		if t.Hash() == 0 {
			m.Textures = append(m.Textures, nil)
			continue
		}
		m.Textures = append(m.Textures, &TextureRef{Path: t.String(), Hash: uint32(t.Hash())})
	}
	return m
}
