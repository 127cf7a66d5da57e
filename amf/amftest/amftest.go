// Package amftest writes AMF model archives for tests.
package amftest

import (
	"encoding/binary"
	"math"

	"github.com/binzume/apexconv/adf/adftest"
	"github.com/binzume/apexconv/amf"
	"github.com/x448/float16"
)

// Record types of the AMF schema.
var (
	Vector3     = adftest.Struct("Vector3", adftest.M("x", adftest.Float), adftest.M("y", adftest.Float), adftest.M("z", adftest.Float))
	BoundingBox = adftest.Struct("AmfBoundingBox", adftest.M("min", Vector3), adftest.M("max", Vector3))

	SubMeshType = adftest.Struct("AmfSubMesh",
		adftest.M("subMeshId", adftest.StringHash),
		adftest.M("indexCount", adftest.Uint32),
		adftest.M("indexStreamOffset", adftest.Uint32),
		adftest.M("boundingBox", BoundingBox),
	)
	StreamAttributeType = adftest.Struct("AmfStreamAttribute",
		adftest.M("usage", adftest.Uint8),
		adftest.M("format", adftest.Uint8),
		adftest.M("streamIndex", adftest.Uint8),
		adftest.M("streamOffset", adftest.Uint8),
		adftest.M("streamStride", adftest.Uint8),
		adftest.M("packingData", adftest.InlineArrayOf(adftest.Uint8, 8)),
	)
	MeshType = adftest.Struct("AmfMesh",
		adftest.M("meshTypeId", adftest.StringHash),
		adftest.M("indexCount", adftest.Uint32),
		adftest.M("vertexCount", adftest.Uint32),
		adftest.M("indexBufferIndex", adftest.Int8),
		adftest.M("indexBufferStride", adftest.Int8),
		adftest.M("indexBufferOffset", adftest.Uint32),
		adftest.M("vertexBufferIndices", adftest.InlineArrayOf(adftest.Int8, 8)),
		adftest.M("vertexStreamStrides", adftest.InlineArrayOf(adftest.Int8, 8)),
		adftest.M("vertexStreamOffsets", adftest.InlineArrayOf(adftest.Int32, 8)),
		adftest.M("boneIndexLookup", adftest.ArrayOf(adftest.Int16)),
		adftest.M("spritePositions", adftest.ArrayOf(Vector3)),
		adftest.M("subMeshes", adftest.ArrayOf(SubMeshType)),
		adftest.M("streamAttributes", adftest.ArrayOf(StreamAttributeType)),
	)
	LodGroupType = adftest.Struct("AmfLodGroup",
		adftest.M("index", adftest.Uint32),
		adftest.M("meshes", adftest.ArrayOf(MeshType)),
	)
	MeshHeaderType = adftest.Struct("AmfMeshHeader",
		adftest.M("highLodPath", adftest.String),
		adftest.M("lodGroups", adftest.ArrayOf(LodGroupType)),
		adftest.M("boundingBox", BoundingBox),
	)
	BufferType = adftest.Struct("AmfBuffer",
		adftest.M("data", adftest.ArrayOf(adftest.Uint8)),
		adftest.M("createSrv", adftest.Uint8),
	)
	MeshBuffersType = adftest.Struct("AmfMeshBuffers",
		adftest.M("memoryTag", adftest.Uint32),
		adftest.M("indexBuffers", adftest.ArrayOf(BufferType)),
		adftest.M("vertexBuffers", adftest.ArrayOf(BufferType)),
	)
	MaterialType = adftest.Struct("AmfMaterial",
		adftest.M("name", adftest.StringHash),
		adftest.M("renderBlockId", adftest.StringHash),
		adftest.M("materialType", adftest.Uint32),
		adftest.M("textures", adftest.ArrayOf(adftest.StringHash)),
		adftest.M("attributes", adftest.Deferred),
	)
	ModelType = adftest.Struct("AmfModel",
		adftest.M("mesh", adftest.String),
		adftest.M("lodSlots", adftest.ArrayOf(adftest.Uint8)),
		adftest.M("memoryTag", adftest.Uint32),
		adftest.M("lodFactor", adftest.Float),
		adftest.M("materials", adftest.ArrayOf(MaterialType)),
	)
	StuntAreaType = adftest.Struct("StuntArea",
		adftest.M("name", adftest.String),
		adftest.M("partName", adftest.String),
		adftest.M("vertices", adftest.ArrayOf(Vector3)),
		adftest.M("faces", adftest.ArrayOf(adftest.Uint16)),
	)
	StuntAreasType = adftest.Struct("StuntAreas",
		adftest.M("stuntAreas", adftest.ArrayOf(StuntAreaType)),
	)
)

// Stream is a vertex stream written into its own vertex buffer.
type Stream struct {
	Usage   amf.Usage
	Format  amf.Format
	Packing [8]byte
	Values  [][4]float32
	// Raw replaces the encoded values when set.
	Raw []byte
}

type SubMesh struct {
	Name  string
	Faces [][3]int
}

type Mesh struct {
	Type            string
	VertexCount     int
	// IndexCount replaces the sum of the sub-mesh indices when set.
	IndexCount      int
	SubMeshes       []SubMesh
	Streams         []Stream
	BoneLookup      []int
	SpritePositions [][3]float32
}

type LOD struct {
	Index  int
	Meshes []Mesh
}

type Material struct {
	Name       string
	Type       amf.MaterialType
	Textures   []string
	Attributes *adftest.DeferredValue
}

type Model struct {
	MeshPath  string
	LodSlots  []byte
	LODs      []LOD
	Materials []Material
	// SplitMesh leaves the header and buffers out of the model archive.
	SplitMesh bool
}

// ScalePacking encodes a position packing scale.
func ScalePacking(s float32) [8]byte {
	var p [8]byte
	binary.LittleEndian.PutUint32(p[0:], math.Float32bits(s))
	return p
}

// TilingPacking encodes a texture coordinate tiling factor.
func TilingPacking(u, v float32) [8]byte {
	var p [8]byte
	binary.LittleEndian.PutUint32(p[0:], math.Float32bits(u))
	binary.LittleEndian.PutUint32(p[4:], math.Float32bits(v))
	return p
}

// Encode writes values in the given format. Only the formats tests need are
// supported: 32 and 16 bit floats, 8 bit UNORM/UINT and 16 bit SNORM.
func Encode(f amf.Format, values [][4]float32) []byte {
	var out []byte
	n := f.Components()
	for _, v := range values {
		for i := 0; i < n; i++ {
			switch f {
			case amf.FormatR32G32B32A32Float, amf.FormatR32G32B32Float, amf.FormatR32G32Float, amf.FormatR32Float:
				out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v[i]))
			case amf.FormatR16G16B16A16Float, amf.FormatR16G16B16Float, amf.FormatR16G16Float, amf.FormatR16Float:
				out = binary.LittleEndian.AppendUint16(out, float16.Fromfloat32(v[i]).Bits())
			case amf.FormatR8G8B8A8Unorm, amf.FormatR8G8Unorm, amf.FormatR8Unorm:
				out = append(out, byte(math.Round(float64(v[i])*255)))
			case amf.FormatR8G8B8A8Uint, amf.FormatR8G8Uint, amf.FormatR8Uint:
				out = append(out, byte(v[i]))
			case amf.FormatR16G16B16A16Snorm, amf.FormatR16G16B16Snorm, amf.FormatR16G16Snorm, amf.FormatR16Snorm:
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(math.Round(float64(v[i])*32767))))
			default:
				panic("amftest: cannot encode " + f.String())
			}
		}
	}
	return out
}

func (m *Mesh) fields(indexBuffer *[]byte, vertexBuffers *[][]byte) adftest.Fields {
	var subs []interface{}
	indexOffset := len(*indexBuffer)
	indexCount := 0
	for _, s := range m.SubMeshes {
		subs = append(subs, adftest.Fields{
			"subMeshId":         s.Name,
			"indexCount":        len(s.Faces) * 3,
			"indexStreamOffset": indexCount,
		})
		for _, f := range s.Faces {
			for _, i := range f {
				*indexBuffer = binary.LittleEndian.AppendUint16(*indexBuffer, uint16(i))
			}
		}
		indexCount += len(s.Faces) * 3
	}

	var bufferIndices, strides []int8
	var offsets []int32
	var attrs []interface{}
	for i, s := range m.Streams {
		data := s.Raw
		if data == nil {
			data = Encode(s.Format, s.Values)
		}
		bufferIndices = append(bufferIndices, int8(len(*vertexBuffers)))
		strides = append(strides, int8(s.Format.Size()))
		offsets = append(offsets, 0)
		*vertexBuffers = append(*vertexBuffers, data)
		attrs = append(attrs, adftest.Fields{
			"usage":        uint8(s.Usage),
			"format":       uint8(s.Format),
			"streamIndex":  i,
			"streamStride": s.Format.Size(),
			"packingData":  s.Packing[:],
		})
	}

	var sprites []interface{}
	for _, p := range m.SpritePositions {
		sprites = append(sprites, adftest.Fields{"x": p[0], "y": p[1], "z": p[2]})
	}
	var bones []int16
	for _, b := range m.BoneLookup {
		bones = append(bones, int16(b))
	}

	if m.IndexCount != 0 {
		indexCount = m.IndexCount
	}
	return adftest.Fields{
		"meshTypeId":          m.Type,
		"indexCount":          indexCount,
		"vertexCount":         m.VertexCount,
		"indexBufferIndex":    0,
		"indexBufferStride":   2,
		"indexBufferOffset":   indexOffset,
		"vertexBufferIndices": bufferIndices,
		"vertexStreamStrides": strides,
		"vertexStreamOffsets": offsets,
		"boneIndexLookup":     bones,
		"spritePositions":     sprites,
		"subMeshes":           subs,
		"streamAttributes":    attrs,
	}
}

// AddMesh adds the mesh header and buffer records of m to b.
func (m *Model) AddMesh(b *adftest.Builder) {
	var indexBuffer []byte
	var vertexBuffers [][]byte
	var lods []interface{}
	for _, lod := range m.LODs {
		var meshes []interface{}
		for i := range lod.Meshes {
			meshes = append(meshes, lod.Meshes[i].fields(&indexBuffer, &vertexBuffers))
		}
		lods = append(lods, adftest.Fields{"index": lod.Index, "meshes": meshes})
	}
	b.Add("header", MeshHeaderType, adftest.Fields{"lodGroups": lods})

	var vbs []interface{}
	for _, vb := range vertexBuffers {
		vbs = append(vbs, adftest.Fields{"data": vb})
	}
	b.Add("buffers", MeshBuffersType, adftest.Fields{
		"indexBuffers":  []interface{}{adftest.Fields{"data": indexBuffer}},
		"vertexBuffers": vbs,
	})
}

// AddModel adds the model record of m to b.
func (m *Model) AddModel(b *adftest.Builder) {
	var mats []interface{}
	for _, mat := range m.Materials {
		var tex []interface{}
		for _, t := range mat.Textures {
			tex = append(tex, t)
		}
		f := adftest.Fields{
			"name":         mat.Name,
			"materialType": uint32(mat.Type),
			"textures":     tex,
		}
		if mat.Attributes != nil {
			f["attributes"] = mat.Attributes
		}
		mats = append(mats, f)
	}
	b.Add("model", ModelType, adftest.Fields{
		"mesh":      m.MeshPath,
		"lodSlots":  m.LodSlots,
		"lodFactor": 1,
		"materials": mats,
	})
}

// Builder returns a builder holding the whole model.
func (m *Model) Builder() *adftest.Builder {
	b := adftest.NewBuilder()
	m.AddModel(b)
	if !m.SplitMesh {
		m.AddMesh(b)
	}
	return b
}
