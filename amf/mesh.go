package amf

import (
	"encoding/binary"
	"fmt"

	"github.com/binzume/apexconv/adf"
	"github.com/binzume/apexconv/geom"
)

type RemapType int

const (
	RemapNone RemapType = iota
	RemapSkin
	RemapSprite
)

const maxStreams = 8

// SubMesh is a contiguous triangle range bound to one material.
type SubMesh struct {
	Name              string
	NameHash          uint32
	IndexCount        int
	IndexStreamOffset int

	mesh *Mesh
}

func (s *SubMesh) NumFaces() int {
	return s.IndexCount / 3
}

// Face returns the vertex indices of triangle f of the sub-mesh.
func (s *SubMesh) Face(f int) ([3]int, error) {
	var r [3]int
	m := s.mesh
	if m.indexData == nil {
		return r, fmt.Errorf("amf: sub-mesh %s has no index buffer", s.Name)
	}
	for k := 0; k < 3; k++ {
		off := m.indexBufferOffset + (s.IndexStreamOffset+f*3+k)*m.indexStride
		if f < 0 || off < 0 || off+m.indexStride > len(m.indexData) {
			return r, fmt.Errorf("amf: sub-mesh %s face %d out of range", s.Name, f)
		}
		switch m.indexStride {
		case 4:
			r[k] = int(binary.LittleEndian.Uint32(m.indexData[off:]))
		default:
			r[k] = int(binary.LittleEndian.Uint16(m.indexData[off:]))
		}
	}
	return r, nil
}

// Mesh is one drawable unit of a LOD group.
type Mesh struct {
	Type            string
	TypeHash        uint32
	VertexCount     int
	IndexCount      int
	SubMeshes       []*SubMesh
	Streams         []*StreamAttribute
	BoneLookup      []int
	SpritePositions []geom.Vector3

	indexBufferIndex    int
	indexStride         int
	indexBufferOffset   int
	vertexBufferIndices [maxStreams]int
	vertexStreamStrides [maxStreams]int
	vertexStreamOffsets [maxStreams]int

	indexData []byte
	linkErr   error
}

func (m *Mesh) RemapType() RemapType {
	if len(m.SpritePositions) > 0 {
		return RemapSprite
	}
	if len(m.BoneLookup) > 0 {
		return RemapSkin
	}
	return RemapNone
}

// NumRemaps returns the length of the remap table for the mesh's remap type.
func (m *Mesh) NumRemaps() int {
	if m.RemapType() == RemapSprite {
		return len(m.SpritePositions)
	}
	return len(m.BoneLookup)
}

// Name returns the name of the first sub-mesh.
func (m *Mesh) Name() string {
	if len(m.SubMeshes) == 0 {
		return ""
	}
	return m.SubMeshes[0].Name
}

func (m *Mesh) NumFaces() int {
	return m.IndexCount / 3
}

// Stream returns the first stream of the given usage.
func (m *Mesh) Stream(u Usage) *StreamAttribute {
	for _, s := range m.Streams {
		if s.Usage == u {
			return s
		}
	}
	return nil
}

// StreamsOf returns every stream of the given usage in declaration order.
func (m *Mesh) StreamsOf(u Usage) []*StreamAttribute {
	var r []*StreamAttribute
	for _, s := range m.Streams {
		if s.Usage == u {
			r = append(r, s)
		}
	}
	return r
}

// Validate reports why the mesh cannot be reconstructed, or nil.
func (m *Mesh) Validate() error {
	if m.linkErr != nil {
		return m.linkErr
	}
	if m.Stream(UsagePosition) == nil {
		return fmt.Errorf("amf: mesh %s has no position stream", m.Name())
	}
	if len(m.SubMeshes) == 0 {
		return fmt.Errorf("amf: mesh %s has no sub-meshes", m.Type)
	}
	if total := m.NumSubMeshFaces(); total != m.NumFaces() {
		return fmt.Errorf("amf: mesh %s sub-meshes hold %d faces, mesh declares %d", m.Name(), total, m.NumFaces())
	}
	if m.VertexCount < 0 {
		return fmt.Errorf("amf: mesh %s vertex count %d", m.Name(), m.VertexCount)
	}
	for _, s := range m.Streams {
		if err := s.holds(m.VertexCount); err != nil {
			return err
		}
	}
	return nil
}

// NumSubMeshFaces returns the number of faces covered by all sub-meshes.
func (m *Mesh) NumSubMeshFaces() int {
	total := 0
	for _, s := range m.SubMeshes {
		total += s.NumFaces()
	}
	return total
}

func decodeVector3(v *adf.Value) geom.Vector3 {
	return geom.Vector3{X: v.Field("x").Float(), Y: v.Field("y").Float(), Z: v.Field("z").Float()}
}

func decodeMesh(v *adf.Value) *Mesh {
	m := &Mesh{
		Type:              v.Field("meshTypeId").String(),
		TypeHash:          uint32(v.Field("meshTypeId").Hash()),
		VertexCount:       int(v.Field("vertexCount").Uint()),
		IndexCount:        int(v.Field("indexCount").Uint()),
		BoneLookup:        v.Field("boneIndexLookup").Ints(),
		indexBufferIndex:  int(v.Field("indexBufferIndex").Int()),
		indexStride:       int(v.Field("indexBufferStride").Int()),
		indexBufferOffset: int(v.Field("indexBufferOffset").Uint()),
	}
	for i := 0; i < maxStreams; i++ {
		m.vertexBufferIndices[i] = int(v.Field("vertexBufferIndices").Index(i).Int())
		m.vertexStreamStrides[i] = int(v.Field("vertexStreamStrides").Index(i).Int())
		m.vertexStreamOffsets[i] = int(v.Field("vertexStreamOffsets").Index(i).Int())
	}
	sprites := v.Field("spritePositions")
	for i := 0; i < sprites.Len(); i++ {
		m.SpritePositions = append(m.SpritePositions, decodeVector3(sprites.Index(i)))
	}
	subs := v.Field("subMeshes")
	for i := 0; i < subs.Len(); i++ {
		s := subs.Index(i)
		m.SubMeshes = append(m.SubMeshes, &SubMesh{
			Name:              s.Field("subMeshId").String(),
			NameHash:          uint32(s.Field("subMeshId").Hash()),
			IndexCount:        int(s.Field("indexCount").Uint()),
			IndexStreamOffset: int(s.Field("indexStreamOffset").Uint()),
			mesh:              m,
		})
	}
	attrs := v.Field("streamAttributes")
	for i := 0; i < attrs.Len(); i++ {
		a := attrs.Index(i)
		s := &StreamAttribute{
			Usage:        Usage(a.Field("usage").Uint()),
			Format:       Format(a.Field("format").Uint()),
			StreamIndex:  int(a.Field("streamIndex").Uint()),
			StreamOffset: int(a.Field("streamOffset").Uint()),
			StreamStride: int(a.Field("streamStride").Uint()),
		}
		copy(s.PackingData[:], a.Field("packingData").Bytes())
		m.Streams = append(m.Streams, s)
	}
	return m
}

// link binds the mesh to its index and vertex buffers.
func (m *Mesh) link(b *Buffers) {
	if b == nil {
		m.linkErr = fmt.Errorf("amf: mesh %s has no buffers", m.Name())
		return
	}
	if m.indexBufferIndex < 0 || m.indexBufferIndex >= len(b.Index) {
		m.linkErr = fmt.Errorf("amf: mesh %s index buffer %d out of range", m.Name(), m.indexBufferIndex)
		return
	}
	if m.indexStride != 2 && m.indexStride != 4 {
		m.linkErr = fmt.Errorf("amf: mesh %s index stride %d", m.Name(), m.indexStride)
		return
	}
	m.indexData = b.Index[m.indexBufferIndex]
	for _, s := range m.Streams {
		if s.StreamIndex >= maxStreams {
			m.linkErr = fmt.Errorf("amf: mesh %s stream index %d", m.Name(), s.StreamIndex)
			return
		}
		vb := m.vertexBufferIndices[s.StreamIndex]
		if vb < 0 || vb >= len(b.Vertex) {
			m.linkErr = fmt.Errorf("amf: mesh %s vertex buffer %d out of range", m.Name(), vb)
			return
		}
		s.data = b.Vertex[vb]
		s.base = m.vertexStreamOffsets[s.StreamIndex]
		if s.StreamStride == 0 {
			s.StreamStride = m.vertexStreamStrides[s.StreamIndex]
		}
	}
}
