package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/scene"
)

// meshTags records which optional parts a reconstructed mesh carries. They make
// up the debug name suffix.
type meshTags struct {
	normals   bool
	color     bool
	fullColor bool
	uvs       int
	skin      bool
	morph     bool
}

// suffix returns "_<meshType>" followed by N, C or CF, U<n>, S and M tokens.
func (t *meshTags) suffix(meshType string) string {
	var sb strings.Builder
	sb.WriteString("_")
	sb.WriteString(meshType)
	if t.normals {
		sb.WriteString("N")
	}
	if t.fullColor {
		sb.WriteString("CF")
	} else if t.color {
		sb.WriteString("C")
	}
	if t.uvs > 0 {
		sb.WriteString("U" + strconv.Itoa(t.uvs))
	}
	if t.skin {
		sb.WriteString("S")
	}
	if t.morph {
		sb.WriteString("M")
	}
	return sb.String()
}

// buildMesh rebuilds the geometry of m in scene space.
func (im *Importer) buildMesh(m *amf.Mesh) (*scene.Mesh, *meshTags, error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	numVerts := m.VertexCount
	mesh := scene.NewMesh(numVerts, m.NumFaces())
	tags := &meshTags{}
	var channels []int
	currentMap := 1

	for _, s := range m.Streams {
		switch s.Usage {
		case amf.UsagePosition:
			mat := geom.NewCorrectionMatrix4(im.Options.Scale)
			for v := 0; v < numVerts; v++ {
				p, err := s.Position(v)
				if err != nil {
					return nil, nil, err
				}
				mesh.Verts[v] = *mat.ApplyTo(p)
			}

		case amf.UsageNormal, amf.UsageTangentSpace:
			mesh.SpecifyNormals(numVerts)
			tags.normals = true
			for v := 0; v < numVerts; v++ {
				n, err := s.Vec3(v)
				if err != nil {
					return nil, nil, err
				}
				mesh.Normals[v] = *geom.Correct(n)
			}
			offset := 0
			for _, sub := range m.SubMeshes {
				for f := 0; f < sub.NumFaces(); f++ {
					idx, err := sub.Face(f)
					if err != nil {
						return nil, nil, err
					}
					mesh.NormalFaces[offset+f] = idx
				}
				offset += sub.NumFaces()
			}

		case amf.UsageTextureCoordinate:
			ch := mesh.SetMapSupport(currentMap, numVerts)
			channels = append(channels, currentMap)
			for v := 0; v < numVerts; v++ {
				uv, err := s.TexCoord(v)
				if err != nil {
					return nil, nil, err
				}
				f := uv.FlipV()
				ch.Verts[v] = geom.Vector3{X: f.X, Y: f.Y}
			}
			tags.uvs++
			currentMap++

		case amf.UsageColor:
			if s.Format == amf.FormatR32UnitUnsignedVecAsFloat {
				ch := mesh.SetMapSupport(scene.MapVertexColor, numVerts)
				for v := 0; v < numVerts; v++ {
					c, err := s.Vec3(v)
					if err != nil {
						return nil, nil, err
					}
					ch.Verts[v] = *c
				}
				channels = appendChannel(channels, scene.MapVertexColor)
				tags.color = true
				continue
			}
			alpha := mesh.SetMapSupport(scene.MapAlpha, numVerts)
			ch := mesh.SetMapSupport(scene.MapVertexColor, numVerts)
			for v := 0; v < numVerts; v++ {
				c, err := s.Vec4(v)
				if err != nil {
					return nil, nil, err
				}
				ch.Verts[v] = *c.XYZ()
				alpha.Verts[v] = geom.Vector3{X: c.W, Y: c.W, Z: c.W}
			}
			channels = appendChannel(channels, scene.MapVertexColor)
			channels = appendChannel(channels, scene.MapAlpha)
			tags.fullColor = true
		}
	}

	offset := 0
	for matID, sub := range m.SubMeshes {
		for f := 0; f < sub.NumFaces(); f++ {
			idx, err := sub.Face(f)
			if err != nil {
				return nil, nil, err
			}
			for _, i := range idx {
				if i >= numVerts {
					return nil, nil, fmt.Errorf("sub-mesh %s face %d: vertex %d out of range", sub.Name, f, i)
				}
			}
			mesh.Faces[offset+f] = scene.Face{V: idx, MatID: matID}
			for _, c := range channels {
				mesh.Map(c).Faces[offset+f] = idx
			}
		}
		offset += sub.NumFaces()
	}
	mesh.Invalidate()
	return mesh, tags, nil
}

func appendChannel(channels []int, ch int) []int {
	for _, c := range channels {
		if c == ch {
			return channels
		}
	}
	return append(channels, ch)
}
