package importer

import (
	"fmt"
	"strconv"

	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/scene"
	"github.com/chewxy/math32"
)

// DeformKind tells how a mesh node was bound to its bones.
type DeformKind int

const (
	DeformNone DeformKind = iota
	DeformRigid
	DeformSkin
	DeformSprite
	DeformMorph
)

func (k DeformKind) String() string {
	return [...]string{"None", "RigidAttach", "Skin", "Sprite", "Morph"}[k]
}

const (
	deformScale    = 2.0
	deformPointMax = 127.996
	deformPointMid = 128
)

// applyDeform binds node to the bones, sprites or morph targets of m. Sprites
// win over deform normals, which win over bone lookups.
func (im *Importer) applyDeform(m *amf.Mesh, node *scene.Node) (DeformKind, error) {
	if m.RemapType() == amf.RemapSprite {
		return DeformSprite, im.loadSprites(m, node)
	}
	if m.Stream(amf.UsageDeformNormal) != nil {
		return DeformMorph, im.loadMorph(m, node)
	}
	switch {
	case m.NumRemaps() > 1:
		if len(m.StreamsOf(amf.UsageBoneIndex)) == 0 {
			return DeformNone, nil
		}
		return DeformSkin, im.loadSkin(m, node)
	case m.NumRemaps() == 1:
		im.Bones.Resolve(m.BoneLookup[0]).AttachChildKeepWorld(node)
		return DeformRigid, nil
	}
	return DeformNone, nil
}

// loadSprites creates one bone per sprite position. A single sprite carries the
// mesh as a child; several drive it through a one bone per vertex skin.
func (im *Importer) loadSprites(m *amf.Mesh, node *scene.Node) error {
	bones := make([]*scene.Node, len(m.SpritePositions))
	for i, p := range m.SpritePositions {
		b := im.Scene.CreateHelper("SpriteBone" + strconv.Itoa(i))
		b.BoneDisplay = true
		b.WireColor = boneWireColor
		tm := geom.NewCorrectionMatrix4(im.Options.Scale)
		tm.SetTranslation(tm.ApplyTo(&p))
		b.Transform = tm
		bones[i] = b
	}
	if len(bones) == 1 {
		bones[0].AttachChildKeepWorld(node)
		return nil
	}

	skin := scene.NewSkin(m.VertexCount)
	for _, b := range bones {
		skin.AddBone(b)
	}
	for _, s := range m.StreamsOf(amf.UsageBoneIndex) {
		for v := 0; v < m.VertexCount; v++ {
			idx, err := s.Index(v)
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(bones) {
				return fmt.Errorf("vertex %d: sprite index %d out of range", v, idx)
			}
			if err := skin.AddWeights(v, []*scene.Node{bones[idx]}, []float32{1}); err != nil {
				return err
			}
		}
	}
	node.Skin = skin
	return nil
}

// loadMorph rebuilds deform morph targets. Channel 0 holds the deform normals;
// deform points split them over channels 1 and up, one per control point.
func (im *Importer) loadMorph(m *amf.Mesh, node *scene.Node) error {
	numVerts := m.VertexCount
	normals := m.Stream(amf.UsageDeformNormal)
	points := m.Stream(amf.UsageDeformPoints)

	deltas := make([]geom.Vector3, numVerts)
	for v := range deltas {
		n, err := normals.Vec3(v)
		if err != nil {
			return err
		}
		deltas[v] = *geom.Correct(n).Scale(deformScale)
	}

	morph := scene.NewMorph(numVerts)
	ch := morph.Channel(0)
	ch.Name = "Deform"
	copy(ch.Deltas, deltas)

	if points != nil {
		cur := 1
		for _, id := range m.BoneLookup {
			if id > 0 {
				morph.Channel(cur).Name = "cp" + strconv.Itoa(id)
				cur++
			}
		}
		for v := 0; v < numVerts; v++ {
			cp, err := points.Vec4(v)
			if err != nil {
				return err
			}
			for i := 0; i < 4; i++ {
				f := cp.At(i) * deformPointMax
				fl := math32.Floor(f)
				target := int(fl) + deformPointMid + 1
				if target < 1 || f == fl {
					continue
				}
				d := &morph.Channel(target).Deltas[v]
				*d = *d.Add(deltas[v].Scale(f - fl))
			}
		}
	}
	node.Morph = morph
	return nil
}

// loadSkin binds the mesh to the bones of its lookup table. Weights are taken as
// stored, without renormalization.
func (im *Importer) loadSkin(m *amf.Mesh, node *scene.Node) error {
	indices := m.StreamsOf(amf.UsageBoneIndex)
	weights := m.StreamsOf(amf.UsageBoneWeight)

	bones := make([]*scene.Node, len(m.BoneLookup))
	skin := scene.NewSkin(m.VertexCount)
	for i, id := range m.BoneLookup {
		bones[i] = im.Bones.Resolve(id)
		skin.AddBone(bones[i])
	}
	bone := func(v, idx int) (*scene.Node, error) {
		if idx < 0 || idx >= len(bones) {
			return nil, fmt.Errorf("vertex %d: bone index %d out of range (%d bones)", v, idx, len(bones))
		}
		return bones[idx], nil
	}

	for v := 0; v < m.VertexCount; v++ {
		var vb []*scene.Node
		var vw []float32
		if len(weights) == 0 {
			idx, err := indices[0].Index(v)
			if err != nil {
				return err
			}
			b, err := bone(v, idx)
			if err != nil {
				return err
			}
			vb, vw = append(vb, b), append(vw, 1)
		} else {
			for d, ws := range weights {
				if d >= len(indices) {
					break
				}
				idx, err := indices[d].Indices4(v)
				if err != nil {
					return err
				}
				w, err := ws.Vec4(v)
				if err != nil {
					return err
				}
				for i := 0; i < 4; i++ {
					b, err := bone(v, idx[i])
					if err != nil {
						return err
					}
					vb, vw = append(vb, b), append(vw, w.At(i))
				}
			}
		}
		if err := skin.AddWeights(v, vb, vw); err != nil {
			return err
		}
	}
	node.Skin = skin
	return nil
}
