package importer_test

import (
	"strings"
	"testing"

	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/amf/amftest"
	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/importer"
	"github.com/binzume/apexconv/scene"
)

func repeat(n int, v [4]float32) [][4]float32 {
	r := make([][4]float32, n)
	for i := range r {
		r[i] = v
	}
	return r
}

func boneIndices(v [4]float32) amftest.Stream {
	return amftest.Stream{Usage: amf.UsageBoneIndex, Format: amf.FormatR8G8B8A8Uint, Values: repeat(3, v)}
}

func boneWeights(v [4]float32) amftest.Stream {
	return amftest.Stream{Usage: amf.UsageBoneWeight, Format: amf.FormatR32G32B32A32Float, Values: repeat(3, v)}
}

func deformModel(mesh amftest.Mesh) *amftest.Model {
	mesh.Type = "RBMSkinnedGeneral"
	mesh.VertexCount = 3
	mesh.SubMeshes = []amftest.SubMesh{{Name: "arm", Faces: [][3]int{{0, 1, 2}}}}
	mesh.Streams = append([]amftest.Stream{positions(3)}, mesh.Streams...)
	return &amftest.Model{LODs: []amftest.LOD{{Meshes: []amftest.Mesh{mesh}}}}
}

func TestSkin(t *testing.T) {
	s := newScene()
	spine := s.CreateHelper("spine")
	spine.SetUserProp(importer.PropSkeleton, "Body")
	spine.SetUserPropInt(importer.PropBone, 7)

	m := deformModel(amftest.Mesh{
		BoneLookup: []int{7, 9},
		Streams:    []amftest.Stream{boneIndices([4]float32{0, 1, 0, 0}), boneWeights([4]float32{0.5, 0.5, 0, 0})},
	})
	opt := importer.DefaultOptions()
	opt.DebugName = true
	importInto(t, s, m, opt)

	n := lodNodes(t, s, "LOD0")[0]
	if n.Name != "arm_RBMSkinnedGeneralS" {
		t.Error("debug name", n.Name)
	}
	skin := n.Skin
	if skin == nil || len(skin.Bones) != 2 {
		t.Fatal("skin", skin)
	}
	bone9 := s.FindNode("Bone9")
	if skin.Bones[0] != spine || skin.Bones[1] != bone9 {
		t.Error("bones", skin.Bones)
	}
	if !bone9.IsHelper || !bone9.BoneDisplay || bone9.WireColor != 0x80ff {
		t.Error("placeholder bone", bone9)
	}
	for v, w := range skin.Weights {
		if len(w) != 4 {
			t.Fatal("influences of vertex", v, len(w))
		}
		if w[0].Bone != spine || w[1].Bone != bone9 || w[1].Weight != 0.5 || w[3].Weight != 0 {
			t.Error("influences", v, w)
		}
	}
}

func TestSkinWeightCount(t *testing.T) {
	idx := boneIndices([4]float32{1, 0, 1, 0})
	w := boneWeights([4]float32{0.25, 0.25, 0.25, 0.25})
	for _, c := range []struct {
		streams []amftest.Stream
		count   int
	}{
		{[]amftest.Stream{idx}, 1},
		{[]amftest.Stream{idx, w}, 4},
		{[]amftest.Stream{idx, w, idx, w}, 8},
	} {
		s := newScene()
		importInto(t, s, deformModel(amftest.Mesh{BoneLookup: []int{1, 2}, Streams: c.streams}), nil)
		skin := lodNodes(t, s, "LOD0")[0].Skin
		if skin == nil {
			t.Fatal("no skin for", len(c.streams), "streams")
		}
		for v, inf := range skin.Weights {
			if len(inf) != c.count {
				t.Error("vertex", v, "has", len(inf), "influences, want", c.count)
			}
		}
	}
}

func TestSkinBoneOutOfRange(t *testing.T) {
	s := newScene()
	m := deformModel(amftest.Mesh{
		BoneLookup: []int{1, 2},
		Streams:    []amftest.Stream{boneIndices([4]float32{0, 2, 0, 0}), boneWeights([4]float32{0.5, 0.5, 0, 0})},
	})
	importInto(t, s, m, nil)

	nodes := lodNodes(t, s, "LOD0")
	if len(nodes) != 1 || nodes[0].Skin != nil {
		t.Error("the mesh is kept without a skin", nodes)
	}
	diags := s.Listener.Diagnostics()
	if len(diags) != 1 || diags[0].Severity != scene.SeverityError || !strings.Contains(diags[0].Message, "bone index 2") {
		t.Error("diagnostics", diags)
	}
}

func TestRigidAttach(t *testing.T) {
	s := newScene()
	bone := s.CreateHelper("Bone4")
	bone.Transform = geom.NewTranslateMatrix4(5, 0, 0)
	importInto(t, s, deformModel(amftest.Mesh{BoneLookup: []int{4}}), nil)

	n := lodNodes(t, s, "LOD0")[0]
	if n.Parent() != bone || n.Skin != nil {
		t.Fatal("rigid attach", n.Parent())
	}
	if p := n.WorldTransform().Translation(); !near(p, geom.NewVector3(0, 0, 0)) {
		t.Error("attaching must not move the mesh", p)
	}
}

func TestSprites(t *testing.T) {
	s := newScene()
	opt := importer.DefaultOptions()
	opt.Scale = 1
	importInto(t, s, deformModel(amftest.Mesh{SpritePositions: [][3]float32{{1, 2, 3}}}), opt)

	n := lodNodes(t, s, "LOD0")[0]
	sprite := s.FindNode("SpriteBone0")
	if sprite == nil || n.Parent() != sprite || n.Skin != nil {
		t.Fatal("single sprite carries the mesh", sprite)
	}
	if p := sprite.Transform.Translation(); !near(p, geom.NewVector3(-1, 3, 2)) {
		t.Error("sprite position", p)
	}
	if p := n.WorldTransform().ApplyTo(geom.NewVector3(0, 0, 0)); !near(p, geom.NewVector3(0, 0, 0)) {
		t.Error("mesh moved", p)
	}

	s = newScene()
	m := deformModel(amftest.Mesh{
		SpritePositions: [][3]float32{{0, 0, 0}, {1, 0, 0}},
		Streams: []amftest.Stream{{Usage: amf.UsageBoneIndex, Format: amf.FormatR8G8B8A8Uint,
			Values: [][4]float32{{0}, {1}, {1}}}},
	})
	opt.DebugName = true
	importInto(t, s, m, opt)
	n = lodNodes(t, s, "LOD0")[0]
	if n.Skin == nil || len(n.Skin.Bones) != 2 {
		t.Fatal("sprite skin", n.Skin)
	}
	if w := n.Skin.Weights[2]; len(w) != 1 || w[0].Bone.Name != "SpriteBone1" || w[0].Weight != 1 {
		t.Error("sprite weights", w)
	}
	if !strings.HasSuffix(n.Name, "S") {
		t.Error("debug name", n.Name)
	}
}

func TestDeformMorph(t *testing.T) {
	// x splits half of the delta into channel 1, y a quarter into channel 2
	cp := [4]float32{-127.5 / 127.996, -126.75 / 127.996, 0, 0}
	m := deformModel(amftest.Mesh{
		BoneLookup: []int{0, 3, 5},
		Streams: []amftest.Stream{
			{Usage: amf.UsageDeformNormal, Format: amf.FormatR32G32B32Float, Values: repeat(3, [4]float32{1, 0, 0})},
			{Usage: amf.UsageDeformPoints, Format: amf.FormatR32G32B32A32Float, Values: repeat(3, cp)},
		},
	})
	s := newScene()
	opt := importer.DefaultOptions()
	opt.DebugName = true
	importInto(t, s, m, opt)

	n := lodNodes(t, s, "LOD0")[0]
	morph := n.Morph
	if morph == nil || n.Skin != nil {
		t.Fatal("morph takes priority over skinning", n.Skin)
	}
	if !strings.HasSuffix(n.Name, "M") {
		t.Error("debug name", n.Name)
	}
	if len(morph.Channels) != 3 {
		t.Fatal("channels", len(morph.Channels))
	}
	if morph.Channels[0].Name != "Deform" || !near(&morph.Channels[0].Deltas[1], geom.NewVector3(-2, 0, 0)) {
		t.Error("deform channel", morph.Channels[0])
	}
	if morph.Channels[1].Name != "cp3" || morph.Channels[2].Name != "cp5" {
		t.Error("control point channels", morph.Channels[1].Name, morph.Channels[2].Name)
	}
	if d := morph.Channels[1].Deltas[0]; !near(&d, geom.NewVector3(-1, 0, 0)) {
		t.Error("split delta cp3", d)
	}
	if d := morph.Channels[2].Deltas[2]; !near(&d, geom.NewVector3(-0.5, 0, 0)) {
		t.Error("split delta cp5", d)
	}
}

func TestDeformMorphZeroRemap(t *testing.T) {
	m := deformModel(amftest.Mesh{
		BoneLookup: []int{7, 0, 0, 9},
		Streams: []amftest.Stream{
			{Usage: amf.UsageDeformNormal, Format: amf.FormatR32G32B32Float, Values: repeat(3, [4]float32{0, 1, 0})},
			{Usage: amf.UsageDeformPoints, Format: amf.FormatR32G32B32A32Float, Values: repeat(3, [4]float32{})},
		},
	})
	s := newScene()
	importInto(t, s, m, importer.DefaultOptions())

	morph := lodNodes(t, s, "LOD0")[0].Morph
	if morph == nil {
		t.Fatal("no morph")
	}
	var names []string
	for _, ch := range morph.Channels {
		names = append(names, ch.Name)
	}
	if strings.Join(names, ",") != "Deform,cp7,cp9" {
		t.Error("channels", names)
	}
}
