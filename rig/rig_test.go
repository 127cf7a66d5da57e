package rig

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/importer"
	"github.com/binzume/apexconv/scene"
	"github.com/qmuntal/gltf"
)

func testRig() *gltf.Document {
	return &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "rig_test"},
		Nodes: []*gltf.Node{
			{Name: "root", Extras: map[string]interface{}{"hkaSkeleton": "Body"}, Children: []uint32{1}},
			{Name: "spine", Translation: [3]float32{0, 1, 0}, Extras: map[string]interface{}{"hkaBone": 7}, Children: []uint32{2}},
			{Name: "head", Translation: [3]float32{0, 1, 0}, Extras: map[string]interface{}{"hkaBone": "8"}},
			{Name: "ragdoll_spine", Extras: map[string]interface{}{"hkaSkeleton": "Ragdoll_Body", "hkaBone": 9}},
			{},
		},
	}
}

func newScene() *scene.Scene {
	s := scene.NewScene()
	s.Listener = scene.NewListener(io.Discard)
	return s
}

func TestSeed(t *testing.T) {
	s := newScene()
	nodes := Seed(s, testRig())
	if len(nodes) != 5 {
		t.Fatal("nodes", len(nodes))
	}
	if nodes[2].Parent() != nodes[1] || nodes[1].Parent() != nodes[0] {
		t.Error("hierarchy")
	}
	if nodes[4].Name != "node4" || !nodes[4].BoneDisplay {
		t.Error("unnamed node", nodes[4].Name)
	}
	if v, _ := nodes[2].UserProp(importer.PropSkeleton); v != "Body" {
		t.Error("skeleton name is inherited", v)
	}
	if id, ok := nodes[2].UserPropInt(importer.PropBone); !ok || id != 8 {
		t.Error("bone id", id, ok)
	}
	if p := nodes[2].WorldTransform().Translation(); p.Sub(geom.NewVector3(0, 2, 0)).Len() > 0.0001 {
		t.Error("world position", p)
	}

	bones := importer.NewBoneRegistry(s)
	if bones.Resolve(7) != nodes[1] || bones.Resolve(8) != nodes[2] {
		t.Error("registry must resolve seeded bones")
	}
	if bones.Resolve(9) == nodes[3] {
		t.Error("ragdoll bones are not resolved")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.glb")
	if err := gltf.SaveBinary(testRig(), path); err != nil {
		t.Fatal(err)
	}
	s := newScene()
	nodes, err := Load(s, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 5 || s.FindNode("spine") != nodes[1] {
		t.Fatal("loaded nodes", nodes)
	}
	if id, ok := nodes[1].UserPropInt(importer.PropBone); !ok || id != 7 {
		t.Error("bone id after decoding", id, ok)
	}

	if _, err := Load(newScene(), filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("missing rig must fail")
	}
}
