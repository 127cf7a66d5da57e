package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/apexconv/geom"
	"github.com/blezek/tga"
	"golang.org/x/image/bmp"
)

func TestNodeTree(t *testing.T) {
	s := NewScene()
	root := s.CreateHelper("root")
	a := s.CreateNode("a")
	b := s.CreateNode("b")
	root.AttachChild(a)
	a.AttachChild(b)
	root.AttachChild(b)

	if len(a.Children()) != 0 || b.Parent() != root || len(root.Children()) != 2 {
		t.Error("re-parenting must detach from the old parent")
	}
	if s.FindNode("b") != b || s.FindNode("missing") != nil {
		t.Error("FindNode")
	}

	root.Transform = geom.NewTranslateMatrix4(1, 2, 3)
	b.Transform = geom.NewTranslateMatrix4(1, 0, 0)
	if p := b.WorldTransform().Translation(); *p != *geom.NewVector3(2, 2, 3) {
		t.Error("world transform", p)
	}

	var visited []string
	s.EnumTree(func(n *Node) bool {
		visited = append(visited, n.Name)
		return true
	})
	if strings.Join(visited, ",") != "root,a,b" {
		t.Error("EnumTree order", visited)
	}
}

func TestAttachKeepWorld(t *testing.T) {
	s := NewScene()
	bone := s.CreateHelper("bone")
	bone.Transform = geom.NewTranslateMatrix4(10, 0, 0).Mul(geom.NewScaleMatrix4(2, 2, 2))
	m := s.CreateNode("mesh")
	m.Transform = geom.NewTranslateMatrix4(1, 2, 3)

	bone.AttachChildKeepWorld(m)
	if m.Parent() != bone {
		t.Fatal("not attached")
	}
	p := m.WorldTransform().ApplyTo(geom.NewVector3(0, 0, 0))
	if p.Sub(geom.NewVector3(1, 2, 3)).Len() > 0.0001 {
		t.Error("world position moved", p)
	}
}

func TestUserProps(t *testing.T) {
	n := NewScene().CreateNode("bone")
	n.SetUserProp("hkaSkeleton", "Body")
	n.SetUserPropInt("hkaBone", 42)

	if v, ok := n.UserProp("hkaSkeleton"); !ok || v != "Body" {
		t.Error("string prop", v, ok)
	}
	if v, ok := n.UserPropInt("hkaBone"); !ok || v != 42 {
		t.Error("int prop", v, ok)
	}
	if _, ok := n.UserPropInt("hkaSkeleton"); ok {
		t.Error("non numeric prop must not read as int")
	}
	if keys := n.UserPropKeys(); len(keys) != 2 || keys[0] != "hkaBone" {
		t.Error("keys", keys)
	}
}

func TestLayers(t *testing.T) {
	s := NewScene()
	l0 := s.GetLayer("LOD0")
	if s.GetLayer("LOD0") != l0 || len(s.Layers()) != 1 {
		t.Error("GetLayer must reuse existing layers")
	}
	n := s.CreateNode("mesh")
	l0.AddNode(n)
	s.GetLayer("LOD1").AddNode(n)
	if len(l0.Nodes) != 0 || n.Layer.Name != "LOD1" {
		t.Error("a node belongs to one layer")
	}
}

func TestSkinAndMorph(t *testing.T) {
	s := NewScene()
	b0, b1 := s.CreateHelper("Bone0"), s.CreateHelper("Bone1")
	skin := NewSkin(2)
	skin.AddBone(b0)
	skin.AddBone(b0)
	if len(skin.Bones) != 1 {
		t.Error("bones are bound once")
	}
	if err := skin.AddWeights(0, []*Node{b1}, []float32{1}); err == nil {
		t.Error("unbound bone must fail")
	}
	skin.AddBone(b1)
	if err := skin.AddWeights(1, []*Node{b0, b1}, []float32{0.25, 0.75}); err != nil {
		t.Fatal(err)
	}
	if len(skin.Weights[1]) != 2 || skin.Weights[1][1].Bone != b1 {
		t.Error("weights", skin.Weights[1])
	}
	if err := skin.AddWeights(2, nil, nil); err == nil {
		t.Error("vertex out of range must fail")
	}

	m := NewMorph(3)
	m.Channel(2).Name = "cp2"
	if len(m.Channels) != 3 || len(m.Channels[0].Deltas) != 3 || m.FindChannel("cp2") != m.Channels[2] {
		t.Error("morph channels grow on demand")
	}
}

func TestMesh(t *testing.T) {
	m := NewMesh(4, 2)
	uv := m.SetMapSupport(1, 4)
	m.SetMapSupport(MapVertexColor, 4)
	m.SetMapSupport(MapAlpha, 4)
	if len(uv.Faces) != 2 || m.Map(1) != uv || m.Map(2) != nil {
		t.Error("map channel")
	}
	if ch := m.MapChannels(); len(ch) != 3 || ch[0] != MapAlpha || ch[2] != 1 {
		t.Error("map channel order", ch)
	}
	v := m.Version()
	m.Invalidate()
	if m.Version() == v {
		t.Error("Invalidate")
	}
}

func TestMaterialGraph(t *testing.T) {
	diff := NewBitmap("textures\\body_dif.ddsc")
	nrm := NewBitmap("textures/body_nrm.ddsc")
	spare := NewBitmap("textures/spare.ddsc")

	comp := NewComposite(1)
	comp.Layer(0).Map = diff
	l := comp.AddLayer()
	l.Blend = BlendMultiply
	l.Map = NewColorVar("Car Paint Color")
	l.Mask = NewColorMask(nrm, ChannelRed)

	m := NewMaterial("body", StandardMaterial)
	m.SetTexmap(SlotDiffuse, comp)
	m.SetTexmap(SlotOpacity, nil)

	if !m.Linked(diff) || !m.Linked(nrm) || m.Linked(spare) {
		t.Error("reachability through composite layers and masks")
	}
	if diff.Name != "body_dif.ddsc" || diff.Path != "textures/body_dif.ddsc" {
		t.Error("bitmap path", diff.Path, diff.Name)
	}
	want := "Composite(Normal:Bitmap(body_dif.ddsc), Multiply:ColorVar(Car Paint Color)/ColorMask(Bitmap(body_nrm.ddsc), Red))"
	if got := Describe(m.Texmap(SlotDiffuse)); got != want {
		t.Error("Describe", got)
	}
	if slots := m.Slots(); len(slots) != 1 || slots[0] != SlotDiffuse {
		t.Error("slots", slots)
	}
	if m.TexmapAmount(SlotBump) != 1 {
		t.Error("default amount")
	}

	mix := NewMix(NewRGBMultiply(diff, VertexColor{}), nil, nil)
	mix.Map2Active = false
	if got := Describe(NewNormalBump(mix)); got != "NormalBump(Mix(RGBMultiply(Bitmap(body_dif.ddsc), VertexColor), {0 0 0}, -))" {
		t.Error("Describe", got)
	}

	multi := NewMultiMaterial("multi", 2)
	if err := multi.SetSub(2, m); err == nil {
		t.Error("slot out of range")
	}
}

func TestListener(t *testing.T) {
	var buf bytes.Buffer
	l := NewListener(&buf)
	l.Info("one")
	l.Error("two %d", 2)

	if len(l.Diagnostics()) != 2 || l.Count(SeverityError) != 1 {
		t.Error("diagnostics", l.Diagnostics())
	}
	if !strings.Contains(buf.String(), l.Session[:8]) || !strings.Contains(buf.String(), "error: two 2") {
		t.Error("log output", buf.String())
	}
	l.Clear()
	if len(l.Diagnostics()) != 0 {
		t.Error("Clear")
	}
}

func TestLoadBitmap(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "textures"), 0755)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 128})
	f, _ := os.Create(filepath.Join(dir, "textures", "glass.png"))
	png.Encode(f, img)
	f.Close()

	opaque := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	f, _ = os.Create(filepath.Join(dir, "textures", "wall.bmp"))
	bmp.Encode(f, opaque)
	f.Close()

	decal := image.NewNRGBA(image.Rect(0, 0, 2, 4))
	decal.Set(1, 1, color.NRGBA{0, 0, 255, 64})
	f, _ = os.Create(filepath.Join(dir, "textures", "decal.tga"))
	tga.Encode(f, decal)
	f.Close()

	s := NewScene()
	if b := s.LoadBitmap("textures/glass.ddsc"); b.Loaded {
		t.Error("bitmaps are not read without a texture root")
	}

	s.TextureRoot = dir
	glass := s.LoadBitmap("textures/glass.ddsc")
	if !glass.Loaded || glass.Width != 4 || glass.Height != 2 || !glass.HasAlpha {
		t.Error("png load", glass)
	}
	wall := s.LoadBitmap("textures/wall.ddsc")
	if !wall.Loaded || wall.Width != 8 || wall.HasAlpha {
		t.Error("bmp load", wall)
	}
	if d := s.LoadBitmap("textures/decal.ddsc"); !d.Loaded || d.Width != 2 || d.Height != 4 || !d.HasAlpha {
		t.Error("tga load", d)
	}
	if missing := s.LoadBitmap("textures/none.ddsc"); missing.Loaded {
		t.Error("missing texture")
	}
}
