package importer_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/apexconv/adf/adftest"
	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/amf/amftest"
	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/importer"
	"github.com/binzume/apexconv/scene"
)

const eps = 0.001

func near(a, b *geom.Vector3) bool {
	return a.Sub(b).Len() < eps
}

func newScene() *scene.Scene {
	s := scene.NewScene()
	s.Listener = scene.NewListener(io.Discard)
	return s
}

func positions(n int) amftest.Stream {
	st := amftest.Stream{Usage: amf.UsagePosition, Format: amf.FormatR32G32B32Float}
	for i := 0; i < n; i++ {
		f := float32(i)
		st.Values = append(st.Values, [4]float32{f, 2 * f, 3 * f, 0})
	}
	return st
}

func quad(name string) amftest.SubMesh {
	return amftest.SubMesh{Name: name, Faces: [][3]int{{0, 1, 2}, {0, 2, 3}}}
}

func importInto(t *testing.T, s *scene.Scene, m *amftest.Model, opt *importer.Options) *importer.Importer {
	t.Helper()
	a, err := m.Builder().Archive()
	if err != nil {
		t.Fatal(err)
	}
	im := importer.New(s, opt)
	if err := im.LoadArchive(a, ""); err != nil {
		t.Fatal(err)
	}
	return im
}

func lodNodes(t *testing.T, s *scene.Scene, name string) []*scene.Node {
	t.Helper()
	l := s.FindLayer(name)
	if l == nil {
		t.Fatal("missing layer", name)
	}
	return l.Nodes
}

func TestLoadFile(t *testing.T) {
	m := &amftest.Model{
		LODs: []amftest.LOD{{Index: 0, Meshes: []amftest.Mesh{{
			Type:        "RBMGeneral",
			VertexCount: 4,
			SubMeshes:   []amftest.SubMesh{quad("hull")},
			Streams:     []amftest.Stream{positions(4)},
		}}}},
		Materials: []amftest.Material{{
			Name:       "hull",
			Attributes: adftest.Defer(adftest.Struct("UnknownConstants", adftest.M("x", adftest.Uint32)), nil),
		}},
	}
	path := filepath.Join(t.TempDir(), "hull.modelc")
	if err := m.Builder().WriteFile(path); err != nil {
		t.Fatal(err)
	}

	s := newScene()
	if err := importer.New(s, nil).Load(path); err != nil {
		t.Fatal(err)
	}
	nodes := lodNodes(t, s, "LOD0")
	if len(nodes) != 1 || len(s.Layers()) != 1 {
		t.Fatal("expected one node in LOD0", nodes)
	}
	n := nodes[0]
	if n.Name != "hull" || n.Material == nil || n.Material.MtlName() != "hull" {
		t.Error("node", n.Name, n.Material)
	}
	if len(n.Mesh.Verts) != 4 || len(n.Mesh.Faces) != 2 {
		t.Error("mesh size", len(n.Mesh.Verts), len(n.Mesh.Faces))
	}
	if !near(&n.Mesh.Verts[1], geom.NewVector3(-145, 435, 290)) {
		t.Error("position", n.Mesh.Verts[1])
	}
	diags := s.Listener.Diagnostics()
	if len(diags) != 1 || diags[0].Severity != scene.SeverityError || !strings.Contains(diags[0].Message, "UnknownConstants") {
		t.Error("diagnostics", diags)
	}

	if err := importer.New(s, nil).Load(filepath.Join(t.TempDir(), "missing.modelc")); err == nil {
		t.Error("missing archive must fail")
	}
}

func TestMeshChannels(t *testing.T) {
	m := &amftest.Model{
		LODs: []amftest.LOD{{Index: 2, Meshes: []amftest.Mesh{{
			Type:        "RBMGeneral",
			VertexCount: 4,
			SubMeshes:   []amftest.SubMesh{quad("hull"), {Name: "glass", Faces: [][3]int{{1, 2, 3}}}},
			Streams: []amftest.Stream{
				{Usage: amf.UsagePosition, Format: amf.FormatR32G32B32Float, Packing: amftest.ScalePacking(2),
					Values: [][4]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}}},
				{Usage: amf.UsageNormal, Format: amf.FormatR32G32B32Float,
					Values: [][4]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 0}}},
				{Usage: amf.UsageTextureCoordinate, Format: amf.FormatR32G32Float, Packing: amftest.TilingPacking(2, 1),
					Values: [][4]float32{{0.25, 0.25}, {0, 0}, {1, 1}, {0.5, 0.5}}},
				{Usage: amf.UsageColor, Format: amf.FormatR32G32B32A32Float,
					Values: [][4]float32{{0.1, 0.2, 0.3, 0.4}, {}, {}, {}}},
			},
		}}}},
		Materials: []amftest.Material{{Name: "glass"}},
	}
	s := newScene()
	opt := importer.DefaultOptions()
	opt.Scale = 1
	opt.DebugName = true
	importInto(t, s, m, opt)

	n := lodNodes(t, s, "LOD2")[0]
	mesh := n.Mesh
	if n.Name != "hull_RBMGeneralNCFU1" {
		t.Error("debug name", n.Name)
	}
	if !near(&mesh.Verts[0], geom.NewVector3(-2, 0, 0)) || !near(&mesh.Verts[1], geom.NewVector3(0, 0, 2)) {
		t.Error("packed positions", mesh.Verts[:2])
	}
	if !near(&mesh.Normals[1], geom.NewVector3(0, 0, 1)) {
		t.Error("normals are corrected without scale", mesh.Normals[1])
	}
	if mesh.NormalFaces[2] != [3]int{1, 2, 3} {
		t.Error("normal faces of the second sub-mesh", mesh.NormalFaces)
	}
	uv := mesh.Map(1)
	if uv == nil || !near(&uv.Verts[0], geom.NewVector3(0.5, 0.75, 0)) {
		t.Fatal("uv", uv)
	}
	if back := geom.NewVector2(uv.Verts[0].X, uv.Verts[0].Y).FlipV(); *back != *geom.NewVector2(0.5, 0.25) {
		t.Error("flipping the imported uv back must give the tiled stream value", back)
	}
	if uv.Faces[1] != [3]int{0, 2, 3} {
		t.Error("uv faces", uv.Faces)
	}
	if c := mesh.Map(scene.MapVertexColor); c == nil || !near(&c.Verts[0], geom.NewVector3(0.1, 0.2, 0.3)) {
		t.Error("vertex color", c)
	}
	if a := mesh.Map(scene.MapAlpha); a == nil || !near(&a.Verts[0], geom.NewVector3(0.4, 0.4, 0.4)) {
		t.Error("vertex alpha", a)
	}
	if mesh.Faces[0].MatID != 0 || mesh.Faces[1].MatID != 0 || mesh.Faces[2].MatID != 1 {
		t.Error("material ids", mesh.Faces)
	}
	if mesh.Version() == 0 {
		t.Error("mesh not invalidated")
	}

	multi, ok := n.Material.(*scene.MultiMaterial)
	if !ok || len(multi.Sub) != 2 {
		t.Fatal("multi material", n.Material)
	}
	if multi.Sub[0] != nil || multi.Sub[1] == nil || multi.Sub[1].Name != "glass" {
		t.Error("slot i holds the material of sub-mesh i", multi.Sub)
	}
}

func TestInvalidMesh(t *testing.T) {
	m := &amftest.Model{
		LODs: []amftest.LOD{{Index: 0, Meshes: []amftest.Mesh{
			{Type: "RBMGeneral", VertexCount: 4, SubMeshes: []amftest.SubMesh{quad("nopos")}},
			{Type: "RBMGeneral", VertexCount: 4, SubMeshes: []amftest.SubMesh{quad("ok")}, Streams: []amftest.Stream{positions(4)}},
		}}},
	}
	s := newScene()
	importInto(t, s, m, nil)

	nodes := lodNodes(t, s, "LOD0")
	if len(nodes) != 1 || nodes[0].Name != "ok" {
		t.Error("the invalid mesh must be skipped", nodes)
	}
	if s.Listener.Count(scene.SeverityError) != 1 || !strings.Contains(s.Listener.Diagnostics()[0].Message, "nopos LOD: 0") {
		t.Error("diagnostics", s.Listener.Diagnostics())
	}
}

func TestNoColorVars(t *testing.T) {
	m := &amftest.Model{
		LODs: []amftest.LOD{{Meshes: []amftest.Mesh{
			{VertexCount: 4, SubMeshes: []amftest.SubMesh{quad("hull")}, Streams: []amftest.Stream{positions(4)}},
		}}},
		Materials: []amftest.Material{{Name: "hull"}},
	}
	s := newScene()
	s.Capabilities.ColorVars = false
	importInto(t, s, m, nil)

	if s.Listener.Count(scene.SeverityWarning) != 1 || len(s.Listener.Diagnostics()) != 1 {
		t.Error("expected a single warning", s.Listener.Diagnostics())
	}
	if n := lodNodes(t, s, "LOD0")[0]; n.Material != nil {
		t.Error("no material expected", n.Material)
	}
}

func TestStuntAreas(t *testing.T) {
	s := newScene()
	s.CreateNode("door_l")
	b := adftest.NewBuilder()
	b.Add("stunt", amftest.StuntAreasType, adftest.Fields{"stuntAreas": []interface{}{
		adftest.Fields{
			"name":     "roof",
			"partName": "door_l",
			"vertices": []interface{}{
				adftest.Fields{"x": 0, "y": 0, "z": 0},
				adftest.Fields{"x": 1, "y": 0, "z": 0},
				adftest.Fields{"x": 0, "y": 1, "z": 0},
			},
			"faces": []int{0, 1, 2},
		},
		adftest.Fields{"name": "hood", "partName": "hood_part"},
	}})
	a, err := b.Archive()
	if err != nil {
		t.Fatal(err)
	}
	opt := importer.DefaultOptions()
	opt.Scale = 10
	if err := importer.New(s, opt).LoadArchive(a, ""); err != nil {
		t.Fatal(err)
	}

	roof := s.FindNode("ASA_roof")
	if roof == nil || roof.Parent() != s.FindNode("door_l") {
		t.Fatal("roof", roof)
	}
	if len(roof.Mesh.Faces) != 1 || !near(&roof.Mesh.Verts[2], geom.NewVector3(0, 0, 10)) {
		t.Error("roof mesh", roof.Mesh.Verts, roof.Mesh.Faces)
	}
	hood := s.FindNode("ASA_hood")
	if hood == nil || hood.Parent() == nil || hood.Parent().Name != "hood_part" || !hood.Parent().IsHelper {
		t.Error("missing parts are created as placeholders", hood)
	}
	if len(s.Layers()) != 0 {
		t.Error("stunt areas replace the model import")
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("debugName: true\nforceStandardMaterial: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opt, err := importer.LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if !opt.DebugName || !opt.ForceStandardMaterial || opt.Scale != importer.DefaultScale {
		t.Error("options", opt)
	}

	if err := os.WriteFile(path, []byte("scael: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := importer.LoadOptions(path); err == nil {
		t.Error("unknown keys must fail")
	}
}
