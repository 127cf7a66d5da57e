package main

import (
	"sort"

	"github.com/binzume/apexconv/scene"
)

type report struct {
	Archive     string             `yaml:"archive"`
	Error       string             `yaml:"error,omitempty"`
	Layers      []*layerReport     `yaml:"layers,omitempty"`
	Nodes       []*nodeReport      `yaml:"nodes,omitempty"`
	Materials   []*materialReport  `yaml:"materials,omitempty"`
	Diagnostics []scene.Diagnostic `yaml:"diagnostics,omitempty"`
}

type layerReport struct {
	Name  string   `yaml:"name"`
	Nodes []string `yaml:"nodes"`
}

type nodeReport struct {
	Name     string   `yaml:"name"`
	Parent   string   `yaml:"parent,omitempty"`
	Helper   bool     `yaml:"helper,omitempty"`
	Verts    int      `yaml:"verts,omitempty"`
	Faces    int      `yaml:"faces,omitempty"`
	Maps     []int    `yaml:"maps,omitempty,flow"`
	Material string   `yaml:"material,omitempty"`
	Bones    []string `yaml:"bones,omitempty,flow"`
	Morphs   []string `yaml:"morphs,omitempty,flow"`
}

type materialReport struct {
	Name  string            `yaml:"name"`
	Class string            `yaml:"class"`
	Slots map[string]string `yaml:"slots,omitempty"`
}

func buildReport(path string, s *scene.Scene) *report {
	r := &report{Archive: path, Diagnostics: s.Listener.Diagnostics()}
	for _, l := range s.Layers() {
		lr := &layerReport{Name: l.Name}
		for _, n := range l.Nodes {
			lr.Nodes = append(lr.Nodes, n.Name)
		}
		r.Layers = append(r.Layers, lr)
	}

	materials := map[*scene.Material]bool{}
	addMaterial := func(m *scene.Material) {
		if m == nil || materials[m] {
			return
		}
		materials[m] = true
		mr := &materialReport{Name: m.Name, Class: m.Class.String(), Slots: map[string]string{}}
		for _, slot := range m.Slots() {
			mr.Slots[string(slot)] = scene.Describe(m.Texmap(slot))
		}
		r.Materials = append(r.Materials, mr)
	}

	for _, n := range s.Nodes() {
		nr := &nodeReport{Name: n.Name, Helper: n.IsHelper}
		if p := n.Parent(); p != nil {
			nr.Parent = p.Name
		}
		if n.Mesh != nil {
			nr.Verts = len(n.Mesh.Verts)
			nr.Faces = len(n.Mesh.Faces)
			nr.Maps = n.Mesh.MapChannels()
		}
		if n.Skin != nil {
			for _, b := range n.Skin.Bones {
				nr.Bones = append(nr.Bones, b.Name)
			}
		}
		if n.Morph != nil {
			for _, c := range n.Morph.Channels {
				if c.Name != "" {
					nr.Morphs = append(nr.Morphs, c.Name)
				}
			}
		}
		switch m := n.Material.(type) {
		case *scene.Material:
			nr.Material = m.Name
			addMaterial(m)
		case *scene.MultiMaterial:
			nr.Material = m.Name
			for _, sub := range m.Sub {
				addMaterial(sub)
			}
		}
		r.Nodes = append(r.Nodes, nr)
	}
	sort.Slice(r.Materials, func(i, j int) bool { return r.Materials[i].Name < r.Materials[j].Name })
	return r
}
