package material

import (
	"github.com/binzume/apexconv/amf"
	"github.com/binzume/apexconv/scene"
	"gopkg.in/yaml.v2"
)

// Synthesizer creates host materials for AMF materials.
type Synthesizer struct {
	Scene    *scene.Scene
	Registry *Registry
	// ForceStandard disables physical materials.
	ForceStandard bool
}

func NewSynthesizer(s *scene.Scene) *Synthesizer {
	return &Synthesizer{Scene: s, Registry: DefaultRegistry}
}

func (s *Synthesizer) class(m *amf.Material) scene.MaterialClass {
	if m.Type == amf.MaterialPBR && !s.ForceStandard && s.Scene.Capabilities.PhysicalMaterials {
		return scene.PhysicalMaterial
	}
	return scene.StandardMaterial
}

// Create returns a material named after m. A material without attributes or with an
// unknown constant block is returned unwired, with an error diagnostic.
func (s *Synthesizer) Create(m *amf.Material) *scene.Material {
	mat := scene.NewMaterial(m.Name, s.class(m))
	l := s.Scene.Listener
	if !m.Attributes.IsValid() {
		l.Error("Could not find attributes for: %s", m.Name)
		return mat
	}
	recipe, ok := s.Registry.Lookup(m.AttributesHash())
	if !ok {
		l.Error("Could not find material function for: %s (%s)", m.Name, m.Attributes.TypeName())
		return mat
	}

	bitmaps := make([]*scene.Bitmap, len(m.Textures))
	for i, t := range m.Textures {
		if t != nil {
			bitmaps[i] = s.Scene.LoadBitmap(t.Path)
		}
	}
	ctx := NewContext(m.Attributes, mat, bitmaps)
	recipe.Wire(ctx)

	for _, i := range Unused(ctx) {
		l.Info("Unused texture[%d] %q for: %s", i, m.Textures[i].Path, m.Name)
	}
	return mat
}

// Unused returns the indices of textures a recipe left out of the material graph.
func Unused(ctx *Context) []int {
	var r []int
	for i, b := range ctx.Bitmaps {
		if b != nil && !ctx.Material.Linked(b) {
			r = append(r, i)
		}
	}
	return r
}

type dump struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Block      string         `yaml:"block,omitempty"`
	Textures   []string       `yaml:"textures"`
	Attributes yaml.Marshaler `yaml:"attributes,omitempty"`
}

// Dump renders the raw properties of m as YAML.
func Dump(m *amf.Material) ([]byte, error) {
	d := &dump{Name: m.Name, Type: m.Type.String(), Block: m.Attributes.TypeName()}
	for _, t := range m.Textures {
		if t == nil {
			d.Textures = append(d.Textures, "")
		} else {
			d.Textures = append(d.Textures, t.Path)
		}
	}
	if m.Attributes.IsValid() {
		d.Attributes = m.Attributes
	}
	return yaml.Marshal(d)
}
