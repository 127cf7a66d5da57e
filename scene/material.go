package scene

import "fmt"

// Mtl is anything assignable to a node: a *Material or a *MultiMaterial.
type Mtl interface {
	MtlName() string
}

type MaterialClass int

const (
	StandardMaterial MaterialClass = iota
	PhysicalMaterial
)

func (c MaterialClass) String() string {
	if c == PhysicalMaterial {
		return "Physical"
	}
	return "Standard"
}

// Slot names a material texture input.
type Slot string

// Standard material slots.
const (
	SlotAmbient       Slot = "ambient"
	SlotDiffuse       Slot = "diffuse"
	SlotSpecular      Slot = "specular"
	SlotGlossiness    Slot = "glossiness"
	SlotSpecularLevel Slot = "specularLevel"
	SlotSelfIllum     Slot = "selfIllumination"
	SlotOpacity       Slot = "opacity"
	SlotBump          Slot = "bump"
	SlotReflection    Slot = "reflection"
	SlotDisplacement  Slot = "displacement"
)

// Physical material slots. Bump and displacement are shared with the standard class.
const (
	SlotBaseColor     Slot = "baseColor"
	SlotReflectivity  Slot = "reflectivity"
	SlotRoughness     Slot = "roughness"
	SlotMetalness     Slot = "metalness"
	SlotTransparency  Slot = "transparency"
	SlotEmission      Slot = "emission"
	SlotEmissionColor Slot = "emissionColor"
	SlotCutout        Slot = "cutout"
)

var slotOrder = []Slot{
	SlotAmbient, SlotDiffuse, SlotBaseColor, SlotSpecular, SlotGlossiness, SlotSpecularLevel,
	SlotReflectivity, SlotRoughness, SlotMetalness, SlotSelfIllum, SlotEmission, SlotEmissionColor,
	SlotOpacity, SlotCutout, SlotTransparency, SlotBump, SlotReflection, SlotDisplacement,
}

type Material struct {
	Name  string
	Class MaterialClass

	TwoSided           bool
	LockAmbientDiffuse bool
	SelfIllum          float32
	SelfIllumColor     Color

	// Physical parameters.
	BaseColor         Color
	InvertRoughness   bool
	Emission          float32
	EmissionColor     Color
	EmissionLuminance float32

	ShowInViewport bool

	maps    map[Slot]Texmap
	amounts map[Slot]float32
}

func NewMaterial(name string, class MaterialClass) *Material {
	return &Material{
		Name:               name,
		Class:              class,
		LockAmbientDiffuse: true,
		BaseColor:          Color{0.5, 0.5, 0.5},
		maps:               map[Slot]Texmap{},
		amounts:            map[Slot]float32{},
	}
}

func (m *Material) MtlName() string {
	return m.Name
}

// SetTexmap binds t to slot. A nil map clears the slot.
func (m *Material) SetTexmap(slot Slot, t Texmap) {
	if t == nil {
		delete(m.maps, slot)
		return
	}
	m.maps[slot] = t
}

func (m *Material) Texmap(slot Slot) Texmap {
	return m.maps[slot]
}

func (m *Material) SetTexmapAmount(slot Slot, amount float32) {
	m.amounts[slot] = amount
}

// TexmapAmount is the slot strength, 1 unless changed.
func (m *Material) TexmapAmount(slot Slot) float32 {
	if a, ok := m.amounts[slot]; ok {
		return a
	}
	return 1
}

// Slots lists the bound slots in display order.
func (m *Material) Slots() []Slot {
	var r []Slot
	for _, s := range slotOrder {
		if _, ok := m.maps[s]; ok {
			r = append(r, s)
		}
	}
	return r
}

// Linked reports whether t is reachable from any slot.
func (m *Material) Linked(t Texmap) bool {
	for _, root := range m.maps {
		if Linked(root, t) {
			return true
		}
	}
	return false
}

type MultiMaterial struct {
	Name string
	Sub  []*Material
}

func NewMultiMaterial(name string, n int) *MultiMaterial {
	return &MultiMaterial{Name: name, Sub: make([]*Material, n)}
}

func (m *MultiMaterial) MtlName() string {
	return m.Name
}

func (m *MultiMaterial) SetSub(i int, sub *Material) error {
	if i < 0 || i >= len(m.Sub) {
		return fmt.Errorf("multi material %s: slot %d out of range", m.Name, i)
	}
	m.Sub[i] = sub
	return nil
}
