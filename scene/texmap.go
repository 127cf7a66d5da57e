package scene

import (
	"fmt"
	"path"
	"strings"
)

// Texmap is a node of a material's texture map graph.
type Texmap interface {
	SubTexmaps() []Texmap
}

type Color struct {
	R, G, B float32
}

type Bitmap struct {
	Path string
	Name string

	MapChannel int
	UTiling    float32
	VTiling    float32

	// AlphaFromFile uses the image alpha as the map alpha; AlphaAsMono makes the
	// alpha the mono output (used by opacity slots).
	AlphaFromFile bool
	AlphaAsMono   bool

	// Filled from the image header when the file is found.
	Loaded   bool
	Width    int
	Height   int
	HasAlpha bool
}

func NewBitmap(p string) *Bitmap {
	p = strings.ReplaceAll(p, "\\", "/")
	return &Bitmap{Path: p, Name: path.Base(p), MapChannel: 1, UTiling: 1, VTiling: 1}
}

func (b *Bitmap) SubTexmaps() []Texmap { return nil }

// UseAlpha reads transparency from the image alpha channel.
func (b *Bitmap) UseAlpha() {
	b.AlphaFromFile = true
	b.AlphaAsMono = true
}

func (b *Bitmap) SetTiling(u, v float32) {
	b.UTiling = u
	b.VTiling = v
}

type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAverage
	BlendAdd
	BlendMultiply
)

func (m BlendMode) String() string {
	switch m {
	case BlendAverage:
		return "Average"
	case BlendAdd:
		return "Add"
	case BlendMultiply:
		return "Multiply"
	}
	return "Normal"
}

type CompositeLayer struct {
	Map   Texmap
	Mask  Texmap
	Blend BlendMode
}

// Composite blends its layers bottom to top.
type Composite struct {
	Layers []*CompositeLayer
}

// NewComposite makes a composite with n (at least one) normal layers.
func NewComposite(n int) *Composite {
	if n < 1 {
		n = 1
	}
	c := &Composite{}
	for i := 0; i < n; i++ {
		c.AddLayer()
	}
	return c
}

func (c *Composite) Layer(i int) *CompositeLayer {
	return c.Layers[i]
}

func (c *Composite) AddLayer() *CompositeLayer {
	l := &CompositeLayer{}
	c.Layers = append(c.Layers, l)
	return l
}

func (c *Composite) SubTexmaps() []Texmap {
	var r []Texmap
	for _, l := range c.Layers {
		r = append(r, l.Map, l.Mask)
	}
	return r
}

// Mix blends Map1 and Map2 by Mask. With Map2Active off, Color2 replaces Map2.
type Mix struct {
	Map1       Texmap
	Map2       Texmap
	Mask       Texmap
	Map2Active bool
	Color2     Color
}

func NewMix(a, b, mask Texmap) *Mix {
	return &Mix{Map1: a, Map2: b, Mask: mask, Map2Active: true}
}

func (m *Mix) SubTexmaps() []Texmap {
	return []Texmap{m.Map1, m.Map2, m.Mask}
}

type Channel int

const (
	ChannelSelect Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

func (c Channel) String() string {
	return [...]string{"Select", "Red", "Green", "Blue", "Alpha"}[c]
}

// ColorMask outputs one channel of Source as a grayscale map.
type ColorMask struct {
	Name    string
	Source  Texmap
	Channel Channel
}

func NewColorMask(src Texmap, ch Channel) *ColorMask {
	return &ColorMask{Source: src, Channel: ch}
}

func (m *ColorMask) SubTexmaps() []Texmap {
	return []Texmap{m.Source}
}

// ColorVar is a named color the user edits after import.
type ColorVar struct {
	Name  string
	Color Color
}

func NewColorVar(name string) *ColorVar {
	return &ColorVar{Name: name, Color: Color{1, 1, 1}}
}

func (v *ColorVar) SubTexmaps() []Texmap { return nil }

type RGBMultiply struct {
	Map1 Texmap
	Map2 Texmap
}

func NewRGBMultiply(a, b Texmap) *RGBMultiply {
	return &RGBMultiply{Map1: a, Map2: b}
}

func (m *RGBMultiply) SubTexmaps() []Texmap {
	return []Texmap{m.Map1, m.Map2}
}

// NormalBump turns a tangent space normal map into a bump input.
type NormalBump struct {
	Normal Texmap
}

func NewNormalBump(n Texmap) *NormalBump {
	return &NormalBump{Normal: n}
}

func (b *NormalBump) SubTexmaps() []Texmap {
	return []Texmap{b.Normal}
}

type VertexColor struct{}

func (VertexColor) SubTexmaps() []Texmap { return nil }

// Linked reports whether ref is reachable from root.
func Linked(root, ref Texmap) bool {
	if root == nil {
		return false
	}
	if root == ref {
		return true
	}
	for _, t := range root.SubTexmaps() {
		if t != nil && Linked(t, ref) {
			return true
		}
	}
	return false
}

// Describe renders a texmap graph as a compact expression.
func Describe(t Texmap) string {
	switch t := t.(type) {
	case nil:
		return "-"
	case *Bitmap:
		if t == nil {
			return "-"
		}
		if t.MapChannel != 1 {
			return fmt.Sprintf("Bitmap(%s@uv%d)", t.Name, t.MapChannel)
		}
		return "Bitmap(" + t.Name + ")"
	case *Composite:
		var layers []string
		for _, l := range t.Layers {
			s := l.Blend.String() + ":" + Describe(l.Map)
			if l.Mask != nil {
				s += "/" + Describe(l.Mask)
			}
			layers = append(layers, s)
		}
		return "Composite(" + strings.Join(layers, ", ") + ")"
	case *Mix:
		b := Describe(t.Map2)
		if !t.Map2Active {
			b = fmt.Sprintf("%v", t.Color2)
		}
		return "Mix(" + Describe(t.Map1) + ", " + b + ", " + Describe(t.Mask) + ")"
	case *ColorMask:
		return "ColorMask(" + Describe(t.Source) + ", " + t.Channel.String() + ")"
	case *ColorVar:
		return "ColorVar(" + t.Name + ")"
	case *RGBMultiply:
		return "RGBMultiply(" + Describe(t.Map1) + ", " + Describe(t.Map2) + ")"
	case *NormalBump:
		return "NormalBump(" + Describe(t.Normal) + ")"
	case VertexColor, *VertexColor:
		return "VertexColor"
	}
	return fmt.Sprintf("%T", t)
}
