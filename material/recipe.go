// Package material builds host materials from AMF materials. Every engine shader
// constant block has a recipe that wires the material's texture list into the
// host material slots.
package material

import (
	"sort"

	"github.com/binzume/apexconv/adf"
	"github.com/binzume/apexconv/scene"
)

// Recipe wires one shader family.
type Recipe interface {
	Wire(ctx *Context)
}

type RecipeFunc func(ctx *Context)

func (f RecipeFunc) Wire(ctx *Context) {
	f(ctx)
}

type entry struct {
	name   string
	recipe Recipe
}

// Registry maps attribute type hashes to recipes.
type Registry struct {
	recipes map[uint32]entry
}

func NewRegistry() *Registry {
	return &Registry{recipes: map[uint32]entry{}}
}

// Register binds the recipe to the hash of the constant block type name.
func (r *Registry) Register(name string, rc Recipe) {
	r.recipes[adf.Hash(name)] = entry{name: name, recipe: rc}
}

func (r *Registry) Lookup(hash uint32) (Recipe, bool) {
	e, ok := r.recipes[hash]
	return e.recipe, ok
}

func (r *Registry) Name(hash uint32) string {
	return r.recipes[hash].name
}

func (r *Registry) Names() []string {
	var names []string
	for _, e := range r.recipes {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds every built-in recipe.
var DefaultRegistry = NewRegistry()

func register(name string, f func(ctx *Context)) {
	DefaultRegistry.Register(name, RecipeFunc(f))
}

// Slots maps shader semantics onto the slots of one material class.
type Slots struct {
	BaseColor     scene.Slot
	Bump          scene.Slot
	Roughness     scene.Slot
	Metalness     scene.Slot
	Ambient       scene.Slot
	Opacity       scene.Slot
	Emissive      scene.Slot
	EmissiveColor scene.Slot
	Displacement  scene.Slot
	Reflection    scene.Slot
}

var StandardSlots = Slots{
	BaseColor:     scene.SlotDiffuse,
	Bump:          scene.SlotBump,
	Roughness:     scene.SlotSpecularLevel,
	Metalness:     scene.SlotGlossiness,
	Ambient:       scene.SlotAmbient,
	Opacity:       scene.SlotOpacity,
	Emissive:      scene.SlotSelfIllum,
	EmissiveColor: scene.SlotSelfIllum,
	Displacement:  scene.SlotDisplacement,
	Reflection:    scene.SlotReflection,
}

var PhysicalSlots = Slots{
	BaseColor:     scene.SlotBaseColor,
	Bump:          scene.SlotBump,
	Roughness:     scene.SlotRoughness,
	Metalness:     scene.SlotMetalness,
	Ambient:       scene.SlotTransparency,
	Opacity:       scene.SlotCutout,
	Emissive:      scene.SlotEmission,
	EmissiveColor: scene.SlotEmissionColor,
	Displacement:  scene.SlotDisplacement,
	Reflection:    scene.SlotReflectivity,
}

// Context is the input of a recipe.
type Context struct {
	Attributes *adf.Value
	Material   *scene.Material
	// Bitmaps has one entry per texture slot of the source material, nil when
	// nothing is bound there.
	Bitmaps []*scene.Bitmap
	Slots   Slots
}

func NewContext(attrs *adf.Value, mat *scene.Material, bitmaps []*scene.Bitmap) *Context {
	ctx := &Context{Attributes: attrs, Material: mat, Bitmaps: bitmaps, Slots: StandardSlots}
	if mat.Class == scene.PhysicalMaterial {
		ctx.Slots = PhysicalSlots
	}
	return ctx
}

func (c *Context) Physical() bool {
	return c.Material.Class == scene.PhysicalMaterial
}

// Bitmap returns texture i, or nil when absent or out of range.
func (c *Context) Bitmap(i int) *scene.Bitmap {
	if i < 0 || i >= len(c.Bitmaps) {
		return nil
	}
	return c.Bitmaps[i]
}

// Tex is Bitmap as a texmap, a nil interface when absent.
func (c *Context) Tex(i int) scene.Texmap {
	if b := c.Bitmap(i); b != nil {
		return b
	}
	return nil
}

func (c *Context) Set(slot scene.Slot, t scene.Texmap) {
	c.Material.SetTexmap(slot, t)
}

// UV moves the given textures to map channel ch.
func (c *Context) UV(ch int, textures ...int) {
	for _, i := range textures {
		if b := c.Bitmap(i); b != nil {
			b.MapChannel = ch
		}
	}
}

// Alpha makes the given textures output their alpha channel.
func (c *Context) Alpha(textures ...int) {
	for _, i := range textures {
		if b := c.Bitmap(i); b != nil {
			b.UseAlpha()
		}
	}
}

// Tile sets the tiling of the given textures.
func (c *Context) Tile(u, v float32, textures ...int) {
	for _, i := range textures {
		if b := c.Bitmap(i); b != nil {
			b.SetTiling(u, v)
		}
	}
}

// Drop forgets the given textures; they are no longer expected in the graph.
func (c *Context) Drop(textures ...int) {
	for _, i := range textures {
		if i >= 0 && i < len(c.Bitmaps) {
			c.Bitmaps[i] = nil
		}
	}
}

// Flag reads a boolean member of a flags structure of the attributes.
func (c *Context) Flag(flags, name string) bool {
	return c.Attributes.Field(flags).Bool(name)
}

func (c *Context) Float(name string) float32 {
	return c.Attributes.Field(name).Float()
}

// Vec2 reads a two component attribute stored as {x, y} or as an array.
func (c *Context) Vec2(name string) (float32, float32) {
	v := c.Attributes.Field(name)
	if v.Kind() == adf.Array {
		return v.Index(0).Float(), v.Index(1).Float()
	}
	return v.Field("x").Float(), v.Field("y").Float()
}

// Color reads a color attribute stored as {r, g, b}, {x, y, z} or as an array.
func (c *Context) Color(name string) scene.Color {
	v := c.Attributes.Field(name)
	switch {
	case v.Kind() == adf.Array:
		return scene.Color{R: v.Index(0).Float(), G: v.Index(1).Float(), B: v.Index(2).Float()}
	case v.Field("r").IsValid():
		return scene.Color{R: v.Field("r").Float(), G: v.Field("g").Float(), B: v.Field("b").Float()}
	}
	return scene.Color{R: v.Field("x").Float(), G: v.Field("y").Float(), B: v.Field("z").Float()}
}

func mask(t scene.Texmap, ch scene.Channel) *scene.ColorMask {
	return scene.NewColorMask(t, ch)
}

func namedMask(name string, t scene.Texmap, ch scene.Channel) *scene.ColorMask {
	m := scene.NewColorMask(t, ch)
	m.Name = name
	return m
}

func mix(a, b, m scene.Texmap) scene.Texmap {
	return scene.NewMix(a, b, m)
}

func mul(a, b scene.Texmap) scene.Texmap {
	return scene.NewRGBMultiply(a, b)
}

func bump(t scene.Texmap) scene.Texmap {
	return scene.NewNormalBump(t)
}

func colorVar(name string) scene.Texmap {
	return scene.NewColorVar(name)
}

func vertexColor() scene.Texmap {
	return scene.VertexColor{}
}

func layer(blend scene.BlendMode, t, m scene.Texmap) *scene.CompositeLayer {
	return &scene.CompositeLayer{Map: t, Mask: m, Blend: blend}
}

func composite(layers ...*scene.CompositeLayer) *scene.Composite {
	return &scene.Composite{Layers: layers}
}
