package material

import "github.com/binzume/apexconv/scene"

// Constant block shaders carry typed parameters next to the texture list.

func init() {
	register("LandmarkConstants", landmarkConstants)
	register("EmissiveUIConstants", emissiveUIConstants)
	register("HologramConstants", hologramConstants)
	register("FoliageConstants", foliageConstants)
	register("BarkConstants", barkConstants)
	register("EyeGlossConstants", eyeGlossConstants)
	register("HairConstants", hairConstants)
	register("CharacterConstants", characterConstants)
	register("CharacterSkinConstants", characterSkinConstants)
	register("CarPaintConstants", carPaintConstants)
	register("CarLightConstants", carLightConstants)
	register("WindowConstants", windowConstants)
	register("GeneralConstants", generalConstants)
	register("GeneralR2Constants", generalR2Constants)
	register("GeneralMkIIIConstants", generalMkIIIConstants)
}

const emissionLuminance = 100

// tint blends four named colors by the red, green and blue channels of t.
func tint(t scene.Texmap, names [4]string) scene.Texmap {
	r := mix(colorVar(names[0]), colorVar(names[1]), mask(t, scene.ChannelRed))
	r = mix(r, colorVar(names[2]), mask(t, scene.ChannelGreen))
	return mix(r, colorVar(names[3]), mask(t, scene.ChannelBlue))
}

var (
	tintColors    = [4]string{"Color 0", "Color 1", "Color 2", "Color 3"}
	tintColorsAlt = [4]string{"Tint Color1", "Tint Color2", "Tint Color3", "Tint Color4"}
)

// metalRough wires metalness and roughness from the red channel and the given
// channel of a packed properties map.
func metalRough(ctx *Context, props scene.Texmap, rough scene.Channel) {
	ctx.Set(ctx.Slots.Metalness, mask(props, scene.ChannelRed))
	ctx.Set(ctx.Slots.Roughness, mask(props, rough))
}

func landmarkConstants(ctx *Context) {
	ctx.Set(ctx.Slots.BaseColor, ctx.Tex(0))
	ctx.Set(ctx.Slots.Bump, bump(ctx.Tex(1)))
}

func emit(ctx *Context, intensity float32, color scene.Color) {
	m := ctx.Material
	if ctx.Physical() {
		m.Emission = intensity
		m.EmissionColor = color
		m.BaseColor = color
		m.EmissionLuminance = emissionLuminance
		return
	}
	m.SelfIllum = intensity
	m.SelfIllumColor = color
}

func emissiveUIConstants(ctx *Context) {
	emit(ctx, 1, ctx.Color("primaryColor"))
}

func hologramConstants(ctx *Context) {
	emit(ctx, ctx.Float("emissiveIntensity"), ctx.Color("emissiveColor"))
	ctx.Set(ctx.Slots.Bump, bump(ctx.Tex(0)))
}

func foliageConstants(ctx *Context) {
	s := ctx.Slots
	ctx.Alpha(0)
	ctx.Set(s.BaseColor, ctx.Tex(0))
	ctx.Set(s.Opacity, ctx.Tex(0))
	metalRough(ctx, ctx.Tex(2), scene.ChannelBlue)
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func barkConstants(ctx *Context) {
	s := ctx.Slots
	if ctx.Flag("flags", "detailNormalUseUV2") {
		ctx.UV(2, 3)
	}
	ctx.Tile(ctx.Float("detailNormalTileU"), ctx.Float("detailNormalTileV"), 3)
	ctx.Material.SetTexmapAmount(s.Bump, ctx.Float("normalStrength"))

	if ctx.Tex(0) != nil && ctx.Attributes.Bool("isGrass") {
		ctx.Alpha(0)
		ctx.Set(s.Opacity, ctx.Tex(0))
	}
	ctx.Set(s.BaseColor, ctx.Tex(0))
	metalRough(ctx, ctx.Tex(2), scene.ChannelGreen)
	ctx.Set(s.Bump, bump(mul(ctx.Tex(1), ctx.Tex(3))))
}

func eyeGlossConstants(ctx *Context) {
	ctx.Set(ctx.Slots.BaseColor, ctx.Tex(0))
	ctx.Set(ctx.Slots.Reflection, ctx.Tex(1))
}

// hairBase applies the two-sided and alpha-test switches shared by hair shaders.
func hairBase(ctx *Context) {
	if !ctx.Physical() && ctx.Flag("flags", "doubleSided") {
		ctx.Material.TwoSided = true
	}
	if ctx.Tex(0) != nil && ctx.Flag("flags", "alphaTest") {
		ctx.Alpha(0)
		ctx.Set(ctx.Slots.Opacity, ctx.Tex(0))
	}
}

func hairConstants(ctx *Context) {
	s := ctx.Slots
	hairBase(ctx)
	ctx.Set(s.BaseColor, ctx.Tex(0))
	metalRough(ctx, ctx.Tex(2), scene.ChannelBlue)
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func characterConstants(ctx *Context) {
	s := ctx.Slots
	if ctx.Physical() {
		ctx.Material.EmissionLuminance = emissionLuminance
	}
	diff, normal := ctx.Tex(0), ctx.Tex(1)

	if ctx.Flag("flags", "useDetail") {
		u, v := ctx.Vec2("detailTilingFactorUV")
		if ctx.Tex(4) != nil {
			ctx.Tile(u, v, 4)
			diff = mul(diff, ctx.Tex(4))
		}
		if ctx.Tex(5) != nil {
			ctx.Tile(u, v, 5)
			normal = mul(normal, ctx.Tex(5))
		}
	}
	if ctx.Flag("flags", "useTint") {
		diff = mul(diff, tint(ctx.Tex(8), tintColors))
	}

	ctx.Set(s.BaseColor, diff)
	ctx.Set(s.EmissiveColor, ctx.Tex(3))
	metalRough(ctx, ctx.Tex(2), scene.ChannelBlue)
	ctx.Set(s.Bump, bump(normal))
}

func characterSkinConstants(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, ctx.Tex(0))
	metalRough(ctx, ctx.Tex(2), scene.ChannelBlue)
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func carPaintConstants(ctx *Context) {
	s := ctx.Slots
	diff, normal, props := ctx.Tex(0), ctx.Tex(1), ctx.Tex(2)

	if ctx.Flag("flags0", "tint") {
		diff = mul(diff, tint(ctx.Tex(4), tintColors))
	}
	if ctx.Flag("flags0", "decals") {
		ctx.UV(2, 8, 9, 10)
		ctx.Alpha(8)
		m := namedMask("Decal mask", ctx.Tex(8), scene.ChannelAlpha)
		diff = mix(diff, ctx.Tex(8), m)
		props = mix(props, ctx.Tex(10), m)
		normal = mix(normal, ctx.Tex(9), m)
	}
	if ctx.Tex(11) != nil {
		ctx.UV(3, 11)
		diff = mix(diff, ctx.Tex(11), nil)
	}

	ctx.Set(s.BaseColor, diff)
	metalRough(ctx, props, scene.ChannelBlue)
	ctx.Set(s.Bump, bump(normal))
}

func windowConstants(ctx *Context) {
	if !ctx.Physical() {
		ctx.Material.TwoSided = !ctx.Flag("flags", "oneSided")
	}
	windowMaps(ctx)
}

// windowMaps wires the window maps without touching sidedness.
func windowMaps(ctx *Context) {
	s := ctx.Slots
	ctx.Alpha(0)
	ctx.Set(s.BaseColor, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(s.Opacity, ctx.Tex(0))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
	ctx.Set(s.Roughness, ctx.Tex(2))
}

func carLightConstants(ctx *Context) {
	u, v := ctx.Vec2("detailTiling")
	ctx.Tile(u, v, 3, 4)
	rbmCarLight(ctx)
}

func generalConstants(ctx *Context) {
	s := ctx.Slots
	ctx.Tile(ctx.Float("detailNormalTileU"), ctx.Float("detailNormalTileV"), 5)
	ctx.UV(2, 10)

	blend := ctx.Tex(10)
	diff := mix(ctx.Tex(0), ctx.Tex(6), blend)
	normal := mix(ctx.Tex(1), ctx.Tex(7), blend)
	props := mix(ctx.Tex(2), ctx.Tex(8), blend)
	tess := mix(ctx.Tex(3), ctx.Tex(9), blend)

	metalRough(ctx, props, scene.ChannelBlue)
	ctx.Set(s.BaseColor, mul(diff, vertexColor()))
	ctx.Set(s.EmissiveColor, ctx.Tex(4))
	ctx.Set(s.Bump, bump(mul(normal, ctx.Tex(5))))
	ctx.Set(s.Displacement, tess)
}

func generalR2Constants(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 7, 8, 9, 10, 17)
	if ctx.Flag("flags", "tintUV2") {
		ctx.UV(2, 12)
	}
	ctx.Tile(ctx.Float("detailRepeatU"), ctx.Float("detailRepeatV"), 5, 6)
	if ctx.Flag("flags", "detailUV2") {
		ctx.UV(2, 5, 6)
	}

	m := mask(ctx.Tex(7), scene.ChannelRed)
	diff := mix(mul(ctx.Tex(0), ctx.Tex(5)), ctx.Tex(8), m)
	normal := mix(mul(ctx.Tex(1), ctx.Tex(6)), ctx.Tex(9), m)
	props := mix(ctx.Tex(2), ctx.Tex(10), m)

	m = mask(ctx.Tex(7), scene.ChannelGreen)
	diff = mix(diff, ctx.Tex(14), m)
	normal = mix(normal, ctx.Tex(15), m)
	props = mix(props, ctx.Tex(16), m)

	comp := composite(
		layer(scene.BlendNormal, diff, nil),
		layer(scene.BlendAverage, ctx.Tex(12), nil),
	)
	if ctx.Flag("flags", "useColorMask") && ctx.Tex(17) != nil {
		comp.Layers = append(comp.Layers, layer(scene.BlendMultiply, tint(ctx.Tex(17), tintColorsAlt), nil))
	}

	metalRough(ctx, props, scene.ChannelBlue)
	ctx.Set(s.BaseColor, mul(comp, vertexColor()))
	ctx.Set(s.EmissiveColor, ctx.Tex(4))
	ctx.Set(s.Bump, bump(normal))
}

func generalMkIIIConstants(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, ctx.Tex(0))
	ctx.Set(s.Roughness, mask(ctx.Tex(1), scene.ChannelRed))
	ctx.Set(s.Metalness, ctx.Tex(2))
	ctx.Set(s.Bump, bump(ctx.Tex(3)))
}
