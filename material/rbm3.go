package material

import "github.com/binzume/apexconv/scene"

func init() {
	register("RBMVegetationFoliage3", rbmVegetationFoliage3)
	register("RBMFoliageBark2", rbmFoliageBark2)
	register("RBMGeneralSimple", rbmGeneralSimple)
	register("RBMBavariumShiled", rbmBavariumShield)
	register("RBMWindow1", rbmWindow1)
	register("RBMLayered", rbmLayered)
	register("RBMLandmark", rbmLandmark)
	register("RBMGeneralMK3", rbmGeneralMK3)
	register("RBMGeneral6", rbmGeneral6)
	register("RBMCarLight", rbmCarLight)
	register("RBMCarPaint14", rbmCarPaint14)
	register("RBMGeneral3", rbmGeneral3)
	register("RBMCharacter9", rbmCharacter9)
	register("RBMCharacter6", rbmCharacter6)
	register("RBMRoad", rbmRoad)
	register("RBMGeneralSimple3", rbmGeneralSimple3)
}

func rbmVegetationFoliage3(ctx *Context) {
	s := ctx.Slots
	ctx.Alpha(0)
	ctx.Set(s.Ambient, ctx.Tex(2))
	ctx.Set(s.BaseColor, ctx.Tex(0))
	ctx.Set(s.Opacity, ctx.Tex(0))
	ctx.Set(s.Metalness, mask(ctx.Tex(3), scene.ChannelRed))
	ctx.Set(s.Roughness, mask(ctx.Tex(3), scene.ChannelBlue))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func rbmFoliageBark2(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3, 4)
	ctx.Alpha(0)

	hmap := mul(ctx.Tex(3), ctx.Tex(4))
	ctx.Set(s.BaseColor, mix(ctx.Tex(0), ctx.Tex(5), hmap))
	ctx.Set(s.Metalness, mask(mix(ctx.Tex(2), ctx.Tex(6), hmap), scene.ChannelRed))
	ctx.Set(s.Roughness, mask(mix(ctx.Tex(2), ctx.Tex(7), hmap), scene.ChannelGreen))
	ctx.Set(s.Bump, bump(mix(ctx.Tex(1), ctx.Tex(8), hmap)))
}

func rbmGeneralSimple(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3)
	ctx.Set(s.BaseColor, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(s.Ambient, ctx.Tex(3))
	ctx.Set(s.Metalness, mask(ctx.Tex(2), scene.ChannelRed))
	ctx.Set(s.Roughness, mask(ctx.Tex(2), scene.ChannelGreen))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func rbmBavariumShield(ctx *Context) {
	ctx.Alpha(0)
	ctx.Set(ctx.Slots.Opacity, ctx.Tex(0))
	ctx.Material.SelfIllum = 1
}

func rbmWindow1(ctx *Context) {
	if !ctx.Physical() {
		ctx.Material.TwoSided = true
	}
	windowMaps(ctx)
}

func rbmLayered(ctx *Context) {
	s := ctx.Slots
	diff, normal, rough, metal := ctx.Tex(0), ctx.Tex(1), ctx.Tex(2), ctx.Tex(6)

	if ctx.Tex(8) != nil {
		ctx.UV(2, 8)
		hmap := mask(ctx.Tex(8), scene.ChannelRed)
		diff = mix(ctx.Tex(0), ctx.Tex(3), hmap)
		rough = mix(ctx.Tex(2), ctx.Tex(5), hmap)
		normal = mix(ctx.Tex(1), ctx.Tex(4), hmap)
		if metal != nil {
			metal = mix(ctx.Tex(6), ctx.Tex(7), hmap)
		}
	} else {
		// Without a height map the layer textures are never sampled.
		ctx.Drop(3, 4, 5, 7)
	}

	ctx.Set(s.BaseColor, mul(diff, vertexColor()))
	ctx.Set(s.Roughness, mask(rough, scene.ChannelGreen))
	if metal != nil {
		ctx.Set(s.Metalness, mask(metal, scene.ChannelRed))
	}
	ctx.Set(s.Bump, bump(normal))
}

func rbmLandmark(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(s.Roughness, ctx.Tex(2))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

const mk3Decals = 0x200

func rbmGeneralMK3(ctx *Context) {
	s := ctx.Slots
	decals := ctx.Attributes.Field("flags").Uint()&mk3Decals != 0

	diff, rough, metal, normal := ctx.Tex(0), ctx.Tex(1), ctx.Tex(2), ctx.Tex(3)
	ctx.UV(2, 5, 11, 12, 13, 14)
	ctx.Alpha(11)

	if ctx.Tex(6) != nil {
		ctx.UV(2, 6)
		sel := namedMask("Select Channel", mul(ctx.Tex(5), ctx.Tex(6)), scene.ChannelSelect)
		diff = mix(ctx.Tex(0), ctx.Tex(7), sel)
		rough = mix(ctx.Tex(1), ctx.Tex(8), sel)
		metal = mix(ctx.Tex(2), ctx.Tex(9), sel)
		normal = mix(ctx.Tex(3), ctx.Tex(10), sel)
	}
	if decals {
		m := namedMask("Decal mask", ctx.Tex(11), scene.ChannelAlpha)
		diff = mix(diff, ctx.Tex(11), m)
		rough = mix(rough, ctx.Tex(12), m)
		metal = mix(metal, ctx.Tex(13), m)
		normal = mix(normal, ctx.Tex(14), m)
	}

	ctx.Set(s.BaseColor, mul(diff, vertexColor()))
	ctx.Set(s.Roughness, rough)
	ctx.Set(s.Metalness, metal)
	ctx.Set(s.Bump, bump(normal))
}

func rbmGeneral6(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3)
	ctx.Set(s.BaseColor, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(s.Ambient, ctx.Tex(3))
	ctx.Set(s.Roughness, ctx.Tex(2))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func rbmCarLight(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3, 4, 5)
	ctx.Set(s.BaseColor, mul(ctx.Tex(0), ctx.Tex(3)))
	ctx.Set(s.Bump, bump(mul(ctx.Tex(1), ctx.Tex(4))))

	emis := mix(colorVar("Emissive Color1"), colorVar("Emissive Color2"), mask(ctx.Tex(5), scene.ChannelRed))
	emis = mix(emis, colorVar("Emissive Color3"), mask(ctx.Tex(5), scene.ChannelGreen))
	emis = mix(emis, colorVar("Emissive Color4"), mask(ctx.Tex(5), scene.ChannelBlue))
	ctx.Set(s.Emissive, emis)

	ctx.Set(s.Roughness, mask(ctx.Tex(2), scene.ChannelRed))
	ctx.Set(s.Metalness, mask(ctx.Tex(2), scene.ChannelGreen))
}

func rbmCarPaint14(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 7, 8, 9)
	ctx.UV(3, 11)

	ctx.Set(s.BaseColor, composite(
		layer(scene.BlendNormal, ctx.Tex(10), nil),
		layer(scene.BlendNormal, ctx.Tex(11), nil),
		layer(scene.BlendNormal, ctx.Tex(5), nil),
		layer(scene.BlendAverage, ctx.Tex(6), ctx.Tex(3)),
		layer(scene.BlendAverage, ctx.Tex(7), nil),
		layer(scene.BlendAverage, colorVar("Paint Color"), nil),
		layer(scene.BlendAdd, ctx.Tex(0), nil),
	))
	ctx.Set(s.Bump, bump(composite(
		layer(scene.BlendNormal, ctx.Tex(4), nil),
		layer(scene.BlendAverage, ctx.Tex(8), nil),
		layer(scene.BlendAverage, ctx.Tex(1), nil),
	)))

	props := composite(
		layer(scene.BlendNormal, ctx.Tex(9), nil),
		layer(scene.BlendAverage, ctx.Tex(2), nil),
	)
	ctx.Set(s.Roughness, mask(props, scene.ChannelRed))
	ctx.Set(s.Metalness, mask(props, scene.ChannelGreen))
}

func rbmGeneral3(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3, 4, 5)
	ctx.Alpha(3)

	diff, props, normal := ctx.Tex(0), ctx.Tex(2), ctx.Tex(1)
	if ctx.Tex(3) != nil {
		m := namedMask("Decal mask", ctx.Tex(3), scene.ChannelAlpha)
		diff = mix(diff, ctx.Tex(3), m)
		props = mix(props, ctx.Tex(5), m)
		normal = mix(normal, ctx.Tex(4), m)
	}

	ctx.Set(s.BaseColor, diff)
	ctx.Set(s.Roughness, mask(props, scene.ChannelRed))
	ctx.Set(s.Metalness, mask(props, scene.ChannelGreen))
	ctx.Set(s.Bump, bump(normal))
}

// characterBase wires the layered skin diffuse, the detail normal and the
// metal/roughness pair shared by the character shaders.
func characterBase(ctx *Context, overlays ...int) {
	s := ctx.Slots
	var layers []*scene.CompositeLayer
	for _, i := range overlays {
		layers = append(layers, layer(scene.BlendNormal, ctx.Tex(i), nil))
	}
	layers = append(layers,
		layer(scene.BlendAverage, ctx.Tex(6), colorVar("Blood Blend")),
		layer(scene.BlendAverage, ctx.Tex(3), nil),
		layer(scene.BlendAdd, ctx.Tex(0), nil),
	)
	ctx.Set(s.BaseColor, composite(layers...))
	ctx.Set(s.Bump, bump(mul(ctx.Tex(1), ctx.Tex(4))))

	var metal scene.Texmap = mask(ctx.Tex(2), scene.ChannelGreen)
	if ctx.Tex(5) != nil {
		metal = mul(metal, ctx.Tex(5))
	}
	ctx.Set(s.Metalness, metal)
	ctx.Set(s.Roughness, mask(ctx.Tex(2), scene.ChannelRed))
}

func rbmCharacter9(ctx *Context) {
	characterBase(ctx, 7, 8, 9)
}

func rbmCharacter6(ctx *Context) {
	characterBase(ctx, 7, 8)
}

func rbmRoad(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, mul(ctx.Tex(6), mul(ctx.Tex(4), mix(ctx.Tex(0), ctx.Tex(2), vertexColor()))))
	normal := mul(mul(ctx.Tex(7), mul(ctx.Tex(5), mix(ctx.Tex(1), ctx.Tex(3), vertexColor()))), ctx.Tex(8))
	ctx.Set(s.Bump, bump(normal))
	ctx.Set(s.Roughness, mask(normal, scene.ChannelBlue))
}

func rbmGeneralSimple3(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, ctx.Tex(0))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
	ctx.Set(s.Roughness, mask(ctx.Tex(2), scene.ChannelBlue))
}
