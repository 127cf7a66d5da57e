package material

import "github.com/binzume/apexconv/scene"

// Render block materials of the first generation wire standard slots directly.

func init() {
	register("RBMCarPaintSimple", rbmCarPaintSimple)
	register("RBMVegetationFoliage", rbmVegetationFoliage)
	register("RBMFoliageBark", rbmFoliageBark)
	register("RBMBillboardFoliage", rbmUIOverlay)
	register("RBMHalo", rbmHalo)
	register("RBMLambert", rbmLambert)
	register("RBMFacade", rbmFacade)
	register("RBMFacade0", rbmFacade)
	register("RBMGeneral", rbmGeneral)
	register("RBMGeneral0", rbmGeneral)
	register("RBMWindow", rbmWindow)
	register("RBMSkinnedGeneral", rbmSkinnedGeneral)
	register("RBMSkinnedGeneral0", rbmSkinnedGeneral)
	register("RBMMerged", rbmSkinnedGeneral)
	register("RBMCarPaint", rbmCarPaint)
	register("RBMDeformWindow", rbmCarPaint)
	register("RBMUIOverlay", rbmUIOverlay)
	register("RBMScope", rbmUIOverlay)
	register("RBMSkinnedGeneralDecal", rbmSkinnedGeneralDecal)
}

func rbmCarPaintSimple(ctx *Context) {
	ctx.Set(scene.SlotDiffuse, composite(
		layer(scene.BlendNormal, ctx.Tex(0), nil),
		layer(scene.BlendMultiply, colorVar("Car Paint Color"), mask(ctx.Tex(2), scene.ChannelRed)),
	))
	ctx.Set(scene.SlotGlossiness, mask(ctx.Tex(2), scene.ChannelGreen))
	ctx.Set(scene.SlotSpecularLevel, mask(ctx.Tex(2), scene.ChannelBlue))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}

func rbmVegetationFoliage(ctx *Context) {
	ctx.Material.TwoSided = true
	ctx.Material.LockAmbientDiffuse = false
	ctx.Alpha(0)
	ctx.Set(scene.SlotDiffuse, ctx.Tex(0))
	ctx.Set(scene.SlotOpacity, ctx.Tex(0))
	ctx.Set(scene.SlotAmbient, ctx.Tex(2))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}

func rbmFoliageBark(ctx *Context) {
	if ctx.Tex(2) != nil {
		ctx.UV(2, 2)
		ctx.Set(scene.SlotDiffuse, mix(ctx.Tex(0), ctx.Tex(2), vertexColor()))
	} else {
		ctx.Set(scene.SlotDiffuse, mul(ctx.Tex(0), vertexColor()))
	}

	normal := ctx.Tex(1)
	if ctx.Tex(3) != nil {
		ctx.UV(2, 3)
		normal = mix(ctx.Tex(1), ctx.Tex(3), vertexColor())
	}
	ctx.Set(scene.SlotBump, bump(normal))
}

func rbmUIOverlay(ctx *Context) {
	ctx.Alpha(0)
	ctx.Set(scene.SlotDiffuse, ctx.Tex(0))
	ctx.Set(scene.SlotOpacity, ctx.Tex(0))
}

func rbmHalo(ctx *Context) {
	ctx.Alpha(0)
	ctx.Set(scene.SlotDiffuse, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(scene.SlotOpacity, ctx.Tex(0))
	ctx.Material.SelfIllum = 1
}

func rbmLambert(ctx *Context) {
	ctx.UV(2, 2)
	ctx.Set(scene.SlotDiffuse, composite(
		layer(scene.BlendNormal, ctx.Tex(0), nil),
		layer(scene.BlendMultiply, ctx.Tex(2), nil),
		layer(scene.BlendMultiply, vertexColor(), nil),
	))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}

func rbmFacade(ctx *Context) {
	ctx.UV(2, 3)
	ctx.Set(scene.SlotDiffuse, composite(
		layer(scene.BlendNormal, namedMask("Select Channel", ctx.Tex(0), scene.ChannelSelect), nil),
		layer(scene.BlendMultiply, ctx.Tex(3), nil),
		layer(scene.BlendMultiply, vertexColor(), nil),
	))
	ctx.Set(scene.SlotSpecularLevel, mask(ctx.Tex(2), scene.ChannelBlue))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}

func rbmGeneral(ctx *Context) {
	rbmFacade(ctx)
	ctx.Set(scene.SlotGlossiness, mask(ctx.Tex(2), scene.ChannelGreen))
}

func rbmWindow(ctx *Context) {
	ctx.Material.TwoSided = true
	ctx.Alpha(0)
	ctx.Set(scene.SlotDiffuse, mul(ctx.Tex(0), vertexColor()))
	ctx.Set(scene.SlotOpacity, ctx.Tex(0))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
	ctx.Set(scene.SlotSpecularLevel, ctx.Tex(2))
}

func rbmSkinnedGeneral(ctx *Context) {
	ctx.Set(scene.SlotDiffuse, ctx.Tex(0))
	ctx.Set(scene.SlotGlossiness, mask(ctx.Tex(2), scene.ChannelGreen))
	ctx.Set(scene.SlotSpecularLevel, mask(ctx.Tex(2), scene.ChannelBlue))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}

func rbmCarPaint(ctx *Context) {
	deform := colorVar("Deform Value")

	diff := ctx.Tex(0)
	if ctx.Tex(3) != nil {
		diff = mix(ctx.Tex(0), ctx.Tex(3), deform)
	}
	props := ctx.Tex(2)
	if ctx.Tex(5) != nil {
		props = mix(ctx.Tex(2), ctx.Tex(5), deform)
	}
	normal := ctx.Tex(1)
	if ctx.Tex(4) != nil {
		normal = mix(ctx.Tex(1), ctx.Tex(4), deform)
	}

	ctx.Set(scene.SlotDiffuse, composite(
		layer(scene.BlendNormal, diff, nil),
		layer(scene.BlendMultiply, colorVar("Car Paint Color"), mask(props, scene.ChannelRed)),
	))
	ctx.Set(scene.SlotGlossiness, mask(props, scene.ChannelGreen))
	ctx.Set(scene.SlotSpecularLevel, mask(props, scene.ChannelBlue))
	ctx.Set(scene.SlotBump, bump(normal))
}

func rbmSkinnedGeneralDecal(ctx *Context) {
	diff := ctx.Tex(0)
	if ctx.Tex(3) != nil {
		ctx.UV(2, 3)
		diff = mul(ctx.Tex(0), ctx.Tex(3))
	}
	ctx.Set(scene.SlotDiffuse, diff)
	ctx.Set(scene.SlotGlossiness, mask(ctx.Tex(2), scene.ChannelGreen))
	ctx.Set(scene.SlotSpecularLevel, mask(ctx.Tex(2), scene.ChannelBlue))
	ctx.Set(scene.SlotBump, bump(ctx.Tex(1)))
}
