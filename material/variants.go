package material

import "github.com/binzume/apexconv/scene"

// Later titles reuse the constant block layouts under suffixed names.

func init() {
	register("FoliageConstants_GZ", rbmVegetationFoliage3)
	register("BarkConstants_GZ", barkConstantsGZ)
	register("CarLightConstants_GZ", rbmCarLight)
	register("CharacterConstants_GZ", rbmCharacter6)
	register("CharacterSkinConstants_GZ", rbmCharacter6)
	register("HairConstants_GZ", hairConstantsGZ)
	register("WindowConstants_GZ", windowConstants)

	register("GeneralJC3Constants_HU", rbmGeneralSimple)
	register("CarPaintMMConstants_HU", rbmCarPaint14)
	register("GeneralConstants_HU", rbmGeneralSimple)
	register("PropConstants_HU", propConstantsHU)
	register("CharacterConstants_HU", characterSkinConstants)
	register("GeneralR2Constants_HU", generalR2Constants)
}

func barkConstantsGZ(ctx *Context) {
	s := ctx.Slots
	ctx.UV(2, 3, 4)
	ctx.Alpha(0)

	hmap := mul(ctx.Tex(3), ctx.Tex(4))
	ctx.Set(s.BaseColor, mix(ctx.Tex(0), ctx.Tex(5), hmap))
	metalRough(ctx, mix(ctx.Tex(2), ctx.Tex(8), hmap), scene.ChannelGreen)
	ctx.Set(s.Bump, bump(mix(ctx.Tex(1), ctx.Tex(6), hmap)))
}

func hairConstantsGZ(ctx *Context) {
	s := ctx.Slots
	hairBase(ctx)
	diff := ctx.Tex(0)
	if ctx.Flag("flags", "useColorMask") {
		diff = mul(ctx.Tex(0), tint(ctx.Tex(3), tintColorsAlt))
	}
	ctx.Set(s.BaseColor, diff)
	metalRough(ctx, ctx.Tex(2), scene.ChannelBlue)
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func propConstantsHU(ctx *Context) {
	s := ctx.Slots
	ctx.Set(s.BaseColor, ctx.Tex(0))
	metalRough(ctx, ctx.Tex(2), scene.ChannelGreen)
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}
