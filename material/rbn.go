package material

import "github.com/binzume/apexconv/scene"

// RBN shaders pack ambient occlusion, roughness and metalness into the red, green
// and blue channels of one properties texture and store gloss instead of roughness.

func init() {
	register("RBNGeneral", rbnGeneral)
	register("RBNCarPaint", rbnCarPaint)
	register("RBNCharacter", rbnCharacter)
	register("RBNWindow", rbnWindow)
	register("RBNXXXX", rbnXXXX)
}

func rbnProperties(ctx *Context, props scene.Texmap) {
	s := ctx.Slots
	if ctx.Physical() {
		ctx.Material.InvertRoughness = true
	}
	ctx.Set(s.Ambient, mask(props, scene.ChannelRed))
	ctx.Set(s.Roughness, mask(props, scene.ChannelGreen))
	ctx.Set(s.Metalness, mask(props, scene.ChannelBlue))
}

// averaged stacks the present overlays over base, or returns base alone. Overlays
// listed in uv2 are moved to the second map channel.
func averaged(ctx *Context, base scene.Texmap, overlays []int, uv2 int) scene.Texmap {
	c := composite(layer(scene.BlendNormal, base, nil))
	for _, i := range overlays {
		if ctx.Tex(i) == nil {
			continue
		}
		if i == uv2 {
			ctx.UV(2, i)
		}
		c.Layers = append(c.Layers, layer(scene.BlendAverage, ctx.Tex(i), nil))
	}
	if len(c.Layers) == 1 {
		return base
	}
	return c
}

func rbnGeneral(ctx *Context) {
	s := ctx.Slots
	diff := averaged(ctx, ctx.Tex(0), []int{4, 6}, 6)
	normal := averaged(ctx, ctx.Tex(1), []int{5, 7}, 7)

	ctx.Set(s.BaseColor, mul(diff, vertexColor()))
	rbnProperties(ctx, ctx.Tex(2))
	ctx.Set(s.Bump, bump(normal))
	ctx.Set(s.Emissive, ctx.Tex(3))
}

func rbnCarPaint(ctx *Context) {
	s := ctx.Slots
	diff, normal := ctx.Tex(0), ctx.Tex(1)
	if ctx.Tex(3) != nil {
		ctx.UV(2, 3)
		diff = mul(diff, ctx.Tex(3))
	}
	if ctx.Tex(4) != nil {
		ctx.UV(2, 4)
		normal = mul(normal, ctx.Tex(4))
	}

	ctx.Set(s.BaseColor, diff)
	rbnProperties(ctx, ctx.Tex(2))
	ctx.Set(s.Bump, bump(normal))
}

func rbnCharacter(ctx *Context) {
	s := ctx.Slots
	diff, normal := ctx.Tex(0), ctx.Tex(1)

	if ctx.Tex(3) != nil || ctx.Tex(4) != nil {
		c := composite(layer(scene.BlendNormal, diff, nil))
		if ctx.Tex(3) != nil {
			c.Layers = append(c.Layers, layer(scene.BlendAverage, ctx.Tex(3), colorVar("Blood Blend")))
		}
		if ctx.Tex(4) != nil {
			c.Layers = append(c.Layers, layer(scene.BlendAverage, ctx.Tex(4), ctx.Tex(7)))
		}
		diff = c
	}

	if ctx.Tex(5) != nil || ctx.Tex(6) != nil {
		c := composite(layer(scene.BlendNormal, normal, nil))
		if ctx.Tex(5) != nil {
			c.Layers = append(c.Layers, layer(scene.BlendAverage, ctx.Tex(5), nil))
		}
		if ctx.Tex(6) != nil {
			ctx.UV(2, 6)
			wrinkle := &scene.Mix{
				Map1:   ctx.Tex(6),
				Mask:   colorVar("Wrinkle Blend"),
				Color2: scene.Color{R: 0.5, G: 0.5, B: 1},
			}
			c.Layers = append(c.Layers, layer(scene.BlendAverage, wrinkle, nil))
		}
		normal = c
	}

	ctx.Set(s.BaseColor, diff)
	rbnProperties(ctx, ctx.Tex(2))
	ctx.Set(s.Bump, bump(normal))
}

func rbnWindow(ctx *Context) {
	s := ctx.Slots
	ctx.Alpha(0, 3)
	diff := ctx.Tex(0)
	if ctx.Tex(3) != nil {
		diff = mul(diff, ctx.Tex(3))
	}

	ctx.Set(s.BaseColor, diff)
	ctx.Set(s.Opacity, diff)
	rbnProperties(ctx, ctx.Tex(2))
	ctx.Set(s.Bump, bump(ctx.Tex(1)))
}

func rbnXXXX(ctx *Context) {
	s := ctx.Slots
	ctx.Alpha(3)
	hmap := mask(ctx.Tex(3), scene.ChannelAlpha)

	ctx.Set(s.BaseColor, mix(ctx.Tex(0), ctx.Tex(3), hmap))
	rbnProperties(ctx, mix(ctx.Tex(2), ctx.Tex(5), hmap))
	ctx.Set(s.Bump, bump(mix(ctx.Tex(1), ctx.Tex(4), hmap)))
}
