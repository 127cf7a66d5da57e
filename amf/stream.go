package amf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/binzume/apexconv/geom"
	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// FloatEpsilon is the float32 machine epsilon.
const FloatEpsilon = 1.1920929e-07

// StreamAttribute describes one vertex attribute and evaluates it per vertex.
type StreamAttribute struct {
	Usage        Usage
	Format       Format
	StreamIndex  int
	StreamOffset int
	StreamStride int
	PackingData  [8]byte

	data []byte
	base int
}

func (s *StreamAttribute) formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Usage: s.Usage, Format: s.Format, Msg: fmt.Sprintf(format, args...)}
}

// PositionScale is the packing scale of a position stream, 0 when unset.
func (s *StreamAttribute) PositionScale() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(s.PackingData[0:4]))
}

// Tiling is the packing UV tiling of a texture coordinate stream, (1,1) when unset.
func (s *StreamAttribute) Tiling() *geom.Vector2 {
	t := geom.NewVector2(
		math.Float32frombits(binary.LittleEndian.Uint32(s.PackingData[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(s.PackingData[4:8])),
	)
	if t.Len() == 0 {
		return geom.NewVector2(1, 1)
	}
	return t
}

func (s *StreamAttribute) element(v int) ([]byte, error) {
	size := s.Format.Size()
	if size == 0 {
		return nil, s.formatErrorf("unsupported format")
	}
	off := s.base + v*s.StreamStride + s.StreamOffset
	if v < 0 || off < 0 || off+size > len(s.data) {
		return nil, s.formatErrorf("vertex %d out of range", v)
	}
	return s.data[off : off+size], nil
}

// holds checks that the stream data covers n vertices. Streams of unsupported
// formats are reported when evaluated.
func (s *StreamAttribute) holds(n int) error {
	if n == 0 || s.Format.Size() == 0 {
		return nil
	}
	if n > 1 && s.StreamStride <= 0 {
		return s.formatErrorf("stride %d for %d vertices", s.StreamStride, n)
	}
	if _, err := s.element(n - 1); err != nil {
		return s.formatErrorf("data holds fewer than %d vertices", n)
	}
	return nil
}

// ufloat decodes an unsigned small float with a 5 bit exponent and mbits of
// mantissa.
func ufloat(bits uint32, mbits uint) float32 {
	e := int(bits >> mbits)
	m := float32(bits&(1<<mbits-1)) / float32(uint32(1)<<mbits)
	switch e {
	case 0:
		return math32.Ldexp(m, -14)
	case 31:
		if m == 0 {
			return math32.Inf(1)
		}
		return math32.NaN()
	}
	return math32.Ldexp(1+m, e-15)
}

func frac(f float32) float32 {
	return f - math32.Floor(f)
}

// raw decodes element v into up to four normalized components.
func (s *StreamAttribute) raw(v int) ([4]float32, error) {
	var r [4]float32
	b, err := s.element(v)
	if err != nil {
		return r, err
	}
	info := formats[s.Format]

	switch s.Format {
	case FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint:
		p := binary.LittleEndian.Uint32(b)
		r = [4]float32{float32(p & 0x3ff), float32(p >> 10 & 0x3ff), float32(p >> 20 & 0x3ff), float32(p >> 30)}
		if s.Format == FormatR10G10B10A2Unorm {
			r[0] /= 1023
			r[1] /= 1023
			r[2] /= 1023
			r[3] /= 3
		}
		return r, nil
	case FormatR11G11B10Float:
		p := binary.LittleEndian.Uint32(b)
		r = [4]float32{ufloat(p&0x7ff, 6), ufloat(p>>11&0x7ff, 6), ufloat(p>>22, 5), 0}
		return r, nil
	case FormatR32UnitVecAsFloat, FormatR32UnitUnsignedVecAsFloat:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		r = [4]float32{frac(f), frac(f * 256), frac(f * 65536), 0}
		if s.Format == FormatR32UnitVecAsFloat {
			for i := 0; i < 3; i++ {
				r[i] = r[i]*2 - 1
			}
		}
		return r, nil
	case FormatR32R8G8B8A8UnormAsFloat:
		for i := 0; i < 4; i++ {
			r[i] = float32(b[i]) / 255
		}
		return r, nil
	case FormatR8G8B8A8TangentSpace:
		for i := 0; i < 3; i++ {
			r[i] = float32(b[i])/255*2 - 1
		}
		r[3] = float32(b[3]) / 255
		return r, nil
	}

	for i := 0; i < info.count; i++ {
		c := b[i*info.width:]
		switch info.kind {
		case compFloat:
			r[i] = math.Float32frombits(binary.LittleEndian.Uint32(c))
		case compHalf:
			r[i] = float16.Frombits(binary.LittleEndian.Uint16(c)).Float32()
		case compUnorm:
			if info.width == 1 {
				r[i] = float32(c[0]) / 255
			} else {
				r[i] = float32(binary.LittleEndian.Uint16(c)) / 65535
			}
		case compSnorm:
			if info.width == 1 {
				r[i] = math32.Max(float32(int8(c[0]))/127, -1)
			} else {
				r[i] = math32.Max(float32(int16(binary.LittleEndian.Uint16(c)))/32767, -1)
			}
		case compUint, compSint:
			r[i] = float32(s.integer(c, info))
		}
	}
	return r, nil
}

func (s *StreamAttribute) integer(c []byte, info formatInfo) int64 {
	signed := info.kind == compSint || info.kind == compSnorm
	switch info.width {
	case 1:
		if signed {
			return int64(int8(c[0]))
		}
		return int64(c[0])
	case 2:
		if signed {
			return int64(int16(binary.LittleEndian.Uint16(c)))
		}
		return int64(binary.LittleEndian.Uint16(c))
	}
	if signed {
		return int64(int32(binary.LittleEndian.Uint32(c)))
	}
	return int64(binary.LittleEndian.Uint32(c))
}

// rawInts decodes element v as stored integers, for index streams.
func (s *StreamAttribute) rawInts(v int) ([4]int, error) {
	var r [4]int
	b, err := s.element(v)
	if err != nil {
		return r, err
	}
	info := formats[s.Format]
	switch info.kind {
	case compUnorm, compSnorm, compUint, compSint:
		for i := 0; i < info.count; i++ {
			r[i] = int(s.integer(b[i*info.width:], info))
		}
		return r, nil
	}
	f, err := s.raw(v)
	for i := range f {
		r[i] = int(f[i])
	}
	return r, err
}

func (s *StreamAttribute) expect(want string, usages ...Usage) error {
	for _, u := range usages {
		if s.Usage == u {
			return nil
		}
	}
	return s.formatErrorf("cannot evaluate as %s", want)
}

// Vec3 evaluates a position, normal, tangent, color or deform normal.
func (s *StreamAttribute) Vec3(v int) (*geom.Vector3, error) {
	if err := s.expect("float3", UsagePosition, UsageNormal, UsageTangent, UsageBiTangent,
		UsageTangentSpace, UsageColor, UsageDeformNormal); err != nil {
		return nil, err
	}
	r, err := s.raw(v)
	if err != nil {
		return nil, err
	}
	return &geom.Vector3{X: r[0], Y: r[1], Z: r[2]}, nil
}

// Vec2 evaluates a texture coordinate.
func (s *StreamAttribute) Vec2(v int) (*geom.Vector2, error) {
	if err := s.expect("float2", UsageTextureCoordinate); err != nil {
		return nil, err
	}
	r, err := s.raw(v)
	if err != nil {
		return nil, err
	}
	return &geom.Vector2{X: r[0], Y: r[1]}, nil
}

// Vec4 evaluates a color, bone weight, deform point or tangent.
func (s *StreamAttribute) Vec4(v int) (*geom.Vector4, error) {
	if err := s.expect("float4", UsageColor, UsageBoneWeight, UsageDeformPoints, UsageTangent,
		UsagePosition); err != nil {
		return nil, err
	}
	r, err := s.raw(v)
	if err != nil {
		return nil, err
	}
	return &geom.Vector4{X: r[0], Y: r[1], Z: r[2], W: r[3]}, nil
}

// Index evaluates the first component of a bone index stream.
func (s *StreamAttribute) Index(v int) (int, error) {
	r, err := s.Indices4(v)
	return r[0], err
}

// Indices4 evaluates all four components of a bone index stream.
func (s *StreamAttribute) Indices4(v int) ([4]int, error) {
	if err := s.expect("uint8x4", UsageBoneIndex); err != nil {
		return [4]int{}, err
	}
	return s.rawInts(v)
}

// Position evaluates a position stream with its packing scale applied.
func (s *StreamAttribute) Position(v int) (*geom.Vector3, error) {
	if s.Usage != UsagePosition {
		return nil, s.formatErrorf("not a position stream")
	}
	p, err := s.Vec3(v)
	if err != nil {
		return nil, err
	}
	if scale := s.PositionScale(); scale > FloatEpsilon {
		p = p.Scale(scale)
	}
	return p, nil
}

// TexCoord evaluates a texture coordinate stream with its tiling applied.
func (s *StreamAttribute) TexCoord(v int) (*geom.Vector2, error) {
	uv, err := s.Vec2(v)
	if err != nil {
		return nil, err
	}
	t := s.Tiling()
	return &geom.Vector2{X: uv.X * t.X, Y: uv.Y * t.Y}, nil
}
