package amf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/binzume/apexconv/geom"
)

func newStream(u Usage, f Format, data []byte) *StreamAttribute {
	return &StreamAttribute{Usage: u, Format: f, StreamStride: f.Size(), data: data}
}

func floats(v ...float32) []byte {
	var b []byte
	for _, f := range v {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func TestPositionScale(t *testing.T) {
	const eps = 0.0001
	data := floats(1, 2, 3, -4, 5, 0.5)
	plain := newStream(UsagePosition, FormatR32G32B32Float, data)
	scaled := newStream(UsagePosition, FormatR32G32B32Float, data)
	binary.LittleEndian.PutUint32(scaled.PackingData[:], math.Float32bits(0.25))

	for v := 0; v < 2; v++ {
		p, err := plain.Position(v)
		if err != nil {
			t.Fatal(err)
		}
		s, err := scaled.Position(v)
		if err != nil {
			t.Fatal(err)
		}
		const g = 145
		a := geom.NewCorrectionMatrix4(g).ApplyTo(s)
		b := geom.NewCorrectionMatrix4(0.25 * g).ApplyTo(p)
		if a.Sub(b).Len() > eps {
			t.Error("scaled position mismatch", v, a, b)
		}
	}

	tiny := newStream(UsagePosition, FormatR32G32B32Float, data)
	binary.LittleEndian.PutUint32(tiny.PackingData[:], math.Float32bits(FloatEpsilon/2))
	p, _ := tiny.Position(0)
	if *p != *geom.NewVector3(1, 2, 3) {
		t.Error("scale below epsilon must be ignored", p)
	}
}

func TestTexCoordTiling(t *testing.T) {
	s := newStream(UsageTextureCoordinate, FormatR32G32Float, floats(0.5, 0.25))
	uv, err := s.TexCoord(0)
	if err != nil {
		t.Fatal(err)
	}
	if *uv != *geom.NewVector2(0.5, 0.25) {
		t.Error("default tiling should be (1,1)", uv)
	}

	binary.LittleEndian.PutUint32(s.PackingData[0:], math.Float32bits(2))
	binary.LittleEndian.PutUint32(s.PackingData[4:], math.Float32bits(4))
	uv, _ = s.TexCoord(0)
	if *uv != *geom.NewVector2(1, 1) {
		t.Error("tiling (2,4)", uv)
	}
}

func TestFormats(t *testing.T) {
	const eps = 0.001

	s := newStream(UsageColor, FormatR8G8B8A8Unorm, []byte{0, 255, 51, 102})
	c, err := s.Vec4(0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Sub(geom.NewVector4(0, 1, 0.2, 0.4)).Len() > eps {
		t.Error("unorm8", c)
	}

	n := newStream(UsageNormal, FormatR16G16B16Snorm, []byte{0xff, 0x7f, 0x01, 0x80, 0, 0})
	v, _ := n.Vec3(0)
	if v.Sub(geom.NewVector3(1, -1, 0)).Len() > eps {
		t.Error("snorm16", v)
	}

	// 0.5 in half precision is 0x3800.
	h := newStream(UsageTextureCoordinate, FormatR16G16Float, []byte{0x00, 0x38, 0x00, 0x3c})
	uv, _ := h.Vec2(0)
	if *uv != *geom.NewVector2(0.5, 1) {
		t.Error("half", uv)
	}

	packed := newStream(UsageColor, FormatR32UnitUnsignedVecAsFloat, floats(0.5))
	p, _ := packed.Vec3(0)
	if p.Sub(geom.NewVector3(0.5, 0, 0)).Len() > eps {
		t.Error("unit unsigned vec", p)
	}
	signed := newStream(UsageNormal, FormatR32UnitVecAsFloat, floats(0.5))
	p, _ = signed.Vec3(0)
	if p.Sub(geom.NewVector3(0, -1, -1)).Len() > eps {
		t.Error("unit vec", p)
	}

	rgb10 := newStream(UsageNormal, FormatR10G10B10A2Unorm, []byte{0xff, 0x03, 0, 0xc0})
	p, _ = rgb10.Vec3(0)
	if p.Sub(geom.NewVector3(1, 0, 0)).Len() > eps {
		t.Error("r10g10b10a2", p)
	}

	// 1.0, 0.5 and 2.0 packed as 11, 11 and 10 bit floats.
	rgb11 := newStream(UsageNormal, FormatR11G11B10Float, []byte{0xc0, 0x03, 0x1c, 0x80})
	p, err = rgb11.Vec3(0)
	if err != nil || *p != *geom.NewVector3(1, 0.5, 2) {
		t.Error("r11g11b10", p, err)
	}
}

func TestBoneIndices(t *testing.T) {
	s := newStream(UsageBoneIndex, FormatR8G8B8A8Uint, []byte{1, 0, 3, 2, 7, 7, 7, 7})
	idx, err := s.Indices4(0)
	if err != nil || idx != [4]int{1, 0, 3, 2} {
		t.Error("Indices4", idx, err)
	}
	i, _ := s.Index(1)
	if i != 7 {
		t.Error("Index", i)
	}
	if _, err := s.Index(2); err == nil {
		t.Error("vertex out of range must fail")
	}
}

func TestUsageMismatch(t *testing.T) {
	s := newStream(UsageBoneWeight, FormatR8G8B8A8Unorm, []byte{1, 2, 3, 4})
	if _, err := s.Vec2(0); err == nil {
		t.Error("bone weights cannot evaluate as float2")
	} else if _, ok := err.(*FormatError); !ok {
		t.Error("expected *FormatError", err)
	}
	if _, err := s.Indices4(0); err == nil {
		t.Error("bone weights cannot evaluate as indices")
	}

	bad := newStream(UsageColor, Format(0xee), []byte{1, 2, 3, 4})
	if _, err := bad.Vec3(0); err == nil {
		t.Error("unsupported format must fail")
	}
}
