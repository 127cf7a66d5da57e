package adf

import (
	"encoding/binary"
	"math"
)

const maxDepth = 64

type decoder struct {
	archive *Archive
	data    []byte
	base    int64
}

func (d *decoder) check(off uint64, n uint64) error {
	if off+n > uint64(len(d.data)) || off+n < off {
		return formatErrorf(d.base+int64(off), "read of %d bytes past end of %d byte instance", n, len(d.data))
	}
	return nil
}

func (d *decoder) uint(off uint64, size uint32) (uint64, error) {
	if err := d.check(off, uint64(size)); err != nil {
		return 0, err
	}
	b := d.data[off:]
	switch size {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	}
	return 0, formatErrorf(d.base+int64(off), "unsupported scalar size %d", size)
}

func signExtend(u uint64, size uint32) int64 {
	shift := 64 - size*8
	return int64(u<<shift) >> shift
}

func (d *decoder) zstring(off uint64) (string, error) {
	if err := d.check(off, 0); err != nil {
		return "", err
	}
	for i := off; i < uint64(len(d.data)); i++ {
		if d.data[i] == 0 {
			return string(d.data[off:i]), nil
		}
	}
	return "", formatErrorf(d.base+int64(off), "unterminated string")
}

func (d *decoder) elementSize(hash uint32) (*TypeDef, uint32, error) {
	t := d.archive.Type(hash)
	if t == nil {
		return nil, 0, formatErrorf(d.base, "unknown type 0x%08x", hash)
	}
	return t, t.Size, nil
}

func (d *decoder) decode(hash uint32, off uint64, depth int) (*Value, error) {
	if depth > maxDepth {
		return nil, formatErrorf(d.base+int64(off), "nesting too deep")
	}
	t := d.archive.Type(hash)
	if t == nil {
		return nil, formatErrorf(d.base+int64(off), "unknown type 0x%08x", hash)
	}

	switch t.Metatype {
	case MetaPrimitive, MetaBitField:
		u, err := d.uint(off, t.Size)
		if err != nil {
			return nil, err
		}
		return d.scalar(t, u), nil

	case MetaEnumeration:
		u, err := d.uint(off, t.Size)
		if err != nil {
			return nil, err
		}
		return &Value{kind: Int, typ: t, i: signExtend(u, t.Size)}, nil

	case MetaStringHash:
		size := t.Size
		if size == 0 {
			size = 4
		}
		u, err := d.uint(off, size)
		if err != nil {
			return nil, err
		}
		v := &Value{kind: Hash64, typ: t, u: u}
		v.s, _ = d.archive.LookupString(uint32(u))
		return v, nil

	case MetaString:
		ptr, err := d.uint(off, 8)
		if err != nil {
			return nil, err
		}
		v := &Value{kind: String, typ: t}
		if ptr != 0 {
			if v.s, err = d.zstring(ptr); err != nil {
				return nil, err
			}
		}
		return v, nil

	case MetaPointer:
		ptr, err := d.uint(off, 8)
		if err != nil || ptr == 0 {
			return nil, err
		}
		return d.decode(t.ElementTypeHash, ptr, depth+1)

	case MetaDeferred:
		ptr, err := d.uint(off, 8)
		if err != nil {
			return nil, err
		}
		target, err := d.uint(off+8, 4)
		if err != nil || ptr == 0 || target == 0 {
			return nil, err
		}
		return d.decode(uint32(target), ptr, depth+1)

	case MetaArray:
		ptr, err := d.uint(off, 4)
		if err != nil {
			return nil, err
		}
		count, err := d.uint(off+8, 8)
		if err != nil {
			return nil, err
		}
		return d.array(t, ptr, count, depth)

	case MetaInlineArray:
		return d.array(t, off, uint64(t.ElementLength), depth)

	case MetaStructure:
		if err := d.check(off, uint64(t.Size)); err != nil {
			return nil, err
		}
		v := &Value{kind: Struct, typ: t, fields: make([]Field, 0, len(t.Members))}
		for _, m := range t.Members {
			mv, err := d.member(m, off, depth)
			if err != nil {
				return nil, err
			}
			v.fields = append(v.fields, Field{Name: m.Name, Value: mv})
		}
		return v, nil
	}
	return nil, formatErrorf(d.base+int64(off), "unsupported metatype %s of %s", t.Metatype, t.Name)
}

func (d *decoder) member(m *Member, structOff uint64, depth int) (*Value, error) {
	t := d.archive.Type(m.TypeHash)
	if t == nil {
		return nil, formatErrorf(d.base+int64(structOff), "member %s has unknown type 0x%08x", m.Name, m.TypeHash)
	}
	if t.Metatype != MetaBitField {
		return d.decode(m.TypeHash, structOff+uint64(m.Offset), depth+1)
	}

	storage, err := d.uint(structOff+uint64(m.Offset), t.Size)
	if err != nil {
		return nil, err
	}
	width := t.ElementLength
	if width == 0 || width > 64 {
		return nil, formatErrorf(d.base+int64(structOff), "bitfield %s width %d", m.Name, width)
	}
	bits := storage >> m.BitOffset
	if width < 64 {
		bits &= 1<<width - 1
	}
	under := builtinTypes[t.ElementTypeHash]
	if under != nil && under.kind == primSigned {
		return &Value{kind: Int, typ: t, i: int64(bits<<(64-width)) >> (64 - width)}, nil
	}
	return &Value{kind: Uint, typ: t, u: bits}, nil
}

func (d *decoder) scalar(t *TypeDef, u uint64) *Value {
	switch t.kind {
	case primSigned:
		return &Value{kind: Int, typ: t, i: signExtend(u, t.Size)}
	case primFloat:
		if t.Size == 4 {
			return &Value{kind: Float, typ: t, f: float64(math.Float32frombits(uint32(u)))}
		}
		return &Value{kind: Float, typ: t, f: math.Float64frombits(u)}
	}
	return &Value{kind: Uint, typ: t, u: u}
}

func (d *decoder) array(t *TypeDef, off, count uint64, depth int) (*Value, error) {
	et, size, err := d.elementSize(t.ElementTypeHash)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &Value{kind: Array, typ: t}, nil
	}
	if size == 0 || count > uint64(len(d.data)) {
		return nil, formatErrorf(d.base+int64(off), "array %s of %d elements of size %d", t.Name, count, size)
	}
	if err := d.check(off, count*uint64(size)); err != nil {
		return nil, err
	}
	if size == 1 && et.Metatype == MetaPrimitive {
		return &Value{kind: Bytes, typ: et, bytes: d.data[off : off+count]}, nil
	}
	v := &Value{kind: Array, typ: t, elems: make([]*Value, count)}
	for i := uint64(0); i < count; i++ {
		e, err := d.decode(t.ElementTypeHash, off+i*uint64(size), depth+1)
		if err != nil {
			return nil, err
		}
		v.elems[i] = e
	}
	return v, nil
}
