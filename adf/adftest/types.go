// Package adftest builds ADF archives in memory for tests.
package adftest

import (
	"fmt"

	"github.com/binzume/apexconv/adf"
)

// Type is a record type as the builder lays it out.
type Type struct {
	Name    string
	Meta    adf.Metatype
	Hash    uint32
	Size    uint32
	Align   uint32
	Elem    *Type
	Length  uint32
	Members []Member
	Enum    []adf.EnumMember

	builtin bool
	signed  bool
	float   bool
}

// Member is a structure member. Offsets are assigned by Struct.
type Member struct {
	Name string
	Type *Type

	offset    uint32
	bitOffset uint8
}

func M(name string, t *Type) Member {
	return Member{Name: name, Type: t}
}

func prim(name string, hash uint32, size uint32, signed, float bool) *Type {
	return &Type{Name: name, Meta: adf.MetaPrimitive, Hash: hash, Size: size, Align: size, builtin: true, signed: signed, float: float}
}

var (
	Uint8  = prim("uint8", adf.TypeUint8, 1, false, false)
	Int8   = prim("int8", adf.TypeInt8, 1, true, false)
	Uint16 = prim("uint16", adf.TypeUint16, 2, false, false)
	Int16  = prim("int16", adf.TypeInt16, 2, true, false)
	Uint32 = prim("uint32", adf.TypeUint32, 4, false, false)
	Int32  = prim("int32", adf.TypeInt32, 4, true, false)
	Uint64 = prim("uint64", adf.TypeUint64, 8, false, false)
	Int64  = prim("int64", adf.TypeInt64, 8, true, false)
	Float  = prim("float", adf.TypeFloat, 4, false, true)
	Double = prim("double", adf.TypeDouble, 8, false, true)

	String     = &Type{Name: "String", Meta: adf.MetaString, Hash: adf.TypeString, Size: 8, Align: 8, builtin: true}
	StringHash = &Type{Name: "StringHash", Meta: adf.MetaStringHash, Hash: adf.Hash("StringHash"), Size: 4, Align: 4}
	Deferred   = &Type{Name: "Deferred", Meta: adf.MetaDeferred, Hash: adf.Hash("Deferred"), Size: 16, Align: 8}
)

func align(v, a uint32) uint32 {
	if a <= 1 {
		return v
	}
	return (v + a - 1) / a * a
}

// Struct lays out members in order with natural alignment. Consecutive bit fields
// sharing a storage type are packed into one storage unit.
func Struct(name string, members ...Member) *Type {
	t := &Type{Name: name, Meta: adf.MetaStructure, Hash: adf.Hash(name), Align: 1}
	var cur, bitPos uint32
	var lastBits *Type
	for _, m := range members {
		mt := m.Type
		if mt.Meta == adf.MetaBitField && lastBits != nil && lastBits.Elem == mt.Elem && bitPos+mt.Length <= mt.Size*8 {
			m.offset = t.Members[len(t.Members)-1].offset
			m.bitOffset = uint8(bitPos)
			bitPos += mt.Length
			t.Members = append(t.Members, m)
			continue
		}
		lastBits = nil
		m.offset = align(cur, mt.Align)
		cur = m.offset + mt.Size
		if mt.Meta == adf.MetaBitField {
			lastBits = mt
			bitPos = mt.Length
		}
		if mt.Align > t.Align {
			t.Align = mt.Align
		}
		t.Members = append(t.Members, m)
	}
	t.Size = align(cur, t.Align)
	return t
}

func ArrayOf(elem *Type) *Type {
	name := "ARRAY:" + elem.Name
	return &Type{Name: name, Meta: adf.MetaArray, Hash: adf.Hash(name), Size: 16, Align: 8, Elem: elem}
}

func InlineArrayOf(elem *Type, n uint32) *Type {
	name := fmt.Sprintf("%s[%d]", elem.Name, n)
	return &Type{Name: name, Meta: adf.MetaInlineArray, Hash: adf.Hash(name), Size: elem.Size * n, Align: elem.Align, Elem: elem, Length: n}
}

func PointerTo(elem *Type) *Type {
	name := "POINTER:" + elem.Name
	return &Type{Name: name, Meta: adf.MetaPointer, Hash: adf.Hash(name), Size: 8, Align: 8, Elem: elem}
}

// BitField is a width-bit field stored in storage.
func BitField(storage *Type, width uint32) *Type {
	name := fmt.Sprintf("%s:%d", storage.Name, width)
	return &Type{Name: name, Meta: adf.MetaBitField, Hash: adf.Hash(name), Size: storage.Size, Align: storage.Align, Elem: storage, Length: width}
}

func Enum(name string, members ...adf.EnumMember) *Type {
	return &Type{Name: name, Meta: adf.MetaEnumeration, Hash: adf.Hash(name), Size: 4, Align: 4, Elem: Int32, Enum: members, signed: true}
}
