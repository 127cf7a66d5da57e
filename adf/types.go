package adf

type Metatype uint32

const (
	MetaPrimitive   Metatype = 0
	MetaStructure   Metatype = 1
	MetaPointer     Metatype = 2
	MetaArray       Metatype = 3
	MetaInlineArray Metatype = 4
	MetaString      Metatype = 5
	MetaBitField    Metatype = 7
	MetaEnumeration Metatype = 8
	MetaStringHash  Metatype = 9
	MetaDeferred    Metatype = 10
)

func (m Metatype) String() string {
	switch m {
	case MetaPrimitive:
		return "Primitive"
	case MetaStructure:
		return "Structure"
	case MetaPointer:
		return "Pointer"
	case MetaArray:
		return "Array"
	case MetaInlineArray:
		return "InlineArray"
	case MetaString:
		return "String"
	case MetaBitField:
		return "BitField"
	case MetaEnumeration:
		return "Enumeration"
	case MetaStringHash:
		return "StringHash"
	case MetaDeferred:
		return "Deferred"
	}
	return "Unknown"
}

// Built-in primitive type hashes. These types never appear in an archive's typedef table.
const (
	TypeUint8  uint32 = 0x0ca2821d
	TypeInt8   uint32 = 0x580d0a62
	TypeUint16 uint32 = 0x86d152bd
	TypeInt16  uint32 = 0xd13fcf93
	TypeUint32 uint32 = 0x075e4e4f
	TypeInt32  uint32 = 0x192fe633
	TypeUint64 uint32 = 0xa139e01f
	TypeInt64  uint32 = 0xaf41354f
	TypeFloat  uint32 = 0x7515a207
	TypeDouble uint32 = 0xc609f663
	TypeString uint32 = 0x8955583e
)

type primitiveKind int

const (
	primUnsigned primitiveKind = iota
	primSigned
	primFloat
)

// TypeDef describes one record type.
type TypeDef struct {
	Metatype        Metatype
	Size            uint32
	Alignment       uint32
	TypeHash        uint32
	Name            string
	Flags           uint32
	ElementTypeHash uint32
	ElementLength   uint32
	Members         []*Member
	EnumMembers     []*EnumMember

	kind primitiveKind
}

type Member struct {
	Name         string
	TypeHash     uint32
	Size         uint32
	Offset       uint32
	BitOffset    uint8
	DefaultType  uint32
	DefaultValue uint64
}

type EnumMember struct {
	Name  string
	Value int32
}

// Member returns the member named name, or nil.
func (t *TypeDef) Member(name string) *Member {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// EnumName returns the enumerator name for v.
func (t *TypeDef) EnumName(v int32) string {
	for _, m := range t.EnumMembers {
		if m.Value == v {
			return m.Name
		}
	}
	return ""
}

var builtinTypes = map[uint32]*TypeDef{}

func init() {
	add := func(name string, hash uint32, size uint32, kind primitiveKind) {
		builtinTypes[hash] = &TypeDef{Metatype: MetaPrimitive, Name: name, TypeHash: hash, Size: size, Alignment: size, kind: kind}
	}
	add("uint8", TypeUint8, 1, primUnsigned)
	add("int8", TypeInt8, 1, primSigned)
	add("uint16", TypeUint16, 2, primUnsigned)
	add("int16", TypeInt16, 2, primSigned)
	add("uint32", TypeUint32, 4, primUnsigned)
	add("int32", TypeInt32, 4, primSigned)
	add("uint64", TypeUint64, 8, primUnsigned)
	add("int64", TypeInt64, 8, primSigned)
	add("float", TypeFloat, 4, primFloat)
	add("double", TypeDouble, 8, primFloat)
	builtinTypes[TypeString] = &TypeDef{Metatype: MetaString, Name: "String", TypeHash: TypeString, Size: 8, Alignment: 8}
}

// BuiltinType returns the built-in definition for hash, or nil.
func BuiltinType(hash uint32) *TypeDef {
	return builtinTypes[hash]
}
