package adf

type Kind int

const (
	Invalid Kind = iota
	Uint
	Int
	Float
	String
	Hash64
	Struct
	Array
	Bytes
)

// Field is one named member of a decoded structure.
type Field struct {
	Name  string
	Value *Value
}

// Value is a decoded instance or part of one. All accessors accept a nil receiver and
// return zero values, so lookups can be chained without checks:
//
//	v.Field("attributes").Field("flags").Bool("doubleSided")
type Value struct {
	kind Kind
	typ  *TypeDef

	u     uint64
	i     int64
	f     float64
	s     string
	bytes []byte

	fields []Field
	elems  []*Value
}

func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

func (v *Value) IsValid() bool {
	return v != nil && v.kind != Invalid
}

func (v *Value) Type() *TypeDef {
	if v == nil {
		return nil
	}
	return v.typ
}

func (v *Value) TypeHash() uint32 {
	if v == nil || v.typ == nil {
		return 0
	}
	return v.typ.TypeHash
}

func (v *Value) TypeName() string {
	if v == nil || v.typ == nil {
		return ""
	}
	return v.typ.Name
}

// Field returns the structure member named name, or nil.
func (v *Value) Field(name string) *Value {
	if v == nil {
		return nil
	}
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

func (v *Value) Fields() []Field {
	if v == nil {
		return nil
	}
	return v.fields
}

func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Bytes:
		return len(v.bytes)
	case Array:
		return len(v.elems)
	}
	return 0
}

// Index returns element i of an array, or nil when out of range.
func (v *Value) Index(i int) *Value {
	if v == nil || i < 0 || i >= v.Len() {
		return nil
	}
	if v.kind == Bytes {
		if v.typ != nil && v.typ.kind == primSigned {
			return &Value{kind: Int, typ: v.typ, i: int64(int8(v.bytes[i]))}
		}
		return &Value{kind: Uint, typ: v.typ, u: uint64(v.bytes[i])}
	}
	return v.elems[i]
}

func (v *Value) Uint() uint64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Uint, Hash64:
		return v.u
	case Int:
		return uint64(v.i)
	case Float:
		return uint64(v.f)
	}
	return 0
}

func (v *Value) Int() int64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Uint, Hash64:
		return int64(v.u)
	case Int:
		return v.i
	case Float:
		return int64(v.f)
	}
	return 0
}

func (v *Value) Float() float32 {
	return float32(v.Float64())
}

func (v *Value) Float64() float64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Uint:
		return float64(v.u)
	case Int:
		return float64(v.i)
	case Float:
		return v.f
	}
	return 0
}

// Bool reports whether the named member of a structure is non-zero. Called with no
// name it tests the value itself.
func (v *Value) Bool(name ...string) bool {
	if len(name) > 0 {
		return v.Field(name[0]).Bool()
	}
	switch v.Kind() {
	case Uint, Hash64:
		return v.u != 0
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	}
	return false
}

// String returns string contents, the resolved text of a string hash, or the
// enumerator name of an enumeration value.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	switch v.kind {
	case String, Hash64:
		return v.s
	case Int, Uint:
		if v.typ != nil && v.typ.Metatype == MetaEnumeration {
			return v.typ.EnumName(int32(v.i))
		}
	}
	return ""
}

// Hash returns the hash of a string-hash value.
func (v *Value) Hash() uint64 {
	if v == nil || v.kind != Hash64 {
		return 0
	}
	return v.u
}

// Bytes returns the raw contents of an array of 8-bit elements.
func (v *Value) Bytes() []byte {
	if v == nil || v.kind != Bytes {
		return nil
	}
	return v.bytes
}

// Floats returns the elements of a numeric array as float32.
func (v *Value) Floats() []float32 {
	n := v.Len()
	if n == 0 {
		return nil
	}
	r := make([]float32, n)
	for i := range r {
		r[i] = v.Index(i).Float()
	}
	return r
}

// Ints returns the elements of a numeric array as int.
func (v *Value) Ints() []int {
	n := v.Len()
	if n == 0 {
		return nil
	}
	r := make([]int, n)
	for i := range r {
		r[i] = int(v.Index(i).Int())
	}
	return r
}
