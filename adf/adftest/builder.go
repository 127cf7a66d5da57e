package adftest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"math"
	"reflect"

	"github.com/binzume/apexconv/adf"
)

// Fields is the value of a structure. Missing members are zero.
type Fields map[string]interface{}

// Hash is a string-hash value written without a string table entry.
type Hash uint32

// DeferredValue is the target of a deferred member.
type DeferredValue struct {
	Type  *Type
	Value Fields
}

func Defer(t *Type, v Fields) *DeferredValue {
	return &DeferredValue{Type: t, Value: v}
}

type instance struct {
	name    string
	typ     *Type
	payload []byte
}

// Builder collects instances and writes an archive. Value/type mismatches are
// programming errors in the calling test and panic.
type Builder struct {
	Comment string

	types      []*Type
	typeByHash map[uint32]*Type
	strings    []string
	stringSet  map[string]bool
	instances  []*instance
}

func NewBuilder() *Builder {
	return &Builder{typeByHash: map[uint32]*Type{}, stringSet: map[string]bool{}}
}

// AddString registers s in the string-hash table and returns its hash.
func (b *Builder) AddString(s string) uint32 {
	if !b.stringSet[s] {
		b.stringSet[s] = true
		b.strings = append(b.strings, s)
	}
	return adf.Hash(s)
}

func (b *Builder) register(t *Type) {
	if t == nil || t.builtin {
		return
	}
	if _, ok := b.typeByHash[t.Hash]; ok {
		return
	}
	b.typeByHash[t.Hash] = t
	b.types = append(b.types, t)
	b.register(t.Elem)
	for _, m := range t.Members {
		b.register(m.Type)
	}
}

// Add appends an instance named name of type t.
func (b *Builder) Add(name string, t *Type, v Fields) {
	b.register(t)
	e := &encoder{b: b}
	off := e.alloc(t.Size, t.Align)
	e.put(t, off, v)
	b.instances = append(b.instances, &instance{name: name, typ: t, payload: e.buf})
}

type encoder struct {
	b   *Builder
	buf []byte
}

func (e *encoder) alloc(size, a uint32) uint32 {
	off := align(uint32(len(e.buf)), a)
	for uint32(len(e.buf)) < off+size {
		e.buf = append(e.buf, 0)
	}
	return off
}

func (e *encoder) putUint(off uint32, size uint32, v uint64) {
	b := e.buf[off : off+size]
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	default:
		panic(fmt.Sprintf("adftest: scalar size %d", size))
	}
}

func (e *encoder) getUint(off uint32, size uint32) uint64 {
	b := e.buf[off : off+size]
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

func toFloat(v interface{}) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	}
	panic(fmt.Sprintf("adftest: %T is not a number", v))
}

func toUint(v interface{}) uint64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return uint64(int64(rv.Float()))
	}
	panic(fmt.Sprintf("adftest: %T is not an integer", v))
}

func (e *encoder) put(t *Type, off uint32, v interface{}) {
	if v == nil {
		return
	}
	e.b.register(t)
	switch t.Meta {
	case adf.MetaPrimitive:
		if t.float {
			if t.Size == 4 {
				e.putUint(off, 4, uint64(math.Float32bits(float32(toFloat(v)))))
			} else {
				e.putUint(off, 8, math.Float64bits(toFloat(v)))
			}
			return
		}
		e.putUint(off, t.Size, toUint(v))

	case adf.MetaEnumeration, adf.MetaBitField:
		e.putUint(off, t.Size, toUint(v))

	case adf.MetaStringHash:
		switch h := v.(type) {
		case string:
			if h != "" {
				e.putUint(off, t.Size, uint64(e.b.AddString(h)))
			}
		case Hash:
			e.putUint(off, t.Size, uint64(h))
		default:
			panic(fmt.Sprintf("adftest: %T for string hash", v))
		}

	case adf.MetaString:
		s := v.(string)
		p := e.alloc(uint32(len(s))+1, 1)
		copy(e.buf[p:], s)
		e.putUint(off, 8, uint64(p))

	case adf.MetaPointer:
		p := e.alloc(t.Elem.Size, t.Elem.Align)
		e.put(t.Elem, p, v)
		e.putUint(off, 8, uint64(p))

	case adf.MetaDeferred:
		d := v.(*DeferredValue)
		if d == nil {
			return
		}
		e.b.register(d.Type)
		p := e.alloc(d.Type.Size, d.Type.Align)
		e.put(d.Type, p, d.Value)
		e.putUint(off, 8, uint64(p))
		e.putUint(off+8, 4, uint64(d.Type.Hash))

	case adf.MetaArray:
		rv := reflect.ValueOf(v)
		n := uint32(rv.Len())
		if n == 0 {
			return
		}
		a := t.Elem.Align
		if a < 4 {
			a = 4
		}
		p := e.alloc(n*t.Elem.Size, a)
		for i := uint32(0); i < n; i++ {
			e.put(t.Elem, p+i*t.Elem.Size, rv.Index(int(i)).Interface())
		}
		e.putUint(off, 4, uint64(p))
		e.putUint(off+8, 8, uint64(n))

	case adf.MetaInlineArray:
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len() && i < int(t.Length); i++ {
			e.put(t.Elem, off+uint32(i)*t.Elem.Size, rv.Index(i).Interface())
		}

	case adf.MetaStructure:
		fields, ok := v.(Fields)
		if !ok {
			panic(fmt.Sprintf("adftest: %T for structure %s", v, t.Name))
		}
		for name := range fields {
			if !t.hasMember(name) {
				panic(fmt.Sprintf("adftest: %s has no member %s", t.Name, name))
			}
		}
		for _, m := range t.Members {
			mv, ok := fields[m.Name]
			if !ok || mv == nil {
				continue
			}
			if m.Type.Meta == adf.MetaBitField {
				mask := uint64(1)<<m.Type.Length - 1
				cur := e.getUint(off+m.offset, m.Type.Size)
				cur |= (toUint(mv) & mask) << m.bitOffset
				e.putUint(off+m.offset, m.Type.Size, cur)
				continue
			}
			e.put(m.Type, off+m.offset, mv)
		}
	default:
		panic(fmt.Sprintf("adftest: metatype %s", t.Meta))
	}
}

func (t *Type) hasMember(name string) bool {
	for _, m := range t.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

type nameTable struct {
	names []string
	index map[string]uint64
}

func (n *nameTable) add(s string) uint64 {
	if i, ok := n.index[s]; ok {
		return i
	}
	if len(s) > 255 {
		panic("adftest: name too long: " + s)
	}
	i := uint64(len(n.names))
	n.index[s] = i
	n.names = append(n.names, s)
	return i
}

// Bytes writes the archive.
func (b *Builder) Bytes() []byte {
	names := &nameTable{index: map[string]uint64{}}
	w := &bytes.Buffer{}
	le := func(v interface{}) { binary.Write(w, binary.LittleEndian, v) }
	pad := func(a int) {
		for w.Len()%a != 0 {
			w.WriteByte(0)
		}
	}

	w.Write(make([]byte, 64))
	w.WriteString(b.Comment)
	w.WriteByte(0)

	offsets := make([]uint32, len(b.instances))
	for i, inst := range b.instances {
		pad(16)
		offsets[i] = uint32(w.Len())
		w.Write(inst.payload)
	}

	pad(8)
	instanceOffset := uint32(w.Len())
	for i, inst := range b.instances {
		le(adf.Hash(inst.name))
		le(inst.typ.Hash)
		le(offsets[i])
		le(uint32(len(inst.payload)))
		le(names.add(inst.name))
	}

	typedefOffset := uint32(w.Len())
	for _, t := range b.types {
		var elemHash uint32
		if t.Elem != nil {
			elemHash = t.Elem.Hash
		}
		le(uint32(t.Meta))
		le(t.Size)
		le(t.Align)
		le(t.Hash)
		le(names.add(t.Name))
		le(uint32(0))
		le(elemHash)
		le(t.Length)
		switch t.Meta {
		case adf.MetaStructure:
			le(uint32(len(t.Members)))
			for _, m := range t.Members {
				le(names.add(m.Name))
				le(m.Type.Hash)
				le(m.Type.Size)
				le(m.offset | uint32(m.bitOffset)<<24)
				le(uint32(0))
				le(uint64(0))
			}
		case adf.MetaEnumeration:
			le(uint32(len(t.Enum)))
			for _, m := range t.Enum {
				le(names.add(m.Name))
				le(m.Value)
			}
		default:
			le(uint32(0))
		}
	}

	stringOffset := uint32(w.Len())
	for _, s := range b.strings {
		w.WriteString(s)
		w.WriteByte(0)
	}
	for _, s := range b.strings {
		le(uint64(adf.Hash(s)))
	}

	nameOffset := uint32(w.Len())
	for _, n := range names.names {
		w.WriteByte(byte(len(n)))
	}
	for _, n := range names.names {
		w.WriteString(n)
		w.WriteByte(0)
	}

	data := w.Bytes()
	h := []uint32{
		adf.Magic, adf.Version,
		uint32(len(b.instances)), instanceOffset,
		uint32(len(b.types)), typedefOffset,
		uint32(len(b.strings)), stringOffset,
		uint32(len(names.names)), nameOffset,
		uint32(len(data)),
	}
	for i, v := range h {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}
	return data
}

// Archive parses the built bytes.
func (b *Builder) Archive() (*adf.Archive, error) {
	data := b.Bytes()
	return adf.Read(bytes.NewReader(data), int64(len(data)))
}

func (b *Builder) WriteFile(path string) error {
	return ioutil.WriteFile(path, b.Bytes(), 0644)
}
