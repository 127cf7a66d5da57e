package adf

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	Magic      = 0x41444620
	Version    = 4
	headerSize = 64

	typeDefSize    = 40
	memberSize     = 32
	enumMemberSize = 12
	instanceSize   = 24
)

// Instance is one top-level record of an archive.
type Instance struct {
	Name     string
	NameHash uint32
	TypeHash uint32
	Offset   uint32
	Size     uint32

	value *Value
	err   error
}

type Archive struct {
	Comment   string
	TotalSize uint32
	Instances []*Instance

	types   map[uint32]*TypeDef
	strings map[uint32]string
	names   []string
	r       io.ReaderAt
	size    int64
	closer  io.Closer
}

// Open reads the archive at path. The file stays open until Close.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	a, err := Read(f, st.Size())
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}
	a.closer = f
	return a, nil
}

// Read parses the header, type library, string tables and instance table of an
// archive. Instance payloads are decoded on first access.
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	a := &Archive{
		types:   map[uint32]*TypeDef{},
		strings: map[uint32]string{},
		r:       r,
		size:    size,
	}
	p := newBinaryParser(r, size)

	if p.readUint32() != Magic {
		if p.err != nil {
			return nil, p.failure("read header")
		}
		return nil, ErrBadMagic
	}
	if v := p.readUint32(); v != Version {
		if p.err != nil {
			return nil, p.failure("read header")
		}
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", v)
	}
	var h struct {
		InstanceCount, InstanceOffset     uint32
		TypeDefCount, TypeDefOffset       uint32
		StringHashCount, StringHashOffset uint32
		NameTableCount, NameTableOffset   uint32
		TotalSize                         uint32
		Unknown                           [5]uint32
	}
	p.read(&h)
	a.Comment = p.readZString()
	if p.err != nil {
		return nil, p.failure("read header")
	}
	a.TotalSize = h.TotalSize

	// Minimum entry sizes: a string hash is at least a NUL and its u64 hash, a name
	// at least its length byte and a NUL.
	for _, sec := range []struct {
		offset, count uint32
		entry         int64
	}{
		{h.InstanceOffset, h.InstanceCount, instanceSize},
		{h.TypeDefOffset, h.TypeDefCount, typeDefSize},
		{h.StringHashOffset, h.StringHashCount, 9},
		{h.NameTableOffset, h.NameTableCount, 2},
	} {
		if int64(sec.offset)+int64(sec.count)*sec.entry > size {
			return nil, formatErrorf(int64(sec.offset), "table of %d entries exceeds file size %d", sec.count, size)
		}
	}

	if err := a.readNames(p, h.NameTableOffset, h.NameTableCount); err != nil {
		return nil, err
	}
	if err := a.readStringHashes(p, h.StringHashOffset, h.StringHashCount); err != nil {
		return nil, err
	}
	if err := a.readTypeDefs(p, h.TypeDefOffset, h.TypeDefCount); err != nil {
		return nil, err
	}
	if err := a.readInstances(p, h.InstanceOffset, h.InstanceCount); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Archive) name(index uint64) (string, error) {
	if index >= uint64(len(a.names)) {
		return "", formatErrorf(0, "name index %d out of range (%d names)", index, len(a.names))
	}
	return a.names[index], nil
}

func (a *Archive) readNames(p *binaryParser, offset, count uint32) error {
	if count == 0 {
		return nil
	}
	p.seek(offset)
	lengths := p.readBytes(int(count))
	for _, l := range lengths {
		s := p.readBytes(int(l) + 1)
		a.names = append(a.names, string(s[:l]))
	}
	return p.failure("read name table")
}

func (a *Archive) readStringHashes(p *binaryParser, offset, count uint32) error {
	if count == 0 {
		return nil
	}
	p.seek(offset)
	strs := make([]string, count)
	for i := range strs {
		strs[i] = p.readZString()
	}
	for i := range strs {
		a.strings[uint32(p.readUint64())] = strs[i]
	}
	return p.failure("read string hash table")
}

func (a *Archive) readTypeDefs(p *binaryParser, offset, count uint32) error {
	if count == 0 {
		return nil
	}
	p.seek(offset)
	for i := uint32(0); i < count; i++ {
		pos := p.r.position
		t := &TypeDef{}
		t.Metatype = Metatype(p.readUint32())
		t.Size = p.readUint32()
		t.Alignment = p.readUint32()
		t.TypeHash = p.readUint32()
		nameIndex := p.readUint64()
		t.Flags = p.readUint32()
		t.ElementTypeHash = p.readUint32()
		t.ElementLength = p.readUint32()
		memberCount := p.readUint32()
		if p.err != nil {
			return p.failure("read typedef")
		}
		if int64(memberCount)*memberSize > a.size {
			return formatErrorf(pos, "typedef member count %d", memberCount)
		}
		var err error
		if t.Name, err = a.name(nameIndex); err != nil {
			return err
		}

		switch t.Metatype {
		case MetaStructure:
			for m := uint32(0); m < memberCount; m++ {
				mem := &Member{}
				idx := p.readUint64()
				mem.TypeHash = p.readUint32()
				mem.Size = p.readUint32()
				off := p.readUint32()
				mem.Offset = off & 0xffffff
				mem.BitOffset = uint8(off >> 24)
				mem.DefaultType = p.readUint32()
				mem.DefaultValue = p.readUint64()
				if mem.Name, err = a.name(idx); err != nil {
					return err
				}
				t.Members = append(t.Members, mem)
			}
		case MetaEnumeration:
			for m := uint32(0); m < memberCount; m++ {
				idx := p.readUint64()
				em := &EnumMember{Value: p.readInt32()}
				if em.Name, err = a.name(idx); err != nil {
					return err
				}
				t.EnumMembers = append(t.EnumMembers, em)
			}
		default:
			if memberCount != 0 {
				return formatErrorf(pos, "%s typedef %s with %d members", t.Metatype, t.Name, memberCount)
			}
		}
		if p.err != nil {
			return p.failure("read typedef " + t.Name)
		}
		a.types[t.TypeHash] = t
	}
	return nil
}

func (a *Archive) readInstances(p *binaryParser, offset, count uint32) error {
	if count == 0 {
		return nil
	}
	p.seek(offset)
	for i := uint32(0); i < count; i++ {
		inst := &Instance{}
		inst.NameHash = p.readUint32()
		inst.TypeHash = p.readUint32()
		inst.Offset = p.readUint32()
		inst.Size = p.readUint32()
		nameIndex := p.readUint64()
		if p.err != nil {
			return p.failure("read instance table")
		}
		var err error
		if inst.Name, err = a.name(nameIndex); err != nil {
			return err
		}
		if int64(inst.Offset)+int64(inst.Size) > a.size {
			return formatErrorf(int64(inst.Offset), "instance %s exceeds file size", inst.Name)
		}
		a.Instances = append(a.Instances, inst)
	}
	return nil
}

// Close releases the underlying file, if any.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Type returns the definition of hash from the archive or the built-in set.
func (a *Archive) Type(hash uint32) *TypeDef {
	if t, ok := a.types[hash]; ok {
		return t
	}
	return builtinTypes[hash]
}

// LookupString resolves a string hash through the archive's string table.
func (a *Archive) LookupString(hash uint32) (string, bool) {
	s, ok := a.strings[hash]
	return s, ok
}

// FindInstance decodes the first instance of the given type. A missing instance is
// not an error: both results are nil.
func (a *Archive) FindInstance(typeHash uint32) (*Value, error) {
	for _, inst := range a.Instances {
		if inst.TypeHash == typeHash {
			return a.decodeInstance(inst)
		}
	}
	return nil, nil
}

// FindInstances decodes every instance of the given type, in archive order.
func (a *Archive) FindInstances(typeHash uint32) ([]*Value, error) {
	var values []*Value
	for _, inst := range a.Instances {
		if inst.TypeHash != typeHash {
			continue
		}
		v, err := a.decodeInstance(inst)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (a *Archive) decodeInstance(inst *Instance) (*Value, error) {
	if inst.value != nil || inst.err != nil {
		return inst.value, inst.err
	}
	payload := make([]byte, inst.Size)
	if n, err := a.r.ReadAt(payload, int64(inst.Offset)); n < len(payload) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		inst.err = errors.Wrapf(err, "adf: read instance %s", inst.Name)
		return nil, inst.err
	}
	d := &decoder{archive: a, data: payload, base: int64(inst.Offset)}
	inst.value, inst.err = d.decode(inst.TypeHash, 0, 0)
	if inst.err != nil {
		inst.err = errors.Wrapf(inst.err, "adf: decode instance %s", inst.Name)
	}
	return inst.value, inst.err
}
