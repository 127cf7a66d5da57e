package adf_test

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/binzume/apexconv/adf"
	"github.com/binzume/apexconv/adf/adftest"
	"github.com/pkg/errors"
)

var (
	vector3 = adftest.Struct("Vector3", adftest.M("x", adftest.Float), adftest.M("y", adftest.Float), adftest.M("z", adftest.Float))
	flags   = adftest.BitField(adftest.Uint32, 1)
	mode    = adftest.Enum("Mode", adf.EnumMember{Name: "Off", Value: 0}, adf.EnumMember{Name: "On", Value: 1})
	params  = adftest.Struct("Params",
		adftest.M("doubleSided", flags),
		adftest.M("alphaTest", flags),
		adftest.M("tiling", adftest.Float),
	)
	record = adftest.Struct("Record",
		adftest.M("id", adftest.Uint32),
		adftest.M("offset", adftest.Int16),
		adftest.M("scale", adftest.Float),
		adftest.M("path", adftest.String),
		adftest.M("name", adftest.StringHash),
		adftest.M("data", adftest.ArrayOf(adftest.Uint8)),
		adftest.M("points", adftest.ArrayOf(vector3)),
		adftest.M("slots", adftest.InlineArrayOf(adftest.Int8, 4)),
		adftest.M("mode", mode),
		adftest.M("origin", adftest.PointerTo(vector3)),
		adftest.M("attributes", adftest.Deferred),
	)
)

func buildRecord(t *testing.T) *adf.Archive {
	b := adftest.NewBuilder()
	b.Comment = "test archive"
	b.Add("rec", record, adftest.Fields{
		"id":     7,
		"offset": -3,
		"scale":  0.5,
		"path":   "models/car.meshc",
		"name":   "body",
		"data":   []byte{1, 2, 250},
		"points": []interface{}{
			adftest.Fields{"x": 1, "y": 2, "z": 3},
			adftest.Fields{"x": -1, "y": -2, "z": -3},
		},
		"slots":      []int8{0, 1, -1, 3},
		"mode":       1,
		"origin":     adftest.Fields{"x": 9},
		"attributes": adftest.Defer(params, adftest.Fields{"alphaTest": true, "tiling": 2}),
	})
	a, err := b.Archive()
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestDecodeRecord(t *testing.T) {
	a := buildRecord(t)
	if a.Comment != "test archive" {
		t.Error("comment:", a.Comment)
	}

	v, err := a.FindInstance(adf.Hash("Record"))
	if err != nil {
		t.Fatal(err)
	}
	if v == nil {
		t.Fatal("Record not found")
	}
	if v.TypeName() != "Record" {
		t.Error("TypeName:", v.TypeName())
	}
	if v.Field("id").Uint() != 7 || v.Field("offset").Int() != -3 || v.Field("scale").Float() != 0.5 {
		t.Error("scalars:", v.Field("id").Uint(), v.Field("offset").Int(), v.Field("scale").Float())
	}
	if v.Field("path").String() != "models/car.meshc" {
		t.Error("path:", v.Field("path").String())
	}
	if v.Field("name").String() != "body" || v.Field("name").Hash() != uint64(adf.Hash("body")) {
		t.Error("name:", v.Field("name").String(), v.Field("name").Hash())
	}
	if !bytes.Equal(v.Field("data").Bytes(), []byte{1, 2, 250}) {
		t.Error("data:", v.Field("data").Bytes())
	}
	if v.Field("points").Len() != 2 || v.Field("points").Index(1).Field("z").Float() != -3 {
		t.Error("points:", v.Field("points").Len())
	}
	slots := v.Field("slots").Ints()
	if len(slots) != 4 || slots[2] != -1 || slots[3] != 3 {
		t.Error("slots:", slots)
	}
	if v.Field("mode").String() != "On" {
		t.Error("mode:", v.Field("mode").String())
	}
	if v.Field("origin").Field("x").Float() != 9 {
		t.Error("origin:", v.Field("origin").Field("x").Float())
	}

	attr := v.Field("attributes")
	if attr.TypeHash() != adf.Hash("Params") {
		t.Errorf("attributes type: %#x", attr.TypeHash())
	}
	if attr.Bool("doubleSided") || !attr.Bool("alphaTest") || attr.Field("tiling").Float() != 2 {
		t.Error("bitfields:", attr.Bool("doubleSided"), attr.Bool("alphaTest"))
	}
}

func TestNilValue(t *testing.T) {
	var v *adf.Value
	if v.Field("a").Index(3).Field("b").Uint() != 0 || v.Len() != 0 || v.String() != "" || v.Bool("x") {
		t.Error("nil value must return zero values")
	}
}

func TestFindMissingInstance(t *testing.T) {
	a := buildRecord(t)
	v, err := a.FindInstance(adf.Hash("Missing"))
	if v != nil || err != nil {
		t.Error("missing instance should be (nil, nil)", v, err)
	}
}

func TestBadArchive(t *testing.T) {
	data := []byte("not an archive at all, just some bytes padded out to header size.......")
	if _, err := adf.Read(bytes.NewReader(data), int64(len(data))); errors.Cause(err) != adf.ErrBadMagic {
		t.Error("expected ErrBadMagic:", err)
	}

	b := adftest.NewBuilder()
	b.Add("rec", record, adftest.Fields{"id": 1})
	full := b.Bytes()
	short := full[:len(full)-40]
	if _, err := adf.Read(bytes.NewReader(short), int64(len(short))); !adf.IsFormatError(err) {
		t.Error("expected FormatError for truncated archive:", err)
	}

	full[4] = 3
	if _, err := adf.Read(bytes.NewReader(full), int64(len(full))); errors.Cause(err) != adf.ErrUnsupportedVersion {
		t.Error("expected ErrUnsupportedVersion:", err)
	}
}

func TestHugeTableCount(t *testing.T) {
	header := func(field int, count uint32) []byte {
		data := make([]byte, 72)
		binary.LittleEndian.PutUint32(data[0:], adf.Magic)
		binary.LittleEndian.PutUint32(data[4:], adf.Version)
		binary.LittleEndian.PutUint32(data[8+field*8:], count)
		binary.LittleEndian.PutUint32(data[12+field*8:], 64)
		binary.LittleEndian.PutUint32(data[40:], 72)
		return data
	}
	// instances, typedefs, string hashes, names
	for field, count := range []uint32{0x0aaaaaab, 0x06666667, 0xe0000001, 0xffffffff} {
		data := header(field, count)
		if _, err := adf.Read(bytes.NewReader(data), int64(len(data))); !adf.IsFormatError(err) {
			t.Errorf("table %d with count 0x%x: expected FormatError, got %v", field, count, err)
		}
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.modelc")
	b := adftest.NewBuilder()
	b.Add("rec", record, adftest.Fields{"id": 42})
	if err := b.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	a, err := adf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	v, err := a.FindInstance(adf.Hash("Record"))
	if err != nil || v.Field("id").Uint() != 42 {
		t.Error("Open/FindInstance:", err, v.Field("id").Uint())
	}

	if _, err := adf.Open(filepath.Join(t.TempDir(), "missing.rbm")); err == nil {
		t.Error("Open of a missing file should fail")
	}
}
