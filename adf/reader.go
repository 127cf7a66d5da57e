package adf

import (
	"encoding/binary"
	"io"
)

type positionReader struct {
	r        io.ReadSeeker
	position int64
}

func (r *positionReader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	r.position += int64(n)
	return n, err
}

func (r *positionReader) SeekTo(pos int64) error {
	_, err := r.r.Seek(pos, io.SeekStart)
	if err == nil {
		r.position = pos
	}
	return err
}

// binaryParser keeps the first error and turns every later read into a no-op.
type binaryParser struct {
	r   *positionReader
	err error
}

func newBinaryParser(r io.ReaderAt, size int64) *binaryParser {
	return &binaryParser{r: &positionReader{r: io.NewSectionReader(r, 0, size)}}
}

func (p *binaryParser) read(v interface{}) error {
	if p.err == nil {
		p.err = binary.Read(p.r, binary.LittleEndian, v)
	}
	return p.err
}

func (p *binaryParser) seek(pos uint32) {
	if p.err == nil {
		p.err = p.r.SeekTo(int64(pos))
	}
}

func (p *binaryParser) readUint8() uint8 {
	var v uint8
	p.read(&v)
	return v
}

func (p *binaryParser) readInt32() int32 {
	var v int32
	p.read(&v)
	return v
}

func (p *binaryParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

func (p *binaryParser) readUint64() uint64 {
	var v uint64
	p.read(&v)
	return v
}

func (p *binaryParser) readBytes(n int) []byte {
	b := make([]byte, n)
	p.read(b)
	return b
}

// readZString reads a NUL terminated string.
func (p *binaryParser) readZString() string {
	var buf []byte
	for p.err == nil {
		c := p.readUint8()
		if c == 0 || p.err != nil {
			break
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// failure converts a sticky read error into a FormatError at the current position.
func (p *binaryParser) failure(what string) error {
	if p.err == nil {
		return nil
	}
	return &FormatError{Offset: p.r.position, Msg: what + ": " + p.err.Error()}
}
