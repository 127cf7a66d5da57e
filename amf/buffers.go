package amf

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/apexconv/adf"
	"github.com/pkg/errors"
)

// Buffers holds the raw index and vertex buffers of a mesh header.
type Buffers struct {
	Index  [][]byte
	Vertex [][]byte
}

func decodeBuffers(v *adf.Value) *Buffers {
	b := &Buffers{}
	ib := v.Field("indexBuffers")
	for i := 0; i < ib.Len(); i++ {
		b.Index = append(b.Index, ib.Index(i).Field("data").Bytes())
	}
	vb := v.Field("vertexBuffers")
	for i := 0; i < vb.Len(); i++ {
		b.Vertex = append(b.Vertex, vb.Index(i).Field("data").Bytes())
	}
	return b
}

// meshFileCandidates lists files that may hold the mesh header and buffers of a
// model stored at path.
func meshFileCandidates(path, meshPath string) []string {
	dir := filepath.Dir(path)
	var r []string
	if meshPath != "" {
		p := filepath.FromSlash(meshPath)
		r = append(r, filepath.Join(dir, p), filepath.Join(dir, filepath.Base(p)))
	}
	ext := filepath.Ext(path)
	if ext != ".meshc" {
		r = append(r, strings.TrimSuffix(path, ext)+".meshc")
	}
	return r
}

// openMeshArchive opens the first existing candidate, or returns nil.
func openMeshArchive(path, meshPath string) (*adf.Archive, error) {
	if path == "" {
		return nil, nil
	}
	for _, p := range meshFileCandidates(path, meshPath) {
		if p == path {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		a, err := adf.Open(p)
		if err != nil {
			return nil, errors.Wrap(err, "amf: open mesh file")
		}
		return a, nil
	}
	return nil, nil
}
