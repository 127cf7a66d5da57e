package scene

import (
	"fmt"
	"sort"

	"github.com/binzume/apexconv/geom"
)

// Map channel ids reserved for vertex colors.
const (
	MapVertexColor = 0
	MapAlpha       = -2
)

type Face struct {
	V     [3]int
	MatID int
}

// MapChannel holds per-vertex map values and per-face corner indices into them.
type MapChannel struct {
	Verts []geom.Vector3
	Faces [][3]int
}

type Mesh struct {
	Verts []geom.Vector3
	Faces []Face

	// Explicit normals, nil when the mesh uses smoothing.
	Normals     []geom.Vector3
	NormalFaces [][3]int

	maps    map[int]*MapChannel
	version int
}

func NewMesh(numVerts, numFaces int) *Mesh {
	return &Mesh{
		Verts: make([]geom.Vector3, numVerts),
		Faces: make([]Face, numFaces),
		maps:  map[int]*MapChannel{},
	}
}

// SpecifyNormals allocates explicit normals for every vertex and face corner.
func (m *Mesh) SpecifyNormals(numNormals int) {
	m.Normals = make([]geom.Vector3, numNormals)
	m.NormalFaces = make([][3]int, len(m.Faces))
}

// SetMapSupport enables map channel ch with numVerts values, replacing any
// previous contents.
func (m *Mesh) SetMapSupport(ch, numVerts int) *MapChannel {
	c := &MapChannel{
		Verts: make([]geom.Vector3, numVerts),
		Faces: make([][3]int, len(m.Faces)),
	}
	m.maps[ch] = c
	return c
}

// Map returns map channel ch, or nil when it is not supported.
func (m *Mesh) Map(ch int) *MapChannel {
	return m.maps[ch]
}

// MapChannels lists the supported channel ids in ascending order.
func (m *Mesh) MapChannels() []int {
	var r []int
	for ch := range m.maps {
		r = append(r, ch)
	}
	sort.Ints(r)
	return r
}

// Invalidate drops cached geometry and topology.
func (m *Mesh) Invalidate() {
	m.version++
}

func (m *Mesh) Version() int {
	return m.version
}

type Influence struct {
	Bone   *Node
	Weight float32
}

// Skin binds mesh vertices to bone nodes.
type Skin struct {
	Bones   []*Node
	Weights [][]Influence
}

func NewSkin(numVerts int) *Skin {
	return &Skin{Weights: make([][]Influence, numVerts)}
}

func (s *Skin) AddBone(n *Node) {
	if s.BoneIndex(n) < 0 {
		s.Bones = append(s.Bones, n)
	}
}

func (s *Skin) BoneIndex(n *Node) int {
	for i, b := range s.Bones {
		if b == n {
			return i
		}
	}
	return -1
}

// AddWeights appends influences to vertex v. Every bone must already be bound.
func (s *Skin) AddWeights(v int, bones []*Node, weights []float32) error {
	if v < 0 || v >= len(s.Weights) {
		return fmt.Errorf("skin: vertex %d out of range", v)
	}
	if len(bones) != len(weights) {
		return fmt.Errorf("skin: %d bones for %d weights", len(bones), len(weights))
	}
	for i, b := range bones {
		if s.BoneIndex(b) < 0 {
			return fmt.Errorf("skin: bone %q is not bound", b.Name)
		}
		s.Weights[v] = append(s.Weights[v], Influence{Bone: b, Weight: weights[i]})
	}
	return nil
}

type MorphChannel struct {
	Name   string
	Deltas []geom.Vector3
}

// Morph holds named per-vertex displacement channels.
type Morph struct {
	NumVerts int
	Channels []*MorphChannel
}

func NewMorph(numVerts int) *Morph {
	return &Morph{NumVerts: numVerts}
}

// Channel returns channel i, growing the channel list as needed.
func (m *Morph) Channel(i int) *MorphChannel {
	for len(m.Channels) <= i {
		m.Channels = append(m.Channels, &MorphChannel{Deltas: make([]geom.Vector3, m.NumVerts)})
	}
	return m.Channels[i]
}

// FindChannel returns the channel named name, or nil.
func (m *Morph) FindChannel(name string) *MorphChannel {
	for _, c := range m.Channels {
		if c.Name == name {
			return c
		}
	}
	return nil
}
