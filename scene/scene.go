// Package scene is an in-memory 3D authoring host: a node graph with layers,
// meshes, skin and morph modifiers, materials and texture map graphs.
package scene

// Capabilities are optional host subsystems an import may depend on.
type Capabilities struct {
	PhysicalMaterials bool
	ColorVars         bool
}

type Scene struct {
	Capabilities
	// TextureRoot enables reading bitmap headers when not empty.
	TextureRoot string
	Listener    *Listener

	nodes   []*Node
	layers  []*Layer
	bitmaps *bitmapCache
}

func NewScene() *Scene {
	return &Scene{
		Capabilities: Capabilities{PhysicalMaterials: true, ColorVars: true},
		Listener:     NewListener(nil),
	}
}

type Layer struct {
	Name  string
	Nodes []*Node
}

func (l *Layer) AddNode(n *Node) {
	if n.Layer == l {
		return
	}
	if n.Layer != nil {
		n.Layer.remove(n)
	}
	n.Layer = l
	l.Nodes = append(l.Nodes, n)
}

func (l *Layer) remove(n *Node) {
	for i, c := range l.Nodes {
		if c == n {
			l.Nodes = append(l.Nodes[:i], l.Nodes[i+1:]...)
			return
		}
	}
}

// CreateNode adds an empty root node.
func (s *Scene) CreateNode(name string) *Node {
	n := newNode(name)
	s.nodes = append(s.nodes, n)
	return n
}

// CreateHelper adds a dummy node that carries no geometry.
func (s *Scene) CreateHelper(name string) *Node {
	n := s.CreateNode(name)
	n.IsHelper = true
	return n
}

// FindNode returns the first node named name, or nil.
func (s *Scene) FindNode(name string) *Node {
	for _, n := range s.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Nodes returns every node in creation order.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// EnumTree visits every node depth first from the roots. Returning false from fn
// skips the children of that node.
func (s *Scene) EnumTree(fn func(n *Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, n := range s.nodes {
		if n.parent == nil {
			walk(n)
		}
	}
}

func (s *Scene) FindLayer(name string) *Layer {
	for _, l := range s.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// GetLayer returns the layer named name, creating it when missing.
func (s *Scene) GetLayer(name string) *Layer {
	if l := s.FindLayer(name); l != nil {
		return l
	}
	l := &Layer{Name: name}
	s.layers = append(s.layers, l)
	return l
}

func (s *Scene) Layers() []*Layer {
	return s.layers
}
