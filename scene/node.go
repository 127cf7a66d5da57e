package scene

import (
	"sort"
	"strconv"

	"github.com/binzume/apexconv/geom"
)

type Node struct {
	Name        string
	Transform   *geom.Matrix4
	WireColor   uint32
	BoneDisplay bool
	IsHelper    bool

	Mesh     *Mesh
	Skin     *Skin
	Morph    *Morph
	Material Mtl
	Layer    *Layer

	parent   *Node
	children []*Node
	props    map[string]string
}

func newNode(name string) *Node {
	return &Node{Name: name, Transform: geom.NewMatrix4(), props: map[string]string{}}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// AttachChild moves c under n.
func (n *Node) AttachChild(c *Node) {
	if c == n || c.parent == n {
		return
	}
	if p := c.parent; p != nil {
		for i, o := range p.children {
			if o == c {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	c.parent = n
	n.children = append(n.children, c)
}

// AttachChildKeepWorld moves c under n and rewrites its transform so the world
// transform of c does not change.
func (n *Node) AttachChildKeepWorld(c *Node) {
	world := c.WorldTransform()
	n.AttachChild(c)
	c.Transform = n.WorldTransform().Inverse().Mul(world)
}

// WorldTransform returns the node transform composed with all its parents.
func (n *Node) WorldTransform() *geom.Matrix4 {
	m := n.Transform.Clone()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.Mul(m)
	}
	return m
}

func (n *Node) SetUserProp(key, value string) {
	n.props[key] = value
}

func (n *Node) SetUserPropInt(key string, value int) {
	n.props[key] = strconv.Itoa(value)
}

func (n *Node) UserProp(key string) (string, bool) {
	v, ok := n.props[key]
	return v, ok
}

func (n *Node) UserPropInt(key string) (int, bool) {
	v, ok := n.props[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	return i, err == nil
}

func (n *Node) UserPropKeys() []string {
	keys := make([]string, 0, len(n.props))
	for k := range n.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
