package importer

import (
	"strconv"
	"strings"

	"github.com/binzume/apexconv/scene"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User properties written by skeleton exporters.
const (
	PropSkeleton = "hkaSkeleton"
	PropBone     = "hkaBone"
)

const (
	ragdollPrefix = "ragdoll"
	boneWireColor = 0x80ff
)

// BoneRegistry resolves numeric bone ids and part names to scene nodes, creating
// placeholder helpers for the ones the scene does not have. Resolved nodes are
// remembered until the next Reset.
type BoneRegistry struct {
	scene *scene.Scene
	lower cases.Caser

	bones []*scene.Node
	byID  map[int]*scene.Node
}

func NewBoneRegistry(s *scene.Scene) *BoneRegistry {
	r := &BoneRegistry{scene: s, lower: cases.Lower(language.Und)}
	r.Reset()
	return r
}

// Reset forgets resolved bones and rescans the scene for skeleton nodes.
func (r *BoneRegistry) Reset() {
	r.bones = nil
	r.byID = map[int]*scene.Node{}
	r.scene.EnumTree(func(n *scene.Node) bool {
		skel, ok := n.UserProp(PropSkeleton)
		if ok && !strings.HasPrefix(r.lower.String(skel), ragdollPrefix) {
			r.bones = append(r.bones, n)
		}
		return true
	})
}

// Bones returns the scanned skeleton nodes followed by created placeholders.
func (r *BoneRegistry) Bones() []*scene.Node {
	return r.bones
}

// Resolve returns the node of bone id: a skeleton node tagged with that id, else
// the node named Bone<id>, else a new placeholder of that name.
func (r *BoneRegistry) Resolve(id int) *scene.Node {
	if n, ok := r.byID[id]; ok {
		return n
	}
	var found *scene.Node
	for _, b := range r.bones {
		if v, ok := b.UserPropInt(PropBone); ok && v == id {
			found = b
			break
		}
	}
	if found == nil {
		found = r.ResolveName("Bone" + strconv.Itoa(id))
	}
	r.byID[id] = found
	return found
}

// ResolveName returns the node named name, creating a placeholder bone when
// the scene has none.
func (r *BoneRegistry) ResolveName(name string) *scene.Node {
	if n := r.scene.FindNode(name); n != nil {
		return n
	}
	n := r.scene.CreateHelper(name)
	n.BoneDisplay = true
	n.WireColor = boneWireColor
	r.bones = append(r.bones, n)
	return n
}
