// Package rig seeds a scene with a skeleton stored in a glTF or GLB file, so
// imported meshes bind to real bones instead of placeholders.
package rig

import (
	"fmt"
	"strconv"

	"github.com/binzume/apexconv/geom"
	"github.com/binzume/apexconv/importer"
	"github.com/binzume/apexconv/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// Load reads the rig at path into s and returns the created nodes in file order.
func Load(s *scene.Scene, path string) ([]*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rig %s", path)
	}
	return Seed(s, doc), nil
}

// Seed creates a bone helper for every node of doc. The hkaSkeleton and hkaBone
// extras become user properties; a bone without a skeleton name inherits the
// one of its nearest ancestor.
func Seed(s *scene.Scene, doc *gltf.Document) []*scene.Node {
	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = "node" + strconv.Itoa(i)
		}
		b := s.CreateHelper(name)
		b.BoneDisplay = true
		b.Transform = localTransform(n)
		copyExtras(b, n.Extras)
		nodes[i] = b
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(nodes) {
				nodes[i].AttachChild(nodes[c])
			}
		}
	}
	for _, b := range nodes {
		if b.Parent() == nil {
			inheritSkeleton(b, "")
		}
	}
	return nodes
}

func localTransform(n *gltf.Node) *geom.Matrix4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		r := geom.Matrix4(m)
		return &r
	}
	return geom.NewTRSMatrix4(
		geom.NewVector3FromArray(n.TranslationOrDefault()),
		geom.NewQuaternionFromArray(n.RotationOrDefault()).Normalize(),
		geom.NewVector3FromArray(n.ScaleOrDefault()))
}

func copyExtras(b *scene.Node, extras interface{}) {
	m, ok := extras.(map[string]interface{})
	if !ok {
		return
	}
	if v, ok := m[importer.PropSkeleton]; ok {
		b.SetUserProp(importer.PropSkeleton, fmt.Sprint(v))
	}
	switch v := m[importer.PropBone].(type) {
	case float64:
		b.SetUserPropInt(importer.PropBone, int(v))
	case int:
		b.SetUserPropInt(importer.PropBone, v)
	case string:
		if id, err := strconv.Atoi(v); err == nil {
			b.SetUserPropInt(importer.PropBone, id)
		}
	}
}

func inheritSkeleton(b *scene.Node, skel string) {
	if v, ok := b.UserProp(importer.PropSkeleton); ok {
		skel = v
	} else if _, isBone := b.UserPropInt(importer.PropBone); isBone && skel != "" {
		b.SetUserProp(importer.PropSkeleton, skel)
	}
	for _, c := range b.Children() {
		inheritSkeleton(c, skel)
	}
}
