package importer_test

import (
	"testing"

	"github.com/binzume/apexconv/importer"
)

func TestBoneRegistry(t *testing.T) {
	s := newScene()
	ragdoll := s.CreateHelper("rd")
	ragdoll.SetUserProp(importer.PropSkeleton, "RagDoll_Body")
	ragdoll.SetUserPropInt(importer.PropBone, 3)
	named := s.CreateNode("Bone8")

	r := importer.NewBoneRegistry(s)
	a := r.Resolve(5)
	if a == nil || a.Name != "Bone5" || !a.IsHelper {
		t.Fatal("placeholder", a)
	}
	if r.Resolve(5) != a {
		t.Error("resolve must be memoized")
	}
	if r.Resolve(8) != named {
		t.Error("existing node by name")
	}
	if b := r.Resolve(3); b == ragdoll || b.Name != "Bone3" {
		t.Error("ragdoll skeletons are ignored", b.Name)
	}

	tagged := s.CreateHelper("pelvis")
	tagged.SetUserProp(importer.PropSkeleton, "Body")
	tagged.SetUserPropInt(importer.PropBone, 5)
	if r.Resolve(5) != a {
		t.Error("memoized until reset")
	}
	r.Reset()
	if r.Resolve(5) != tagged {
		t.Error("reset must rescan the scene")
	}
	if len(r.Bones()) != 1 || r.Bones()[0] != tagged {
		t.Error("scanned bones", r.Bones())
	}

	if n := r.ResolveName("wheel"); n.Name != "wheel" || !n.BoneDisplay || r.ResolveName("wheel") != n {
		t.Error("ResolveName", n)
	}
}
