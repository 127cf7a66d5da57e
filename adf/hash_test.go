package adf

import "testing"

func TestHash(t *testing.T) {
	if h := Hash(""); h != 0xdeadbeef {
		t.Errorf("Hash(\"\") = %#x", h)
	}
	if h := Hash("Four score and seven years ago"); h != 0x17770551 {
		t.Errorf("Hash(Four score...) = %#x", h)
	}
	if h := HashBytes([]byte("Four score and seven years ago"), 1); h != 0xcd628161 {
		t.Errorf("HashBytes(Four score..., 1) = %#x", h)
	}
	if Hash("AmfMesh") == Hash("AmfModel") {
		t.Error("distinct names should not collide")
	}
}
