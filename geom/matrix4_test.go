package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMatrixMul(t *testing.T) {
	const eps = 0.000001

	m := NewTranslateMatrix4(1, 2, 3).Mul(NewScaleMatrix4(2, 2, 2))
	v := m.ApplyTo(NewVector3(1, 1, 1))
	if v.Sub(NewVector3(3, 4, 5)).Len() > eps {
		t.Error("translate*scale: ", v)
	}

	if *NewMatrix4().Mul(m) != *m {
		t.Error("identity*m != m")
	}

	d := m.ApplyToDirection(NewVector3(1, 0, 0))
	if d.Sub(NewVector3(2, 0, 0)).Len() > eps {
		t.Error("direction must ignore translation: ", d)
	}
}

func TestRotationMatrix(t *testing.T) {
	const eps = 0.00001

	// 90 degrees around Z.
	s := math32.Sqrt(0.5)
	q := NewQuaternion(0, 0, s, s)
	v := NewRotationMatrix4FromQuaternion(q).ApplyTo(NewVector3(1, 0, 0))
	if v.Sub(NewVector3(0, 1, 0)).Len() > eps {
		t.Error("rotate x around z: ", v)
	}

	m := NewTRSMatrix4(NewVector3(0, 0, 1), q, NewVector3(2, 2, 2))
	v = m.ApplyTo(NewVector3(1, 0, 0))
	if v.Sub(NewVector3(0, 2, 1)).Len() > eps {
		t.Error("TRS: ", v)
	}
}

func TestCorrectionMatrix(t *testing.T) {
	const eps = 0.00001

	v := Correct(NewVector3(1, 2, 3))
	if *v != *NewVector3(-1, 3, 2) {
		t.Error("Correct(1,2,3): ", v)
	}

	p := NewCorrectionMatrix4(145).ApplyTo(NewVector3(1, 2, 3))
	if p.Sub(NewVector3(-145, 435, 290)).Len() > eps {
		t.Error("scaled correction: ", p)
	}

	// Applying the correction twice is the identity.
	twice := CorrectionMatrix.Mul(&CorrectionMatrix)
	if *twice != *NewMatrix4() {
		t.Error("correction is not an involution: ", twice)
	}
}

func TestInverse(t *testing.T) {
	const eps = 0.0001

	m := NewTranslateMatrix4(1, 2, 3).Mul(NewCorrectionMatrix4(2))
	if p := m.Inverse().ApplyTo(NewVector3(1, 2, 3)); p.Sub(NewVector3(0, 0, 0)).Len() > eps {
		t.Error("inverse translation: ", p)
	}
	id := m.Inverse().Mul(m)
	for i, v := range id {
		if d := v - NewMatrix4()[i]; d > eps || d < -eps {
			t.Fatal("m^-1 * m: ", id)
		}
	}
	if r := (&Matrix4{}).Inverse(); *r != (Matrix4{}) {
		t.Error("singular inverse: ", r)
	}
}
