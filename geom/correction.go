package geom

// CorrectionMatrix converts engine space (Y up, left handed) to scene space (Z up):
// (x, y, z) -> (-x, z, y).
var CorrectionMatrix = Matrix4{
	-1, 0, 0, 0,
	0, 0, 1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// NewCorrectionMatrix4 returns CorrectionMatrix followed by a uniform scale.
func NewCorrectionMatrix4(scale Element) *Matrix4 {
	return NewScaleMatrix4(scale, scale, scale).Mul(&CorrectionMatrix)
}

// Correct converts a direction from engine space without scaling.
func Correct(v *Vector3) *Vector3 {
	return CorrectionMatrix.ApplyToDirection(v)
}
