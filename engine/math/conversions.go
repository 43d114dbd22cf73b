package math

import m "math"

// Euler convention: intrinsic yaw about Y, then pitch about the rotated X,
// then roll about the twice-rotated Z, i.e. q = qY(yaw) * qX(pitch) * qZ(roll).
// Positive yaw turns +Z toward +X, positive pitch turns +Z toward -Y and
// positive roll turns +Y toward -X.

const orthonormalTolerance = 1e-6

/**
 * @brief Creates a rotation matrix from the given quaternion.
 *
 * @return A row-major 3x3 rotation matrix. The quaternion is expected to be unit.
 */
func (q Quaternion) ToRotationMatrix() Mat3 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat3{
		1.0 - 2.0*y*y - 2.0*z*z, 2.0*x*y - 2.0*z*w, 2.0*x*z + 2.0*y*w,
		2.0*x*y + 2.0*z*w, 1.0 - 2.0*x*x - 2.0*z*z, 2.0*y*z - 2.0*x*w,
		2.0*x*z - 2.0*y*w, 2.0*y*z + 2.0*x*w, 1.0 - 2.0*x*x - 2.0*y*y,
	}
}

/**
 * @brief Creates a unit quaternion from a row-major rotation matrix.
 *
 * @return The quaternion, or InvalidMatrix when 1+trace is negative or the
 * matrix is not a proper rotation (orthonormal, determinant +1).
 */
func NewQuatFromRotationMatrix(mat Mat3) (Quaternion, error) {
	m00, m01, m02 := mat[0], mat[1], mat[2]
	m10, m11, m12 := mat[3], mat[4], mat[5]
	m20, m21, m22 := mat[6], mat[7], mat[8]

	// Half turns land on t == 0 up to rounding.
	t := 1.0 + m00 + m11 + m22
	if !(t >= -orthonormalTolerance) {
		return Quaternion{}, InvalidMatrix.New("1+trace is %g", t)
	}
	if err := checkRotationMatrix(mat); err != nil {
		return Quaternion{}, err
	}

	var q Quaternion
	switch {
	case t > 1e-6:
		w := m.Sqrt(t) / 2.0
		q = Quaternion{
			X: (m21 - m12) / (4.0 * w),
			Y: (m02 - m20) / (4.0 * w),
			Z: (m10 - m01) / (4.0 * w),
			W: w,
		}
	case m00 >= m11 && m00 >= m22:
		s := m.Sqrt(1.0+m00-m11-m22) * 2.0
		q = Quaternion{X: s / 4.0, Y: (m01 + m10) / s, Z: (m02 + m20) / s, W: (m21 - m12) / s}
	case m11 >= m22:
		s := m.Sqrt(1.0+m11-m00-m22) * 2.0
		q = Quaternion{X: (m01 + m10) / s, Y: s / 4.0, Z: (m12 + m21) / s, W: (m02 - m20) / s}
	default:
		s := m.Sqrt(1.0+m22-m00-m11) * 2.0
		q = Quaternion{X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: s / 4.0, W: (m10 - m01) / s}
	}
	return q.Normalize()
}

func checkRotationMatrix(mat Mat3) error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := mat[i*3]*mat[j*3] + mat[i*3+1]*mat[j*3+1] + mat[i*3+2]*mat[j*3+2]
			want := 0.0
			if i == j {
				want = 1.0
			}
			if !(m.Abs(dot-want) <= orthonormalTolerance) {
				return InvalidMatrix.New("rows %d and %d are not orthonormal (dot %g)", i, j, dot)
			}
		}
	}
	det := mat[0]*(mat[4]*mat[8]-mat[5]*mat[7]) -
		mat[1]*(mat[3]*mat[8]-mat[5]*mat[6]) +
		mat[2]*(mat[3]*mat[7]-mat[4]*mat[6])
	if m.Abs(det-1.0) > orthonormalTolerance {
		return InvalidMatrix.New("determinant is %g, matrix is a reflection", det)
	}
	return nil
}

/**
 * @brief Creates a unit quaternion from intrinsic yaw(Y), pitch(X), roll(Z) angles in radians.
 */
func NewQuatFromEuler(yaw, pitch, roll float64) Quaternion {
	return quatAboutUnitAxis(NewVec3Up(), yaw).
		Mul(quatAboutUnitAxis(NewVec3Right(), pitch)).
		Mul(quatAboutUnitAxis(NewVec3Forward(), roll))
}

/**
 * @brief Returns the intrinsic yaw(Y), pitch(X), roll(Z) angles of a unit quaternion.
 * Pitch is in [-pi/2, pi/2]; at exactly +-pi/2 yaw and roll are not unique.
 */
func (q Quaternion) ToEuler() (yaw, pitch, roll float64) {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	pitch = m.Asin(Clamp(2.0*(w*x-y*z), -1.0, 1.0))
	yaw = m.Atan2(2.0*(x*z+w*y), 1.0-2.0*(x*x+y*y))
	roll = m.Atan2(2.0*(x*y+w*z), 1.0-2.0*(x*x+z*z))
	return yaw, pitch, roll
}

/**
 * @brief Returns the rotation axis and angle (radians, in [0, 2pi]) of a unit quaternion.
 * The identity rotation reports the +X axis and a zero angle.
 */
func (q Quaternion) ToAxisAngle() (Vec3, float64) {
	w := Clamp(q.W, -1.0, 1.0)
	angle := 2.0 * m.Acos(w)
	s := m.Sqrt(1.0 - w*w)
	if s < Epsilon {
		return NewVec3Right(), angle
	}
	return Vec3{q.X / s, q.Y / s, q.Z / s}, angle
}

/**
 * @brief Creates a quaternion from a rotation vector (unit axis scaled by the angle).
 */
func NewQuatFromRotationVector(v Vec3) Quaternion {
	angle := v.Length()
	if angle < Epsilon {
		return NewQuatIdentity()
	}
	return quatAboutUnitAxis(v.MulScalar(1.0/angle), angle)
}

/**
 * @brief Returns the rotation vector (axis * angle) of a unit quaternion.
 */
func (q Quaternion) ToRotationVector() Vec3 {
	axis, angle := q.ToAxisAngle()
	return axis.MulScalar(angle)
}

/**
 * @brief Creates the shortest-arc rotation taking direction from onto direction to.
 * Opposite directions rotate by pi about an axis orthogonal to from, preferring
 * one that lies in the plane orthogonal to +X.
 */
func NewQuatFromTwoVectors(from, to Vec3) (Quaternion, error) {
	u, err := from.Normalized()
	if err != nil {
		return Quaternion{}, err
	}
	v, err := to.Normalized()
	if err != nil {
		return Quaternion{}, err
	}

	d := u.Dot(v)
	if d >= 1.0-1e-12 {
		return NewQuatIdentity(), nil
	}
	if d <= -1.0+1e-12 {
		axis := NewVec3Right().Cross(u)
		if axis.Length() < 1e-6 {
			axis = NewVec3Up().Cross(u)
		}
		n, err := axis.Normalized()
		if err != nil {
			return Quaternion{}, err
		}
		return quatAboutUnitAxis(n, K_PI), nil
	}

	c := u.Cross(v)
	return Quaternion{c.X, c.Y, c.Z, 1.0 + d}.Normalize()
}
