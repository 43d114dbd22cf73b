package math

import m "math"

// Multiplication order: q.Mul(r) is the Hamilton product q*r. Rotating a vector
// by q.Mul(r) applies r first and q second, so local-space composition of a
// camera orientation is orientation.Mul(delta).

/**
 * @brief Creates an identity quaternion.
 *
 * @return An identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

func NewQuat(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

/**
 * @brief Creates a unit quaternion from the given axis and angle.
 * The axis is normalized before use.
 *
 * @param axis The axis of rotation.
 * @param angle The angle of rotation in radians.
 * @return A new quaternion, or DegenerateAxis if the axis has zero length.
 */
func NewQuatFromAxisAngle(axis Vec3, angle float64) (Quaternion, error) {
	n, err := axis.Normalized()
	if err != nil {
		return Quaternion{}, DegenerateAxis.Wrap(err, "axis-angle with angle %g", angle)
	}
	s, c := m.Sincos(0.5 * angle)
	return Quaternion{s * n.X, s * n.Y, s * n.Z, c}, nil
}

// quatAboutUnitAxis skips the axis check for the fixed canonical axes.
func quatAboutUnitAxis(axis Vec3, angle float64) Quaternion {
	s, c := m.Sincos(0.5 * angle)
	return Quaternion{s * axis.X, s * axis.Y, s * axis.Z, c}
}

/**
 * @brief Returns the squared norm of the provided quaternion.
 */
func (q Quaternion) NormSquared() float64 {
	return q.X*q.X +
		q.Y*q.Y +
		q.Z*q.Z +
		q.W*q.W
}

/**
 * @brief Returns the norm of the provided quaternion.
 */
func (q Quaternion) Norm() float64 {
	return m.Sqrt(q.NormSquared())
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 *
 * @param q The quaternion to normalize.
 * @return A normalized copy, or ZeroNorm if the norm is below Epsilon or not finite.
 */
func (q Quaternion) Normalize() (Quaternion, error) {
	normal := q.Norm()
	if !(normal >= Epsilon) || m.IsInf(normal, 0) {
		return Quaternion{}, ZeroNorm.New("cannot normalize quaternion with norm %g", normal)
	}
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}, nil
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Returns the multiplicative inverse conjugate(q) / |q|^2. Equal to the
 * conjugate only for unit quaternions.
 */
func (q Quaternion) Inverse() (Quaternion, error) {
	n2 := q.NormSquared()
	if !(n2 >= Epsilon*Epsilon) || m.IsInf(n2, 0) {
		return Quaternion{}, ZeroNorm.New("cannot invert quaternion with squared norm %g", n2)
	}
	c := q.Conjugate()
	return Quaternion{c.X / n2, c.Y / n2, c.Z / n2, c.W / n2}, nil
}

/**
 * @brief Hamilton product q*other.
 *
 * @param other The right-hand quaternion, applied first when rotating vectors.
 * @return The multiplied quaternion.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

/**
 * @brief Rotates v by q using v + 2*(w*(qv x v) + qv x (qv x v)).
 * Equivalent to q * [0,v] * conjugate(q) for unit q.
 */
func (q Quaternion) Rotate(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.MulScalar(q.W).Add(uuv).MulScalar(2.0))
}

/**
 * @brief Calculates the dot product of the provided quaternions.
 */
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.X*other.X +
		q.Y*other.Y +
		q.Z*other.Z +
		q.W*other.W
}

func (q Quaternion) IsFinite() bool {
	return IsFinite(q.X, q.Y, q.Z, q.W)
}

func (q Quaternion) Compare(other Quaternion, tolerance float64) bool {
	return m.Abs(q.X-other.X) <= tolerance &&
		m.Abs(q.Y-other.Y) <= tolerance &&
		m.Abs(q.Z-other.Z) <= tolerance &&
		m.Abs(q.W-other.W) <= tolerance
}

/**
 * @brief Calculates spherical linear interpolation of a given percentage
 * between two quaternions.
 *
 * @param other The target quaternion.
 * @param percentage The percentage of interpolation, typically a value from 0.0-1.0.
 * @return An interpolated unit quaternion.
 */
func (q Quaternion) Slerp(other Quaternion, percentage float64) (Quaternion, error) {
	// Source: https://en.Wikipedia.org/wiki/Slerp
	// Only unit quaternions are valid rotations.
	v0, err := q.Normalize()
	if err != nil {
		return Quaternion{}, err
	}
	v1, err := other.Normalize()
	if err != nil {
		return Quaternion{}, err
	}

	dot := v0.Dot(v1)

	// v1 and -v1 are the same rotation; flip one to take the shorter path.
	if dot < 0.0 {
		v1 = Quaternion{-v1.X, -v1.Y, -v1.Z, -v1.W}
		dot = -dot
	}

	const dotThreshold = 0.9995
	if dot > dotThreshold {
		// Too close for acos; linearly interpolate and normalize.
		qt := Quaternion{
			v0.X + ((v1.X - v0.X) * percentage),
			v0.Y + ((v1.Y - v0.Y) * percentage),
			v0.Z + ((v1.Z - v0.Z) * percentage),
			v0.W + ((v1.W - v0.W) * percentage)}
		return qt.Normalize()
	}

	theta0 := m.Acos(dot)
	theta := theta0 * percentage
	sinTheta := m.Sin(theta)
	sinTheta0 := m.Sin(theta0)

	s0 := m.Cos(theta) - dot*sinTheta/sinTheta0 // == sin(theta_0 - theta) / sin(theta_0)
	s1 := sinTheta / sinTheta0

	return Quaternion{
		(v0.X * s0) + (v1.X * s1),
		(v0.Y * s0) + (v1.Y * s1),
		(v0.Z * s0) + (v1.Z * s1),
		(v0.W * s0) + (v1.W * s1)}, nil
}
