package math

import m "math"

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

/** @brief Creates and returns a 3-component vector with all components set to 0. */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/** @brief The canonical camera forward axis (0, 0, 1). */
func NewVec3Forward() Vec3 {
	return Vec3{0.0, 0.0, 1.0}
}

/** @brief The canonical camera up axis (0, 1, 0). */
func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

/** @brief The canonical camera right axis (1, 0, 0). */
func NewVec3Right() Vec3 {
	return Vec3{1.0, 0.0, 0.0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

func (v Vec3) MulScalar(scalar float64) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the vector.
 *
 * @return The unit vector, or DegenerateAxis if the length is below Epsilon.
 */
func (v Vec3) Normalized() (Vec3, error) {
	length := v.Length()
	if !(length >= Epsilon) || m.IsInf(length, 0) {
		return Vec3{}, DegenerateAxis.New("cannot normalize vector (%g, %g, %g)", v.X, v.Y, v.Z)
	}
	return v.MulScalar(1.0 / length), nil
}

/**
 * @brief Calculates the dot product of the vectors.
 */
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

/**
 * @brief Calculates the right-handed cross product v x other.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of the vectors within the given tolerance.
 *
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	return m.Abs(v.X-other.X) <= tolerance &&
		m.Abs(v.Y-other.Y) <= tolerance &&
		m.Abs(v.Z-other.Z) <= tolerance
}

func (v Vec3) IsFinite() bool {
	return IsFinite(v.X, v.Y, v.Z)
}

func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}
