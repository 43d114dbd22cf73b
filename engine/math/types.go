package math

import "golang.org/x/image/math/f64"

/** @brief A 3-component vector in world units. */
type Vec3 struct {
	X, Y, Z float64
}

/**
 * @brief A quaternion w + xi + yj + zk. Only unit quaternions represent
 * rotations; non-unit values are valid intermediates (e.g. an embedded vector).
 */
type Quaternion struct {
	X, Y, Z, W float64
}

/** @brief A 3x3 matrix in row-major order: Mat3[row*3+col]. */
type Mat3 = f64.Mat3
