package math

import "github.com/joomcode/errorx"

var (
	// Geometry groups every recoverable numeric failure of the orientation model.
	Geometry = errorx.NewNamespace("geometry")

	// DegenerateAxis is returned when a rotation axis has zero length.
	DegenerateAxis = Geometry.NewType("degenerate_axis")
	// ZeroNorm is returned when a quaternion is too small to normalize or invert.
	ZeroNorm = Geometry.NewType("zero_norm")
	// InvalidMatrix is returned for non-orthonormal or reflective rotation matrices.
	InvalidMatrix = Geometry.NewType("invalid_matrix")
	// DegenerateHeading is returned when a horizontal heading collapses to zero length.
	DegenerateHeading = Geometry.NewType("degenerate_heading")
	// NonFiniteInput is returned when NaN or Inf reaches an operation that stores state.
	NonFiniteInput = Geometry.NewType("non_finite_input")
)
