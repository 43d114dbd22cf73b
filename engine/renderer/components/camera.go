package components

import (
	m "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spaghettifunk/gridflight/engine/math"
)

/** @brief The default edge length of the cubic world. */
const DEFAULT_MAP_SIZE float64 = 100.0

/** @brief The default bound of the speed accumulator. */
const DEFAULT_MAX_ACCELERATION float64 = 3.0

const (
	DEFAULT_FOV_Y  float64 = 45.0
	DEFAULT_NEAR   float64 = 0.1
	DEFAULT_FAR    float64 = 100.0
	DEFAULT_ASPECT float64 = 800.0 / 600.0
)

/**
 * @brief Perspective parameters stored by the camera. FovY is in degrees.
 */
type Projection struct {
	FovY   float64
	Aspect float64
	Near   float64
	Far    float64
}

/**
 * @brief What the draw backend needs to build a look-at view:
 * the eye, a point one unit ahead of it and the up direction.
 */
type ViewBasis struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
}

/** @brief Reports what a call to Move did besides translating. */
type MoveResult struct {
	/** @brief Per axis (X, Y, Z), whether the position wrapped. */
	Wrapped [3]bool
	/** @brief Whether the orientation was rebuilt after a horizontal wrap. */
	Reoriented bool
}

/** @brief Any wrapped axis. */
func (r MoveResult) AnyWrapped() bool {
	return r.Wrapped[0] || r.Wrapped[1] || r.Wrapped[2]
}

/**
 * @brief A free-flying first person camera. The orientation is a unit
 * quaternion mapping the canonical basis (forward +Z, up +Y, right +X)
 * onto the camera basis. Deltas are composed in camera-local space.
 */
type Camera struct {
	position    math.Vec3
	start       math.Vec3
	orientation math.Quaternion
	initial     math.Quaternion
	/** @brief Tilt of the forward direction below the horizontal plane, in [-pi/2, pi/2]. */
	pitch float64
	/** @brief Last non-degenerate horizontal forward direction. */
	heading         math.Vec3
	speed           float64
	maxAcceleration float64
	mapSize         float64
	projection      Projection
}

type CameraOption func(c *Camera)

func WithPosition(position math.Vec3) CameraOption {
	return func(c *Camera) {
		c.start = position
	}
}

func WithMapSize(size float64) CameraOption {
	return func(c *Camera) {
		if size > 0 && math.IsFinite(size) {
			c.mapSize = size
		}
	}
}

func WithMaxAcceleration(max float64) CameraOption {
	return func(c *Camera) {
		if max > 0 && math.IsFinite(max) {
			c.maxAcceleration = max
		}
	}
}

/** @brief Starts the camera with the given orientation. Invalid rotations are ignored. */
func WithOrientation(orientation math.Quaternion) CameraOption {
	return func(c *Camera) {
		if q, err := orientation.Normalize(); err == nil {
			c.initial = q
		}
	}
}

func NewCamera(opts ...CameraOption) *Camera {
	camera := &Camera{
		initial:         math.NewQuatIdentity(),
		maxAcceleration: DEFAULT_MAX_ACCELERATION,
		mapSize:         DEFAULT_MAP_SIZE,
		projection: Projection{
			FovY:   DEFAULT_FOV_Y,
			Aspect: DEFAULT_ASPECT,
			Near:   DEFAULT_NEAR,
			Far:    DEFAULT_FAR,
		},
	}
	for _, opt := range opts {
		opt(camera)
	}
	camera.Reset()
	return camera
}

/**
 * @brief Restores the start position and orientation and zero speed.
 */
func (c *Camera) Reset() {
	c.orientation = c.initial
	c.position = c.wrap(c.start, nil)
	c.speed = 0
	c.heading = math.NewVec3Forward()
	c.trackHeading()
	c.pitch = tilt(c.Forward())
}

/**
 * @brief Rotates the camera by the given yaw, pitch and roll deltas (radians),
 * applied in camera-local space in that order. The nose stops at straight up
 * or straight down: yaw and pitch are shrunk so that the forward direction
 * never sweeps over vertical, and from a pole it only leaves on the side that
 * keeps the current heading.
 *
 * @return NonFiniteInput for NaN/Inf deltas, ZeroNorm if the composed
 * orientation could not be normalized. The camera is unchanged on error.
 */
func (c *Camera) Look(yawDelta, pitchDelta, rollDelta float64) error {
	if !math.IsFinite(yawDelta, pitchDelta, rollDelta) {
		return math.NonFiniteInput.New("look deltas (%g, %g, %g)", yawDelta, pitchDelta, rollDelta)
	}

	yawDelta = limitSweep(c.Forward(), c.Right(), c.heading, yawDelta)
	yawed := c.orientation.Mul(math.NewQuatFromEuler(yawDelta, 0, 0))
	forward := yawed.Rotate(math.NewVec3Forward())
	// Positive pitch turns the nose toward -up.
	down := yawed.Rotate(math.NewVec3Up()).MulScalar(-1)
	pitchDelta = limitSweep(forward, down, flatHeading(forward, c.heading), pitchDelta)

	if yawDelta == 0 && pitchDelta == 0 && rollDelta == 0 {
		return nil
	}

	delta := math.NewQuatFromEuler(yawDelta, pitchDelta, rollDelta)
	orientation, err := c.orientation.Mul(delta).Normalize()
	if err != nil {
		return err
	}

	c.orientation = orientation
	c.trackHeading()
	c.pitch = tilt(c.Forward())
	return nil
}

/**
 * @brief Shrinks angle so that the sweep forward*cos(t) + toward*sin(t),
 * t running from 0 to angle, stops at the first vertical direction it meets.
 * At a pole the sweep is refused when it would leave against heading.
 */
func limitSweep(forward, toward, heading math.Vec3, angle float64) float64 {
	if angle == 0 {
		return 0
	}
	// Downward component along the sweep is a*cos(t) + b*sin(t). It only
	// reaches +-1 when the rotation axis is horizontal.
	a, b := -forward.Y, -toward.Y
	if 1-m.Hypot(a, b) > math.Epsilon {
		return angle
	}

	dir := m.Copysign(1, angle)
	limit := m.Abs(angle)
	down := m.Atan2(b, a)
	for _, pole := range [2]float64{down, down + math.K_PI} {
		d := m.Mod(dir*pole, math.K_PI_2)
		if d < 0 {
			d += math.K_PI_2
		}
		if d < math.Epsilon || math.K_PI_2-d < math.Epsilon {
			// Near the pole the nose moves horizontally along dir*toward.
			if dir*(toward.X*heading.X+toward.Z*heading.Z) < -math.Epsilon {
				return 0
			}
			continue
		}
		limit = m.Min(limit, d)
	}
	return dir * limit
}

// tilt is the angle of forward below the horizontal plane.
func tilt(forward math.Vec3) float64 {
	horizontal := m.Hypot(forward.X, forward.Z)
	if horizontal < math.Epsilon {
		return m.Copysign(math.K_HALF_PI, -forward.Y)
	}
	return m.Atan2(-forward.Y, horizontal)
}

/**
 * @brief Moves the camera along its forward direction and wraps the position
 * at the world boundary. Wrapping across a horizontal face levels the camera
 * onto its current heading.
 *
 * @return The wrap report. NonFiniteInput leaves the camera unchanged;
 * DegenerateHeading means the camera pointed straight up or down when it was
 * levelled and fell back to its last known heading.
 */
func (c *Camera) Move(distance float64) (MoveResult, error) {
	var result MoveResult
	if !math.IsFinite(distance) {
		return result, math.NonFiniteInput.New("move distance %g", distance)
	}

	position := c.position.Add(c.Forward().MulScalar(distance))
	if !position.IsFinite() {
		return result, math.NonFiniteInput.New("move distance %g overflows position", distance)
	}
	c.position = c.wrap(position, &result.Wrapped)

	// Y is vertical; only the side faces level the camera.
	if !result.Wrapped[0] && !result.Wrapped[2] {
		return result, nil
	}
	result.Reoriented = true
	return result, c.level()
}

// level rebuilds the orientation from the flattened forward direction,
// dropping pitch and roll.
func (c *Camera) level() error {
	forward := c.Forward()
	heading, err := math.NewVec3(forward.X, 0, forward.Z).Normalized()

	var degenerate error
	if err != nil {
		degenerate = math.DegenerateHeading.Wrap(err, "forward (%g, %g, %g) has no horizontal component, keeping heading (%g, %g, %g)",
			forward.X, forward.Y, forward.Z, c.heading.X, c.heading.Y, c.heading.Z)
		heading = c.heading
	}

	orientation, err := math.NewQuatFromTwoVectors(math.NewVec3Forward(), heading)
	if err != nil {
		return err
	}
	c.orientation = orientation
	c.heading = heading
	c.pitch = 0
	return degenerate
}

func (c *Camera) trackHeading() {
	c.heading = flatHeading(c.Forward(), c.heading)
}

func flatHeading(forward, fallback math.Vec3) math.Vec3 {
	if heading, err := math.NewVec3(forward.X, 0, forward.Z).Normalized(); err == nil {
		return heading
	}
	return fallback
}

func (c *Camera) wrap(position math.Vec3, wrapped *[3]bool) math.Vec3 {
	offset := c.mapSize / 2.0
	axes := [3]*float64{&position.X, &position.Y, &position.Z}
	for i, v := range axes {
		switch {
		case *v > offset:
			*v = -offset
		case *v < -offset:
			*v = offset
		default:
			continue
		}
		if wrapped != nil {
			wrapped[i] = true
		}
	}
	return position
}

func (c *Camera) Forward() math.Vec3 {
	return c.orientation.Rotate(math.NewVec3Forward())
}

func (c *Camera) Up() math.Vec3 {
	return c.orientation.Rotate(math.NewVec3Up())
}

func (c *Camera) Right() math.Vec3 {
	return c.orientation.Rotate(math.NewVec3Right())
}

/**
 * @brief Returns the eye, target and up vectors for the current state.
 * The target is one unit ahead of the eye.
 */
func (c *Camera) GetViewBasis() ViewBasis {
	return ViewBasis{
		Eye:    c.position,
		Target: c.position.Add(c.Forward()),
		Up:     c.Up(),
	}
}

func (c *Camera) ViewMatrix() mgl64.Mat4 {
	basis := c.GetViewBasis()
	return mgl64.LookAtV(toMgl(basis.Eye), toMgl(basis.Target), toMgl(basis.Up))
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	p := c.projection
	return mgl64.Perspective(mgl64.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
}

/**
 * @brief Adds delta to the speed accumulator, clamped to +-maxAcceleration.
 *
 * @return The new speed.
 */
func (c *Camera) Accelerate(delta float64) float64 {
	if !math.IsFinite(delta) {
		return c.speed
	}
	c.speed = math.Clamp(c.speed+delta, -c.maxAcceleration, c.maxAcceleration)
	return c.speed
}

func (c *Camera) Speed() float64 {
	return c.speed
}

func (c *Camera) MaxAcceleration() float64 {
	return c.maxAcceleration
}

/** @brief Changes the speed bound; the current speed is re-clamped. Non-positive values are ignored. */
func (c *Camera) SetMaxAcceleration(max float64) {
	if !(max > 0) || !math.IsFinite(max) {
		return
	}
	c.maxAcceleration = max
	c.speed = math.Clamp(c.speed, -max, max)
}

/**
 * @brief Stores the perspective for the given aspect ratio with a 45 degree
 * vertical field of view, near 0.1 and far 100. Non-positive ratios are ignored.
 */
func (c *Camera) SetProjection(aspectRatio float64) {
	if !(aspectRatio > 0) || !math.IsFinite(aspectRatio) {
		return
	}
	c.projection = Projection{
		FovY:   DEFAULT_FOV_Y,
		Aspect: aspectRatio,
		Near:   DEFAULT_NEAR,
		Far:    DEFAULT_FAR,
	}
}

func (c *Camera) Projection() Projection {
	return c.projection
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

/** @brief Moves the camera to position, wrapped into the world bounds. Non-finite positions are ignored. */
func (c *Camera) SetPosition(position math.Vec3) {
	if !position.IsFinite() {
		return
	}
	c.position = c.wrap(position, nil)
}

func (c *Camera) Orientation() math.Quaternion {
	return c.orientation
}

func (c *Camera) Pitch() float64 {
	return c.pitch
}

func (c *Camera) MapSize() float64 {
	return c.mapSize
}

func toMgl(v math.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
