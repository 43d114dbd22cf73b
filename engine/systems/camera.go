package systems

import (
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief Edge length of the cubic world the camera wraps around in. */
	MapSize float64
	/** @brief Where the camera starts, and returns to on reset. */
	Start math.Vec3
	/** @brief Bound of the speed accumulator. */
	MaxAcceleration float64
	/** @brief Initial viewport aspect ratio. */
	AspectRatio float64
}

/**
 * @brief Owns the single session camera and applies one FrameDelta per frame.
 */
type CameraSystem struct {
	Config *CameraSystemConfig
	camera *components.Camera
	// Geometry errors recovered from so far.
	recovered uint64
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @return The system, or an error if the config is invalid.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if !(config.MapSize > 0) || !math.IsFinite(config.MapSize) {
		err := InvalidConfig.New("func NewCameraSystem - config.MapSize must be > 0, got %g", config.MapSize)
		core.LogError(err.Error())
		return nil, err
	}
	if !(config.MaxAcceleration > 0) || !math.IsFinite(config.MaxAcceleration) {
		err := InvalidConfig.New("func NewCameraSystem - config.MaxAcceleration must be > 0, got %g", config.MaxAcceleration)
		core.LogError(err.Error())
		return nil, err
	}
	if !config.Start.IsFinite() {
		err := InvalidConfig.New("func NewCameraSystem - config.Start must be finite")
		core.LogError(err.Error())
		return nil, err
	}

	camera := components.NewCamera(
		components.WithPosition(config.Start),
		components.WithMapSize(config.MapSize),
		components.WithMaxAcceleration(config.MaxAcceleration),
	)
	if config.AspectRatio > 0 {
		camera.SetProjection(config.AspectRatio)
	}
	return &CameraSystem{
		Config: config,
		camera: camera,
	}, nil
}

/**
 * @brief Shuts down the camera system.
 */
func (cs *CameraSystem) Shutdown() error {
	core.LogDebug("camera system shut down, %d geometry errors recovered", cs.recovered)
	return nil
}

/**
 * @brief Gets a pointer to the session camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.camera
}

func (cs *CameraSystem) Recovered() uint64 {
	return cs.recovered
}

/**
 * @brief Applies one frame of input: accelerate, then look, then move by the
 * resulting speed. Geometry errors are logged and the frame continues with
 * the camera in its last valid state.
 *
 * @return What the move did.
 */
func (cs *CameraSystem) Apply(delta FrameDelta) components.MoveResult {
	c := cs.camera
	speed := c.Accelerate(delta.Accelerate)

	if err := c.Look(delta.Yaw, delta.Pitch, delta.Roll); err != nil {
		cs.recovered++
		core.LogWarn("look skipped: %s", err)
	}

	result, err := c.Move(speed)
	if err != nil {
		cs.recovered++
		if errorx.IsOfType(err, math.DegenerateHeading) {
			core.LogWarn("wrapped while facing straight up or down, keeping last heading: %s", err)
		} else {
			core.LogWarn("move skipped: %s", err)
		}
	}

	if result.AnyWrapped() {
		pos := c.Position()
		core.LogDebug("camera wrapped to [%.3f, %.3f, %.3f], reoriented=%t", pos.X, pos.Y, pos.Z, result.Reoriented)
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_CAMERA_WRAPPED,
			Data: &core.CameraEvent{
				Wrapped:    result.Wrapped,
				Reoriented: result.Reoriented,
				PosX:       pos.X,
				PosY:       pos.Y,
				PosZ:       pos.Z,
			},
		})
	}
	return result
}

// SetMaxAcceleration changes the speed bound at runtime.
func (cs *CameraSystem) SetMaxAcceleration(max float64) {
	if !(max > 0) || !math.IsFinite(max) {
		core.LogWarn("ignoring max acceleration %g", max)
		return
	}
	cs.Config.MaxAcceleration = max
	cs.camera.SetMaxAcceleration(max)
}

func (cs *CameraSystem) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	cs.Config.AspectRatio = float64(width) / float64(height)
	cs.camera.SetProjection(cs.Config.AspectRatio)
}
