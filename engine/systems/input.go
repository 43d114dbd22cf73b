package systems

import (
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
)

var (
	Errors        = errorx.NewNamespace("systems")
	InvalidConfig = Errors.NewType("invalid_config")
)

/**
 * @brief Camera changes requested for one frame. Angles are in radians.
 */
type FrameDelta struct {
	Accelerate float64
	Yaw        float64
	Pitch      float64
	Roll       float64
}

/** @brief The input mapper configuration. */
type InputMapperConfig struct {
	/** @brief Mouse pixels per degree of yaw. */
	YawDivisor float64
	/** @brief Mouse pixels per degree of pitch. */
	PitchDivisor float64
	/** @brief Speed change per frame while W or S is held. */
	AccelStep float64
	/** @brief Degrees of roll per frame while A or D is held. */
	RollStep float64
}

func (c InputMapperConfig) Validate() error {
	if !(c.YawDivisor > 0) || !(c.PitchDivisor > 0) {
		return InvalidConfig.New("input divisors must be > 0, got yaw %g pitch %g", c.YawDivisor, c.PitchDivisor)
	}
	if !math.IsFinite(c.YawDivisor, c.PitchDivisor, c.AccelStep, c.RollStep) {
		return InvalidConfig.New("input steps must be finite")
	}
	return nil
}

/**
 * @brief What the mapper reads each frame: the mouse motion since the last
 * frame and the held state of the flight keys.
 */
type InputSnapshot struct {
	MouseDX, MouseDY float64
	Forward          bool
	Backward         bool
	RollLeft         bool
	RollRight        bool
}

// SnapshotInput reads the core input state.
func SnapshotInput() InputSnapshot {
	dx, dy := core.InputGetMouseDelta()
	return InputSnapshot{
		MouseDX:   dx,
		MouseDY:   dy,
		Forward:   core.InputIsKeyDown(core.KEY_W),
		Backward:  core.InputIsKeyDown(core.KEY_S),
		RollLeft:  core.InputIsKeyDown(core.KEY_A),
		RollRight: core.InputIsKeyDown(core.KEY_D),
	}
}

/**
 * @brief Turns raw input into a FrameDelta. Mouse right yaws right and mouse
 * down pitches the nose down. Only one key acts per frame, checked in the
 * order W, S, A, D.
 */
type InputMapper struct {
	config InputMapperConfig
}

func NewInputMapper(config InputMapperConfig) (*InputMapper, error) {
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return &InputMapper{config: config}, nil
}

func (m *InputMapper) Config() InputMapperConfig {
	return m.config
}

// SetConfig swaps the sensitivities; an invalid config is rejected and the
// old one kept.
func (m *InputMapper) SetConfig(config InputMapperConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *InputMapper) Map(in InputSnapshot) FrameDelta {
	delta := FrameDelta{
		Yaw:   math.DegToRad(in.MouseDX / m.config.YawDivisor),
		Pitch: math.DegToRad(in.MouseDY / m.config.PitchDivisor),
	}
	switch {
	case in.Forward:
		delta.Accelerate = m.config.AccelStep
	case in.Backward:
		delta.Accelerate = -m.config.AccelStep
	case in.RollLeft:
		delta.Roll = math.DegToRad(m.config.RollStep)
	case in.RollRight:
		delta.Roll = -math.DegToRad(m.config.RollStep)
	}
	return delta
}

// Poll maps the current core input state.
func (m *InputMapper) Poll() FrameDelta {
	return m.Map(SnapshotInput())
}
