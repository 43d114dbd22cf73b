package systems

import (
	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
	"github.com/spaghettifunk/gridflight/engine/telemetry"
	"github.com/spaghettifunk/gridflight/engine/world"
)

type SystemManager struct {
	InputMapper    *InputMapper
	CameraSystem   *CameraSystem
	RendererSystem *RendererSystem
	Recorder       *telemetry.FlightRecorder

	config *config.Config
}

func NewSystemManager(cfg *config.Config, backend renderer.Backend) (*SystemManager, error) {
	im, err := NewInputMapper(inputMapperConfig(cfg))
	if err != nil {
		return nil, err
	}

	cs, err := NewCameraSystem(&CameraSystemConfig{
		MapSize:         cfg.World.MapSize,
		Start:           math.NewVec3(cfg.Camera.Start[0], cfg.Camera.Start[1], cfg.Camera.Start[2]),
		MaxAcceleration: cfg.Camera.MaxAcceleration,
		AspectRatio:     cfg.AspectRatio(),
	})
	if err != nil {
		return nil, err
	}

	w, err := world.NewWorld(cfg.World.MapSize, cfg.World.Grid)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	rs := NewRendererSystem(backend, w, cfg.Window.Width, cfg.Window.Height)

	rec, err := telemetry.NewFlightRecorder(cfg.Telemetry.Path, cfg.Telemetry.Buffer)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &SystemManager{
		InputMapper:    im,
		CameraSystem:   cs,
		RendererSystem: rs,
		Recorder:       rec,
		config:         cfg,
	}, nil
}

func inputMapperConfig(cfg *config.Config) InputMapperConfig {
	return InputMapperConfig{
		YawDivisor:   cfg.Input.YawDivisor,
		PitchDivisor: cfg.Input.PitchDivisor,
		AccelStep:    cfg.Input.AccelStep,
		RollStep:     cfg.Input.RollStep,
	}
}

func (sm *SystemManager) Config() *config.Config {
	return sm.config
}

/**
 * @brief Runs one simulation step: the current input is mapped to a frame
 * delta and applied to the camera. The result is recorded when telemetry
 * is enabled.
 */
func (sm *SystemManager) Update(deltaTime float64) components.MoveResult {
	return sm.Step(sm.InputMapper.Poll())
}

// Step applies an already mapped delta.
func (sm *SystemManager) Step(delta FrameDelta) components.MoveResult {
	result := sm.CameraSystem.Apply(delta)
	if err := sm.Recorder.RecordCamera(sm.RendererSystem.FrameNumber, sm.CameraSystem.GetDefault(), result.AnyWrapped()); err != nil {
		core.LogWarn("flight recorder: %s", err)
	}
	return result
}

func (sm *SystemManager) BuildPacket(deltaTime float64) (*renderer.FramePacket, error) {
	return sm.RendererSystem.BuildPacket(sm.CameraSystem.GetDefault(), deltaTime)
}

func (sm *SystemManager) DrawFrame(packet *renderer.FramePacket) error {
	return sm.RendererSystem.DrawFrame(packet)
}

func (sm *SystemManager) OnResize(width, height uint32) error {
	sm.CameraSystem.OnResize(width, height)
	return sm.RendererSystem.OnResize(width, height)
}

/**
 * @brief Applies a reloaded configuration. Input sensitivities, the speed
 * bound and the log level change in place; world and window settings only
 * take effect on restart.
 */
func (sm *SystemManager) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := sm.InputMapper.SetConfig(inputMapperConfig(cfg)); err != nil {
		return err
	}
	sm.CameraSystem.SetMaxAcceleration(cfg.Camera.MaxAcceleration)
	if level, err := cfg.LogLevel(); err == nil {
		core.SetLogLevel(level)
	}
	if cfg.World != sm.config.World {
		core.LogWarn("world settings changed, restart to apply them")
	}
	sm.config = cfg
	core.LogInfo("configuration reloaded")
	return nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.Recorder.Close(); err != nil {
		return err
	}
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
