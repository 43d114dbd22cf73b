package testbed

import (
	"fmt"

	"github.com/spaghettifunk/gridflight/engine"
	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
)

// How often, in frames, the camera state is written to the debug log.
const reportEvery = 60

type FlightGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera
	Wraps       uint64
	Reorients   uint64

	width  uint32
	height uint32

	wrapListener uint32
	frame        uint64
}

func NewFlightGame(cfg *config.Config, path string) (*FlightGame, error) {
	app, err := engine.NewApplicationConfig(cfg, path)
	if err != nil {
		return nil, err
	}
	fg := &FlightGame{
		Game: &engine.Game{
			ApplicationConfig: app,
			State:             &gameState{},
		},
	}

	fg.FnInitialize = fg.Initialize
	fg.FnUpdate = fg.Update
	fg.FnRender = fg.Render
	fg.FnOnResize = fg.OnResize
	fg.FnShutdown = fg.Shutdown

	return fg, nil
}

func (g *FlightGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *FlightGame) Initialize() error {
	core.LogDebug("FlightGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.state()
	state.WorldCamera = g.SystemManager.CameraSystem.GetDefault()
	state.wrapListener = core.EventRegister(core.EVENT_CODE_CAMERA_WRAPPED, g.onWrapped)

	pos := state.WorldCamera.Position()
	core.LogInfo("flying a %.0f unit world from [%.1f, %.1f, %.1f]", state.WorldCamera.MapSize(), pos.X, pos.Y, pos.Z)
	return nil
}

func (g *FlightGame) Update(deltaTime float64) error {
	g.SystemManager.Update(deltaTime)
	return nil
}

func (g *FlightGame) Render(packet *renderer.FramePacket, deltaTime float64) error {
	state := g.state()
	state.frame++
	if state.frame%reportEvery == 0 {
		pos := state.WorldCamera.Position()
		yaw, pitch, roll := state.WorldCamera.Orientation().ToEuler()
		core.LogDebug("Camera Pos: [%.3f, %.3f, %.3f] Rot: [%.1f, %.1f, %.1f] Speed: %.3f",
			pos.X, pos.Y, pos.Z,
			math.RadToDeg(yaw), math.RadToDeg(pitch), math.RadToDeg(roll),
			state.WorldCamera.Speed())
	}
	return nil
}

func (g *FlightGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *FlightGame) Shutdown() error {
	state := g.state()
	core.EventUnregister(core.EVENT_CODE_CAMERA_WRAPPED, state.wrapListener)
	core.LogInfo("flight over: %d wraps, %d reorientations", state.Wraps, state.Reorients)
	return nil
}

// Wraps returns how many times the camera crossed the world boundary.
func (g *FlightGame) Wraps() uint64 {
	return g.state().Wraps
}

func (g *FlightGame) onWrapped(context core.EventContext) bool {
	ce, ok := context.Data.(*core.CameraEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	state := g.state()
	state.Wraps++
	if ce.Reoriented {
		state.Reorients++
	}
	return false
}
