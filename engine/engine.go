package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/platform"
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type listener struct {
	code core.EventCode
	id   uint32
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      platform.Platform
	systemManager *systems.SystemManager
	watcher       *config.Watcher
	listeners     []listener
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	frameCount    uint64
	stopRequested atomic.Bool
}

/**
 * @brief Creates the engine and its systems for the given game. The game's
 * SystemManager is set here so that FnInitialize can reach it.
 */
func New(g *Game, p platform.Platform, backend renderer.Backend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.ApplicationConfig.Settings == nil || g.FnUpdate == nil || g.FnRender == nil {
		core.LogError(core.ErrInvalidGame.Error())
		return nil, core.ErrInvalidGame
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	sm, err := systems.NewSystemManager(g.ApplicationConfig.Settings, backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageBootComplete,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      p,
		systemManager: sm,
		isRunning:     false,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	e.register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.register(core.EVENT_CODE_RESIZED, e.onResized)

	app := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight); err != nil {
		return err
	}

	if app.SettingsPath != "" {
		w, err := config.NewWatcher(app.SettingsPath)
		if err != nil {
			// Running without reload is fine.
			core.LogWarn("not watching %s: %s", app.SettingsPath, err)
		} else {
			e.watcher = w
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) register(code core.EventCode, fn core.FnOnEvent) {
	e.listeners = append(e.listeners, listener{code: code, id: core.EventRegister(code, fn)})
}

/**
 * @brief Runs the frame loop until the platform closes, a quit event
 * arrives or the configured frame limit is reached.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	settings := e.gameInstance.ApplicationConfig.Settings
	var runningTime float64 = 0.0
	var targetFrameSeconds float64 = 1.0 / settings.Frame.TargetFPS

	for e.isRunning {
		if e.stopRequested.Load() {
			core.LogInfo("stop requested, leaving the frame loop.")
			e.isRunning = false
			break
		}
		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}
		if e.isSuspended {
			e.platform.Sleep(targetFrameSeconds * 1000)
			continue
		}

		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		e.applyPendingConfig()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			e.isRunning = false
			return errorx.Decorate(err, "frame %d update", e.frameCount)
		}

		packet, err := e.systemManager.BuildPacket(delta)
		if err != nil {
			e.isRunning = false
			return errorx.Decorate(err, "frame %d packet", e.frameCount)
		}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			e.isRunning = false
			return errorx.Decorate(err, "frame %d render", e.frameCount)
		}
		if err := e.systemManager.DrawFrame(packet); err != nil {
			e.isRunning = false
			return errorx.Decorate(err, "frame %d draw", e.frameCount)
		}

		// Figure out how long the frame took and, if below the target, sleep.
		var frameEndTime float64 = e.platform.GetAbsoluteTime()
		var frameElapsedTime float64 = frameEndTime - frameStartTime
		runningTime += frameElapsedTime
		core.MetricsUpdate(frameElapsedTime)

		var remainingSeconds float64 = targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 {
			e.platform.Sleep(remainingSeconds * 1000)
		}

		// Input state rolls over last so this frame's deltas were seen by update.
		core.InputUpdate(delta)
		e.lastTime = currentTime
		e.frameCount++

		if settings.Frame.MaxFrames > 0 && e.frameCount >= settings.Frame.MaxFrames {
			core.LogInfo("frame limit %d reached", settings.Frame.MaxFrames)
			e.isRunning = false
		}
	}
	core.LogInfo("ran %d frames in %.3fs of frame time, %.1f fps", e.frameCount, runningTime, core.MetricsFPS())
	return nil
}

func (e *Engine) applyPendingConfig() {
	if e.watcher == nil {
		return
	}
	cfg, ok := e.watcher.Latest()
	if !ok {
		return
	}
	if err := e.systemManager.ApplyConfig(cfg); err != nil {
		core.LogWarn("ignoring reloaded configuration: %s", err)
		return
	}
	e.gameInstance.ApplicationConfig.Settings = cfg
}

// Stop asks Run to return before the next frame. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.stopRequested.Store(true)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("closing config watcher: %s", err)
		}
		e.watcher = nil
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	for _, l := range e.listeners {
		core.EventUnregister(l.code, l.id)
	}
	e.listeners = nil

	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
			return true
		}
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.systemManager.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	// Let other listeners see the resize too.
	return false
}
