package engine

import (
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Filled in by the engine before FnInitialize runs.
	SystemManager *systems.SystemManager
	State         interface{}
	FnInitialize  Initialize
	FnUpdate      Update
	FnRender      Render
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(packet *renderer.FramePacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
