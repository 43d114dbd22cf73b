package systems

import (
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/renderer"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
	"github.com/spaghettifunk/gridflight/engine/world"
)

/**
 * @brief Builds a frame packet from the camera and the world and hands it
 * to the renderer.
 */
type RendererSystem struct {
	renderer *renderer.Renderer
	world    *world.World
	// The current window framebuffer size.
	FramebufferWidth  uint32
	FramebufferHeight uint32
	FrameNumber       uint64
}

func NewRendererSystem(backend renderer.Backend, w *world.World, width, height uint32) *RendererSystem {
	return &RendererSystem{
		renderer:          renderer.New(backend),
		world:             w,
		FramebufferWidth:  width,
		FramebufferHeight: height,
	}
}

func (r *RendererSystem) World() *world.World {
	return r.world
}

// BuildPacket snapshots the camera and collects the world's line batches.
func (r *RendererSystem) BuildPacket(camera *components.Camera, deltaTime float64) (*renderer.FramePacket, error) {
	packet := renderer.NewFramePacket(r.FrameNumber, deltaTime, camera)
	if err := r.world.Render(packet); err != nil {
		return nil, err
	}
	return packet, nil
}

func (r *RendererSystem) DrawFrame(packet *renderer.FramePacket) error {
	if err := r.renderer.DrawFrame(packet); err != nil {
		return err
	}
	r.FrameNumber++
	return nil
}

func (r *RendererSystem) OnResize(width, height uint32) error {
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	return r.renderer.OnResize(width, height)
}

func (r *RendererSystem) Shutdown() error {
	core.LogDebug("renderer system shut down after %d frames", r.FrameNumber)
	return r.renderer.Shutdown()
}
