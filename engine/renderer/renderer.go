package renderer

import (
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/core"
)

type Renderer struct {
	backend Backend
}

func New(backend Backend) *Renderer {
	return &Renderer{
		backend: backend,
	}
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// DrawFrame hands the packet to the backend, one batch at a time.
func (r *Renderer) DrawFrame(packet *FramePacket) error {
	if err := r.backend.BeginFrame(packet); err != nil {
		core.LogError(err.Error())
		return errorx.Decorate(err, "begin frame %d", packet.Frame)
	}
	for i, batch := range packet.Batches {
		if err := r.backend.DrawLines(batch); err != nil {
			core.LogError("failed to draw batch %d of frame %d: %s", i, packet.Frame, err)
			// Close the frame so the backend can take the next one.
			if endErr := r.backend.EndFrame(packet); endErr != nil {
				core.LogError("closing frame %d after a failed batch: %s", packet.Frame, endErr)
			}
			return errorx.Decorate(err, "draw batch %d", i)
		}
	}
	if err := r.backend.EndFrame(packet); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return errorx.Decorate(err, "end frame %d", packet.Frame)
	}
	return nil
}
