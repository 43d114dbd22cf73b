package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/spaghettifunk/gridflight/engine/renderer/components"
)

/**
 * @brief A set of line segments in GPU-ready float32 form. Each edge
 * indexes two vertices; Colours holds one colour per edge.
 */
type LineBatch struct {
	Vertices []mgl32.Vec3
	Edges    [][2]uint32
	Colours  [][3]float32
}

func (b LineBatch) SegmentCount() int {
	return len(b.Edges)
}

/**
 * @brief Everything the backend needs to draw one frame.
 */
type FramePacket struct {
	Frame      uint64
	DeltaTime  float64
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Basis      components.ViewBasis
	Batches    []LineBatch
}

// NewFramePacket snapshots the camera for the given frame.
func NewFramePacket(frame uint64, deltaTime float64, camera *components.Camera) *FramePacket {
	return &FramePacket{
		Frame:      frame,
		DeltaTime:  deltaTime,
		View:       camera.ViewMatrix(),
		Projection: camera.ProjectionMatrix(),
		Basis:      camera.GetViewBasis(),
	}
}

// DrawLines queues the batch for the backend.
func (p *FramePacket) DrawLines(batch LineBatch) error {
	p.Batches = append(p.Batches, batch)
	return nil
}

func (p *FramePacket) SegmentCount() int {
	n := 0
	for _, b := range p.Batches {
		n += b.SegmentCount()
	}
	return n
}
