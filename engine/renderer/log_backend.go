package renderer

import (
	"github.com/spaghettifunk/gridflight/engine/core"
)

type FrameStats struct {
	Frames   uint64
	Batches  uint64
	Segments uint64
}

// LogBackend draws nothing. It counts what it is given and logs a summary
// once per second of frame time.
type LogBackend struct {
	width, height uint32
	inFrame       bool
	total         FrameStats
	window        FrameStats
	windowTime    float64
}

func NewLogBackend(width, height uint32) *LogBackend {
	return &LogBackend{width: width, height: height}
}

func (b *LogBackend) BeginFrame(packet *FramePacket) error {
	if b.inFrame {
		return FrameOrder.New("frame %d begun before the previous one ended", packet.Frame)
	}
	b.inFrame = true
	return nil
}

func (b *LogBackend) DrawLines(batch LineBatch) error {
	if !b.inFrame {
		return FrameOrder.New("no frame in progress")
	}
	if len(batch.Colours) != len(batch.Edges) {
		return MalformedBatch.New("%d edges but %d colours", len(batch.Edges), len(batch.Colours))
	}
	for _, e := range batch.Edges {
		if int(e[0]) >= len(batch.Vertices) || int(e[1]) >= len(batch.Vertices) {
			return MalformedBatch.New("edge (%d, %d) out of %d vertices", e[0], e[1], len(batch.Vertices))
		}
	}
	b.window.Batches++
	b.window.Segments += uint64(len(batch.Edges))
	return nil
}

func (b *LogBackend) EndFrame(packet *FramePacket) error {
	if !b.inFrame {
		return FrameOrder.New("no frame in progress")
	}
	b.inFrame = false
	b.window.Frames++
	b.windowTime += packet.DeltaTime

	b.total.Frames++
	if b.windowTime >= 1.0 {
		eye := packet.Basis.Eye
		core.LogInfo("frames=%d batches=%d segments=%d eye=[%.3f, %.3f, %.3f] viewport=%dx%d",
			b.window.Frames, b.window.Batches, b.window.Segments, eye.X, eye.Y, eye.Z, b.width, b.height)
		b.flush()
	}
	return nil
}

func (b *LogBackend) flush() {
	b.total.Batches += b.window.Batches
	b.total.Segments += b.window.Segments
	b.window = FrameStats{}
	b.windowTime = 0
}

func (b *LogBackend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	core.LogDebug("backend viewport resized to %dx%d", width, height)
	return nil
}

func (b *LogBackend) Shutdown() error {
	b.flush()
	core.LogInfo("backend shut down after %d frames, %d segments", b.total.Frames, b.total.Segments)
	return nil
}

// Stats returns the totals including the current, unlogged window.
func (b *LogBackend) Stats() FrameStats {
	return FrameStats{
		Frames:   b.total.Frames,
		Batches:  b.total.Batches + b.window.Batches,
		Segments: b.total.Segments + b.window.Segments,
	}
}
