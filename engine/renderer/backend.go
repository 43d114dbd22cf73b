package renderer

// LineDrawer accepts line batches. Both the FramePacket (collecting) and
// the backend (drawing) implement it.
type LineDrawer interface {
	DrawLines(batch LineBatch) error
}

// Backend is the draw surface. The engine owns the frame order:
// BeginFrame, one DrawLines per batch, EndFrame.
type Backend interface {
	LineDrawer
	BeginFrame(packet *FramePacket) error
	EndFrame(packet *FramePacket) error
	Resized(width, height uint32) error
	Shutdown() error
}
