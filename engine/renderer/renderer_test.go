package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/joomcode/errorx"
	. "github.com/onsi/gomega"

	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer/components"
)

func square() LineBatch {
	return LineBatch{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		Edges:    [][2]uint32{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		Colours:  [][3]float32{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
	}
}

func TestFramePacketFromCamera(t *testing.T) {
	g := NewGomegaWithT(t)

	camera := components.NewCamera(components.WithPosition(math.NewVec3(1, 2, 3)))
	packet := NewFramePacket(7, 0.5, camera)
	g.Expect(packet.Frame).To(Equal(uint64(7)))
	g.Expect(packet.Basis).To(Equal(camera.GetViewBasis()))
	g.Expect(packet.View).To(Equal(camera.ViewMatrix()))
	g.Expect(packet.Projection).To(Equal(camera.ProjectionMatrix()))

	g.Expect(packet.DrawLines(square())).To(Succeed())
	g.Expect(packet.DrawLines(square())).To(Succeed())
	g.Expect(packet.Batches).To(HaveLen(2))
	g.Expect(packet.SegmentCount()).To(Equal(8))
}

func TestDrawFrameCountsSegments(t *testing.T) {
	g := NewGomegaWithT(t)

	backend := NewLogBackend(800, 600)
	r := New(backend)
	camera := components.NewCamera()

	for frame := uint64(0); frame < 30; frame++ {
		packet := NewFramePacket(frame, 1.0/15.0, camera)
		g.Expect(packet.DrawLines(square())).To(Succeed())
		g.Expect(r.DrawFrame(packet)).To(Succeed())
	}
	g.Expect(backend.Stats()).To(Equal(FrameStats{Frames: 30, Batches: 30, Segments: 120}))

	g.Expect(r.OnResize(1024, 768)).To(Succeed())
	g.Expect(r.Shutdown()).To(Succeed())
}

func TestLogBackendRejectsMalformedBatches(t *testing.T) {
	g := NewGomegaWithT(t)

	r := New(NewLogBackend(800, 600))
	bad := square()
	bad.Edges = append(bad.Edges, [2]uint32{0, 9})
	bad.Colours = append(bad.Colours, [3]float32{})

	packet := &FramePacket{Batches: []LineBatch{bad}}
	err := r.DrawFrame(packet)
	g.Expect(err).To(HaveOccurred())
	g.Expect(errorx.IsOfType(err, MalformedBatch)).To(BeTrue())
}

func TestDrawFrameRecoversAfterMalformedBatch(t *testing.T) {
	g := NewGomegaWithT(t)

	backend := NewLogBackend(800, 600)
	r := New(backend)
	bad := square()
	bad.Colours = bad.Colours[:2]

	err := r.DrawFrame(&FramePacket{Frame: 0, Batches: []LineBatch{square(), bad}})
	g.Expect(errorx.IsOfType(err, MalformedBatch)).To(BeTrue())

	good := &FramePacket{Frame: 1, Batches: []LineBatch{square()}}
	g.Expect(r.DrawFrame(good)).To(Succeed())
	g.Expect(backend.Stats().Frames).To(Equal(uint64(2)))
}

func TestLogBackendFrameOrder(t *testing.T) {
	g := NewGomegaWithT(t)

	b := NewLogBackend(800, 600)
	packet := &FramePacket{}
	g.Expect(errorx.IsOfType(b.DrawLines(square()), FrameOrder)).To(BeTrue())
	g.Expect(errorx.IsOfType(b.EndFrame(packet), FrameOrder)).To(BeTrue())
	g.Expect(b.BeginFrame(packet)).To(Succeed())
	g.Expect(errorx.IsOfType(b.BeginFrame(packet), FrameOrder)).To(BeTrue())
}
