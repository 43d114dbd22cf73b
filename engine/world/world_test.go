package world

import (
	"testing"

	"github.com/joomcode/errorx"
	. "github.com/onsi/gomega"

	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
)

func TestGridShape(t *testing.T) {
	g := NewGomegaWithT(t)

	grid, err := NewGrid(DefaultGridConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(grid.Vertices()).To(HaveLen(121))
	g.Expect(grid.Edges()).To(HaveLen(220))

	vertices := grid.Vertices()
	g.Expect(vertices[0]).To(Equal(math.NewVec3(-5, 0, -5)))
	g.Expect(vertices[120]).To(Equal(math.NewVec3(5, 0, 5)))
	for _, v := range vertices {
		g.Expect(v.Y).To(BeZero())
	}

	edges := grid.Edges()
	g.Expect(edges[0]).To(Equal([2]uint32{0, 1}))
	g.Expect(edges[1]).To(Equal([2]uint32{0, 11}))
	g.Expect(edges[2]).To(Equal([2]uint32{1, 2}))
	g.Expect(edges[3]).To(Equal([2]uint32{1, 12}))

	// Every edge is one unit long and axis aligned.
	for _, e := range edges {
		g.Expect(vertices[e[0]].Distance(vertices[e[1]])).To(BeNumerically("~", 1, 1e-12))
	}
}

func TestGridSpacing(t *testing.T) {
	g := NewGomegaWithT(t)

	grid, err := NewGrid(GridConfig{Squares: 4, Spacing: 2.5})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(grid.Vertices()).To(HaveLen(25))
	g.Expect(grid.Edges()).To(HaveLen(40))
	g.Expect(grid.Vertices()[0]).To(Equal(math.NewVec3(-5, 0, -5)))
}

func TestGridRejectsBadConfig(t *testing.T) {
	g := NewGomegaWithT(t)

	for _, cfg := range []GridConfig{{Squares: 0, Spacing: 1}, {Squares: 3, Spacing: 0}, {Squares: -1, Spacing: 1}} {
		_, err := NewGrid(cfg)
		g.Expect(errorx.IsOfType(err, InvalidConfig)).To(BeTrue(), "config %+v", cfg)
	}
}

func TestGridTranslatedLeavesOriginal(t *testing.T) {
	g := NewGomegaWithT(t)

	grid, _ := NewGrid(DefaultGridConfig())
	before := grid.Vertices()

	moved := grid.Translated(math.NewVec3(100, -100, 0))
	g.Expect(grid.Vertices()).To(Equal(before))
	g.Expect(moved.Vertices()[0]).To(Equal(math.NewVec3(95, -100, -5)))
	g.Expect(moved.Edges()).To(Equal(grid.Edges()))

	// Copies do not alias.
	vs := grid.Vertices()
	vs[0] = math.NewVec3(1, 2, 3)
	g.Expect(grid.Vertices()[0]).To(Equal(math.NewVec3(-5, 0, -5)))
}

func TestEdgeColourGradient(t *testing.T) {
	g := NewGomegaWithT(t)

	grid, _ := NewGrid(DefaultGridConfig())
	first := grid.EdgeColour(0)
	g.Expect(first[0]).To(BeNumerically("~", 0.75-0.01*0.5, 1e-6))
	g.Expect(first[1]).To(BeNumerically("~", 0.25+0.01*0.25, 1e-6))
	g.Expect(first[2]).To(BeNumerically("~", 0.25+0.02, 1e-6))

	for i := range grid.Edges() {
		c := grid.EdgeColour(i)
		for _, ch := range c {
			g.Expect(ch).To(BeNumerically(">=", 0))
			g.Expect(ch).To(BeNumerically("<=", 1))
		}
	}
	last := grid.EdgeColour(len(grid.Edges()) - 1)
	g.Expect(last[2]).To(Equal(float32(1)))
}

func TestWorldHasCenterAndNeighbours(t *testing.T) {
	g := NewGomegaWithT(t)

	w, err := NewWorld(100, DefaultGridConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(w.Grids()).To(HaveLen(27))
	g.Expect(w.MapSize()).To(Equal(100.0))
	g.Expect(w.ID().String()).NotTo(BeEmpty())

	seen := map[math.Vec3]bool{}
	for _, grid := range w.Grids() {
		first := grid.Vertices()[0]
		seen[first.Sub(math.NewVec3(-5, 0, -5))] = true
	}
	g.Expect(seen).To(HaveLen(27))
	g.Expect(seen).To(HaveKey(math.NewVec3(0, 0, 0)))
	g.Expect(seen).To(HaveKey(math.NewVec3(-100, 100, 100)))

	_, err = NewWorld(0, DefaultGridConfig())
	g.Expect(errorx.IsOfType(err, InvalidConfig)).To(BeTrue())
}

func TestWorldRenderFillsPacket(t *testing.T) {
	g := NewGomegaWithT(t)

	w, _ := NewWorld(100, DefaultGridConfig())
	packet := &renderer.FramePacket{}
	g.Expect(w.Render(packet)).To(Succeed())
	g.Expect(packet.Batches).To(HaveLen(27))
	g.Expect(packet.SegmentCount()).To(Equal(27 * 220))

	batch := packet.Batches[0]
	g.Expect(batch.Vertices).To(HaveLen(121))
	g.Expect(batch.Colours).To(HaveLen(len(batch.Edges)))
}
