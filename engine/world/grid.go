package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/joomcode/errorx"

	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
)

var (
	Errors        = errorx.NewNamespace("world")
	InvalidConfig = Errors.NewType("invalid_config")
)

/** @brief Shape of a single square grid on the y=0 plane. */
type GridConfig struct {
	/** @brief Number of squares along each side. */
	Squares int `toml:"squares" yaml:"squares"`
	/** @brief Edge length of one square. */
	Spacing float64 `toml:"spacing" yaml:"spacing"`
}

func DefaultGridConfig() GridConfig {
	return GridConfig{Squares: 10, Spacing: 1.0}
}

func (c GridConfig) Validate() error {
	if c.Squares <= 0 {
		return InvalidConfig.New("grid squares must be > 0, got %d", c.Squares)
	}
	if !(c.Spacing > 0) || !math.IsFinite(c.Spacing) {
		return InvalidConfig.New("grid spacing must be > 0, got %g", c.Spacing)
	}
	return nil
}

/**
 * @brief A square line grid. Grids are immutable; Translated returns a copy.
 */
type Grid struct {
	config   GridConfig
	vertices []math.Vec3
	edges    [][2]uint32
	batch    renderer.LineBatch
}

/**
 * @brief Builds (n+1)^2 vertices and 2n(n+1) edges. Edges alternate between
 * a segment along X and a segment along Z.
 */
func NewGrid(config GridConfig) (*Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	n := config.Squares
	half := n / 2
	row := uint32(n + 1)

	vertices := make([]math.Vec3, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			vertices = append(vertices, math.NewVec3(
				float64(i-half)*config.Spacing,
				0,
				float64(j-half)*config.Spacing,
			))
		}
	}

	alongX := make([][2]uint32, 0, n*(n+1))
	for j := uint32(0); j <= uint32(n); j++ {
		for i := uint32(0); i < uint32(n); i++ {
			alongX = append(alongX, [2]uint32{j*row + i, j*row + i + 1})
		}
	}
	alongZ := make([][2]uint32, 0, n*(n+1))
	for j := uint32(0); j < uint32(n); j++ {
		for i := uint32(0); i <= uint32(n); i++ {
			alongZ = append(alongZ, [2]uint32{j*row + i, (j+1)*row + i})
		}
	}

	edges := make([][2]uint32, 0, 2*n*(n+1))
	for k := range alongX {
		edges = append(edges, alongX[k], alongZ[k])
	}

	g := &Grid{config: config, vertices: vertices, edges: edges}
	g.batch = g.buildBatch()
	return g, nil
}

/** @brief Returns a new grid moved by offset. The receiver is untouched. */
func (g *Grid) Translated(offset math.Vec3) *Grid {
	vertices := make([]math.Vec3, len(g.vertices))
	for i, v := range g.vertices {
		vertices[i] = v.Add(offset)
	}
	moved := &Grid{config: g.config, vertices: vertices, edges: g.edges}
	moved.batch = moved.buildBatch()
	return moved
}

func (g *Grid) Config() GridConfig {
	return g.config
}

func (g *Grid) Vertices() []math.Vec3 {
	return append([]math.Vec3(nil), g.vertices...)
}

func (g *Grid) Edges() [][2]uint32 {
	return append([][2]uint32(nil), g.edges...)
}

/**
 * @brief Colour of edge i, a gradient over the index of its first vertex.
 * Red fades and green and blue rise with the index, clamped to [0, 1].
 */
func (g *Grid) EdgeColour(i int) [3]float32 {
	n2 := float32(g.config.Squares * g.config.Squares)
	k := float32(g.edges[i][0]+1) / n2
	return [3]float32{
		clampUnit(0.75 - k*0.5),
		clampUnit(0.25 + k*0.25),
		clampUnit(0.25 + k*2.0),
	}
}

func clampUnit(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

/** @brief The grid as GPU-ready line data. The batch is shared; do not modify it. */
func (g *Grid) Batch() renderer.LineBatch {
	return g.batch
}

func (g *Grid) buildBatch() renderer.LineBatch {
	batch := renderer.LineBatch{
		Vertices: make([]mgl32.Vec3, len(g.vertices)),
		Edges:    g.edges,
		Colours:  make([][3]float32, len(g.edges)),
	}
	for i, v := range g.vertices {
		batch.Vertices[i] = mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	for i := range g.edges {
		batch.Colours[i] = g.EdgeColour(i)
	}
	return batch
}
