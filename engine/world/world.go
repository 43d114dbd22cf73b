package world

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
)

/**
 * @brief The visible world: a center grid and its 26 neighbours, one map
 * size apart along every axis combination, so the wraparound seam is never
 * empty.
 */
type World struct {
	id      uuid.UUID
	mapSize float64
	grids   []*Grid
}

func NewWorld(mapSize float64, config GridConfig) (*World, error) {
	if !(mapSize > 0) || !math.IsFinite(mapSize) {
		return nil, InvalidConfig.New("map size must be > 0, got %g", mapSize)
	}
	center, err := NewGrid(config)
	if err != nil {
		return nil, err
	}

	w := &World{
		id:      uuid.New(),
		mapSize: mapSize,
		grids:   make([]*Grid, 0, 27),
	}
	w.grids = append(w.grids, center)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				offset := math.NewVec3(float64(x)*mapSize, float64(y)*mapSize, float64(z)*mapSize)
				w.grids = append(w.grids, center.Translated(offset))
			}
		}
	}
	core.LogDebug("world %s built: %d grids of %d squares, map size %g", w.id, len(w.grids), config.Squares, mapSize)
	return w, nil
}

func (w *World) ID() uuid.UUID {
	return w.id
}

func (w *World) MapSize() float64 {
	return w.mapSize
}

func (w *World) Grids() []*Grid {
	return append([]*Grid(nil), w.grids...)
}

// Render hands every grid to the drawer, center grid first.
func (w *World) Render(r renderer.LineDrawer) error {
	for _, g := range w.grids {
		if err := r.DrawLines(g.Batch()); err != nil {
			return err
		}
	}
	return nil
}
