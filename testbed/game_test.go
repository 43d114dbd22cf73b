package testbed

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/spaghettifunk/gridflight/engine"
	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/platform"
	"github.com/spaghettifunk/gridflight/engine/renderer"
)

func TestFlightGameCountsWraps(t *testing.T) {
	g := NewGomegaWithT(t)

	cfg := config.Default()
	cfg.Camera.Start = [3]float64{0, 0, 49.9}
	cfg.Frame.MaxFrames = 20

	game, err := NewFlightGame(cfg, "")
	g.Expect(err).NotTo(HaveOccurred())

	// Full throttle for ten frames, turning a little to the right.
	var script []platform.HeadlessFrame
	for i := 0; i < 10; i++ {
		script = append(script, platform.HeadlessFrame{MouseDX: 3, Keys: []core.KeyCode{core.KEY_W}})
	}

	e, err := engine.New(game.Game, platform.NewHeadless(script...), renderer.NewLogBackend(800, 600))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(e.Initialize()).To(Succeed())
	g.Expect(e.Run()).To(Succeed())

	camera := game.state().WorldCamera
	g.Expect(game.Wraps()).To(Equal(uint64(1)))
	g.Expect(game.state().Reorients).To(Equal(uint64(1)))
	g.Expect(camera.Position().Z).To(BeNumerically("<", 0))
	g.Expect(camera.Forward().Y).To(BeNumerically("~", 0, 1e-12))
	g.Expect(camera.Speed()).To(BeNumerically("~", 0.1, 1e-12))

	g.Expect(e.Shutdown()).To(Succeed())
}
