package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/onsi/gomega"

	"github.com/spaghettifunk/gridflight/engine/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	cfg, err := Load("")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.World.MapSize).To(gomega.Equal(100.0))
	g.Expect(cfg.World.Grid.Squares).To(gomega.Equal(10))
	g.Expect(cfg.Camera.MaxAcceleration).To(gomega.Equal(3.0))
	g.Expect(cfg.Input.YawDivisor).To(gomega.Equal(3.0))
	g.Expect(cfg.Input.PitchDivisor).To(gomega.Equal(6.0))
	g.Expect(cfg.Input.AccelStep).To(gomega.Equal(0.01))
	g.Expect(cfg.Input.RollStep).To(gomega.Equal(1.0))
	g.Expect(cfg.Frame.TargetFPS).To(gomega.Equal(15.0))
	g.Expect(cfg.Telemetry.Path).To(gomega.BeEmpty())
	g.Expect(cfg.AspectRatio()).To(gomega.BeNumerically("~", 4.0/3.0, 1e-12))

	level, err := cfg.LogLevel()
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(level).To(gomega.Equal(core.InfoLevel))
}

func TestLoadTOMLOverlay(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	path := writeFile(t, t.TempDir(), "flight.toml", `
[world]
map_size = 40.0

[camera]
start = [1.0, 2.0, 3.0]

[log]
level = "debug"
`)
	cfg, err := Load(path)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.World.MapSize).To(gomega.Equal(40.0))
	g.Expect(cfg.Camera.Start).To(gomega.Equal([3]float64{1, 2, 3}))
	g.Expect(cfg.Log.Level).To(gomega.Equal("debug"))
	// Untouched keys keep their defaults.
	g.Expect(cfg.World.Grid.Squares).To(gomega.Equal(10))
	g.Expect(cfg.Window.Width).To(gomega.Equal(uint32(800)))
}

func TestLoadYAMLOverlay(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	path := writeFile(t, t.TempDir(), "flight.yaml", `
input:
  yaw_divisor: 5
  roll_step: 2.5
telemetry:
  path: flight.csv
`)
	cfg, err := Load(path)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(cfg.Input.YawDivisor).To(gomega.Equal(5.0))
	g.Expect(cfg.Input.RollStep).To(gomega.Equal(2.5))
	g.Expect(cfg.Input.PitchDivisor).To(gomega.Equal(6.0))
	g.Expect(cfg.Telemetry.Path).To(gomega.Equal("flight.csv"))
}

func TestLoadRejectsBadInput(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "flight.json", `{}`))
	g.Expect(errorx.IsOfType(err, Unsupported)).To(gomega.BeTrue())

	_, err = Load(writeFile(t, dir, "zero.toml", "[world]\nmap_size = 0.0\n"))
	g.Expect(errorx.IsOfType(err, Invalid)).To(gomega.BeTrue())

	_, err = Load(writeFile(t, dir, "divisor.yaml", "input:\n  pitch_divisor: 0\n"))
	g.Expect(errorx.IsOfType(err, Invalid)).To(gomega.BeTrue())

	_, err = Load(writeFile(t, dir, "level.toml", "[log]\nlevel = \"loud\"\n"))
	g.Expect(errorx.IsOfType(err, Invalid)).To(gomega.BeTrue())

	_, err = Load(writeFile(t, dir, "grid.toml", "[world.grid]\nsquares = 0\n"))
	g.Expect(errorx.IsOfType(err, Invalid)).To(gomega.BeTrue())

	_, err = Load(writeFile(t, dir, "broken.toml", "[world\n"))
	g.Expect(err).To(gomega.HaveOccurred())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	g.Expect(err).To(gomega.HaveOccurred())
}

func TestWatcherPublishesReloads(t *testing.T) {
	g := gomega.NewGomegaWithT(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "flight.toml", "[camera]\nmax_acceleration = 3.0\n")

	w, err := NewWatcher(path)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	defer w.Close()

	// Invalid edits are skipped.
	writeFile(t, dir, "flight.toml", "[camera]\nmax_acceleration = -1.0\n")
	writeFile(t, dir, "other.toml", "[camera]\nmax_acceleration = 9.0\n")
	writeFile(t, dir, "flight.toml", "[camera]\nmax_acceleration = 5.0\n")

	g.Eventually(func() float64 {
		if cfg, ok := w.Latest(); ok {
			return cfg.Camera.MaxAcceleration
		}
		return 0
	}, "5s", "20ms").Should(gomega.Equal(5.0))

	g.Expect(w.Close()).To(gomega.Succeed())
	for range w.Updates() {
	}
	_, ok := w.Latest()
	g.Expect(ok).To(gomega.BeFalse())
}
