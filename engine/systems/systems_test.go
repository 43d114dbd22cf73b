package systems

import (
	stdmath "math"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
	"github.com/spaghettifunk/gridflight/engine/math"
	"github.com/spaghettifunk/gridflight/engine/renderer"
)

func testMapperConfig() InputMapperConfig {
	return InputMapperConfig{YawDivisor: 3, PitchDivisor: 6, AccelStep: 0.01, RollStep: 1}
}

func initCore(t *testing.T) {
	t.Helper()
	_ = core.EventSystemShutdown()
	if !core.EventSystemInitialize() {
		t.Fatal("event system did not initialize")
	}
	if err := core.InputInitialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = core.InputShutdown()
		_ = core.EventSystemShutdown()
	})
}

func TestInputMapperMouse(t *testing.T) {
	g := NewGomegaWithT(t)

	m, err := NewInputMapper(testMapperConfig())
	g.Expect(err).NotTo(HaveOccurred())

	d := m.Map(InputSnapshot{MouseDX: 3, MouseDY: -12})
	g.Expect(d.Yaw).To(BeNumerically("~", math.DegToRad(1), 1e-12))
	g.Expect(d.Pitch).To(BeNumerically("~", math.DegToRad(-2), 1e-12))
	g.Expect(d.Roll).To(BeZero())
	g.Expect(d.Accelerate).To(BeZero())
}

func TestInputMapperKeyPrecedence(t *testing.T) {
	g := NewGomegaWithT(t)

	m, err := NewInputMapper(testMapperConfig())
	g.Expect(err).NotTo(HaveOccurred())

	all := m.Map(InputSnapshot{Forward: true, Backward: true, RollLeft: true, RollRight: true})
	g.Expect(all).To(Equal(FrameDelta{Accelerate: 0.01}))

	g.Expect(m.Map(InputSnapshot{Backward: true, RollLeft: true})).To(Equal(FrameDelta{Accelerate: -0.01}))
	g.Expect(m.Map(InputSnapshot{RollLeft: true, RollRight: true}).Roll).To(Equal(math.DegToRad(1)))
	g.Expect(m.Map(InputSnapshot{RollRight: true}).Roll).To(Equal(-math.DegToRad(1)))
}

func TestInputMapperRejectsBadConfig(t *testing.T) {
	g := NewGomegaWithT(t)

	_, err := NewInputMapper(InputMapperConfig{YawDivisor: 0, PitchDivisor: 6})
	g.Expect(err).To(HaveOccurred())

	m, err := NewInputMapper(testMapperConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.SetConfig(InputMapperConfig{YawDivisor: 1, PitchDivisor: -1})).NotTo(Succeed())
	g.Expect(m.Config()).To(Equal(testMapperConfig()))
}

func TestInputMapperPollsCoreState(t *testing.T) {
	g := NewGomegaWithT(t)
	initCore(t)

	m, err := NewInputMapper(testMapperConfig())
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(core.InputProcessMouseMove(30, 12)).To(Succeed())
	g.Expect(core.InputProcessKey(core.KEY_W, true)).To(Succeed())

	d := m.Poll()
	g.Expect(d.Yaw).To(BeNumerically("~", math.DegToRad(10), 1e-12))
	g.Expect(d.Pitch).To(BeNumerically("~", math.DegToRad(2), 1e-12))
	g.Expect(d.Accelerate).To(Equal(0.01))

	// Rolled over: no motion, key still held.
	g.Expect(core.InputUpdate(0)).To(Succeed())
	d = m.Poll()
	g.Expect(d.Yaw).To(BeZero())
	g.Expect(d.Pitch).To(BeZero())
	g.Expect(d.Accelerate).To(Equal(0.01))
}

func TestCameraSystemRejectsBadConfig(t *testing.T) {
	g := NewGomegaWithT(t)

	_, err := NewCameraSystem(&CameraSystemConfig{MapSize: 0, MaxAcceleration: 3})
	g.Expect(err).To(HaveOccurred())
	_, err = NewCameraSystem(&CameraSystemConfig{MapSize: 100, MaxAcceleration: -1})
	g.Expect(err).To(HaveOccurred())
}

func TestCameraSystemAcceleratesBeforeMoving(t *testing.T) {
	g := NewGomegaWithT(t)

	cs, err := NewCameraSystem(&CameraSystemConfig{MapSize: 100, MaxAcceleration: 3})
	g.Expect(err).NotTo(HaveOccurred())

	result := cs.Apply(FrameDelta{Accelerate: 1})
	g.Expect(result.AnyWrapped()).To(BeFalse())
	g.Expect(cs.GetDefault().Position().Compare(math.NewVec3(0, 0, 1), 1e-12)).To(BeTrue())

	cs.Apply(FrameDelta{Accelerate: 5})
	g.Expect(cs.GetDefault().Speed()).To(Equal(3.0))
	g.Expect(cs.GetDefault().Position().Z).To(BeNumerically("~", 4, 1e-12))
}

func TestCameraSystemFiresWrapEvent(t *testing.T) {
	g := NewGomegaWithT(t)
	initCore(t)

	cs, err := NewCameraSystem(&CameraSystemConfig{
		MapSize:         100,
		Start:           math.NewVec3(0, 0, 49.5),
		MaxAcceleration: 3,
	})
	g.Expect(err).NotTo(HaveOccurred())

	var got *core.CameraEvent
	core.EventRegister(core.EVENT_CODE_CAMERA_WRAPPED, func(ctx core.EventContext) bool {
		got = ctx.Data.(*core.CameraEvent)
		return true
	})

	result := cs.Apply(FrameDelta{Accelerate: 1})
	g.Expect(result.Wrapped).To(Equal([3]bool{false, false, true}))
	g.Expect(result.Reoriented).To(BeTrue())
	g.Expect(got).NotTo(BeNil())
	g.Expect(got.Wrapped).To(Equal(result.Wrapped))
	g.Expect(got.PosZ).To(Equal(-50.0))
}

func TestCameraSystemRecoversFromBadInput(t *testing.T) {
	g := NewGomegaWithT(t)

	cs, err := NewCameraSystem(&CameraSystemConfig{MapSize: 100, MaxAcceleration: 3})
	g.Expect(err).NotTo(HaveOccurred())

	before := cs.GetDefault().Orientation()
	cs.Apply(FrameDelta{Yaw: stdmath.Inf(1)})
	g.Expect(cs.GetDefault().Orientation()).To(Equal(before))
	g.Expect(cs.Recovered()).To(Equal(uint64(1)))
}

func TestCameraSystemResize(t *testing.T) {
	g := NewGomegaWithT(t)

	cs, err := NewCameraSystem(&CameraSystemConfig{MapSize: 100, MaxAcceleration: 3, AspectRatio: 1})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cs.GetDefault().Projection().Aspect).To(Equal(1.0))

	cs.OnResize(1280, 720)
	g.Expect(cs.GetDefault().Projection().Aspect).To(BeNumerically("~", 1280.0/720.0, 1e-12))
	cs.OnResize(0, 720)
	g.Expect(cs.GetDefault().Projection().Aspect).To(BeNumerically("~", 1280.0/720.0, 1e-12))

	cs.SetMaxAcceleration(-2)
	g.Expect(cs.GetDefault().MaxAcceleration()).To(Equal(3.0))
	cs.SetMaxAcceleration(0.5)
	g.Expect(cs.GetDefault().MaxAcceleration()).To(Equal(0.5))
}

func TestSystemManagerFrame(t *testing.T) {
	g := NewGomegaWithT(t)

	cfg := config.Default()
	cfg.Telemetry.Path = filepath.Join(t.TempDir(), "flight.csv")
	backend := renderer.NewLogBackend(cfg.Window.Width, cfg.Window.Height)

	sm, err := NewSystemManager(cfg, backend)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sm.RendererSystem.World().Grids()).To(HaveLen(27))

	sm.Step(FrameDelta{Accelerate: 0.5})
	packet, err := sm.BuildPacket(1.0 / 15)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(packet.Basis.Eye.Z).To(BeNumerically("~", 0.5, 1e-12))
	g.Expect(packet.SegmentCount()).To(Equal(27 * 2 * 10 * 11))

	g.Expect(sm.DrawFrame(packet)).To(Succeed())
	g.Expect(sm.RendererSystem.FrameNumber).To(Equal(uint64(1)))
	g.Expect(backend.Stats().Segments).To(Equal(uint64(27 * 2 * 10 * 11)))

	g.Expect(sm.OnResize(1024, 512)).To(Succeed())
	g.Expect(sm.CameraSystem.GetDefault().Projection().Aspect).To(Equal(2.0))

	g.Expect(sm.Shutdown()).To(Succeed())
	data, err := os.ReadFile(cfg.Telemetry.Path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(HavePrefix("session,frame"))
}

func TestSystemManagerApplyConfig(t *testing.T) {
	g := NewGomegaWithT(t)

	sm, err := NewSystemManager(config.Default(), renderer.NewLogBackend(800, 600))
	g.Expect(err).NotTo(HaveOccurred())
	t.Cleanup(func() { _ = sm.Shutdown() })

	next := config.Default()
	next.Camera.MaxAcceleration = 1.5
	next.Input.YawDivisor = 9
	g.Expect(sm.ApplyConfig(next)).To(Succeed())
	g.Expect(sm.CameraSystem.GetDefault().MaxAcceleration()).To(Equal(1.5))
	g.Expect(sm.InputMapper.Config().YawDivisor).To(Equal(9.0))
	g.Expect(sm.Config()).To(BeIdenticalTo(next))

	bad := config.Default()
	bad.Input.PitchDivisor = 0
	g.Expect(sm.ApplyConfig(bad)).NotTo(Succeed())
	g.Expect(sm.Config()).To(BeIdenticalTo(next))
}
