// internal/system/overlays_test.go
package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
)

func swingbyTransition(at component.Point) entity.Transition {
	zones := defs.DefaultZones()
	return entity.Transition{Kind: entity.TransitionSwingbyStart, Zone: &zones[0], Plan: RelaunchPlan, At: at}
}

func TestRevolutions(t *testing.T) {
	assert.Equal(t, 0, Revolutions(1, 1+2*math.Pi-0.01))
	assert.Equal(t, 1, Revolutions(1, 1+2*math.Pi))
	assert.Equal(t, 2, Revolutions(-3, -3+4*math.Pi+0.1))
}

func TestOrbitPoint_TiltedEllipse(t *testing.T) {
	st := &component.SwingbyState{CenterX: 10, CenterY: 25, RadiusX: 15, RadiusY: 8}
	x, y := OrbitPoint(st, 0)
	assert.InDelta(t, 25, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)

	st.Tilt = math.Pi / 2
	x, y = OrbitPoint(st, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 40, y, 1e-9)
	assert.InDelta(t, math.Pi, OrbitHeading(st, 0), 1e-9)
}

func TestSwingby_TwoRevolutionsThenRelaunch(t *testing.T) {
	w := secretWorld(17, 25)
	d := event.NewDispatcher()
	c := &captured{}
	d.SubscribeAll(c, event.SwingbyStarted, event.SwingbyRevolution, event.SwingbyRelaunched)
	s := NewSwingbySystem(w, testLogger(), d)

	s.Start(swingbyTransition(component.Point{X: 17, Y: 25}))
	require.NotNil(t, w.Swingby)
	assert.True(t, w.SpecialEventTriggered)
	assert.True(t, w.EventSequenceActive)
	assert.Equal(t, 10.0, w.Swingby.CenterX)
	assert.Equal(t, 25.0, w.Swingby.CenterY)
	assert.InDelta(t, 0, w.Swingby.StartAngle, 1e-12)

	ticks := 0
	for !w.HasPending() && ticks < 1000 {
		s.Update(1.0 / 60)
		ticks++
	}
	require.Len(t, w.Pending, 1)
	assert.Equal(t, entity.TransitionRelaunch, w.Pending[0].Kind)
	assert.Equal(t, 84, ticks)
	assert.Equal(t, 2, w.Swingby.RotationCount)
	assert.Equal(t, 2, c.count(event.SwingbyRevolution))
	assert.Equal(t, config.SwingbyTrailCap, w.Airplane.Trail.Len())
	assert.Zero(t, w.Airplane.VX)

	w.TakePending()
	w.Time = 3
	s.Relaunch()
	assert.Nil(t, w.Swingby)
	assert.Equal(t, 1, w.Relaunches)
	assert.Equal(t, 3.0, w.FlightStart)
	assert.Equal(t, 0, w.Airplane.Trail.Len())
	assert.InDelta(t, 9.72, math.Hypot(w.Airplane.VX, w.Airplane.VY), 1e-9)
	assert.Equal(t, 1, c.count(event.SwingbyRelaunched))
}

func TestSwingby_StartAngleFromEntryPoint(t *testing.T) {
	w := secretWorld(10, 30)
	s := NewSwingbySystem(w, testLogger(), event.NewDispatcher())

	s.Start(swingbyTransition(component.Point{X: 10, Y: 30}))
	assert.InDelta(t, math.Pi/2, w.Swingby.StartAngle, 1e-12)
	assert.Equal(t, w.Swingby.StartAngle, w.Swingby.CurrentAngle)
}

func TestBird_ApproachCarryAndLand(t *testing.T) {
	w := flyingWorld(65, 55)
	w.Airplane.VX = 2
	s := NewBirdSystem(w, testLogger(), event.NewDispatcher())

	assert.Equal(t, 166.0, BirdEntryX())
	s.Start()
	assert.True(t, w.Bird.Active)
	assert.True(t, w.EventSequenceActive)
	assert.Equal(t, 65.0, w.Bird.StartY)
	assert.Zero(t, w.Airplane.VX)

	w.Time = 0.75
	s.Update(1.0 / 60)
	assert.InDelta(t, 115.5, w.Bird.BirdX, 1e-9)
	assert.Equal(t, 65.0, w.Airplane.X)
	assert.False(t, w.Bird.CarryStarted)

	w.Time = 1.5
	s.Update(1.0 / 60)
	require.True(t, w.Bird.CarryStarted)
	assert.Equal(t, 65.0, w.Bird.AnchorX)
	assert.InDelta(t, 55, w.Airplane.Y, 1e-9)

	w.Time = 3.5
	s.Update(1.0 / 60)
	assert.InDelta(t, 55+0.4/0.7*40, w.Airplane.Y, 1e-9)
	assert.InDelta(t, 65, w.Airplane.X, config.BirdSway)
	assert.InDelta(t, w.Airplane.Y+config.BirdHoverHeight, w.Bird.BirdY, 1e-9)
	assert.False(t, w.HasPending())

	w.Time = 5
	s.Update(1.0 / 60)
	require.Len(t, w.Pending, 1)
	assert.Equal(t, component.LandingBirdCarry, w.Pending[0].Reason)
	assert.True(t, w.Bird.Completed)
	assert.False(t, w.Bird.Active)
}

func TestCrash_FreezesThenLands(t *testing.T) {
	w := flyingWorld(72, 5)
	w.Airplane.VX, w.Airplane.VY = 1, -1
	d := event.NewDispatcher()
	c := &captured{}
	d.Subscribe(event.PoopCrashStarted, c)
	s := NewCrashSystem(w, testLogger(), d)

	s.Start()
	assert.True(t, w.Crash.Triggered)
	assert.Equal(t, 72.0, w.Crash.PoopX)
	assert.Equal(t, 2.0, w.Airplane.Y)
	assert.InDelta(t, -math.Pi/2, w.Airplane.Rotation, 1e-12)
	assert.Equal(t, 1, c.count(event.PoopCrashStarted))

	w.Time = 2.9
	w.Airplane.X = 80
	s.Update(1.0 / 60)
	assert.False(t, w.HasPending())
	assert.Equal(t, 72.0, w.Airplane.X)

	w.Time = 3
	s.Update(1.0 / 60)
	require.Len(t, w.Pending, 1)
	assert.Equal(t, component.LandingCrash, w.Pending[0].Reason)
}

func TestMoon_PhasesAndWait(t *testing.T) {
	w := flyingWorld(30, 20)
	w.SpecialEventTriggered = true
	d := event.NewDispatcher()
	c := &captured{}
	d.Subscribe(event.MoonPhaseChanged, c)
	s := NewMoonSystem(w, testLogger(), d)

	s.Start()
	assert.False(t, w.SpecialEventTriggered)
	assert.False(t, w.Flying)
	assert.True(t, w.EventSequenceActive)

	w.Time = 4.3
	s.Update(1.0 / 60)
	assert.Equal(t, component.MoonLanding, w.Moon.Phase)
	assert.Equal(t, 4.3, w.Moon.LandingStartTime)

	w.Time = 6.0
	s.Update(1.0 / 60)
	assert.Equal(t, component.MoonLanded, w.Moon.Phase)
	assert.False(t, w.Moon.WaitingForReturn)

	w.Time = 7
	s.Update(1.0 / 60)
	assert.True(t, w.Moon.WaitingForReturn)
	assert.Equal(t, config.MoonDistance, w.Airplane.X)
	assert.Equal(t, config.MoonDistance, w.MaxHeight)
	assert.Equal(t, 0, w.Airplane.Trail.Len())

	// no timeout while waiting
	w.Time = 1000
	s.Update(1.0 / 60)
	assert.True(t, w.Moon.WaitingForReturn)
	assert.Equal(t, 2, c.count(event.MoonPhaseChanged))

	s.Finish()
	assert.True(t, w.Moon.Completed)
	assert.False(t, w.Moon.Active)
}

func TestMoon_LongTickCrossesBothPhases(t *testing.T) {
	w := flyingWorld(30, 20)
	d := event.NewDispatcher()
	c := &captured{}
	d.Subscribe(event.MoonPhaseChanged, c)
	s := NewMoonSystem(w, testLogger(), d)

	s.Start()
	w.Time = 7.5
	s.Update(1.0 / 60)
	assert.Equal(t, component.MoonLanded, w.Moon.Phase)
	assert.True(t, w.Moon.WaitingForReturn)
	assert.Equal(t, 2, c.count(event.MoonPhaseChanged))
}
