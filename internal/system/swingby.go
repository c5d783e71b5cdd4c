// internal/system/swingby.go
package system

import (
	"log/slog"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/utils"
)

// SwingbySystem ведёт самолётик по наклонному эллипсу вокруг зоны.
type SwingbySystem struct {
	world           *entity.World
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
}

func NewSwingbySystem(world *entity.World, log *slog.Logger, eventDispatcher *event.Dispatcher) *SwingbySystem {
	return &SwingbySystem{world: world, log: log, eventDispatcher: eventDispatcher}
}

// Start centres the orbit on the triggering zone. The start angle is taken
// from the entry point so the orbit begins where the airplane was.
func (s *SwingbySystem) Start(t entity.Transition) {
	w := s.world
	centre := component.Point{X: t.At.X, Y: t.At.Y}
	if t.Zone != nil {
		centre = component.Point{X: t.Zone.CenterX, Y: t.Zone.CenterY}
	}
	start := math.Atan2(t.At.Y-centre.Y, t.At.X-centre.X)
	w.Swingby = &component.SwingbyState{
		CenterX:      centre.X,
		CenterY:      centre.Y,
		RadiusX:      config.SwingbyRadiusX,
		RadiusY:      config.SwingbyRadiusY,
		Tilt:         config.SwingbyTilt,
		StartAngle:   start,
		CurrentAngle: start,
		Relaunch:     t.Plan,
		EntryX:       t.At.X,
		EntryY:       t.At.Y,
	}
	w.SpecialEventTriggered = true
	w.EventSequenceActive = true
	s.eventDispatcher.Dispatch(event.Event{Type: event.SwingbyStarted, Data: *w.Swingby})
}

// Update advances the orbit by one tick and queues the relaunch after the
// configured number of revolutions.
func (s *SwingbySystem) Update(deltaTime float64) {
	w := s.world
	st, a := w.Swingby, w.Airplane
	if st == nil || a == nil || w.HasPending() {
		return
	}
	st.CurrentAngle += config.SwingbyAngularSpeed
	a.X, a.Y = OrbitPoint(st, st.CurrentAngle)
	a.VX, a.VY = 0, 0
	a.Rotation = OrbitHeading(st, st.CurrentAngle)
	a.Trail.Push(a.Position(), config.SwingbyTrailCap)

	if Revolutions(st.StartAngle, st.CurrentAngle) > st.RotationCount {
		st.RotationCount++
		s.log.Info("swingby revolution", "count", st.RotationCount)
		s.eventDispatcher.Dispatch(event.Event{Type: event.SwingbyRevolution, Data: st.RotationCount})
	}
	if st.RotationCount >= config.SwingbyRevolutions {
		w.Queue(entity.Transition{Kind: entity.TransitionRelaunch, At: a.Position()})
	}
}

// Relaunch throws the captured plan from the orbit exit point with the boost.
func (s *SwingbySystem) Relaunch() {
	w := s.world
	st := w.Swingby
	if st == nil {
		return
	}
	x, y := OrbitPoint(st, st.CurrentAngle)
	plan := st.Relaunch
	w.Airplane = Launch(x, y, plan.Angle, plan.Power, plan.Balance, config.SwingbyBoost)
	w.FlightStart = w.Time
	w.Swingby = nil
	w.Relaunches++

	a := w.Airplane
	s.log.Info("swingby relaunch", "x", x, "y", y, "speed", math.Hypot(a.VX, a.VY))
	s.eventDispatcher.Dispatch(event.Event{Type: event.SwingbyRelaunched, Data: a.Position()})
}

// OrbitPoint returns the position on the tilted ellipse at angle theta.
func OrbitPoint(st *component.SwingbyState, theta float64) (float64, float64) {
	ex := math.Cos(theta) * st.RadiusX
	ey := math.Sin(theta) * st.RadiusY
	rx, ry := utils.Rotate(ex, ey, st.Tilt)
	return st.CenterX + rx, st.CenterY + ry
}

// OrbitHeading is the tangent direction of the tilted ellipse at theta.
func OrbitHeading(st *component.SwingbyState, theta float64) float64 {
	tx := -math.Sin(theta) * st.RadiusX
	ty := math.Cos(theta) * st.RadiusY
	rx, ry := utils.Rotate(tx, ty, st.Tilt)
	return math.Atan2(ry, rx)
}

// Revolutions counts full turns swept since start.
func Revolutions(start, current float64) int {
	return int(math.Floor((current - start) / (2 * math.Pi)))
}
