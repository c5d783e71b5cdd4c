// internal/system/physics.go
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

// PhysicsSystem интегрирует полёт, пока ни один оверлей не управляет самолётиком.
type PhysicsSystem struct {
	world           *entity.World
	rng             utils.RandomSource
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
}

func NewPhysicsSystem(world *entity.World, rng utils.RandomSource, log *slog.Logger, eventDispatcher *event.Dispatcher) *PhysicsSystem {
	return &PhysicsSystem{world: world, rng: rng, log: log, eventDispatcher: eventDispatcher}
}

// Launch builds an airplane at (x, y) thrown at angleDeg. boost scales the
// base speed; a plain throw uses 1.
func Launch(x, y, angleDeg, power, balance, boost float64) *component.Airplane {
	rad := utils.DegToRad(angleDeg)
	effect := BalanceEffect(balance)
	speed := power * config.BaseSpeedPerPower * boost * effect.VelocityMultiplier
	return &component.Airplane{
		X:               x,
		Y:               y,
		VX:              math.Cos(rad) * speed,
		VY:              math.Sin(rad) * speed,
		Rotation:        rad,
		Stability:       effect.Stability,
		LiftCoefficient: effect.LiftCoefficient,
	}
}

// ApplyForces runs gravity, glide, drag and lift for one tick.
func (s *PhysicsSystem) ApplyForces() {
	a := s.world.Airplane
	if a == nil {
		return
	}
	p := s.world.Params

	a.VY -= config.Gravity

	if GlideConditionMet(p.Balance, p.Angle, a.VY) {
		e := GlideEffect(p.Balance, p.Angle, s.rng)
		a.VY *= 1 - e
		a.VX *= 1 + e*0.5
		a.VY += config.Gravity * e * 0.5
		s.trackGlide(e)
	} else if s.world.Gliding.Gliding {
		g := &s.world.Gliding
		g.Gliding = false
		s.log.Debug("gliding ended", "seconds", s.world.Time-g.StartTime, "peak", g.PeakEffect)
	}

	eff := EffectiveAirResistance(a.Stability)
	a.VX *= eff
	a.VY *= eff

	if a.VY < 0 {
		a.VY *= 1 - (a.LiftCoefficient-1)*0.1
	}
}

func (s *PhysicsSystem) trackGlide(effect float64) {
	g := &s.world.Gliding
	if !g.Gliding {
		g.Gliding = true
		g.StartTime = s.world.Time
		g.Reported = false
	}
	g.LastEffect = effect
	g.PeakEffect = math.Max(g.PeakEffect, effect)

	if !g.Reported && s.world.Time-g.StartTime > config.GlideReportAfter {
		g.Reported = true
		s.log.Info("gliding", "effect", effect, "strong", effect >= config.GlideSoftCap,
			"balance", s.world.Params.Balance, "angle", s.world.Params.Angle)
		s.eventDispatcher.Dispatch(event.Event{Type: event.GlidingStarted, Data: effect})
	}
}

// Integrate moves the airplane, turns it toward its velocity and records the trail.
func (s *PhysicsSystem) Integrate() {
	a := s.world.Airplane
	if a == nil {
		return
	}
	a.X += a.VX
	a.Y += a.VY
	s.world.MaxHeight = math.Max(s.world.MaxHeight, math.Max(0, a.Y))

	target := math.Atan2(a.VY, a.VX)
	a.Rotation += (target - a.Rotation) * 0.1 * math.Min(a.Stability, 1.5)

	a.Trail.Push(a.Position(), config.TrailCap)
}

// CheckExit queues a landing once the airplane touches the ground, leaves
// the field or exceeds the flight ceiling.
func (s *PhysicsSystem) CheckExit() {
	a := s.world.Airplane
	if a == nil || s.world.HasPending() {
		return
	}
	ceiling := config.FlightCeiling
	if s.world.SpecialEventTriggered {
		ceiling = config.SwingbyFlightCeiling
	}
	reason, done := ExitReason(a.X, a.Y, s.world.FlightDuration(), ceiling)
	if !done {
		return
	}
	if reason == component.LandingTimeLimit {
		s.log.Warn("flight ceiling reached, forcing landing",
			"seconds", s.world.FlightDuration(), "x", a.X, "y", a.Y)
	}
	s.world.Queue(entity.Transition{Kind: entity.TransitionLand, Reason: reason, At: a.Position()})
}

// ExitReason evaluates the landing predicates in priority order.
func ExitReason(x, y, flightSeconds, ceiling float64) (component.LandingReason, bool) {
	switch {
	case y <= 0:
		return component.LandingGround, true
	case x > config.MaxX || x < config.MinX || y > config.MaxY:
		return component.LandingOutOfBounds, true
	case flightSeconds > ceiling:
		return component.LandingTimeLimit, true
	}
	return "", false
}

// GlideConditionMet — задний баланс, угол меньше 45° и самолётик уже снижается.
func GlideConditionMet(balance, angle, vy float64) bool {
	return balance >= config.GlideMinBalance && angle < config.GlideMaxAngle && vy < 0
}

// GlideBase is the unclamped glide effect.
func GlideBase(balance, angle float64) float64 {
	return (balance - 6) / 4 * (config.GlideMaxAngle - angle) / config.GlideMaxAngle * config.GlideScale
}

// GlideEffect applies the probabilistic soft cap: effects at or above 13 %
// survive a draw with 8 % chance, otherwise they are resampled into [12 %, 13 %).
func GlideEffect(balance, angle float64, rng utils.RandomSource) float64 {
	e := GlideBase(balance, angle)
	if e >= config.GlideSoftCap && rng.Float64() > config.GlideCapKeepChance {
		e = config.GlideResampleBase + rng.Float64()*config.GlideResampleSpread
	}
	return e
}

// EffectiveAirResistance weakens the drag factor as stability drops below 1.
func EffectiveAirResistance(stability float64) float64 {
	r := config.AirResistance
	return r + (1-r)*(1-stability)*0.5
}
