// internal/system/crash.go
package system

import (
	"log/slog"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
)

// CrashSystem freezes the airplane nose-down at the impact point.
type CrashSystem struct {
	world           *entity.World
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
}

func NewCrashSystem(world *entity.World, log *slog.Logger, eventDispatcher *event.Dispatcher) *CrashSystem {
	return &CrashSystem{world: world, log: log, eventDispatcher: eventDispatcher}
}

func (s *CrashSystem) Start() {
	w := s.world
	a := w.Airplane
	w.Crash = component.PoopCrashEvent{
		Active:    true,
		StartTime: w.Time,
		Duration:  config.CrashDuration,
		PoopX:     a.X,
		PoopY:     0,
		Triggered: true,
	}
	w.EventSequenceActive = true
	s.freeze()
	s.eventDispatcher.Dispatch(event.Event{Type: event.PoopCrashStarted, Data: a.Position()})
}

func (s *CrashSystem) Update(deltaTime float64) {
	w := s.world
	c := &w.Crash
	if !c.Active || w.Airplane == nil || w.HasPending() {
		return
	}
	c.Progress = (w.Time - c.StartTime) / c.Duration
	if c.Progress >= 1 {
		c.Active = false
		c.Progress = 1
		w.Queue(entity.Transition{Kind: entity.TransitionLand, Reason: component.LandingCrash, At: w.Airplane.Position()})
		return
	}
	s.freeze()
}

func (s *CrashSystem) freeze() {
	a, c := s.world.Airplane, s.world.Crash
	a.X = c.PoopX
	a.Y = c.PoopY + config.CrashRestHeight
	a.VX, a.VY = 0, 0
	a.Rotation = -math.Pi / 2
}
