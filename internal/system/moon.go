// internal/system/moon.go
package system

import (
	"log/slog"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
)

// MoonSystem ведёт лунную заставку: полёт, посадка, ожидание возврата.
type MoonSystem struct {
	world           *entity.World
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
}

func NewMoonSystem(world *entity.World, log *slog.Logger, eventDispatcher *event.Dispatcher) *MoonSystem {
	return &MoonSystem{world: world, log: log, eventDispatcher: eventDispatcher}
}

func (s *MoonSystem) Start() {
	w := s.world
	w.SpecialEventTriggered = false
	w.Flying = false
	w.EventSequenceActive = true
	w.Moon = component.MoonFlightEvent{
		Active:    true,
		StartTime: w.Time,
		Duration:  config.MoonDuration,
		Phase:     component.MoonFlight,
	}
	s.log.Info("moon transit started")
	s.eventDispatcher.Dispatch(event.Event{Type: event.MoonTransitStarted})
}

// Update advances the sub-phases. After the landed phase completes the
// cut-scene waits for ReturnToEarth with no timeout.
func (s *MoonSystem) Update(deltaTime float64) {
	w := s.world
	m := &w.Moon
	if !m.Active || m.WaitingForReturn {
		return
	}
	m.Progress = (w.Time - m.StartTime) / m.Duration

	if m.Phase == component.MoonFlight && m.Progress > config.MoonLandingShare {
		m.Phase = component.MoonLanding
		m.LandingStartTime = w.Time
		s.phaseChanged()
	}
	if m.Phase == component.MoonLanding && m.Progress > config.MoonLandedShare {
		m.Phase = component.MoonLanded
		s.phaseChanged()
	}
	if m.Progress < 1 {
		return
	}

	m.Progress = 1
	m.WaitingForReturn = true
	if a := w.Airplane; a != nil {
		a.X, a.Y = config.MoonDistance, config.MoonDistance
		a.VX, a.VY = 0, 0
		a.Trail.Clear()
	}
	w.MaxHeight = config.MoonDistance
	s.log.Info("landed on the moon, waiting for return")
}

// Finish marks the cut-scene done once the return is confirmed.
func (s *MoonSystem) Finish() {
	m := &s.world.Moon
	m.Active = false
	m.WaitingForReturn = false
	m.Completed = true
}

func (s *MoonSystem) phaseChanged() {
	s.log.Debug("moon phase changed", "phase", s.world.Moon.Phase.String())
	s.eventDispatcher.Dispatch(event.Event{Type: event.MoonPhaseChanged, Data: s.world.Moon.Phase})
}
