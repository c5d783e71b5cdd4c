// internal/sequencer/states.go
package sequencer

import (
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/system"
)

// idleState — базовое состояние до броска и после сброса.
type idleState struct{}

func (s *idleState) Phase() component.Phase   { return component.PhaseIdle }
func (s *idleState) Enter()                   {}
func (s *idleState) Update(deltaTime float64) {}
func (s *idleState) Exit()                    {}

// flyingState — обычная интеграция. Оверлеи только ставят переходы в очередь.
type flyingState struct {
	m *Machine
}

func (s *flyingState) Phase() component.Phase { return component.PhaseFlying }

func (s *flyingState) Enter() {
	if s.m.incoming.Kind == entity.TransitionRelaunch {
		s.m.sys.Swingby.Relaunch()
	}
	s.m.world.Flying = true
}

func (s *flyingState) Update(deltaTime float64) {
	sys := s.m.sys
	sys.Physics.ApplyForces()
	sys.Turbulence.Update(deltaTime)
	sys.Physics.Integrate()
	sys.Triggers.Update(deltaTime)
	sys.Physics.CheckExit()
}

func (s *flyingState) Exit() {}

type swingbyState struct {
	m *Machine
}

func (s *swingbyState) Phase() component.Phase   { return component.PhaseSwingbyOrbiting }
func (s *swingbyState) Enter()                   { s.m.sys.Swingby.Start(s.m.incoming) }
func (s *swingbyState) Update(deltaTime float64) { s.m.sys.Swingby.Update(deltaTime) }
func (s *swingbyState) Exit()                    {}

type birdState struct {
	m *Machine
}

func (s *birdState) Phase() component.Phase   { return component.PhaseBirdAbduction }
func (s *birdState) Enter()                   { s.m.sys.Bird.Start() }
func (s *birdState) Update(deltaTime float64) { s.m.sys.Bird.Update(deltaTime) }
func (s *birdState) Exit()                    {}

type crashState struct {
	m *Machine
}

func (s *crashState) Phase() component.Phase   { return component.PhaseCrashLanded }
func (s *crashState) Enter()                   { s.m.sys.Crash.Start() }
func (s *crashState) Update(deltaTime float64) { s.m.sys.Crash.Update(deltaTime) }
func (s *crashState) Exit()                    {}

type moonState struct {
	m *Machine
}

func (s *moonState) Phase() component.Phase   { return component.PhaseMoonTransit }
func (s *moonState) Enter()                   { s.m.sys.Moon.Start() }
func (s *moonState) Update(deltaTime float64) { s.m.sys.Moon.Update(deltaTime) }
func (s *moonState) Exit()                    {}

// groundedState records the result and releases the event sequence.
type groundedState struct {
	m *Machine
}

func (s *groundedState) Phase() component.Phase { return component.PhaseGrounded }

func (s *groundedState) Enter() {
	w := s.m.world
	reason := s.m.incoming.Reason
	if reason == "" {
		reason = component.LandingAborted
	}
	res := system.BuildResult(w, reason)
	w.LastResult = &res
	w.Flying = false
	w.EventSequenceActive = false

	s.m.log.Info("flight landed",
		"flight", res.Sequence,
		"distance", res.DistanceMeters,
		"maxHeight", res.MaxHeightMeters,
		"event", string(res.Event),
		"reason", string(res.Reason))
	s.m.eventDispatcher.Dispatch(event.Event{
		Type: event.FlightLanded,
		Data: event.LandedData{Generation: w.Generation, Result: res},
	})
}

func (s *groundedState) Update(deltaTime float64) {}
func (s *groundedState) Exit()                    {}
