// internal/sequencer/machine.go
package sequencer

import (
	"errors"
	"fmt"
	"log/slog"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/system"
)

var (
	// ErrAmbiguousAuthority means two owners claimed the airplane in one tick
	// or a transition left the legal graph.
	ErrAmbiguousAuthority = errors.New("ambiguous overlay authority")
	// ErrNotWaiting is returned by ReturnToEarth outside the moon wait.
	ErrNotWaiting = errors.New("not waiting for return to earth")
	// ErrNotLaunchable is returned by Launch while a flight is in progress.
	ErrNotLaunchable = errors.New("flight already in progress")
)

// FlightState — состояние полёта. Как и экранные состояния, получает Enter
// при входе и Exit при выходе.
type FlightState interface {
	Phase() component.Phase
	Enter()
	Update(deltaTime float64)
	Exit()
}

// Systems groups everything the flight states drive.
type Systems struct {
	Physics    *system.PhysicsSystem
	Turbulence *system.TurbulenceSystem
	Triggers   *system.TriggerSystem
	Swingby    *system.SwingbySystem
	Bird       *system.BirdSystem
	Crash      *system.CrashSystem
	Moon       *system.MoonSystem
}

var legal = map[component.Phase][]component.Phase{
	component.PhaseIdle:            {component.PhaseFlying},
	component.PhaseFlying:          {component.PhaseSwingbyOrbiting, component.PhaseBirdAbduction, component.PhaseCrashLanded, component.PhaseMoonTransit, component.PhaseGrounded},
	component.PhaseSwingbyOrbiting: {component.PhaseFlying},
	component.PhaseBirdAbduction:   {component.PhaseGrounded},
	component.PhaseCrashLanded:     {component.PhaseGrounded},
	component.PhaseMoonTransit:     {component.PhaseGrounded},
	component.PhaseGrounded:        {component.PhaseFlying},
}

// Legal reports whether the sequencer may move from one phase to another.
// Idle is reachable from anywhere through Reset and is not listed.
func Legal(from, to component.Phase) bool {
	for _, p := range legal[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Machine arbitrates which behaviour owns the airplane. Transitions queued
// during a tick are applied together when the tick ends.
type Machine struct {
	world           *entity.World
	sys             Systems
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
	strict          bool

	states   map[component.Phase]FlightState
	current  FlightState
	incoming entity.Transition
}

func NewMachine(world *entity.World, sys Systems, log *slog.Logger, eventDispatcher *event.Dispatcher) *Machine {
	m := &Machine{
		world:           world,
		sys:             sys,
		log:             log,
		eventDispatcher: eventDispatcher,
		strict:          config.Debug,
	}
	m.states = map[component.Phase]FlightState{
		component.PhaseIdle:            &idleState{},
		component.PhaseFlying:          &flyingState{m: m},
		component.PhaseSwingbyOrbiting: &swingbyState{m: m},
		component.PhaseBirdAbduction:   &birdState{m: m},
		component.PhaseCrashLanded:     &crashState{m: m},
		component.PhaseMoonTransit:     &moonState{m: m},
		component.PhaseGrounded:        &groundedState{m: m},
	}
	m.current = m.states[component.PhaseIdle]
	return m
}

// SetStrict switches between panicking and clamping on invariant violations.
func (m *Machine) SetStrict(strict bool) {
	m.strict = strict
}

func (m *Machine) Phase() component.Phase {
	return m.current.Phase()
}

// Launch hands a freshly thrown airplane to normal integration.
func (m *Machine) Launch() error {
	if !Legal(m.Phase(), component.PhaseFlying) || m.Phase() == component.PhaseSwingbyOrbiting {
		return ErrNotLaunchable
	}
	m.incoming = entity.Transition{}
	m.setState(component.PhaseFlying)
	return nil
}

// Update advances the authoritative state by one tick and commits what it queued.
func (m *Machine) Update(deltaTime float64) error {
	updated := m.Phase()
	m.current.Update(deltaTime)

	// движение этого тика сообщается до посадки, которую он вызвал
	if a := m.world.Airplane; a != nil && updated != component.PhaseIdle && updated != component.PhaseGrounded {
		m.eventDispatcher.Dispatch(event.Event{
			Type: event.AirplaneMoved,
			Data: event.MovedData{Flight: m.world.Flights, Phase: updated, Point: a.Position()},
		})
	}
	return m.commit()
}

// ReturnToEarth confirms the moon wait and grounds the flight.
func (m *Machine) ReturnToEarth() error {
	if m.Phase() != component.PhaseMoonTransit || !m.world.Moon.WaitingForReturn {
		return ErrNotWaiting
	}
	m.sys.Moon.Finish()
	m.incoming = entity.Transition{Kind: entity.TransitionLand, Reason: component.LandingMoon}
	m.setState(component.PhaseGrounded)
	return nil
}

// Reset drops whatever state is active and returns to Idle synchronously.
func (m *Machine) Reset() {
	m.world.Pending = nil
	m.incoming = entity.Transition{}
	m.setState(component.PhaseIdle)
}

func (m *Machine) commit() error {
	pending := m.world.TakePending()
	switch len(pending) {
	case 0:
		return nil
	case 1:
	default:
		return m.violation(fmt.Errorf("%w: %d transitions queued in one tick %v", ErrAmbiguousAuthority, len(pending), pending))
	}

	t := pending[0]
	from := m.Phase()
	to := m.target(t)
	if !Legal(from, to) {
		return m.violation(fmt.Errorf("%w: %s from %s to %s", ErrAmbiguousAuthority, t, from, to))
	}
	m.incoming = t
	m.setState(to)
	return nil
}

func (m *Machine) target(t entity.Transition) component.Phase {
	switch t.Kind {
	case entity.TransitionSwingbyStart:
		return component.PhaseSwingbyOrbiting
	case entity.TransitionRelaunch:
		return component.PhaseFlying
	case entity.TransitionBirdStart:
		return component.PhaseBirdAbduction
	case entity.TransitionCrashStart:
		return component.PhaseCrashLanded
	case entity.TransitionLand:
		if m.Phase() == component.PhaseFlying && m.world.SpecialEventTriggered {
			return component.PhaseMoonTransit
		}
		return component.PhaseGrounded
	}
	return component.PhaseIdle
}

func (m *Machine) violation(err error) error {
	if m.strict {
		panic(err)
	}
	m.log.Error("invariant violation, clamping to grounded", "error", err, "phase", m.Phase().String())
	m.incoming = entity.Transition{Kind: entity.TransitionLand, Reason: component.LandingAborted}
	m.setState(component.PhaseGrounded)
	return err
}

func (m *Machine) setState(phase component.Phase) {
	from := m.current.Phase()
	m.current.Exit()
	m.current = m.states[phase]
	m.current.Enter()
	if from != phase {
		m.log.Debug("flight state changed", "from", from.String(), "to", phase.String())
	}
	m.eventDispatcher.Dispatch(event.Event{
		Type: event.StateChanged,
		Data: event.StateData{From: from, To: phase},
	})
}
