// internal/app/game.go
package app

import (
	"errors"
	"log/slog"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/sequencer"
	"go-paper-airplane/internal/system"
	"go-paper-airplane/internal/utils"
)

var (
	// ErrFlightActive rejects a throw while the airplane is still in the air.
	ErrFlightActive = errors.New("airplane is already flying, reset first")
	// ErrSequenceActive rejects a throw while a special event owns the session.
	ErrSequenceActive = errors.New("special event in progress, please wait")
)

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	Rng        utils.RandomSource
	Logger     *slog.Logger
	Zones      []component.TurbulenceZone
	Dispatcher *event.Dispatcher
	Strict     bool // паниковать при нарушении инварианта даже без тега debug
}

// Session — одна игровая сессия: параметры, самолётик и автомат событий.
// Планировщик (ebiten или CLI) только вызывает Step.
type Session struct {
	World            *entity.World
	ParameterSystem  *system.ParameterSystem
	PhysicsSystem    *system.PhysicsSystem
	TurbulenceSystem *system.TurbulenceSystem
	Sequencer        *sequencer.Machine
	EventDispatcher  *event.Dispatcher
	Rng              utils.RandomSource

	log    *slog.Logger
	notice Notice
}

// NewSession wires the systems around a fresh world.
func NewSession(opts Options) *Session {
	if opts.Rng == nil {
		opts.Rng = utils.NewPRNGService(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Zones == nil {
		opts.Zones = defs.DefaultZones()
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = event.NewDispatcher()
	}

	world := entity.NewWorld()
	log := opts.Logger
	d := opts.Dispatcher
	s := &Session{
		World:            world,
		ParameterSystem:  system.NewParameterSystem(world, opts.Rng, log, d),
		PhysicsSystem:    system.NewPhysicsSystem(world, opts.Rng, log, d),
		TurbulenceSystem: system.NewTurbulenceSystem(world, opts.Zones, opts.Rng, log),
		EventDispatcher:  d,
		Rng:              opts.Rng,
		log:              log,
	}
	s.Sequencer = sequencer.NewMachine(world, sequencer.Systems{
		Physics:    s.PhysicsSystem,
		Turbulence: s.TurbulenceSystem,
		Triggers:   system.NewTriggerSystem(world, opts.Rng, log),
		Swingby:    system.NewSwingbySystem(world, log, d),
		Bird:       system.NewBirdSystem(world, log, d),
		Crash:      system.NewCrashSystem(world, log, d),
		Moon:       system.NewMoonSystem(world, log, d),
	}, log, d)
	if opts.Strict {
		s.Sequencer.SetStrict(true)
	}

	listener := &SessionEventListener{session: s}
	d.SubscribeAll(listener,
		event.ThrowRejected,
		event.ParameterAdjusted,
		event.GlidingStarted,
		event.SwingbyStarted,
		event.SwingbyRelaunched,
		event.BirdCarryStarted,
		event.PoopCrashStarted,
		event.MoonTransitStarted,
		event.FlightLanded,
	)
	return s
}

func (s *Session) SetAngle(angle float64) component.Adjustment {
	return s.ParameterSystem.SetAngle(angle)
}

func (s *Session) SetPower(power float64) component.Adjustment {
	return s.ParameterSystem.SetPower(power)
}

func (s *Session) SetBalance(balance float64) component.Adjustment {
	return s.ParameterSystem.SetBalance(balance)
}

func (s *Session) Params() component.FlightParameters {
	return s.World.Params
}

// Throw launches the airplane with the current parameters. It never panics;
// a conflicting throw is rejected with ErrSequenceActive or ErrFlightActive.
func (s *Session) Throw() error {
	w := s.World
	if err := s.throwConflict(); err != nil {
		s.log.Info("throw rejected", "reason", err.Error(), "phase", s.Phase().String())
		s.EventDispatcher.Dispatch(event.Event{
			Type: event.ThrowRejected,
			Data: event.ThrowData{Flight: w.Flights, Generation: w.Generation, Params: w.Params, Reason: err.Error()},
		})
		return err
	}

	w.ResetOverlays()
	w.Pending = nil
	w.SpecialEventTriggered = false
	if s.ParameterSystem.ClampAll() {
		s.log.Warn("parameters adjusted before launch", "params", w.Params)
	}

	actual, blur := s.ParameterSystem.LaunchAngle()
	p := w.Params
	w.Airplane = system.Launch(0, 0, actual, p.Power, p.Balance, 1)
	w.LaunchedAt = p
	w.ActualAngle = actual
	w.MaxHeight = 0
	w.Flights++
	w.ThrownAt = w.Time
	w.FlightStart = w.Time

	if err := s.Sequencer.Launch(); err != nil {
		return err
	}
	s.log.Info("throw accepted",
		"flight", w.Flights,
		"angle", p.Angle,
		"power", p.Power,
		"balance", p.Balance,
		"actualAngle", actual,
		"powerBlur", blur)
	s.EventDispatcher.Dispatch(event.Event{
		Type: event.ThrowAccepted,
		Data: event.ThrowData{Flight: w.Flights, Generation: w.Generation, Params: p},
	})
	return nil
}

// ThrowWith sets the parameters and throws. Power and balance go first so
// the angle setter sees the final combination.
func (s *Session) ThrowWith(p component.FlightParameters) error {
	if err := s.throwConflict(); err != nil {
		return s.Throw()
	}
	s.SetPower(p.Power)
	s.SetBalance(p.Balance)
	s.SetAngle(p.Angle)
	return s.Throw()
}

func (s *Session) throwConflict() error {
	if s.World.EventSequenceActive {
		return ErrSequenceActive
	}
	if s.World.Flying || s.Busy() {
		return ErrFlightActive
	}
	return nil
}

// Step advances the session clock by dt (clamped to MaxDeltaTime) and runs
// exactly one tick of the sequencer.
func (s *Session) Step(deltaTime float64) error {
	deltaTime = utils.Clamp(deltaTime, 0, config.MaxDeltaTime)
	s.World.Time += deltaTime
	s.World.Ticks++
	return s.Sequencer.Update(deltaTime)
}

// Tick is Step with the nominal 60 Hz frame time.
func (s *Session) Tick() error {
	return s.Step(config.TickSeconds)
}

// Settle ticks until the flight is grounded, idle or waiting on the moon,
// or until maxTicks have run.
func (s *Session) Settle(maxTicks int) error {
	for i := 0; i < maxTicks; i++ {
		if !s.Busy() || s.WaitingForReturn() {
			return nil
		}
		if err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns to the idle baseline from any state. Calling it twice is
// the same as calling it once.
func (s *Session) Reset() {
	s.Sequencer.Reset()
	s.World.Clear()
	s.notice = Notice{}
	s.log.Debug("session reset", "generation", s.World.Generation)
	s.EventDispatcher.Dispatch(event.Event{Type: event.SessionReset, Data: s.World.Generation})
}

// ReturnToEarth confirms the moon landing, records the result and resets.
func (s *Session) ReturnToEarth() error {
	if err := s.Sequencer.ReturnToEarth(); err != nil {
		return err
	}
	s.log.Info("returned to earth")
	s.EventDispatcher.Dispatch(event.Event{Type: event.ReturnedToEarth, Data: s.World.Generation})
	s.Reset()
	return nil
}

// Result is the most recently completed flight.
func (s *Session) Result() (component.FlightResult, bool) {
	if s.World.LastResult == nil {
		return component.FlightResult{}, false
	}
	return *s.World.LastResult, true
}

// BirdEventCompleted reports whether the last completed flight ended in a bird abduction.
func (s *Session) BirdEventCompleted() bool {
	r := s.World.LastResult
	return r != nil && r.Event == component.EventBirdCarry
}

// LastDistanceAtLeast compares the last completed flight's distance.
func (s *Session) LastDistanceAtLeast(distance int) bool {
	r := s.World.LastResult
	return r != nil && r.DistanceMeters >= distance
}

// Busy is true while anything other than Idle or Grounded owns the session.
func (s *Session) Busy() bool {
	switch s.Phase() {
	case component.PhaseIdle, component.PhaseGrounded:
		return s.World.EventSequenceActive
	}
	return true
}

func (s *Session) Phase() component.Phase {
	return s.Sequencer.Phase()
}

func (s *Session) WaitingForReturn() bool {
	return s.Phase() == component.PhaseMoonTransit && s.World.Moon.WaitingForReturn
}

// Airplane is nil between a reset and the next throw.
func (s *Session) Airplane() *component.Airplane {
	return s.World.Airplane
}

func (s *Session) Generation() uint64 {
	return s.World.Generation
}

func (s *Session) Time() float64 {
	return s.World.Time
}

func (s *Session) Zones() []component.TurbulenceZone {
	return s.TurbulenceSystem.Zones()
}

// Notice returns the current user-facing message while it is still showing.
func (s *Session) Notice() (Notice, bool) {
	if s.notice.Text == "" || s.World.Time > s.notice.Until {
		return Notice{}, false
	}
	return s.notice, true
}
