// internal/entity/world.go
package entity

import (
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
)

// World — всё изменяемое состояние одной игровой сессии.
// Системы получают его по указателю, глобального состояния нет.
type World struct {
	Time       float64 // секунды сессии
	Ticks      int
	Generation uint64
	Flights    int // номер последнего броска

	Params component.FlightParameters

	Airplane    *component.Airplane
	Flying      bool
	ThrownAt    float64
	FlightStart float64 // сбрасывается при перезапуске после свингбая
	MaxHeight   float64
	LaunchedAt  component.FlightParameters // параметры в момент броска
	ActualAngle float64
	Blur        component.BlurInfo

	SpecialEventTriggered bool // свингбай был, посадка уведёт на Луну
	EventSequenceActive   bool

	Swingby *component.SwingbyState
	Bird    component.BirdCarryEvent
	Crash   component.PoopCrashEvent
	Moon    component.MoonFlightEvent
	Gliding component.GlidingState

	Relaunches int
	LastResult *component.FlightResult

	Pending []Transition
}

func NewWorld() *World {
	return &World{
		Params: component.FlightParameters{
			Angle:   config.DefaultAngle,
			Power:   config.DefaultPower,
			Balance: config.DefaultBalance,
		},
	}
}

// Queue records a transition to apply at the end of the current tick.
func (w *World) Queue(t Transition) {
	w.Pending = append(w.Pending, t)
}

// HasPending reports whether any transition is queued this tick.
func (w *World) HasPending() bool {
	return len(w.Pending) > 0
}

// TakePending returns and clears the queued transitions.
func (w *World) TakePending() []Transition {
	p := w.Pending
	w.Pending = nil
	return p
}

// FlightDuration is the session time since the current flight (re)started.
func (w *World) FlightDuration() float64 {
	return w.Time - w.FlightStart
}

// ResetOverlays clears every overlay record and the per-flight trigger flags.
func (w *World) ResetOverlays() {
	w.Swingby = nil
	w.Bird = component.BirdCarryEvent{}
	w.Crash = component.PoopCrashEvent{}
	w.Moon = component.MoonFlightEvent{}
	w.Gliding = component.GlidingState{}
	w.Relaunches = 0
}

// Clear returns the world to its idle baseline. Parameters, time and the
// last result survive; the generation is bumped so late callbacks can tell.
func (w *World) Clear() {
	w.Airplane = nil
	w.Flying = false
	w.ThrownAt = 0
	w.FlightStart = 0
	w.MaxHeight = 0
	w.ActualAngle = 0
	w.Blur = component.BlurInfo{}
	w.SpecialEventTriggered = false
	w.EventSequenceActive = false
	w.Pending = nil
	w.ResetOverlays()
	w.Generation++
}
