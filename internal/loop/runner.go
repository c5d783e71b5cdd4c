// internal/loop/runner.go
package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/interfaces"
)

// ErrLoopActive rejects a second loop while one is running.
var ErrLoopActive = errors.New("a loop is already running")

// Mode — условие завершения цикла.
type Mode int

const (
	ModeCount Mode = iota
	ModeDistance
	ModeCondition
)

type phase int

const (
	phaseIdle phase = iota
	phaseThrowDelay
	phaseFlight
	phaseResultDelay
)

// Settings are the loop limits and pauses in seconds.
type Settings struct {
	MaxLoops          int
	MaxConditionLoops int
	ThrowDelay        float64
	ResultDelay       float64
}

// Runner repeats reset-and-throw iterations. It is driven by Update from the
// same scheduler as the session and hears landings through OnEvent.
type Runner struct {
	flight          interfaces.Flight
	settings        Settings
	log             *slog.Logger
	eventDispatcher *event.Dispatcher

	active         bool
	mode           Mode
	current        int
	targetCount    int
	targetDistance int
	condition      func() bool
	callback       func() error

	phase      phase
	timer      float64
	generation uint64
	results    []component.FlightResult
	last       *event.LoopSummary
}

func NewRunner(flight interfaces.Flight, settings Settings, log *slog.Logger, eventDispatcher *event.Dispatcher) *Runner {
	r := &Runner{flight: flight, settings: settings, log: log, eventDispatcher: eventDispatcher}
	eventDispatcher.Subscribe(event.FlightLanded, r)
	return r
}

// Count runs callback n times, n clamped to [1, MaxLoops].
func (r *Runner) Count(n int, callback func() error) error {
	if r.active {
		return ErrLoopActive
	}
	n = max(1, min(n, r.settings.MaxLoops))
	r.targetCount = n
	return r.start(ModeCount, callback)
}

// UntilDistance runs callback until a flight reaches at least d metres.
func (r *Runner) UntilDistance(d int, callback func() error) error {
	if r.active {
		return ErrLoopActive
	}
	r.targetDistance = max(1, d)
	return r.start(ModeDistance, callback)
}

// UntilTrue runs callback until cond holds after a completed flight.
func (r *Runner) UntilTrue(cond func() bool, callback func() error) error {
	if r.active {
		return ErrLoopActive
	}
	if cond == nil {
		return errors.New("loop condition is nil")
	}
	r.condition = cond
	return r.start(ModeCondition, callback)
}

func (r *Runner) start(mode Mode, callback func() error) error {
	if callback == nil {
		return errors.New("loop callback is nil")
	}
	r.active = true
	r.mode = mode
	r.current = 0
	r.callback = callback
	r.results = nil
	r.last = nil
	r.log.Info("loop started", "mode", int(mode), "count", r.targetCount, "distance", r.targetDistance)
	r.next()
	return nil
}

// Looping reports whether a loop is running.
func (r *Runner) Looping() bool {
	return r.active
}

// Current is the 1-based iteration in progress.
func (r *Runner) Current() int {
	return r.current
}

// Summary returns the summary of the last finished loop.
func (r *Runner) Summary() (event.LoopSummary, bool) {
	if r.last == nil {
		return event.LoopSummary{}, false
	}
	return *r.last, true
}

// Stop ends the running loop and reports what it collected.
func (r *Runner) Stop(reason string) {
	if r.active {
		r.finish(reason)
	}
}

func (r *Runner) limit() int {
	if r.mode == ModeCondition {
		return r.settings.MaxConditionLoops
	}
	return r.settings.MaxLoops
}

func (r *Runner) next() {
	r.current++
	if r.current > r.limit() {
		r.finish("maximum number of loops reached")
		return
	}
	switch r.mode {
	case ModeCount:
		if r.current > r.targetCount {
			r.finish(fmt.Sprintf("completed %d loops", r.targetCount))
			return
		}
	case ModeDistance:
		if n := len(r.results); n > 0 && r.results[n-1].DistanceMeters >= r.targetDistance {
			r.finish(fmt.Sprintf("reached the target distance of %dm", r.targetDistance))
			return
		}
	case ModeCondition:
		if len(r.results) > 0 && r.condition() {
			r.finish("condition became true")
			return
		}
	}

	r.flight.Reset()
	r.generation = r.flight.Generation()
	r.phase = phaseThrowDelay
	r.timer = r.settings.ThrowDelay
	r.log.Debug("loop iteration scheduled", "loop", r.current, "generation", r.generation)
}

// Update advances the pauses between iterations.
func (r *Runner) Update(deltaTime float64) {
	if !r.active {
		return
	}
	// до посадки чужой сброс означает, что бросок этого шага потерян
	if r.phase != phaseResultDelay && r.flight.Generation() != r.generation {
		r.finish("the session was reset")
		return
	}
	switch r.phase {
	case phaseThrowDelay:
		r.timer -= deltaTime
		if r.timer > 0 {
			return
		}
		if err := r.callback(); err != nil {
			r.finish(fmt.Sprintf("loop %d could not throw: %v", r.current, err))
			return
		}
		if !r.flight.Busy() {
			r.finish(fmt.Sprintf("loop %d did not throw", r.current))
			return
		}
		r.phase = phaseFlight
	case phaseResultDelay:
		r.timer -= deltaTime
		if r.timer <= 0 {
			r.next()
		}
	}
}

// OnEvent records the landing of the flight the current iteration threw.
func (r *Runner) OnEvent(e event.Event) {
	if !r.active || r.phase != phaseFlight || e.Type != event.FlightLanded {
		return
	}
	data, ok := e.Data.(event.LandedData)
	if !ok || data.Generation != r.generation {
		return
	}
	r.results = append(r.results, data.Result)
	r.phase = phaseResultDelay
	r.timer = r.settings.ResultDelay

	r.log.Info("loop flight recorded", "loop", r.current, "distance", data.Result.DistanceMeters, "height", data.Result.MaxHeightMeters)
	r.eventDispatcher.Dispatch(event.Event{
		Type: event.LoopProgress,
		Data: event.LoopProgressData{Loop: r.current, Target: r.target(), Result: data.Result},
	})
}

func (r *Runner) target() string {
	switch r.mode {
	case ModeCount:
		return fmt.Sprintf("%d/%d", r.current, r.targetCount)
	case ModeDistance:
		return fmt.Sprintf(">= %dm", r.targetDistance)
	}
	return "condition"
}

func (r *Runner) finish(reason string) {
	s := Summarise(reason, r.results)
	r.last = &s
	r.active = false
	r.phase = phaseIdle
	r.callback = nil
	r.condition = nil
	r.log.Info("loop finished", "reason", reason, "flights", len(s.Distances), "max", s.MaxDistance, "mean", s.MeanDistance)
	r.eventDispatcher.Dispatch(event.Event{Type: event.LoopFinished, Data: s})
}

// Summarise collects distances and heights with the best and rounded mean distance.
func Summarise(reason string, results []component.FlightResult) event.LoopSummary {
	s := event.LoopSummary{Reason: reason}
	total := 0
	for _, res := range results {
		s.Distances = append(s.Distances, res.DistanceMeters)
		s.Heights = append(s.Heights, res.MaxHeightMeters)
		s.MaxDistance = max(s.MaxDistance, res.DistanceMeters)
		total += res.DistanceMeters
	}
	if n := len(results); n > 0 {
		s.MeanDistance = int(math.Round(float64(total) / float64(n)))
	}
	return s
}

// SummaryText renders a finished loop for the banner and the CLI.
func SummaryText(s event.LoopSummary) string {
	text := s.Reason + "\n"
	for i, d := range s.Distances {
		text += fmt.Sprintf("%d: %dm (height %dm)\n", i+1, d, s.Heights[i])
	}
	if len(s.Distances) > 0 {
		text += fmt.Sprintf("Best: %dm\nMean: %dm", s.MaxDistance, s.MeanDistance)
	}
	return text
}
