// cmd/flightsim/sim.go
package main

import (
	"fmt"
	"io"
	"log/slog"

	game "go-paper-airplane/internal/app"
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/flightlog"
	"go-paper-airplane/internal/loop"
	"go-paper-airplane/internal/trajectory"
	"go-paper-airplane/internal/utils"
)

// maxSimTicks bounds one simulation: every flight is capped by its ceiling,
// this only guards against a loop that never finishes.
const maxSimTicks = 16 * 200 * 60

type simOptions struct {
	Params  component.FlightParameters
	Flights int
	Rng     utils.RandomSource
	Zones   []component.TurbulenceZone
	Loop    loop.Settings
	Store   *flightlog.Store
	Logger  *slog.Logger
}

type simResult struct {
	Summary event.LoopSummary
	Last    []component.Point
	Zones   []component.TurbulenceZone
	Title   string
}

// simulate throws opts.Flights airplanes through the loop runner, confirms
// every moon landing and prints one line per flight to out.
func simulate(opts simOptions, out io.Writer) (simResult, error) {
	d := event.NewDispatcher()
	session := game.NewSession(game.Options{
		Rng:        opts.Rng,
		Logger:     opts.Logger,
		Zones:      opts.Zones,
		Dispatcher: d,
	})
	runner := loop.NewRunner(session, opts.Loop, opts.Logger, d)
	recorder := trajectory.NewRecorder(d)
	if opts.Store != nil {
		d.Subscribe(event.FlightLanded, opts.Store)
	}
	d.Subscribe(event.LoopProgress, event.ListenerFunc(func(e event.Event) {
		data, ok := e.Data.(event.LoopProgressData)
		if !ok {
			return
		}
		r := data.Result
		headline := ""
		if r.Event != component.EventNone {
			headline = " [" + string(r.Event) + "]"
		}
		fmt.Fprintf(out, "flight %s: distance %s, height %s, %.1fs%s\n",
			data.Target, r.DisplayDistance, r.DisplayHeight, r.Duration, headline)
	}))

	throw := func() error { return session.ThrowWith(opts.Params) }
	if err := runner.Count(opts.Flights, throw); err != nil {
		return simResult{}, fmt.Errorf("failed to start flights: %w", err)
	}

	for ticks := 0; runner.Looping(); ticks++ {
		if ticks >= maxSimTicks {
			runner.Stop("simulation tick limit reached")
			break
		}
		if opts.Store != nil {
			opts.Store.SetLoopIndex(runner.Current())
		}
		if session.WaitingForReturn() {
			if err := session.ReturnToEarth(); err != nil {
				return simResult{}, err
			}
		}
		if err := session.Tick(); err != nil {
			return simResult{}, fmt.Errorf("tick %d: %w", ticks, err)
		}
		runner.Update(config.TickSeconds)
	}

	summary, _ := runner.Summary()
	res := simResult{Summary: summary, Last: recorder.Last(), Zones: session.Zones(), Title: "Flight"}
	if r, ok := session.Result(); ok {
		res.Title = fmt.Sprintf("%g° / power %g / balance %g: %s", opts.Params.Angle, opts.Params.Power, opts.Params.Balance, r.DisplayDistance)
	}
	return res, nil
}
