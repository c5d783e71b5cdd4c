// internal/system/result.go
package system

import (
	"fmt"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/entity"
	pkgutils "go-paper-airplane/pkg/utils"
)

// CrashDistanceSymbol replaces the numeric distance of a poop crash.
const CrashDistanceSymbol = "💩"

// BuildResult summarises the current flight for the landing reason.
func BuildResult(w *entity.World, reason component.LandingReason) component.FlightResult {
	var x float64
	if w.Airplane != nil {
		x = w.Airplane.X
	}
	distance := pkgutils.RoundMetres(x)

	res := component.FlightResult{
		Sequence:        w.Flights,
		DistanceMeters:  distance,
		MaxHeightMeters: int(math.Round(w.MaxHeight)),
		Event:           EventOf(w, reason),
		Reason:          reason,
		Blur:            w.Blur,
		Parameters:      w.LaunchedAt,
		ActualAngle:     w.ActualAngle,
		Duration:        w.Time - w.ThrownAt,
	}

	res.DisplayDistance = fmt.Sprintf("%dm", distance)
	if res.Event == component.EventPoopCrash {
		res.DisplayDistance = CrashDistanceSymbol
	} else if float64(distance) >= config.MoonDistance {
		res.DisplayDistance = fmt.Sprintf("%dkm", int(math.Round(float64(distance)/1000)))
	}
	res.DisplayHeight = DisplayHeight(w.MaxHeight)

	if _, msg, ok := defs.EventMessage(res.Event); ok {
		res.Message = msg
	} else {
		res.Message = defs.DistanceMessage(distance)
	}
	res.BalanceComment = defs.BalanceComment(w.LaunchedAt.Balance)
	return res
}

// EventOf picks the event that shaped the flight; the crash wins over the bird.
func EventOf(w *entity.World, reason component.LandingReason) component.EventKind {
	switch {
	case w.Crash.Triggered:
		return component.EventPoopCrash
	case w.Bird.Completed:
		return component.EventBirdCarry
	case reason == component.LandingMoon:
		return component.EventMoon
	case w.Relaunches > 0:
		return component.EventSwingby
	}
	return component.EventNone
}

// DisplayHeight formats a height in metres, switching to km from 1000 m.
func DisplayHeight(h float64) string {
	if h >= 1000 {
		return fmt.Sprintf("%dkm", int(math.Round(h/1000)))
	}
	return fmt.Sprintf("%dm", int(math.Round(h)))
}

// Headline returns the banner line for an event, if any.
func Headline(kind component.EventKind) string {
	h, _, _ := defs.EventMessage(kind)
	return h
}
