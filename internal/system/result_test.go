// internal/system/result_test.go
package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/defs"
)

func TestBuildResult_PlainFlight(t *testing.T) {
	w := flyingWorld(42.4, 0)
	w.Flights = 3
	w.MaxHeight = 12.6
	w.LaunchedAt = component.FlightParameters{Angle: 30, Power: 5, Balance: 2}
	w.Time, w.ThrownAt = 10, 6

	r := BuildResult(w, component.LandingGround)

	assert.Equal(t, 3, r.Sequence)
	assert.Equal(t, 42, r.DistanceMeters)
	assert.Equal(t, "42m", r.DisplayDistance)
	assert.Equal(t, 13, r.MaxHeightMeters)
	assert.Equal(t, "13m", r.DisplayHeight)
	assert.Equal(t, component.EventNone, r.Event)
	assert.Equal(t, defs.DistanceMessage(42), r.Message)
	assert.Equal(t, defs.BalanceComment(2), r.BalanceComment)
	assert.Equal(t, 4.0, r.Duration)
}

func TestBuildResult_NegativeDistanceShownAsZero(t *testing.T) {
	r := BuildResult(flyingWorld(-3, 0), component.LandingOutOfBounds)
	assert.Equal(t, 0, r.DistanceMeters)
	assert.Equal(t, "0m", r.DisplayDistance)
}

func TestBuildResult_Crash(t *testing.T) {
	w := flyingWorld(72, 2)
	w.Crash.Triggered = true
	r := BuildResult(w, component.LandingCrash)

	assert.Equal(t, component.EventPoopCrash, r.Event)
	assert.Equal(t, CrashDistanceSymbol, r.DisplayDistance)
	assert.Equal(t, "Poop crash!", Headline(r.Event))
}

func TestBuildResult_Moon(t *testing.T) {
	w := flyingWorld(config.MoonDistance, config.MoonDistance)
	w.MaxHeight = config.MoonDistance
	w.Relaunches = 1
	r := BuildResult(w, component.LandingMoon)

	assert.Equal(t, component.EventMoon, r.Event)
	assert.Equal(t, "384400km", r.DisplayDistance)
	assert.Equal(t, "384400km", r.DisplayHeight)
	_, msg, _ := defs.EventMessage(component.EventMoon)
	assert.Equal(t, msg, r.Message)
}

func TestEventOf_Priority(t *testing.T) {
	w := flyingWorld(0, 0)
	assert.Equal(t, component.EventNone, EventOf(w, component.LandingGround))

	w.Relaunches = 1
	assert.Equal(t, component.EventSwingby, EventOf(w, component.LandingGround))
	assert.Equal(t, component.EventMoon, EventOf(w, component.LandingMoon))

	w.Bird.Completed = true
	assert.Equal(t, component.EventBirdCarry, EventOf(w, component.LandingBirdCarry))

	w.Crash.Triggered = true
	assert.Equal(t, component.EventPoopCrash, EventOf(w, component.LandingCrash))
}

func TestDisplayHeight(t *testing.T) {
	assert.Equal(t, "999m", DisplayHeight(999.4))
	assert.Equal(t, "1km", DisplayHeight(1000))
}
