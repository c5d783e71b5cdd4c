// internal/app/game_test.go
package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/logging"
	"go-paper-airplane/internal/system"
	"go-paper-airplane/internal/utils"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	d := event.NewDispatcher()
	rec := &recorder{}
	d.SubscribeAll(rec,
		event.ThrowAccepted,
		event.ThrowRejected,
		event.SwingbyStarted,
		event.SwingbyRelaunched,
		event.MoonTransitStarted,
		event.FlightLanded,
		event.ReturnedToEarth,
		event.SessionReset,
	)
	s := NewSession(Options{
		Rng:        utils.NewSequenceSource(),
		Logger:     logging.Discard().Logger,
		Dispatcher: d,
		Strict:     true,
	})
	return s, rec
}

func TestThrow_ShortFlightLandsWithoutOverlay(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 0, Power: 1, Balance: 5}))
	require.NoError(t, s.Settle(600))

	res, ok := s.Result()
	require.True(t, ok)
	assert.Less(t, res.DistanceMeters, 10)
	assert.Equal(t, component.EventNone, res.Event)
	assert.Equal(t, component.LandingGround, res.Reason)
	assert.Equal(t, 1, res.Sequence)
	assert.Equal(t, component.PhaseGrounded, s.Phase())
	assert.False(t, s.Busy())
	assert.Equal(t, 1, rec.count(event.ThrowAccepted))
	assert.Equal(t, 1, rec.count(event.FlightLanded))
}

func TestThrow_RejectedWhileFlying(t *testing.T) {
	s, rec := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 45, Power: 8, Balance: 5}))
	require.NoError(t, s.Tick())

	err := s.Throw()
	assert.ErrorIs(t, err, ErrFlightActive)
	assert.Equal(t, 1, rec.count(event.ThrowRejected))
	assert.Equal(t, 1, s.World.Flights)

	n, ok := s.Notice()
	require.True(t, ok)
	assert.Equal(t, ErrFlightActive.Error(), n.Text)
	assert.Equal(t, NoticeWarning, n.Level)
}

func TestThrow_RejectedDuringEventSequence(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 45, Power: 8, Balance: 5}))
	s.World.Queue(entity.Transition{Kind: entity.TransitionCrashStart})
	require.NoError(t, s.Tick())
	require.Equal(t, component.PhaseCrashLanded, s.Phase())

	assert.ErrorIs(t, s.Throw(), ErrSequenceActive)
	assert.ErrorIs(t, s.ThrowWith(component.FlightParameters{Angle: 10, Power: 2, Balance: 5}), ErrSequenceActive)
	assert.Equal(t, 45.0, s.Params().Angle, "rejected ThrowWith leaves parameters alone")
}

func TestThrow_AllowedAfterLanding(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 0, Power: 1, Balance: 5}))
	require.NoError(t, s.Settle(600))
	first, _ := s.Result()

	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 30, Power: 5, Balance: 5}))
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, first, res, "last result persists until the next landing")

	require.NoError(t, s.Settle(600))
	res, _ = s.Result()
	assert.Equal(t, 2, res.Sequence)
}

func TestCrash_FreezesThenLands(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 30, Power: 5, Balance: 5}))
	s.World.Queue(entity.Transition{Kind: entity.TransitionCrashStart})
	require.NoError(t, s.Tick())
	start := s.Time()

	require.NoError(t, s.Settle(1000))
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, component.EventPoopCrash, res.Event)
	assert.Equal(t, system.CrashDistanceSymbol, res.DisplayDistance)
	assert.GreaterOrEqual(t, s.Time()-start, config.CrashDuration-1e-9)
}

func TestBirdAbduction_Completes(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 60, Power: 10, Balance: 5}))
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Tick())
	}
	s.World.Queue(entity.Transition{Kind: entity.TransitionBirdStart})
	require.NoError(t, s.Tick())
	require.Equal(t, component.PhaseBirdAbduction, s.Phase())
	assert.False(t, s.BirdEventCompleted())

	require.NoError(t, s.Settle(1000))
	assert.True(t, s.BirdEventCompleted())
	res, _ := s.Result()
	assert.Equal(t, component.LandingBirdCarry, res.Reason)
	assert.True(t, s.LastDistanceAtLeast(res.DistanceMeters))
	assert.False(t, s.LastDistanceAtLeast(res.DistanceMeters+1))
}

func TestSwingby_EndToEnd(t *testing.T) {
	s, rec := newTestSession(t)

	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 77, Power: 7, Balance: 7}))
	assert.Equal(t, 77.0, s.Params().Angle)

	require.NoError(t, s.Settle(5000))
	require.True(t, s.WaitingForReturn())
	assert.Equal(t, 1, rec.count(event.SwingbyStarted))
	assert.Equal(t, 1, rec.count(event.SwingbyRelaunched))
	assert.Equal(t, 1, rec.count(event.MoonTransitStarted))
	assert.Equal(t, 0, rec.count(event.FlightLanded))
	assert.ErrorIs(t, s.Throw(), ErrSequenceActive)

	// the cut-scene waits with no timeout
	for i := 0; i < 120; i++ {
		require.NoError(t, s.Tick())
	}
	require.True(t, s.WaitingForReturn())

	generation := s.Generation()
	require.NoError(t, s.ReturnToEarth())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, component.EventMoon, res.Event)
	assert.Equal(t, component.LandingMoon, res.Reason)
	assert.Equal(t, "384400km", res.DisplayDistance)
	assert.Equal(t, 1, rec.count(event.ReturnedToEarth))
	assert.Equal(t, component.PhaseIdle, s.Phase())
	assert.Nil(t, s.Airplane())
	assert.Greater(t, s.Generation(), generation)

	require.NoError(t, s.Throw())
}

func TestReturnToEarth_OutsideMoonWait(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Error(t, s.ReturnToEarth())
}

func TestReset_MidOverlay(t *testing.T) {
	s, rec := newTestSession(t)
	require.NoError(t, s.ThrowWith(component.FlightParameters{Angle: 30, Power: 5, Balance: 5}))
	s.World.Queue(entity.Transition{Kind: entity.TransitionCrashStart})
	require.NoError(t, s.Tick())
	require.True(t, s.Busy())
	generation := s.Generation()

	s.Reset()
	assert.Equal(t, component.PhaseIdle, s.Phase())
	assert.Nil(t, s.Airplane())
	assert.False(t, s.Busy())
	assert.False(t, s.World.EventSequenceActive)
	assert.Equal(t, component.PoopCrashEvent{}, s.World.Crash)
	assert.Equal(t, generation+1, s.Generation())
	params := s.Params()

	s.Reset()
	assert.Equal(t, component.PhaseIdle, s.Phase())
	assert.Equal(t, params, s.Params())
	assert.Equal(t, 2, rec.count(event.SessionReset))

	require.NoError(t, s.Throw())
}

func TestStep_ClampsDeltaTime(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Step(1))
	assert.InDelta(t, config.MaxDeltaTime, s.Time(), 1e-12)
	require.NoError(t, s.Step(-1))
	assert.InDelta(t, config.MaxDeltaTime, s.Time(), 1e-12)
	assert.Equal(t, 2, s.World.Ticks)
}

func TestNotice_ClampedParameter(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetPower(25)

	n, ok := s.Notice()
	require.True(t, ok)
	assert.Contains(t, n.Text, "power 25")
	assert.Equal(t, 10.0, s.Params().Power)
}

func TestResultText(t *testing.T) {
	text := ResultText(component.FlightResult{
		Event:           component.EventBirdCarry,
		DisplayDistance: "64m",
		DisplayHeight:   "98m",
		Message:         "msg",
		BalanceComment:  "comment",
		Blur:            component.BlurInfo{HasBlur: true, Amount: 3.2, Direction: "upward bias", OriginalAngle: 40, ActualAngle: 43.2},
	})
	assert.Contains(t, text, "Bird abduction!")
	assert.Contains(t, text, "Distance: 64m")
	assert.Contains(t, text, "(upward bias)")
}
