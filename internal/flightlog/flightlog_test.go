// internal/flightlog/flightlog_test.go
package flightlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/logging"
)

func result(seq, distance int) component.FlightResult {
	return component.FlightResult{
		Sequence:        seq,
		DistanceMeters:  distance,
		MaxHeightMeters: 10,
		DisplayDistance: "x",
		Reason:          component.LandingGround,
		Parameters:      component.FlightParameters{Angle: 30, Power: 5, Balance: 5},
	}
}

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", logging.Discard().Logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndQuery(t *testing.T) {
	s := openMemory(t)
	for i, d := range []int{12, 48, 30} {
		require.NoError(t, s.Save(result(i+1, d)))
	}

	recent, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Sequence)
	assert.Equal(t, 2, recent[1].Sequence)
	assert.Equal(t, s.SessionID, recent[0].SessionID)

	best, ok, err := s.Best()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 48, best.DistanceMeters)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Count)
	assert.Equal(t, 48, st.MaxDistance)
	assert.InDelta(t, 30, st.MeanDistance, 1e-9)
}

func TestEmptyStore(t *testing.T) {
	s := openMemory(t)

	_, ok, err := s.Best()
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	a := openMemory(t)
	b := openMemory(t)
	require.NoError(t, a.Save(result(1, 5)))

	recs, err := b.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestOnEvent_SavesLandedFlights(t *testing.T) {
	s := openMemory(t)
	d := event.NewDispatcher()
	d.Subscribe(event.FlightLanded, s)

	s.SetLoopIndex(3)
	r := result(1, 22)
	r.Event = component.EventBirdCarry
	d.Dispatch(event.Event{Type: event.FlightLanded, Data: event.LandedData{Result: r}})

	recs, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "bird", recs[0].Event)
	assert.Equal(t, 3, recs[0].LoopIndex)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(result(1, 0)))

	err := Validate(component.FlightResult{DistanceMeters: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 errors occurred")

	s := openMemory(t)
	assert.Error(t, s.Save(component.FlightResult{}))
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.db")
	log := logging.Discard().Logger

	s, err := Open(path, log)
	require.NoError(t, err)
	require.NoError(t, s.Save(result(1, 64)))
	require.NoError(t, s.Close())

	s, err = Open(path, log)
	require.NoError(t, err)
	defer s.Close()

	best, ok, err := s.Best()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 64, best.DistanceMeters)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Count, "stats are per session")
}
