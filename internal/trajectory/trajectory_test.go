// internal/trajectory/trajectory_test.go
package trajectory

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/defs"
	"go-paper-airplane/internal/event"
)

func moved(flight int, phase component.Phase, x, y float64) event.Event {
	return event.Event{Type: event.AirplaneMoved, Data: event.MovedData{
		Flight: flight, Phase: phase, Point: component.Point{X: x, Y: y},
	}}
}

func TestRecorder(t *testing.T) {
	d := event.NewDispatcher()
	r := NewRecorder(d)

	d.Dispatch(event.Event{Type: event.ThrowAccepted, Data: event.ThrowData{Flight: 2}})
	d.Dispatch(moved(2, component.PhaseFlying, 1, 1))
	d.Dispatch(moved(1, component.PhaseFlying, 9, 9))
	d.Dispatch(moved(2, component.PhaseSwingbyOrbiting, 2, 3))
	d.Dispatch(moved(2, component.PhaseMoonTransit, 5, 5))
	assert.Equal(t, []component.Point{{X: 1, Y: 1}, {X: 2, Y: 3}}, r.Points())
	assert.Empty(t, r.Last())

	d.Dispatch(event.Event{Type: event.FlightLanded})
	assert.Len(t, r.Last(), 2)

	d.Dispatch(event.Event{Type: event.ThrowAccepted, Data: event.ThrowData{Flight: 3}})
	assert.Empty(t, r.Points())
	assert.Len(t, r.Last(), 2, "last path survives the next throw")
}

func TestNewPlot_NoPoints(t *testing.T) {
	_, err := NewPlot("empty", nil, defs.DefaultZones())
	assert.ErrorIs(t, err, ErrNoPoints)
	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.png"), "empty", nil, nil), ErrNoPoints)
}

func TestSave_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.png")
	points := []component.Point{{X: 0, Y: 0}, {X: 10, Y: 8}, {X: 20, Y: 10}, {X: 30, Y: 4}, {X: 36, Y: 0}}

	require.NoError(t, Save(path, "flight 1", points, defs.DefaultZones()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestZoneOutline(t *testing.T) {
	z := component.TurbulenceZone{CenterX: 10, CenterY: 25, Radius: 7}
	xys := zoneOutline(z)
	require.Len(t, xys, circleSegments+1)
	for _, p := range xys {
		assert.InDelta(t, 7, z.Distance(p.X, p.Y), 1e-9)
	}
}
