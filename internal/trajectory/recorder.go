// internal/trajectory/recorder.go
package trajectory

import (
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/event"
)

// Recorder keeps every sampled point of the current flight. The moon
// cut-scene is not part of the path.
type Recorder struct {
	flight int
	points []component.Point
	last   []component.Point
}

func NewRecorder(d *event.Dispatcher) *Recorder {
	r := &Recorder{}
	d.SubscribeAll(r, event.ThrowAccepted, event.AirplaneMoved, event.FlightLanded)
	return r
}

func (r *Recorder) OnEvent(e event.Event) {
	switch e.Type {
	case event.ThrowAccepted:
		if data, ok := e.Data.(event.ThrowData); ok {
			r.flight = data.Flight
		}
		r.points = r.points[:0]
	case event.AirplaneMoved:
		data, ok := e.Data.(event.MovedData)
		if !ok || data.Flight != r.flight || data.Phase == component.PhaseMoonTransit {
			return
		}
		r.points = append(r.points, data.Point)
	case event.FlightLanded:
		r.last = append(r.last[:0], r.points...)
	}
}

// Points returns the path of the flight in progress.
func (r *Recorder) Points() []component.Point {
	return append([]component.Point(nil), r.points...)
}

// Last returns the path of the most recently landed flight.
func (r *Recorder) Last() []component.Point {
	return append([]component.Point(nil), r.last...)
}
