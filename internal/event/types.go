// internal/event/types.go
package event

import "go-paper-airplane/internal/component"

const (
	ThrowAccepted      EventType = "ThrowAccepted"
	ThrowRejected      EventType = "ThrowRejected"
	ParameterAdjusted  EventType = "ParameterAdjusted"
	AirplaneMoved      EventType = "AirplaneMoved" // каждый тик, пока самолётик существует
	GlidingStarted     EventType = "GlidingStarted"
	SwingbyStarted     EventType = "SwingbyStarted"
	SwingbyRevolution  EventType = "SwingbyRevolution"
	SwingbyRelaunched  EventType = "SwingbyRelaunched"
	BirdCarryStarted   EventType = "BirdCarryStarted"
	PoopCrashStarted   EventType = "PoopCrashStarted"
	MoonTransitStarted EventType = "MoonTransitStarted"
	MoonPhaseChanged   EventType = "MoonPhaseChanged"
	FlightLanded       EventType = "FlightLanded"
	ReturnedToEarth    EventType = "ReturnedToEarth"
	SessionReset       EventType = "SessionReset"
	StateChanged       EventType = "StateChanged"
	LoopProgress       EventType = "LoopProgress"
	LoopFinished       EventType = "LoopFinished"
	StageCleared       EventType = "StageCleared"
)

// ThrowData accompanies ThrowAccepted and ThrowRejected.
type ThrowData struct {
	Flight     int
	Generation uint64
	Params     component.FlightParameters
	Reason     string // только для отказа
}

// ParameterData accompanies ParameterAdjusted.
type ParameterData struct {
	Name       string
	Adjustment component.Adjustment
}

// MovedData accompanies AirplaneMoved.
type MovedData struct {
	Flight int
	Phase  component.Phase
	Point  component.Point
}

// StateData accompanies StateChanged.
type StateData struct {
	From, To component.Phase
}

// LandedData accompanies FlightLanded.
type LandedData struct {
	Generation uint64
	Result     component.FlightResult
}

// LoopProgressData accompanies LoopProgress after each loop flight.
type LoopProgressData struct {
	Loop   int
	Target string // "3/10", ">= 90m" или "condition"
	Result component.FlightResult
}

// LoopSummary accompanies LoopFinished.
type LoopSummary struct {
	Reason       string
	Distances    []int
	Heights      []int
	MaxDistance  int
	MeanDistance int
}

// StageData accompanies StageCleared.
type StageData struct {
	Stage       int
	Message     string
	LoopStopped bool
	AllCleared  bool
}
