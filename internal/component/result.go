// internal/component/result.go
package component

// EventKind names the special event that shaped a flight.
type EventKind string

const (
	EventNone      EventKind = ""
	EventSwingby   EventKind = "swingby"
	EventBirdCarry EventKind = "bird"
	EventPoopCrash EventKind = "crash"
	EventMoon      EventKind = "moon"
)

// LandingReason says why a flight ended.
type LandingReason string

const (
	LandingGround      LandingReason = "ground"
	LandingOutOfBounds LandingReason = "out_of_bounds"
	LandingTimeLimit   LandingReason = "time_limit"
	LandingBirdCarry   LandingReason = "bird_carry"
	LandingCrash       LandingReason = "crash"
	LandingMoon        LandingReason = "moon"
	LandingAborted     LandingReason = "aborted"
)

// FlightResult — итог завершённого полёта.
type FlightResult struct {
	Sequence        int
	DistanceMeters  int
	MaxHeightMeters int
	Event           EventKind
	Reason          LandingReason
	DisplayDistance string
	DisplayHeight   string
	Message         string
	BalanceComment  string
	Blur            BlurInfo
	Parameters      FlightParameters
	ActualAngle     float64
	Duration        float64 // секунды
}
