// internal/component/overlay.go
package component

// SwingbyState exists only while the airplane orbits a zone.
type SwingbyState struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64
	Tilt             float64
	StartAngle       float64
	CurrentAngle     float64
	RotationCount    int
	Relaunch         LaunchPlan
	EntryX, EntryY   float64
}

// BirdCarryEvent — птица подлетает и уносит самолётик.
type BirdCarryEvent struct {
	Active          bool
	StartTime       float64
	Duration        float64
	Progress        float64
	BirdX, BirdY    float64
	StartX, StartY  float64 // точка появления птицы
	AnchorX         float64 // где птица поймала самолётик
	AnchorY         float64
	WingFlap        float64
	CarryStarted    bool
	HeightTriggered bool // проверка уже проводилась в этом полёте
	Completed       bool
}

// PoopCrashEvent freezes the airplane at the impact point.
type PoopCrashEvent struct {
	Active    bool
	StartTime float64
	Duration  float64
	Progress  float64
	PoopX     float64
	PoopY     float64
	Triggered bool
}

// MoonPhase — подфазы лунного перелёта.
type MoonPhase int

const (
	MoonFlight MoonPhase = iota
	MoonLanding
	MoonLanded
)

func (p MoonPhase) String() string {
	switch p {
	case MoonFlight:
		return "flight"
	case MoonLanding:
		return "landing"
	case MoonLanded:
		return "landed"
	}
	return "unknown"
}

// MoonFlightEvent is the cut-scene that follows a post-swingby landing.
type MoonFlightEvent struct {
	Active           bool
	StartTime        float64
	Duration         float64
	Progress         float64
	Phase            MoonPhase
	LandingStartTime float64
	WaitingForReturn bool
	Completed        bool
}

// GlidingState tracks the rear-heavy glide report.
type GlidingState struct {
	Gliding    bool
	StartTime  float64
	Reported   bool
	LastEffect float64
	PeakEffect float64
}
