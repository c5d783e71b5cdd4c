// internal/component/game_state.go
package component

// Phase — какое поведение сейчас управляет самолётиком.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFlying
	PhaseSwingbyOrbiting
	PhaseBirdAbduction
	PhaseCrashLanded
	PhaseMoonTransit
	PhaseGrounded
)

var phaseNames = map[Phase]string{
	PhaseIdle:            "Idle",
	PhaseFlying:          "Flying",
	PhaseSwingbyOrbiting: "SwingbyOrbiting",
	PhaseBirdAbduction:   "BirdAbduction",
	PhaseCrashLanded:     "CrashLanded",
	PhaseMoonTransit:     "MoonTransit",
	PhaseGrounded:        "Grounded",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Overlay reports whether the phase supersedes normal integration.
func (p Phase) Overlay() bool {
	switch p {
	case PhaseSwingbyOrbiting, PhaseBirdAbduction, PhaseCrashLanded, PhaseMoonTransit:
		return true
	}
	return false
}
