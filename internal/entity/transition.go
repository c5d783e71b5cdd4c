// internal/entity/transition.go
package entity

import (
	"fmt"

	"go-paper-airplane/internal/component"
)

// TransitionKind — запрос на смену владельца самолётика.
type TransitionKind int

const (
	TransitionSwingbyStart TransitionKind = iota
	TransitionRelaunch
	TransitionBirdStart
	TransitionCrashStart
	TransitionLand
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionSwingbyStart:
		return "SwingbyStart"
	case TransitionRelaunch:
		return "Relaunch"
	case TransitionBirdStart:
		return "BirdStart"
	case TransitionCrashStart:
		return "CrashStart"
	case TransitionLand:
		return "Land"
	}
	return fmt.Sprintf("TransitionKind(%d)", int(k))
}

// Transition is queued mid-tick and applied when the tick ends.
type Transition struct {
	Kind   TransitionKind
	Reason component.LandingReason   // Land
	Zone   *component.TurbulenceZone // SwingbyStart
	Plan   component.LaunchPlan      // SwingbyStart
	At     component.Point           // where the trigger fired
}

func (t Transition) String() string {
	if t.Kind == TransitionLand {
		return fmt.Sprintf("Land(%s)", t.Reason)
	}
	return t.Kind.String()
}
