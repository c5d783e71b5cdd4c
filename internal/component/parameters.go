// internal/component/parameters.go
package component

// FlightParameters — три ручки управления броском.
// Angle в градусах [0, 90], Power [1, 10], Balance [1, 10] (5 нейтральный).
type FlightParameters struct {
	Angle   float64
	Power   float64
	Balance float64
}

// LaunchPlan is a parameter set captured for a later relaunch.
type LaunchPlan FlightParameters

// Adjustment describes the outcome of a setter call.
type Adjustment struct {
	Requested float64
	Applied   float64
	Clamped   bool
	Blur      float64 // only set by the angle setter
}

// BalanceEffect — коэффициенты, выводимые из баланса в момент броска.
type BalanceEffect struct {
	VelocityMultiplier float64
	Stability          float64
	LiftCoefficient    float64
}

// BlurInfo describes the deviation applied to the last launch.
type BlurInfo struct {
	HasBlur       bool
	OriginalAngle float64
	ActualAngle   float64
	Amount        float64
	Direction     string
}
