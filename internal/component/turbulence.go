// internal/component/turbulence.go
package component

import (
	"image/color"
	"math"
)

// TurbulenceZone — неподвижная круглая зона возмущений.
type TurbulenceZone struct {
	Name    string
	CenterX float64
	CenterY float64
	Radius  float64
	Tint    color.RGBA
	Primary bool // только в основной зоне возможен свингбай
}

// Distance returns the distance from the zone centre to (x, y).
func (z TurbulenceZone) Distance(x, y float64) float64 {
	return math.Hypot(x-z.CenterX, y-z.CenterY)
}

// Contains reports whether (x, y) lies on or inside the zone boundary.
func (z TurbulenceZone) Contains(x, y float64) bool {
	return z.Distance(x, y) <= z.Radius
}
