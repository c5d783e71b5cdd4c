// internal/defs/zones.go
package defs

import (
	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
)

// ZoneDefinition is the on-disk form of a turbulence zone.
type ZoneDefinition struct {
	Name    string   `json:"name"`
	CenterX float64  `json:"center_x"`
	CenterY float64  `json:"center_y"`
	Radius  float64  `json:"radius"`
	Tint    [4]uint8 `json:"tint"`
	Primary bool     `json:"primary"`
}

// PrimaryZoneName — зона, в которой срабатывает свингбай.
const PrimaryZoneName = "α"

var defaultZoneDefs = []ZoneDefinition{
	{Name: PrimaryZoneName, CenterX: 10, CenterY: 25, Radius: 7, Primary: true},
	{Name: "β", CenterX: 40, CenterY: 30, Radius: 7},
}

// DefaultZones returns the built-in field: α at (10, 25) and β at (40, 30).
func DefaultZones() []component.TurbulenceZone {
	zones := make([]component.TurbulenceZone, len(defaultZoneDefs))
	for i, def := range defaultZoneDefs {
		tint := config.ZoneTints[i%len(config.ZoneTints)]
		def.Tint = [4]uint8{tint.R, tint.G, tint.B, tint.A}
		zones[i] = def.Zone()
	}
	return zones
}

// Zone converts the definition into the immutable runtime value.
func (d ZoneDefinition) Zone() component.TurbulenceZone {
	z := component.TurbulenceZone{
		Name:    d.Name,
		CenterX: d.CenterX,
		CenterY: d.CenterY,
		Radius:  d.Radius,
		Primary: d.Primary,
	}
	z.Tint.R, z.Tint.G, z.Tint.B, z.Tint.A = d.Tint[0], d.Tint[1], d.Tint[2], d.Tint[3]
	return z
}
