// internal/system/turbulence.go
package system

import (
	"log/slog"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/utils"
)

// RelaunchPlan is the parameter set a swingby relaunches with.
var RelaunchPlan = component.LaunchPlan{Angle: 45, Power: 10, Balance: 1}

// TurbulenceSystem применяет возмущения зон и ловит условие свингбая.
type TurbulenceSystem struct {
	world *entity.World
	zones []component.TurbulenceZone
	rng   utils.RandomSource
	log   *slog.Logger
}

func NewTurbulenceSystem(world *entity.World, zones []component.TurbulenceZone, rng utils.RandomSource, log *slog.Logger) *TurbulenceSystem {
	z := make([]component.TurbulenceZone, len(zones))
	copy(z, zones)
	return &TurbulenceSystem{world: world, zones: z, rng: rng, log: log}
}

func (s *TurbulenceSystem) Zones() []component.TurbulenceZone {
	out := make([]component.TurbulenceZone, len(s.zones))
	copy(out, s.zones)
	return out
}

// Update perturbs the airplane in every zone it is inside. Inside the
// primary zone with the secret triple set it queues a swingby instead.
func (s *TurbulenceSystem) Update(deltaTime float64) {
	a := s.world.Airplane
	if a == nil || s.world.HasPending() {
		return
	}
	p := s.world.Params
	susceptibility := TurbulenceSusceptibility(p.Balance)

	for i := range s.zones {
		zone := &s.zones[i]
		d := zone.Distance(a.X, a.Y)
		if d > zone.Radius {
			continue
		}
		if SwingbyTriggered(*zone, d, p, s.world.SpecialEventTriggered) {
			s.log.Info("swingby armed", "zone", zone.Name, "x", a.X, "y", a.Y)
			s.world.Queue(entity.Transition{
				Kind: entity.TransitionSwingbyStart,
				Zone: zone,
				Plan: RelaunchPlan,
				At:   a.Position(),
			})
			return
		}

		strength := ZoneStrength(d, zone.Radius, susceptibility)
		velocity := strength * 1.5
		a.VX += utils.Centered(s.rng) * velocity
		a.VY += utils.Centered(s.rng) * velocity

		a.Rotation += utils.Centered(s.rng) * strength * 0.8

		vibration := strength * 0.3
		a.VX += utils.Centered(s.rng) * vibration
		a.VY += utils.Centered(s.rng) * vibration

		s.log.Debug("zone perturbation", "zone", zone.Name, "strength", strength)
	}
}

// ZoneStrength scales perturbation by depth into the zone and susceptibility.
func ZoneStrength(distance, radius, susceptibility float64) float64 {
	if distance > radius || radius <= 0 {
		return 0
	}
	return (1 - distance/radius) * susceptibility
}

// SwingbyTriggered — свингбай возможен только в основной зоне, при точной
// тройке (77, 7, 7) и только один раз за последовательность.
func SwingbyTriggered(zone component.TurbulenceZone, distance float64, p component.FlightParameters, alreadyTriggered bool) bool {
	return zone.Primary && distance <= zone.Radius && !alreadyTriggered &&
		IsSecretTriple(p.Angle, p.Power, p.Balance)
}
