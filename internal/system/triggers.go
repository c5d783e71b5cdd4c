// internal/system/triggers.go
package system

import (
	"log/slog"
	"math"

	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/utils"
	pkgutils "go-paper-airplane/pkg/utils"
)

// TriggerSystem проверяет условия птицы и падения, по одному разу за тик.
type TriggerSystem struct {
	world *entity.World
	rng   utils.RandomSource
	log   *slog.Logger
}

func NewTriggerSystem(world *entity.World, rng utils.RandomSource, log *slog.Logger) *TriggerSystem {
	return &TriggerSystem{world: world, rng: rng, log: log}
}

// Update runs the bird check before the crash check. Nothing is armed when a
// transition is already queued this tick.
func (s *TriggerSystem) Update(deltaTime float64) {
	w := s.world
	a := w.Airplane
	if a == nil || w.HasPending() {
		return
	}
	distance := pkgutils.RoundMetres(a.X)
	height := math.Max(0, a.Y)

	if BirdConditionMet(distance, height) && s.birdGuardOpen() {
		w.Bird.HeightTriggered = true
		draw := s.rng.Float64()
		if BirdArmed(draw) {
			s.log.Info("bird abduction armed", "distance", distance, "height", height, "draw", draw)
			w.Queue(entity.Transition{Kind: entity.TransitionBirdStart, At: a.Position()})
			return
		}
		s.log.Debug("bird roll failed, disarmed for this flight", "draw", draw)
	}

	if CrashConditionMet(distance, height) && s.crashGuardOpen() {
		s.log.Info("poop crash armed", "distance", distance, "height", height)
		w.Queue(entity.Transition{Kind: entity.TransitionCrashStart, At: a.Position()})
	}
}

func (s *TriggerSystem) birdGuardOpen() bool {
	w := s.world
	return !w.Bird.HeightTriggered && !w.Bird.Active && !w.SpecialEventTriggered && !w.EventSequenceActive
}

func (s *TriggerSystem) crashGuardOpen() bool {
	w := s.world
	return !w.Crash.Triggered && !w.Crash.Active && !w.Bird.Active &&
		!w.SpecialEventTriggered && !w.EventSequenceActive
}

// BirdConditionMet uses the rounded distance, as the display does.
func BirdConditionMet(distance int, height float64) bool {
	return distance >= config.BirdMinDistance && height >= config.BirdMinHeight
}

// BirdArmed is the single Bernoulli(0.3) trial of a flight.
func BirdArmed(draw float64) bool {
	return draw <= config.BirdProbability
}

func CrashConditionMet(distance int, height float64) bool {
	return distance >= config.CrashMinDistance && distance <= config.CrashMaxDistance &&
		height < config.CrashMaxHeight
}
