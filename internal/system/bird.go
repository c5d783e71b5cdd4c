// internal/system/bird.go
package system

import (
	"log/slog"
	"math"

	"go-paper-airplane/internal/component"
	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/utils"
)

// BirdSystem — птица подлетает справа, хватает самолётик и уносит вверх.
type BirdSystem struct {
	world           *entity.World
	log             *slog.Logger
	eventDispatcher *event.Dispatcher
}

func NewBirdSystem(world *entity.World, log *slog.Logger, eventDispatcher *event.Dispatcher) *BirdSystem {
	return &BirdSystem{world: world, log: log, eventDispatcher: eventDispatcher}
}

// BirdEntryX is the logical x just beyond the right edge of the screen.
func BirdEntryX() float64 {
	return (config.ScreenWidth-config.LaunchScreenX)/config.PixelsPerUnit + config.BirdEntryOffset
}

func (s *BirdSystem) Start() {
	w := s.world
	a := w.Airplane
	w.Bird = component.BirdCarryEvent{
		Active:          true,
		StartTime:       w.Time,
		Duration:        config.BirdDuration,
		StartX:          BirdEntryX(),
		StartY:          a.Y + config.BirdEntryLift,
		HeightTriggered: true,
	}
	w.Bird.BirdX, w.Bird.BirdY = w.Bird.StartX, w.Bird.StartY
	w.EventSequenceActive = true
	a.VX, a.VY = 0, 0
	s.eventDispatcher.Dispatch(event.Event{Type: event.BirdCarryStarted, Data: a.Position()})
}

// Update animates the approach and carry phases and queues the forced
// landing once the duration has elapsed.
func (s *BirdSystem) Update(deltaTime float64) {
	w := s.world
	b, a := &w.Bird, w.Airplane
	if !b.Active || a == nil || w.HasPending() {
		return
	}
	elapsed := w.Time - b.StartTime
	progress := elapsed / b.Duration
	if progress >= 1 {
		b.Active = false
		b.Completed = true
		b.Progress = 1
		s.log.Info("bird abduction finished", "x", a.X, "y", a.Y)
		w.Queue(entity.Transition{Kind: entity.TransitionLand, Reason: component.LandingBirdCarry, At: a.Position()})
		return
	}
	b.Progress = progress
	b.WingFlap += config.BirdWingFlapRate

	if !b.CarryStarted {
		if progress < config.BirdApproachShare {
			t := progress / config.BirdApproachShare
			b.BirdX = utils.Lerp(b.StartX, a.X, t)
			b.BirdY = utils.Lerp(b.StartY, a.Y+config.BirdHoverHeight, t)
			return
		}
		b.CarryStarted = true
		b.AnchorX, b.AnchorY = a.X, a.Y
		s.log.Debug("bird caught the airplane", "x", a.X, "y", a.Y)
	}

	carry := (progress - config.BirdApproachShare) / (1 - config.BirdApproachShare)
	b.BirdX = b.AnchorX + math.Sin(elapsed*config.BirdSwayRate)*config.BirdSway
	b.BirdY = b.AnchorY + config.BirdHoverHeight + carry*config.BirdAscent

	a.X = b.BirdX
	a.Y = b.BirdY - config.BirdHoverHeight
	a.VX, a.VY = 0, 0
}
