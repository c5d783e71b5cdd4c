// internal/system/triggers_test.go
package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/utils"
)

func TestBirdConditionMet(t *testing.T) {
	assert.True(t, BirdConditionMet(60, 50))
	assert.False(t, BirdConditionMet(59, 100))
	assert.False(t, BirdConditionMet(80, 49.9))
	assert.True(t, BirdArmed(0.3))
	assert.False(t, BirdArmed(0.31))
}

func TestCrashConditionMet(t *testing.T) {
	assert.True(t, CrashConditionMet(70, 0))
	assert.True(t, CrashConditionMet(75, 9.9))
	assert.False(t, CrashConditionMet(69, 1))
	assert.False(t, CrashConditionMet(76, 1))
	assert.False(t, CrashConditionMet(72, 10))
}

func TestTriggers_FailedBirdRollNeverRerolls(t *testing.T) {
	rng := utils.NewSequenceSource(0.9, 0.0)
	w := flyingWorld(60, 55)
	s := NewTriggerSystem(w, rng, testLogger())

	s.Update(1.0 / 60)
	assert.True(t, w.Bird.HeightTriggered)
	assert.False(t, w.HasPending())
	assert.Equal(t, 1, rng.Draws())

	for i := 0; i < 100; i++ {
		w.Airplane.X += 0.1
		s.Update(1.0 / 60)
	}
	assert.False(t, w.HasPending())
	assert.Equal(t, 1, rng.Draws())
}

func TestTriggers_BirdArmed(t *testing.T) {
	w := flyingWorld(59.6, 55)
	s := NewTriggerSystem(w, utils.NewSequenceSource(0.3), testLogger())

	s.Update(1.0 / 60)
	require.Len(t, w.Pending, 1)
	assert.Equal(t, entity.TransitionBirdStart, w.Pending[0].Kind)
}

func TestTriggers_BirdUsesRoundedDistance(t *testing.T) {
	rng := utils.NewSequenceSource(0.0)
	w := flyingWorld(59.4, 55)
	s := NewTriggerSystem(w, rng, testLogger())

	s.Update(1.0 / 60)
	assert.False(t, w.HasPending())
	assert.Equal(t, 0, rng.Draws())
}

func TestTriggers_BirdSuppressedAfterSwingby(t *testing.T) {
	rng := utils.NewSequenceSource(0.0)
	w := flyingWorld(80, 60)
	w.SpecialEventTriggered = true
	s := NewTriggerSystem(w, rng, testLogger())

	s.Update(1.0 / 60)
	assert.False(t, w.HasPending())
	assert.False(t, w.Bird.HeightTriggered)
	assert.Equal(t, 0, rng.Draws())
}

func TestTriggers_Crash(t *testing.T) {
	w := flyingWorld(75.4, 9.9)
	s := NewTriggerSystem(w, utils.NewSequenceSource(), testLogger())

	s.Update(1.0 / 60)
	require.Len(t, w.Pending, 1)
	assert.Equal(t, entity.TransitionCrashStart, w.Pending[0].Kind)
}

func TestTriggers_CrashGuards(t *testing.T) {
	outside := flyingWorld(75.6, 3)
	NewTriggerSystem(outside, utils.NewSequenceSource(), testLogger()).Update(1.0 / 60)
	assert.False(t, outside.HasPending())

	carried := flyingWorld(72, 3)
	carried.Bird.Active = true
	NewTriggerSystem(carried, utils.NewSequenceSource(), testLogger()).Update(1.0 / 60)
	assert.False(t, carried.HasPending())

	again := flyingWorld(72, 3)
	again.Crash.Triggered = true
	NewTriggerSystem(again, utils.NewSequenceSource(), testLogger()).Update(1.0 / 60)
	assert.False(t, again.HasPending())
}
