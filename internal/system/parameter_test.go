// internal/system/parameter_test.go
package system

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-paper-airplane/internal/config"
	"go-paper-airplane/internal/entity"
	"go-paper-airplane/internal/event"
	"go-paper-airplane/internal/utils"
)

func newParameterSystem(rng utils.RandomSource) (*ParameterSystem, *entity.World) {
	w := entity.NewWorld()
	return NewParameterSystem(w, rng, testLogger(), event.NewDispatcher()), w
}

func TestSetters_AlwaysWithinRange(t *testing.T) {
	s, w := newParameterSystem(utils.NewPRNGService(3))
	inputs := []float64{-100, -1, 0, 0.5, 1, 4, 5, 6, 7, 9.99, 10, 11, 77, 90, 91, 1e6}

	for _, power := range inputs {
		for _, balance := range inputs {
			s.SetPower(power)
			s.SetBalance(balance)
			for _, angle := range inputs {
				s.SetAngle(angle)
				p := w.Params
				require.GreaterOrEqual(t, p.Angle, config.MinAngle)
				require.LessOrEqual(t, p.Angle, config.MaxAngle)
				require.GreaterOrEqual(t, p.Power, config.MinPower)
				require.LessOrEqual(t, p.Power, config.MaxPower)
				require.GreaterOrEqual(t, p.Balance, config.MinBalance)
				require.LessOrEqual(t, p.Balance, config.MaxBalance)
			}
		}
	}
}

func TestSetPower_ReportsClamping(t *testing.T) {
	s, _ := newParameterSystem(utils.NewSequenceSource())

	adj := s.SetPower(30)
	assert.True(t, adj.Clamped)
	assert.Equal(t, 30.0, adj.Requested)
	assert.Equal(t, 10.0, adj.Applied)

	adj = s.SetBalance(3)
	assert.False(t, adj.Clamped)
	assert.Equal(t, 3.0, adj.Applied)

	adj = s.SetAngle(-20)
	assert.True(t, adj.Clamped)
	assert.Equal(t, 0.0, adj.Applied)
}

func TestAngleBlur_NeutralBalanceStaysUnderTwoDegrees(t *testing.T) {
	rng := utils.NewPRNGService(11)
	for i := 0; i < 10000; i++ {
		power := 1 + float64(i%10)
		blur := AngleBlur(utils.Signed(rng), power, 5)
		require.Greater(t, blur, -2.0)
		require.Less(t, blur, 2.0)
	}
}

func TestSetAngle_NeutralBalanceThroughSetter(t *testing.T) {
	s, w := newParameterSystem(utils.NewPRNGService(5))
	s.SetPower(10)
	s.SetBalance(5)
	for i := 0; i < 10000; i++ {
		adj := s.SetAngle(45)
		require.InDelta(t, 45, w.Params.Angle, 1.99)
		require.Greater(t, adj.Blur, -2.0)
		require.Less(t, adj.Blur, 2.0)
	}
}

func TestSecretTriple_AllSetterOrders(t *testing.T) {
	setters := map[string]func(*ParameterSystem){
		"angle":   func(s *ParameterSystem) { s.SetAngle(77) },
		"power":   func(s *ParameterSystem) { s.SetPower(7) },
		"balance": func(s *ParameterSystem) { s.SetBalance(7) },
	}
	orders := [][3]string{
		{"angle", "power", "balance"},
		{"angle", "balance", "power"},
		{"power", "angle", "balance"},
		{"power", "balance", "angle"},
		{"balance", "angle", "power"},
		{"balance", "power", "angle"},
	}
	for _, order := range orders {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			// 0.95 would blur any regular throw by several degrees
			s, w := newParameterSystem(utils.NewSequenceSource(0.95))
			for _, name := range order {
				setters[name](s)
			}
			assert.Equal(t, 77.0, w.Params.Angle)
			assert.Equal(t, 7.0, w.Params.Power)
			assert.Equal(t, 7.0, w.Params.Balance)
			assert.False(t, w.Blur.HasBlur)
			assert.False(t, s.SecretPending())
		})
	}
}

func TestSecretTriple_PendingClearedByOtherAngle(t *testing.T) {
	s, w := newParameterSystem(utils.NewSequenceSource(0.5))
	s.SetAngle(77)
	assert.True(t, s.SecretPending())

	s.SetAngle(30)
	assert.False(t, s.SecretPending())

	s.SetPower(7)
	s.SetBalance(7)
	assert.Equal(t, 30.0, w.Params.Angle)
}

func TestAngleBlur_Shapes(t *testing.T) {
	// front-heavy, full power, no ceiling: (0.99 + 1*0.6) * 25
	assert.InDelta(t, 39.75, AngleBlur(0.99, 10, 1), 1e-9)
	// rear-heavy bias pushes downward
	assert.InDelta(t, -15, AngleBlur(0, 10, 10), 1e-9)

	for _, balance := range []float64{4, 6} {
		for _, u := range []float64{-1, -0.5, 0, 0.5, 0.999} {
			b := AngleBlur(u, 10, balance)
			assert.LessOrEqual(t, b, 5.0)
			assert.GreaterOrEqual(t, b, -5.0)
		}
	}
}

func TestPowerBlur(t *testing.T) {
	assert.InDelta(t, 1.99*0.5, PowerBlur(0.5, 10, 5), 1e-9)
	assert.Equal(t, 0.0, PowerBlur(0.9, 1, 3))
	assert.InDelta(t, -7.5, PowerBlur(-1, 10, 1), 1e-9)
	assert.Equal(t, 5.0, PowerBlur(1, 10, 4))
	assert.Equal(t, 10.0, MaxBlurByBalance(8))
	assert.Equal(t, 2.0, MaxBlurByBalance(5))
}

func TestBalanceEffect(t *testing.T) {
	front := BalanceEffect(1)
	assert.InDelta(t, 1.08, front.VelocityMultiplier, 1e-9)
	assert.InDelta(t, 0.7, front.Stability, 1e-9)
	assert.InDelta(t, 0.95, front.LiftCoefficient, 1e-9)

	rear := BalanceEffect(10)
	assert.InDelta(t, 0.95, rear.VelocityMultiplier, 1e-9)
	assert.InDelta(t, 1.4, rear.Stability, 1e-9)
	assert.InDelta(t, 1.08, rear.LiftCoefficient, 1e-9)

	centre := BalanceEffect(5.5)
	assert.Equal(t, 1.0, centre.VelocityMultiplier)
	assert.Equal(t, 1.0, centre.Stability)
}

func TestTurbulenceSusceptibility(t *testing.T) {
	assert.InDelta(t, 1.0, TurbulenceSusceptibility(1), 1e-9)
	assert.InDelta(t, 0.3, TurbulenceSusceptibility(10), 1e-9)
	assert.InDelta(t, 1-4.0/9*0.7, TurbulenceSusceptibility(5), 1e-9)
}

func TestDescribe(t *testing.T) {
	assert.False(t, Describe(45, 45.5, 0.5, 3).HasBlur)

	info := Describe(45, 50, 5, 1)
	assert.True(t, info.HasBlur)
	assert.Equal(t, "upward bias", info.Direction)
	assert.Equal(t, "downward bias", Describe(45, 40, -5, 10).Direction)
	assert.Equal(t, "balance-5 limit", Describe(45, 46.5, 1.5, 5).Direction)
	assert.Equal(t, "", Describe(45, 43, -2, 6).Direction)
}

func TestParameterAdjusted_Dispatched(t *testing.T) {
	w := entity.NewWorld()
	d := event.NewDispatcher()
	c := &captured{}
	d.Subscribe(event.ParameterAdjusted, c)
	s := NewParameterSystem(w, utils.NewSequenceSource(), testLogger(), d)

	s.SetPower(12)
	require.Len(t, c.events, 1)
	data := c.events[0].Data.(event.ParameterData)
	assert.Equal(t, "power", data.Name)
	assert.True(t, data.Adjustment.Clamped)
}
