// internal/system/parameter.go
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

// ParameterSystem — единственный путь изменения параметров броска.
type ParameterSystem struct {
	world           *entity.World
	rng             utils.RandomSource
	log             *slog.Logger
	eventDispatcher *event.Dispatcher

	// угол 77 был запрошен раньше, чем сила и баланс стали 7
	secretPending bool
}

func NewParameterSystem(world *entity.World, rng utils.RandomSource, log *slog.Logger, eventDispatcher *event.Dispatcher) *ParameterSystem {
	return &ParameterSystem{world: world, rng: rng, log: log, eventDispatcher: eventDispatcher}
}

// SetAngle stores the requested angle with launch blur applied.
func (s *ParameterSystem) SetAngle(angle float64) component.Adjustment {
	p := &s.world.Params
	adj := component.Adjustment{Requested: angle}

	if IsSecretTriple(angle, p.Power, p.Balance) {
		p.Angle = angle
		s.world.Blur = component.BlurInfo{}
		s.secretPending = false
		adj.Applied = angle
		s.report("angle", adj)
		return adj
	}
	s.secretPending = angle == config.SecretAngle

	blur := AngleBlur(utils.Signed(s.rng), p.Power, p.Balance)
	p.Angle = utils.Clamp(angle+blur, config.MinAngle, config.MaxAngle)

	adj.Applied = p.Angle
	adj.Blur = blur
	adj.Clamped = angle < config.MinAngle || angle > config.MaxAngle
	s.world.Blur = Describe(angle, p.Angle, blur, p.Balance)
	s.report("angle", adj)
	return adj
}

func (s *ParameterSystem) SetPower(power float64) component.Adjustment {
	p := &s.world.Params
	p.Power = utils.Clamp(power, config.MinPower, config.MaxPower)
	adj := component.Adjustment{Requested: power, Applied: p.Power, Clamped: p.Power != power}
	s.recheckSecret()
	s.report("power", adj)
	return adj
}

func (s *ParameterSystem) SetBalance(balance float64) component.Adjustment {
	p := &s.world.Params
	p.Balance = utils.Clamp(balance, config.MinBalance, config.MaxBalance)
	adj := component.Adjustment{Requested: balance, Applied: p.Balance, Clamped: p.Balance != balance}
	s.recheckSecret()
	s.report("balance", adj)
	return adj
}

// SecretPending reports whether angle 77 is still waiting for power and balance 7.
func (s *ParameterSystem) SecretPending() bool {
	return s.secretPending
}

func (s *ParameterSystem) recheckSecret() {
	p := &s.world.Params
	if !s.secretPending || !IsSecretTriple(config.SecretAngle, p.Power, p.Balance) {
		return
	}
	p.Angle = config.SecretAngle
	s.world.Blur = component.BlurInfo{}
	s.secretPending = false
	s.log.Debug("secret triple completed, blur removed")
}

// ClampAll re-clamps every parameter; used right before a launch.
func (s *ParameterSystem) ClampAll() bool {
	p := &s.world.Params
	before := *p
	p.Angle = utils.Clamp(p.Angle, config.MinAngle, config.MaxAngle)
	p.Power = utils.Clamp(p.Power, config.MinPower, config.MaxPower)
	p.Balance = utils.Clamp(p.Balance, config.MinBalance, config.MaxBalance)
	return before != *p
}

// LaunchAngle draws the throw-time blur and returns the actual launch angle.
func (s *ParameterSystem) LaunchAngle() (actual, blur float64) {
	p := s.world.Params
	blur = PowerBlur(utils.Signed(s.rng), p.Power, p.Balance)
	return p.Angle + blur, blur
}

func (s *ParameterSystem) report(name string, adj component.Adjustment) {
	if adj.Clamped {
		s.log.Info("parameter clamped", "name", name, "requested", adj.Requested, "applied", adj.Applied)
	}
	if math.Abs(adj.Blur) > config.BlurReportMin {
		s.log.Debug("angle blur applied", "blur", adj.Blur, "angle", adj.Applied)
	}
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.ParameterAdjusted,
		Data: event.ParameterData{Name: name, Adjustment: adj},
	})
}

// IsSecretTriple reports the exact (77, 7, 7) combination.
func IsSecretTriple(angle, power, balance float64) bool {
	return angle == config.SecretAngle && power == config.SecretPower && balance == config.SecretBalance
}

// AngleBlur computes the set-time deviation in degrees from a draw u in [-1, 1).
func AngleBlur(u, power, balance float64) float64 {
	if balance == config.NeutralBalance {
		return u * config.NeutralBlurLimit
	}
	bias := (5.5 - balance) / 4.5
	blur := (u + bias*0.6) * power / 10 * config.AngleBlurScale
	if limit, ok := angleBlurCeiling(balance); ok {
		blur = utils.Clamp(blur, -limit, limit)
	}
	return blur
}

func angleBlurCeiling(balance float64) (float64, bool) {
	switch balance {
	case 4, 6:
		return 5, true
	case config.NeutralBalance:
		return 2, true
	}
	return 0, false
}

// PowerBlur computes the throw-time deviation in degrees from a draw u in [-1, 1).
func PowerBlur(u, power, balance float64) float64 {
	if balance == config.NeutralBalance {
		return u * config.NeutralBlurLimit
	}
	spread := config.PowerBlurMax * (power - 1) / 9 * BalanceBlurEffect(balance)
	limit := MaxBlurByBalance(balance)
	return utils.Clamp(u*spread, -limit, limit)
}

// MaxBlurByBalance is the throw-time blur ceiling for a balance value.
func MaxBlurByBalance(balance float64) float64 {
	switch balance {
	case config.NeutralBalance:
		return 2
	case 4, 6:
		return 5
	}
	return 10
}

// BalanceBlurEffect scales blur from 1.5 (front-heavy) down to 0.5 (rear-heavy).
func BalanceBlurEffect(balance float64) float64 {
	if balance == config.NeutralBalance {
		return 1
	}
	n := (balance - 1) / 9
	return utils.Clamp(1.5-n, 0.5, 1.5)
}

// BalanceEffect derives the launch coefficients from balance.
func BalanceEffect(balance float64) component.BalanceEffect {
	effect := component.BalanceEffect{VelocityMultiplier: 1, Stability: 1, LiftCoefficient: 1}
	n := (balance - 1) / 9
	switch {
	case n < 0.5:
		f := (0.5 - n) * 2
		effect.VelocityMultiplier = 1 + f*0.08
		effect.Stability = 1 - f*0.3
		effect.LiftCoefficient = 1 - f*0.05
	case n > 0.5:
		b := (n - 0.5) * 2
		effect.VelocityMultiplier = 1 - b*0.05
		effect.Stability = 1 + b*0.4
		effect.LiftCoefficient = 1 + b*0.08
	}
	return effect
}

// TurbulenceSusceptibility is 1 for front-heavy throws and falls to 0.3.
func TurbulenceSusceptibility(balance float64) float64 {
	n := (balance - 1) / 9
	return utils.Clamp(1-n*0.7, 0.3, 1)
}

// Describe builds the blur report shown with the landing message.
func Describe(requested, applied, blur, balance float64) component.BlurInfo {
	if math.Abs(blur) <= config.BlurReportMin {
		return component.BlurInfo{}
	}
	info := component.BlurInfo{
		HasBlur:       true,
		OriginalAngle: requested,
		ActualAngle:   applied,
		Amount:        blur,
	}
	if balance == config.NeutralBalance {
		info.Direction = "balance-5 limit"
		return info
	}
	switch bias := (5.5 - balance) / 4.5; {
	case bias > 0.2:
		info.Direction = "upward bias"
	case bias < -0.2:
		info.Direction = "downward bias"
	}
	return info
}
