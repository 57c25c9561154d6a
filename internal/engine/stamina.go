package engine

import (
	"github.com/jstittsworth/courtsim/internal/config"
)

// StaminaSystem drains players on the floor, recovers players on the bench
// and derives the performance coefficient every attribute read is scaled by.
// All parameters are read once at construction.
type StaminaSystem struct {
	drainCoeff    float64
	nerfThreshold float64
	minMultiplier float64

	staminaAttr string
	healthAttr  string
}

func NewStaminaSystem(cfg config.GameConfig) *StaminaSystem {
	drainAttrs := cfg.Strings("match_engine.stamina_system.drain_attrs", []string{"ath_stamina", "talent_health"})
	s := &StaminaSystem{
		drainCoeff:    cfg.Float("match_engine.general.stamina_drain_coeff", 1.5),
		nerfThreshold: cfg.Float("match_engine.general.stamina_nerf_threshold", 80.0),
		minMultiplier: cfg.Float("match_engine.general.stamina_min_multiplier", 0.21),
		staminaAttr:   "ath_stamina",
		healthAttr:    "talent_health",
	}
	if len(drainAttrs) > 0 {
		s.staminaAttr = drainAttrs[0]
	}
	if len(drainAttrs) > 1 {
		s.healthAttr = drainAttrs[1]
	}
	return s
}

// Update applies one time slice of drain or recovery and re-derives the
// coefficient. Raw attributes are read unscaled here: fatigue must not
// accelerate itself.
func (s *StaminaSystem) Update(p *Player, seconds float64, onCourt bool) {
	staminaPct := clamp(rawAttr(p, s.staminaAttr)/100.0, 0.01, 0.99)
	healthPct := clamp(rawAttr(p, s.healthAttr)/100.0, 0.01, 0.99)

	var perMinute float64
	if onCourt {
		drain := s.drainCoeff*(1.0+(1.0-staminaPct)) + (1.0 - healthPct)
		perMinute = -drain
	} else {
		perMinute = 1.0 + staminaPct - (1.0 - healthPct)
	}

	p.CurrentStamina = clamp(p.CurrentStamina+(perMinute/60.0)*seconds, 1.0, 100.0)
	s.updateCoefficient(p)
}

// ApplyRest recovers every given player as if benched for the duration,
// regardless of current lineup. Used at halftime.
func (s *StaminaSystem) ApplyRest(players []*Player, minutes float64) {
	for _, p := range players {
		s.Update(p, minutes*60.0, false)
	}
}

func (s *StaminaSystem) updateCoefficient(p *Player) {
	switch {
	case p.CurrentStamina >= s.nerfThreshold:
		p.StaminaCoeff = 1.0
	case p.CurrentStamina > 1.0:
		c := 1.0 - (s.nerfThreshold-p.CurrentStamina)*0.01
		if c < s.minMultiplier {
			c = s.minMultiplier
		}
		p.StaminaCoeff = c
	default:
		p.StaminaCoeff = s.minMultiplier
	}
}

func rawAttr(p *Player, name string) float64 {
	if getter, ok := attrGetters[name]; ok {
		return getter(p)
	}
	return 0
}
