package engine

import (
	"github.com/jstittsworth/courtsim/internal/config"
)

// PlayerAttrSum sums a pre-resolved formula over one player. Attribute
// reads are stamina-scaled (see Player.AttrValue); signs come from the
// resolver.
func PlayerAttrSum(p *Player, terms []config.Term) float64 {
	total := 0.0
	for _, t := range terms {
		total += t.Sign * p.AttrValue(t.Attr)
	}
	return total
}

// TeamAttrSum sums a formula over a group of players.
func TeamAttrSum(players []*Player, terms []config.Term) float64 {
	total := 0.0
	for _, p := range players {
		total += PlayerAttrSum(p, terms)
	}
	return total
}

// ShootingRate blends base rate, team stat differential, shooter skill and
// context (spacing, rush quality) into a hit probability:
//
//	rate = (base + (off-def)/def) * (1 + skill/divisor) * (1 + spacing*weight) * (1 + quality)
//
// A zero defensive total substitutes 1, and the result is clamped to
// [0.01, 0.99] so no shot is ever certain either way.
func ShootingRate(base, offTotal, defTotal, skillSum, skillDivisor, spacing, spacingWeight, quality float64) float64 {
	if defTotal == 0 {
		defTotal = 1
	}
	if skillDivisor == 0 {
		skillDivisor = 1
	}
	statDiff := (offTotal - defTotal) / defTotal
	skillMult := 1.0 + skillSum/skillDivisor
	rate := (base + statDiff) * skillMult * (1.0 + spacing*spacingWeight) * (1.0 + quality)
	return clamp(rate, 0.01, 0.99)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
