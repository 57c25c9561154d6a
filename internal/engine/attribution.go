package engine

import (
	"sort"

	"github.com/jstittsworth/courtsim/internal/config"
)

// AttributionSystem decides which player an event belongs to and records
// every individual stat. All selector weights are config-driven formulas,
// pre-resolved at construction; reads are stamina-scaled.
type AttributionSystem struct {
	rng *RNG

	starBonus    float64
	starterBonus float64
	heightWeight float64

	shotWeightBase []config.Term
	shot3ptBonus   []config.Term
	reboundBase    []config.Term
	reboundBonus   []config.Term
	reboundIQOff   []config.Term
	reboundIQDef   []config.Term
	assistWeight   []config.Term
	stealWeight    []config.Term

	positionOrder map[string]int
}

func NewAttributionSystem(cfg config.GameConfig, rng *RNG) *AttributionSystem {
	const pools = "match_engine.attr_pools"
	const formulas = "match_engine.attribution.formulas."

	posOrder := cfg.Strings("match_engine.general.substitution.redistribution.positions", RedistributionPositions)
	orderMap := make(map[string]int, len(posOrder))
	for i, pos := range posOrder {
		orderMap[pos] = i
	}

	return &AttributionSystem{
		rng:          rng,
		starBonus:    cfg.Float("match_engine.attribution.params.shot_star_bonus", 1.5),
		starterBonus: cfg.Float("match_engine.attribution.params.shot_starter_bonus", 1.2),
		heightWeight: cfg.Float("match_engine.attribution.params.rebound_height_weight", 1.5),

		shotWeightBase: cfg.ResolveFormulaKey(formulas+"shot_weight_base", pools, []string{"shot_touch", "shot_accuracy", "off_move"}),
		shot3ptBonus:   cfg.ResolveFormulaKey(formulas+"shot_3pt_bonus", pools, []string{"shot_range", "shot_release"}),
		reboundBase:    cfg.ResolveFormulaKey(formulas+"rebound_base", pools, []string{"def_rebound", "def_boxout"}),
		reboundBonus:   cfg.ResolveFormulaKey(formulas+"rebound_bonus", pools, []string{"ath_jump", "ath_strength"}),
		reboundIQOff:   cfg.ResolveFormulaKey(formulas+"rebound_iq_off", pools, []string{"talent_offiq"}),
		reboundIQDef:   cfg.ResolveFormulaKey(formulas+"rebound_iq_def", pools, []string{"talent_defiq"}),
		assistWeight:   cfg.ResolveFormulaKey(formulas+"assist_weight", pools, []string{"off_pass", "talent_offiq"}),
		stealWeight:    cfg.ResolveFormulaKey(formulas+"steal_weight", pools, []string{"def_disrupt", "ath_speed"}),

		positionOrder: orderMap,
	}
}

type weighted struct {
	player *Player
	weight float64
}

// cumulativeDraw picks from candidates already arranged in draw order: each
// candidate covers a slice of [0,1] proportional to its weight, lowest
// range first. The ascending arrangement used for shooters and rebounders
// is intentional, inherited from the original engine.
func (a *AttributionSystem) cumulativeDraw(entries []weighted, total float64) *Player {
	r := a.rng.Uniform(0, 1)
	acc := 0.0
	for _, e := range entries {
		acc += e.weight / total
		if r <= acc {
			return e.player
		}
	}
	return entries[len(entries)-1].player
}

// DetermineShooter picks the shot taker. Star and Starter roles multiply
// the weight; 3PT attempts add the range bonus attributes.
func (a *AttributionSystem) DetermineShooter(team *Team, is3pt bool) *Player {
	candidates := team.OnCourt
	entries := make([]weighted, 0, len(candidates))
	total := 0.0

	for _, p := range candidates {
		w := PlayerAttrSum(p, a.shotWeightBase)
		if is3pt {
			w += PlayerAttrSum(p, a.shot3ptBonus)
		}
		switch p.Role {
		case RoleStar:
			w *= a.starBonus
		case RoleStarter:
			w *= a.starterBonus
		}
		entries = append(entries, weighted{p, w})
		total += w
	}

	if total == 0 {
		return candidates[0]
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].weight < entries[j].weight })
	return a.cumulativeDraw(entries, total)
}

// DetermineRebounder picks the board winner on the given side. Height and
// the jump/strength bonus are weighted together; the IQ term depends on
// which side is rebounding.
func (a *AttributionSystem) DetermineRebounder(offTeam, defTeam *Team, isDefensive bool) *Player {
	candidates := offTeam.OnCourt
	if isDefensive {
		candidates = defTeam.OnCourt
	}

	entries := make([]weighted, 0, len(candidates))
	total := 0.0
	for _, p := range candidates {
		w := PlayerAttrSum(p, a.reboundBase)
		w += (PlayerAttrSum(p, a.reboundBonus) + p.AttrValue("height")) * a.heightWeight
		if isDefensive {
			w += PlayerAttrSum(p, a.reboundIQDef)
		} else {
			w += PlayerAttrSum(p, a.reboundIQOff)
		}
		entries = append(entries, weighted{p, w})
		total += w
	}

	if total == 0 {
		return candidates[0]
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].weight < entries[j].weight })
	return a.cumulativeDraw(entries, total)
}

// DetermineAssister picks the passer on a made shot: everyone on the floor
// except the shooter, arranged C, PF, SF, SG, PG before the draw.
func (a *AttributionSystem) DetermineAssister(offTeam *Team, shooter *Player) *Player {
	candidates := make([]*Player, 0, len(offTeam.OnCourt))
	for _, p := range offTeam.OnCourt {
		if p.ID != shooter.ID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	entries := make([]weighted, 0, len(candidates))
	total := 0.0
	for _, p := range candidates {
		w := PlayerAttrSum(p, a.assistWeight)
		entries = append(entries, weighted{p, w})
		total += w
	}

	if total == 0 {
		return candidates[len(candidates)-1]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return a.positionOrder[entries[i].player.Position] < a.positionOrder[entries[j].player.Position]
	})
	return a.cumulativeDraw(entries, total)
}

// DetermineStealer picks the defender credited with a steal.
func (a *AttributionSystem) DetermineStealer(defTeam *Team) *Player {
	candidates := defTeam.OnCourt
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, p := range candidates {
		weights[i] = PlayerAttrSum(p, a.stealWeight)
		total += weights[i]
	}
	if total == 0 {
		return candidates[len(candidates)-1]
	}
	return candidates[a.rng.WeightedIndex(weights)]
}

// DetermineBlocker picks the shot blocker, rebounder-style over the
// defensive five.
func (a *AttributionSystem) DetermineBlocker(offTeam, defTeam *Team) *Player {
	return a.DetermineRebounder(offTeam, defTeam, true)
}

// PositionMatchup finds the opponent guarding the target's position,
// falling back to the first player on the floor.
func PositionMatchup(target *Player, opponent *Team) *Player {
	for _, p := range opponent.OnCourt {
		if p.Position == target.Position {
			return p
		}
	}
	return opponent.OnCourt[0]
}

// ------------------------------------------------------------------
// Recording primitives
// ------------------------------------------------------------------

// RecordAttempt logs a missed-or-blocked field goal attempt.
func RecordAttempt(p *Player, is3pt bool) {
	p.FGA++
	if is3pt {
		p.TPA++
	}
}

// RecordScore logs a made field goal: team points, scorer points, and the
// attempt that produced them. A make always counts as an attempt too.
func RecordScore(team *Team, scorer *Player, points int, is3pt bool, assister *Player) {
	team.Score += points
	scorer.Pts += points
	scorer.FGM++
	scorer.FGA++
	if is3pt {
		scorer.TPM++
		scorer.TPA++
	}
	if assister != nil {
		assister.Ast++
	}
}

// RecordRebound logs a board on the given side.
func RecordRebound(p *Player, offensive bool) {
	p.Reb++
	if offensive {
		p.ORB++
	} else {
		p.DRB++
	}
}

// RecordSteal credits the stealer and charges the turnover to the victim
// guarding the same position.
func RecordSteal(stealer *Player, victimTeam *Team) {
	stealer.Stl++
	victim := PositionMatchup(stealer, victimTeam)
	victim.Tov++
}

// RecordBlock credits the blocker. The blocked shot never reaches shot
// resolution, so the attempt is charged here.
func RecordBlock(blocker, shooter *Player) {
	blocker.Blk++
	shooter.FGA++
}

// RecordTeamTurnover logs a team turnover (8s / 24s violations).
func RecordTeamTurnover(team *Team) {
	team.StatTov++
}

// RecordFoul logs a personal foul.
func RecordFoul(p *Player) {
	p.Fouls++
}

// RecordFreeThrow logs one free throw attempt.
func RecordFreeThrow(p *Player, made bool) {
	p.FTA++
	if made {
		p.FTM++
		p.Pts++
	}
}
