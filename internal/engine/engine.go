package engine

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/config"
)

// MatchEngine simulates one regulation game (plus overtimes) between two
// teams. It owns both Team structs and a private RNG for the match's
// lifetime; a seeded RNG plus identical inputs and config reproduces the
// match byte for byte, play-by-play strings included.
type MatchEngine struct {
	home *Team
	away *Team
	cfg  config.GameConfig
	rng  *RNG
	log  *logrus.Logger

	stamina *StaminaSystem
	subs    *SubstitutionSystem
	attrib  *AttributionSystem

	params engineParams

	posScoring map[string][]config.Term

	state *MatchState
	pbp   []string

	jumpBallWinner *Team

	// Possession bookkeeping. A possession is counted once when it starts;
	// the flag stays off across offensive rebounds so the same possession
	// keeps accumulating time.
	possTeam        *Team
	possElapsed     float64
	isNewPossession bool
	openingPlay     bool
}

// engineParams holds every tunable and pre-resolved formula the possession
// loop reads. Resolving everything up front keeps string lookups and
// recursion out of the hot path.
type engineParams struct {
	quarterLength   float64
	otLength        float64
	halftimeMinutes float64
	clutchSeconds   float64

	// backcourt
	bcOffAdvance   []config.Term
	bcDefPressure  []config.Term
	openingSeconds float64
	timeBaseMin    float64
	timeBaseMax    float64
	timeCoeff      float64
	violation8s    float64
	stealThreshold float64
	stealBase      float64
	stealBonus     float64
	fbThreshold    float64

	// fastbreak
	fbPower       []config.Term
	fbSuccessBase float64
	fbPowerCoeff  float64
	fbDuration    float64

	// frontcourt
	fcTempo         []config.Term
	fcSpacingOff    []config.Term
	fcSpacingDef    []config.Term
	shotClock       float64
	minTimeBase     float64
	tempoCoeff      float64
	rushThreshold   float64
	rushQuality     float64
	spacingNoise    float64
	blockBase       float64
	blockBonus      float64
	blockSpacingMax float64
	fcStealRate     float64

	// shooting
	shOffTotal    []config.Term
	shDefTotal    []config.Term
	shBonus3pt    []config.Term
	shSkill       []config.Term
	teamRange     []config.Term
	iqOff         []config.Term
	iqDef         []config.Term
	assistTeam    []config.Term
	luckTeam      []config.Term
	rebOff        []config.Term
	rebDef        []config.Term
	ftBonus       []config.Term
	baseRate2pt   float64
	baseRate3pt   float64
	skillDivisor  float64
	spacingWeight float64
	multiplier3pt float64
	assistCoeff   float64
	rebDefBase    float64
	ftBaseMin     float64
	ftBaseMax     float64
	ftAttrCoeff   float64

	jumpBall []config.Term

	// minutes
	totalMinutes float64
}

// Option configures a MatchEngine.
type Option func(*MatchEngine)

// WithRNG supplies the engine's random source. Batch workers pass an
// independently seeded RNG per worker.
func WithRNG(rng *RNG) Option {
	return func(e *MatchEngine) { e.rng = rng }
}

// WithLogger attaches a logger for lifecycle events. The possession loop
// itself never logs.
func WithLogger(log *logrus.Logger) Option {
	return func(e *MatchEngine) { e.log = log }
}

// NewMatchEngine validates the inputs, resolves all formulas and runs the
// pre-game setup (positional scores, best five, minute budget, starters).
func NewMatchEngine(home, away *Team, cfg config.GameConfig, opts ...Option) (*MatchEngine, error) {
	if len(home.Roster) < 5 {
		return nil, fmt.Errorf("team %s: roster has %d players, need at least 5", home.ID, len(home.Roster))
	}
	if len(away.Roster) < 5 {
		return nil, fmt.Errorf("team %s: roster has %d players, need at least 5", away.ID, len(away.Roster))
	}

	e := &MatchEngine{
		home: home,
		away: away,
		cfg:  cfg,
		rng:  defaultRNG,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.stamina = NewStaminaSystem(cfg)
	e.subs = NewSubstitutionSystem(cfg)
	e.attrib = NewAttributionSystem(cfg, e.rng)
	e.resolveParams()

	e.state = &MatchState{
		Quarter:       1,
		TimeRemaining: e.params.quarterLength,
	}

	home.ResetMatchState()
	away.ResetMatchState()

	for _, team := range []*Team{home, away} {
		e.calculateAllPositionalScores(team)
		e.determineBestFive(team)
		e.distributeTeamMinutes(team)
		e.setInitialLineup(team)
	}

	return e, nil
}

// Simulate runs one match with the package-level RNG (seed via Seed).
// The passed teams are mutated: stats and possession histories carry the
// match's data afterwards.
func Simulate(home, away *Team, cfg config.GameConfig, gameID string) (*MatchResult, error) {
	e, err := NewMatchEngine(home, away, cfg)
	if err != nil {
		return nil, err
	}
	return e.Run(gameID), nil
}

func (e *MatchEngine) resolveParams() {
	cfg := e.cfg
	const pools = "match_engine.attr_pools"
	p := &e.params

	p.quarterLength = cfg.Float("match_engine.general.quarter_length", 720)
	p.otLength = cfg.Float("match_engine.general.ot_length", 300)
	p.halftimeMinutes = cfg.Float("match_engine.general.halftime_rest_minutes", 10)
	p.clutchSeconds = cfg.Float("match_engine.general.clutch_seconds", 180)

	p.bcOffAdvance = cfg.ResolveFormulaKey("match_engine.backcourt.formulas.off_advance", pools, []string{"off_dribble", "off_handle", "ath_speed"})
	p.bcDefPressure = cfg.ResolveFormulaKey("match_engine.backcourt.formulas.def_pressure", pools, []string{"def_disrupt", "def_contest", "ath_speed"})
	p.openingSeconds = cfg.Float("match_engine.backcourt.params.opening_seconds", 2.0)
	p.timeBaseMin = cfg.Float("match_engine.backcourt.params.time_base_min", 1.5)
	p.timeBaseMax = cfg.Float("match_engine.backcourt.params.time_base_max", 4.0)
	p.timeCoeff = cfg.Float("match_engine.backcourt.params.time_coeff", 0.002)
	p.violation8s = cfg.Float("match_engine.backcourt.params.violation_threshold", 8.0)
	p.stealThreshold = cfg.Float("match_engine.backcourt.params.steal_threshold", 3.0)
	p.stealBase = cfg.Float("match_engine.backcourt.params.steal_base", 0.02)
	p.stealBonus = cfg.Float("match_engine.backcourt.params.steal_bonus_coeff", 0.0005)
	p.fbThreshold = cfg.Float("match_engine.backcourt.params.fastbreak_threshold", 1.0)

	p.fbPower = cfg.ResolveFormulaKey("match_engine.backcourt.fastbreak.formulas.power", pools, []string{"ath_speed", "ath_strength", "off_dribble"})
	p.fbSuccessBase = cfg.Float("match_engine.backcourt.fastbreak.params.success_base", 0.5)
	p.fbPowerCoeff = cfg.Float("match_engine.backcourt.fastbreak.params.power_coeff", 0.005)
	p.fbDuration = cfg.Float("match_engine.backcourt.fastbreak.params.duration", 3.0)

	p.fcTempo = cfg.ResolveFormulaKey("match_engine.frontcourt.formulas.tempo", pools, []string{"off_dribble", "off_handle", "ath_speed", "talent_offiq"})
	p.fcSpacingOff = cfg.ResolveFormulaKey("match_engine.frontcourt.formulas.spacing_off", pools, []string{"off_move", "shot_range", "off_pass"})
	p.fcSpacingDef = cfg.ResolveFormulaKey("match_engine.frontcourt.formulas.spacing_def", pools, []string{"def_contest", "def_disrupt", "ath_speed"})
	p.shotClock = cfg.Float("match_engine.frontcourt.params.shot_clock", 24.0)
	p.minTimeBase = cfg.Float("match_engine.frontcourt.params.min_time_base", 8.0)
	p.tempoCoeff = cfg.Float("match_engine.frontcourt.params.tempo_coeff", 0.007)
	p.rushThreshold = cfg.Float("match_engine.frontcourt.params.rush_threshold", 7.0)
	p.rushQuality = cfg.Float("match_engine.frontcourt.params.rush_quality_coeff", 0.01)
	p.spacingNoise = cfg.Float("match_engine.frontcourt.params.spacing_noise", 0.1)
	p.blockBase = cfg.Float("match_engine.frontcourt.params.block_base", 0.01)
	p.blockBonus = cfg.Float("match_engine.frontcourt.params.block_spacing_bonus", 0.05)
	p.blockSpacingMax = cfg.Float("match_engine.frontcourt.params.block_spacing_threshold", 0.5)
	p.fcStealRate = cfg.Float("match_engine.frontcourt.params.steal_rate", 0.01)

	p.shOffTotal = cfg.ResolveFormulaKey("match_engine.shooting.formulas.off_total", pools, []string{
		"off_dribble", "off_handle", "off_pass", "off_move",
		"shot_touch", "shot_accuracy", "shot_range", "shot_release",
		"ath_speed", "ath_strength", "ath_jump", "talent_offiq", "talent_luck",
	})
	p.shDefTotal = cfg.ResolveFormulaKey("match_engine.shooting.formulas.def_total", pools, []string{
		"def_contest", "def_disrupt", "def_rebound", "def_boxout",
		"ath_speed", "ath_strength", "ath_jump", "ath_stamina",
		"talent_defiq", "talent_offiq", "talent_luck", "talent_health",
	})
	p.shBonus3pt = cfg.ResolveFormulaKey("match_engine.shooting.formulas.bonus_3pt", pools, []string{"shot_range", "shot_release"})
	p.shSkill = cfg.ResolveFormulaKey("match_engine.shooting.formulas.skill", pools, []string{"shot_touch", "shot_release", "shot_accuracy", "shot_range"})
	p.teamRange = cfg.ResolveFormulaKey("match_engine.shooting.formulas.team_range", pools, []string{"shot_range"})
	p.iqOff = cfg.ResolveFormulaKey("match_engine.shooting.formulas.iq_off", pools, []string{"talent_offiq"})
	p.iqDef = cfg.ResolveFormulaKey("match_engine.shooting.formulas.iq_def", pools, []string{"talent_defiq"})
	p.assistTeam = cfg.ResolveFormulaKey("match_engine.shooting.assist.formulas.team_assist", pools, []string{"off_pass"})
	p.luckTeam = cfg.ResolveFormulaKey("match_engine.shooting.assist.formulas.team_luck", pools, []string{"talent_luck"})
	p.rebOff = cfg.ResolveFormulaKey("match_engine.shooting.rebound.formulas.off_rebound", pools, []string{"def_rebound", "def_boxout", "ath_jump"})
	p.rebDef = cfg.ResolveFormulaKey("match_engine.shooting.rebound.formulas.def_rebound", pools, []string{"def_rebound", "def_boxout", "ath_jump"})
	p.ftBonus = cfg.ResolveFormulaKey("match_engine.shooting.ft.formulas.bonus", pools, []string{"shot_touch", "shot_release"})
	p.baseRate2pt = cfg.Float("match_engine.shooting.params.base_rate_2pt", 0.40)
	p.baseRate3pt = cfg.Float("match_engine.shooting.params.base_rate_3pt", 0.20)
	p.skillDivisor = cfg.Float("match_engine.shooting.params.skill_bonus_divisor", 1500)
	p.spacingWeight = cfg.Float("match_engine.shooting.params.spacing_weight", 0.1)
	p.multiplier3pt = cfg.Float("match_engine.shooting.params.multiplier_3pt", 1.2)
	p.assistCoeff = cfg.Float("match_engine.shooting.assist.params.prob_coeff", 0.000005)
	p.rebDefBase = cfg.Float("match_engine.shooting.rebound.params.def_base", 0.10)
	p.ftBaseMin = cfg.Float("match_engine.shooting.ft.params.base_min", 0.40)
	p.ftBaseMax = cfg.Float("match_engine.shooting.ft.params.base_max", 0.95)
	p.ftAttrCoeff = cfg.Float("match_engine.shooting.ft.params.attr_coeff", 0.001)

	p.jumpBall = cfg.ResolveFormulaKey("match_engine.general.jump_ball", pools, []string{"ath_jump", "height"})

	p.totalMinutes = cfg.Float("minutes_distribution.total_minutes", 240)

	e.posScoring = make(map[string][]config.Term, len(StarterPositions))
	for _, pos := range StarterPositions {
		e.posScoring[pos] = cfg.ResolveFormulaKey("match_engine.positional_scoring."+pos, pools, defaultPositionalScoring[pos])
	}
}

var defaultPositionalScoring = map[string][]string{
	"PG": {"off_pass", "off_handle", "off_dribble", "ath_speed", "talent_offiq"},
	"SG": {"shot_accuracy", "shot_range", "shot_release", "off_move", "ath_speed"},
	"SF": {"shot_touch", "off_move", "ath_speed", "ath_strength", "def_contest"},
	"PF": {"ath_strength", "def_rebound", "def_boxout", "ath_jump", "shot_touch"},
	"C":  {"height", "ath_strength", "def_rebound", "def_boxout", "ath_jump"},
}

// ------------------------------------------------------------------
// Pre-game setup
// ------------------------------------------------------------------

// calculateAllPositionalScores scores every rostered player at all five
// positions. Stamina is full pre-game, so these are unfatigued sums.
func (e *MatchEngine) calculateAllPositionalScores(team *Team) {
	for _, p := range team.Roster {
		p.PosScores = make(map[string]float64, len(StarterPositions))
		for _, pos := range StarterPositions {
			p.PosScores[pos] = PlayerAttrSum(p, e.posScoring[pos])
		}
	}
}

// determineBestFive greedily fills the C/PF/SF/SG/PG slots from the global
// (player, slot) score ranking, never assigning a player twice, then plugs
// any gaps from the unassigned roster in order. The result is frozen for
// the whole match.
func (e *MatchEngine) determineBestFive(team *Team) {
	positions := RedistributionPositions

	type candidate struct {
		score  float64
		slot   int
		player *Player
	}
	candidates := make([]candidate, 0, len(team.Roster)*len(positions))
	for _, p := range team.Roster {
		for i, pos := range positions {
			candidates = append(candidates, candidate{p.PosScores[pos], i, p})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	bestFive := make([]*Player, len(positions))
	taken := make(map[string]bool)
	filled := 0
	for _, c := range candidates {
		if bestFive[c.slot] == nil && !taken[c.player.ID] {
			bestFive[c.slot] = c.player
			taken[c.player.ID] = true
			filled++
			if filled == len(positions) {
				break
			}
		}
	}

	if filled < len(positions) {
		for _, p := range team.Roster {
			if filled == len(positions) {
				break
			}
			if taken[p.ID] {
				continue
			}
			for i := range bestFive {
				if bestFive[i] == nil {
					bestFive[i] = p
					taken[p.ID] = true
					filled++
					break
				}
			}
		}
	}

	team.BestFive = bestFive
}

// distributeTeamMinutes allocates the minute budget: role base plus a
// uniformly drawn weight share of whatever the bases leave over. Raw
// minutes are floored to 0.1 and the final player absorbs the remainder so
// the totals add up exactly.
func (e *MatchEngine) distributeTeamMinutes(team *Team) {
	roles := e.cfg.Sub("minutes_distribution.roles")
	total := e.params.totalMinutes

	roleFloat := func(role, key string, def float64) float64 {
		if v := roles.Float(role+"."+key, -1); v >= 0 {
			return v
		}
		if v := roles.Float(RoleBench+"."+key, -1); v >= 0 {
			return v
		}
		return def
	}

	totalBase := 0.0
	for _, p := range team.Roster {
		totalBase += roleFloat(p.Role, "base", defaultRoleMinutes[p.Role].base)
	}
	remaining := total - totalBase
	if remaining < 0 {
		remaining = 0
	}

	weights := make([]float64, len(team.Roster))
	totalWeight := 0.0
	for i, p := range team.Roster {
		minW := roleFloat(p.Role, "min_w", defaultRoleMinutes[p.Role].minW)
		maxW := roleFloat(p.Role, "max_w", defaultRoleMinutes[p.Role].maxW)
		weights[i] = e.rng.Uniform(minW, maxW)
		totalWeight += weights[i]
	}

	unit := 0.0
	if totalWeight > 0 {
		unit = remaining / totalWeight
	}

	allocated := 0.0
	for i, p := range team.Roster {
		base := roleFloat(p.Role, "base", defaultRoleMinutes[p.Role].base)
		raw := base + weights[i]*unit
		minutes := float64(int(raw*10)) / 10.0

		if i == len(team.Roster)-1 {
			if diff := total - allocated; diff > 0 {
				minutes = diff
			}
		}

		allocated += minutes
		p.TargetSeconds = minutes * 60.0
		p.SecondsPlayed = 0
	}
}

type roleMinutes struct{ base, minW, maxW float64 }

var defaultRoleMinutes = map[string]roleMinutes{
	RoleStar:     {base: 30, minW: 2.0, maxW: 4.0},
	RoleStarter:  {base: 24, minW: 1.5, maxW: 3.0},
	RoleRotation: {base: 12, minW: 1.0, maxW: 2.5},
	RoleRole:     {base: 6, minW: 0.5, maxW: 1.5},
	RoleBench:    {base: 0, minW: 0.1, maxW: 1.0},
}

// setInitialLineup fills the starting slots: Stars claim their best open
// slot first, then Starters, then the best remaining player per empty
// slot. Everyone else goes to the bench.
func (e *MatchEngine) setInitialLineup(team *Team) {
	positions := StarterPositions
	starters := make([]*Player, len(positions))
	taken := make(map[string]bool)

	tryFill := func(p *Player) {
		bestIdx := -1
		bestScore := 0.0
		for i, pos := range positions {
			if starters[i] != nil {
				continue
			}
			if bestIdx == -1 || p.PosScores[pos] > bestScore {
				bestIdx = i
				bestScore = p.PosScores[pos]
			}
		}
		if bestIdx >= 0 {
			starters[bestIdx] = p
			taken[p.ID] = true
			p.Position = positions[bestIdx]
		}
	}

	for _, p := range team.Roster {
		if p.Role == RoleStar {
			tryFill(p)
		}
	}
	for _, p := range team.Roster {
		if p.Role == RoleStarter && !taken[p.ID] {
			tryFill(p)
		}
	}

	for i, pos := range positions {
		if starters[i] != nil {
			continue
		}
		var best *Player
		bestScore := -1.0
		for _, p := range team.Roster {
			if taken[p.ID] {
				continue
			}
			if p.PosScores[pos] > bestScore {
				bestScore = p.PosScores[pos]
				best = p
			}
		}
		if best != nil {
			starters[i] = best
			best.Position = pos
			taken[best.ID] = true
		}
	}

	team.OnCourt = team.OnCourt[:0]
	for _, p := range starters {
		if p != nil {
			team.OnCourt = append(team.OnCourt, p)
		}
	}
	team.Bench = team.Bench[:0]
	for _, p := range team.Roster {
		if !taken[p.ID] {
			team.Bench = append(team.Bench, p)
		}
	}
}

// ------------------------------------------------------------------
// Game loop
// ------------------------------------------------------------------

// Run plays the match to completion and builds the result. Overtimes keep
// coming until the tie breaks.
func (e *MatchEngine) Run(gameID string) *MatchResult {
	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"game_id": gameID,
			"home":    e.home.Name,
			"away":    e.away.Name,
		}).Debug("Starting match simulation")
	}

	e.jumpBallWinner = e.resolveJumpBall()

	quarter := 0
	for {
		quarter++
		e.state.Quarter = quarter
		if quarter <= 4 {
			e.state.TimeRemaining = e.params.quarterLength
		} else {
			e.state.TimeRemaining = e.params.otLength
			e.jumpBallWinner = e.resolveJumpBall()
		}
		e.state.Possession = e.tipOffTeam(quarter).ID
		e.isNewPossession = true
		e.openingPlay = true

		e.runQuarter()

		if quarter == 2 {
			e.stamina.ApplyRest(e.home.Roster, e.params.halftimeMinutes)
			e.stamina.ApplyRest(e.away.Roster, e.params.halftimeMinutes)
		}
		if quarter >= 4 && e.home.Score != e.away.Score {
			break
		}
	}

	e.flushPossession()
	e.state.IsOver = true

	return e.buildResult(gameID, quarter)
}

func (e *MatchEngine) runQuarter() {
	for e.state.TimeRemaining > 0 {
		offense, defense := e.sides()

		if e.inClutch() {
			for _, team := range []*Team{e.home, e.away} {
				for _, msg := range e.subs.EnforceBestFive(team) {
					e.logPlay(msg)
				}
			}
		} else {
			for _, team := range []*Team{e.home, e.away} {
				for _, msg := range e.subs.CheckAutoSubstitution(team) {
					e.logPlay(msg)
				}
			}
		}

		if e.isNewPossession {
			e.flushPossession()
			e.possTeam = offense
			e.possElapsed = 0
			offense.StatPossessions++
		}

		outcome := e.runPossession(offense, defense)
		e.openingPlay = false

		e.possElapsed += outcome.elapsed
		e.state.TimeRemaining -= outcome.elapsed
		e.state.GameTimeElapsed += outcome.elapsed
		e.tick(outcome.elapsed)

		e.logPlay(outcome.desc)

		if outcome.keep {
			e.isNewPossession = false
		} else {
			e.state.Possession = defense.ID
			e.isNewPossession = true
		}
	}
}

// tick advances played seconds and fatigue for everyone on the floor and
// recovery for everyone on the bench.
func (e *MatchEngine) tick(elapsed float64) {
	for _, team := range []*Team{e.home, e.away} {
		for _, p := range team.OnCourt {
			p.SecondsPlayed += elapsed
			e.stamina.Update(p, elapsed, true)
		}
		for _, p := range team.Bench {
			e.stamina.Update(p, elapsed, false)
		}
	}
}

func (e *MatchEngine) sides() (offense, defense *Team) {
	if e.state.Possession == e.home.ID {
		return e.home, e.away
	}
	return e.away, e.home
}

func (e *MatchEngine) inClutch() bool {
	return e.state.Quarter >= 4 && e.state.TimeRemaining <= e.params.clutchSeconds
}

// tipOffTeam implements the alternating tip rule: the jump-ball winner
// opens quarters 1 and 4 (and every overtime, with a fresh jump), the
// loser opens quarters 2 and 3.
func (e *MatchEngine) tipOffTeam(quarter int) *Team {
	loser := e.home
	if e.jumpBallWinner == e.home {
		loser = e.away
	}
	switch quarter {
	case 2, 3:
		return loser
	default:
		return e.jumpBallWinner
	}
}

// resolveJumpBall pits the two on-floor centers (fallback: first player on
// the floor) against each other proportionally by jump attributes.
func (e *MatchEngine) resolveJumpBall() *Team {
	h := e.jumperFor(e.home)
	a := e.jumperFor(e.away)
	hSum := PlayerAttrSum(h, e.params.jumpBall)
	aSum := PlayerAttrSum(a, e.params.jumpBall)
	total := hSum + aSum
	if total <= 0 {
		return e.home
	}
	if e.rng.Bernoulli(hSum / total) {
		return e.home
	}
	return e.away
}

func (e *MatchEngine) jumperFor(team *Team) *Player {
	court := team.OnCourt
	if len(court) == 0 {
		return team.Roster[0]
	}
	for _, p := range court {
		if p.Position == "C" {
			return p
		}
	}
	return court[0]
}

func (e *MatchEngine) flushPossession() {
	if e.possTeam == nil {
		return
	}
	e.possTeam.StatPossessionHistory = append(e.possTeam.StatPossessionHistory, e.possElapsed)
	e.possTeam.StatPossessionSeconds += e.possElapsed
	e.possTeam = nil
	e.possElapsed = 0
}

func (e *MatchEngine) logPlay(desc string) {
	remaining := e.state.TimeRemaining
	if remaining < 0 {
		remaining = 0
	}
	mm := int(remaining) / 60
	ss := int(remaining) % 60
	e.pbp = append(e.pbp, fmt.Sprintf("[Q%d %02d:%02d] %s", e.state.Quarter, mm, ss, desc))
}

func (e *MatchEngine) buildResult(gameID string, quarters int) *MatchResult {
	res := &MatchResult{
		GameID:        gameID,
		HomeTeamID:    e.home.ID,
		AwayTeamID:    e.away.ID,
		HomeScore:     e.home.Score,
		AwayScore:     e.away.Score,
		IsOT:          quarters > 4,
		TotalQuarters: quarters,

		HomePossessions:       e.home.StatPossessions,
		AwayPossessions:       e.away.StatPossessions,
		HomePossessionHistory: e.home.StatPossessionHistory,
		AwayPossessionHistory: e.away.StatPossessionHistory,

		HomeFBMade:    e.home.StatFBMade,
		HomeFBAttempt: e.home.StatFBAttempt,
		AwayFBMade:    e.away.StatFBMade,
		AwayFBAttempt: e.away.StatFBAttempt,

		HomeViolation8s:  e.home.StatViolation8s,
		HomeViolation24s: e.home.StatViolation24s,
		AwayViolation8s:  e.away.StatViolation8s,
		AwayViolation24s: e.away.StatViolation24s,

		PBPLog: e.pbp,
	}

	gameMinutes := e.state.GameTimeElapsed / 60.0
	if gameMinutes > 0 {
		res.Pace = float64(res.HomePossessions+res.AwayPossessions) / 2.0 * 48.0 / gameMinutes
	}
	if res.HomePossessions > 0 {
		res.HomeAvgSecondsPerPoss = e.home.StatPossessionSeconds / float64(res.HomePossessions)
	}
	if res.AwayPossessions > 0 {
		res.AwayAvgSecondsPerPoss = e.away.StatPossessionSeconds / float64(res.AwayPossessions)
	}

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"game_id":    gameID,
			"home_score": res.HomeScore,
			"away_score": res.AwayScore,
			"quarters":   res.TotalQuarters,
			"pace":       res.Pace,
		}).Debug("Match simulation finished")
	}
	return res
}

// GameTimeElapsed exposes total simulated seconds, for reporting.
func (e *MatchEngine) GameTimeElapsed() float64 {
	return e.state.GameTimeElapsed
}
