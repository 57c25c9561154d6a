package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/config"
)

func simulateSeeded(t *testing.T, home, away *Team, cfg config.GameConfig, seed int64) *MatchResult {
	t.Helper()
	e, err := NewMatchEngine(home, away, cfg, WithRNG(NewRNG(seed)))
	require.NoError(t, err)
	return e.Run(fmt.Sprintf("scenario-%d", seed))
}

// Identical median teams: pace and totals must land in the plausible
// basketball window and neither side may own the matchup.
func TestScenarioIdenticalTeams(t *testing.T) {
	cfg := loadGameConfig(t)

	const games = 40
	paceSum, totalSum := 0.0, 0.0
	for i := 0; i < games; i++ {
		res := simulateSeeded(t, medianCloneTeam("home"), medianCloneTeam("away"), cfg, int64(i+1))
		paceSum += res.Pace
		totalSum += float64(res.HomeScore + res.AwayScore)
	}

	pace := paceSum / games
	total := totalSum / games
	assert.GreaterOrEqual(t, pace, 85.0, "mean pace")
	assert.LessOrEqual(t, pace, 115.0, "mean pace")
	assert.GreaterOrEqual(t, total, 150.0, "mean total score")
	assert.LessOrEqual(t, total, 230.0, "mean total score")
}

func TestScenarioIdenticalTeamsWinSplit(t *testing.T) {
	if testing.Short() {
		t.Skip("aggregate scenario")
	}
	cfg := loadGameConfig(t)

	const games = 400
	homeWins := 0
	for i := 0; i < games; i++ {
		res := simulateSeeded(t, medianCloneTeam("home"), medianCloneTeam("away"), cfg, int64(1000+i))
		if res.HomeScore > res.AwayScore {
			homeWins++
		}
	}

	share := float64(homeWins) / games
	assert.Greater(t, share, 0.40, "win split should hover near a coin flip")
	assert.Less(t, share, 0.60)
}

// Asymmetric strength: 80-rated roster against a 40-rated one must be a
// near-lock with a wide margin.
func TestScenarioAsymmetricStrength(t *testing.T) {
	if testing.Short() {
		t.Skip("aggregate scenario")
	}
	cfg := loadGameConfig(t)

	const games = 300
	homeWins := 0
	marginSum := 0.0
	for i := 0; i < games; i++ {
		home := uniformTeam("strong", 12, 80, RoleStarter)
		away := uniformTeam("weak", 12, 40, RoleStarter)
		res := simulateSeeded(t, home, away, cfg, int64(42+i))
		if res.HomeScore > res.AwayScore {
			homeWins++
		}
		marginSum += float64(res.HomeScore - res.AwayScore)
	}

	assert.GreaterOrEqual(t, float64(homeWins)/games, 0.95)
	assert.GreaterOrEqual(t, marginSum/games, 15.0)
}

// Stamina stress: a roster that cannot sustain effort must crater late.
func TestScenarioStaminaCollapse(t *testing.T) {
	if testing.Short() {
		t.Skip("aggregate scenario")
	}
	cfg := loadGameConfig(t)

	const games = 60
	earlyMakes, earlyShots := 0, 0
	lateMakes, lateShots := 0, 0
	sawExhaustedStarter := false

	for i := 0; i < games; i++ {
		tired := setAttr(medianCloneTeam("tired"), func(p *Player) {
			p.AthStamina = 10
			p.TalentHealth = 10
		})
		fresh := medianCloneTeam("fresh")
		res := simulateSeeded(t, tired, fresh, cfg, int64(500+i))

		for _, p := range tired.Roster {
			if p.SecondsPlayed > 0 && p.CurrentStamina < 40 {
				sawExhaustedStarter = true
			}
		}

		em, es := windowShots(res.PBPLog, "tired:", 1, true)
		lm, ls := windowShots(res.PBPLog, "tired:", 4, false)
		earlyMakes += em
		earlyShots += es
		lateMakes += lm
		lateShots += ls
	}

	require.Positive(t, earlyShots)
	require.Positive(t, lateShots)
	earlyPct := float64(earlyMakes) / float64(earlyShots)
	latePct := float64(lateMakes) / float64(lateShots)
	assert.True(t, sawExhaustedStarter, "a stamina-10 roster must have exhausted players by the end")
	assert.Less(t, latePct, earlyPct, "late-game FG%% must drop: early %.3f late %.3f", earlyPct, latePct)
}

// windowShots counts field goal makes and total attempts for one team in
// the first (firstHalfOfQuarter) or last six minutes of the given quarter.
func windowShots(pbp []string, teamPrefix string, quarter int, firstHalfOfQuarter bool) (makes, shots int) {
	for _, entry := range pbp {
		var q, mm, ss int
		if _, err := fmt.Sscanf(entry, "[Q%d %d:%d]", &q, &mm, &ss); err != nil || q != quarter {
			continue
		}
		remaining := mm*60 + ss
		if firstHalfOfQuarter && remaining < 360 {
			continue
		}
		if !firstHalfOfQuarter && remaining >= 360 {
			continue
		}
		idx := strings.Index(entry, "] ")
		if idx < 0 {
			continue
		}
		desc := entry[idx+2:]
		if !strings.HasPrefix(desc, teamPrefix) {
			continue
		}
		switch {
		case strings.Contains(desc, "make by"):
			makes++
			shots++
		case strings.Contains(desc, "miss by"):
			shots++
		}
	}
	return makes, shots
}

// Long-range roster shoots far more threes than a paint-bound one.
func TestScenarioShotDietFollowsRange(t *testing.T) {
	cfg := loadGameConfig(t)

	snipers := setAttr(medianCloneTeam("snipers"), func(p *Player) { p.ShotRange = 90 })
	grinders := setAttr(medianCloneTeam("grinders"), func(p *Player) { p.ShotRange = 30 })

	sniperTPA, sniperFGA := 0, 0
	grinderTPA, grinderFGA := 0, 0
	for i := 0; i < 10; i++ {
		h := CloneTeam(snipers)
		a := CloneTeam(grinders)
		simulateSeeded(t, h, a, cfg, int64(700+i))
		for _, p := range h.Roster {
			sniperTPA += p.TPA
			sniperFGA += p.FGA
		}
		for _, p := range a.Roster {
			grinderTPA += p.TPA
			grinderFGA += p.FGA
		}
	}

	require.Positive(t, sniperFGA)
	require.Positive(t, grinderFGA)
	assert.Greater(t, float64(sniperTPA)/float64(sniperFGA), float64(grinderTPA)/float64(grinderFGA))
}

// A lightning backcourt against a statue defense produces fastbreaks.
func TestScenarioSpeedGeneratesFastbreaks(t *testing.T) {
	cfg := loadGameConfig(t)

	sprinters := setAttr(medianCloneTeam("sprinters"), func(p *Player) {
		p.AthSpeed = 99
		p.OffDribble = 99
		p.OffHandle = 99
	})
	statues := setAttr(medianCloneTeam("statues"), func(p *Player) {
		p.AthSpeed = 1
		p.DefDisrupt = 1
		p.DefContest = 1
	})

	res := simulateSeeded(t, sprinters, statues, cfg, 800)
	assert.Greater(t, res.HomeFBAttempt, 10, "speed mismatch should create fastbreaks")
	assert.Equal(t, sprinters.StatFBAttempt, res.HomeFBAttempt)
}

// Dominant glass cleaners out-rebound a small roster.
func TestScenarioReboundingEdge(t *testing.T) {
	cfg := loadGameConfig(t)

	bigs := setAttr(medianCloneTeam("bigs"), func(p *Player) {
		p.DefRebound = 90
		p.DefBoxout = 90
		p.AthJump = 90
		p.Height = 215
	})
	smalls := setAttr(medianCloneTeam("smalls"), func(p *Player) {
		p.DefRebound = 30
		p.DefBoxout = 30
		p.AthJump = 30
		p.Height = 180
	})

	bigReb, smallReb := 0, 0
	for i := 0; i < 5; i++ {
		h := CloneTeam(bigs)
		a := CloneTeam(smalls)
		simulateSeeded(t, h, a, cfg, int64(900+i))
		for _, p := range h.Roster {
			bigReb += p.Reb
		}
		for _, p := range a.Roster {
			smallReb += p.Reb
		}
	}
	assert.Greater(t, bigReb, smallReb)
}
