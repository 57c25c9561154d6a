package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/config"
)

func fiveOnCourt(team *Team) {
	team.OnCourt = team.Roster[:5]
	team.Bench = team.Roster[5:]
	for i, pos := range StarterPositions {
		team.OnCourt[i].Position = pos
	}
}

func newAttribution(rng *RNG) *AttributionSystem {
	return NewAttributionSystem(config.GameConfig{}, rng)
}

func TestDetermineShooterZeroWeightsFallsBackToFirst(t *testing.T) {
	a := newAttribution(NewRNG(1))
	team := uniformTeam("t", 5, 0, RoleStarter)
	fiveOnCourt(team)

	shooter := a.DetermineShooter(team, false)
	assert.Same(t, team.OnCourt[0], shooter)
}

func TestDetermineShooterPrefersStrongShooters(t *testing.T) {
	a := newAttribution(NewRNG(1))
	team := uniformTeam("t", 5, 1, RoleStarter)
	fiveOnCourt(team)
	ace := team.OnCourt[2]
	ace.ShotTouch = 99
	ace.ShotAccuracy = 99
	ace.OffMove = 99

	hits := 0
	const n = 2000
	for i := 0; i < n; i++ {
		if a.DetermineShooter(team, false) == ace {
			hits++
		}
	}
	assert.Greater(t, hits, n/2, "dominant shooter should take most shots")
}

func TestDetermineShooterStarRoleBias(t *testing.T) {
	a := newAttribution(NewRNG(2))
	team := uniformTeam("t", 5, 50, RoleStarter)
	fiveOnCourt(team)
	star := team.OnCourt[1]
	star.Role = RoleStar

	starShots := 0
	const n = 5000
	for i := 0; i < n; i++ {
		if a.DetermineShooter(team, false) == star {
			starShots++
		}
	}
	// 1.5 weight vs 1.2 for four starters: expected share ~0.238
	assert.Greater(t, starShots, n/5)
}

func TestDetermineAssisterExcludesShooter(t *testing.T) {
	a := newAttribution(NewRNG(3))
	team := uniformTeam("t", 5, 50, RoleStarter)
	fiveOnCourt(team)
	shooter := team.OnCourt[0]

	for i := 0; i < 200; i++ {
		assister := a.DetermineAssister(team, shooter)
		require.NotNil(t, assister)
		assert.NotSame(t, shooter, assister)
	}
}

func TestDetermineAssisterZeroWeightsFallsBack(t *testing.T) {
	a := newAttribution(NewRNG(1))
	team := uniformTeam("t", 5, 0, RoleStarter)
	fiveOnCourt(team)

	assister := a.DetermineAssister(team, team.OnCourt[0])
	require.NotNil(t, assister)
	assert.NotSame(t, team.OnCourt[0], assister)
}

func TestDetermineRebounderZeroWeightsFallsBack(t *testing.T) {
	a := newAttribution(NewRNG(1))
	off := uniformTeam("off", 5, 0, RoleStarter)
	def := uniformTeam("def", 5, 0, RoleStarter)
	for _, team := range []*Team{off, def} {
		fiveOnCourt(team)
		for _, p := range team.Roster {
			p.Height = 0
		}
	}

	assert.Same(t, def.OnCourt[0], a.DetermineRebounder(off, def, true))
	assert.Same(t, off.OnCourt[0], a.DetermineRebounder(off, def, false))
}

func TestDetermineRebounderPrefersBigs(t *testing.T) {
	a := newAttribution(NewRNG(4))
	off := uniformTeam("off", 5, 30, RoleStarter)
	def := uniformTeam("def", 5, 30, RoleStarter)
	fiveOnCourt(off)
	fiveOnCourt(def)
	big := def.OnCourt[4]
	big.DefRebound = 99
	big.DefBoxout = 99
	big.AthJump = 99
	big.AthStrength = 99
	big.Height = 220

	hits := 0
	const n = 2000
	for i := 0; i < n; i++ {
		if a.DetermineRebounder(off, def, true) == big {
			hits++
		}
	}
	// big's weight share is ~0.31 against four identical median defenders
	assert.Greater(t, hits, n/4)
}

func TestDetermineStealerWeighted(t *testing.T) {
	a := newAttribution(NewRNG(5))
	def := uniformTeam("def", 5, 0, RoleStarter)
	fiveOnCourt(def)
	thief := def.OnCourt[3]
	thief.DefDisrupt = 80
	thief.AthSpeed = 80

	for i := 0; i < 100; i++ {
		assert.Same(t, thief, a.DetermineStealer(def))
	}
}

func TestDetermineStealerZeroWeightsFallsBackToLast(t *testing.T) {
	a := newAttribution(NewRNG(1))
	def := uniformTeam("def", 5, 0, RoleStarter)
	fiveOnCourt(def)

	assert.Same(t, def.OnCourt[4], a.DetermineStealer(def))
}

func TestPositionMatchup(t *testing.T) {
	team := uniformTeam("t", 5, 50, RoleStarter)
	fiveOnCourt(team)
	target := &Player{Position: "SF"}

	assert.Same(t, team.OnCourt[2], PositionMatchup(target, team))

	stray := &Player{Position: "??"}
	assert.Same(t, team.OnCourt[0], PositionMatchup(stray, team))
}

func TestRecordingPrimitives(t *testing.T) {
	team := &Team{ID: "t", Name: "T"}
	shooter := &Player{ID: "s", Position: "SG"}
	passer := &Player{ID: "a"}

	RecordScore(team, shooter, 3, true, passer)
	assert.Equal(t, 3, team.Score)
	assert.Equal(t, 3, shooter.Pts)
	assert.Equal(t, 1, shooter.FGM)
	assert.Equal(t, 1, shooter.FGA)
	assert.Equal(t, 1, shooter.TPM)
	assert.Equal(t, 1, shooter.TPA)
	assert.Equal(t, 1, passer.Ast)

	RecordAttempt(shooter, false)
	assert.Equal(t, 2, shooter.FGA)
	assert.Equal(t, 1, shooter.TPA)

	RecordRebound(shooter, true)
	RecordRebound(shooter, false)
	assert.Equal(t, 2, shooter.Reb)
	assert.Equal(t, 1, shooter.ORB)
	assert.Equal(t, 1, shooter.DRB)

	RecordFreeThrow(shooter, true)
	RecordFreeThrow(shooter, false)
	assert.Equal(t, 2, shooter.FTA)
	assert.Equal(t, 1, shooter.FTM)
	assert.Equal(t, 4, shooter.Pts)

	RecordTeamTurnover(team)
	assert.Equal(t, 1, team.StatTov)

	RecordFoul(shooter)
	assert.Equal(t, 1, shooter.Fouls)
}

func TestRecordStealChargesMatchedUpVictim(t *testing.T) {
	victims := uniformTeam("v", 5, 50, RoleStarter)
	fiveOnCourt(victims)
	stealer := &Player{ID: "thief", Position: "PG"}

	RecordSteal(stealer, victims)
	assert.Equal(t, 1, stealer.Stl)
	assert.Equal(t, 1, victims.OnCourt[0].Tov)
}

func TestRecordBlockChargesAttempt(t *testing.T) {
	blocker := &Player{ID: "b"}
	shooter := &Player{ID: "s"}

	RecordBlock(blocker, shooter)
	assert.Equal(t, 1, blocker.Blk)
	assert.Equal(t, 1, shooter.FGA)
	assert.Zero(t, shooter.FGM)
}
