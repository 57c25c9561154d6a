package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/config"
)

func subTeam() *Team {
	team := uniformTeam("t", 10, 50, RoleStarter)
	fiveOnCourt(team)
	for _, p := range team.Roster {
		p.TargetSeconds = 1440
		p.PosScores = map[string]float64{"PG": 50, "SG": 50, "SF": 50, "PF": 50, "C": 50}
	}
	return team
}

func newSubs() *SubstitutionSystem {
	return NewSubstitutionSystem(config.GameConfig{})
}

func TestAutoSubOnFatigue(t *testing.T) {
	s := newSubs()
	team := subTeam()
	tired := team.OnCourt[0]
	tired.CurrentStamina = 60

	logs := s.CheckAutoSubstitution(team)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "fatigue")
	assert.NotContains(t, team.OnCourt, tired)
	assert.Contains(t, team.Bench, tired)
	assert.Len(t, team.OnCourt, 5)
	assert.Len(t, team.Bench, 5)
}

func TestAutoSubOnMinuteOverrun(t *testing.T) {
	s := newSubs()
	team := subTeam()
	over := team.OnCourt[2]
	over.SecondsPlayed = over.TargetSeconds + 120
	over.CurrentStamina = 90 // above fatigue threshold, below the bench's 100 so a fresher sub exists

	logs := s.CheckAutoSubstitution(team)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "minutes")
	assert.NotContains(t, team.OnCourt, over)
}

func TestAutoSubIncomingInheritsPosition(t *testing.T) {
	s := newSubs()
	team := subTeam()
	tired := team.OnCourt[1]
	tired.CurrentStamina = 10
	wasPosition := tired.Position

	s.CheckAutoSubstitution(team)
	found := false
	for _, p := range team.OnCourt {
		if p.Position == wasPosition {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAutoSubNeedsFresherBench(t *testing.T) {
	s := newSubs()
	team := subTeam()
	tired := team.OnCourt[0]
	tired.CurrentStamina = 50
	for _, p := range team.Bench {
		p.CurrentStamina = 40 // nobody fresher
	}

	logs := s.CheckAutoSubstitution(team)
	assert.Empty(t, logs)
	assert.Contains(t, team.OnCourt, tired)
}

func TestAutoSubSkipsBenchOverTarget(t *testing.T) {
	s := newSubs()
	team := subTeam()
	team.OnCourt[0].CurrentStamina = 50
	for _, p := range team.Bench {
		p.SecondsPlayed = p.TargetSeconds + 1 // everyone out of minutes
	}

	logs := s.CheckAutoSubstitution(team)
	assert.Empty(t, logs)
}

func TestEnforceBestFivePutsBestFiveOn(t *testing.T) {
	s := newSubs()
	team := subTeam()
	team.BestFive = []*Player{team.Roster[5], team.Roster[6], team.Roster[7], team.Roster[8], team.Roster[9]}

	logs := s.EnforceBestFive(team)
	assert.Len(t, logs, 5)
	require.Len(t, team.OnCourt, 5)
	for _, want := range team.BestFive {
		assert.Contains(t, team.OnCourt, want)
	}
	// positions assigned in redistribution order
	for i, p := range team.BestFive {
		assert.Equal(t, RedistributionPositions[i], p.Position)
	}
}

func TestEnforceBestFiveIsIdempotent(t *testing.T) {
	s := newSubs()
	team := subTeam()
	team.BestFive = append([]*Player{}, team.OnCourt...)

	logs := s.EnforceBestFive(team)
	assert.Empty(t, logs)
	assert.Len(t, team.OnCourt, 5)
}

func TestEnforceBestFiveReplacesFouledOutMember(t *testing.T) {
	s := newSubs()
	team := subTeam()
	team.BestFive = append([]*Player{}, team.OnCourt...)
	gone := team.BestFive[0]
	gone.IsFouledOut = true
	// make one bench player clearly best at the vacant slot
	sub := team.Bench[2]
	sub.PosScores[RedistributionPositions[0]] = 99

	s.EnforceBestFive(team)
	assert.NotContains(t, team.OnCourt, gone)
	assert.Contains(t, team.OnCourt, sub)
}

func TestHandleFouledOutReplacesAndFreezesTarget(t *testing.T) {
	s := newSubs()
	team := subTeam()
	fouled := team.OnCourt[0]
	fouled.SecondsPlayed = 600
	fouled.TargetSeconds = 1500

	msg := s.HandleFouledOut(team, fouled)
	assert.Contains(t, msg, "fouled out")
	assert.True(t, fouled.IsFouledOut)
	assert.Equal(t, 600.0, fouled.TargetSeconds)
	assert.NotContains(t, team.OnCourt, fouled)
	assert.Len(t, team.OnCourt, 5)
}

func TestHandleFouledOutRedistributesForfeitedSeconds(t *testing.T) {
	s := newSubs()
	team := subTeam()
	fouled := team.OnCourt[0]
	fouled.SecondsPlayed = 600
	fouled.TargetSeconds = 1500 // forfeits 900

	before := 0.0
	for _, p := range team.Roster {
		if p != fouled {
			before += p.TargetSeconds
		}
	}
	s.HandleFouledOut(team, fouled)
	after := 0.0
	for _, p := range team.Roster {
		if p != fouled {
			after += p.TargetSeconds
		}
	}
	assert.InDelta(t, 900.0, after-before, 1e-6)
}

func TestHandleFouledOutWithEmptyBenchKeepsPlayerOn(t *testing.T) {
	s := newSubs()
	team := uniformTeam("t", 5, 50, RoleStarter)
	fiveOnCourt(team)
	for _, p := range team.Roster {
		p.PosScores = map[string]float64{"PG": 50, "SG": 50, "SF": 50, "PF": 50, "C": 50}
	}
	fouled := team.OnCourt[0]

	msg := s.HandleFouledOut(team, fouled)
	assert.Contains(t, msg, "no eligible replacement")
	assert.True(t, fouled.IsFouledOut)
	assert.Contains(t, team.OnCourt, fouled)
}

func TestExecuteSubSwapsLineups(t *testing.T) {
	s := newSubs()
	team := subTeam()
	out := team.OnCourt[3]
	in := team.Bench[1]
	outPos := out.Position

	s.ExecuteSub(team, out, in)
	assert.Contains(t, team.OnCourt, in)
	assert.Contains(t, team.Bench, out)
	assert.Equal(t, outPos, in.Position)
	assert.Len(t, team.OnCourt, 5)
	assert.Len(t, team.Bench, 5)
}
