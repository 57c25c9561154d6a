package engine

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/courtsim/internal/config"
)

// loadGameConfig reads the repo's default tuning file; the statistical
// scenarios depend on it.
func loadGameConfig(t *testing.T) config.GameConfig {
	t.Helper()
	cfg, err := config.LoadGameConfig(filepath.Join("..", "..", "config", "game_config.yaml"))
	require.NoError(t, err)
	require.Equal(t, 720.0, cfg.Float("match_engine.general.quarter_length", -1), "default game config not found")
	return cfg
}

// uniformPlayer builds a player whose twenty attributes all equal v.
func uniformPlayer(id, name, role string, v float64) *Player {
	return &Player{
		ID: id, Name: name, Role: role, Height: 195,

		AthStamina: v, AthStrength: v, AthSpeed: v, AthJump: v,
		ShotTouch: v, ShotRelease: v, ShotAccuracy: v, ShotRange: v,
		OffPass: v, OffDribble: v, OffHandle: v, OffMove: v,
		DefRebound: v, DefBoxout: v, DefContest: v, DefDisrupt: v,
		TalentOffIQ: v, TalentDefIQ: v, TalentHealth: v, TalentLuck: v,

		CurrentStamina: 100,
		StaminaCoeff:   1,
	}
}

// uniformTeam builds an n-man roster of identical players.
func uniformTeam(id string, n int, v float64, role string) *Team {
	roster := make([]*Player, n)
	for i := range roster {
		roster[i] = uniformPlayer(
			fmt.Sprintf("%s-%02d", id, i+1),
			fmt.Sprintf("%s %d", id, i+1),
			role, v)
	}
	return &Team{ID: id, Name: id, Roster: roster}
}

// medianCloneTeam is the reference roster for the aggregate scenarios:
// fifteen identical median players.
func medianCloneTeam(id string) *Team {
	return uniformTeam(id, 15, 50, RoleStarter)
}

// setAttr overrides one flat attribute on every player of a roster.
func setAttr(team *Team, apply func(*Player)) *Team {
	for _, p := range team.Roster {
		apply(p)
	}
	return team
}
