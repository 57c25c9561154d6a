package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jstittsworth/courtsim/internal/engine"
)

// matchupSpec is the on-disk format for a two-team batch run. It is kept
// separate from the engine structs so the file format stays stable.
type matchupSpec struct {
	Home teamSpec `json:"home"`
	Away teamSpec `json:"away"`
}

type teamSpec struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Players []playerSpec `json:"players"`
}

type playerSpec struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Height float64 `json:"height"`

	AthStamina  float64 `json:"ath_stamina"`
	AthStrength float64 `json:"ath_strength"`
	AthSpeed    float64 `json:"ath_speed"`
	AthJump     float64 `json:"ath_jump"`

	ShotTouch    float64 `json:"shot_touch"`
	ShotRelease  float64 `json:"shot_release"`
	ShotAccuracy float64 `json:"shot_accuracy"`
	ShotRange    float64 `json:"shot_range"`

	OffPass    float64 `json:"off_pass"`
	OffDribble float64 `json:"off_dribble"`
	OffHandle  float64 `json:"off_handle"`
	OffMove    float64 `json:"off_move"`

	DefRebound float64 `json:"def_rebound"`
	DefBoxout  float64 `json:"def_boxout"`
	DefContest float64 `json:"def_contest"`
	DefDisrupt float64 `json:"def_disrupt"`

	TalentOffIQ  float64 `json:"talent_offiq"`
	TalentDefIQ  float64 `json:"talent_defiq"`
	TalentHealth float64 `json:"talent_health"`
	TalentLuck   float64 `json:"talent_luck"`
}

// LoadMatchup reads a matchup JSON file and validates both rosters.
func LoadMatchup(path string) (*engine.Team, *engine.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read matchup file: %w", err)
	}
	var m matchupSpec
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("failed to parse matchup file: %w", err)
	}

	home := m.Home.toTeam()
	away := m.Away.toTeam()
	for _, t := range []*engine.Team{home, away} {
		if len(t.Roster) < 5 {
			return nil, nil, fmt.Errorf("team %s: roster has %d players, need at least 5", t.ID, len(t.Roster))
		}
	}
	return home, away, nil
}

func (t teamSpec) toTeam() *engine.Team {
	roster := make([]*engine.Player, len(t.Players))
	for i, p := range t.Players {
		roster[i] = p.toPlayer()
	}
	return &engine.Team{ID: t.ID, Name: t.Name, Roster: roster}
}

func (p playerSpec) toPlayer() *engine.Player {
	role := p.Role
	if role == "" {
		role = engine.RoleBench
	}
	return &engine.Player{
		ID:     p.ID,
		Name:   p.Name,
		Role:   role,
		Height: p.Height,

		AthStamina: p.AthStamina, AthStrength: p.AthStrength,
		AthSpeed: p.AthSpeed, AthJump: p.AthJump,
		ShotTouch: p.ShotTouch, ShotRelease: p.ShotRelease,
		ShotAccuracy: p.ShotAccuracy, ShotRange: p.ShotRange,
		OffPass: p.OffPass, OffDribble: p.OffDribble,
		OffHandle: p.OffHandle, OffMove: p.OffMove,
		DefRebound: p.DefRebound, DefBoxout: p.DefBoxout,
		DefContest: p.DefContest, DefDisrupt: p.DefDisrupt,
		TalentOffIQ: p.TalentOffIQ, TalentDefIQ: p.TalentDefIQ,
		TalentHealth: p.TalentHealth, TalentLuck: p.TalentLuck,
	}
}

// GenerateDemoTeams builds two 10-man rosters with attributes drawn around
// the given means, for runs without a matchup file. The same seed produces
// the same rosters.
func GenerateDemoTeams(rng *engine.RNG, homeMean, awayMean float64) (*engine.Team, *engine.Team) {
	home := generateTeam(rng, "home", "Home", homeMean)
	away := generateTeam(rng, "away", "Away", awayMean)
	return home, away
}

var demoRoles = []string{
	engine.RoleStar, engine.RoleStar,
	engine.RoleStarter, engine.RoleStarter, engine.RoleStarter,
	engine.RoleRotation, engine.RoleRotation, engine.RoleRotation,
	engine.RoleRole, engine.RoleBench,
}

var demoGrades = []string{"S", "A", "A", "B", "B", "C"}

func generateTeam(rng *engine.RNG, id, name string, mean float64) *engine.Team {
	roster := make([]*engine.Player, len(demoRoles))
	for i, role := range demoRoles {
		roster[i] = generatePlayer(rng, fmt.Sprintf("%s-%02d", id, i+1), fmt.Sprintf("%s Player %d", name, i+1), role, mean)
	}
	return &engine.Team{ID: id, Name: name, Roster: roster}
}

func generatePlayer(rng *engine.RNG, id, name, role string, mean float64) *engine.Player {
	attr := func() float64 {
		v := mean + rng.Uniform(-15, 15)
		if v < 1 {
			v = 1
		}
		if v > 99 {
			v = 99
		}
		return v
	}
	return &engine.Player{
		ID:    id,
		Name:  name,
		Role:  role,
		Grade: engine.Choice(rng, demoGrades),

		OffDribble: attr(), OffHandle: attr(), OffPass: attr(), OffMove: attr(),
		ShotTouch: attr(), ShotAccuracy: attr(), ShotRange: attr(), ShotRelease: attr(),
		DefContest: attr(), DefDisrupt: attr(), DefRebound: attr(), DefBoxout: attr(),
		AthSpeed: attr(), AthStrength: attr(), AthJump: attr(), AthStamina: attr(),
		TalentOffIQ: attr(), TalentDefIQ: attr(), TalentLuck: attr(), TalentHealth: attr(),

		Height: 175 + rng.Uniform(0, 45),
	}
}
