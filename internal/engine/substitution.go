package engine

import (
	"fmt"
	"sort"

	"github.com/jstittsworth/courtsim/internal/config"
)

// SubstitutionSystem rotates lineups between possessions: fatigue and
// minute-target subs during regular play, best-five enforcement in the
// clutch, and foul-out replacement with minute redistribution.
type SubstitutionSystem struct {
	foulLimit        int
	staminaThreshold float64
	minuteBuffer     float64 // seconds of overrun tolerated past the target
	redistPositions  []string
	topK             int
}

func NewSubstitutionSystem(cfg config.GameConfig) *SubstitutionSystem {
	return &SubstitutionSystem{
		foulLimit:        cfg.Int("match_engine.general.substitution.foul_limit", 6),
		staminaThreshold: cfg.Float("match_engine.general.substitution.stamina_threshold", 80.0),
		minuteBuffer:     60.0,
		redistPositions:  cfg.Strings("match_engine.general.substitution.redistribution.positions", RedistributionPositions),
		topK:             cfg.Int("match_engine.general.substitution.redistribution.top_k", 3),
	}
}

// FoulLimit is the personal foul count that disqualifies a player.
func (s *SubstitutionSystem) FoulLimit() int {
	return s.foulLimit
}

// CheckAutoSubstitution runs the regular between-possession check: sub out
// anyone too tired or past their minute budget, when a fresher bench player
// with minutes to spare exists for the slot.
func (s *SubstitutionSystem) CheckAutoSubstitution(team *Team) []string {
	var logs []string

	type outCandidate struct {
		player *Player
		reason string
	}
	var toSubOut []outCandidate
	for _, p := range team.OnCourt {
		switch {
		case p.CurrentStamina < s.staminaThreshold:
			toSubOut = append(toSubOut, outCandidate{p, "fatigue"})
		case p.SecondsPlayed > p.TargetSeconds+s.minuteBuffer:
			toSubOut = append(toSubOut, outCandidate{p, "minutes"})
		}
	}

	for _, out := range toSubOut {
		in := s.pickBenchPlayer(team, out.player.Position, out.player.CurrentStamina)
		if in == nil {
			continue
		}
		s.ExecuteSub(team, out.player, in)
		logs = append(logs, fmt.Sprintf("%s substitution: %s in for %s (%s)", team.Name, in.Name, out.player.Name, out.reason))
	}
	return logs
}

// EnforceBestFive puts the pre-computed best five on the floor for clutch
// time. The best five itself is frozen; only fouled-out members are
// replaced, by position score, never reusing a locked player.
func (s *SubstitutionSystem) EnforceBestFive(team *Team) []string {
	if len(team.BestFive) != len(s.redistPositions) {
		return nil
	}

	locked := make(map[string]bool)
	for _, p := range team.BestFive {
		if p != nil && !p.IsFouledOut {
			locked[p.ID] = true
		}
	}

	desired := make([]*Player, len(team.BestFive))
	for i, orig := range team.BestFive {
		if orig != nil && !orig.IsFouledOut {
			desired[i] = orig
			continue
		}
		repl := s.pickReplacement(team, s.redistPositions[i], locked)
		if repl != nil {
			desired[i] = repl
			locked[repl.ID] = true
		}
	}

	onCourt := make(map[string]bool, len(team.OnCourt))
	for _, p := range team.OnCourt {
		onCourt[p.ID] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, p := range desired {
		if p != nil {
			desiredSet[p.ID] = true
		}
	}

	var outs []*Player
	for _, p := range team.OnCourt {
		if !desiredSet[p.ID] {
			outs = append(outs, p)
		}
	}

	var logs []string
	for i, want := range desired {
		if want == nil || onCourt[want.ID] {
			if want != nil {
				want.Position = s.redistPositions[i]
			}
			continue
		}
		if len(outs) == 0 {
			break
		}
		out := outs[0]
		outs = outs[1:]
		s.ExecuteSub(team, out, want)
		want.Position = s.redistPositions[i]
		logs = append(logs, fmt.Sprintf("%s clutch lineup: %s in for %s", team.Name, want.Name, out.Name))
	}
	return logs
}

// HandleFouledOut disqualifies the player, freezes their minute target at
// what they actually played, spreads the forfeited seconds over the top
// position players, and force-subs the best available replacement.
func (s *SubstitutionSystem) HandleFouledOut(team *Team, fouled *Player) string {
	fouled.IsFouledOut = true

	remaining := fouled.TargetSeconds - fouled.SecondsPlayed
	if remaining < 0 {
		remaining = 0
	}
	fouled.TargetSeconds = fouled.SecondsPlayed

	if remaining > 0 {
		s.redistributeSeconds(team, remaining)
	}

	in := s.pickBestAvailable(team, fouled.Position)
	if in == nil {
		return fmt.Sprintf("%s fouled out, no eligible replacement on the bench", fouled.Name)
	}
	s.ExecuteSub(team, fouled, in)
	return fmt.Sprintf("%s fouled out, replaced by %s", fouled.Name, in.Name)
}

// redistributeSeconds hands the forfeited time out position by position:
// the top-k eligible players at each position each get an equal share. A
// player strong at several positions accumulates multiple shares; that is
// inherited behavior, kept as-is.
func (s *SubstitutionSystem) redistributeSeconds(team *Team, seconds float64) {
	totalSlots := len(s.redistPositions) * s.topK
	if totalSlots == 0 {
		return
	}
	share := seconds / float64(totalSlots)

	for _, pos := range s.redistPositions {
		var eligible []*Player
		for _, p := range team.Roster {
			if !p.IsFouledOut {
				eligible = append(eligible, p)
			}
		}
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].PosScores[pos] > eligible[j].PosScores[pos]
		})
		for i := 0; i < s.topK && i < len(eligible); i++ {
			eligible[i].TargetSeconds += share
		}
	}
}

// ExecuteSub swaps one player off for one on. The incoming player inherits
// the outgoing position.
func (s *SubstitutionSystem) ExecuteSub(team *Team, out, in *Player) {
	outIdx := indexOf(team.OnCourt, out)
	inIdx := indexOf(team.Bench, in)
	if outIdx < 0 || inIdx < 0 {
		return
	}
	team.OnCourt = append(team.OnCourt[:outIdx], team.OnCourt[outIdx+1:]...)
	team.Bench = append(team.Bench[:inIdx], team.Bench[inIdx+1:]...)
	team.Bench = append(team.Bench, out)
	team.OnCourt = append(team.OnCourt, in)
	in.Position = out.Position
}

func (s *SubstitutionSystem) pickBenchPlayer(team *Team, position string, outStamina float64) *Player {
	var candidates []*Player
	for _, p := range team.Bench {
		if !p.IsFouledOut && p.CurrentStamina > outStamina && p.SecondsPlayed < p.TargetSeconds {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PosScores[position] > candidates[j].PosScores[position]
	})
	return candidates[0]
}

func (s *SubstitutionSystem) pickBestAvailable(team *Team, position string) *Player {
	var candidates []*Player
	for _, p := range team.Bench {
		if !p.IsFouledOut {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PosScores[position] > candidates[j].PosScores[position]
	})
	return candidates[0]
}

func (s *SubstitutionSystem) pickReplacement(team *Team, position string, locked map[string]bool) *Player {
	var candidates []*Player
	for _, p := range team.Roster {
		if !p.IsFouledOut && !locked[p.ID] {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PosScores[position] > candidates[j].PosScores[position]
	})
	return candidates[0]
}

func indexOf(players []*Player, target *Player) int {
	for i, p := range players {
		if p == target {
			return i
		}
	}
	return -1
}
