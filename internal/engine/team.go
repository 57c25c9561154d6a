package engine

// Team carries the roster, the live lineup split and the team-level
// counters. The engine owns both teams for the lifetime of a match; the
// caller reads the mutated stats back out afterwards.
type Team struct {
	ID     string
	Name   string
	Roster []*Player

	OnCourt  []*Player
	Bench    []*Player
	BestFive []*Player // positionally optimal five, frozen pre-game

	Score int

	StatTov               int
	StatViolation8s       int
	StatViolation24s      int
	StatPossessions       int
	StatPossessionSeconds float64
	StatPossessionHistory []float64
	StatFBMade            int
	StatFBAttempt         int
}

// ResetMatchState clears lineup and counters and resets every player.
func (t *Team) ResetMatchState() {
	t.OnCourt = nil
	t.Bench = nil
	t.BestFive = nil
	t.Score = 0
	t.StatTov = 0
	t.StatViolation8s = 0
	t.StatViolation24s = 0
	t.StatPossessions = 0
	t.StatPossessionSeconds = 0
	t.StatPossessionHistory = nil
	t.StatFBMade = 0
	t.StatFBAttempt = 0
	for _, p := range t.Roster {
		p.ResetMatchState()
	}
}

// PointsScored sums the roster box scores; by invariant it equals Score.
func (t *Team) PointsScored() int {
	total := 0
	for _, p := range t.Roster {
		total += p.Pts
	}
	return total
}

// CloneTeam deep-copies a team with a fresh roster and zeroed stats so that
// parallel simulations never share state.
func CloneTeam(src *Team) *Team {
	roster := make([]*Player, len(src.Roster))
	for i, p := range src.Roster {
		roster[i] = ClonePlayer(p)
	}
	return &Team{ID: src.ID, Name: src.Name, Roster: roster}
}
