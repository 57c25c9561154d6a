package engine

// MatchState tracks the live clock. Quarters past four are overtime.
type MatchState struct {
	Quarter         int
	TimeRemaining   float64
	Possession      string // team ID holding the ball
	GameTimeElapsed float64
	IsOver          bool
}

// MatchResult is the output contract of a single simulation. Per-player
// stats and possession histories live on the mutated Team/Player inputs;
// the result carries the game-level aggregates and the play-by-play log.
type MatchResult struct {
	GameID     string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int

	IsOT          bool
	TotalQuarters int
	Pace          float64

	HomePossessions int
	AwayPossessions int

	HomePossessionHistory []float64
	AwayPossessionHistory []float64
	HomeAvgSecondsPerPoss float64
	AwayAvgSecondsPerPoss float64

	HomeFBMade    int
	HomeFBAttempt int
	AwayFBMade    int
	AwayFBAttempt int

	HomeViolation8s  int
	HomeViolation24s int
	AwayViolation8s  int
	AwayViolation24s int

	PBPLog []string
}
