package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jstittsworth/courtsim/internal/engine"
)

func syntheticResults() []*engine.MatchResult {
	return []*engine.MatchResult{
		{
			HomeScore: 100, AwayScore: 90, Pace: 95,
			HomePossessions: 96, AwayPossessions: 95,
			HomeAvgSecondsPerPoss: 14.5, AwayAvgSecondsPerPoss: 15.0,
			HomeFBMade: 4, HomeFBAttempt: 8,
			HomeViolation8s: 1,
		},
		{
			HomeScore: 88, AwayScore: 92, Pace: 105, IsOT: true,
			HomePossessions: 104, AwayPossessions: 103,
			HomeAvgSecondsPerPoss: 13.0, AwayAvgSecondsPerPoss: 13.5,
			AwayFBMade: 2, AwayFBAttempt: 4,
			AwayViolation24s: 2,
		},
	}
}

func TestBuildReportAggregates(t *testing.T) {
	r := BuildReport(syntheticResults())

	assert.Equal(t, 2, r.Games)
	assert.Equal(t, 1, r.HomeWins)
	assert.Equal(t, 1, r.AwayWins)
	assert.Equal(t, 1, r.OTGames)

	assert.InDelta(t, 94.0, r.HomeScoreMean, 1e-9)
	assert.InDelta(t, 91.0, r.AwayScoreMean, 1e-9)
	assert.InDelta(t, 185.0, r.TotalMean, 1e-9)
	assert.InDelta(t, 3.0, r.MarginMean, 1e-9)
	assert.InDelta(t, 100.0, r.PaceMean, 1e-9)
	assert.InDelta(t, 14.0, r.AvgSecondsPerPoss, 1e-9)

	assert.InDelta(t, 0.5, r.FastbreakRate, 1e-9)
	assert.Equal(t, 1, r.Violations8s)
	assert.Equal(t, 2, r.Violations24s)
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(nil)
	assert.Zero(t, r.Games)
	assert.Equal(t, "no completed games", r.String())
}

func TestReportStringMentionsKeyNumbers(t *testing.T) {
	r := BuildReport(syntheticResults())
	s := r.String()
	assert.Contains(t, s, "games: 2")
	assert.Contains(t, s, "pace")
	assert.Contains(t, s, "fastbreak")
}
