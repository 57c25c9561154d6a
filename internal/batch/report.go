package batch

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/jstittsworth/courtsim/internal/engine"
)

// Report aggregates a batch of match results into the summary a tuning
// session reads: win split, scoring and pace distributions, possession
// timing and fastbreak conversion.
type Report struct {
	Games    int
	HomeWins int
	AwayWins int
	OTGames  int

	HomeScoreMean float64
	HomeScoreStd  float64
	AwayScoreMean float64
	AwayScoreStd  float64
	TotalMean     float64
	MarginMean    float64

	PaceMean float64
	PaceStd  float64
	PaceP05  float64
	PaceP95  float64

	AvgSecondsPerPoss float64
	FastbreakRate     float64

	Violations8s  int
	Violations24s int
}

// BuildReport computes the aggregate over all completed games.
func BuildReport(results []*engine.MatchResult) *Report {
	r := &Report{Games: len(results)}
	if r.Games == 0 {
		return r
	}

	homeScores := make([]float64, 0, r.Games)
	awayScores := make([]float64, 0, r.Games)
	totals := make([]float64, 0, r.Games)
	margins := make([]float64, 0, r.Games)
	paces := make([]float64, 0, r.Games)
	secPerPoss := make([]float64, 0, r.Games*2)

	fbMade, fbAttempt := 0, 0
	for _, res := range results {
		if res.HomeScore > res.AwayScore {
			r.HomeWins++
		} else {
			r.AwayWins++
		}
		if res.IsOT {
			r.OTGames++
		}
		homeScores = append(homeScores, float64(res.HomeScore))
		awayScores = append(awayScores, float64(res.AwayScore))
		totals = append(totals, float64(res.HomeScore+res.AwayScore))
		margins = append(margins, float64(res.HomeScore-res.AwayScore))
		paces = append(paces, res.Pace)
		secPerPoss = append(secPerPoss, res.HomeAvgSecondsPerPoss, res.AwayAvgSecondsPerPoss)

		fbMade += res.HomeFBMade + res.AwayFBMade
		fbAttempt += res.HomeFBAttempt + res.AwayFBAttempt
		r.Violations8s += res.HomeViolation8s + res.AwayViolation8s
		r.Violations24s += res.HomeViolation24s + res.AwayViolation24s
	}

	r.HomeScoreMean, r.HomeScoreStd = stat.MeanStdDev(homeScores, nil)
	r.AwayScoreMean, r.AwayScoreStd = stat.MeanStdDev(awayScores, nil)
	r.TotalMean = stat.Mean(totals, nil)
	r.MarginMean = stat.Mean(margins, nil)
	r.PaceMean, r.PaceStd = stat.MeanStdDev(paces, nil)
	r.AvgSecondsPerPoss = stat.Mean(secPerPoss, nil)

	sort.Float64s(paces)
	r.PaceP05 = stat.Quantile(0.05, stat.Empirical, paces, nil)
	r.PaceP95 = stat.Quantile(0.95, stat.Empirical, paces, nil)

	if fbAttempt > 0 {
		r.FastbreakRate = float64(fbMade) / float64(fbAttempt)
	}

	return r
}

// String renders the report for the CLI.
func (r *Report) String() string {
	if r.Games == 0 {
		return "no completed games"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "games: %d (home %d / away %d, OT %d)\n", r.Games, r.HomeWins, r.AwayWins, r.OTGames)
	fmt.Fprintf(&b, "home score: %.1f ± %.1f  away score: %.1f ± %.1f\n", r.HomeScoreMean, r.HomeScoreStd, r.AwayScoreMean, r.AwayScoreStd)
	fmt.Fprintf(&b, "total: %.1f  margin (home-away): %+.1f\n", r.TotalMean, r.MarginMean)
	fmt.Fprintf(&b, "pace: %.1f ± %.1f (p05 %.1f / p95 %.1f)\n", r.PaceMean, r.PaceStd, r.PaceP05, r.PaceP95)
	fmt.Fprintf(&b, "seconds/possession: %.2f  fastbreak conversion: %.2f\n", r.AvgSecondsPerPoss, r.FastbreakRate)
	fmt.Fprintf(&b, "violations: 8s %d / 24s %d\n", r.Violations8s, r.Violations24s)
	return b.String()
}
