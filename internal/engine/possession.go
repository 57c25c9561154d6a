package engine

import (
	"fmt"
)

// possessionOutcome is what one play resolves to: how long it took, the
// play-by-play line, and whether the offense keeps the ball (only an
// offensive rebound does).
type possessionOutcome struct {
	elapsed float64
	desc    string
	keep    bool
}

// runPossession plays one possession from the inbound. The opening play of
// a quarter uses a fixed short advance instead of a drawn one.
func (e *MatchEngine) runPossession(off, def *Team) possessionOutcome {
	return e.runBackcourt(off, def)
}

// ballAdvanceGroup is the subset of the lineup involved in bringing the
// ball up, guards by lineup order.
func ballAdvanceGroup(team *Team) []*Player {
	n := 3
	if len(team.OnCourt) < n {
		n = len(team.OnCourt)
	}
	return team.OnCourt[:n]
}

// runBackcourt advances the ball past half court. Slow advances risk the
// 8-second violation and backcourt steals; a blazing advance turns into a
// fastbreak.
func (e *MatchEngine) runBackcourt(off, def *Team) possessionOutcome {
	p := &e.params

	offSum := TeamAttrSum(ballAdvanceGroup(off), p.bcOffAdvance)
	defSum := TeamAttrSum(ballAdvanceGroup(def), p.bcDefPressure)

	var t float64
	if e.openingPlay {
		t = p.openingSeconds
	} else {
		t = e.rng.Uniform(p.timeBaseMin, p.timeBaseMax) + (defSum-offSum)*p.timeCoeff
		t = clamp(t, 0.5, p.violation8s+0.1)
	}

	if t > p.violation8s {
		RecordTeamTurnover(off)
		off.StatViolation8s++
		handler := off.OnCourt[0]
		return possessionOutcome{
			elapsed: t,
			desc:    fmt.Sprintf("%s: 8-second violation on %s, turnover", off.Name, handler.Name),
		}
	}

	if t > p.stealThreshold {
		pSteal := p.stealBase + (defSum-offSum)*p.stealBonus
		if pSteal > 0 && e.rng.Bernoulli(pSteal) {
			stealer := e.attrib.DetermineStealer(def)
			RecordSteal(stealer, off)
			return possessionOutcome{
				elapsed: t,
				desc:    fmt.Sprintf("%s: backcourt steal by %s", def.Name, stealer.Name),
			}
		}
	}

	if t < p.fbThreshold {
		return e.runFastbreak(off, def, t)
	}

	return e.runFrontcourt(off, def, t)
}

// runFastbreak resolves a one-on-one sprint between the lead ball handlers.
// Success is a guaranteed two; failure hands the chaser the board.
func (e *MatchEngine) runFastbreak(off, def *Team, bcElapsed float64) possessionOutcome {
	p := &e.params

	runner := off.OnCourt[0]
	chaser := def.OnCourt[0]

	off.StatFBAttempt++
	runner.FBAttempt++

	power := PlayerAttrSum(runner, p.fbPower)
	resist := PlayerAttrSum(chaser, p.fbPower)
	pSuccess := clamp(p.fbSuccessBase+(power-resist)*p.fbPowerCoeff, 0.01, 0.99)

	elapsed := bcElapsed + p.fbDuration

	if e.rng.Bernoulli(pSuccess) {
		RecordScore(off, runner, 2, false, nil)
		off.StatFBMade++
		runner.FBMade++
		e.applyPlusMinus(off, def, 2)
		return possessionOutcome{
			elapsed: elapsed,
			desc:    fmt.Sprintf("%s: fastbreak layup by %s (%d-%d)", off.Name, runner.Name, e.home.Score, e.away.Score),
		}
	}

	RecordRebound(chaser, false)
	return possessionOutcome{
		elapsed: elapsed,
		desc:    fmt.Sprintf("%s: fastbreak by %s stopped, %s recovers", off.Name, runner.Name, chaser.Name),
	}
}

// runFrontcourt runs the half-court set: draw how long the offense works
// the clock, then check block, steal and the 24-second violation before a
// shot goes up.
func (e *MatchEngine) runFrontcourt(off, def *Team, bcElapsed float64) possessionOutcome {
	p := &e.params

	tempoSum := TeamAttrSum(off.OnCourt, p.fcTempo)
	minT := clamp(p.minTimeBase-tempoSum*p.tempoCoeff, 1.0, p.minTimeBase)
	maxT := p.shotClock - bcElapsed

	if maxT <= minT {
		RecordTeamTurnover(off)
		off.StatViolation24s++
		elapsed := maxT
		if elapsed < 0 {
			elapsed = 0
		}
		return possessionOutcome{
			elapsed: bcElapsed + elapsed,
			desc:    fmt.Sprintf("%s: 24-second violation, turnover", off.Name),
		}
	}

	fcElapsed := e.rng.Uniform(minT, maxT)

	quality := 0.0
	if fcElapsed < p.rushThreshold {
		quality = (p.rushThreshold - fcElapsed) * p.rushQuality
	}

	offSp := TeamAttrSum(off.OnCourt, p.fcSpacingOff)
	defSp := TeamAttrSum(def.OnCourt, p.fcSpacingDef)
	if defSp == 0 {
		defSp = 1
	}
	spacing := (offSp-defSp)/defSp + e.rng.Uniform(-p.spacingNoise, p.spacingNoise)
	spacing = clamp(spacing, -1.0, 1.0)

	elapsed := bcElapsed + fcElapsed

	if spacing <= p.blockSpacingMax {
		pBlock := p.blockBase
		if spacing < 0 {
			pBlock += p.blockBonus
		}
		if e.rng.Bernoulli(pBlock) {
			blocker := e.attrib.DetermineBlocker(off, def)
			shooter := e.attrib.DetermineShooter(off, false)
			RecordBlock(blocker, shooter)
			return possessionOutcome{
				elapsed: elapsed,
				desc:    fmt.Sprintf("%s: shot by %s blocked by %s", off.Name, shooter.Name, blocker.Name),
			}
		}
	}

	if e.rng.Bernoulli(p.fcStealRate) {
		stealer := e.attrib.DetermineStealer(def)
		RecordSteal(stealer, off)
		return possessionOutcome{
			elapsed: elapsed,
			desc:    fmt.Sprintf("%s: steal by %s", def.Name, stealer.Name),
		}
	}

	if elapsed > p.shotClock {
		RecordTeamTurnover(off)
		off.StatViolation24s++
		return possessionOutcome{
			elapsed: p.shotClock,
			desc:    fmt.Sprintf("%s: 24-second violation, turnover", off.Name),
		}
	}

	return e.runShot(off, def, elapsed, spacing, quality)
}

// runShot resolves the field goal attempt: shot type, shooter, hit
// probability, a shooting-foul check, then make/miss bookkeeping with
// assists, free throws and the rebound battle.
func (e *MatchEngine) runShot(off, def *Team, elapsed, spacing, quality float64) possessionOutcome {
	p := &e.params

	rangeSum := TeamAttrSum(off.OnCourt, p.teamRange) / 100.0
	is3pt := false
	if rangeSum > 0 {
		is3pt = e.rng.Uniform(0, 1) > 1.0/rangeSum
	}
	points := 2
	if is3pt {
		points = 3
	}

	shooter := e.attrib.DetermineShooter(off, is3pt)

	offTotal := TeamAttrSum(off.OnCourt, p.shOffTotal)
	if is3pt {
		offTotal += TeamAttrSum(off.OnCourt, p.shBonus3pt) * (p.multiplier3pt - 1.0)
	}
	defTotal := TeamAttrSum(def.OnCourt, p.shDefTotal)

	base := p.baseRate2pt
	if is3pt {
		base = p.baseRate3pt
	}
	skill := PlayerAttrSum(shooter, p.shSkill)
	rate := ShootingRate(base, offTotal, defTotal, skill, p.skillDivisor, spacing, p.spacingWeight, quality)
	made := e.rng.Bernoulli(rate)

	fouled, foulDesc := e.checkShootingFoul(off, def, shooter)

	label := "2PT"
	if is3pt {
		label = "3PT"
	}

	if made {
		var assister *Player
		pAssist := TeamAttrSum(off.OnCourt, p.assistTeam) * TeamAttrSum(off.OnCourt, p.luckTeam) * p.assistCoeff
		if pAssist > 0 && e.rng.Bernoulli(clamp(pAssist, 0, 1)) {
			assister = e.attrib.DetermineAssister(off, shooter)
		}
		RecordScore(off, shooter, points, is3pt, assister)
		e.applyPlusMinus(off, def, points)

		desc := fmt.Sprintf("%s: %s make by %s (%d-%d)", off.Name, label, shooter.Name, e.home.Score, e.away.Score)
		if assister != nil {
			desc += fmt.Sprintf(", assist %s", assister.Name)
		}
		if fouled {
			ftDesc := e.runFreeThrows(off, def, shooter, 1)
			desc += foulDesc + ftDesc
		}
		return possessionOutcome{elapsed: elapsed, desc: desc}
	}

	if fouled {
		attempts := 2
		if is3pt {
			attempts = 3
		}
		RecordAttempt(shooter, is3pt)
		ftDesc := e.runFreeThrows(off, def, shooter, attempts)
		return possessionOutcome{
			elapsed: elapsed,
			desc:    fmt.Sprintf("%s: %s miss by %s, shooting foul%s%s", off.Name, label, shooter.Name, foulDesc, ftDesc),
		}
	}

	RecordAttempt(shooter, is3pt)

	offReb := TeamAttrSum(off.OnCourt, p.rebOff)
	defReb := TeamAttrSum(def.OnCourt, p.rebDef)
	pDef := p.rebDefBase
	if offReb+defReb > 0 {
		pDef = p.rebDefBase + defReb/(offReb+defReb)
	}
	if e.rng.Bernoulli(clamp(pDef, 0.01, 0.99)) {
		rebounder := e.attrib.DetermineRebounder(off, def, true)
		RecordRebound(rebounder, false)
		return possessionOutcome{
			elapsed: elapsed,
			desc:    fmt.Sprintf("%s: %s miss by %s, defensive rebound %s", off.Name, label, shooter.Name, rebounder.Name),
		}
	}

	rebounder := e.attrib.DetermineRebounder(off, def, false)
	RecordRebound(rebounder, true)
	return possessionOutcome{
		elapsed: elapsed,
		desc:    fmt.Sprintf("%s: %s miss by %s, offensive rebound %s", off.Name, label, shooter.Name, rebounder.Name),
		keep:    true,
	}
}

// checkShootingFoul draws the contact check and charges the foul to the
// defender matched up with the shooter, handling a foul-out on the spot.
func (e *MatchEngine) checkShootingFoul(off, def *Team, shooter *Player) (bool, string) {
	p := &e.params

	offIQ := TeamAttrSum(off.OnCourt, p.iqOff)
	defIQ := TeamAttrSum(def.OnCourt, p.iqDef)
	if defIQ == 0 {
		defIQ = 1
	}
	pFoul := (offIQ - defIQ) / defIQ
	if pFoul < 0.01 {
		pFoul = 0.01
	}
	if !e.rng.Bernoulli(clamp(pFoul, 0.01, 0.99)) {
		return false, ""
	}

	defender := PositionMatchup(shooter, def)
	RecordFoul(defender)
	desc := fmt.Sprintf(", foul on %s (%d)", defender.Name, defender.Fouls)
	if defender.Fouls >= e.subs.FoulLimit() && !defender.IsFouledOut {
		desc += ". " + e.subs.HandleFouledOut(def, defender)
	}
	return true, desc
}

// runFreeThrows shoots the sequence. Each attempt draws its own base rate;
// the shooter's touch shifts it. Made free throws score one point each and
// move everyone's plus-minus.
func (e *MatchEngine) runFreeThrows(off, def *Team, shooter *Player, attempts int) string {
	p := &e.params

	made := 0
	bonus := PlayerAttrSum(shooter, p.ftBonus) * p.ftAttrCoeff
	for i := 0; i < attempts; i++ {
		rate := clamp(e.rng.Uniform(p.ftBaseMin, p.ftBaseMax)+bonus, 0.01, 0.99)
		hit := e.rng.Bernoulli(rate)
		RecordFreeThrow(shooter, hit)
		if hit {
			made++
			off.Score++
			e.applyPlusMinus(off, def, 1)
		}
	}
	return fmt.Sprintf(", %s %d/%d FT (%d-%d)", shooter.Name, made, attempts, e.home.Score, e.away.Score)
}

// applyPlusMinus credits every player on the floor for a scoring event.
func (e *MatchEngine) applyPlusMinus(scoring, conceding *Team, points int) {
	for _, p := range scoring.OnCourt {
		p.PlusMinus += points
	}
	for _, p := range conceding.OnCourt {
		p.PlusMinus -= points
	}
}
