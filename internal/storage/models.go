package storage

import (
	"time"
)

// Match is one simulated game.
type Match struct {
	ID            string `gorm:"primaryKey"`
	RunID         string `gorm:"index"`
	HomeTeamID    string
	AwayTeamID    string
	HomeScore     int
	AwayScore     int
	IsOT          bool
	TotalQuarters int
	Pace          float64
	CreatedAt     time.Time
}

// TeamGameStat is one team's aggregate line for one match, with the
// derived efficiency ratings (points per 100 possessions).
type TeamGameStat struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	MatchID string `gorm:"index"`
	TeamID  string `gorm:"index"`
	IsHome  bool

	Points               int
	Possessions          int
	SecondsPerPossession float64
	OffensiveRating      float64
	DefensiveRating      float64
	NetRating            float64

	FastbreakMade     int
	FastbreakAttempts int
	TeamTurnovers     int
	Violations8s      int
	Violations24s     int
}

// Boxscore is one player's stat line for one match.
type Boxscore struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	MatchID    string `gorm:"index"`
	TeamID     string `gorm:"index"`
	PlayerID   string `gorm:"index"`
	PlayerName string
	Position   string
	Role       string

	SecondsPlayed float64
	Points        int
	Rebounds      int
	OffRebounds   int
	DefRebounds   int
	Assists       int
	Steals        int
	Blocks        int
	Turnovers     int
	FGM           int
	FGA           int
	TPM           int
	TPA           int
	FTM           int
	FTA           int
	Fouls         int
	FouledOut     bool
	PlusMinus     int

	FastbreakMade     int
	FastbreakAttempts int
}

// PossessionTime is one possession's duration, in sequence order per team.
type PossessionTime struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	MatchID string `gorm:"index"`
	TeamID  string
	Seq     int
	Seconds float64
}
