package storage

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jstittsworth/courtsim/internal/engine"
)

const insertBatchSize = 500

// Store persists simulation output. It is safe for use from a single
// writer goroutine; the batch runner funnels all results through one.
type Store struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewPostgresStore connects to PostgreSQL and migrates the schema.
func NewPostgresStore(dsn string, log *logrus.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return newStore(db, log)
}

// NewSQLiteStore opens a file or in-memory SQLite database and migrates
// the schema. Used by tests and single-machine runs.
func NewSQLiteStore(path string, log *logrus.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return newStore(db, log)
}

func newStore(db *gorm.DB, log *logrus.Logger) (*Store, error) {
	if err := db.AutoMigrate(&Match{}, &TeamGameStat{}, &Boxscore{}, &PossessionTime{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// SaveMatch writes one simulated game: the match row, both team lines,
// every player boxscore and the possession timeline.
func (s *Store) SaveMatch(runID string, res *engine.MatchResult, home, away *engine.Team) error {
	match := Match{
		ID:            res.GameID,
		RunID:         runID,
		HomeTeamID:    res.HomeTeamID,
		AwayTeamID:    res.AwayTeamID,
		HomeScore:     res.HomeScore,
		AwayScore:     res.AwayScore,
		IsOT:          res.IsOT,
		TotalQuarters: res.TotalQuarters,
		Pace:          res.Pace,
		CreatedAt:     time.Now().UTC(),
	}

	teamStats := []TeamGameStat{
		buildTeamStat(res.GameID, home, true, res.HomeScore, res.AwayScore, res.HomeAvgSecondsPerPoss),
		buildTeamStat(res.GameID, away, false, res.AwayScore, res.HomeScore, res.AwayAvgSecondsPerPoss),
	}

	var boxscores []Boxscore
	var possessions []PossessionTime
	for _, team := range []*engine.Team{home, away} {
		for _, p := range team.Roster {
			boxscores = append(boxscores, buildBoxscore(res.GameID, team.ID, p))
		}
		for i, sec := range team.StatPossessionHistory {
			possessions = append(possessions, PossessionTime{
				MatchID: res.GameID,
				TeamID:  team.ID,
				Seq:     i,
				Seconds: sec,
			})
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&match).Error; err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
		if err := tx.Create(&teamStats).Error; err != nil {
			return fmt.Errorf("failed to insert team stats: %w", err)
		}
		if err := tx.CreateInBatches(&boxscores, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert boxscores: %w", err)
		}
		if len(possessions) > 0 {
			if err := tx.CreateInBatches(&possessions, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert possession times: %w", err)
			}
		}
		return nil
	})
}

func buildTeamStat(matchID string, team *engine.Team, isHome bool, points, opponentPoints int, secPerPoss float64) TeamGameStat {
	stat := TeamGameStat{
		MatchID:              matchID,
		TeamID:               team.ID,
		IsHome:               isHome,
		Points:               points,
		Possessions:          team.StatPossessions,
		SecondsPerPossession: secPerPoss,
		FastbreakMade:        team.StatFBMade,
		FastbreakAttempts:    team.StatFBAttempt,
		TeamTurnovers:        team.StatTov,
		Violations8s:         team.StatViolation8s,
		Violations24s:        team.StatViolation24s,
	}
	if team.StatPossessions > 0 {
		stat.OffensiveRating = float64(points) / float64(team.StatPossessions) * 100.0
		stat.DefensiveRating = float64(opponentPoints) / float64(team.StatPossessions) * 100.0
		stat.NetRating = stat.OffensiveRating - stat.DefensiveRating
	}
	return stat
}

func buildBoxscore(matchID, teamID string, p *engine.Player) Boxscore {
	return Boxscore{
		MatchID:    matchID,
		TeamID:     teamID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Position:   p.Position,
		Role:       p.Role,

		SecondsPlayed: p.SecondsPlayed,
		Points:        p.Pts,
		Rebounds:      p.Reb,
		OffRebounds:   p.ORB,
		DefRebounds:   p.DRB,
		Assists:       p.Ast,
		Steals:        p.Stl,
		Blocks:        p.Blk,
		Turnovers:     p.Tov,
		FGM:           p.FGM,
		FGA:           p.FGA,
		TPM:           p.TPM,
		TPA:           p.TPA,
		FTM:           p.FTM,
		FTA:           p.FTA,
		Fouls:         p.Fouls,
		FouledOut:     p.IsFouledOut,
		PlusMinus:     p.PlusMinus,

		FastbreakMade:     p.FBMade,
		FastbreakAttempts: p.FBAttempt,
	}
}

// MatchCount returns how many matches a run has persisted.
func (s *Store) MatchCount(runID string) (int64, error) {
	var n int64
	err := s.db.Model(&Match{}).Where("run_id = ?", runID).Count(&n).Error
	return n, err
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
