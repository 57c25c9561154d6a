package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jstittsworth/courtsim/internal/batch"
	"github.com/jstittsworth/courtsim/internal/config"
	"github.com/jstittsworth/courtsim/internal/engine"
	"github.com/jstittsworth/courtsim/internal/roster"
	"github.com/jstittsworth/courtsim/internal/storage"
	"github.com/jstittsworth/courtsim/pkg/logger"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	games := flag.Int("games", 100, "number of games to simulate")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel simulation workers")
	seed := flag.Int64("seed", 1, "base RNG seed; game i uses seed+i")
	retries := flag.Int("retries", 2, "attempts per game before it counts as failed")
	configPath := flag.String("config", "", "game config YAML (default: $GAME_CONFIG_PATH or config/game_config.yaml)")
	matchupPath := flag.String("matchup", "", "matchup JSON file; omit to use generated demo teams")
	homeMean := flag.Float64("home-mean", 70, "demo team attribute mean, home")
	awayMean := flag.Float64("away-mean", 70, "demo team attribute mean, away")
	flag.Parse()

	viper.SetEnvPrefix("COURTSIM")
	viper.AutomaticEnv()
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEVELOPMENT", false)
	viper.SetDefault("REDIS_CHANNEL", "courtsim:progress")

	log := logger.InitLogger(viper.GetString("LOG_LEVEL"), viper.GetBool("DEVELOPMENT"))

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load game config")
	}

	var home, away *engine.Team
	if *matchupPath != "" {
		home, away, err = roster.LoadMatchup(*matchupPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to load matchup")
		}
	} else {
		home, away = roster.GenerateDemoTeams(engine.NewRNG(*seed), *homeMean, *awayMean)
		log.WithFields(map[string]interface{}{
			"home_mean": *homeMean,
			"away_mean": *awayMean,
		}).Info("Using generated demo teams")
	}

	runner := &batch.Runner{
		Games:       *games,
		Workers:     *workers,
		Seed:        *seed,
		MaxAttempts: *retries,
		Log:         log,
	}

	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		store, err := storage.NewPostgresStore(dsn, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		defer store.Close()
		runner.Store = store
	} else if path := viper.GetString("SQLITE_PATH"); path != "" {
		store, err := storage.NewSQLiteStore(path, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to open sqlite database")
		}
		defer store.Close()
		runner.Store = store
	}

	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		pub, err := batch.NewRedisPublisher(addr, viper.GetString("REDIS_PASSWORD"), viper.GetString("REDIS_CHANNEL"), log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to redis")
		}
		defer pub.Close()
		runner.Publisher = pub
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := runner.Run(ctx, home, away, cfg)
	if err != nil {
		log.WithError(err).Fatal("Batch run failed")
	}

	logger.WithService("batchsim").WithField("completed", len(results)).Info("Batch complete")

	report := batch.BuildReport(results)
	fmt.Fprintln(os.Stdout, report.String())
}
