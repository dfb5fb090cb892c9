package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/notifier/slack"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/mauv0809/driveway-hoops/internal/tracker"
)

var seedPlayers = []string{"Seeder Ann", "Seeder Ben", "Seeder Cal", "Seeder Dee", "Seeder Eve", "Seeder Fin"}

// statWeights biases the simulated play toward shots and rebounds.
var statWeights = []struct {
	stat   model.StatType
	weight int
}{
	{model.TwoMade, 10},
	{model.TwoMiss, 10},
	{model.ThreeMade, 4},
	{model.ThreeMiss, 7},
	{model.Assist, 6},
	{model.OffRebound, 4},
	{model.DefRebound, 9},
	{model.Block, 2},
	{model.Steal, 3},
}

func pickStat(rng *rand.Rand) model.StatType {
	total := 0
	for _, w := range statWeights {
		total += w.weight
	}
	n := rng.Intn(total)
	for _, w := range statWeights {
		if n < w.weight {
			return w.stat
		}
		n -= w.weight
	}
	return model.TwoMade
}

func main() {
	numGames := flag.Int("games", 40, "number of finalized games to create")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "hoops.db"
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	// Games are spread over the last few months so ratings replay in a realistic order.
	clock := time.Now().AddDate(0, -3, 0)
	s := store.New(db, store.WithClock(func() time.Time { return clock }))
	metricsSvc := metrics.NewService()
	rules := boxscore.DefaultRules()
	t := tracker.New(s, slack.NewNotifier("", "", metricsSvc), metricsSvc, rules)

	if _, err := s.EnsureDefaultSeason("Seeded Season"); err != nil {
		log.Fatalf("Failed to create season: %s", err)
	}
	ids := make([]string, 0, len(seedPlayers))
	for _, name := range seedPlayers {
		p, err := t.AddPlayer(name)
		if err != nil {
			log.Fatalf("Failed to add player %s: %s", name, err)
		}
		ids = append(ids, p.ID)
	}
	log.Info("Created players", "count", len(ids))

	rng := rand.New(rand.NewSource(*seed))
	startTime := time.Now()
	events := 0
	for i := 0; i < *numGames; i++ {
		clock = clock.Add(time.Duration(36+rng.Intn(48)) * time.Hour)
		perm := rng.Perm(len(ids))
		sideA := model.Pair{ids[perm[0]], ids[perm[1]]}
		sideB := model.Pair{ids[perm[2]], ids[perm[3]]}
		g, err := t.StartGame("", sideA, sideB)
		if err != nil {
			log.Fatalf("Failed to start game: %s", err)
		}

		// Each side gets a skill bias so results are not coin flips.
		biasA := rng.Float64()
		scoreA, scoreB := 0, 0
		for {
			side := sideB
			if rng.Float64() < 0.35+0.3*biasA {
				side = sideA
			}
			stat := pickStat(rng)
			player := side[rng.Intn(2)]
			clock = clock.Add(time.Duration(10+rng.Intn(40)) * time.Second)
			if _, err := t.RecordStat(g.ID, player, stat, 1); err != nil {
				log.Fatalf("Failed to record stat: %s", err)
			}
			events++
			if side == sideA {
				scoreA += stat.Points()
			} else {
				scoreB += stat.Points()
			}
			if boxscore.CanFinalize(scoreA, scoreB, rules) {
				break
			}
		}
		if _, err := t.Finalize(g.ID, false); err != nil {
			log.Fatalf("Failed to finalize game: %s", err)
		}
		log.Debug("Seeded game", "gameID", g.ID, "scoreA", scoreA, "scoreB", scoreB)
	}

	log.Info("Successfully seeded games.", "games", *numGames, "events", events, "duration", time.Since(startTime))
}
