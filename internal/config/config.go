package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultSyncSchedule    = "0 */5 * * * *"
	defaultTargetScore     = 40
	defaultWinMargin       = 3
	defaultCloseGameMargin = 5
	defaultAwardMinGames   = 5
	defaultClutchMinGames  = 3
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg, err := fromEnv(getEnv, os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

func fromEnv(required func(string) string, lookup func(string) (string, bool)) (Config, error) {
	optional := func(key, def string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return def
	}
	var firstErr error
	optionalInt := func(key string, def int) int {
		value, ok := lookup(key)
		if !ok || value == "" {
			return def
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
			}
			return def
		}
		return n
	}

	cfg := Config{
		DBName: required("DB_NAME"),
		Port:   required("PORT"),
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN", ""),
			ChannelID:     optional("SLACK_CHANNEL_ID", ""),
			SigningSecret: optional("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:         optional("GCP_PROJECT", ""),
		SyncSchedule:      optional("SYNC_SCHEDULE", defaultSyncSchedule),
		DefaultSeasonName: optional("DEFAULT_SEASON_NAME", fmt.Sprintf("Driveway %d", time.Now().Year())),
		Rules: RulesConfig{
			TargetScore:     optionalInt("TARGET_SCORE", defaultTargetScore),
			WinMargin:       optionalInt("WIN_MARGIN", defaultWinMargin),
			CloseGameMargin: optionalInt("CLOSE_GAME_MARGIN", defaultCloseGameMargin),
		},
		Awards: AwardsConfig{
			MinGames:             optionalInt("AWARD_MIN_GAMES", defaultAwardMinGames),
			ClutchMinGames:       optionalInt("CLUTCH_MIN_GAMES", defaultClutchMinGames),
			MostImprovedMinGames: optionalInt("MOST_IMPROVED_MIN_GAMES", 0),
		},
	}
	return cfg, firstErr
}
