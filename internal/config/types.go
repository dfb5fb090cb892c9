package config

// Config holds all configuration for the application.
type Config struct {
	DBName            string
	Port              string
	Slack             SlackConfig
	Turso             TursoConfig
	ProjectID         string
	SyncSchedule      string
	DefaultSeasonName string
	Rules             RulesConfig
	Awards            AwardsConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RulesConfig is the win condition and the close game threshold.
type RulesConfig struct {
	TargetScore     int
	WinMargin       int
	CloseGameMargin int
}

// AwardsConfig holds the award eligibility floors. MostImprovedMinGames of 0
// leaves Most Improved unfiltered.
type AwardsConfig struct {
	MinGames             int
	ClutchMinGames       int
	MostImprovedMinGames int
}
