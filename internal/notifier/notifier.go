package notifier

import (
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/stats"
)

// GameRecap is the content of a finalized game announcement.
type GameRecap struct {
	Game       *model.Game
	Box        *boxscore.BoxScore
	SeasonName string
	Names      map[string]string
}

// Name returns a display name for id, falling back to the id.
func (r *GameRecap) Name(id string) string {
	if n, ok := r.Names[id]; ok && n != "" {
		return n
	}
	return id
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finalized games
	SendGameRecap(recap *GameRecap, dryRun bool) error
	// For slash commands
	SendLeaderboard(d *stats.Dashboard, dryRun bool) error
	SendAwards(d *stats.Dashboard, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(d *stats.Dashboard) (any, error)
	FormatAwardsResponse(d *stats.Dashboard) (any, error)
}
