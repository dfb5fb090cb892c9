package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// leaderboardSize caps the rows shown in a leaderboard message.
const leaderboardSize = 10

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every send is logged
// as a dry run.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	n := &Notifier{channelID: channelID, metrics: metrics}
	if token != "" {
		n.api = slack.New(token)
	}
	return n
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendGameRecap(recap *notifier.GameRecap, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatGameRecap(recap), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(d *stats.Dashboard, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(d), dryRun)
	return err
}

func (s *Notifier) SendAwards(d *stats.Dashboard, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatAwards(d), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(d *stats.Dashboard) (any, error) {
	return s.formatLeaderboard(d), nil
}

// FormatAwardsResponse formats an awards message for a slash command response.
func (s *Notifier) FormatAwardsResponse(d *stats.Dashboard) (any, error) {
	return s.formatAwards(d), nil
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// formatPct renders a nullable percentage.
func formatPct(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *p*100)
}

func pairNames(r *notifier.GameRecap, p model.Pair) string {
	return r.Name(p[0]) + " & " + r.Name(p[1])
}

// formatGameRecap creates the Slack message for a finalized game.
func (s *Notifier) formatGameRecap(r *notifier.GameRecap) slack.Message {
	g := r.Game
	blocks := make([]slack.Block, 0, 4)
	blocks = append(blocks, slack.NewHeaderBlock(plain("🏀 Game final! 🏀")))

	winners, losers := g.SideA, g.SideB
	winScore, loseScore := g.FinalScoreA, g.FinalScoreB
	if g.WinnerSide == model.SideB {
		winners, losers = losers, winners
		winScore, loseScore = loseScore, winScore
	}
	result := fmt.Sprintf("*%s* beat %s, %d-%d", pairNames(r, winners), pairNames(r, losers), winScore, loseScore)
	blocks = append(blocks, slack.NewSectionBlock(mrkdwn(result), nil, nil))

	var fields []*slack.TextBlockObject
	for _, pid := range g.Players() {
		line := r.Box.Line(pid)
		text := fmt.Sprintf("*%s*\n%d pts, %d reb, %d ast, %d stl, %d blk\n2P %s | 3P %s",
			r.Name(pid), line.Points(), line.Rebounds(), line.Assists, line.Steals, line.Blocks,
			formatPct(line.TwoPct()), formatPct(line.ThreePct()))
		fields = append(fields, mrkdwn(text))
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	ctx := g.PlayedAt.Format("Mon 02 Jan 2006, 15:04")
	if r.SeasonName != "" {
		ctx = r.SeasonName + " | " + ctx
	}
	blocks = append(blocks, slack.NewContextBlock("", plain(ctx)))
	return slack.NewBlockMessage(blocks...)
}

func scopeTitle(d *stats.Dashboard) string {
	if d.Season != nil {
		return d.Season.Name
	}
	return "All time"
}

// formatLeaderboard creates a Slack message ranking players by rating.
func (s *Notifier) formatLeaderboard(d *stats.Dashboard) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf("🏆 Leaderboard: %s 🏆", scopeTitle(d)))))

	if len(d.Players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("No finalized games yet. Go hoop!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, row := range d.Players {
		if i == leaderboardSize {
			break
		}
		rank := i + 1
		text := fmt.Sprintf("%d. %s *%s* (%.0f)\n> %d-%d | %.1f ppg | %.1f rpg | %.1f apg | streak %s",
			rank, medal(rank), row.Name, row.Rating,
			row.Totals.Wins, row.Totals.Losses, row.PPG, row.RPG, row.APG, row.Streak)
		blocks = append(blocks, slack.NewSectionBlock(mrkdwn(text), nil, nil))
	}
	blocks = append(blocks, slack.NewContextBlock("", plain(fmt.Sprintf("%d games", d.Games))))
	return slack.NewBlockMessage(blocks...)
}

// formatAwards creates a Slack message listing the awards and best single games.
func (s *Notifier) formatAwards(d *stats.Dashboard) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(plain(fmt.Sprintf("🎖️ Awards: %s", scopeTitle(d)))))

	if len(d.Awards) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("Not enough games for awards yet."), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	lines := make([]string, 0, len(d.Awards))
	for _, a := range d.Awards {
		lines = append(lines, fmt.Sprintf("*%s*: %s (%s)", a.Kind, d.Name(a.PlayerID), awardValue(a)))
	}
	blocks = append(blocks, slack.NewSectionBlock(mrkdwn(strings.Join(lines, "\n")), nil, nil))

	if best := d.TopPerformances[aggregate.CatPoints]; len(best) > 0 {
		p := best[0]
		text := fmt.Sprintf("Best scoring game: %s with %d on %s", d.Name(p.PlayerID), p.Value, p.PlayedAt.Format(time.DateOnly))
		blocks = append(blocks, slack.NewContextBlock("", plain(text)))
	}
	return slack.NewBlockMessage(blocks...)
}

func awardValue(a awards.Award) string {
	switch a.Kind {
	case awards.MVP:
		return fmt.Sprintf("%.0f rating", a.Value)
	case awards.ScoringChampion:
		return fmt.Sprintf("%.1f ppg", a.Value)
	case awards.DefensiveAnchor:
		return fmt.Sprintf("%.1f stl+blk per game", a.Value)
	case awards.Clutch:
		return fmt.Sprintf("%.0f%% in close games", a.Value*100)
	case awards.MostImproved:
		return fmt.Sprintf("%+.1f rating", a.Value)
	}
	return fmt.Sprintf("%.2f", a.Value)
}
