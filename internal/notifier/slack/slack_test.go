package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenLogsOnly(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	channel, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)
	require.NoError(t, err)
	assert.Equal(t, "dry-run-channel", channel)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func testRecap() *notifier.GameRecap {
	game := &model.Game{
		ID:          "g1",
		PlayedAt:    time.Date(2025, 7, 9, 18, 30, 0, 0, time.UTC),
		SideA:       model.Pair{"p1", "p2"},
		SideB:       model.Pair{"p3", "p4"},
		Finalized:   true,
		FinalScoreA: 38,
		FinalScoreB: 41,
		WinnerSide:  model.SideB,
	}
	box := &boxscore.BoxScore{Lines: map[string]boxscore.StatLine{
		"p3": {TwoMade: 10, TwoMiss: 10, ThreeMade: 3, Assists: 2, DefRebounds: 4, Steals: 1},
	}}
	return &notifier.GameRecap{
		Game:       game,
		Box:        box,
		SeasonName: "Summer 2025",
		Names:      map[string]string{"p1": "Ann", "p2": "Ben", "p3": "Cal", "p4": "Dee"},
	}
}

func TestSendGameRecap_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.SendGameRecap(testRecap(), false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendGameRecap")
}

func TestFormatGameRecap(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatGameRecap(testRecap())
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🏀 Game final! 🏀", header.Text.Text)

	result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "*Cal & Dee* beat Ann & Ben, 41-38", result.Text.Text)

	lines, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Third block should be a SectionBlock")
	require.Len(t, lines.Fields, 4)
	assert.Equal(t, "*Ann*\n0 pts, 0 reb, 0 ast, 0 stl, 0 blk\n2P — | 3P —", lines.Fields[0].Text)
	assert.Equal(t, "*Cal*\n29 pts, 4 reb, 2 ast, 1 stl, 0 blk\n2P 50.0% | 3P 100.0%", lines.Fields[2].Text)

	contextBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Fourth block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	element, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Summer 2025 | Wed 09 Jul 2025, 18:30", element.Text)
}

func testDashboard() *stats.Dashboard {
	return &stats.Dashboard{
		Scope:  stats.ScopeSeason,
		Season: &model.Season{ID: "s1", Name: "Summer 2025"},
		Games:  7,
		Players: []stats.PlayerRow{
			{PlayerID: "p1", Name: "Ann", Rating: 1032.4, Totals: &aggregate.Totals{Wins: 5, Losses: 2}, PPG: 12.5, RPG: 4, APG: 2.5, Streak: "W3"},
			{PlayerID: "p2", Name: "Ben", Rating: 990, Totals: &aggregate.Totals{Wins: 2, Losses: 5}, PPG: 8, RPG: 6, APG: 1, Streak: "L1"},
		},
		Awards: []awards.Award{
			{Kind: awards.MVP, PlayerID: "p1", Value: 1032.4},
			{Kind: awards.ScoringChampion, PlayerID: "p1", Value: 12.5},
			{Kind: awards.Clutch, PlayerID: "p2", Value: 0.75},
		},
		TopPerformances: map[aggregate.Category][]aggregate.Performance{
			aggregate.CatPoints: {{PlayerID: "p1", GameID: "g3", Value: 27, PlayedAt: time.Date(2025, 7, 2, 18, 0, 0, 0, time.UTC)}},
		},
		Names: map[string]string{"p1": "Ann", "p2": "Ben"},
	}
}

func TestFormatLeaderboard(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatLeaderboard(testDashboard())
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🏆 Leaderboard: Summer 2025 🏆", header.Text.Text)

	first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "1. 🥇 *Ann* (1032)\n> 5-2 | 12.5 ppg | 4.0 rpg | 2.5 apg | streak W3", first.Text.Text)

	second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, second.Text.Text, "2. 🥈 *Ben* (990)")
}

func TestFormatLeaderboard_Empty(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatLeaderboard(&stats.Dashboard{Scope: stats.ScopeAllTime})
	require.Len(t, msg.Blocks.BlockSet, 2)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🏆 Leaderboard: All time 🏆", header.Text.Text)

	body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "No finalized games yet. Go hoop!", body.Text.Text)
}

func TestFormatAwards(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatAwards(testDashboard())
	require.Len(t, msg.Blocks.BlockSet, 3)

	body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	expected := "*MVP*: Ann (1032 rating)\n*Scoring Champion*: Ann (12.5 ppg)\n*Clutch Player*: Ben (75% in close games)"
	assert.Equal(t, expected, body.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	element, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Best scoring game: Ann with 27 on 2025-07-02", element.Text)
}

func TestFormatResponses(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	resp, err := client.FormatLeaderboardResponse(testDashboard())
	require.NoError(t, err)
	_, ok := resp.(slackapi.Message)
	assert.True(t, ok)

	resp, err = client.FormatAwardsResponse(&stats.Dashboard{})
	require.NoError(t, err)
	msg, ok := resp.(slackapi.Message)
	require.True(t, ok)
	body, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Not enough games for awards yet.", body.Text.Text)
}
