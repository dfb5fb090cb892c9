package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/stats"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type tools struct {
	store store.Store
	stats *stats.Service
	rules boxscore.Rules
}

type NoArgs struct{}

type SeasonArgs struct {
	SeasonID string `json:"season_id,omitempty" jsonschema:"Season id (empty = current season)"`
}

type GameLogArgs struct {
	SeasonID string `json:"season_id,omitempty" jsonschema:"Season id (empty = current season)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Number of games (default 25)"`
}

type HeadToHeadArgs struct {
	P        string `json:"p" jsonschema:"Player id (required)"`
	Q        string `json:"q" jsonschema:"Opponent player id (required)"`
	SeasonID string `json:"season_id,omitempty" jsonschema:"Season id (empty = all time)"`
}

type GameArgs struct {
	GameID string `json:"game_id" jsonschema:"Game id (required)"`
}

func newServer(t *tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "driveway-hoops", Version: "0.1.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_players",
		Description: "Every player with id, name and active flag",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(t.store.ListPlayers(false))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_seasons",
		Description: "Every season, archived ones included",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(t.store.ListSeasons(true))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "season_dashboard",
		Description: "Standings with Elo ratings, per-game averages, streaks, chemistry, top performances and awards for one season",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SeasonArgs) (*mcp.CallToolResult, any, error) {
		id, err := t.seasonID(args.SeasonID)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(t.stats.SeasonDashboard(id))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "all_time_records",
		Description: "The dashboard across every season",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(t.stats.AllTimeDashboard())
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "game_log",
		Description: "Finalized games of a season, newest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameLogArgs) (*mcp.CallToolResult, any, error) {
		id, err := t.seasonID(args.SeasonID)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(t.stats.GameLog(id, args.Limit))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "head_to_head",
		Description: "Record of player p against player q, plus their record as teammates",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(t.stats.HeadToHead(args.P, args.Q, args.SeasonID))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "game_box_score",
		Description: "Box score of one game computed from its stat events",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GameArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(t.boxScore(args.GameID))
	})

	return server
}

func (t *tools) seasonID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	season, err := t.store.CurrentSeason()
	if err != nil {
		return "", fmt.Errorf("no current season: %w", err)
	}
	return season.ID, nil
}

func (t *tools) boxScore(gameID string) (*boxscore.BoxScore, error) {
	if gameID == "" {
		return nil, errors.New("game_id is required")
	}
	g, err := t.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	events, err := t.store.ListEventsForGame(gameID)
	if err != nil {
		return nil, err
	}
	return boxscore.Compute(g, events, t.rules), nil
}

// toolJSON renders a result, or the error as a tool error so the model sees it.
func toolJSON[T any](v T, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
