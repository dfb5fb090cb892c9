package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, playersCmd, seasonsCmd, gameCmd, statsCmd, exportCmd, syncCmd)

	playersCmd.AddCommand(playersListCmd, playersAddCmd, playersRenameCmd, playersArchiveCmd)
	playersListCmd.Flags().Bool("all", false, "Include archived players")

	seasonsCmd.AddCommand(seasonsListCmd, seasonsAddCmd, seasonsCurrentCmd, seasonsSelectCmd, seasonsArchiveCmd)
	seasonsAddCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")

	gameCmd.AddCommand(gameStartCmd, gameShowCmd, gameStatCmd, gameUndoCmd, gameDeleteEventCmd, gameFinalizeCmd, gameDiscardCmd)
	gameStartCmd.Flags().String("season", "", "Season id (defaults to the current season)")
	gameStatCmd.Flags().Int("delta", 1, "Increment")

	statsCmd.AddCommand(statsDashboardCmd, statsGamesCmd, statsRecordsCmd, statsH2HCmd)
	statsH2HCmd.Flags().String("season", "", "Limit to one season")

	exportCmd.AddCommand(exportSeasonCmd, exportGameCmd, exportBackupCmd)
	exportCmd.PersistentFlags().StringP("output", "o", "", "Write to this file instead of stdout")

	syncCmd.AddCommand(syncPushCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var playersCmd = &cobra.Command{Use: "players", Short: "Manage players"}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return performRequest(http.MethodGet, fmt.Sprintf("/players?all=%t", all), nil)
	},
}

var playersAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var playersRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a player",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPatch, "/players/"+args[0], map[string]string{"name": args[1]})
	},
}

var playersArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPatch, "/players/"+args[0], map[string]bool{"active": false})
	},
}

var seasonsCmd = &cobra.Command{Use: "seasons", Short: "Manage seasons"}

var seasonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/seasons?all=true", nil)
	},
}

var seasonsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a season and make it current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		return performRequest(http.MethodPost, "/seasons", map[string]string{"name": args[0], "start_date": start})
	},
}

var seasonsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current season",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/seasons/current", nil)
	},
}

var seasonsSelectCmd = &cobra.Command{
	Use:   "select ID",
	Short: "Make a season current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/seasons/"+args[0]+"/select", nil)
	},
}

var seasonsArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/seasons/"+args[0]+"/archive", nil)
	},
}

var gameCmd = &cobra.Command{Use: "game", Short: "Track a live game"}

var gameStartCmd = &cobra.Command{
	Use:   "start A1 A2 B1 B2",
	Short: "Start a game between two pairs of player ids",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, _ := cmd.Flags().GetString("season")
		return performRequest(http.MethodPost, "/games", map[string]any{
			"season_id":        season,
			"sideA_player_ids": args[0:2],
			"sideB_player_ids": args[2:4],
		})
	},
}

var gameShowCmd = &cobra.Command{
	Use:   "show GAME",
	Short: "Show the live box score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/games/"+args[0], nil)
	},
}

var gameStatCmd = &cobra.Command{
	Use:   "stat GAME PLAYER STAT",
	Short: "Record a stat (2PM 2PMISS 3PM 3PMISS AST OREB DREB BLK STL)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, _ := cmd.Flags().GetInt("delta")
		return performRequest(http.MethodPost, "/games/"+args[0]+"/events", map[string]any{
			"player_id": args[1],
			"stat":      strings.ToUpper(args[2]),
			"delta":     delta,
		})
	},
}

var gameUndoCmd = &cobra.Command{
	Use:   "undo GAME",
	Short: "Remove the newest event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/games/"+args[0]+"/undo", nil)
	},
}

var gameDeleteEventCmd = &cobra.Command{
	Use:   "delete-event EVENT",
	Short: "Remove one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/events/"+args[0], nil)
	},
}

var gameFinalizeCmd = &cobra.Command{
	Use:   "finalize GAME",
	Short: "Finalize a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/games/"+args[0]+"/finalize", nil)
	},
}

var gameDiscardCmd = &cobra.Command{
	Use:   "discard GAME",
	Short: "Delete a game and its events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/games/"+args[0], nil)
	},
}

var statsCmd = &cobra.Command{Use: "stats", Short: "Read dashboards and records"}

var statsDashboardCmd = &cobra.Command{
	Use:   "dashboard SEASON",
	Short: "Show a season dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/seasons/"+args[0]+"/dashboard", nil)
	},
}

var statsGamesCmd = &cobra.Command{
	Use:   "games SEASON",
	Short: "Show a season game log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/seasons/"+args[0]+"/games", nil)
	},
}

var statsRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show all-time records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/records", nil)
	},
}

var statsH2HCmd = &cobra.Command{
	Use:   "h2h P Q",
	Short: "Show the head-to-head record of two players",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, _ := cmd.Flags().GetString("season")
		q := url.Values{"p": {args[0]}, "q": {args[1]}}
		if season != "" {
			q.Set("season", season)
		}
		return performRequest(http.MethodGet, "/head-to-head?"+q.Encode(), nil)
	},
}

var exportCmd = &cobra.Command{Use: "export", Short: "Download CSV and JSON exports"}

var exportSeasonCmd = &cobra.Command{
	Use:   "season SEASON FILE",
	Short: "Download a season CSV (players, games, player_game_stats, player_season_totals, with_teammate_summary, vs_opponent_summary)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return download(cmd, "/seasons/"+args[0]+"/export/"+args[1])
	},
}

var exportGameCmd = &cobra.Command{
	Use:   "game GAME",
	Short: "Download one game's box score CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return download(cmd, "/games/"+args[0]+"/export")
	},
}

var exportBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a full JSON backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return download(cmd, "/export/backup")
	},
}

var syncCmd = &cobra.Command{Use: "sync", Short: "Remote sync"}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push pending ops to the remote copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/sync/push", nil)
	},
}

func endpointURL(endpoint string) string {
	u := host + endpoint
	if !dryRun {
		return u
	}
	if strings.Contains(endpoint, "?") {
		return u + "&dry_run=true"
	}
	return u + "?dry_run=true"
}

func send(method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, endpointURL(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

func performRequest(method, endpoint string, body any) error {
	fmt.Printf("Making %s request to %s\n", method, endpointURL(endpoint))
	resp, err := send(method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	var pretty bytes.Buffer
	if json.Indent(&pretty, data, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(data))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

// download streams an export to --output or stdout.
func download(cmd *cobra.Command, endpoint string) error {
	resp, err := send(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
		fmt.Fprintf(os.Stderr, "Writing %s\n", path)
	}
	_, err = io.Copy(out, resp.Body)
	return err
}
