package export

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/model"
)

// Exporter renders season and game data as CSV and JSON.
type Exporter struct {
	store Store
	rules boxscore.Rules
	agg   aggregate.Options
	now   func() time.Time
}

// New creates an Exporter.
func New(store Store, rules boxscore.Rules, opts aggregate.Options) *Exporter {
	return &Exporter{store: store, rules: rules, agg: opts, now: time.Now}
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename builds the download name of a season export.
func Filename(file File, season *model.Season, ext string, at time.Time) string {
	date := at.UTC().Format(time.DateOnly)
	if file == FilePlayers || season == nil {
		return fmt.Sprintf("%s_%s.%s", file, date, ext)
	}
	return fmt.Sprintf("%s_%s_%s.%s", file, whitespace.ReplaceAllString(season.Name, "_"), date, ext)
}

func (e *Exporter) names() ([]model.Player, map[string]string, error) {
	players, err := e.store.ListPlayers(false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return players, names, nil
}

func (e *Exporter) result(g model.Game) (aggregate.GameResult, error) {
	events, err := e.store.ListEventsForGame(g.ID)
	if err != nil {
		return aggregate.GameResult{}, fmt.Errorf("failed to list events for game %s: %w", g.ID, err)
	}
	return aggregate.GameResult{Game: g, Box: boxscore.Compute(&g, events, e.rules)}, nil
}

// LoadSeason reads the finalized games of a season in chronological order.
func (e *Exporter) LoadSeason(seasonID string) (*Season, error) {
	season, err := e.store.GetSeason(seasonID)
	if err != nil {
		return nil, err
	}
	games, err := e.store.ListGamesForSeason(seasonID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	players, names, err := e.names()
	if err != nil {
		return nil, err
	}
	s := &Season{Season: *season, Players: players, Names: names}
	for _, g := range games {
		r, err := e.result(g)
		if err != nil {
			return nil, err
		}
		s.Results = append(s.Results, r)
	}
	s.Results = aggregate.Chronological(s.Results)
	return s, nil
}

// WriteSeasonFile renders one season export and returns its file name.
func (e *Exporter) WriteSeasonFile(w io.Writer, seasonID string, file File) (string, error) {
	s, err := e.LoadSeason(seasonID)
	if err != nil {
		return "", err
	}
	name := Filename(file, &s.Season, "csv", e.now())

	switch file {
	case FilePlayers:
		err = WritePlayers(w, s.Players)
	case FileGames:
		err = WriteGames(w, s)
	case FilePlayerGameStats:
		err = WritePlayerGameStats(w, s)
	case FilePlayerSeasonTots:
		err = WriteSeasonTotals(w, s, aggregate.Compute(s.Results, e.agg))
	case FileWithTeammate:
		err = WriteWithTeammate(w, s, aggregate.Compute(s.Results, e.agg))
	case FileVsOpponent:
		err = WriteVsOpponent(w, s, aggregate.Compute(s.Results, e.agg))
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFile, file)
	}
	if err != nil {
		return "", err
	}
	log.Info("Exported season file", "season", s.Season.Name, "file", file, "games", len(s.Results))
	return name, nil
}

// WriteGameFile renders the box score of one game and returns its file name.
func (e *Exporter) WriteGameFile(w io.Writer, gameID string) (string, error) {
	g, err := e.store.GetGame(gameID)
	if err != nil {
		return "", err
	}
	_, names, err := e.names()
	if err != nil {
		return "", err
	}
	r, err := e.result(*g)
	if err != nil {
		return "", err
	}
	seasonName := ""
	if season, err := e.store.GetSeason(g.SeasonID); err == nil {
		seasonName = season.Name
	}
	if err := WriteGame(w, seasonName, r, names); err != nil {
		return "", err
	}

	label := func(id, fallback string) string {
		if n := names[id]; n != "" {
			return n
		}
		return fallback
	}
	matchup := fmt.Sprintf("%s_%s_vs_%s_%s",
		label(g.SideA[0], "A1"), label(g.SideA[1], "A2"), label(g.SideB[0], "B1"), label(g.SideB[1], "B2"))
	return fmt.Sprintf("game_%s_%s.csv", g.PlayedAt.UTC().Format(time.DateOnly), whitespace.ReplaceAllString(matchup, "_")), nil
}

// Backup collects every player, season, game and event.
func (e *Exporter) Backup() (*Backup, error) {
	players, _, err := e.names()
	if err != nil {
		return nil, err
	}
	seasons, err := e.store.ListSeasons(true)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	b := &Backup{
		ExportedAt: e.now().UTC(),
		Players:    players,
		Seasons:    seasons,
		Games:      []model.Game{},
		Events:     []model.StatEvent{},
	}
	for _, season := range seasons {
		games, err := e.store.ListGamesForSeason(season.ID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list games for season %s: %w", season.ID, err)
		}
		for _, g := range games {
			events, err := e.store.ListEventsForGame(g.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list events for game %s: %w", g.ID, err)
			}
			b.Games = append(b.Games, g)
			b.Events = append(b.Events, events...)
		}
	}
	return b, nil
}

// WriteBackup writes the indented JSON backup and returns its file name.
func (e *Exporter) WriteBackup(w io.Writer) (string, error) {
	b, err := e.Backup()
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return "", err
	}
	return Filename(fileBackup, nil, "json", b.ExportedAt), nil
}
