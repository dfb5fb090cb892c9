package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/aggregate"
	"github.com/mauv0809/driveway-hoops/internal/awards"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/rating"
	"github.com/mauv0809/driveway-hoops/internal/store"
)

// Config carries the rule knobs used when folding games.
type Config struct {
	Rules      boxscore.Rules
	Aggregate  aggregate.Options
	Thresholds awards.Thresholds
}

// DefaultConfig returns the standard rules and award thresholds.
func DefaultConfig() Config {
	return Config{
		Rules:      boxscore.DefaultRules(),
		Thresholds: awards.DefaultThresholds(),
	}
}

// Service recomputes every derived view from the store on each call.
type Service struct {
	store   store.Store
	metrics metrics.Metrics
	cfg     Config
}

// New creates a stats Service.
func New(store store.Store, metrics metrics.Metrics, cfg Config) *Service {
	return &Service{store: store, metrics: metrics, cfg: cfg}
}

// SeasonDashboard folds the finalized games of one season.
func (s *Service) SeasonDashboard(seasonID string) (*Dashboard, error) {
	season, err := s.store.GetSeason(seasonID)
	if err != nil {
		return nil, err
	}
	games, err := s.store.ListGamesForSeason(seasonID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for season %s: %w", seasonID, err)
	}
	d, err := s.build(ScopeSeason, games, awards.ScopeSeason)
	if err != nil {
		return nil, err
	}
	d.Season = season
	return d, nil
}

// AllTimeDashboard folds every finalized game across seasons.
func (s *Service) AllTimeDashboard() (*Dashboard, error) {
	games, err := s.store.ListAllFinalizedGames()
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized games: %w", err)
	}
	return s.build(ScopeAllTime, games, awards.ScopeAllTime)
}

// HeadToHead returns p's record against q. An empty seasonID means all time.
func (s *Service) HeadToHead(p, q, seasonID string) (*HeadToHeadView, error) {
	if p == "" || q == "" || p == q {
		return nil, ErrInvalidPair
	}
	var d *Dashboard
	var err error
	if seasonID == "" {
		d, err = s.AllTimeDashboard()
	} else {
		d, err = s.SeasonDashboard(seasonID)
	}
	if err != nil {
		return nil, err
	}
	m, _ := d.Aggregates.Lookup(p, q)
	view := &HeadToHeadView{Matchup: m, Names: d.Names}
	if rec, ok := d.Aggregates.Teammates(p, q); ok {
		view.Teammates = rec
	}
	return view, nil
}

// GameLog lists the finalized games of a season, newest first.
func (s *Service) GameLog(seasonID string, limit int) ([]GameLogEntry, error) {
	if limit <= 0 {
		limit = GameLogLimit
	}
	games, err := s.store.ListGamesForSeason(seasonID, true)
	if err != nil {
		return nil, err
	}
	if len(games) > limit {
		games = games[:limit]
	}
	entries := make([]GameLogEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, GameLogEntry{
			GameID:     g.ID,
			PlayedAt:   g.PlayedAt,
			SideA:      g.SideA[:],
			SideB:      g.SideB[:],
			ScoreA:     g.FinalScoreA,
			ScoreB:     g.FinalScoreB,
			WinnerSide: g.WinnerSide,
			Finalized:  g.Finalized,
		})
	}
	return entries, nil
}

// Results loads events for each game and computes its box score.
func (s *Service) Results(games []model.Game) ([]aggregate.GameResult, error) {
	results := make([]aggregate.GameResult, 0, len(games))
	for _, g := range games {
		events, err := s.store.ListEventsForGame(g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list events for game %s: %w", g.ID, err)
		}
		results = append(results, aggregate.GameResult{Game: g, Box: boxscore.Compute(&g, events, s.cfg.Rules)})
	}
	return results, nil
}

// Names maps every known player id to a display name.
func (s *Service) Names() (map[string]string, error) {
	players, err := s.store.ListPlayers(false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (s *Service) build(scope Scope, games []model.Game, awardScope awards.Scope) (*Dashboard, error) {
	start := time.Now()
	results, err := s.Results(games)
	if err != nil {
		return nil, err
	}
	names, err := s.Names()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	agg := aggregate.Compute(results, s.cfg.Aggregate)
	snap := rating.Replay(games)
	d := &Dashboard{
		Scope:           scope,
		Games:           len(games) - agg.Skipped,
		Chemistry:       agg.Chemistry(),
		TopPerformances: agg.TopPerformances,
		LongestStreaks:  agg.LongestStreakBoard(0),
		Awards:          awards.Select(agg, snap, awardScope, s.cfg.Thresholds),
		Names:           names,
		Aggregates:      agg,
		Ratings:         snap,
		Results:         results,
	}
	for _, t := range agg.OrderedTotals() {
		d.Players = append(d.Players, PlayerRow{
			PlayerID:      t.PlayerID,
			Name:          d.Name(t.PlayerID),
			Totals:        t,
			Rating:        snap.Rating(t.PlayerID),
			RatingDelta:   snap.Deltas[t.PlayerID],
			Streak:        agg.Streaks[t.PlayerID].String(),
			LongestStreak: agg.LongestStreaks[t.PlayerID],
			PPG:           t.PPG(),
			RPG:           t.RPG(),
			APG:           t.APG(),
			StocksPG:      t.StocksPG(),
			WinPct:        t.WinPct(),
			TwoPct:        t.TwoPct(),
			ThreePct:      t.ThreePct(),
		})
	}
	sort.SliceStable(d.Players, func(i, j int) bool { return d.Players[i].Rating > d.Players[j].Rating })

	elapsed := time.Since(start)
	s.metrics.ObserveRecomputeDuration(elapsed.Seconds())
	log.Debug("Recomputed dashboard", "scope", scope, "games", d.Games, "duration", elapsed)
	return d, nil
}
