package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/driveway-hoops/internal/boxscore"
	"github.com/mauv0809/driveway-hoops/internal/metrics"
	"github.com/mauv0809/driveway-hoops/internal/model"
	"github.com/mauv0809/driveway-hoops/internal/notifier"
	"github.com/mauv0809/driveway-hoops/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new Tracker.
func New(store Store, notifier Notifier, metrics metrics.Metrics, rules boxscore.Rules) *Tracker {
	return &Tracker{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		rules:    rules,
	}
}

// Rules returns the win condition the tracker applies.
func (t *Tracker) Rules() boxscore.Rules {
	return t.rules
}

// enqueue queues an op for sync. A failed enqueue is logged and never fails
// the local mutation.
func (t *Tracker) enqueue(kind model.OpKind, v any) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		log.Error("Failed to encode op", "kind", kind, "error", err)
		return
	}
	if _, err := t.store.EnqueueOp(kind, payload); err != nil {
		log.Error("Failed to enqueue op", "kind", kind, "error", err)
	}
}

func (t *Tracker) names() (map[string]string, error) {
	players, err := t.store.ListPlayers(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (t *Tracker) game(id string) (*model.Game, error) {
	g, err := t.store.GetGame(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}
	return g, nil
}

func (t *Tracker) openGame(id string) (*model.Game, error) {
	g, err := t.game(id)
	if err != nil {
		return nil, err
	}
	if g.Finalized {
		return nil, fmt.Errorf("%w: %s", ErrGameFinalized, id)
	}
	return g, nil
}

// AddPlayer creates an active player.
func (t *Tracker) AddPlayer(name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p, err := t.store.AddPlayer(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	t.enqueue(model.OpUpsertPlayer, p)
	return p, nil
}

// UpdatePlayer renames or archives a player. Players are never deleted.
func (t *Tracker) UpdatePlayer(id string, name *string, active *bool) (*model.Player, error) {
	p, err := t.store.GetPlayer(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, ErrEmptyName
		}
		p.Name = n
	}
	if active != nil {
		p.Active = *active
	}
	if err := t.store.UpdatePlayer(p); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	t.enqueue(model.OpUpsertPlayer, p)
	log.Info("Updated player", "id", p.ID, "name", p.Name, "active", p.Active)
	return p, nil
}

// AddSeason creates a season and makes it current.
func (t *Tracker) AddSeason(name, startDate string) (*model.Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	s, err := t.store.AddSeason(name, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to add season: %w", err)
	}
	if err := t.store.SetSetting(store.SettingCurrentSeason, s.ID); err != nil {
		return nil, fmt.Errorf("failed to select season: %w", err)
	}
	t.enqueue(model.OpUpsertSeason, s)
	return s, nil
}

// ArchiveSeason hides a season from the current-season choice. Its games stay.
func (t *Tracker) ArchiveSeason(id string) (*model.Season, error) {
	s, err := t.store.GetSeason(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSeasonNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	s.Archived = true
	if err := t.store.UpsertSeason(s); err != nil {
		return nil, fmt.Errorf("failed to archive season: %w", err)
	}
	t.enqueue(model.OpUpsertSeason, s)
	return s, nil
}

// SelectSeason pins the current season.
func (t *Tracker) SelectSeason(id string) (*model.Season, error) {
	s, err := t.store.GetSeason(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSeasonNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if s.Archived {
		return nil, fmt.Errorf("%w: %s", ErrArchivedSeason, id)
	}
	if err := t.store.SetSetting(store.SettingCurrentSeason, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// StartGame creates an open game. An empty seasonID means the current season.
// The roster is rejected unless it names four distinct active players.
func (t *Tracker) StartGame(seasonID string, sideA, sideB model.Pair) (*model.Game, error) {
	if err := model.ValidateRoster(sideA, sideB); err != nil {
		return nil, err
	}
	for _, id := range append(sideA[:], sideB[:]...) {
		p, err := t.store.GetPlayer(id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: %s", ErrInactivePlayer, p.Name)
		}
	}

	var season *model.Season
	var err error
	if seasonID == "" {
		season, err = t.store.CurrentSeason()
	} else {
		season, err = t.store.GetSeason(seasonID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrSeasonNotFound, seasonID)
	}
	if err != nil {
		return nil, err
	}

	g, err := t.store.CreateGame(season.ID, sideA, sideB)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	t.enqueue(model.OpUpsertGame, g)
	log.Info("Started game", "gameID", g.ID, "season", season.Name)
	return g, nil
}

// RecordStat appends one stat event to an open game. A zero delta counts as 1.
func (t *Tracker) RecordStat(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error) {
	if !stat.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatType, stat)
	}
	g, err := t.openGame(gameID)
	if err != nil {
		return nil, err
	}
	if _, ok := g.SideOf(playerID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInGame, playerID)
	}

	ev, err := t.store.AppendEvent(gameID, playerID, stat, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}
	t.metrics.IncEventsRecorded(string(stat))
	t.enqueue(model.OpUpsertEvent, ev)
	log.Debug("Recorded stat", "gameID", gameID, "playerID", playerID, "stat", stat, "delta", ev.Delta)
	return ev, nil
}

// Undo deletes the newest event of an open game.
func (t *Tracker) Undo(gameID string) (*model.StatEvent, error) {
	if _, err := t.openGame(gameID); err != nil {
		return nil, err
	}
	events, err := t.store.ListEventsForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	latest := boxscore.Recent(events, 1)
	if len(latest) == 0 {
		return nil, ErrNothingToUndo
	}
	ev := latest[0]
	if err := t.store.DeleteEvent(ev.ID); err != nil {
		return nil, fmt.Errorf("failed to delete event: %w", err)
	}
	t.enqueue(model.OpDeleteEvent, model.DeleteRef{ID: ev.ID})
	log.Info("Undid event", "gameID", gameID, "eventID", ev.ID, "stat", ev.StatType)
	return &ev, nil
}

// DeleteEvent removes a single event from an open game.
func (t *Tracker) DeleteEvent(eventID string) error {
	ev, err := t.store.GetEvent(eventID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	if err != nil {
		return err
	}
	if _, err := t.openGame(ev.GameID); err != nil {
		return err
	}
	if err := t.store.DeleteEvent(eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	t.enqueue(model.OpDeleteEvent, model.DeleteRef{ID: eventID})
	return nil
}

// View computes the live box score and the most recent actions of a game.
func (t *Tracker) View(gameID string, recent int) (*GameView, error) {
	g, err := t.game(gameID)
	if err != nil {
		return nil, err
	}
	events, err := t.store.ListEventsForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	names, err := t.names()
	if err != nil {
		return nil, err
	}
	if recent <= 0 {
		recent = DefaultRecentActions
	}

	view := &GameView{Game: g, Box: boxscore.Compute(g, events, t.rules), Names: names}
	for _, ev := range boxscore.Recent(events, recent) {
		name := names[ev.PlayerID]
		if name == "" {
			name = ev.PlayerID
		}
		view.Recent = append(view.Recent, RecentAction{Event: ev, PlayerName: name})
	}
	return view, nil
}

// Finalize freezes the current score into the game. The win condition is
// advisory; only a tied score is refused. The recap is sent after the game
// is stored and a notification failure does not undo the finalize. A dry run
// returns the finalized view and a dry-run recap without storing anything.
func (t *Tracker) Finalize(gameID string, dryRun bool) (*GameView, error) {
	g, err := t.openGame(gameID)
	if err != nil {
		return nil, err
	}
	events, err := t.store.ListEventsForGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	box := boxscore.Compute(g, events, t.rules)
	if box.Tied {
		return nil, fmt.Errorf("%w: %d-%d", ErrTiedScore, box.ScoreA, box.ScoreB)
	}
	if box.Ignored > 0 {
		t.metrics.IncEventsIgnored(box.Ignored)
		log.Warn("Ignored malformed events", "gameID", gameID, "count", box.Ignored)
	}
	if !box.CanFinalize {
		log.Info("Finalizing before the win condition", "gameID", gameID, "scoreA", box.ScoreA, "scoreB", box.ScoreB)
	}

	if dryRun {
		log.Info("[Dry Run] Skipping finalize write", "gameID", gameID, "scoreA", box.ScoreA, "scoreB", box.ScoreB)
	} else {
		ok, err := t.store.FinalizeGame(gameID, box.ScoreA, box.ScoreB, box.WinnerSide)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to finalize game: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrGameFinalized, gameID)
		}
	}
	g.Finalized = true
	g.FinalScoreA, g.FinalScoreB, g.WinnerSide = box.ScoreA, box.ScoreB, box.WinnerSide

	if !dryRun {
		t.metrics.IncGamesFinalized()
		t.enqueue(model.OpBulkFinalize, model.BulkFinalize{Game: *g, Events: boxscore.SortEvents(events)})
		log.Info("Finalized game", "gameID", gameID, "scoreA", box.ScoreA, "scoreB", box.ScoreB, "winner", box.WinnerSide)
	}

	names, err := t.names()
	if err != nil {
		return nil, err
	}
	recap := &notifier.GameRecap{Game: g, Box: box, Names: names}
	if season, err := t.store.GetSeason(g.SeasonID); err == nil {
		recap.SeasonName = season.Name
	}
	if err := t.notifier.SendGameRecap(recap, dryRun); err != nil {
		log.Error("Failed to send game recap", "gameID", gameID, "error", err)
	}
	return &GameView{Game: g, Box: box, Names: names}, nil
}

// Discard deletes a game and all of its events. Finalized games may be
// discarded too.
func (t *Tracker) Discard(gameID string) error {
	if _, err := t.game(gameID); err != nil {
		return err
	}
	if err := t.store.DeleteGame(gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	t.metrics.IncGamesDiscarded()
	t.enqueue(model.OpDeleteGame, model.DeleteRef{ID: gameID})
	log.Info("Discarded game", "gameID", gameID)
	return nil
}
