package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/driveway-hoops/internal/model"
)

// Option customises a store.
type Option func(*store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *store) { s.now = now }
}

// New creates a Store backed by db. The schema must already be migrated.
func New(db *sql.DB, opts ...Option) Store {
	s := &store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *store) ListPlayers(activeOnly bool) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, active, created_at FROM players"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name COLLATE NOCASE, id"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetPlayer(id string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, active, created_at FROM players WHERE id = ?", id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p, err
}

// AddPlayer creates an active player. The name is trimmed and must not be empty.
func (s *store) AddPlayer(name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player name is required")
	}
	p := &model.Player{ID: uuid.NewString(), Name: name, Active: true, CreatedAt: s.now().UTC()}
	if err := s.UpsertPlayer(p); err != nil {
		return nil, err
	}
	log.Info("Added player", "id", p.ID, "name", p.Name)
	return p, nil
}

// UpdatePlayer renames or archives an existing player.
func (s *store) UpdatePlayer(p *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET name = ?, active = ? WHERE id = ?", strings.TrimSpace(p.Name), boolInt(p.Active), p.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "player", p.ID)
}

func (s *store) UpsertPlayer(p *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, active, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active`,
		p.ID, p.Name, boolInt(p.Active), unixNano(p.CreatedAt))
	return err
}

func scanPlayer(sc scanner) (*model.Player, error) {
	var p model.Player
	var active int
	var created int64
	if err := sc.Scan(&p.ID, &p.Name, &active, &created); err != nil {
		return nil, err
	}
	p.Active = active == 1
	p.CreatedAt = fromUnixNano(created)
	return &p, nil
}

// ListSeasons returns seasons ordered by name.
func (s *store) ListSeasons(includeArchived bool) ([]model.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSeasonsLocked(includeArchived)
}

func (s *store) listSeasonsLocked(includeArchived bool) ([]model.Season, error) {
	query := "SELECT id, name, start_date, archived FROM seasons"
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY name, created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []model.Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			log.Error("Failed to scan season row", "error", err)
			continue
		}
		seasons = append(seasons, *season)
	}
	return seasons, rows.Err()
}

func (s *store) GetSeason(id string) (*model.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSeasonLocked(id)
}

func (s *store) getSeasonLocked(id string) (*model.Season, error) {
	season, err := scanSeason(s.db.QueryRow("SELECT id, name, start_date, archived FROM seasons WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("season %s: %w", id, ErrNotFound)
	}
	return season, err
}

// AddSeason creates a season. An empty startDate means today.
func (s *store) AddSeason(name, startDate string) (*model.Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("season name is required")
	}
	if startDate == "" {
		startDate = s.now().UTC().Format(time.DateOnly)
	}
	season := &model.Season{ID: uuid.NewString(), Name: name, StartDate: startDate}
	if err := s.UpsertSeason(season); err != nil {
		return nil, err
	}
	return season, nil
}

func (s *store) UpsertSeason(season *model.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertSeasonLocked(season)
}

func (s *store) upsertSeasonLocked(season *model.Season) error {
	_, err := s.db.Exec(`
		INSERT INTO seasons (id, name, start_date, archived, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, start_date = excluded.start_date, archived = excluded.archived`,
		season.ID, season.Name, season.StartDate, boolInt(season.Archived), unixNano(s.now()))
	return err
}

// EnsureDefaultSeason returns the non-archived season called name, creating
// it if needed.
func (s *store) EnsureDefaultSeason(name string) (*model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seasons, err := s.listSeasonsLocked(false)
	if err != nil {
		return nil, err
	}
	for _, season := range seasons {
		if season.Name == name {
			return &season, nil
		}
	}
	season := &model.Season{ID: uuid.NewString(), Name: name, StartDate: s.now().UTC().Format(time.DateOnly)}
	if err := s.upsertSeasonLocked(season); err != nil {
		return nil, err
	}
	log.Info("Created default season", "id", season.ID, "name", name)
	return season, nil
}

// CurrentSeason returns the season pinned in settings if it exists and is not
// archived, otherwise the first non-archived season by name.
func (s *store) CurrentSeason() (*model.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok, err := s.getSettingLocked(SettingCurrentSeason); err != nil {
		return nil, err
	} else if ok {
		season, err := s.getSeasonLocked(id)
		if err == nil && !season.Archived {
			return season, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	seasons, err := s.listSeasonsLocked(false)
	if err != nil {
		return nil, err
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("current season: %w", ErrNotFound)
	}
	return &seasons[0], nil
}

func scanSeason(sc scanner) (*model.Season, error) {
	var season model.Season
	var archived int
	if err := sc.Scan(&season.ID, &season.Name, &season.StartDate, &archived); err != nil {
		return nil, err
	}
	season.Archived = archived == 1
	return &season, nil
}

// GetSetting returns the value for key and whether it was set.
func (s *store) GetSetting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSettingLocked(key)
}

func (s *store) getSettingLocked(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
