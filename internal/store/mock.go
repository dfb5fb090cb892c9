package store

import (
	"sync"

	"github.com/mauv0809/driveway-hoops/internal/model"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	ListPlayersFunc           func(activeOnly bool) ([]model.Player, error)
	GetPlayerFunc             func(id string) (*model.Player, error)
	AddPlayerFunc             func(name string) (*model.Player, error)
	UpdatePlayerFunc          func(p *model.Player) error
	UpsertPlayerFunc          func(p *model.Player) error
	ListSeasonsFunc           func(includeArchived bool) ([]model.Season, error)
	GetSeasonFunc             func(id string) (*model.Season, error)
	AddSeasonFunc             func(name, startDate string) (*model.Season, error)
	UpsertSeasonFunc          func(s *model.Season) error
	EnsureDefaultSeasonFunc   func(name string) (*model.Season, error)
	CurrentSeasonFunc         func() (*model.Season, error)
	GetSettingFunc            func(key string) (string, bool, error)
	SetSettingFunc            func(key, value string) error
	CreateGameFunc            func(seasonID string, sideA, sideB model.Pair) (*model.Game, error)
	GetGameFunc               func(id string) (*model.Game, error)
	UpdateGameFunc            func(g *model.Game) error
	FinalizeGameFunc          func(id string, scoreA, scoreB int, winner model.Side) (bool, error)
	DeleteGameFunc            func(id string) error
	ListGamesForSeasonFunc    func(seasonID string, finalizedOnly bool) ([]model.Game, error)
	ListAllFinalizedGamesFunc func() ([]model.Game, error)
	UpsertGameFunc            func(g *model.Game) error
	AppendEventFunc           func(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error)
	GetEventFunc              func(id string) (*model.StatEvent, error)
	DeleteEventFunc           func(id string) error
	ListEventsForGameFunc     func(gameID string) ([]model.StatEvent, error)
	UpsertEventFunc           func(ev *model.StatEvent) error
	EnqueueOpFunc             func(kind model.OpKind, payload []byte) (*Op, error)
	ListOpsFunc               func(limit int) ([]Op, error)
	DeleteOpFunc              func(id string) error
	MarkOpFailedFunc          func(id, reason string) error
	CountOpsFunc              func() (int, error)

	// Call records
	ListPlayersCalls  []bool
	GetPlayerCalls    []string
	AddPlayerCalls    []string
	UpdatePlayerCalls []*model.Player
	UpsertPlayerCalls []*model.Player
	ListSeasonsCalls  []bool
	GetSeasonCalls    []string
	AddSeasonCalls    []struct {
		Name      string
		StartDate string
	}
	UpsertSeasonCalls        []*model.Season
	EnsureDefaultSeasonCalls []string
	CurrentSeasonCalls       int
	GetSettingCalls          []string
	SetSettingCalls          []struct {
		Key   string
		Value string
	}
	CreateGameCalls []struct {
		SeasonID string
		SideA    model.Pair
		SideB    model.Pair
	}
	GetGameCalls      []string
	UpdateGameCalls   []*model.Game
	FinalizeGameCalls []struct {
		ID     string
		ScoreA int
		ScoreB int
		Winner model.Side
	}
	DeleteGameCalls         []string
	ListGamesForSeasonCalls []struct {
		SeasonID      string
		FinalizedOnly bool
	}
	ListAllFinalizedGamesCalls int
	UpsertGameCalls            []*model.Game
	AppendEventCalls           []struct {
		GameID   string
		PlayerID string
		Stat     model.StatType
		Delta    int
	}
	GetEventCalls          []string
	DeleteEventCalls       []string
	ListEventsForGameCalls []string
	UpsertEventCalls       []*model.StatEvent
	EnqueueOpCalls         []struct {
		Kind    model.OpKind
		Payload []byte
	}
	ListOpsCalls      []int
	DeleteOpCalls     []string
	MarkOpFailedCalls []struct {
		ID     string
		Reason string
	}
	CountOpsCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ListPlayers(activeOnly bool) ([]model.Player, error) {
	m.mu.Lock()
	m.ListPlayersCalls = append(m.ListPlayersCalls, activeOnly)
	fn := m.ListPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(activeOnly)
	}
	return nil, nil
}

func (m *MockStore) GetPlayer(id string) (*model.Player, error) {
	m.mu.Lock()
	m.GetPlayerCalls = append(m.GetPlayerCalls, id)
	fn := m.GetPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil, nil
}

func (m *MockStore) AddPlayer(name string) (*model.Player, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	fn := m.AddPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name)
	}
	return nil, nil
}

func (m *MockStore) UpdatePlayer(p *model.Player) error {
	m.mu.Lock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, p)
	fn := m.UpdatePlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(p)
	}
	return nil
}

func (m *MockStore) UpsertPlayer(p *model.Player) error {
	m.mu.Lock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, p)
	fn := m.UpsertPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(p)
	}
	return nil
}

func (m *MockStore) ListSeasons(includeArchived bool) ([]model.Season, error) {
	m.mu.Lock()
	m.ListSeasonsCalls = append(m.ListSeasonsCalls, includeArchived)
	fn := m.ListSeasonsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(includeArchived)
	}
	return nil, nil
}

func (m *MockStore) GetSeason(id string) (*model.Season, error) {
	m.mu.Lock()
	m.GetSeasonCalls = append(m.GetSeasonCalls, id)
	fn := m.GetSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil, nil
}

func (m *MockStore) AddSeason(name, startDate string) (*model.Season, error) {
	m.mu.Lock()
	m.AddSeasonCalls = append(m.AddSeasonCalls, struct {
		Name      string
		StartDate string
	}{Name: name, StartDate: startDate})
	fn := m.AddSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name, startDate)
	}
	return nil, nil
}

func (m *MockStore) UpsertSeason(s *model.Season) error {
	m.mu.Lock()
	m.UpsertSeasonCalls = append(m.UpsertSeasonCalls, s)
	fn := m.UpsertSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(s)
	}
	return nil
}

func (m *MockStore) EnsureDefaultSeason(name string) (*model.Season, error) {
	m.mu.Lock()
	m.EnsureDefaultSeasonCalls = append(m.EnsureDefaultSeasonCalls, name)
	fn := m.EnsureDefaultSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(name)
	}
	return nil, nil
}

func (m *MockStore) CurrentSeason() (*model.Season, error) {
	m.mu.Lock()
	m.CurrentSeasonCalls++
	fn := m.CurrentSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return nil, nil
}

func (m *MockStore) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	m.GetSettingCalls = append(m.GetSettingCalls, key)
	fn := m.GetSettingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(key)
	}
	return "", false, nil
}

func (m *MockStore) SetSetting(key, value string) error {
	m.mu.Lock()
	m.SetSettingCalls = append(m.SetSettingCalls, struct {
		Key   string
		Value string
	}{Key: key, Value: value})
	fn := m.SetSettingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(key, value)
	}
	return nil
}

func (m *MockStore) CreateGame(seasonID string, sideA, sideB model.Pair) (*model.Game, error) {
	m.mu.Lock()
	m.CreateGameCalls = append(m.CreateGameCalls, struct {
		SeasonID string
		SideA    model.Pair
		SideB    model.Pair
	}{SeasonID: seasonID, SideA: sideA, SideB: sideB})
	fn := m.CreateGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(seasonID, sideA, sideB)
	}
	return nil, nil
}

func (m *MockStore) GetGame(id string) (*model.Game, error) {
	m.mu.Lock()
	m.GetGameCalls = append(m.GetGameCalls, id)
	fn := m.GetGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil, nil
}

func (m *MockStore) UpdateGame(g *model.Game) error {
	m.mu.Lock()
	m.UpdateGameCalls = append(m.UpdateGameCalls, g)
	fn := m.UpdateGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(g)
	}
	return nil
}

func (m *MockStore) FinalizeGame(id string, scoreA, scoreB int, winner model.Side) (bool, error) {
	m.mu.Lock()
	m.FinalizeGameCalls = append(m.FinalizeGameCalls, struct {
		ID     string
		ScoreA int
		ScoreB int
		Winner model.Side
	}{ID: id, ScoreA: scoreA, ScoreB: scoreB, Winner: winner})
	fn := m.FinalizeGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id, scoreA, scoreB, winner)
	}
	return false, nil
}

func (m *MockStore) DeleteGame(id string) error {
	m.mu.Lock()
	m.DeleteGameCalls = append(m.DeleteGameCalls, id)
	fn := m.DeleteGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil
}

func (m *MockStore) ListGamesForSeason(seasonID string, finalizedOnly bool) ([]model.Game, error) {
	m.mu.Lock()
	m.ListGamesForSeasonCalls = append(m.ListGamesForSeasonCalls, struct {
		SeasonID      string
		FinalizedOnly bool
	}{SeasonID: seasonID, FinalizedOnly: finalizedOnly})
	fn := m.ListGamesForSeasonFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(seasonID, finalizedOnly)
	}
	return nil, nil
}

func (m *MockStore) ListAllFinalizedGames() ([]model.Game, error) {
	m.mu.Lock()
	m.ListAllFinalizedGamesCalls++
	fn := m.ListAllFinalizedGamesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return nil, nil
}

func (m *MockStore) UpsertGame(g *model.Game) error {
	m.mu.Lock()
	m.UpsertGameCalls = append(m.UpsertGameCalls, g)
	fn := m.UpsertGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(g)
	}
	return nil
}

func (m *MockStore) AppendEvent(gameID, playerID string, stat model.StatType, delta int) (*model.StatEvent, error) {
	m.mu.Lock()
	m.AppendEventCalls = append(m.AppendEventCalls, struct {
		GameID   string
		PlayerID string
		Stat     model.StatType
		Delta    int
	}{GameID: gameID, PlayerID: playerID, Stat: stat, Delta: delta})
	fn := m.AppendEventFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(gameID, playerID, stat, delta)
	}
	return nil, nil
}

func (m *MockStore) GetEvent(id string) (*model.StatEvent, error) {
	m.mu.Lock()
	m.GetEventCalls = append(m.GetEventCalls, id)
	fn := m.GetEventFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil, nil
}

func (m *MockStore) DeleteEvent(id string) error {
	m.mu.Lock()
	m.DeleteEventCalls = append(m.DeleteEventCalls, id)
	fn := m.DeleteEventFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil
}

func (m *MockStore) ListEventsForGame(gameID string) ([]model.StatEvent, error) {
	m.mu.Lock()
	m.ListEventsForGameCalls = append(m.ListEventsForGameCalls, gameID)
	fn := m.ListEventsForGameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(gameID)
	}
	return nil, nil
}

func (m *MockStore) UpsertEvent(ev *model.StatEvent) error {
	m.mu.Lock()
	m.UpsertEventCalls = append(m.UpsertEventCalls, ev)
	fn := m.UpsertEventFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ev)
	}
	return nil
}

func (m *MockStore) EnqueueOp(kind model.OpKind, payload []byte) (*Op, error) {
	m.mu.Lock()
	m.EnqueueOpCalls = append(m.EnqueueOpCalls, struct {
		Kind    model.OpKind
		Payload []byte
	}{Kind: kind, Payload: payload})
	fn := m.EnqueueOpFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(kind, payload)
	}
	return nil, nil
}

func (m *MockStore) ListOps(limit int) ([]Op, error) {
	m.mu.Lock()
	m.ListOpsCalls = append(m.ListOpsCalls, limit)
	fn := m.ListOpsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(limit)
	}
	return nil, nil
}

func (m *MockStore) DeleteOp(id string) error {
	m.mu.Lock()
	m.DeleteOpCalls = append(m.DeleteOpCalls, id)
	fn := m.DeleteOpFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return nil
}

func (m *MockStore) MarkOpFailed(id, reason string) error {
	m.mu.Lock()
	m.MarkOpFailedCalls = append(m.MarkOpFailedCalls, struct {
		ID     string
		Reason string
	}{ID: id, Reason: reason})
	fn := m.MarkOpFailedFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(id, reason)
	}
	return nil
}

func (m *MockStore) CountOps() (int, error) {
	m.mu.Lock()
	m.CountOpsCalls++
	fn := m.CountOpsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return 0, nil
}

var _ Store = (*MockStore)(nil)
