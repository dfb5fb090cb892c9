package notifier

import (
	"sync"

	"github.com/mauv0809/driveway-hoops/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendGameRecapFunc func(recap *GameRecap, dryRun bool) error

	// Call records
	SendGameRecapCalls   []*GameRecap
	SendLeaderboardCalls []*stats.Dashboard
	SendAwardsCalls      []*stats.Dashboard

	LastLeaderboardResponse any
	LastAwardsResponse      any
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameRecapCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendAwardsCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastAwardsResponse = nil
}

func (m *Mock) SendGameRecap(recap *GameRecap, dryRun bool) error {
	m.mu.Lock()
	m.SendGameRecapCalls = append(m.SendGameRecapCalls, recap)
	fn := m.SendGameRecapFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(recap, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(d *stats.Dashboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, d)
	return nil
}

func (m *Mock) SendAwards(d *stats.Dashboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendAwardsCalls = append(m.SendAwardsCalls, d)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(d *stats.Dashboard) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"text": "leaderboard", "players": len(d.Players)}
	m.LastLeaderboardResponse = resp
	return resp, nil
}

func (m *Mock) FormatAwardsResponse(d *stats.Dashboard) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := map[string]any{"text": "awards", "awards": len(d.Awards)}
	m.LastAwardsResponse = resp
	return resp, nil
}

// RecapCount returns how many recaps were sent.
func (m *Mock) RecapCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendGameRecapCalls)
}
