package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	eventsRecorded     map[string]int
	eventsIgnored      int
	gamesFinalized     int
	gamesDiscarded     int
	recomputeDurations []float64
	syncOpsPushed      map[string]int
	syncOpsFailed      int
	pendingOps         int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		eventsRecorded: make(map[string]int),
		syncOpsPushed:  make(map[string]int),
	}
}

func (m *Mock) IncEventsRecorded(statType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsRecorded[statType]++
}

func (m *Mock) IncEventsIgnored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsIgnored += n
}

func (m *Mock) IncGamesFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesFinalized++
}

func (m *Mock) IncGamesDiscarded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesDiscarded++
}

func (m *Mock) ObserveRecomputeDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputeDurations = append(m.recomputeDurations, seconds)
}

func (m *Mock) IncSyncOpsPushed(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncOpsPushed[kind]++
}

func (m *Mock) IncSyncOpsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncOpsFailed++
}

func (m *Mock) SetPendingOps(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingOps = n
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// EventsRecorded returns how many events of statType were counted.
func (m *Mock) EventsRecorded(statType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsRecorded[statType]
}

// EventsIgnored returns the total passed to IncEventsIgnored.
func (m *Mock) EventsIgnored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsIgnored
}

// GamesFinalized returns the number of times IncGamesFinalized was called.
func (m *Mock) GamesFinalized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesFinalized
}

// GamesDiscarded returns the number of times IncGamesDiscarded was called.
func (m *Mock) GamesDiscarded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesDiscarded
}

// RecomputeObservations returns how many durations were observed.
func (m *Mock) RecomputeObservations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recomputeDurations)
}

// SyncOpsPushed returns how many ops of kind were pushed.
func (m *Mock) SyncOpsPushed(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncOpsPushed[kind]
}

// SyncOpsFailed returns the number of times IncSyncOpsFailed was called.
func (m *Mock) SyncOpsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncOpsFailed
}

// PendingOps returns the last value passed to SetPendingOps.
func (m *Mock) PendingOps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingOps
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
