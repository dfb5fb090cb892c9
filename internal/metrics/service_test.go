package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncEventsRecorded("3PM")
	s.IncEventsRecorded("3PM")
	s.IncEventsIgnored(0)
	s.IncEventsIgnored(2)
	s.IncGamesFinalized()
	s.SetPendingOps(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.EventsRecorded.WithLabelValues("3PM")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.EventsIgnored))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.GamesFinalized))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.PendingOps))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hoops_games_finalized_total 1")
}

type countingStore struct {
	counts map[string]int
}

func (c *countingStore) Increment(key string) { c.counts[key]++ }

func (c *countingStore) GetAll() (map[string]int, error) { return c.counts, nil }

func TestServicePersistsLifetimeCounters(t *testing.T) {
	lifetime := &countingStore{counts: map[string]int{}}
	s := NewService(prometheus.NewRegistry()).WithLifetimeStore(lifetime)

	s.IncGamesFinalized()
	s.IncGamesDiscarded()
	s.IncEventsRecorded("AST")
	s.IncEventsRecorded("STL")
	s.IncSyncOpsPushed("upsert_event")
	s.IncSlackNotifSent()

	assert.Equal(t, map[string]int{
		KeyGamesFinalized: 1,
		KeyGamesDiscarded: 1,
		KeyEventsRecorded: 2,
		KeySyncPushes:     1,
	}, lifetime.counts)
}
