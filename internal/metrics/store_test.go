package metrics

import (
	"testing"

	"github.com/mauv0809/driveway-hoops/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(t.TempDir()+"/metrics.db", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	store.Increment(KeyGamesFinalized)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyGamesFinalized: 1}, metrics)

	store.Increment(KeyGamesFinalized)
	store.Increment(KeyEventsRecorded)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyGamesFinalized: 2,
		KeyEventsRecorded: 1,
	}, metrics)
}
