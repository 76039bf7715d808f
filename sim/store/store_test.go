package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/epidemic-sim/sim"
	"github.com/inference-sim/epidemic-sim/sim/trace"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func smallConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Horizon = 30
	cfg.Population.Size = 500
	cfg.Population.InitialInfected = 3
	return cfg
}

func TestSaveRun_LoadSeries_RoundTrip(t *testing.T) {
	// GIVEN a completed small run
	cfg := smallConfig()
	s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(7), trace.TraceConfig{})
	require.NoError(t, err)
	series := s.Run()

	db := openTestDB(t)
	run, err := NewRun(cfg, 7)
	require.NoError(t, err)
	ctx := context.Background()

	// WHEN it is saved and read back
	require.NoError(t, db.SaveRun(ctx, run, series))
	got, err := db.LoadSeries(ctx, run.ID)
	require.NoError(t, err)

	// THEN the series is identical, in day order
	assert.Equal(t, series.Days, got.Days)
	assert.Equal(t, int(cfg.Horizon)+1, got.Len())
}

func TestGetRun_DecodesConfig(t *testing.T) {
	cfg := smallConfig()
	db := openTestDB(t)
	run, err := NewRun(cfg, 11)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, db.SaveRun(ctx, run, sim.NewMetricsSeries()))

	got, err := db.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, int64(11), got.Seed)
	assert.Equal(t, cfg.Population.Size, got.Population)
	assert.Equal(t, cfg.Horizon, got.Horizon)

	decoded, err := got.Config()
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestGetRun_Unknown_ReturnsError(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetRun(context.Background(), "does-not-exist")
	assert.Error(t, err)
}

func TestSaveRun_DuplicateID_RollsBack(t *testing.T) {
	// GIVEN a saved run
	db := openTestDB(t)
	run, err := NewRun(smallConfig(), 1)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, db.SaveRun(ctx, run, sim.NewMetricsSeries()))

	// WHEN the same run is saved again with a series
	series := sim.NewMetricsSeries()
	series.Append(sim.DailyMetrics{Day: 0, Active: 1})
	err = db.SaveRun(ctx, run, series)

	// THEN it fails and no metrics rows were written
	require.Error(t, err)
	got, err := db.LoadSeries(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestListRuns_ReturnsAllRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ids := make(map[string]bool)
	for seed := int64(1); seed <= 3; seed++ {
		run, err := NewRun(smallConfig(), seed)
		require.NoError(t, err)
		require.NoError(t, db.SaveRun(ctx, run, sim.NewMetricsSeries()))
		ids[run.ID] = true
	}

	runs, err := db.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for _, r := range runs {
		assert.True(t, ids[r.ID], "unexpected run %s", r.ID)
	}
	for i := 1; i < len(runs); i++ {
		assert.False(t, runs[i].CreatedAt.After(runs[i-1].CreatedAt), "runs must be newest first")
	}
}
