package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/waterwheel/internal/train"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func evaluate(t *testing.T) *train.Report {
	t.Helper()
	report, err := train.Evaluate(train.WaterWheel())
	require.NoError(t, err)
	return report
}

func TestNewRun(t *testing.T) {
	report := evaluate(t)
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	run := NewRun(report, now)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, now, run.CreatedAt)
	assert.Equal(t, 1.0, run.Input)
	assert.Equal(t, report.Advantage(), run.Advantage)
	require.Len(t, run.Readings, 10)

	assert.Equal(t, StoredReading{Seq: 0, Section: SectionInput, Label: "Fa", Value: 1, Note: "applied force"}, run.Readings[0])
	assert.Equal(t, SectionBefore, run.Readings[1].Section)
	assert.Equal(t, "Fb", run.Readings[1].Label)
	assert.Equal(t, SectionAfter, run.Readings[2].Section)
	assert.Equal(t, "Fb6f", run.Readings[9].Label)
	for i, rd := range run.Readings {
		assert.Equal(t, i, rd.Seq)
	}

	assert.NotEqual(t, run.ID, NewRun(report, now).ID)
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := NewRun(evaluate(t), time.Date(2026, 3, 14, 9, 26, 53, 123456789, time.UTC))
	require.NoError(t, db.SaveRun(ctx, run))

	loaded, err := db.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
	assert.Equal(t, run.Input, loaded.Input)
	assert.Equal(t, run.Advantage, loaded.Advantage)
	assert.Equal(t, run.Readings, loaded.Readings)
}

func TestLoadRunMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadRun(context.Background(), "no-such-run")
	assert.Error(t, err)
}

func TestSaveRunDuplicateID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := NewRun(evaluate(t), time.Now())
	require.NoError(t, db.SaveRun(ctx, run))
	assert.Error(t, db.SaveRun(ctx, run))

	runs, err := db.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecentRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	report := evaluate(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 4; i++ {
		run := NewRun(report, base.Add(time.Duration(i)*time.Minute+time.Duration(i)*time.Millisecond))
		require.NoError(t, db.SaveRun(ctx, run))
		ids = append(ids, run.ID)
	}

	runs, err := db.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[3], runs[0].ID)
	assert.Equal(t, ids[2], runs[1].ID)
	assert.Equal(t, ids[1], runs[2].ID)
	assert.Empty(t, runs[0].Readings)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	run := NewRun(evaluate(t), time.Now())
	require.NoError(t, db.SaveRun(ctx, run))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	loaded, err := db.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Readings, len(run.Readings))
}
