package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/forceteam/internal/model"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestAppendAndList(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, model.Report{
		Kind:     model.ReportSwitchMismatched,
		PlayerID: 76561198000000001,
		Team:     model.TeamCounterTerrorist,
		Detail:   "still on Terrorist",
		At:       at,
	}))
	require.NoError(t, s.Append(ctx, model.Report{
		Kind:    model.ReportSweepCompleted,
		Detail:  "round_start",
		Moved:   1,
		Correct: 4,
		At:      at.Add(time.Second),
	}))

	reports, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, model.ReportSweepCompleted, reports[0].Kind)
	assert.Equal(t, 1, reports[0].Moved)
	assert.Equal(t, 4, reports[0].Correct)
	assert.Equal(t, model.TeamNone, reports[0].Team)

	assert.Equal(t, model.ReportSwitchMismatched, reports[1].Kind)
	assert.Equal(t, model.PlayerID(76561198000000001), reports[1].PlayerID)
	assert.Equal(t, model.TeamCounterTerrorist, reports[1].Team)
	assert.Equal(t, "still on Terrorist", reports[1].Detail)
	assert.True(t, at.Equal(reports[1].At))
}

func TestListLimitAndTieBreak(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for id := model.PlayerID(1); id <= 3; id++ {
		require.NoError(t, s.Append(ctx, model.Report{Kind: model.ReportRosterSet, PlayerID: id, At: at}))
	}

	reports, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, model.PlayerID(3), reports[0].PlayerID)
	assert.Equal(t, model.PlayerID(2), reports[1].PlayerID)
}

func TestAppendRequiresKind(t *testing.T) {
	s := openTestStorage(t)
	assert.Error(t, s.Append(context.Background(), model.Report{}))
}

func TestAppendHonoursCancelledContext(t *testing.T) {
	s := openTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Append(ctx, model.Report{Kind: model.ReportRosterSet}), context.Canceled)
}
