package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/forceteam/internal/model"
)

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Set(1, model.TeamTerrorist)
	team, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, model.TeamTerrorist, team)
	assert.Equal(t, 1, s.Size())
}

func TestStoreLastWriteWins(t *testing.T) {
	s := NewStore()

	s.Set(1, model.TeamTerrorist)
	s.Set(1, model.TeamCounterTerrorist)

	team, _ := s.Get(1)
	assert.Equal(t, model.TeamCounterTerrorist, team)
	assert.Equal(t, 1, s.Size())
}

func TestStoreClearAllRemovesEverything(t *testing.T) {
	s := NewStore()
	ids := []model.PlayerID{1, 2, 3}
	for _, id := range ids {
		s.Set(id, model.TeamTerrorist)
		s.MarkKnown(id)
	}

	removed := s.ClearAll()

	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 0, s.KnownCount())
	for _, id := range ids {
		_, ok := s.Get(id)
		assert.False(t, ok, "entry %d should be gone", id)
		assert.False(t, s.Known(id))
	}
}

func TestStoreClearAllOnEmptyStore(t *testing.T) {
	assert.Equal(t, 0, NewStore().ClearAll())
}

func TestStoreMarkKnownReportsPreviousVisit(t *testing.T) {
	s := NewStore()

	assert.False(t, s.MarkKnown(7))
	assert.True(t, s.MarkKnown(7))
	assert.True(t, s.Known(7))
	assert.False(t, s.Known(8))
}

func TestStoreEntriesSortedByID(t *testing.T) {
	s := NewStore()
	s.Set(30, model.TeamTerrorist)
	s.Set(10, model.TeamCounterTerrorist)
	s.Set(20, model.TeamTerrorist)

	assert.Equal(t, []model.RosterEntry{
		{PlayerID: 10, Team: model.TeamCounterTerrorist},
		{PlayerID: 20, Team: model.TeamTerrorist},
		{PlayerID: 30, Team: model.TeamTerrorist},
	}, s.Entries())
}
