package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/forceteam/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New(3)
	s.ctx = context.Background()
}

func (s *StorageSuite) appendIDs(ids ...model.PlayerID) {
	for _, id := range ids {
		s.Require().NoError(s.storage.Append(s.ctx, model.Report{Kind: model.ReportRosterSet, PlayerID: id}))
	}
}

func ids(reports []model.Report) []model.PlayerID {
	out := make([]model.PlayerID, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.PlayerID)
	}
	return out
}

func (s *StorageSuite) TestListEmpty() {
	reports, err := s.storage.List(s.ctx, 10)
	s.NoError(err)
	s.Empty(reports)
}

func (s *StorageSuite) TestListNewestFirst() {
	s.appendIDs(1, 2)

	reports, err := s.storage.List(s.ctx, 10)
	s.NoError(err)
	s.Equal([]model.PlayerID{2, 1}, ids(reports))
}

func (s *StorageSuite) TestListRespectsLimit() {
	s.appendIDs(1, 2, 3)

	reports, err := s.storage.List(s.ctx, 2)
	s.NoError(err)
	s.Equal([]model.PlayerID{3, 2}, ids(reports))
}

func (s *StorageSuite) TestOldestEvictedWhenFull() {
	s.appendIDs(1, 2, 3, 4, 5)

	reports, err := s.storage.List(s.ctx, 0)
	s.NoError(err)
	s.Equal([]model.PlayerID{5, 4, 3}, ids(reports))
	s.Equal(3, s.storage.Len())
}

func (s *StorageSuite) TestDefaultCapacity() {
	st := New(0)
	s.Len(st.reports, DefaultCapacity)
}
