package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/forceteam/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.Namespace = "test"
	cfg.MaxReports = 3
	cfg.JournalTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestAppendAndList() {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	report := model.Report{
		Kind:     model.ReportSwitchVerified,
		PlayerID: 76561198000000001,
		Team:     model.TeamCounterTerrorist,
		At:       at,
	}

	s.Require().NoError(s.storage.Append(s.ctx, report))

	reports, err := s.storage.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(report.Kind, reports[0].Kind)
	s.Equal(report.PlayerID, reports[0].PlayerID)
	s.Equal(report.Team, reports[0].Team)
	s.True(at.Equal(reports[0].At))
}

func (s *StorageSuite) TestListNewestFirstAndTrimmed() {
	for id := model.PlayerID(1); id <= 5; id++ {
		s.Require().NoError(s.storage.Append(s.ctx, model.Report{Kind: model.ReportRosterSet, PlayerID: id}))
	}

	reports, err := s.storage.List(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(reports, 3)
	s.Equal(model.PlayerID(5), reports[0].PlayerID)
	s.Equal(model.PlayerID(3), reports[2].PlayerID)

	limited, err := s.storage.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal(model.PlayerID(5), limited[0].PlayerID)
}

func (s *StorageSuite) TestListEmpty() {
	reports, err := s.storage.List(s.ctx, 10)
	s.NoError(err)
	s.Empty(reports)
}

func (s *StorageSuite) TestJournalExpires() {
	s.Require().NoError(s.storage.Append(s.ctx, model.Report{Kind: model.ReportRostersCleared}))

	key := journalKey("test")
	s.True(s.mini.Exists(key))
	s.Equal(time.Hour, s.mini.TTL(key))

	s.mini.FastForward(2 * time.Hour)
	s.False(s.mini.Exists(key))
}

func (s *StorageSuite) TestNamespacesAreSeparate() {
	other := NewWithClient(s.storage.Client(), Config{Namespace: "other"})
	s.Require().NoError(other.Append(s.ctx, model.Report{Kind: model.ReportRostersCleared}))

	reports, err := s.storage.List(s.ctx, 10)
	s.NoError(err)
	s.Empty(reports)
}
