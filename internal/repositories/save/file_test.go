package save_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/pkg/clock"
	"github.com/oakhaven/emberquest/internal/repositories/save"
)

type FileRepositoryTestSuite struct {
	suite.Suite

	ctx  context.Context
	dir  string
	repo save.Repository
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()

	repo, err := save.NewFile(&save.FileConfig{
		Dir:   s.dir,
		Clock: &clock.Fixed{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *FileRepositoryTestSuite) TestSaveAndLoad() {
	snapshot := testSnapshot()
	_, err := s.repo.Save(s.ctx, save.SaveInput{Slot: "slot1", Snapshot: snapshot})
	s.Require().NoError(err)

	loaded, err := s.repo.Load(s.ctx, save.LoadInput{Slot: "slot1"})
	s.Require().NoError(err)
	s.Equal(snapshot, loaded.Snapshot)

	// One readable JSON file per slot.
	_, err = os.Stat(filepath.Join(s.dir, "slot1.json"))
	s.Require().NoError(err)
}

func (s *FileRepositoryTestSuite) TestLoadMissingSlot() {
	_, err := s.repo.Load(s.ctx, save.LoadInput{Slot: "empty"})
	s.True(errors.IsNotFound(err))
}

func (s *FileRepositoryTestSuite) TestSlotNameCannotEscapeDir() {
	_, err := s.repo.Save(s.ctx, save.SaveInput{Slot: "../evil", Snapshot: testSnapshot()})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Load(s.ctx, save.LoadInput{Slot: `over\there`})
	s.True(errors.IsInvalidArgument(err))
}

func (s *FileRepositoryTestSuite) TestDeleteAndList() {
	_, err := s.repo.Save(s.ctx, save.SaveInput{Slot: "alpha", Snapshot: testSnapshot()})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, save.SaveInput{Slot: "beta", Snapshot: testSnapshot()})
	s.Require().NoError(err)

	out, err := s.repo.List(s.ctx, save.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Slots, 2)
	s.Equal("alpha", out.Slots[0].Slot)

	_, err = s.repo.Delete(s.ctx, save.DeleteInput{Slot: "alpha"})
	s.Require().NoError(err)

	out, err = s.repo.List(s.ctx, save.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Slots, 1)
	s.Equal("beta", out.Slots[0].Slot)
}

func (s *FileRepositoryTestSuite) TestCorruptSaveReportsDataLoss() {
	path := filepath.Join(s.dir, "slot1.json")
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.repo.Load(s.ctx, save.LoadInput{Slot: "slot1"})
	s.Equal(errors.CodeDataLoss, errors.GetCode(err))
}

func TestFileRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}
