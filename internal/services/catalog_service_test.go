package services_test

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/kanaflash/internal/charlist"
	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/repository"
	"github.com/vytor/kanaflash/internal/repository/sqlite"
	"github.com/vytor/kanaflash/internal/services"
	"github.com/vytor/kanaflash/internal/testutil"
	"github.com/vytor/kanaflash/internal/testutil/mocks"
)

type CatalogServiceSuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.CharacterRepository
	queue *mocks.MockImportQueue
	svc   services.CatalogService
}

func (s *CatalogServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCharacterRepository(s.db)
	s.queue = new(mocks.MockImportQueue)
	s.svc = services.NewCatalogService(s.repo, s.queue, config.DefaultDatasets())
}

func (s *CatalogServiceSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CatalogServiceSuite) TestDatasets_ReportsImportState() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(46)))
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "kanji", []models.CharacterEntry{
		models.NewKanji("一", "いち", "one", "Numbers"),
		models.NewKanji("山", "やま", "mountain", ""),
	}))

	infos, err := s.svc.Datasets(ctx)
	s.Require().NoError(err)
	s.Require().Len(infos, 3)

	s.Assert().Equal("hiragana", infos[0].Name)
	s.Assert().True(infos[0].Imported)
	s.Assert().Equal(46, infos[0].Count)
	s.Assert().Equal(46, infos[0].Kana)
	s.Assert().Zero(infos[0].Kanji)
	s.Assert().NotNil(infos[0].ImportedAt)

	s.Assert().Equal("katakana", infos[1].Name)
	s.Assert().False(infos[1].Imported)
	s.Assert().Nil(infos[1].ImportedAt)

	s.Assert().Equal([]string{"Numbers", ""}, infos[2].Categories)
	s.Assert().Equal(2, infos[2].Kanji)
	s.Assert().Zero(infos[2].Kana)
}

func (s *CatalogServiceSuite) TestList() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(46)))

	l, err := s.svc.List(ctx, "hiragana", "")
	s.Require().NoError(err)
	s.Assert().Equal(46, l.Count)
	s.Assert().Equal(config.LayoutKana, l.Layout)
	// 46 basic kana: 40 regular in 8 rows, then ya/yu/yo and wa/wo/n.
	s.Require().Len(l.Groups, 10)
	s.Assert().Len(l.Groups[7].Entries, 5)
	s.Assert().Equal(3, l.Groups[8].Columns)
	s.Assert().Equal("ya", l.Groups[8].Entries[0].Romaji)
	s.Assert().Equal("n", l.Groups[9].Entries[2].Romaji)
}

func (s *CatalogServiceSuite) TestList_KanjiCategory() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "kanji", []models.CharacterEntry{
		models.NewKanji("一", "いち", "one", "Numbers"),
		models.NewKanji("日", "にち", "day", "Time"),
		models.NewKanji("二", "に", "two", "Numbers"),
	}))

	l, err := s.svc.List(ctx, "kanji", "Numbers")
	s.Require().NoError(err)
	s.Require().Len(l.Groups, 1)
	s.Assert().Equal("Numbers", l.Groups[0].Heading)
	s.Assert().Len(l.Groups[0].Entries, 2)
	s.Assert().Equal(charlist.RowWidth, l.Groups[0].Columns)
}

func (s *CatalogServiceSuite) TestList_Errors() {
	ctx := context.Background()

	_, err := s.svc.List(ctx, "hangul", "")
	s.Assert().True(errors.IsNotFoundError(err))

	_, err = s.svc.List(ctx, "katakana", "")
	s.Assert().True(errors.IsConflictError(err), "not yet imported")
}

func (s *CatalogServiceSuite) TestReimport() {
	ctx := context.Background()
	s.queue.On("EnqueueImport", "kanji").Return(nil).Once()
	s.queue.On("EnqueueImport", "katakana").Return(stderrors.New("queue closed")).Once()

	s.Assert().NoError(s.svc.Reimport(ctx, "kanji"))
	s.Assert().True(errors.IsNotFoundError(s.svc.Reimport(ctx, "hangul")))
	s.Assert().True(errors.HasCode(s.svc.Reimport(ctx, "katakana"), errors.ErrCodeInternal))
	s.queue.AssertExpectations(s.T())
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}
