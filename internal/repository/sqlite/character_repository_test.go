package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/repository"
	"github.com/vytor/kanaflash/internal/repository/sqlite"
	"github.com/vytor/kanaflash/internal/testutil"
)

type CharacterRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CharacterRepository
}

func (s *CharacterRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCharacterRepository(s.db)
}

func (s *CharacterRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func kanjiEntries() []models.CharacterEntry {
	return []models.CharacterEntry{
		models.NewKanji("一", "いち", "one", "Numbers"),
		models.NewKanji("日", "にち", "day", "Time"),
		models.NewKanji("二", "に", "two", "Numbers"),
		models.NewKanji("山", "やま", "mountain", ""),
		models.NewKanji("月", "つき", "moon", "Time"),
	}
}

func (s *CharacterRepositorySuite) TestReplaceDatasetAndList() {
	ctx := context.Background()

	kana := testutil.HiraganaEntries(10)
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", kana))

	got, err := s.repo.List(ctx, models.CharacterFilter{Dataset: "hiragana"})
	s.Require().NoError(err)
	s.Assert().Equal(kana, got, "entries keep load order")
}

func (s *CharacterRepositorySuite) TestReplaceDataset_Replaces() {
	ctx := context.Background()

	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(20)))
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(5)))

	count, err := s.repo.Count(ctx, models.CharacterFilter{Dataset: "hiragana"})
	s.Require().NoError(err)
	s.Assert().Equal(5, count)

	datasets, err := s.repo.Datasets(ctx)
	s.Require().NoError(err)
	s.Require().Len(datasets, 1)
	s.Assert().Equal("hiragana", datasets[0].Name)
	s.Assert().Equal(5, datasets[0].Count)
	s.Assert().False(datasets[0].ImportedAt.IsZero())
}

func (s *CharacterRepositorySuite) TestReplaceDataset_Empty() {
	ctx := context.Background()

	s.Require().NoError(s.repo.ReplaceDataset(ctx, "empty", nil))

	got, err := s.repo.List(ctx, models.CharacterFilter{Dataset: "empty"})
	s.Require().NoError(err)
	s.Assert().Empty(got)

	datasets, err := s.repo.Datasets(ctx)
	s.Require().NoError(err)
	s.Require().Len(datasets, 1)
	s.Assert().Equal(0, datasets[0].Count)
}

func (s *CharacterRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(10)))
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "kanji", kanjiEntries()))

	tests := []struct {
		name     string
		filter   models.CharacterFilter
		expected int
	}{
		{name: "all", filter: models.CharacterFilter{}, expected: 15},
		{name: "by dataset", filter: models.CharacterFilter{Dataset: "kanji"}, expected: 5},
		{name: "by kind", filter: models.CharacterFilter{Kind: models.KindKana}, expected: 10},
		{name: "by category", filter: models.CharacterFilter{Dataset: "kanji", Category: "Time"}, expected: 2},
		{name: "by dataset and kind", filter: models.CharacterFilter{Dataset: "kanji", Kind: models.KindKana}, expected: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.repo.List(ctx, tt.filter)
			s.Require().NoError(err)
			s.Assert().Len(got, tt.expected)

			count, err := s.repo.Count(ctx, tt.filter)
			s.Require().NoError(err)
			s.Assert().Equal(tt.expected, count)
		})
	}
}

func (s *CharacterRepositorySuite) TestList_KeepsLoadOrder() {
	ctx := context.Background()
	kana := testutil.HiraganaEntries(10)
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", kana))

	got, err := s.repo.List(ctx, models.CharacterFilter{Dataset: "hiragana", Kind: models.KindKana})
	s.Require().NoError(err)
	s.Assert().Equal(kana, got)
}

func (s *CharacterRepositorySuite) TestCategories_FirstSeenOrder() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "kanji", kanjiEntries()))

	got, err := s.repo.Categories(ctx, "kanji")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"Numbers", "Time", ""}, got)
}

func (s *CharacterRepositorySuite) TestDatasets_Sorted() {
	ctx := context.Background()
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "katakana", testutil.HiraganaEntries(3)))
	s.Require().NoError(s.repo.ReplaceDataset(ctx, "hiragana", testutil.HiraganaEntries(4)))

	datasets, err := s.repo.Datasets(ctx)
	s.Require().NoError(err)
	s.Require().Len(datasets, 2)
	s.Assert().Equal("hiragana", datasets[0].Name)
	s.Assert().Equal("katakana", datasets[1].Name)
}

func TestCharacterRepositorySuite(t *testing.T) {
	suite.Run(t, new(CharacterRepositorySuite))
}
