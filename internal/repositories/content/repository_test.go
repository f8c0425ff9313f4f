package content_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/repositories/content"
)

type RepositoryTestSuite struct {
	suite.Suite

	repo *content.Repository
}

func (s *RepositoryTestSuite) SetupTest() {
	repo, err := content.NewRepository(&content.Config{
		Path: filepath.Join("testdata", "world.json"),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositoryTestSuite) TestRecordsCarryTheirKey() {
	item, err := s.repo.GetItem("healing_potion")
	s.Require().NoError(err)
	s.Equal("healing_potion", item.ID)
	s.Equal(entities.ItemPotion, item.Kind)

	loc, err := s.repo.GetLocation("village")
	s.Require().NoError(err)
	s.Equal("cellar", loc.Exits[entities.North])
}

func (s *RepositoryTestSuite) TestGetUnknownID() {
	_, err := s.repo.GetItem("excalibur")
	s.True(errors.IsNotFound(err))

	_, err = s.repo.GetMonster("dragon")
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestListOrderIsStable() {
	skills := s.repo.ListSkills()
	s.Require().Len(skills, 2)
	s.Equal("power_strike", skills[0].ID)
	s.Equal("toughness", skills[1].ID)
}

func (s *RepositoryTestSuite) TestEffectTemplates() {
	templates := s.repo.EffectTemplates()
	s.Require().Len(templates, 3)
	s.Equal("stun", templates[0].ID)
}

func (s *RepositoryTestSuite) TestNewMonster() {
	m, err := s.repo.NewMonster("cave_rat", "cave_rat:1")
	s.Require().NoError(err)
	s.Equal("cave_rat:1", m.ID)
	s.Equal("cave_rat", m.TemplateID)
	s.Equal(10, m.HP)
	s.Equal(15, m.XPReward)
	s.Equal("clear_the_cellar", m.CompletesQuestID)

	// Instances do not share drop tables.
	other, err := s.repo.NewMonster("cave_rat", "cave_rat:2")
	s.Require().NoError(err)
	m.Drops[0].Chance = 1
	s.Equal(0.3, other.Drops[0].Chance)
}

func (s *RepositoryTestSuite) TestNewPlayer() {
	p := s.repo.NewPlayer(100)
	s.Equal("Adventurer", p.Name)
	s.Equal(50, p.HP)
	s.Equal(1, p.Level)
	s.Equal(100, p.XPToNext)
	s.Equal("village", p.LocationID)
	s.Equal(1, p.ItemCount("healing_potion"))
	s.True(p.Discovered["village"])
}

func (s *RepositoryTestSuite) TestParseRejectsDanglingReferences() {
	_, err := content.Parse([]byte(`{
		"locations": {
			"void": {"name": "Void", "kind": "room", "exits": {"north": "nowhere"}}
		},
		"player": {"name": "x", "max_hp": 10, "attack_power": 1, "start_location_id": "void"}
	}`))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "nowhere")
}

func (s *RepositoryTestSuite) TestParseRejectsMalformedJSON() {
	_, err := content.Parse([]byte(`{"items": [`))
	s.Require().Error(err)
	s.Equal(errors.CodeDataLoss, errors.GetCode(err))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
