package classes_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/classes"
	"github.com/oakhaven/emberquest/internal/rules/effects"
	"github.com/oakhaven/emberquest/internal/rules/skills"
)

type fakeCatalog struct {
	skills  []*entities.Skill
	classes []*entities.Class
}

func (f *fakeCatalog) GetSkill(id string) (*entities.Skill, error) {
	for _, s := range f.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.NotFoundf("skill %q not found", id)
}

func (f *fakeCatalog) GetClass(id string) (*entities.Class, error) {
	for _, c := range f.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.NotFoundf("class %q not found", id)
}

func (f *fakeCatalog) ListSkills() []*entities.Skill   { return f.skills }
func (f *fakeCatalog) ListClasses() []*entities.Class { return f.classes }

type EngineTestSuite struct {
	suite.Suite

	engine *classes.Engine
	player *entities.Player
}

func (s *EngineTestSuite) SetupTest() {
	registry, err := effects.NewRegistry(&effects.Config{
		Templates: []entities.EffectTemplate{
			{ID: "warrior_vigor", Kind: entities.EffectClass, Stat: entities.StatMaxHP, Op: entities.OpAdd, Magnitude: 20},
			{ID: "warrior_might", Kind: entities.EffectClass, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 5},
		},
	})
	s.Require().NoError(err)

	catalog := &fakeCatalog{
		skills: []*entities.Skill{
			{ID: "power_strike", Kind: entities.SkillActive, Cost: 1, Combat: &entities.CombatAbility{DamageBonus: 5, Cooldown: 3}},
		},
		classes: []*entities.Class{
			{
				ID:             "warrior",
				Name:           "Warrior",
				BonusEffectIDs: []string{"warrior_vigor", "warrior_might"},
				StartingSkills: []string{"power_strike"},
				SkillPool:      []string{"power_strike"},
			},
			{ID: "mage", Name: "Mage"},
		},
	}

	tree, err := skills.NewTree(&skills.Config{Catalog: catalog, Registry: registry})
	s.Require().NoError(err)

	s.engine, err = classes.NewEngine(&classes.Config{
		Catalog:        catalog,
		Registry:       registry,
		Tree:           tree,
		ThresholdLevel: 10,
	})
	s.Require().NoError(err)

	s.player = &entities.Player{
		Character: entities.Character{
			ID:   "hero",
			HP:   80,
			Base: entities.Stats{MaxHP: 80, AttackPower: 12},
		},
		Level:       10,
		SkillPoints: 0,
	}
}

func (s *EngineTestSuite) TestCheckForcedChoiceAtThreshold() {
	prompt := s.engine.CheckForcedChoice(s.player)
	s.Require().NotNil(prompt)
	s.Len(prompt.Classes, 2)

	// Idempotent until the choice is made.
	again := s.engine.CheckForcedChoice(s.player)
	s.Require().NotNil(again)
	s.Equal(prompt.Classes, again.Classes)
}

func (s *EngineTestSuite) TestCheckForcedChoiceBelowThreshold() {
	s.player.Level = 9
	s.Nil(s.engine.CheckForcedChoice(s.player))
}

func (s *EngineTestSuite) TestCheckForcedChoiceAfterAssignment() {
	s.Require().NoError(s.engine.Assign(s.player, "warrior"))
	s.Nil(s.engine.CheckForcedChoice(s.player))
}

func (s *EngineTestSuite) TestAssignGrantsBonusesAndSkills() {
	err := s.engine.Assign(s.player, "warrior")
	s.Require().NoError(err)

	s.Equal("warrior", s.player.ClassID)
	s.True(s.player.HasLearned("power_strike"))
	s.Equal(0, s.player.SkillPoints) // starting skills cost nothing
	s.NotNil(s.player.Ability("power_strike"))

	// Class effects land on the effective stats.
	s.Len(s.player.Effects, 2)
}

func (s *EngineTestSuite) TestAssignTwice() {
	s.Require().NoError(s.engine.Assign(s.player, "warrior"))
	err := s.engine.Assign(s.player, "mage")
	s.True(errors.IsAlreadyAssigned(err))
	s.Equal("warrior", s.player.ClassID)
}

func (s *EngineTestSuite) TestAssignUnknownClass() {
	err := s.engine.Assign(s.player, "bard")
	s.True(errors.IsNotFound(err))
	s.False(s.player.HasClass())
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
