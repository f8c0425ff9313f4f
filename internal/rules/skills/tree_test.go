package skills_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
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

type TreeTestSuite struct {
	suite.Suite

	tree   *skills.Tree
	player *entities.Player
}

func (s *TreeTestSuite) SetupTest() {
	registry, err := effects.NewRegistry(&effects.Config{
		Templates: []entities.EffectTemplate{
			{ID: "toughness_bonus", Kind: entities.EffectPassive, Stat: entities.StatMaxHP, Op: entities.OpAdd, Magnitude: 20},
		},
	})
	s.Require().NoError(err)

	catalog := &fakeCatalog{
		skills: []*entities.Skill{
			{ID: "toughness", Name: "Toughness", Kind: entities.SkillPassive, Cost: 1, EffectIDs: []string{"toughness_bonus"}},
			{
				ID:   "power_strike",
				Name: "Power Strike",
				Kind: entities.SkillActive,
				Cost: 1,
				Requirements: []entities.Requirement{
					{Type: entities.RequirementSkill, SkillID: "toughness"},
				},
				Combat: &entities.CombatAbility{DamageBonus: 5, Cooldown: 3},
			},
			{
				ID:   "whirlwind",
				Name: "Whirlwind",
				Kind: entities.SkillActive,
				Cost: 2,
				Requirements: []entities.Requirement{
					{Type: entities.RequirementLevel, Level: 12},
				},
				Combat: &entities.CombatAbility{DamageBonus: 8, Cooldown: 4},
			},
			{ID: "arcane_bolt", Name: "Arcane Bolt", Kind: entities.SkillActive, Cost: 1, Combat: &entities.CombatAbility{DamageBonus: 6, Cooldown: 2}},
		},
		classes: []*entities.Class{
			{ID: "warrior", SkillPool: []string{"power_strike", "whirlwind"}},
			{ID: "mage", SkillPool: []string{"arcane_bolt"}},
		},
	}

	s.tree, err = skills.NewTree(&skills.Config{Catalog: catalog, Registry: registry})
	s.Require().NoError(err)

	s.player = &entities.Player{
		Character: entities.Character{
			ID:   "hero",
			Name: "Hero",
			HP:   50,
			Base: entities.Stats{MaxHP: 50, AttackPower: 10},
		},
		Level:       5,
		SkillPoints: 2,
	}
}

func (s *TreeTestSuite) TestLearnPassiveAppliesEffects() {
	err := s.tree.Learn(s.player, "toughness")
	s.Require().NoError(err)

	s.True(s.player.HasLearned("toughness"))
	s.Equal(1, s.player.SkillPoints)
	s.Require().Len(s.player.Effects, 1)
	s.Equal("toughness", s.player.Effects[0].Source)
}

func (s *TreeTestSuite) TestLearnActiveRegistersAbility() {
	s.Require().NoError(s.tree.Learn(s.player, "toughness"))
	s.Require().NoError(s.tree.Learn(s.player, "power_strike"))

	ability := s.player.Ability("power_strike")
	s.Require().NotNil(ability)
	s.Equal(0, ability.Cooldown)
	s.Equal(3, ability.MaxCooldown)
}

func (s *TreeTestSuite) TestLearnUnknownSkill() {
	err := s.tree.Learn(s.player, "fireball")
	s.True(errors.IsNotFound(err))
}

func (s *TreeTestSuite) TestLearnTwice() {
	s.Require().NoError(s.tree.Learn(s.player, "toughness"))
	err := s.tree.Learn(s.player, "toughness")
	s.True(errors.IsAlreadyLearned(err))
	s.Equal(1, s.player.SkillPoints)
}

func (s *TreeTestSuite) TestLearnWithoutPoints() {
	s.player.SkillPoints = 0
	err := s.tree.Learn(s.player, "toughness")
	s.True(errors.IsInsufficientPoints(err))
	s.False(s.player.HasLearned("toughness"))
}

func (s *TreeTestSuite) TestLearnBelowLevelRequirement() {
	s.player.SkillPoints = 5
	err := s.tree.Learn(s.player, "whirlwind")
	s.True(errors.IsLevelTooLow(err))
}

func (s *TreeTestSuite) TestLearnMissingSkillPrerequisite() {
	err := s.tree.Learn(s.player, "power_strike")
	s.True(errors.IsMissingPrerequisite(err))
}

func (s *TreeTestSuite) TestCanLearnCheckPrecedence() {
	// Level shortfall outranks every later failure, learned-state included.
	s.player.LearnedSkills = []string{"whirlwind"}
	s.player.SkillPoints = 0
	err := s.tree.CanLearn(s.player, "whirlwind")
	s.True(errors.IsLevelTooLow(err))

	// Missing prerequisite outranks already-learned and missing points.
	s.player.LearnedSkills = []string{"power_strike"}
	err = s.tree.CanLearn(s.player, "power_strike")
	s.True(errors.IsMissingPrerequisite(err))

	// With requirements met, already-learned outranks missing points.
	s.player.LearnedSkills = []string{"toughness"}
	err = s.tree.CanLearn(s.player, "toughness")
	s.True(errors.IsAlreadyLearned(err))
}

func (s *TreeTestSuite) TestClassPoolClosesAfterChoice() {
	// Classless players see everything.
	s.Require().NoError(s.tree.CanLearn(s.player, "arcane_bolt"))

	s.player.ClassID = "warrior"
	err := s.tree.CanLearn(s.player, "arcane_bolt")
	s.True(errors.IsWrongClass(err))

	// Class-agnostic skills stay open.
	s.Require().NoError(s.tree.CanLearn(s.player, "toughness"))
}

func (s *TreeTestSuite) TestLearnFreeSkipsCostAndChecks() {
	s.player.SkillPoints = 0
	s.player.ClassID = "mage"
	err := s.tree.LearnFree(s.player, "arcane_bolt")
	s.Require().NoError(err)
	s.True(s.player.HasLearned("arcane_bolt"))
	s.Equal(0, s.player.SkillPoints)

	// Repeat grant is a no-op rather than a duplicate.
	s.Require().NoError(s.tree.LearnFree(s.player, "arcane_bolt"))
	s.Len(s.player.Abilities, 1)
}

func (s *TreeTestSuite) TestLearnable() {
	learnable := s.tree.Learnable(s.player)
	s.Require().Len(learnable, 2)
	s.Equal("toughness", learnable[0].ID)
	s.Equal("arcane_bolt", learnable[1].ID)
}

func TestTreeTestSuite(t *testing.T) {
	suite.Run(t, new(TreeTestSuite))
}
