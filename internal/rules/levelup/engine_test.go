package levelup_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/levelup"
)

type EngineTestSuite struct {
	suite.Suite

	engine *levelup.Engine
	player *entities.Player
}

func (s *EngineTestSuite) SetupTest() {
	engine, err := levelup.NewEngine(&levelup.Config{
		Progression: config.Default().Progression,
	})
	s.Require().NoError(err)
	s.engine = engine

	s.player = &entities.Player{
		Character: entities.Character{
			ID:   "hero",
			HP:   40,
			Base: entities.Stats{MaxHP: 50, AttackPower: 10, CritChance: 0.05},
		},
		Level:    1,
		XPToNext: engine.InitialThreshold(),
	}
}

func (s *EngineTestSuite) TestAddXPBelowThreshold() {
	events := s.engine.AddXP(s.player, 99)
	s.Empty(events)
	s.Equal(99, s.player.XP)
	s.Equal(1, s.player.Level)
}

func (s *EngineTestSuite) TestAddXPCrossesThreshold() {
	events := s.engine.AddXP(s.player, 120)
	s.Require().Len(events, 1)
	s.Equal(2, events[0].TargetLevel)

	// Level stays put until the event resolves.
	s.Equal(1, s.player.Level)
	s.Equal(20, s.player.XP)
	s.Equal(150, s.player.XPToNext)
}

func (s *EngineTestSuite) TestAddXPCrossesSeveralThresholds() {
	// 100 + 150 = 250 clears two levels with 10 left over.
	events := s.engine.AddXP(s.player, 260)
	s.Require().Len(events, 2)
	s.Equal(2, events[0].TargetLevel)
	s.Equal(3, events[1].TargetLevel)
	s.Equal(10, s.player.XP)
	s.Equal(225, s.player.XPToNext)
}

func (s *EngineTestSuite) TestResolveAppliesGainsAndChoice() {
	events := s.engine.AddXP(s.player, 100)
	s.Require().Len(events, 1)

	err := events[0].Resolve(levelup.ChoiceMaxHP)
	s.Require().NoError(err)

	s.Equal(2, s.player.Level)
	s.Equal(65, s.player.Base.MaxHP)       // +5 automatic, +10 chosen
	s.Equal(11, s.player.Base.AttackPower) // +1 automatic
	s.Equal(1, s.player.SkillPoints)
	s.Equal(65, s.player.HP) // full heal
	s.True(events[0].Resolved())
}

func (s *EngineTestSuite) TestResolveAttackChoice() {
	events := s.engine.AddXP(s.player, 100)
	s.Require().NoError(events[0].Resolve(levelup.ChoiceAttack))
	s.Equal(13, s.player.Base.AttackPower) // +1 automatic, +2 chosen
	s.Equal(55, s.player.Base.MaxHP)
}

func (s *EngineTestSuite) TestResolveCritChoice() {
	events := s.engine.AddXP(s.player, 100)
	s.Require().NoError(events[0].Resolve(levelup.ChoiceCrit))
	s.InDelta(0.10, s.player.Base.CritChance, 1e-9)
}

func (s *EngineTestSuite) TestResolveTwice() {
	events := s.engine.AddXP(s.player, 100)
	s.Require().NoError(events[0].Resolve(levelup.ChoiceMaxHP))

	err := events[0].Resolve(levelup.ChoiceMaxHP)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(2, s.player.Level)
}

func (s *EngineTestSuite) TestResolveOutOfOrder() {
	events := s.engine.AddXP(s.player, 260)
	s.Require().Len(events, 2)

	err := events[1].Resolve(levelup.ChoiceMaxHP)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(1, s.player.Level)

	s.Require().NoError(events[0].Resolve(levelup.ChoiceMaxHP))
	s.Require().NoError(events[1].Resolve(levelup.ChoiceAttack))
	s.Equal(3, s.player.Level)
}

func (s *EngineTestSuite) TestResolveUnknownChoice() {
	events := s.engine.AddXP(s.player, 100)
	err := events[0].Resolve(levelup.Choice("luck"))
	s.True(errors.IsInvalidArgument(err))
	s.False(events[0].Resolved())

	// Still resolvable with a valid choice.
	s.Require().NoError(events[0].Resolve(levelup.ChoiceMaxHP))
}

func (s *EngineTestSuite) TestAddXPIgnoresNonPositive() {
	s.Empty(s.engine.AddXP(s.player, 0))
	s.Empty(s.engine.AddXP(s.player, -10))
	s.Equal(0, s.player.XP)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
