package effects_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/effects"
)

type RegistryTestSuite struct {
	suite.Suite

	registry *effects.Registry
}

func (s *RegistryTestSuite) SetupTest() {
	registry, err := effects.NewRegistry(&effects.Config{
		Templates: []entities.EffectTemplate{
			{
				ID:        "warrior_might",
				Kind:      entities.EffectClass,
				Stat:      entities.StatAttackPower,
				Op:        entities.OpAdd,
				Magnitude: 5,
			},
			{
				ID:        "iron_skin",
				Kind:      entities.EffectPassive,
				Stat:      entities.StatMaxHP,
				Op:        entities.OpMultiply,
				Magnitude: 0.1,
			},
			{
				ID:        "battle_fury",
				Kind:      entities.EffectStatus,
				Stat:      entities.StatAttackPower,
				Op:        entities.OpAdd,
				Magnitude: 3,
				Duration:  4,
			},
			{
				ID:   entities.EffectIDStun,
				Kind: entities.EffectStatus,
				// marker effect, no stat
				Duration: 2,
			},
		},
	})
	s.Require().NoError(err)
	s.registry = registry
}

func (s *RegistryTestSuite) TestGet() {
	tpl, err := s.registry.Get("warrior_might")
	s.Require().NoError(err)
	s.Equal(entities.EffectClass, tpl.Kind)
	s.Equal(entities.StatAttackPower, tpl.Stat)
}

func (s *RegistryTestSuite) TestGetUnknownID() {
	_, err := s.registry.Get("no_such_effect")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestInstantiatePermanentKinds() {
	eff, err := s.registry.Instantiate("warrior_might", "warrior")
	s.Require().NoError(err)
	s.True(eff.Permanent)
	s.Equal("warrior", eff.Source)
	s.Equal("warrior_might", eff.TemplateID)
	s.False(eff.Expired())
}

func (s *RegistryTestSuite) TestInstantiateStatusCarriesDuration() {
	eff, err := s.registry.Instantiate("battle_fury", "berserk_potion")
	s.Require().NoError(err)
	s.False(eff.Permanent)
	s.Equal(4, eff.Remaining)
	s.False(eff.Expired())

	eff.Remaining = 0
	s.True(eff.Expired())
}

func (s *RegistryTestSuite) TestInstancesAreIndependent() {
	first, err := s.registry.Instantiate("battle_fury", "a")
	s.Require().NoError(err)
	second, err := s.registry.Instantiate("battle_fury", "b")
	s.Require().NoError(err)

	first.Remaining = 1
	s.Equal(4, second.Remaining)
}

func (s *RegistryTestSuite) TestConfigRejectsStatusWithoutDuration() {
	_, err := effects.NewRegistry(&effects.Config{
		Templates: []entities.EffectTemplate{
			{ID: "bad", Kind: entities.EffectStatus, Stat: entities.StatMaxHP, Op: entities.OpAdd},
		},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestConfigRejectsDuplicateIDs() {
	_, err := effects.NewRegistry(&effects.Config{
		Templates: []entities.EffectTemplate{
			{ID: "dup", Kind: entities.EffectPassive, Stat: entities.StatMaxHP, Op: entities.OpAdd, Magnitude: 1},
			{ID: "dup", Kind: entities.EffectPassive, Stat: entities.StatMaxHP, Op: entities.OpAdd, Magnitude: 2},
		},
	})
	s.Require().Error(err)
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
