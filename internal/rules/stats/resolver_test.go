package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/rules/stats"
)

func baseStats() entities.Stats {
	return entities.Stats{MaxHP: 100, AttackPower: 10, CritChance: 0.05}
}

func TestResolveNoEffects(t *testing.T) {
	got := stats.Resolve(baseStats(), nil)
	assert.Equal(t, baseStats(), got)
}

func TestResolveAddsSum(t *testing.T) {
	effects := []entities.ActiveEffect{
		{TemplateID: "a", Kind: entities.EffectPassive, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 3, Permanent: true},
		{TemplateID: "b", Kind: entities.EffectPassive, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 2, Permanent: true},
	}
	got := stats.Resolve(baseStats(), effects)
	assert.Equal(t, 15, got.AttackPower)
	assert.Equal(t, 100, got.MaxHP)
}

func TestResolveKindOrder(t *testing.T) {
	// The status multiplier must see the class bonus even though it sits
	// earlier in the slice: (10 + 5) * 1.5, not 10*1.5 + 5.
	effects := []entities.ActiveEffect{
		{TemplateID: "fury", Kind: entities.EffectStatus, Stat: entities.StatAttackPower, Op: entities.OpMultiply, Magnitude: 0.5, Remaining: 3},
		{TemplateID: "might", Kind: entities.EffectClass, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 5, Permanent: true},
	}
	got := stats.Resolve(baseStats(), effects)
	assert.Equal(t, 22, got.AttackPower) // 15 * 1.5 = 22.5, truncated
}

func TestResolveSkipsExpiredAndMarkers(t *testing.T) {
	effects := []entities.ActiveEffect{
		{TemplateID: "spent", Kind: entities.EffectStatus, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 50, Remaining: 0},
		{TemplateID: entities.EffectIDStun, Kind: entities.EffectStatus, Remaining: 2},
	}
	got := stats.Resolve(baseStats(), effects)
	assert.Equal(t, baseStats(), got)
}

func TestResolveCritChance(t *testing.T) {
	effects := []entities.ActiveEffect{
		{TemplateID: "keen", Kind: entities.EffectPassive, Stat: entities.StatCritChance, Op: entities.OpAdd, Magnitude: 0.05, Permanent: true},
	}
	got := stats.Resolve(baseStats(), effects)
	assert.InDelta(t, 0.10, got.CritChance, 1e-9)
}

func TestResolveIsPure(t *testing.T) {
	base := baseStats()
	effects := []entities.ActiveEffect{
		{TemplateID: "might", Kind: entities.EffectClass, Stat: entities.StatAttackPower, Op: entities.OpAdd, Magnitude: 5, Permanent: true},
	}
	first := stats.Resolve(base, effects)
	second := stats.Resolve(base, effects)
	assert.Equal(t, first, second)
	assert.Equal(t, baseStats(), base)
}

func TestRefreshClampsHP(t *testing.T) {
	c := &entities.Character{
		ID:   "hero",
		HP:   120,
		Base: entities.Stats{MaxHP: 100, AttackPower: 10},
	}
	eff := stats.Refresh(c)
	assert.Equal(t, 100, eff.MaxHP)
	assert.Equal(t, 100, c.HP)
}
