// Package stats computes effective combat statistics. Resolution is a pure
// fold over a character's active effects, so callers can re-run it after any
// mutation and always land on the same numbers.
package stats

import (
	"github.com/oakhaven/emberquest/internal/entities"
)

// kindOrder fixes the fold order. Class and passive layers form the
// character's lasting shape, equipment sits on top of that, and temporary
// status effects apply last so they scale everything beneath them.
var kindOrder = []entities.EffectKind{
	entities.EffectClass,
	entities.EffectPassive,
	entities.EffectEquipment,
	entities.EffectStatus,
}

var resolvedStats = []entities.Stat{
	entities.StatMaxHP,
	entities.StatAttackPower,
	entities.StatCritChance,
}

// Resolve folds the given effects over the base stats and returns the
// effective values. Expired instances and marker effects contribute nothing.
// Integer stats truncate toward zero after the fold.
func Resolve(base entities.Stats, effects []entities.ActiveEffect) entities.Stats {
	out := base
	for _, stat := range resolvedStats {
		total := base.Get(stat)
		for _, kind := range kindOrder {
			for _, eff := range effects {
				if eff.Kind != kind || eff.Stat != stat || eff.Expired() {
					continue
				}
				switch eff.Op {
				case entities.OpAdd:
					total += eff.Magnitude
				case entities.OpMultiply:
					total *= 1 + eff.Magnitude
				}
			}
		}
		out.Set(stat, total)
	}
	return out
}

// ResolveCharacter resolves a character's own effect list.
func ResolveCharacter(c *entities.Character) entities.Stats {
	return Resolve(c.Base, c.Effects)
}

// Refresh resolves the character and clamps current HP to the effective
// maximum, which can have shrunk when an effect expired or equipment came
// off. It returns the effective stats so callers avoid a second resolve.
func Refresh(c *entities.Character) entities.Stats {
	eff := ResolveCharacter(c)
	if c.HP > eff.MaxHP {
		c.HP = eff.MaxHP
	}
	return eff
}
