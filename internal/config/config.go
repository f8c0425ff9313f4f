// Package config holds the tunable rule constants for the game engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Game holds every balance knob the engines read. Content (items, monsters,
// skills) lives in the content repository; this is only the arithmetic.
type Game struct {
	Combat      CombatConfig      `yaml:"combat"`
	Progression ProgressionConfig `yaml:"progression"`
	Economy     EconomyConfig     `yaml:"economy"`
}

// CombatConfig tunes encounter resolution.
type CombatConfig struct {
	// FleeChance is the probability in [0,1] that a retreat succeeds.
	FleeChance float64 `yaml:"flee_chance"`
	// CritMultiplier scales damage on a critical hit.
	CritMultiplier float64 `yaml:"crit_multiplier"`
	// VolcanicHazardDamage is dealt each combat turn in volcanic terrain
	// unless the player carries fireproof armor or fire resistance.
	VolcanicHazardDamage int `yaml:"volcanic_hazard_damage"`
}

// ProgressionConfig tunes leveling and class choice.
type ProgressionConfig struct {
	// XPBase is the XP required to clear level 1.
	XPBase int `yaml:"xp_base"`
	// XPGrowth multiplies the requirement after each level.
	XPGrowth float64 `yaml:"xp_growth"`
	// ClassThresholdLevel is the level at which a class must be chosen.
	ClassThresholdLevel int `yaml:"class_threshold_level"`
	// Automatic per-level gains, applied when a level-up event resolves.
	LevelMaxHPGain   int `yaml:"level_max_hp_gain"`
	LevelAttackGain  int `yaml:"level_attack_gain"`
	LevelSkillPoints int `yaml:"level_skill_points"`
}

// EconomyConfig tunes merchant pricing.
type EconomyConfig struct {
	// ScarcityStep raises an item's price by this fraction of its base
	// value for every unit of missing stock.
	ScarcityStep float64 `yaml:"scarcity_step"`
	// RestockInterval is the number of world turns between merchant
	// restocks; each restock recovers one unit of each depleted item.
	RestockInterval int `yaml:"restock_interval"`
	// SellRatio is the fraction of an item's value a merchant pays.
	SellRatio float64 `yaml:"sell_ratio"`
}

// Default returns the shipped game balance.
func Default() Game {
	return Game{
		Combat: CombatConfig{
			FleeChance:           0.5,
			CritMultiplier:       2.0,
			VolcanicHazardDamage: 3,
		},
		Progression: ProgressionConfig{
			XPBase:              100,
			XPGrowth:            1.5,
			ClassThresholdLevel: 10,
			LevelMaxHPGain:      5,
			LevelAttackGain:     1,
			LevelSkillPoints:    1,
		},
		Economy: EconomyConfig{
			ScarcityStep:    0.25,
			RestockInterval: 10,
			SellRatio:       0.5,
		},
	}
}

// Load reads game config from a YAML file, falling back to defaults when the
// file does not exist. Values present in the file override defaults.
func Load(path string) (Game, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values the engines cannot run with.
func (g Game) Validate() error {
	if g.Combat.FleeChance < 0 || g.Combat.FleeChance > 1 {
		return fmt.Errorf("combat.flee_chance must be in [0,1], got %v", g.Combat.FleeChance)
	}
	if g.Combat.CritMultiplier < 1 {
		return fmt.Errorf("combat.crit_multiplier must be >= 1, got %v", g.Combat.CritMultiplier)
	}
	if g.Progression.XPBase <= 0 {
		return fmt.Errorf("progression.xp_base must be positive, got %d", g.Progression.XPBase)
	}
	if g.Progression.XPGrowth <= 1 {
		return fmt.Errorf("progression.xp_growth must exceed 1, got %v", g.Progression.XPGrowth)
	}
	if g.Progression.ClassThresholdLevel < 2 {
		return fmt.Errorf("progression.class_threshold_level must be >= 2, got %d", g.Progression.ClassThresholdLevel)
	}
	if g.Economy.SellRatio < 0 || g.Economy.SellRatio > 1 {
		return fmt.Errorf("economy.sell_ratio must be in [0,1], got %v", g.Economy.SellRatio)
	}
	return nil
}
