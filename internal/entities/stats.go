package entities

// Stat identifies one of the modifiable combat statistics
type Stat string

// Modifiable stats
const (
	StatMaxHP       Stat = "max_hp"
	StatAttackPower Stat = "attack_power"
	StatCritChance  Stat = "crit_chance"
)

// Stats is a bundle of combat statistics. It serves both as a character's
// base stats and as the effective stats produced by the stat resolver.
type Stats struct {
	MaxHP       int     `json:"max_hp"`
	AttackPower int     `json:"attack_power"`
	CritChance  float64 `json:"crit_chance"`
}

// Get returns the value of the named stat as a float
func (s Stats) Get(stat Stat) float64 {
	switch stat {
	case StatMaxHP:
		return float64(s.MaxHP)
	case StatAttackPower:
		return float64(s.AttackPower)
	case StatCritChance:
		return s.CritChance
	default:
		return 0
	}
}

// Set overwrites the named stat. Integer stats truncate toward zero.
func (s *Stats) Set(stat Stat, value float64) {
	switch stat {
	case StatMaxHP:
		s.MaxHP = int(value)
	case StatAttackPower:
		s.AttackPower = int(value)
	case StatCritChance:
		s.CritChance = value
	}
}
