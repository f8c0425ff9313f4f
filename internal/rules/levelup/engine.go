// Package levelup implements experience accrual and level-up resolution.
// Gaining XP only queues level-up events; the level itself does not move
// until each event is resolved with a player choice, so the caller controls
// when the interruption happens.
package levelup

import (
	"log/slog"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/stats"
)

// Choice is one of the stat boosts offered on every level-up.
type Choice string

// Level-up choices
const (
	ChoiceMaxHP  Choice = "max_hp"
	ChoiceAttack Choice = "attack_power"
	ChoiceCrit   Choice = "crit_chance"
)

// Boost magnitudes per choice
const (
	ChoiceMaxHPGain  = 10
	ChoiceAttackGain = 2
	ChoiceCritGain   = 0.05
)

// Choices returns the selectable boosts in presentation order.
func Choices() []Choice {
	return []Choice{ChoiceMaxHP, ChoiceAttack, ChoiceCrit}
}

// Label returns the menu text for a choice.
func (c Choice) Label() string {
	switch c {
	case ChoiceMaxHP:
		return "+10 Max HP"
	case ChoiceAttack:
		return "+2 Attack"
	case ChoiceCrit:
		return "+5% Crit Chance"
	default:
		return string(c)
	}
}

// Config holds the engine dependencies.
type Config struct {
	Progression config.ProgressionConfig
	Log         *slog.Logger
}

// Validate ensures the progression curve is usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Progression.XPBase <= 0 {
		vb.InvalidField("progression.xp_base", "must be positive")
	}
	if c.Progression.XPGrowth <= 1 {
		vb.InvalidField("progression.xp_growth", "must exceed 1")
	}
	return vb.Build()
}

// Engine tracks XP against the growth curve and resolves level-ups.
type Engine struct {
	cfg config.ProgressionConfig
	log *slog.Logger
}

// NewEngine creates a level-up engine.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg.Progression, log: log}, nil
}

// InitialThreshold is the XP required to clear level 1, for seeding a new
// player.
func (e *Engine) InitialThreshold() int {
	return e.cfg.XPBase
}

// Event is one pending level-up. It is resolved exactly once, in the order
// events were produced, by applying the player's chosen boost.
type Event struct {
	// TargetLevel is the level the player reaches when this event resolves.
	TargetLevel int

	engine   *Engine
	player   *entities.Player
	resolved bool
}

// Resolved reports whether the event has already been applied.
func (ev *Event) Resolved() bool {
	return ev.resolved
}

// AddXP credits experience and returns the level-up events the gain earned,
// oldest first. Thresholds are consumed immediately, so a large award can
// cross several levels, but the player's level only moves as each event
// resolves.
func (e *Engine) AddXP(player *entities.Player, amount int) []*Event {
	if amount <= 0 {
		return nil
	}
	if player.XPToNext <= 0 {
		player.XPToNext = e.cfg.XPBase
	}
	player.XP += amount

	var events []*Event
	next := player.Level
	for player.XP >= player.XPToNext {
		player.XP -= player.XPToNext
		player.XPToNext = int(float64(player.XPToNext) * e.cfg.XPGrowth)
		next++
		events = append(events, &Event{
			TargetLevel: next,
			engine:      e,
			player:      player,
		})
	}
	if len(events) > 0 {
		e.log.Debug("level ups pending",
			slog.String("player_id", player.ID),
			slog.Int("count", len(events)),
			slog.Int("target_level", next))
	}
	return events
}

// Resolve applies the event: the automatic per-level gains, the chosen
// boost, the level increment, and a full heal. Resolving an event twice or
// out of order fails with FailedPrecondition; an unknown choice fails with
// InvalidArgument and leaves the event pending.
func (ev *Event) Resolve(choice Choice) error {
	if ev.resolved {
		return errors.FailedPrecondition("level-up already resolved")
	}
	if ev.player.Level != ev.TargetLevel-1 {
		return errors.FailedPreconditionf("level-up to %d resolved out of order at level %d",
			ev.TargetLevel, ev.player.Level)
	}

	player := ev.player
	cfg := ev.engine.cfg

	switch choice {
	case ChoiceMaxHP:
		player.Base.MaxHP += ChoiceMaxHPGain
	case ChoiceAttack:
		player.Base.AttackPower += ChoiceAttackGain
	case ChoiceCrit:
		player.Base.CritChance += ChoiceCritGain
	default:
		return errors.InvalidArgumentf("unknown level-up choice %q", choice)
	}

	player.Base.MaxHP += cfg.LevelMaxHPGain
	player.Base.AttackPower += cfg.LevelAttackGain
	player.SkillPoints += cfg.LevelSkillPoints
	player.Level = ev.TargetLevel
	ev.resolved = true

	eff := stats.Refresh(&player.Character)
	player.HP = eff.MaxHP

	ev.engine.log.Info("level up",
		slog.String("player_id", player.ID),
		slog.Int("level", player.Level),
		slog.String("choice", string(choice)))
	return nil
}
