// Package classes implements the one-time class specialization: the forced
// choice at the threshold level and the assignment that grants class bonuses
// and starting skills.
package classes

import (
	"log/slog"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/effects"
	"github.com/oakhaven/emberquest/internal/rules/skills"
	"github.com/oakhaven/emberquest/internal/rules/stats"
)

// Config holds the engine dependencies.
type Config struct {
	Catalog  skills.Catalog
	Registry *effects.Registry
	Tree     *skills.Tree
	Log      *slog.Logger

	// ThresholdLevel is the level at which a classless player must choose.
	ThresholdLevel int
}

// Validate ensures required dependencies are present.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("catalog")
	}
	if c.Registry == nil {
		vb.RequiredField("registry")
	}
	if c.Tree == nil {
		vb.RequiredField("tree")
	}
	if c.ThresholdLevel <= 0 {
		vb.InvalidField("threshold_level", "must be positive")
	}
	return vb.Build()
}

// Engine performs class assignment.
type Engine struct {
	catalog   skills.Catalog
	registry  *effects.Registry
	tree      *skills.Tree
	log       *slog.Logger
	threshold int
}

// NewEngine creates a class engine.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		catalog:   cfg.Catalog,
		registry:  cfg.Registry,
		tree:      cfg.Tree,
		log:       log,
		threshold: cfg.ThresholdLevel,
	}, nil
}

// ChoicePrompt is the pending forced choice surfaced to the caller.
type ChoicePrompt struct {
	Classes []*entities.Class
}

// CheckForcedChoice returns the pending prompt when the player has reached
// the threshold level without a class, nil otherwise. Calling it again
// before the choice is made returns an equivalent prompt; it never mutates
// the player.
func (e *Engine) CheckForcedChoice(player *entities.Player) *ChoicePrompt {
	if player.HasClass() || player.Level < e.threshold {
		return nil
	}
	return &ChoicePrompt{Classes: e.catalog.ListClasses()}
}

// Assign makes the permanent class choice: it attaches the class bonus
// effects, grants the starting skills for free, and refreshes the player's
// stats. A second assignment fails with AlreadyAssigned.
func (e *Engine) Assign(player *entities.Player, classID string) error {
	if player.HasClass() {
		return errors.AlreadyAssignedf("already a %s", player.ClassID)
	}
	class, err := e.catalog.GetClass(classID)
	if err != nil {
		return err
	}

	player.ClassID = class.ID
	for _, effectID := range class.BonusEffectIDs {
		eff, err := e.registry.Instantiate(effectID, class.ID)
		if err != nil {
			return errors.Wrapf(err, "assigning class %q", class.ID)
		}
		player.Effects = append(player.Effects, eff)
	}
	for _, skillID := range class.StartingSkills {
		if err := e.tree.LearnFree(player, skillID); err != nil {
			return errors.Wrapf(err, "assigning class %q", class.ID)
		}
	}

	eff := stats.Refresh(&player.Character)
	e.log.Info("class assigned",
		slog.String("player_id", player.ID),
		slog.String("class_id", class.ID),
		slog.Int("max_hp", eff.MaxHP))
	return nil
}
