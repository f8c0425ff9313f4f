// Package skills implements skill unlocking: requirement checks, point
// spending, and granting the learned skill's passive effects or combat
// ability.
package skills

import (
	"log/slog"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/effects"
	"github.com/oakhaven/emberquest/internal/rules/stats"
)

//go:generate mockgen -destination=mock/mock_catalog.go -package=skillsmock github.com/oakhaven/emberquest/internal/rules/skills Catalog

// Catalog is the read side of the content repository the tree needs.
type Catalog interface {
	// GetSkill returns the skill record or a NotFound error.
	GetSkill(id string) (*entities.Skill, error)
	// GetClass returns the class record or a NotFound error.
	GetClass(id string) (*entities.Class, error)
	// ListSkills returns every skill in a stable order.
	ListSkills() []*entities.Skill
	// ListClasses returns every class in a stable order.
	ListClasses() []*entities.Class
}

// Config holds the tree dependencies.
type Config struct {
	Catalog  Catalog
	Registry *effects.Registry
	Log      *slog.Logger
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
	return vb.Build()
}

// Tree answers what a player may learn and performs the learning.
type Tree struct {
	catalog  Catalog
	registry *effects.Registry
	log      *slog.Logger
}

// NewTree creates a skill tree over the given content.
func NewTree(cfg *Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Tree{
		catalog:  cfg.Catalog,
		registry: cfg.Registry,
		log:      log,
	}, nil
}

// CanLearn reports whether the player may learn the skill right now.
// It returns nil when learning would succeed, otherwise the first failed
// check as a typed error: NotFound, WrongClass, AlreadyLearned,
// InsufficientPoints, LevelTooLow, or MissingPrerequisite.
func (t *Tree) CanLearn(player *entities.Player, skillID string) error {
	skill, err := t.catalog.GetSkill(skillID)
	if err != nil {
		return err
	}
	if !t.inReach(player, skillID) {
		return errors.WrongClassf("skill %q belongs to another class", skillID)
	}
	for _, req := range skill.Requirements {
		if req.Type == entities.RequirementLevel && player.Level < req.Level {
			return errors.LevelTooLowf("skill %q requires level %d", skillID, req.Level)
		}
	}
	for _, req := range skill.Requirements {
		if req.Type == entities.RequirementSkill && !player.HasLearned(req.SkillID) {
			return errors.MissingPrerequisitef("skill %q requires %q first", skillID, req.SkillID)
		}
	}
	if player.HasLearned(skillID) {
		return errors.AlreadyLearnedf("skill %q is already learned", skillID)
	}
	if player.SkillPoints < skill.Cost {
		return errors.InsufficientPointsf("skill %q costs %d points, have %d",
			skillID, skill.Cost, player.SkillPoints)
	}
	return nil
}

// Learn spends skill points to learn the skill, attaches its passive
// effects, and registers its combat ability. The player's stats are
// refreshed before returning.
func (t *Tree) Learn(player *entities.Player, skillID string) error {
	if err := t.CanLearn(player, skillID); err != nil {
		return err
	}
	skill, err := t.catalog.GetSkill(skillID)
	if err != nil {
		return err
	}
	player.SkillPoints -= skill.Cost
	return t.grant(player, skill)
}

// LearnFree grants the skill without touching skill points or requirement
// checks. Class starting skills and skill-teaching items come through here.
// Already-known skills are a quiet no-op.
func (t *Tree) LearnFree(player *entities.Player, skillID string) error {
	if player.HasLearned(skillID) {
		return nil
	}
	skill, err := t.catalog.GetSkill(skillID)
	if err != nil {
		return err
	}
	return t.grant(player, skill)
}

func (t *Tree) grant(player *entities.Player, skill *entities.Skill) error {
	player.LearnedSkills = append(player.LearnedSkills, skill.ID)

	for _, effectID := range skill.EffectIDs {
		eff, err := t.registry.Instantiate(effectID, skill.ID)
		if err != nil {
			return errors.Wrapf(err, "granting skill %q", skill.ID)
		}
		player.Effects = append(player.Effects, eff)
	}
	if skill.Kind == entities.SkillActive && skill.Combat != nil {
		player.Abilities = append(player.Abilities, &entities.AbilityState{
			SkillID:     skill.ID,
			Cooldown:    0,
			MaxCooldown: skill.Combat.Cooldown,
		})
	}

	stats.Refresh(&player.Character)
	t.log.Debug("skill learned",
		slog.String("player_id", player.ID),
		slog.String("skill_id", skill.ID))
	return nil
}

// Learnable returns the skills the player could learn right now, in catalog
// order. Skills that fail any check are left out.
func (t *Tree) Learnable(player *entities.Player) []*entities.Skill {
	var out []*entities.Skill
	for _, skill := range t.catalog.ListSkills() {
		if t.CanLearn(player, skill.ID) == nil {
			out = append(out, skill)
		}
	}
	return out
}

// Visible returns the skills the player can see in the tree: everything in
// reach of the current class, learned or not.
func (t *Tree) Visible(player *entities.Player) []*entities.Skill {
	var out []*entities.Skill
	for _, skill := range t.catalog.ListSkills() {
		if t.inReach(player, skill.ID) {
			out = append(out, skill)
		}
	}
	return out
}

// inReach applies the class pool rule. A classless player sees the whole
// tree; once a class is chosen, other classes' exclusive pools close off
// while class-agnostic skills stay open.
func (t *Tree) inReach(player *entities.Player, skillID string) bool {
	if !player.HasClass() {
		return true
	}
	owner := ""
	for _, class := range t.catalog.ListClasses() {
		if class.InPool(skillID) {
			owner = class.ID
			break
		}
	}
	return owner == "" || owner == player.ClassID
}
