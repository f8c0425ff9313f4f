// Package combat implements the turn-based encounter engine. Each turn the
// player submits one action, every surviving monster retaliates in spawn
// order, and then durations, cooldowns, and terrain hazards tick.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/oakhaven/emberquest/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/pkg/idgen"
	"github.com/oakhaven/emberquest/internal/rules/effects"
	"github.com/oakhaven/emberquest/internal/rules/levelup"
	"github.com/oakhaven/emberquest/internal/rules/stats"
)

// Event topics published on the bus
const (
	TopicEncounterStarted  = "combat.encounter.started"
	TopicMonsterDefeated   = "combat.monster.defeated"
	TopicMonsterSpawned    = "combat.monster.spawned"
	TopicQuestCompleted    = "combat.quest.completed"
	TopicEncounterResolved = "combat.encounter.resolved"
)

// Entities ride the event bus, so they must satisfy core.Entity.
var (
	_ core.Entity = (*entities.Player)(nil)
	_ core.Entity = (*entities.Monster)(nil)
)

// Service defines the interface for combat operations
type Service interface {
	// Initiate starts an encounter against the given monsters.
	Initiate(ctx context.Context, input *InitiateInput) (*InitiateOutput, error)

	// SubmitAction runs one full combat turn from the player's action.
	// Returns errors.FailedPrecondition when the encounter is over, and
	// leaves the encounter untouched when the action itself is invalid.
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)
}

// Catalog is the read side of the content repository combat needs.
type Catalog interface {
	GetSkill(id string) (*entities.Skill, error)
	GetItem(id string) (*entities.Item, error)
}

// Spawner lets defeat hooks pull reinforcements out of the world.
type Spawner interface {
	SpawnMonster(locationID, templateID string) (*entities.Monster, error)
	SpawnRuleFor(locationID, defeatedTemplateID string) *entities.SpawnRule
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	Catalog     Catalog
	Registry    *effects.Registry
	LevelUp     *levelup.Engine
	Spawner     Spawner
	DiceRoller  dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Combat      config.CombatConfig
	Log         *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.LevelUp == nil {
		vb.RequiredField("LevelUp")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type orchestrator struct {
	catalog  Catalog
	registry *effects.Registry
	levelUp  *levelup.Engine
	spawner  Spawner
	roller   dice.Roller
	bus      events.EventBus
	idGen    idgen.Generator
	cfg      config.CombatConfig
	log      *slog.Logger
}

// NewOrchestrator creates a combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &orchestrator{
		catalog:  cfg.Catalog,
		registry: cfg.Registry,
		levelUp:  cfg.LevelUp,
		spawner:  cfg.Spawner,
		roller:   cfg.DiceRoller,
		bus:      cfg.EventBus,
		idGen:    cfg.IDGenerator,
		cfg:      cfg.Combat,
		log:      log,
	}, nil
}

// Initiate starts an encounter against the given monsters
func (o *orchestrator) Initiate(ctx context.Context, input *InitiateInput) (*InitiateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument("player is required")
	}
	if len(input.Monsters) == 0 {
		return nil, errors.InvalidArgument("at least one monster is required")
	}

	enc := &Encounter{
		ID:         o.idGen.Generate(),
		Player:     input.Player,
		Monsters:   input.Monsters,
		LocationID: input.LocationID,
		Terrain:    input.Terrain,
		Outcome:    OutcomeInProgress,
	}

	out := &InitiateOutput{Encounter: enc}
	for _, m := range input.Monsters {
		out.Log = append(out.Log, fmt.Sprintf("A %s blocks your path!", m.Name))
	}

	o.publish(ctx, TopicEncounterStarted, input.Player, nil, map[string]any{
		"encounter_id": enc.ID,
		"location_id":  enc.LocationID,
	})
	o.log.Info("encounter started",
		slog.String("encounter_id", enc.ID),
		slog.String("location_id", enc.LocationID),
		slog.Int("monsters", len(enc.Monsters)))
	return out, nil
}

// SubmitAction runs one full combat turn from the player's action
func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil || input.Encounter == nil {
		return nil, errors.InvalidArgument("encounter is required")
	}
	enc := input.Encounter
	if enc.Outcome.Terminal() {
		return nil, errors.FailedPreconditionf("encounter already %s", enc.Outcome)
	}

	out := &SubmitActionOutput{Outcome: OutcomeInProgress}

	monstersRetaliate := true
	if enc.Player.Incapacitated() {
		out.Log = append(out.Log, "You are stunned and cannot act!")
	} else {
		var err error
		monstersRetaliate, err = o.playerAction(ctx, enc, input.Action, out)
		if err != nil {
			return nil, err
		}
	}

	if enc.Outcome == OutcomeFled {
		out.Outcome = OutcomeFled
		o.resolve(ctx, enc, out)
		return out, nil
	}

	o.collectDefeats(ctx, enc, out)

	if len(enc.AliveMonsters()) == 0 {
		o.victory(ctx, enc, out)
		return out, nil
	}

	if monstersRetaliate {
		o.retaliate(enc, out)
		if enc.Player.IsAlive() {
			o.applyHazard(enc, out)
		}
	}
	if !enc.Player.IsAlive() {
		enc.Outcome = OutcomeDefeat
		out.Outcome = OutcomeDefeat
		out.Log = append(out.Log, "You fall to the ground, defeated.")
		o.resolve(ctx, enc, out)
		return out, nil
	}

	o.tick(enc)
	enc.Turn++
	return out, nil
}

// playerAction executes the player's choice. It reports whether monsters
// get their retaliation this turn: a failed retreat ends the exchange with
// both sides unharmed.
func (o *orchestrator) playerAction(ctx context.Context, enc *Encounter, action Action, out *SubmitActionOutput) (bool, error) {
	switch action.Kind {
	case ActionAttack:
		return true, o.attack(enc, action.TargetID, out)
	case ActionUseSkill:
		return true, o.useSkill(enc, action, out)
	case ActionUseItem:
		return true, o.useItem(enc, action, out)
	case ActionRetreat:
		return o.retreat(enc, out)
	default:
		return true, errors.InvalidArgumentf("unknown action %q", action.Kind)
	}
}

func (o *orchestrator) target(enc *Encounter, targetID string) (*entities.Monster, error) {
	if targetID == "" {
		return nil, errors.InvalidArgument("target is required")
	}
	m := enc.Monster(targetID)
	if m == nil {
		return nil, errors.NotFoundf("no such enemy %q", targetID)
	}
	if !m.IsAlive() {
		return nil, errors.NotUsablef("%s is already down", m.Name)
	}
	return m, nil
}

func (o *orchestrator) attack(enc *Encounter, targetID string, out *SubmitActionOutput) error {
	target, err := o.target(enc, targetID)
	if err != nil {
		return err
	}
	eff := stats.ResolveCharacter(&enc.Player.Character)
	damage, crit, err := o.rollDamage(eff.AttackPower, eff.CritChance)
	if err != nil {
		return err
	}
	target.ApplyDamage(damage)
	out.Log = append(out.Log, hitLine("You", target.Name, damage, crit))
	return nil
}

func (o *orchestrator) useSkill(enc *Encounter, action Action, out *SubmitActionOutput) error {
	skill, err := o.catalog.GetSkill(action.SkillID)
	if err != nil {
		return err
	}
	if !enc.Player.HasLearned(skill.ID) {
		return errors.NotUsablef("you have not learned %s", skill.Name)
	}
	if skill.Kind != entities.SkillActive || skill.Combat == nil {
		return errors.NotUsablef("%s cannot be used in combat", skill.Name)
	}
	ability := enc.Player.Ability(skill.ID)
	if ability == nil {
		return errors.NotUsablef("%s is not ready to use", skill.Name)
	}
	if ability.Cooldown > 0 {
		return errors.OnCooldownf("%s is on cooldown for %d more turns", skill.Name, ability.Cooldown)
	}
	target, err := o.target(enc, action.TargetID)
	if err != nil {
		return err
	}

	eff := stats.ResolveCharacter(&enc.Player.Character)
	damage, crit, err := o.rollDamage(eff.AttackPower+skill.Combat.DamageBonus, eff.CritChance)
	if err != nil {
		return err
	}
	target.ApplyDamage(damage)
	ability.Cooldown = ability.MaxCooldown
	out.Log = append(out.Log, fmt.Sprintf("%s! %s", skill.Name, hitLine("You", target.Name, damage, crit)))

	if skill.Combat.AppliesEffectID != "" && target.IsAlive() {
		applied, err := o.registry.Instantiate(skill.Combat.AppliesEffectID, skill.ID)
		if err != nil {
			return err
		}
		target.Effects = append(target.Effects, applied)
		stats.Refresh(&target.Character)
		out.Log = append(out.Log, fmt.Sprintf("The %s is %s!", target.Name, applied.TemplateID))
	}
	return nil
}

func (o *orchestrator) useItem(enc *Encounter, action Action, out *SubmitActionOutput) error {
	item, err := o.catalog.GetItem(action.ItemID)
	if err != nil {
		return err
	}
	if enc.Player.ItemCount(item.ID) == 0 {
		return errors.NotFoundf("not carrying %s", item.Name)
	}
	if !item.UsableInCombat() {
		return errors.NotUsablef("%s cannot be used in combat", item.Name)
	}

	switch item.Kind {
	case entities.ItemPotion:
		eff := stats.ResolveCharacter(&enc.Player.Character)
		healed := enc.Player.Heal(item.HealAmount, eff.MaxHP)
		out.Log = append(out.Log, fmt.Sprintf("You drink the %s and recover %d HP.", item.Name, healed))
	case entities.ItemEffectPotion:
		applied, err := o.registry.Instantiate(item.EffectID, item.ID)
		if err != nil {
			return err
		}
		enc.Player.Effects = append(enc.Player.Effects, applied)
		stats.Refresh(&enc.Player.Character)
		out.Log = append(out.Log, fmt.Sprintf("You drink the %s.", item.Name))
	case entities.ItemOffensive:
		target, err := o.target(enc, action.TargetID)
		if err != nil {
			return err
		}
		target.ApplyDamage(item.Damage)
		out.Log = append(out.Log, fmt.Sprintf("The %s hits the %s for %d damage!", item.Name, target.Name, item.Damage))
	}

	if item.Consumable() {
		enc.Player.RemoveItem(item.ID, 1)
	}
	return nil
}

// retreat rolls the flee chance. Success ends the encounter cleanly; failure
// wastes the turn but neither side deals damage.
func (o *orchestrator) retreat(enc *Encounter, out *SubmitActionOutput) (bool, error) {
	ok, err := o.rollChance(o.cfg.FleeChance)
	if err != nil {
		return true, err
	}
	if ok {
		enc.Outcome = OutcomeFled
		out.Log = append(out.Log, "You slip away from the fight.")
		return false, nil
	}
	out.Log = append(out.Log, "You fail to get away, but your enemies lose track of you in the scuffle.")
	return false, nil
}

// collectDefeats processes defeat hooks for monsters that dropped this
// turn: XP and loot accrue toward victory, kill quests complete at once,
// and spawn rules pull reinforcements into the fight.
func (o *orchestrator) collectDefeats(ctx context.Context, enc *Encounter, out *SubmitActionOutput) {
	for _, m := range enc.Monsters {
		if m.IsAlive() {
			continue
		}
		if !o.markProcessed(enc, m) {
			continue
		}
		out.Log = append(out.Log, fmt.Sprintf("The %s is defeated!", m.Name))
		enc.pendingXP += m.XPReward
		o.rollDrops(enc, m)

		if m.CompletesQuestID != "" && enc.Player.Quests[m.CompletesQuestID] == entities.QuestActive {
			enc.Player.Quests[m.CompletesQuestID] = entities.QuestCompleted
			out.CompletedQuests = append(out.CompletedQuests, m.CompletesQuestID)
			out.Log = append(out.Log, "Quest complete!")
			o.publish(ctx, TopicQuestCompleted, enc.Player, nil, map[string]any{
				"quest_id": m.CompletesQuestID,
			})
		}

		o.publish(ctx, TopicMonsterDefeated, m, enc.Player, map[string]any{
			"encounter_id": enc.ID,
			"template_id":  m.TemplateID,
			"xp_reward":    m.XPReward,
		})

		o.spawnReinforcement(ctx, enc, m, out)
	}
}

// markProcessed records that a monster's defeat hooks have fired, so a
// corpse never pays out twice.
func (o *orchestrator) markProcessed(enc *Encounter, m *entities.Monster) bool {
	for _, id := range enc.processedDefeats {
		if id == m.ID {
			return false
		}
	}
	enc.processedDefeats = append(enc.processedDefeats, m.ID)
	return true
}

func (o *orchestrator) rollDrops(enc *Encounter, m *entities.Monster) {
	for _, drop := range m.Drops {
		ok, err := o.rollChance(drop.Chance)
		if err != nil || !ok {
			continue
		}
		if o.suppressUnique(enc, drop.ItemID) {
			continue
		}
		enc.pendingLoot = append(enc.pendingLoot, drop.ItemID)
	}
}

// suppressUnique keeps one-of-a-kind items from dropping a second copy.
func (o *orchestrator) suppressUnique(enc *Encounter, itemID string) bool {
	item, err := o.catalog.GetItem(itemID)
	if err != nil || !item.Unique {
		return false
	}
	if enc.Player.ItemCount(itemID) > 0 || enc.Player.IsEquipped(itemID) {
		return true
	}
	for _, id := range enc.pendingLoot {
		if id == itemID {
			return true
		}
	}
	return false
}

func (o *orchestrator) spawnReinforcement(ctx context.Context, enc *Encounter, defeated *entities.Monster, out *SubmitActionOutput) {
	if o.spawner == nil {
		return
	}
	rule := o.spawner.SpawnRuleFor(enc.LocationID, defeated.TemplateID)
	if rule == nil {
		return
	}
	spawned, err := o.spawner.SpawnMonster(enc.LocationID, rule.MonsterID)
	if err != nil {
		o.log.Error("spawn rule failed",
			slog.String("monster_id", rule.MonsterID),
			slog.String("error", err.Error()))
		return
	}
	enc.Monsters = append(enc.Monsters, spawned)
	out.Spawned = append(out.Spawned, SpawnedMonster{Monster: spawned, Message: rule.Message})
	if rule.Message != "" {
		out.Log = append(out.Log, rule.Message)
	}
	out.Log = append(out.Log, fmt.Sprintf("A %s joins the fight!", spawned.Name))
	o.publish(ctx, TopicMonsterSpawned, spawned, enc.Player, map[string]any{
		"encounter_id": enc.ID,
		"template_id":  spawned.TemplateID,
	})
}

func (o *orchestrator) victory(ctx context.Context, enc *Encounter, out *SubmitActionOutput) {
	enc.Outcome = OutcomeVictory
	out.Outcome = OutcomeVictory
	out.Log = append(out.Log, "Victory!")

	if enc.pendingXP > 0 {
		out.XPAwarded = enc.pendingXP
		out.LevelUps = o.levelUp.AddXP(enc.Player, enc.pendingXP)
		out.Log = append(out.Log, fmt.Sprintf("You gain %d XP.", enc.pendingXP))
	}
	for _, itemID := range enc.pendingLoot {
		enc.Player.AddItem(itemID, 1)
		if item, err := o.catalog.GetItem(itemID); err == nil {
			out.Log = append(out.Log, fmt.Sprintf("You pick up a %s.", item.Name))
		}
	}
	out.Loot = enc.pendingLoot

	o.resolve(ctx, enc, out)
}

func (o *orchestrator) resolve(ctx context.Context, enc *Encounter, out *SubmitActionOutput) {
	o.clearStatusEffects(enc)
	o.publish(ctx, TopicEncounterResolved, enc.Player, nil, map[string]any{
		"encounter_id": enc.ID,
		"outcome":      string(enc.Outcome),
		"turns":        enc.Turn + 1,
	})
	o.log.Info("encounter resolved",
		slog.String("encounter_id", enc.ID),
		slog.String("outcome", string(enc.Outcome)))
}

// clearStatusEffects strips temporary effects when combat ends; buffs and
// debuffs do not outlive the fight.
func (o *orchestrator) clearStatusEffects(enc *Encounter) {
	enc.Player.Effects = withoutStatus(enc.Player.Effects)
	stats.Refresh(&enc.Player.Character)
	for _, a := range enc.Player.Abilities {
		a.Cooldown = 0
	}
}

func withoutStatus(effects []entities.ActiveEffect) []entities.ActiveEffect {
	var out []entities.ActiveEffect
	for _, e := range effects {
		if e.Kind != entities.EffectStatus {
			out = append(out, e)
		}
	}
	return out
}

func (o *orchestrator) retaliate(enc *Encounter, out *SubmitActionOutput) {
	for _, m := range enc.AliveMonsters() {
		if !enc.Player.IsAlive() {
			return
		}
		if m.Incapacitated() {
			out.Log = append(out.Log, fmt.Sprintf("The %s is stunned and cannot move!", m.Name))
			continue
		}
		eff := stats.ResolveCharacter(&m.Character)
		damage, crit, err := o.rollDamage(eff.AttackPower, eff.CritChance)
		if err != nil {
			o.log.Error("retaliation roll failed", slog.String("error", err.Error()))
			continue
		}
		enc.Player.ApplyDamage(damage)
		out.Log = append(out.Log, hitLine("The "+m.Name, "you", damage, crit))
	}
}

// applyHazard deals terrain damage to an unprotected player.
func (o *orchestrator) applyHazard(enc *Encounter, out *SubmitActionOutput) {
	if !enc.Terrain.Hazardous() || o.cfg.VolcanicHazardDamage <= 0 {
		return
	}
	if enc.Player.HasEffect(entities.EffectIDFireResistance) {
		return
	}
	enc.Player.ApplyDamage(o.cfg.VolcanicHazardDamage)
	out.Log = append(out.Log, fmt.Sprintf("The scorching air sears you for %d damage!", o.cfg.VolcanicHazardDamage))
}

// tick advances per-turn state: status durations count down on everyone
// still standing, and ability cooldowns recover.
func (o *orchestrator) tick(enc *Encounter) {
	tickEffects(&enc.Player.Character)
	for _, m := range enc.AliveMonsters() {
		tickEffects(&m.Character)
	}
	for _, a := range enc.Player.Abilities {
		if a.Cooldown > 0 {
			a.Cooldown--
		}
	}
}

func tickEffects(c *entities.Character) {
	var kept []entities.ActiveEffect
	removed := false
	for i := range c.Effects {
		eff := c.Effects[i]
		if !eff.Permanent {
			eff.Remaining--
		}
		if eff.Expired() {
			removed = true
			continue
		}
		kept = append(kept, eff)
	}
	c.Effects = kept
	if removed {
		stats.Refresh(c)
	}
}

// rollDamage applies the crit roll to a base damage value.
func (o *orchestrator) rollDamage(base int, critChance float64) (int, bool, error) {
	crit, err := o.rollChance(critChance)
	if err != nil {
		return 0, false, err
	}
	if crit {
		return int(float64(base) * o.cfg.CritMultiplier), true, nil
	}
	return base, false, nil
}

// rollChance converts a [0,1] probability into a d100 roll.
func (o *orchestrator) rollChance(chance float64) (bool, error) {
	if chance <= 0 {
		return false, nil
	}
	if chance >= 1 {
		return true, nil
	}
	roll, err := o.roller.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "rolling d100")
	}
	return roll <= int(chance*100), nil
}

func (o *orchestrator) publish(ctx context.Context, topic string, source, target core.Entity, data map[string]any) {
	event := events.NewGameEvent(topic, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	if err := o.bus.Publish(ctx, event); err != nil {
		o.log.Error("event publish failed",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
	}
}

func hitLine(attacker, defender string, damage int, crit bool) string {
	if crit {
		return fmt.Sprintf("%s critically hit %s for %d damage!", attacker, defender, damage)
	}
	return fmt.Sprintf("%s hit %s for %d damage.", attacker, defender, damage)
}
