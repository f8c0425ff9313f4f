// Package content provides the read-only game content repository. All
// world-building data — items, effects, skills, classes, monsters, NPCs,
// locations, quests — is loaded once from a declarative JSON file and served
// from memory. Every cross-reference between records is checked at load
// time, so a missing id is fatal at startup rather than a surprise
// mid-session.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// MonsterTemplate is the content record a monster instance is stamped from.
type MonsterTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`

	MaxHP       int `json:"max_hp"`
	AttackPower int `json:"attack_power"`

	XPReward int                  `json:"xp_reward"`
	Drops    []entities.DropEntry `json:"drops,omitempty"`

	CompletesQuestID string `json:"completes_quest_id,omitempty"`
}

// PlayerSeed describes the starting player state.
type PlayerSeed struct {
	Name        string  `json:"name"`
	MaxHP       int     `json:"max_hp"`
	AttackPower int     `json:"attack_power"`
	CritChance  float64 `json:"crit_chance,omitempty"`
	Gold        int     `json:"gold"`

	StartLocationID string   `json:"start_location_id"`
	ItemIDs         []string `json:"item_ids,omitempty"`
}

// dataFile is the on-disk shape: records keyed by id, so the file cannot
// hold two records with the same id. The key fills each record's ID field.
type dataFile struct {
	Effects   map[string]*entities.EffectTemplate `json:"effects"`
	Items     map[string]*entities.Item           `json:"items"`
	Skills    map[string]*entities.Skill          `json:"skills"`
	Classes   map[string]*entities.Class          `json:"classes"`
	Monsters  map[string]*MonsterTemplate         `json:"monsters"`
	Npcs      map[string]*entities.Npc            `json:"npcs"`
	Locations map[string]*entities.Location       `json:"locations"`
	Quests    map[string]*entities.Quest          `json:"quests"`
	Player    PlayerSeed                          `json:"player"`
}

// Repository serves loaded content. It is immutable after construction and
// safe for concurrent reads.
type Repository struct {
	effects   map[string]*entities.EffectTemplate
	items     map[string]*entities.Item
	skills    map[string]*entities.Skill
	classes   map[string]*entities.Class
	monsters  map[string]*MonsterTemplate
	npcs      map[string]*entities.Npc
	locations map[string]*entities.Location
	quests    map[string]*entities.Quest
	player    PlayerSeed

	skillOrder    []string
	classOrder    []string
	locationOrder []string
}

// Config holds the repository dependencies.
type Config struct {
	// Path is the content JSON file.
	Path string
}

// Validate ensures required fields are set.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Path == "" {
		return errors.InvalidArgument("path is required")
	}
	return nil
}

// NewRepository loads and validates the content file at cfg.Path.
func NewRepository(cfg *Config) (*Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
			fmt.Sprintf("reading content file %s", cfg.Path))
	}
	return Parse(data)
}

// Parse builds a repository from raw content JSON.
func Parse(data []byte) (*Repository, error) {
	var file dataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "parsing content")
	}

	r := &Repository{
		effects:   file.Effects,
		items:     file.Items,
		skills:    file.Skills,
		classes:   file.Classes,
		monsters:  file.Monsters,
		npcs:      file.Npcs,
		locations: file.Locations,
		quests:    file.Quests,
		player:    file.Player,
	}
	r.fillIDs()
	r.buildOrders()

	if err := r.validateReferences(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) fillIDs() {
	for id, e := range r.effects {
		e.ID = id
	}
	for id, it := range r.items {
		it.ID = id
	}
	for id, s := range r.skills {
		s.ID = id
	}
	for id, c := range r.classes {
		c.ID = id
	}
	for id, m := range r.monsters {
		m.ID = id
	}
	for id, n := range r.npcs {
		n.ID = id
	}
	for id, l := range r.locations {
		l.ID = id
	}
	for id, q := range r.quests {
		q.ID = id
	}
}

func (r *Repository) buildOrders() {
	r.skillOrder = sortedKeys(r.skills)
	r.classOrder = sortedKeys(r.classes)
	r.locationOrder = sortedKeys(r.locations)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetEffect returns the effect template for the given id.
func (r *Repository) GetEffect(id string) (*entities.EffectTemplate, error) {
	e, ok := r.effects[id]
	if !ok {
		return nil, errors.NotFoundf("effect %q not found", id)
	}
	return e, nil
}

// GetItem returns the item record for the given id.
func (r *Repository) GetItem(id string) (*entities.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, errors.NotFoundf("item %q not found", id)
	}
	return it, nil
}

// GetSkill returns the skill record for the given id.
func (r *Repository) GetSkill(id string) (*entities.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return nil, errors.NotFoundf("skill %q not found", id)
	}
	return s, nil
}

// GetClass returns the class record for the given id.
func (r *Repository) GetClass(id string) (*entities.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, errors.NotFoundf("class %q not found", id)
	}
	return c, nil
}

// GetMonster returns the monster template for the given id.
func (r *Repository) GetMonster(id string) (*MonsterTemplate, error) {
	m, ok := r.monsters[id]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", id)
	}
	return m, nil
}

// GetNpc returns the NPC record for the given id.
func (r *Repository) GetNpc(id string) (*entities.Npc, error) {
	n, ok := r.npcs[id]
	if !ok {
		return nil, errors.NotFoundf("npc %q not found", id)
	}
	return n, nil
}

// GetLocation returns the location record for the given id.
func (r *Repository) GetLocation(id string) (*entities.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, errors.NotFoundf("location %q not found", id)
	}
	return l, nil
}

// GetQuest returns the quest record for the given id.
func (r *Repository) GetQuest(id string) (*entities.Quest, error) {
	q, ok := r.quests[id]
	if !ok {
		return nil, errors.NotFoundf("quest %q not found", id)
	}
	return q, nil
}

// ListSkills returns every skill, sorted by id.
func (r *Repository) ListSkills() []*entities.Skill {
	out := make([]*entities.Skill, 0, len(r.skillOrder))
	for _, id := range r.skillOrder {
		out = append(out, r.skills[id])
	}
	return out
}

// ListClasses returns every class, sorted by id.
func (r *Repository) ListClasses() []*entities.Class {
	out := make([]*entities.Class, 0, len(r.classOrder))
	for _, id := range r.classOrder {
		out = append(out, r.classes[id])
	}
	return out
}

// ListLocations returns every location, sorted by id.
func (r *Repository) ListLocations() []*entities.Location {
	out := make([]*entities.Location, 0, len(r.locationOrder))
	for _, id := range r.locationOrder {
		out = append(out, r.locations[id])
	}
	return out
}

// EffectTemplates returns every effect template, sorted by id, for seeding
// the effect registry.
func (r *Repository) EffectTemplates() []entities.EffectTemplate {
	out := make([]entities.EffectTemplate, 0, len(r.effects))
	for _, id := range sortedKeys(r.effects) {
		out = append(out, *r.effects[id])
	}
	return out
}

// NewMonster stamps a live monster instance from a template. The instance
// id distinguishes multiple copies of the same template in one room.
func (r *Repository) NewMonster(templateID, instanceID string) (*entities.Monster, error) {
	tpl, err := r.GetMonster(templateID)
	if err != nil {
		return nil, err
	}
	drops := make([]entities.DropEntry, len(tpl.Drops))
	copy(drops, tpl.Drops)
	return &entities.Monster{
		Character: entities.Character{
			ID:   instanceID,
			Name: tpl.Name,
			HP:   tpl.MaxHP,
			Base: entities.Stats{MaxHP: tpl.MaxHP, AttackPower: tpl.AttackPower},
		},
		TemplateID:       tpl.ID,
		Type:             tpl.Type,
		XPReward:         tpl.XPReward,
		Drops:            drops,
		CompletesQuestID: tpl.CompletesQuestID,
	}, nil
}

// NewPlayer builds the starting player from the content seed.
func (r *Repository) NewPlayer(xpToNext int) *entities.Player {
	p := &entities.Player{
		Character: entities.Character{
			ID:   "player",
			Name: r.player.Name,
			HP:   r.player.MaxHP,
			Base: entities.Stats{
				MaxHP:       r.player.MaxHP,
				AttackPower: r.player.AttackPower,
				CritChance:  r.player.CritChance,
			},
		},
		Level:      1,
		XPToNext:   xpToNext,
		Gold:       r.player.Gold,
		LocationID: r.player.StartLocationID,
	}
	for _, itemID := range r.player.ItemIDs {
		p.AddItem(itemID, 1)
	}
	p.Discover(p.LocationID)
	return p
}
