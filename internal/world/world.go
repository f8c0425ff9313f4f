// Package world holds the live state of the game world: which monster
// instances stand in which room, what lies on the ground, and how the
// player moves through the location graph. Location records themselves are
// read-only content; everything mutable lives here.
package world

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// Catalog is the read side of the content repository the world needs.
type Catalog interface {
	GetLocation(id string) (*entities.Location, error)
	ListLocations() []*entities.Location
	GetNpc(id string) (*entities.Npc, error)
	GetItem(id string) (*entities.Item, error)
	NewMonster(templateID, instanceID string) (*entities.Monster, error)
}

// Room is the live state of one location.
type Room struct {
	Location    *entities.Location
	Monsters    []*entities.Monster
	Npcs        []*entities.Npc
	GroundItems []string
}

// Monster returns the live monster with the given instance id, or nil.
func (r *Room) Monster(id string) *entities.Monster {
	for _, m := range r.Monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Npc returns the room's NPC with the given id, or nil.
func (r *Room) Npc(id string) *entities.Npc {
	for _, n := range r.Npcs {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// HasHostiles reports whether any monster in the room is alive.
func (r *Room) HasHostiles() bool {
	for _, m := range r.Monsters {
		if m.IsAlive() {
			return true
		}
	}
	return false
}

// Config holds the world dependencies.
type Config struct {
	Catalog Catalog
	Log     *slog.Logger
}

// Validate ensures required dependencies are present.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Catalog == nil {
		return errors.InvalidArgument("catalog is required")
	}
	return nil
}

// State is the mutable world. It is not safe for concurrent use; the
// session serializes access.
type State struct {
	catalog Catalog
	log     *slog.Logger

	rooms       map[string]*Room
	spawnCounts map[string]int
}

// NewState builds the starting world from content: every location gets its
// seeded monsters, NPC copies, and ground items.
func NewState(cfg *Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	s := &State{
		catalog:     cfg.Catalog,
		log:         log,
		rooms:       make(map[string]*Room),
		spawnCounts: make(map[string]int),
	}
	for _, loc := range cfg.Catalog.ListLocations() {
		room := &Room{Location: loc}
		for _, templateID := range loc.MonsterIDs {
			m, err := s.newInstance(templateID)
			if err != nil {
				return nil, err
			}
			room.Monsters = append(room.Monsters, m)
		}
		for _, npcID := range loc.NpcIDs {
			npc, err := cfg.Catalog.GetNpc(npcID)
			if err != nil {
				return nil, err
			}
			room.Npcs = append(room.Npcs, cloneNpc(npc))
		}
		room.GroundItems = append([]string(nil), loc.ItemIDs...)
		s.rooms[loc.ID] = room
	}
	return s, nil
}

// cloneNpc copies an NPC record so its merchant state can mutate without
// touching content.
func cloneNpc(n *entities.Npc) *entities.Npc {
	out := *n
	if n.Merchant != nil {
		merchant := &entities.MerchantState{
			Gold:  n.Merchant.Gold,
			Stock: append([]entities.StockEntry(nil), n.Merchant.Stock...),
		}
		out.Merchant = merchant
	}
	return &out
}

// newInstance stamps a monster copy with a per-template instance id, so two
// cave rats in one room stay distinguishable.
func (s *State) newInstance(templateID string) (*entities.Monster, error) {
	s.spawnCounts[templateID]++
	instanceID := fmt.Sprintf("%s:%d", templateID, s.spawnCounts[templateID])
	return s.catalog.NewMonster(templateID, instanceID)
}

// Room returns the live room for a location id.
func (s *State) Room(locationID string) (*Room, error) {
	room, ok := s.rooms[locationID]
	if !ok {
		return nil, errors.NotFoundf("location %q not found", locationID)
	}
	return room, nil
}

// SpawnMonster adds a fresh instance of the template to the room.
func (s *State) SpawnMonster(locationID, templateID string) (*entities.Monster, error) {
	room, err := s.Room(locationID)
	if err != nil {
		return nil, err
	}
	m, err := s.newInstance(templateID)
	if err != nil {
		return nil, err
	}
	room.Monsters = append(room.Monsters, m)
	s.log.Debug("monster spawned",
		slog.String("location_id", locationID),
		slog.String("monster_id", m.ID))
	return m, nil
}

// RemoveMonster drops a monster instance from its room.
func (s *State) RemoveMonster(locationID, monsterID string) {
	room, ok := s.rooms[locationID]
	if !ok {
		return
	}
	for i, m := range room.Monsters {
		if m.ID == monsterID {
			room.Monsters = append(room.Monsters[:i], room.Monsters[i+1:]...)
			return
		}
	}
}

// SpawnRuleFor returns the spawn rule triggered by defeating the given
// template in this location, or nil.
func (s *State) SpawnRuleFor(locationID, defeatedTemplateID string) *entities.SpawnRule {
	room, ok := s.rooms[locationID]
	if !ok {
		return nil
	}
	rule, ok := room.Location.SpawnsOnDefeat[defeatedTemplateID]
	if !ok {
		return nil
	}
	return &rule
}

// Exit resolves a move in the given direction, checking plain exits first
// and then conditional ones. A blocked conditional exit reads as no exit.
func (s *State) Exit(player *entities.Player, direction entities.Direction) (string, error) {
	room, err := s.Room(player.LocationID)
	if err != nil {
		return "", err
	}
	if dest, ok := room.Location.Exits[direction]; ok {
		return dest, nil
	}
	for _, exit := range room.Location.ConditionalExits {
		if exit.Direction == direction && MeetsConditions(player, exit.Conditions) {
			return exit.DestinationID, nil
		}
	}
	return "", errors.NotFoundf("no exit %s from %s", direction, room.Location.Name)
}

// OpenExits lists the directions the player can leave through right now.
func (s *State) OpenExits(player *entities.Player) []entities.Direction {
	if _, err := s.Room(player.LocationID); err != nil {
		return nil
	}
	var out []entities.Direction
	for _, dir := range []entities.Direction{entities.North, entities.South, entities.East, entities.West} {
		if _, err := s.Exit(player, dir); err == nil {
			out = append(out, dir)
		}
	}
	return out
}

// Describe renders the player-facing description of a room. Swamps hide
// their real description until the player carries a light source, and
// dungeons append their hazard line.
func (s *State) Describe(room *Room, player *entities.Player) string {
	loc := room.Location
	desc := loc.Description
	if loc.Kind == entities.LocationSwamp && loc.HiddenDescription != "" && !s.carriesLight(player) {
		desc = loc.HiddenDescription
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s", loc.Name, desc)
	if loc.Kind == entities.LocationDungeon && loc.HazardDescription != "" {
		fmt.Fprintf(&b, "\n%s", loc.HazardDescription)
	}
	for _, m := range room.Monsters {
		if m.IsAlive() {
			fmt.Fprintf(&b, "\nA %s is here.", m.Name)
		}
	}
	for _, n := range room.Npcs {
		fmt.Fprintf(&b, "\n%s stands here.", n.Name)
	}
	for _, itemID := range room.GroundItems {
		if item, err := s.catalog.GetItem(itemID); err == nil {
			fmt.Fprintf(&b, "\nThere is a %s on the ground.", item.Name)
		}
	}
	return b.String()
}

func (s *State) carriesLight(player *entities.Player) bool {
	for itemID := range player.Inventory {
		if item, err := s.catalog.GetItem(itemID); err == nil && item.LightSource {
			return true
		}
	}
	return false
}

// TakeGroundItem moves one ground item into the player's inventory.
func (s *State) TakeGroundItem(player *entities.Player, itemID string) error {
	room, err := s.Room(player.LocationID)
	if err != nil {
		return err
	}
	for i, id := range room.GroundItems {
		if id == itemID {
			room.GroundItems = append(room.GroundItems[:i], room.GroundItems[i+1:]...)
			player.AddItem(itemID, 1)
			return nil
		}
	}
	return errors.NotFoundf("no %s here", itemID)
}

// DropGroundItem puts an item onto the room floor.
func (s *State) DropGroundItem(locationID, itemID string) {
	if room, ok := s.rooms[locationID]; ok {
		room.GroundItems = append(room.GroundItems, itemID)
	}
}

// GroundItemDeltas reports, per location, the ground stacks that differ
// from content, for persistence.
func (s *State) GroundItemDeltas() map[string][]string {
	out := make(map[string][]string)
	for id, room := range s.rooms {
		if !equalStrings(room.GroundItems, room.Location.ItemIDs) {
			out[id] = append([]string(nil), room.GroundItems...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MerchantStates reports every merchant's live state, keyed by NPC id,
// for persistence.
func (s *State) MerchantStates() map[string]entities.MerchantState {
	out := make(map[string]entities.MerchantState)
	for _, room := range s.rooms {
		for _, n := range room.Npcs {
			if n.Merchant != nil {
				out[n.ID] = entities.MerchantState{
					Gold:  n.Merchant.Gold,
					Stock: append([]entities.StockEntry(nil), n.Merchant.Stock...),
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RestoreMerchants overwrites merchant state from a snapshot.
func (s *State) RestoreMerchants(states map[string]entities.MerchantState) {
	for _, room := range s.rooms {
		for _, n := range room.Npcs {
			if saved, ok := states[n.ID]; ok && n.Merchant != nil {
				n.Merchant.Gold = saved.Gold
				n.Merchant.Stock = append([]entities.StockEntry(nil), saved.Stock...)
			}
		}
	}
}

// RestoreGroundItems overwrites ground stacks from a snapshot.
func (s *State) RestoreGroundItems(deltas map[string][]string) {
	for id, items := range deltas {
		if room, ok := s.rooms[id]; ok {
			room.GroundItems = append([]string(nil), items...)
		}
	}
}

// RestockMerchants gives every merchant one restock tick.
func (s *State) RestockMerchants(restock func(*entities.MerchantState)) {
	for _, roomID := range sortedRoomIDs(s.rooms) {
		for _, n := range s.rooms[roomID].Npcs {
			if n.Merchant != nil {
				restock(n.Merchant)
			}
		}
	}
}

func sortedRoomIDs(rooms map[string]*Room) []string {
	ids := make([]string, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
