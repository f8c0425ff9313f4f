package session

import (
	"context"
	"fmt"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/pkg/turns"
	"github.com/oakhaven/emberquest/internal/repositories/save"
	"github.com/oakhaven/emberquest/internal/world"
)

// Snapshot captures the current game into a save-ready form. Monster
// instances are not persisted; the world respawns them from content on
// restore.
func (s *GameSession) Snapshot() *entities.Snapshot {
	return &entities.Snapshot{
		Version:       entities.SnapshotVersion,
		Player:        *s.player,
		TurnsElapsed:  s.turns.Elapsed(),
		MerchantStock: s.world.MerchantStates(),
		GroundItems:   s.world.GroundItemDeltas(),
	}
}

// SaveGame writes the current game to a slot.
func (s *GameSession) SaveGame(ctx context.Context, slot string) (string, error) {
	if s.InCombat() {
		return "", errors.FailedPrecondition("cannot save during combat")
	}
	out, err := s.saves.Save(ctx, save.SaveInput{Slot: slot, Snapshot: s.Snapshot()})
	if err != nil {
		return "", err
	}
	s.log.Info("game saved", "slot", slot)
	return fmt.Sprintf("Game saved to %q at %s.", slot, out.SavedAt.Format("2006-01-02 15:04:05")), nil
}

// LoadGame replaces the running game with a saved one. The world is
// rebuilt from content, then the saved merchant and ground-item drift is
// replayed on top.
func (s *GameSession) LoadGame(ctx context.Context, slot string) (string, error) {
	out, err := s.saves.Load(ctx, save.LoadInput{Slot: slot})
	if err != nil {
		return "", err
	}
	if err := s.restore(out.Snapshot); err != nil {
		return "", err
	}
	s.log.Info("game loaded", "slot", slot)
	return fmt.Sprintf("Game loaded from %q.", slot), nil
}

// SavedSlots lists the existing save slots.
func (s *GameSession) SavedSlots(ctx context.Context) ([]save.SlotInfo, error) {
	out, err := s.saves.List(ctx, save.ListInput{})
	if err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (s *GameSession) restore(snap *entities.Snapshot) error {
	worldState, err := world.NewState(&world.Config{Catalog: s.content, Log: s.log})
	if err != nil {
		return err
	}
	worldState.RestoreMerchants(snap.MerchantStock)
	worldState.RestoreGroundItems(snap.GroundItems)

	player := snap.Player
	s.player = &player
	s.world = worldState
	s.turns = turns.NewCounter(snap.TurnsElapsed)
	s.encounter = nil
	s.pending = nil
	s.gameOver = false
	return nil
}
