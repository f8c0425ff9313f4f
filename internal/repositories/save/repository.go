// Package save provides the interface for game save persistence. Saves are
// keyed by slot name; each slot holds one snapshot of the full game state.
package save

//go:generate mockgen -destination=mock/mock_repository.go -package=savemock github.com/oakhaven/emberquest/internal/repositories/save Repository

import (
	"context"
	"time"

	"github.com/oakhaven/emberquest/internal/entities"
)

// Repository defines the interface for save-slot persistence
type Repository interface {
	// Save writes a snapshot into a slot, overwriting any previous save.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load reads the snapshot stored in a slot.
	// Returns errors.NotFound if the slot is empty
	// Returns errors.DataLoss if the stored snapshot cannot be decoded
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes a slot.
	// Returns errors.NotFound if the slot is empty
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List enumerates the occupied slots.
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// SlotInfo describes one occupied save slot
type SlotInfo struct {
	Slot    string
	SavedAt time.Time
}

// SaveInput defines the input for saving a snapshot
type SaveInput struct {
	Slot     string
	Snapshot *entities.Snapshot
}

// SaveOutput defines the output for saving a snapshot
type SaveOutput struct {
	SavedAt time.Time
}

// LoadInput defines the input for loading a snapshot
type LoadInput struct {
	Slot string
}

// LoadOutput defines the output for loading a snapshot
type LoadOutput struct {
	Snapshot *entities.Snapshot
	SavedAt  time.Time
}

// DeleteInput defines the input for deleting a slot
type DeleteInput struct {
	Slot string
}

// DeleteOutput defines the output for deleting a slot
type DeleteOutput struct{}

// ListInput defines the input for listing slots
type ListInput struct{}

// ListOutput defines the output for listing slots
type ListOutput struct {
	Slots []SlotInfo
}
