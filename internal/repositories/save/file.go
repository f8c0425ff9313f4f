package save

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/pkg/clock"
)

type fileRepository struct {
	dir   string
	clock clock.Clock
}

// FileConfig contains configuration for the file-backed save repository.
type FileConfig struct {
	// Dir is the directory save files are written into. It is created on
	// first save if missing.
	Dir   string
	Clock clock.Clock
}

// Validate validates the FileConfig.
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Dir == "" {
		return errors.InvalidArgument("dir cannot be empty")
	}
	return nil
}

// NewFile creates a save repository that writes one JSON file per slot.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &fileRepository{dir: cfg.Dir, clock: c}, nil
}

// slotPath validates the slot name and maps it to a file. Path separators
// are rejected so a slot can never escape the save directory.
func (r *fileRepository) slotPath(slot string) (string, error) {
	if slot == "" {
		return "", errors.InvalidArgument(errSlotEmpty)
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", errors.InvalidArgumentf("invalid slot name %q", slot)
	}
	return filepath.Join(r.dir, slot+".json"), nil
}

func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	path, err := r.slotPath(input.Slot)
	if err != nil {
		return nil, err
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory")
	}

	now := r.clock.Now().UTC()
	data, err := json.MarshalIndent(record{SavedAt: now, Snapshot: input.Snapshot}, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	// Write-then-rename so a crash mid-write never corrupts the slot.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write save slot %s", input.Slot)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, errors.Wrapf(err, "failed to commit save slot %s", input.Slot)
	}
	return &SaveOutput{SavedAt: now}, nil
}

func (r *fileRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	path, err := r.slotPath(input.Slot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read save slot %s", input.Slot)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode save")
	}
	if rec.Snapshot == nil {
		return nil, errors.New(errors.CodeDataLoss, "save holds no snapshot")
	}
	if rec.Snapshot.Version != entities.SnapshotVersion {
		return nil, errors.Newf(errors.CodeDataLoss,
			"save version %d is not supported", rec.Snapshot.Version)
	}
	return &LoadOutput{Snapshot: rec.Snapshot, SavedAt: rec.SavedAt}, nil
}

func (r *fileRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	path, err := r.slotPath(input.Slot)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("no save in slot %s", input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to delete save slot %s", input.Slot)
	}
	return &DeleteOutput{}, nil
}

func (r *fileRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return &ListOutput{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list save directory")
	}

	out := &ListOutput{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		slot := strings.TrimSuffix(name, ".json")
		loaded, err := r.Load(ctx, LoadInput{Slot: slot})
		if err != nil {
			continue // unreadable stray file, not a save
		}
		out.Slots = append(out.Slots, SlotInfo{Slot: slot, SavedAt: loaded.SavedAt})
	}
	sort.Slice(out.Slots, func(i, j int) bool { return out.Slots[i].Slot < out.Slots[j].Slot })
	return out, nil
}
