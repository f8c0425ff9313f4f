package save

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/pkg/clock"
	redisclient "github.com/oakhaven/emberquest/internal/redis"
)

const (
	slotKeyPrefix = "save:"
	slotIndexKey  = "save:slots"

	errSlotEmpty    = "slot cannot be empty"
	errSnapshotNil  = "snapshot cannot be nil"
)

// record is the stored envelope around a snapshot.
type record struct {
	SavedAt  time.Time          `json:"saved_at"`
	Snapshot *entities.Snapshot `json:"snapshot"`
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis save repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed save repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}

	now := r.clock.Now().UTC()
	data, err := json.Marshal(record{SavedAt: now, Snapshot: input.Snapshot})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, slotKeyPrefix+input.Slot, data, 0)
	pipe.SAdd(ctx, slotIndexKey, input.Slot)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to write save slot %s", input.Slot)
	}
	return &SaveOutput{SavedAt: now}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	data, err := r.client.Get(ctx, slotKeyPrefix+input.Slot).Bytes()
	if err == redis.Nil {
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

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	deleted, err := r.client.Del(ctx, slotKeyPrefix+input.Slot).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete save slot %s", input.Slot)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}
	if err := r.client.SRem(ctx, slotIndexKey, input.Slot).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to unindex save slot %s", input.Slot)
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	slots, err := r.client.SMembers(ctx, slotIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list save slots")
	}
	sort.Strings(slots)

	out := &ListOutput{}
	for _, slot := range slots {
		loaded, err := r.Load(ctx, LoadInput{Slot: slot})
		if err != nil {
			if errors.IsNotFound(err) {
				continue // index drift; slot was deleted out of band
			}
			return nil, err
		}
		out.Slots = append(out.Slots, SlotInfo{Slot: slot, SavedAt: loaded.SavedAt})
	}
	return out, nil
}
