package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haneulsoft/timetable-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SelectionRepository persists each planner's selected section ids as a
// JSON array under a term-versioned Redis key, and fans selection changes
// out over Pub/Sub for live schedule streams.
type SelectionRepository struct {
	rdb  *redis.Client
	keys *config.KeyBuilder
	log  zerolog.Logger
}

func NewSelectionRepository(rdb *redis.Client, keys *config.KeyBuilder, log zerolog.Logger) *SelectionRepository {
	return &SelectionRepository{
		rdb:  rdb,
		keys: keys,
		log:  log.With().Str("component", "selection_repository").Logger(),
	}
}

// Load returns the stored ids for a planner. A missing key yields an
// empty selection. Corrupt or non-array content is discarded and the key
// deleted; recovery never surfaces to the caller.
func (r *SelectionRepository) Load(ctx context.Context, plannerID string) ([]string, error) {
	key := r.keys.SelectionKey(plannerID)

	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load selection: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		r.log.Warn().Str("planner_id", plannerID).Msg("Discarding corrupt selection payload")
		if delErr := r.rdb.Del(ctx, key).Err(); delErr != nil {
			return nil, fmt.Errorf("clear corrupt selection: %w", delErr)
		}
		return nil, nil
	}
	return ids, nil
}

// Save overwrites the stored selection. The write happens synchronously
// after every mutation; there is no batching.
func (r *SelectionRepository) Save(ctx context.Context, plannerID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := r.rdb.Set(ctx, r.keys.SelectionKey(plannerID), data, 0).Err(); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// PublishSchedule broadcasts a schedule snapshot to the planner's
// channel. Streams that joined late still get a snapshot on connect, so
// delivery here is fire-and-forget.
func (r *SelectionRepository) PublishSchedule(ctx context.Context, plannerID string, snapshot []byte) error {
	return r.rdb.Publish(ctx, r.keys.ScheduleChannel(plannerID), snapshot).Err()
}

// SubscribeSchedule subscribes to the planner's schedule channel.
func (r *SelectionRepository) SubscribeSchedule(ctx context.Context, plannerID string) *redis.PubSub {
	return r.rdb.Subscribe(ctx, r.keys.ScheduleChannel(plannerID))
}
