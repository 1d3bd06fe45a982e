package character

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/chargen/internal/errors"
	redisclient "github.com/KirkDiggler/chargen/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	indexKey           = "character:index"
)

type redisRepository struct {
	client    redisclient.Client
	listLimit int
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	// ListConcurrency bounds parallel reads during List. Defaults to 8.
	ListConcurrency int
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limit := cfg.ListConcurrency
	if limit < 1 {
		limit = defaultListLimit
	}

	return &redisRepository{
		client:    cfg.Client,
		listLimit: limit,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateWrite(input.ID, input.Character); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.ID)
	}

	data, err := encode(input.Character)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Entry: &Entry{ID: input.ID, Character: input.Character}}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKeyPrefix+input.ID).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	c, err := decode(input.ID, result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Entry: &Entry{ID: input.ID, Character: c}}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateWrite(input.ID, input.Character); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	data, err := encode(input.Character)
	if err != nil {
		return nil, err
	}

	// last writer wins
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Entry: &Entry{ID: input.ID, Character: input.Character}}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, characterKeyPrefix+input.ID)
	pipe.SRem(ctx, indexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read character index")
	}

	slog.DebugContext(ctx, "found character IDs in index",
		"index_key", indexKey,
		"count", len(ids))

	found := make([]*Entry, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.listLimit)

	for i, id := range ids {
		g.Go(func() error {
			out, err := r.Get(gctx, GetInput{ID: id})
			switch {
			case err == nil:
				found[i] = out.Entry
				return nil
			case errors.IsNotFound(err):
				slog.WarnContext(gctx, "skipping unreadable character",
					"character_id", id,
					"error", err.Error())
				return nil
			default:
				return errors.Wrapf(err, "failed to get character %s", id)
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(found))
	for _, entry := range found {
		if entry != nil {
			entries = append(entries, entry)
		}
	}
	sortEntries(entries)

	return &ListOutput{Entries: entries}, nil
}
