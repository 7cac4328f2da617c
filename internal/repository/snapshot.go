package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
)

var ErrSnapshotNotFound = errors.New("session snapshot not found")

// SnapshotRepository mirrors live session snapshots into Redis for the
// read-only REST surface. The in-memory registry stays authoritative;
// these copies are never read back to resume play.
type SnapshotRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id int) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id int) error
}

type dbSnapshot struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &dbSnapshot{
		client: client,
	}
}

func sessionKey(id int) string {
	return "session:" + strconv.Itoa(id)
}

func (that *dbSnapshot) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(game.ID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) GetByID(ctx context.Context, id int) (*entity.Game, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session snapshot: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}

	return &game, nil
}

func (that *dbSnapshot) List(ctx context.Context) ([]*entity.Game, error) {
	var games []*entity.Game

	iter := that.client.Scan(ctx, 0, "session:*", 0).Iterator()
	for iter.Next(ctx) {
		response, err := that.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			// snapshot removed between scan and get
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get session snapshot: %w", err)
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(response), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
		}

		games = append(games, &game)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan session snapshots: %w", err)
	}

	return games, nil
}

func (that *dbSnapshot) DeleteByID(ctx context.Context, id int) error {
	if err := that.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}

	return nil
}
