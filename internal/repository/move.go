package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

var ErrMoveNotFound = errors.New("move not found")

const moveKeyPrefix = "move:"

type MoveRepository interface {
	Save(ctx context.Context, solution *entity.Solution) error
	Get(ctx context.Context, algorithm string, board entity.Board) (*entity.Solution, error)
	Count(ctx context.Context, algorithm string) (int, error)
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveRepository - stores solved positions; ttl 0 keeps them forever.
func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func moveKey(algorithm string, board entity.Board) string {
	return moveKeyPrefix + algorithm + ":" + board.String()
}

func (that *dbMove) Save(ctx context.Context, solution *entity.Solution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("could not marshal solution: %w", err)
	}

	key := moveKey(solution.Algorithm, solution.Board)
	if err = that.client.Set(ctx, key, solutionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move %s: %w", key, err)
	}

	return nil
}

func (that *dbMove) Get(ctx context.Context, algorithm string, board entity.Board) (*entity.Solution, error) {
	key := moveKey(algorithm, board)

	response, err := that.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMoveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get move %s: %w", key, err)
	}

	var solution entity.Solution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal move %s: %w", key, err)
	}

	return &solution, nil
}

func (that *dbMove) Count(ctx context.Context, algorithm string) (int, error) {
	count := 0

	iter := that.client.Scan(ctx, 0, moveKeyPrefix+algorithm+":*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan moves: %w", err)
	}

	return count, nil
}
