package usecase

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockMoveRepo struct {
	mock.Mock
}

func (that *mockMoveRepo) Save(ctx context.Context, solution *entity.Solution) error {
	args := that.Called(ctx, solution)
	return args.Error(0)
}

func (that *mockMoveRepo) Get(ctx context.Context, algorithm string, board entity.Board) (*entity.Solution, error) {
	args := that.Called(ctx, algorithm, board)
	solution, _ := args.Get(0).(*entity.Solution)
	return solution, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

// memoryMoveRepo is a goroutine-safe in-process move cache.
type memoryMoveRepo struct {
	mu    sync.Mutex
	moves map[string]entity.Solution
	saves int
}

func newMemoryMoveRepo() *memoryMoveRepo {
	return &memoryMoveRepo{moves: make(map[string]entity.Solution)}
}

func (that *memoryMoveRepo) Save(_ context.Context, solution *entity.Solution) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[solution.Algorithm+":"+solution.Board.String()] = *solution
	that.saves++
	return nil
}

func (that *memoryMoveRepo) Get(_ context.Context, algorithm string, board entity.Board) (*entity.Solution, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	solution, ok := that.moves[algorithm+":"+board.String()]
	if !ok {
		return nil, repository.ErrMoveNotFound
	}
	return &solution, nil
}

func (that *memoryMoveRepo) saveCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.saves
}

type memoryGameRepo struct {
	games map[string]entity.Game
	saves int
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string]entity.Game)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	stored := *game
	stored.Moves = slices.Clone(game.Moves)

	that.games[game.ID] = stored
	that.saves++
	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	game.Moves = slices.Clone(game.Moves)
	return &game, nil
}
