package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/search"
)

const bookProgressEvery = 1000

type moveRepo interface {
	Save(ctx context.Context, solution *entity.Solution) error
	Get(ctx context.Context, algorithm string, board entity.Board) (*entity.Solution, error)
}

// Solver answers best-move queries, consulting the move cache before searching.
type Solver struct {
	logger *slog.Logger

	moveRepo  moveRepo
	algorithm search.Algorithm
	workers   int
}

func NewSolver(logger *slog.Logger, moveRepo moveRepo, algorithm search.Algorithm, workers int) *Solver {
	return &Solver{
		logger: logger.With("component", "solver", "algorithm", string(algorithm)),

		moveRepo:  moveRepo,
		algorithm: algorithm,
		workers:   max(workers, 1),
	}
}

// BestMove - returns the optimal move for the player to move on board.
// Cache failures are logged and never fail the call.
func (that *Solver) BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if board.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTerminalBoard, board)
	}

	cached, err := that.moveRepo.Get(ctx, string(that.algorithm), board)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, repository.ErrMoveNotFound):
		that.logger.Debug("Move cache miss", "board", board.String())
	default:
		that.logger.Warn("Could not read move cache", "board", board.String(), "error", err)
	}

	result, err := search.Search(board, that.algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", board, err)
	}

	solution := &entity.Solution{
		Board:     board,
		Action:    result.Action,
		Value:     result.Value,
		Algorithm: string(that.algorithm),
	}

	if err = that.moveRepo.Save(ctx, solution); err != nil {
		that.logger.Warn("Could not write move cache", "board", board.String(), "error", err)
	}

	that.logger.Debug("Solved position", "board", board.String(), "action", result.Action.String(),
		"value", result.Value, "nodes", result.Nodes)

	return solution, nil
}

// BuildBook - solves and caches every reachable non-terminal position.
// It returns how many positions were solved before it finished or stopped.
func (that *Solver) BuildBook(ctx context.Context) (int, error) {
	positions := positionsToSolve()
	that.logger.Info("Building book", "positions", len(positions), "workers", that.workers)

	var solved atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(that.workers)

	for _, board := range positions {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if _, err := that.BestMove(gctx, board); err != nil {
				return err
			}

			if n := solved.Add(1); n%bookProgressEvery == 0 {
				that.logger.Info("Book progress", "solved", n, "total", len(positions))
			}

			return nil
		})
	}

	err := g.Wait()
	count := int(solved.Load())

	// the loop may stop on cancellation before any goroutine observes it
	if err == nil && count < len(positions) {
		err = ctx.Err()
	}

	if err != nil {
		return count, fmt.Errorf("failed to build book after %d positions: %w", count, err)
	}

	that.logger.Info("Book built", "positions", count)

	return count, nil
}

// positionsToSolve - walks the game tree from the empty board and returns each
// distinct non-terminal position once.
func positionsToSolve() []entity.Board {
	seen := make(map[entity.Board]struct{})
	queue := []entity.Board{entity.InitialBoard()}
	var positions []entity.Board

	for len(queue) > 0 {
		board := queue[0]
		queue = queue[1:]

		if _, ok := seen[board]; ok || board.IsTerminal() {
			continue
		}
		seen[board] = struct{}{}
		positions = append(positions, board)

		for _, action := range board.Actions() {
			child, err := board.Result(action)
			if err != nil {
				continue
			}
			queue = append(queue, child)
		}
	}

	return positions
}
