package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type moveSolver interface {
	BestMove(ctx context.Context, board entity.Board) (*entity.Solution, error)
}

// BotService plays whichever side is to move in a game.
type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	solver moveSolver
}

func NewBotService(solver moveSolver) BotService {
	return &botService{
		solver: solver,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	solution, err := that.solver.BestMove(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("bot failed to find a move: %w", err)
	}

	if err = game.MakeTurn(game.Turn, solution.Action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
