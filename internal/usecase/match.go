package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type bot interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

// MatchManager lets the bot play both sides of a match, storing every ply.
type MatchManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	bot      bot
}

func NewMatchManager(logger *slog.Logger, gameRepo gameRepo, bot bot) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match"),

		gameRepo: gameRepo,
		bot:      bot,
	}
}

// PlayOut - starts a new match and plays it to the end.
func (that *MatchManager) PlayOut(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return that.play(ctx, game)
}

// Resume - continues a stored match from where it stopped.
func (that *MatchManager) Resume(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return that.play(ctx, game)
}

func (that *MatchManager) play(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	log := that.logger.With("game_id", game.ID)

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return game, err
		}

		mark := game.Turn
		if err := that.bot.MakeTurn(ctx, game); err != nil {
			return game, fmt.Errorf("failed make turn: %w", err)
		}

		if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return game, fmt.Errorf("failed update game: %w", err)
		}

		log.Debug("Turn played", "player", string(mark), "action", game.Moves[len(game.Moves)-1].String(),
			"board", game.Board.String())
	}

	log.Info("Match finished", "winner", string(game.Winner), "moves", len(game.Moves),
		"outcome", string(game.Board.Outcome()))

	return game, nil
}
