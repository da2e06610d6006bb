package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrNotADraw     = errors.New("self-play match did not end in a draw")
)

// RunApp - builds the book of solved positions and verifies it with a self-play match.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}()

	moveRepo := repository.NewMoveRepository(redisStorage.Connection, conf.Book.TTL)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	solver := usecase.NewSolver(logger, moveRepo, conf.SearchAlgorithm(), conf.Book.Workers)
	matchManager := usecase.NewMatchManager(logger, gameRepo, service.NewBotService(solver))

	if conf.Book.Skip {
		log.Info("Skipping book build")
	} else {
		if _, err = solver.BuildBook(ctx); err != nil {
			return fmt.Errorf("book build failed: %w", err)
		}

		stored, countErr := moveRepo.Count(ctx, string(conf.SearchAlgorithm()))
		if countErr != nil {
			log.Warn("could not count stored moves", "error", countErr)
		} else {
			log.Info("Book stored", "moves", stored)
		}
	}

	game, err := matchManager.PlayOut(ctx)
	if err != nil {
		return fmt.Errorf("self-play failed: %w", err)
	}

	if game.Winner != entity.PlayerTie {
		return fmt.Errorf("%w: game %s won by %s", ErrNotADraw, game.ID, game.Winner)
	}

	log.Info("Self-play verified", "game_id", game.ID, "board", game.Board.String())

	return nil
}
