package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie Mark = "-"
)

// Game is a stored match: the current board plus the moves that led to it.
type Game struct {
	ID     string   `json:"id"`
	Board  Board    `json:"board"`
	Winner Mark     `json:"winner"`
	Status string   `json:"status"`
	Turn   Mark     `json:"player_turn"`
	Moves  []Action `json:"moves,omitempty"`
}

func NewGame(id string) *Game {
	board := InitialBoard()

	return &Game{
		ID:     id,
		Board:  board,
		Turn:   board.Player(),
		Status: StatusOngoing,
	}
}

func (that *Game) UpdateGameState() {
	switch outcome := that.Board.Outcome(); outcome {
	// one player wins
	case OutcomeXWins, OutcomeOWins:
		that.Winner = that.Board.Winner()
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case OutcomeDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = that.Board.Player()
	}
}

func (that *Game) MakeTurn(playerMark Mark, action Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	next, err := that.Board.Result(action)
	if err != nil {
		return fmt.Errorf("player %s: %w", playerMark, err)
	}

	that.Board = next
	that.Moves = append(that.Moves, action)
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
