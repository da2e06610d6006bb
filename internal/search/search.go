// Package search picks the game-theoretically optimal move for the player to
// move. X maximises the board utility and O minimises it.
//
// Both algorithms walk the legal actions in row-major order and replace the
// current best only on a strict improvement, so among equally valued moves the
// first one in row-major order is chosen. Minimax and AlphaBeta therefore agree
// on the action as well as on the value.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type Algorithm string

const (
	AlgorithmMinimax   Algorithm = "minimax"
	AlgorithmAlphaBeta Algorithm = "alphabeta"
)

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// ParseAlgorithm - maps a configured name onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch algorithm := Algorithm(name); algorithm {
	case AlgorithmMinimax, AlgorithmAlphaBeta:
		return algorithm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Result is the outcome of one search from a root board.
type Result struct {
	Action entity.Action
	// Value is the utility reached with optimal play from both sides.
	Value int
	// Nodes counts the positions visited, root included.
	Nodes int
}

// Minimax - returns the optimal action, or false if the board is terminal.
func Minimax(board entity.Board) (entity.Action, bool) {
	result, err := Search(board, AlgorithmMinimax)
	if err != nil {
		return entity.Action{}, false
	}
	return result.Action, true
}

// AlphaBeta - returns the same action as Minimax while pruning subtrees
// that cannot change it.
func AlphaBeta(board entity.Board) (entity.Action, bool) {
	result, err := Search(board, AlgorithmAlphaBeta)
	if err != nil {
		return entity.Action{}, false
	}
	return result.Action, true
}

// Search - runs the given algorithm from board.
func Search(board entity.Board, algorithm Algorithm) (Result, error) {
	if board.IsTerminal() {
		return Result{}, apperror.ErrTerminalBoard
	}

	s := &searcher{}

	var (
		value  int
		action entity.Action
	)

	switch algorithm {
	case AlgorithmMinimax:
		value, action = s.minimax(board)
	case AlgorithmAlphaBeta:
		value, action = s.alphaBeta(board, math.MinInt, math.MaxInt)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return Result{Action: action, Value: value, Nodes: s.nodes}, nil
}

type searcher struct {
	nodes int
}

// next - applies an action known to be legal.
func next(board entity.Board, action entity.Action) entity.Board {
	child, err := board.Result(action)
	if err != nil {
		panic(fmt.Sprintf("search: legal action %s rejected on %s: %v", action, board, err))
	}
	return child
}

func (that *searcher) minimax(board entity.Board) (int, entity.Action) {
	that.nodes++

	if board.IsTerminal() {
		return board.Utility(), entity.Action{}
	}

	actions := board.Actions()
	maximizing := board.Player() == entity.PlayerX

	bestAction := actions[0]
	bestValue := math.MaxInt
	if maximizing {
		bestValue = math.MinInt
	}

	for _, action := range actions {
		value, _ := that.minimax(next(board, action))

		if (maximizing && value > bestValue) || (!maximizing && value < bestValue) {
			bestValue, bestAction = value, action
		}
	}

	return bestValue, bestAction
}

// alphaBeta is fail-soft: a returned value at or below alpha is an upper
// bound, at or above beta a lower bound, and exact in between.
func (that *searcher) alphaBeta(board entity.Board, alpha, beta int) (int, entity.Action) {
	that.nodes++

	if board.IsTerminal() {
		return board.Utility(), entity.Action{}
	}

	actions := board.Actions()
	bestAction := actions[0]

	if board.Player() == entity.PlayerX {
		bestValue := math.MinInt
		for _, action := range actions {
			value, _ := that.alphaBeta(next(board, action), alpha, beta)

			if value > bestValue {
				bestValue, bestAction = value, action
			}
			alpha = max(alpha, bestValue)

			// beta cut-off
			if alpha >= beta {
				break
			}
		}
		return bestValue, bestAction
	}

	bestValue := math.MaxInt
	for _, action := range actions {
		value, _ := that.alphaBeta(next(board, action), alpha, beta)

		if value < bestValue {
			bestValue, bestAction = value, action
		}
		beta = min(beta, bestValue)

		// alpha cut-off
		if alpha >= beta {
			break
		}
	}
	return bestValue, bestAction
}
