package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""

	BoardSize = 3
	CellCount = BoardSize * BoardSize

	emptyKeyChar = '.'
)

// Mark is the content of a single cell.
type Mark string

// Opponent - returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

type Outcome string

const (
	OutcomeXWins      Outcome = "X wins"
	OutcomeOWins      Outcome = "O wins"
	OutcomeDraw       Outcome = "draw"
	OutcomeInProgress Outcome = "in progress"
)

// WinCombos lists the eight lines as row-major cell indexes.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Action identifies a cell by row and column.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

func (that Action) inBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is a 3x3 grid. It is a value type: transitions return a new Board
// and never modify the receiver.
type Board [BoardSize][BoardSize]Mark

// InitialBoard - returns the empty starting board.
func InitialBoard() Board {
	return Board{}
}

// ParseBoard - decodes the 9-character row-major key produced by Board.String.
func ParseBoard(key string) (Board, error) {
	var board Board

	if len(key) != CellCount {
		return board, fmt.Errorf("%w: key %q must have %d cells", apperror.ErrInvalidBoard, key, CellCount)
	}

	for i, ch := range key {
		switch ch {
		case 'X', 'x':
			board[i/BoardSize][i%BoardSize] = PlayerX
		case 'O', 'o':
			board[i/BoardSize][i%BoardSize] = PlayerO
		case emptyKeyChar, '-', ' ':
			board[i/BoardSize][i%BoardSize] = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: unknown cell %q in %q", apperror.ErrInvalidBoard, ch, key)
		}
	}

	xCount, oCount := board.count(PlayerX), board.count(PlayerO)
	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return Board{}, fmt.Errorf("%w: %d X and %d O marks cannot alternate", apperror.ErrInvalidBoard, xCount, oCount)
	}

	return board, nil
}

// String - encodes the board row-major with '.' for empty cells, e.g. "XX.OO....".
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte(emptyKeyChar)
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}

	*that = board
	return nil
}

// Filled - returns the number of occupied cells.
func (that Board) Filled() int {
	return CellCount - that.count(EmptyCell)
}

// Player - returns the mark of the player who moves next. X always moves first.
func (that Board) Player() Mark {
	if that.Filled()%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Actions - returns every empty cell in row-major order.
func (that Board) Actions() []Action {
	actions := make([]Action, 0, CellCount-that.Filled())

	for r, row := range that {
		for c, cell := range row {
			if cell == EmptyCell {
				actions = append(actions, Action{Row: r, Col: c})
			}
		}
	}

	return actions
}

// Result - returns the board after the current player marks the given cell.
// The cell must be empty on the receiver.
func (that Board) Result(action Action) (Board, error) {
	if !action.inBounds() {
		return that, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, action)
	}

	if that[action.Row][action.Col] != EmptyCell {
		return that, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.Player()

	return next, nil
}

// Winner - returns the mark holding a complete line, or EmptyCell.
func (that Board) Winner() Mark {
	// a line needs three marks of one kind
	if that.count(PlayerX) < BoardSize && that.count(PlayerO) < BoardSize {
		return EmptyCell
	}

	for _, combo := range WinCombos {
		a, b, c := that.cell(combo[0]), that.cell(combo[1]), that.cell(combo[2])
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsTerminal - reports whether someone has won or the board is full.
func (that Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.Filled() == CellCount
}

// Utility - returns 1 if X has won, -1 if O has won, 0 otherwise.
// It is meaningful only for terminal boards.
func (that Board) Utility() int {
	switch that.Winner() {
	case PlayerX:
		return 1
	case PlayerO:
		return -1
	default:
		return 0
	}
}

func (that Board) Outcome() Outcome {
	switch that.Winner() {
	case PlayerX:
		return OutcomeXWins
	case PlayerO:
		return OutcomeOWins
	}

	if that.Filled() == CellCount {
		return OutcomeDraw
	}

	return OutcomeInProgress
}

func (that Board) cell(index int) Mark {
	return that[index/BoardSize][index%BoardSize]
}

func (that Board) count(mark Mark) int {
	n := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				n++
			}
		}
	}
	return n
}
