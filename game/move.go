package game

import "fmt"

// Square is a board coordinate, X is the column and Y the row.
type Square struct {
	X, Y int
}

// NoSquare lies outside every board.
var NoSquare = Square{X: -1, Y: -1}

func (s Square) Valid() bool {
	return s.X >= 0 && s.Y >= 0
}

// Move represents a transition of the game. Placement games leave From as
// NoSquare, drop games keep the column in To.X and leave To.Y at zero.
type Move struct {
	From Square
	To   Square
}

// Pass is the null move played when the side to move has no legal moves.
var Pass = Move{From: NoSquare, To: NoSquare}

// Place returns a placement move onto (x, y).
func Place(x, y int) Move {
	return Move{From: NoSquare, To: Square{X: x, Y: y}}
}

// Step returns a move of the piece on (fx, fy) to (tx, ty).
func Step(fx, fy, tx, ty int) Move {
	return Move{From: Square{X: fx, Y: fy}, To: Square{X: tx, Y: ty}}
}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	switch {
	case m.IsPass():
		return "pass"
	case !m.From.Valid():
		return fmt.Sprintf("(%d,%d)", m.To.X, m.To.Y)
	default:
		return fmt.Sprintf("(%d,%d)->(%d,%d)", m.From.X, m.From.Y, m.To.X, m.To.Y)
	}
}
