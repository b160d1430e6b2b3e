package connect4

import (
	"fmt"

	"github.com/Hortensjaa/AI-course/game"
)

const (
	Columns = 7
	Rows    = 6
)

// lines are the four directions a row of four can run in.
var lines = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

var zobrist = game.NewZobrist(Columns*Rows*2, 4)

// Drop returns the move dropping a disc into col.
func Drop(col int) game.Move {
	return game.Place(col, 0)
}

// State is a Connect Four position. Row 0 is the bottom of the grid.
type State struct {
	board   [Rows][Columns]int8 // 0 empty, 1 First, 2 Second
	heights [Columns]int
	filled  int
	toMove  game.Player
	passes  int
	result  game.Result
	hash    uint64
	history []record
}

type record struct {
	move   game.Move
	row    int
	player game.Player
	toMove game.Player
	passes int
	result game.Result
	hash   uint64
}

func New() *State {
	s := &State{}
	s.hash = s.computeHash()
	return s
}

func cell(p game.Player) int8 {
	return int8(p) + 1
}

func feature(row, col int, p game.Player) int {
	return (row*Columns+col)*2 + int(p)
}

func (s *State) ToMove() game.Player {
	return s.toMove
}

// Height returns the number of discs in col.
func (s *State) Height(col int) int {
	return s.heights[col]
}

func (s *State) LegalMoves(game.Player) []game.Move {
	if s.result.Decided() {
		return nil
	}
	var moves []game.Move
	for col := 0; col < Columns; col++ {
		if s.heights[col] < Rows {
			moves = append(moves, Drop(col))
		}
	}
	return moves
}

func (s *State) Apply(m game.Move, p game.Player) game.Token {
	t := game.Token(len(s.history))
	rec := record{move: m, player: p, toMove: s.toMove, passes: s.passes, result: s.result, hash: s.hash}

	if m.IsPass() {
		s.passes++
		if s.passes >= 2 && !s.result.Decided() {
			s.result = game.Draw
		}
	} else {
		col := m.To.X
		row := s.heights[col]
		if row >= Rows {
			panic(fmt.Sprintf("connect4: column %d is full", col))
		}
		rec.row = row
		s.board[row][col] = cell(p)
		s.heights[col]++
		s.filled++
		s.hash ^= zobrist.Key(feature(row, col, p))
		s.passes = 0
		switch {
		case s.result.Decided():
		case s.connects(row, col, p):
			s.result = game.WinFor(p)
		case s.filled == Rows*Columns:
			s.result = game.Draw
		}
	}

	s.hash ^= zobrist.SideKey(s.toMove) ^ zobrist.SideKey(p.Opponent())
	s.toMove = p.Opponent()
	s.history = append(s.history, rec)
	return t
}

// connects reports whether the disc on (row, col) completes four in a row.
func (s *State) connects(row, col int, p game.Player) bool {
	c := cell(p)
	for _, d := range lines {
		n := 1
		for _, sign := range [2]int{1, -1} {
			r, k := row+sign*d[1], col+sign*d[0]
			for r >= 0 && r < Rows && k >= 0 && k < Columns && s.board[r][k] == c {
				n++
				r, k = r+sign*d[1], k+sign*d[0]
			}
		}
		if n >= 4 {
			return true
		}
	}
	return false
}

func (s *State) Undo(t game.Token) {
	if int(t) != len(s.history)-1 {
		panic(fmt.Sprintf("connect4: undo token %d does not match stack height %d", t, len(s.history)))
	}
	rec := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	if !rec.move.IsPass() {
		s.board[rec.row][rec.move.To.X] = 0
		s.heights[rec.move.To.X]--
		s.filled--
	}
	s.toMove = rec.toMove
	s.passes = rec.passes
	s.result = rec.result
	s.hash = rec.hash
}

func (s *State) Result() game.Result {
	return s.result
}

func (s *State) Hash() uint64 {
	return s.hash
}

func (s *State) computeHash() uint64 {
	var h uint64
	for row := range s.board {
		for col, c := range s.board[row] {
			if c != 0 {
				h ^= zobrist.Key(feature(row, col, game.Player(c-1)))
			}
		}
	}
	return h ^ zobrist.SideKey(s.toMove)
}

func (s *State) Clone() game.State {
	c := *s
	c.history = append([]record(nil), s.history...)
	return &c
}
