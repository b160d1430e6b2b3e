package reversi

import (
	"fmt"
	"math/bits"

	"github.com/Hortensjaa/AI-course/game"
)

// Size is the side length of the board.
const Size = 8

const (
	empty int8 = iota
	firstDisc
	secondDisc
)

var directions = [8][2]int{
	{0, 1}, {1, 0}, {-1, 0}, {0, -1},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

var zobrist = game.NewZobrist(Size*Size*2, 8)

// State is a Reversi position. Moves are applied in place and reverted from
// the undo stack.
type State struct {
	board   [Size * Size]int8
	empty   uint64 // bit i set while square i is free
	discs   [2]int
	toMove  game.Player
	passes  int // consecutive passes leading to this position
	hash    uint64
	history []record
}

type record struct {
	move    game.Move
	player  game.Player
	toMove  game.Player
	flipped uint64
	passes  int
	hash    uint64
}

// New returns the initial position with First to move.
func New() *State {
	s := &State{empty: ^uint64(0)}
	s.put(3, 3, game.Second)
	s.put(4, 4, game.Second)
	s.put(4, 3, game.First)
	s.put(3, 4, game.First)
	s.hash = s.computeHash()
	return s
}

func (s *State) put(x, y int, p game.Player) {
	i := index(x, y)
	s.board[i] = disc(p)
	s.empty &^= 1 << i
	s.discs[p]++
}

func index(x, y int) int {
	return y*Size + x
}

func onBoard(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func disc(p game.Player) int8 {
	if p == game.First {
		return firstDisc
	}
	return secondDisc
}

func feature(i int, p game.Player) int {
	return i*2 + int(p)
}

func (s *State) ToMove() game.Player {
	return s.toMove
}

// At returns the owner of (x, y), false for empty squares.
func (s *State) At(x, y int) (game.Player, bool) {
	switch s.board[index(x, y)] {
	case firstDisc:
		return game.First, true
	case secondDisc:
		return game.Second, true
	default:
		return game.First, false
	}
}

// Discs returns the number of discs p has on the board.
func (s *State) Discs(p game.Player) int {
	return s.discs[p]
}

func (s *State) LegalMoves(p game.Player) []game.Move {
	var moves []game.Move
	for free := s.empty; free != 0; free &= free - 1 {
		i := bits.TrailingZeros64(free)
		x, y := i%Size, i/Size
		if s.flips(x, y, p) != 0 {
			moves = append(moves, game.Place(x, y))
		}
	}
	return moves
}

// flips returns the mask of opponent discs captured by p playing (x, y).
func (s *State) flips(x, y int, p game.Player) uint64 {
	own, opp := disc(p), disc(p.Opponent())
	var mask uint64
	for _, d := range directions {
		var line uint64
		cx, cy := x+d[0], y+d[1]
		for onBoard(cx, cy) && s.board[index(cx, cy)] == opp {
			line |= 1 << index(cx, cy)
			cx, cy = cx+d[0], cy+d[1]
		}
		if line != 0 && onBoard(cx, cy) && s.board[index(cx, cy)] == own {
			mask |= line
		}
	}
	return mask
}

func (s *State) Apply(m game.Move, p game.Player) game.Token {
	t := game.Token(len(s.history))
	rec := record{move: m, player: p, toMove: s.toMove, passes: s.passes, hash: s.hash}

	if m.IsPass() {
		s.passes++
	} else {
		i := index(m.To.X, m.To.Y)
		if s.board[i] != empty {
			panic(fmt.Sprintf("reversi: square %v is occupied", m.To))
		}
		rec.flipped = s.flips(m.To.X, m.To.Y, p)
		s.board[i] = disc(p)
		s.empty &^= 1 << i
		s.discs[p]++
		s.hash ^= zobrist.Key(feature(i, p))
		for mask := rec.flipped; mask != 0; mask &= mask - 1 {
			j := bits.TrailingZeros64(mask)
			s.board[j] = disc(p)
			s.hash ^= zobrist.Key(feature(j, p.Opponent())) ^ zobrist.Key(feature(j, p))
		}
		n := bits.OnesCount64(rec.flipped)
		s.discs[p] += n
		s.discs[p.Opponent()] -= n
		s.passes = 0
	}

	s.hash ^= zobrist.SideKey(s.toMove) ^ zobrist.SideKey(p.Opponent())
	s.toMove = p.Opponent()
	s.history = append(s.history, rec)
	return t
}

func (s *State) Undo(t game.Token) {
	if int(t) != len(s.history)-1 {
		panic(fmt.Sprintf("reversi: undo token %d does not match stack height %d", t, len(s.history)))
	}
	rec := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	if !rec.move.IsPass() {
		p := rec.player
		i := index(rec.move.To.X, rec.move.To.Y)
		s.board[i] = empty
		s.empty |= 1 << i
		s.discs[p]--
		for mask := rec.flipped; mask != 0; mask &= mask - 1 {
			s.board[bits.TrailingZeros64(mask)] = disc(p.Opponent())
		}
		n := bits.OnesCount64(rec.flipped)
		s.discs[p] -= n
		s.discs[p.Opponent()] += n
	}
	s.toMove = rec.toMove
	s.passes = rec.passes
	s.hash = rec.hash
}

func (s *State) Result() game.Result {
	switch {
	case s.discs[game.First] == 0:
		return game.SecondWon
	case s.discs[game.Second] == 0:
		return game.FirstWon
	case s.empty != 0 && s.passes < 2:
		return game.NoResult
	}
	return game.Sign(s.discs[game.First] - s.discs[game.Second])
}

func (s *State) Hash() uint64 {
	return s.hash
}

func (s *State) computeHash() uint64 {
	var h uint64
	for i, c := range s.board {
		switch c {
		case firstDisc:
			h ^= zobrist.Key(feature(i, game.First))
		case secondDisc:
			h ^= zobrist.Key(feature(i, game.Second))
		}
	}
	return h ^ zobrist.SideKey(s.toMove)
}

func (s *State) Clone() game.State {
	c := *s
	c.history = append([]record(nil), s.history...)
	return &c
}
