package jungle

import (
	"fmt"
	"strings"

	"github.com/Hortensjaa/AI-course/game"
)

// Animal is a piece kind, ordered by rank.
type Animal int8

const (
	Rat Animal = iota
	Cat
	Dog
	Wolf
	Leopard
	Tiger
	Lion
	Elephant
	animals
)

const letters = "rcdwjtle"

// DefaultQuietLimit is the number of plies without a capture after which the
// game is drawn.
const DefaultQuietLimit = 100

var directions = [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

var zobrist = game.NewZobrist(Width*Height*2*int(animals), 7)

// piece packs owner and animal, 0 marks an empty square.
type piece int8

func makePiece(p game.Player, a Animal) piece {
	return piece(int(p)*int(animals)+int(a)) + 1
}

func (pc piece) owner() game.Player {
	return game.Player((pc - 1) / piece(animals))
}

func (pc piece) animal() Animal {
	return Animal((pc - 1) % piece(animals))
}

func feature(i int, pc piece) int {
	return i*2*int(animals) + int(pc-1)
}

var layout = [Height]string{
	"L.....T",
	".D...C.",
	"R.J.W.E",
	".......",
	".......",
	".......",
	"e.w.j.r",
	".c...d.",
	"t.....l",
}

// State is a Jungle position. First plays the lowercase pieces at the bottom.
type State struct {
	top        *Topology
	board      [Width * Height]piece
	pos        [2][animals]int8 // square of each piece, -1 once captured
	counts     [2]int
	toMove     game.Player
	passes     int
	quiet      int // plies since the last capture
	quietLimit int
	hash       uint64
	history    []record
}

type record struct {
	move     game.Move
	player   game.Player
	toMove   game.Player
	captured piece
	passes   int
	quiet    int
	hash     uint64
}

type Option func(*State)

// WithQuietLimit overrides DefaultQuietLimit.
func WithQuietLimit(plies int) Option {
	return func(s *State) {
		s.quietLimit = plies
	}
}

// New returns the starting position on the given board.
func New(top *Topology, opts ...Option) *State {
	return fromLayout(top, layout, opts...)
}

func fromLayout(top *Topology, rows [Height]string, opts ...Option) *State {
	s := &State{top: top, quietLimit: DefaultQuietLimit}
	for p := range s.pos {
		for a := range s.pos[p] {
			s.pos[p][a] = -1
		}
	}
	for y, row := range rows {
		for x, c := range row {
			if c == '.' {
				continue
			}
			p := game.First
			if c >= 'A' && c <= 'Z' {
				p = game.Second
				c += 'a' - 'A'
			}
			a := Animal(strings.IndexRune(letters, c))
			i := index(x, y)
			s.board[i] = makePiece(p, a)
			s.pos[p][a] = int8(i)
			s.counts[p]++
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hash = s.computeHash()
	return s
}

// NewStandard returns the starting position on the standard board.
func NewStandard(opts ...Option) *State {
	return New(StandardTopology(), opts...)
}

func (s *State) ToMove() game.Player {
	return s.toMove
}

// At returns the piece on (x, y).
func (s *State) At(x, y int) (game.Player, Animal, bool) {
	pc := s.board[index(x, y)]
	if pc == 0 {
		return game.First, 0, false
	}
	return pc.owner(), pc.animal(), true
}

// Pieces returns the squares of p's remaining pieces in rank order.
func (s *State) Pieces(p game.Player) []game.Square {
	var sqs []game.Square
	for _, i := range s.pos[p] {
		if i >= 0 {
			sqs = append(sqs, square(int(i)))
		}
	}
	return sqs
}

// Topology returns the board the state is played on.
func (s *State) Topology() *Topology {
	return s.top
}

func (s *State) LegalMoves(p game.Player) []game.Move {
	var moves []game.Move
	for a, i := range s.pos[p] {
		if i < 0 {
			continue
		}
		moves = s.appendPieceMoves(moves, int(i), Animal(a), p)
	}
	return moves
}

func (s *State) appendPieceMoves(moves []game.Move, from int, a Animal, p game.Player) []game.Move {
	fx, fy := from%Width, from/Width
	for _, d := range directions {
		x, y := fx+d[0], fy+d[1]
		if !onBoard(x, y) {
			continue
		}
		if s.top.isWater(index(x, y)) {
			switch a {
			case Rat:
			case Lion, Tiger:
				var ok bool
				if x, y, ok = s.jump(x, y, d); !ok {
					continue
				}
			default:
				continue
			}
		}
		to := index(x, y)
		if to == s.top.dens[p] {
			continue
		}
		if target := s.board[to]; target != 0 {
			if target.owner() == p || !s.canCapture(from, to, a, target.animal(), p) {
				continue
			}
		}
		moves = append(moves, game.Step(fx, fy, x, y))
	}
	return moves
}

// jump crosses the river starting at water square (x, y). It fails when a rat
// swims in the way.
func (s *State) jump(x, y int, d [2]int) (int, int, bool) {
	for onBoard(x, y) && s.top.isWater(index(x, y)) {
		if pc := s.board[index(x, y)]; pc != 0 && pc.animal() == Rat {
			return 0, 0, false
		}
		x, y = x+d[0], y+d[1]
	}
	return x, y, onBoard(x, y)
}

func (s *State) canCapture(from, to int, attacker, defender Animal, p game.Player) bool {
	if s.top.isWater(from) != s.top.isWater(to) {
		return false
	}
	if owner, ok := s.top.trapOwner(to); ok && owner == p {
		return true
	}
	switch {
	case attacker == Rat && defender == Elephant:
		return true
	case attacker == Elephant && defender == Rat:
		return false
	default:
		return attacker >= defender
	}
}

func (s *State) Apply(m game.Move, p game.Player) game.Token {
	t := game.Token(len(s.history))
	rec := record{move: m, player: p, toMove: s.toMove, passes: s.passes, quiet: s.quiet, hash: s.hash}

	if m.IsPass() {
		s.passes++
		s.quiet++
	} else {
		from, to := index(m.From.X, m.From.Y), index(m.To.X, m.To.Y)
		pc := s.board[from]
		if pc == 0 || pc.owner() != p {
			panic(fmt.Sprintf("jungle: no piece of %v on %v", p, m.From))
		}
		rec.captured = s.board[to]
		if c := rec.captured; c != 0 {
			s.pos[c.owner()][c.animal()] = -1
			s.counts[c.owner()]--
			s.hash ^= zobrist.Key(feature(to, c))
			s.quiet = 0
		} else {
			s.quiet++
		}
		s.board[from] = 0
		s.board[to] = pc
		s.pos[p][pc.animal()] = int8(to)
		s.hash ^= zobrist.Key(feature(from, pc)) ^ zobrist.Key(feature(to, pc))
		s.passes = 0
	}

	s.hash ^= zobrist.SideKey(s.toMove) ^ zobrist.SideKey(p.Opponent())
	s.toMove = p.Opponent()
	s.history = append(s.history, rec)
	return t
}

func (s *State) Undo(t game.Token) {
	if int(t) != len(s.history)-1 {
		panic(fmt.Sprintf("jungle: undo token %d does not match stack height %d", t, len(s.history)))
	}
	rec := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	if !rec.move.IsPass() {
		from, to := index(rec.move.From.X, rec.move.From.Y), index(rec.move.To.X, rec.move.To.Y)
		pc := s.board[to]
		s.board[from] = pc
		s.pos[rec.player][pc.animal()] = int8(from)
		s.board[to] = rec.captured
		if c := rec.captured; c != 0 {
			s.pos[c.owner()][c.animal()] = int8(to)
			s.counts[c.owner()]++
		}
	}
	s.toMove = rec.toMove
	s.passes = rec.passes
	s.quiet = rec.quiet
	s.hash = rec.hash
}

func (s *State) Result() game.Result {
	switch {
	case s.counts[game.First] == 0:
		return game.SecondWon
	case s.counts[game.Second] == 0:
		return game.FirstWon
	}
	for _, p := range []game.Player{game.First, game.Second} {
		if pc := s.board[s.top.dens[p]]; pc != 0 && pc.owner() != p {
			return game.WinFor(pc.owner())
		}
	}
	if s.passes >= 2 || s.quiet >= s.quietLimit {
		return game.Draw
	}
	return game.NoResult
}

func (s *State) Hash() uint64 {
	return s.hash
}

func (s *State) computeHash() uint64 {
	var h uint64
	for i, pc := range s.board {
		if pc != 0 {
			h ^= zobrist.Key(feature(i, pc))
		}
	}
	return h ^ zobrist.SideKey(s.toMove)
}

func (s *State) Clone() game.State {
	c := *s
	c.history = append([]record(nil), s.history...)
	return &c
}

// String renders the board, First in lowercase.
func (s *State) String() string {
	var b strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			pc := s.board[index(x, y)]
			switch {
			case pc == 0:
				b.WriteByte('.')
			case pc.owner() == game.First:
				b.WriteByte(letters[pc.animal()])
			default:
				b.WriteByte(letters[pc.animal()] - 'a' + 'A')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
