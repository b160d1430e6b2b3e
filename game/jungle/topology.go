package jungle

import (
	"github.com/pkg/errors"

	"github.com/Hortensjaa/AI-course/game"
)

const (
	Width  = 7
	Height = 9
)

type terrain int8

const (
	land terrain = iota
	water
	trap
	den
)

// Topology is the static part of the board: rivers, traps and dens. It is
// shared by every state built on it and never mutated after construction.
type Topology struct {
	terrain [Width * Height]terrain
	owner   [Width * Height]game.Player // owner of a trap or den square
	dens    [2]int
}

// NewTopology validates and builds a board layout. Traps belong to the
// player whose den they guard.
func NewTopology(rivers []game.Square, traps [2][]game.Square, dens [2]game.Square) (*Topology, error) {
	t := &Topology{}
	mark := func(sq game.Square, kind terrain, p game.Player) error {
		if !onBoard(sq.X, sq.Y) {
			return errors.Errorf("square %v is off the board", sq)
		}
		i := index(sq.X, sq.Y)
		if t.terrain[i] != land {
			return errors.Errorf("square %v is assigned twice", sq)
		}
		t.terrain[i] = kind
		t.owner[i] = p
		return nil
	}
	for _, p := range []game.Player{game.First, game.Second} {
		if err := mark(dens[p], den, p); err != nil {
			return nil, errors.WithMessagef(err, "den of %v", p)
		}
		t.dens[p] = index(dens[p].X, dens[p].Y)
		for _, sq := range traps[p] {
			if err := mark(sq, trap, p); err != nil {
				return nil, errors.WithMessagef(err, "trap of %v", p)
			}
		}
	}
	for _, sq := range rivers {
		if err := mark(sq, water, game.First); err != nil {
			return nil, errors.WithMessage(err, "river")
		}
	}
	return t, nil
}

// StandardTopology returns the usual board: two 2x3 rivers and a den with
// three traps on each short edge.
func StandardTopology() *Topology {
	var rivers []game.Square
	for _, x := range []int{1, 2, 4, 5} {
		for y := 3; y <= 5; y++ {
			rivers = append(rivers, game.Square{X: x, Y: y})
		}
	}
	t, err := NewTopology(rivers,
		[2][]game.Square{
			{{X: 2, Y: 8}, {X: 4, Y: 8}, {X: 3, Y: 7}},
			{{X: 2, Y: 0}, {X: 4, Y: 0}, {X: 3, Y: 1}},
		},
		[2]game.Square{{X: 3, Y: 8}, {X: 3, Y: 0}},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Den returns the den square of p.
func (t *Topology) Den(p game.Player) game.Square {
	return square(t.dens[p])
}

func (t *Topology) isWater(i int) bool {
	return t.terrain[i] == water
}

func (t *Topology) trapOwner(i int) (game.Player, bool) {
	return t.owner[i], t.terrain[i] == trap
}

func index(x, y int) int {
	return y*Width + x
}

func square(i int) game.Square {
	return game.Square{X: i % Width, Y: i / Width}
}

func onBoard(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
