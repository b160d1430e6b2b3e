package searcher

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/Hortensjaa/AI-course/game"
)

// MoveOrderer sorts moves by a one-ply lookahead evaluation so that strong
// moves are searched first.
type MoveOrderer struct {
	evaluate game.Evaluate
}

func NewMoveOrderer(evaluate game.Evaluate) *MoveOrderer {
	return &MoveOrderer{evaluate: evaluate}
}

type scoredMove struct {
	move  game.Move
	score int
}

// Order returns the moves sorted best first for the maximizing side and
// worst first otherwise. Equal scores keep their generation order.
func (o *MoveOrderer) Order(moves []game.Move, state game.State, player, perspective game.Player, maximizing bool) []game.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		t := state.Apply(m, player)
		scored[i] = scoredMove{move: m, score: o.evaluate(state, perspective)}
		state.Undo(t)
	}

	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		if maximizing {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.score, b.score)
	})

	return lo.Map(scored, func(sm scoredMove, _ int) game.Move {
		return sm.move
	})
}
