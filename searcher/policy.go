package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
)

// RolloutPolicy picks the next move of a simulated game. moves is never
// empty.
type RolloutPolicy func(state game.State, player game.Player, moves []game.Move, rng *rand.Rand) game.Move

// RandomRollout plays uniformly random moves.
func RandomRollout(_ game.State, _ game.Player, moves []game.Move, rng *rand.Rand) game.Move {
	return moves[rng.Intn(len(moves))]
}

// GreedyRollout plays the move with the highest static weight, the first one
// generated on ties.
func GreedyRollout(weight func(game.Move) int) RolloutPolicy {
	return func(_ game.State, _ game.Player, moves []game.Move, _ *rand.Rand) game.Move {
		best, bestWeight := moves[0], weight(moves[0])
		for _, m := range moves[1:] {
			if w := weight(m); w > bestWeight {
				best, bestWeight = m, w
			}
		}
		return best
	}
}

// LookaheadRollout plays the move whose resulting position evaluates best for
// the mover.
func LookaheadRollout(evaluate game.Evaluate) RolloutPolicy {
	return func(state game.State, player game.Player, moves []game.Move, _ *rand.Rand) game.Move {
		best, bestScore := moves[0], -infinity
		for _, m := range moves {
			t := state.Apply(m, player)
			score := evaluate(state, player)
			state.Undo(t)
			if score > bestScore {
				best, bestScore = m, score
			}
		}
		return best
	}
}
