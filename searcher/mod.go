package searcher

import (
	"time"

	"github.com/Hortensjaa/AI-course/experiments/metrics"
	"github.com/Hortensjaa/AI-course/game"
)

// Searcher picks moves for one game at a time. Implementations are not safe
// for concurrent use; each game owns its searchers.
type Searcher interface {
	// ChooseMove returns the move to play for player, false when player has
	// no legal move. The state is left exactly as it was received. A
	// non-positive budget disables the time limit.
	ChooseMove(state game.State, player game.Player, budget time.Duration) (game.Move, bool)
	// Observe reports a move that was applied to the real game.
	Observe(move game.Move)
	// Reset prepares the searcher for a new game.
	Reset()
	LastMetric() metrics.SearchMetric
}

func reward(result game.Result, player game.Player, draw float64) float64 {
	winner, ok := result.Winner()
	switch {
	case !ok:
		return draw
	case winner == player:
		return Win
	default:
		return Loss
	}
}
