package jungle

import (
	"github.com/samber/lo"

	"github.com/Hortensjaa/AI-course/game"
)

// Weights parametrizes the evaluator. Distances are measured to the enemy den.
type Weights struct {
	Material int // per piece on the board
	Distance int // per unit of summed piece distance
	Closest  int // per unit of distance of the most advanced piece
	Mobility int // per legal move difference, 0 disables the term
}

var DefaultWeights = Weights{Material: 10, Distance: 2, Closest: 5}

// noPieces stands in for the closest distance of a side without pieces.
const noPieces = 100

// NewEvaluator returns a terminal-aware evaluator rewarding material and
// pressure on the enemy den.
func NewEvaluator(w Weights) game.Evaluate {
	return func(gs game.State, perspective game.Player) int {
		if score, ok := game.TerminalScore(gs.Result(), perspective); ok {
			return score
		}
		s := gs.(*State)
		opp := perspective.Opponent()
		mine, theirs := s.Pieces(perspective), s.Pieces(opp)
		myTarget, oppTarget := s.top.Den(opp), s.top.Den(perspective)

		mySum, myClosest := distances(mine, myTarget)
		oppSum, oppClosest := distances(theirs, oppTarget)

		score := w.Material*(len(mine)-len(theirs)) +
			w.Distance*(oppSum-mySum) +
			w.Closest*(oppClosest-myClosest)
		if w.Mobility != 0 {
			score += w.Mobility * (len(s.LegalMoves(perspective)) - len(s.LegalMoves(opp)))
		}
		return score
	}
}

func distances(pieces []game.Square, target game.Square) (sum, closest int) {
	if len(pieces) == 0 {
		return 0, noPieces
	}
	d := lo.Map(pieces, func(sq game.Square, _ int) int {
		return game.Manhattan(sq, target)
	})
	return lo.Sum(d), lo.Min(d)
}
