package reversi

import "github.com/Hortensjaa/AI-course/game"

// Weights parametrizes the positional evaluator.
type Weights struct {
	Squares  [Size][Size]int // indexed [y][x]
	Mobility int             // per legal move difference, 0 disables the term
}

// DefaultWeights favours corners and punishes the squares next to them.
var DefaultWeights = Weights{
	Squares: [Size][Size]int{
		{100, -20, 10, 5, 5, 10, -20, 100},
		{-20, -50, -2, -2, -2, -2, -50, -20},
		{10, -2, -1, -1, -1, -1, -2, 10},
		{5, -2, -1, -1, -1, -1, -2, 5},
		{5, -2, -1, -1, -1, -1, -2, 5},
		{10, -2, -1, -1, -1, -1, -2, 10},
		{-20, -50, -2, -2, -2, -2, -50, -20},
		{100, -20, 10, 5, 5, 10, -20, 100},
	},
}

// NewEvaluator returns a terminal-aware positional evaluator.
func NewEvaluator(w Weights) game.Evaluate {
	return func(gs game.State, perspective game.Player) int {
		if score, ok := game.TerminalScore(gs.Result(), perspective); ok {
			return score
		}
		s := gs.(*State)
		score := 0
		for i, c := range s.board {
			switch c {
			case empty:
				continue
			case disc(perspective):
				score += w.Squares[i/Size][i%Size]
			default:
				score -= w.Squares[i/Size][i%Size]
			}
		}
		if w.Mobility != 0 {
			mine := len(s.LegalMoves(perspective))
			theirs := len(s.LegalMoves(perspective.Opponent()))
			score += w.Mobility * (mine - theirs)
		}
		return score
	}
}

// MoveWeight scores a placement by the weight of its target square. It backs
// the greedy rollout policy.
func (w Weights) MoveWeight(m game.Move) int {
	if m.IsPass() {
		return 0
	}
	return w.Squares[m.To.Y][m.To.X]
}
