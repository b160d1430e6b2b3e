package connect4

import "github.com/Hortensjaa/AI-course/game"

// Weights scores open windows of four cells.
type Weights struct {
	Three  int // three discs and an empty cell
	Two    int // two discs and two empty cells
	Center int // per disc in the centre column
}

var DefaultWeights = Weights{Three: 5, Two: 2, Center: 3}

func NewEvaluator(w Weights) game.Evaluate {
	return func(gs game.State, perspective game.Player) int {
		if score, ok := game.TerminalScore(gs.Result(), perspective); ok {
			return score
		}
		s := gs.(*State)
		mine, theirs := cell(perspective), cell(perspective.Opponent())
		score := 0
		for row := 0; row < Rows; row++ {
			switch s.board[row][Columns/2] {
			case mine:
				score += w.Center
			case theirs:
				score -= w.Center
			}
		}
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				for _, d := range lines {
					er, ec := row+3*d[1], col+3*d[0]
					if er < 0 || er >= Rows || ec >= Columns {
						continue
					}
					var own, opp int
					for i := 0; i < 4; i++ {
						switch s.board[row+i*d[1]][col+i*d[0]] {
						case mine:
							own++
						case theirs:
							opp++
						}
					}
					score += w.window(own, opp) - w.window(opp, own)
				}
			}
		}
		return score
	}
}

func (w Weights) window(own, opp int) int {
	if opp > 0 {
		return 0
	}
	switch own {
	case 3:
		return w.Three
	case 2:
		return w.Two
	}
	return 0
}
