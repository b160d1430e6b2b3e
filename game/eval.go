package game

// WinScore is the magnitude of a decided game. Heuristic evaluations must stay
// strictly below it so that terminal outcomes always outrank them.
const WinScore = 1_000_000

// TerminalScore scores a decided result from perspective's point of view.
// The second return value is false while the game is still running.
func TerminalScore(r Result, perspective Player) (int, bool) {
	if !r.Decided() {
		return 0, false
	}
	winner, ok := r.Winner()
	if !ok {
		return 0, true
	}
	if winner == perspective {
		return WinScore, true
	}
	return -WinScore, true
}

// Manhattan returns the taxicab distance between two squares.
func Manhattan(a, b Square) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Sign maps a score to a result for First: positive wins, negative loses.
func Sign(score int) Result {
	switch {
	case score > 0:
		return FirstWon
	case score < 0:
		return SecondWon
	default:
		return Draw
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
