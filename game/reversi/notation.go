package reversi

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Hortensjaa/AI-course/game"
)

// Notation writes placements as "x y" and passes as "-1 -1".
type Notation struct{}

func (Notation) Format(m game.Move) string {
	if m.IsPass() {
		return "-1 -1"
	}
	return fmt.Sprintf("%d %d", m.To.X, m.To.Y)
}

func (Notation) Parse(fields []string) (game.Move, error) {
	if len(fields) != 2 {
		return game.Pass, errors.Errorf("reversi move needs 2 coordinates, got %d", len(fields))
	}
	var xy [2]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return game.Pass, errors.Wrapf(err, "reversi coordinate %q", f)
		}
		xy[i] = v
	}
	if xy[0] == -1 && xy[1] == -1 {
		return game.Pass, nil
	}
	if !onBoard(xy[0], xy[1]) {
		return game.Pass, errors.Errorf("reversi square (%d,%d) is off the board", xy[0], xy[1])
	}
	return game.Place(xy[0], xy[1]), nil
}
