package jungle

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Hortensjaa/AI-course/game"
)

// Notation writes steps as "xs ys xd yd" and passes as "-1 -1 -1 -1".
type Notation struct{}

func (Notation) Format(m game.Move) string {
	if m.IsPass() {
		return "-1 -1 -1 -1"
	}
	return fmt.Sprintf("%d %d %d %d", m.From.X, m.From.Y, m.To.X, m.To.Y)
}

func (Notation) Parse(fields []string) (game.Move, error) {
	if len(fields) != 4 {
		return game.Pass, errors.Errorf("jungle move needs 4 coordinates, got %d", len(fields))
	}
	var c [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return game.Pass, errors.Wrapf(err, "jungle coordinate %q", f)
		}
		c[i] = v
	}
	for _, v := range c {
		if v == -1 {
			return game.Pass, nil
		}
	}
	if !onBoard(c[0], c[1]) || !onBoard(c[2], c[3]) {
		return game.Pass, errors.Errorf("jungle move %v is off the board", c)
	}
	return game.Step(c[0], c[1], c[2], c[3]), nil
}
