package connect4

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/Hortensjaa/AI-course/game"
)

// Notation writes a drop as its column and a pass as "-1".
type Notation struct{}

func (Notation) Format(m game.Move) string {
	if m.IsPass() {
		return "-1"
	}
	return strconv.Itoa(m.To.X)
}

func (Notation) Parse(fields []string) (game.Move, error) {
	if len(fields) != 1 {
		return game.Pass, errors.Errorf("connect4 move needs a column, got %d fields", len(fields))
	}
	col, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Pass, errors.Wrapf(err, "connect4 column %q", fields[0])
	}
	switch {
	case col == -1:
		return game.Pass, nil
	case col < 0 || col >= Columns:
		return game.Pass, errors.Errorf("connect4 column %d is off the board", col)
	}
	return Drop(col), nil
}
