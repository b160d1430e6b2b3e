package reversi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
)

// snapshot drops the undo stack so positions can be compared structurally.
func snapshot(s *State) State {
	c := *s
	c.history = nil
	return c
}

func TestNewState(t *testing.T) {
	s := New()

	require.Equal(t, game.First, s.ToMove(), "First should open")
	require.Equal(t, 2, s.Discs(game.First))
	require.Equal(t, 2, s.Discs(game.Second))
	require.Equal(t, game.NoResult, s.Result())
	require.ElementsMatch(t,
		[]game.Move{game.Place(3, 2), game.Place(2, 3), game.Place(4, 5), game.Place(5, 4)},
		s.LegalMoves(game.First),
		"Opening moves should flank the centre")
}

func TestApply(t *testing.T) {
	t.Run("flipping a line", func(t *testing.T) {
		s := New()
		s.Apply(game.Place(5, 4), game.First)

		owner, ok := s.At(4, 4)
		require.True(t, ok)
		require.Equal(t, game.First, owner, "Flanked disc should change colour")
		require.Equal(t, 4, s.Discs(game.First))
		require.Equal(t, 1, s.Discs(game.Second))
		require.Equal(t, game.Second, s.ToMove())
		require.Equal(t, s.computeHash(), s.Hash())
	})

	t.Run("two passes end the game", func(t *testing.T) {
		s := New()
		s.Apply(game.Pass, game.First)
		require.Equal(t, game.NoResult, s.Result(), "A single pass should not end the game")
		s.Apply(game.Pass, game.Second)
		require.Equal(t, game.Draw, s.Result(), "Equal disc counts should draw")
	})

	t.Run("undo out of order", func(t *testing.T) {
		s := New()
		first := s.Apply(game.Place(5, 4), game.First)
		s.Apply(game.Place(5, 5), game.Second)
		require.Panics(t, func() { s.Undo(first) }, "Undo must follow LIFO order")
	})
}

func TestUndoRestoresPosition(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := New()
		var tokens []game.Token
		var before []State

		for s.Result() == game.NoResult {
			p := s.ToMove()
			moves := s.LegalMoves(p)
			m := game.Pass
			if len(moves) > 0 {
				m = moves[rng.Intn(len(moves))]
			}
			prev := snapshot(s)
			tok := s.Apply(m, p)
			require.Equal(t, s.computeHash(), s.Hash(), "Incremental hash should match recompute")

			s.Undo(tok)
			require.Equal(t, prev, snapshot(s), "Undo should restore the position")

			before = append(before, prev)
			tokens = append(tokens, s.Apply(m, p))
		}

		for i := len(tokens) - 1; i >= 0; i-- {
			s.Undo(tokens[i])
			require.Equal(t, before[i], snapshot(s), "Unwinding the game should revisit every position")
			require.Equal(t, s.computeHash(), s.Hash())
		}
		require.Equal(t, snapshot(New()), snapshot(s))
	}
}

func TestClone(t *testing.T) {
	s := New()
	s.Apply(game.Place(5, 4), game.First)
	c := s.Clone().(*State)

	c.Apply(game.Place(5, 5), game.Second)
	require.Equal(t, game.Second, s.ToMove(), "Clone should not share the board")
	require.Equal(t, 1, s.Discs(game.Second))

	c.Undo(1)
	c.Undo(0)
	require.Equal(t, snapshot(New()), snapshot(c), "Clone should carry its own undo stack")
}

func TestEvaluator(t *testing.T) {
	eval := NewEvaluator(DefaultWeights)

	t.Run("symmetric start", func(t *testing.T) {
		s := New()
		require.Equal(t, 0, eval(s, game.First))
		require.Equal(t, 0, eval(s, game.Second))
	})

	t.Run("terminal dominance", func(t *testing.T) {
		s := New()
		s.Apply(game.Place(5, 4), game.First)
		s.Apply(game.Pass, game.Second)
		s.Apply(game.Pass, game.First)
		require.Equal(t, game.FirstWon, s.Result())
		require.Equal(t, game.WinScore, eval(s, game.First))
		require.Equal(t, -game.WinScore, eval(s, game.Second))
	})

	t.Run("mobility term", func(t *testing.T) {
		w := DefaultWeights
		w.Mobility = 10
		s := New()
		s.Apply(game.Place(5, 4), game.First)
		mine := len(s.LegalMoves(game.First))
		theirs := len(s.LegalMoves(game.Second))
		require.Equal(t,
			NewEvaluator(DefaultWeights)(s, game.First)+10*(mine-theirs),
			NewEvaluator(w)(s, game.First))
	})
}

func TestNotation(t *testing.T) {
	n := Notation{}

	require.Equal(t, "2 4", n.Format(game.Place(2, 4)))
	require.Equal(t, "-1 -1", n.Format(game.Pass))

	m, err := n.Parse([]string{"2", "4"})
	require.NoError(t, err)
	require.Equal(t, game.Place(2, 4), m)

	m, err = n.Parse([]string{"-1", "-1"})
	require.NoError(t, err)
	require.Equal(t, game.Pass, m)

	_, err = n.Parse([]string{"8", "0"})
	require.Error(t, err, "Off-board squares should be rejected")
	_, err = n.Parse([]string{"a", "0"})
	require.Error(t, err)
	_, err = n.Parse([]string{"1"})
	require.Error(t, err)
}
