package gamemaster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/game/connect4"
	"github.com/Hortensjaa/AI-course/game/reversi"
)

func TestGameMasterPlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		gm := New(reversi.New())

		err := gm.Play(game.Place(3, 2))

		require.NoError(t, err)
		require.Equal(t, game.Second, gm.ToMove())
		require.Equal(t, []Turn{{Player: game.First, Move: game.Place(3, 2)}}, gm.History())
	})

	t.Run("illegal move", func(t *testing.T) {
		gm := New(reversi.New())

		err := gm.Play(game.Place(0, 0))

		require.Error(t, err)
		require.Empty(t, gm.History(), "Rejected moves should not be recorded")
		require.Equal(t, game.First, gm.ToMove())
	})

	t.Run("pass while moves exist", func(t *testing.T) {
		gm := New(reversi.New())

		require.Error(t, gm.Play(game.Pass))
	})

	t.Run("forced pass", func(t *testing.T) {
		gm := New(&immobile{State: connect4.New()})
		require.NoError(t, gm.Play(game.Pass))
		require.Equal(t, game.Second, gm.ToMove())
	})

	t.Run("game over", func(t *testing.T) {
		gm := New(connect4.New())
		for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
			require.NoError(t, gm.Play(connect4.Drop(col)))
		}

		require.Equal(t, game.FirstWon, gm.Result())
		require.ErrorIs(t, gm.Play(connect4.Drop(2)), ErrGameOver)
		require.Empty(t, gm.LegalMoves())
		require.Len(t, gm.History(), 7)
	})
}

func TestGameMasterState(t *testing.T) {
	gm := New(connect4.New())
	require.NoError(t, gm.Play(connect4.Drop(3)))

	state := gm.State()
	state.Apply(connect4.Drop(3), game.Second)

	require.NotEqual(t, state.Hash(), gm.State().Hash(), "State should return an independent copy")
	require.Len(t, gm.LegalMoves(), connect4.Columns)
}

// immobile hides every move of an otherwise running game.
type immobile struct {
	*connect4.State
}

func (s *immobile) LegalMoves(game.Player) []game.Move {
	return nil
}

func (s *immobile) Clone() game.State {
	return &immobile{State: s.State.Clone().(*connect4.State)}
}
