package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/game/connect4"
	"github.com/Hortensjaa/AI-course/game/jungle"
	"github.com/Hortensjaa/AI-course/game/reversi"
)

func TestAlphaBetaValue(t *testing.T) {
	t.Run("hand-built tree", func(t *testing.T) {
		// Leaves {3,5} under the first move and {2,8} under the second:
		// the minimizer answers 3 and 2, the maximizer takes 3.
		state := newMockState(tree([]int{3, 5}, []int{2, 8}))
		ab := NewAlphaBeta(evaluateMock, WithDepthController(FixedDepth{}))

		require.Equal(t, 3, ab.Value(state, game.First, 2))
		require.Len(t, state.path, 1, "State should be restored")

		move, ok := NewAlphaBeta(evaluateMock, WithMaxDepth(2)).ChooseMove(state, game.First, 0)
		require.True(t, ok)
		require.Equal(t, game.Place(0, 0), move, "Maximizer should pick the branch worth 3")
	})

	t.Run("pruning never changes the result", func(t *testing.T) {
		for seed := uint64(1); seed <= 300; seed++ {
			rng := rand.New(rand.NewSource(seed))
			root := randomTree(rng, 1+rng.Intn(4))
			for _, p := range []game.Player{game.First, game.Second} {
				state := newMockState(root)
				state.toMove = p
				ab := NewAlphaBeta(evaluateMock, WithDepthController(FixedDepth{}))

				want := minimax(root, true)
				if p == game.Second {
					want = -minimax(root, false)
				}
				require.Equal(t, want, ab.Value(state, p, 4), "seed %d player %v", seed, p)
			}
		}
	})

	t.Run("cache does not change the result on trees", func(t *testing.T) {
		for seed := uint64(1); seed <= 100; seed++ {
			rng := rand.New(rand.NewSource(seed))
			root := randomTree(rng, 4)
			cached := NewAlphaBeta(evaluateMock, WithDepthController(FixedDepth{}))
			plain := NewAlphaBeta(evaluateMock, WithDepthController(FixedDepth{}), WithoutCache())

			require.Equal(t,
				plain.Value(newMockState(root), game.First, 4),
				cached.Value(newMockState(root), game.First, 4),
				"seed %d", seed)
			require.Zero(t, plain.CacheLen())
		}
	})
}

func TestAlphaBetaNoMoves(t *testing.T) {
	t.Run("returning the pass sentinel", func(t *testing.T) {
		ab := NewAlphaBeta(evaluateZero)
		move, ok := ab.ChooseMove(&stuckState{terminal: true}, game.First, time.Second)

		require.False(t, ok, "No move should be available")
		require.Equal(t, game.Pass, move)
	})

	t.Run("double immobility ends in a terminal position", func(t *testing.T) {
		state := &stuckState{terminal: true}
		ab := NewAlphaBeta(evaluateZero)

		require.Equal(t, 0, ab.Value(state, game.First, 9))
		require.Zero(t, state.passes, "Passes should be undone")
	})

	t.Run("decided position with legal moves", func(t *testing.T) {
		state := jungle.NewStandard(jungle.WithQuietLimit(1))
		state.Apply(state.LegalMoves(game.First)[0], game.First)
		require.Equal(t, game.Draw, state.Result())
		require.NotEmpty(t, state.LegalMoves(game.Second), "Pieces can still move after the quiet limit")

		ab := NewAlphaBeta(jungle.NewEvaluator(jungle.DefaultWeights))
		move, ok := ab.ChooseMove(state, game.Second, time.Second)

		require.False(t, ok, "A drawn game has no move to choose")
		require.Equal(t, game.Pass, move)
	})

	t.Run("passing forever still terminates", func(t *testing.T) {
		state := &stuckState{}
		ab := NewAlphaBeta(evaluateZero, WithDepthController(NewBranchingDepth()))

		require.Equal(t, 0, ab.Value(state, game.First, 9))
		require.Zero(t, state.passes)
	})
}

func TestAlphaBetaTimeBudget(t *testing.T) {
	t.Run("respecting a short budget", func(t *testing.T) {
		state := reversi.New()
		for _, m := range []game.Move{game.Place(5, 4), game.Place(5, 5), game.Place(4, 5), game.Place(3, 5)} {
			state.Apply(m, state.ToMove())
		}
		before := state.Clone().(*reversi.State)
		ab := NewAlphaBeta(reversi.NewEvaluator(reversi.DefaultWeights), WithMaxDepth(20), WithABMetrics())

		start := time.Now()
		move, ok := ab.ChooseMove(state, state.ToMove(), 100*time.Millisecond)
		elapsed := time.Since(start)

		require.True(t, ok)
		require.Contains(t, state.LegalMoves(state.ToMove()), move, "Move should be legal")
		require.Less(t, elapsed, 200*time.Millisecond, "Search should stop near the budget")
		require.Equal(t, before.Hash(), state.Hash(), "State should be restored")
		require.True(t, ab.LastMetric().TimedOut)
		require.Positive(t, ab.LastMetric().Nodes)
	})

	t.Run("expired root keeps the first scored move", func(t *testing.T) {
		state := reversi.New()
		ab := NewAlphaBeta(reversi.NewEvaluator(reversi.DefaultWeights), WithMaxDepth(12), WithABMetrics())

		move, ok := ab.ChooseMove(state, game.First, time.Microsecond)

		require.True(t, ok)
		require.Equal(t, state.LegalMoves(game.First)[0], move)
		require.True(t, ab.LastMetric().TimedOut)
	})
}

// countingState counts move generations on a wrapped state.
type countingState struct {
	game.State
	calls int
}

func (c *countingState) LegalMoves(p game.Player) []game.Move {
	c.calls++
	return c.State.LegalMoves(p)
}

func evaluateCounting(s game.State, perspective game.Player) int {
	return connect4.NewEvaluator(connect4.DefaultWeights)(s.(*countingState).State, perspective)
}

func TestAlphaBetaCache(t *testing.T) {
	t.Run("reusing a cached root", func(t *testing.T) {
		state := &countingState{State: connect4.New()}
		ab := NewAlphaBeta(evaluateCounting, WithABMetrics())

		first := ab.Value(state, game.First, 4)
		require.Positive(t, state.calls)
		require.Positive(t, ab.CacheLen())

		state.calls = 0
		second := ab.Value(state, game.First, 4)
		require.Equal(t, first, second)
		require.Zero(t, state.calls, "Second query should not expand anything")
		require.Equal(t, 1, ab.LastMetric().CacheHits)
	})

	t.Run("deeper requests miss shallower entries", func(t *testing.T) {
		state := &countingState{State: connect4.New()}
		ab := NewAlphaBeta(evaluateCounting)

		ab.Value(state, game.First, 2)
		state.calls = 0
		ab.Value(state, game.First, 3)
		require.Positive(t, state.calls)
	})

	t.Run("reset clears the cache", func(t *testing.T) {
		ab := NewAlphaBeta(connect4.NewEvaluator(connect4.DefaultWeights))
		ab.Value(connect4.New(), game.First, 2)
		require.Positive(t, ab.CacheLen())

		ab.Reset()
		require.Zero(t, ab.CacheLen())
	})
}

func TestAlphaBetaTactics(t *testing.T) {
	t.Run("taking an immediate win", func(t *testing.T) {
		state := connect4.New()
		for _, col := range []int{0, 1, 0, 1, 0, 1} {
			state.Apply(connect4.Drop(col), state.ToMove())
		}
		ab := NewAlphaBeta(connect4.NewEvaluator(connect4.DefaultWeights), WithMaxDepth(4))

		move, ok := ab.ChooseMove(state, game.First, 0)
		require.True(t, ok)
		require.Equal(t, connect4.Drop(0), move)
	})

	t.Run("blocking an immediate loss", func(t *testing.T) {
		state := connect4.New()
		for _, col := range []int{6, 1, 5, 1, 0, 1} {
			state.Apply(connect4.Drop(col), state.ToMove())
		}
		ab := NewAlphaBeta(connect4.NewEvaluator(connect4.DefaultWeights), WithMaxDepth(4))

		move, ok := ab.ChooseMove(state, game.First, 0)
		require.True(t, ok)
		require.Equal(t, connect4.Drop(1), move)
	})
}
