package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
)

func TestNewNode(t *testing.T) {
	t.Run("listing the moves of the side to move", func(t *testing.T) {
		state := newMockState(tree([]int{1}, []int{2}))
		n := newNode(nil, game.Pass, game.Second, state)

		require.Equal(t, []game.Move{game.Place(0, 0), game.Place(1, 0)}, n.unexplored)
		require.Equal(t, game.First, n.toMove())
		require.Equal(t, state.Hash(), n.hash)
	})

	t.Run("terminal state has no moves", func(t *testing.T) {
		n := newNode(nil, game.Pass, game.Second, newMockState(&treeNode{id: 1}))

		require.True(t, n.isTerminal())
	})

	t.Run("immobile side must pass", func(t *testing.T) {
		n := newNode(nil, game.Pass, game.Second, &stuckState{terminal: true})

		require.Equal(t, []game.Move{game.Pass}, n.unexplored)
		require.True(t, n.mustPass())
	})
}

func TestNodeSelectOrExpand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("selecting fully expanded node", func(t *testing.T) {
		maxChild := &node{move: game.Place(1, 0), player: game.First, rewards: 1, visits: 1}
		otherChild := &node{move: game.Place(0, 0), player: game.First, rewards: 0, visits: 1}
		n := &node{
			player:   game.Second,
			explored: []game.Move{game.Place(0, 0), game.Place(1, 0)},
			children: []*node{otherChild, maxChild},
			rewards:  1,
			visits:   2,
		}
		state := newMockState(tree([]int{1}, []int{2}))

		gotChild, gotSelected := n.SelectOrExpand(state, 2.0, rng)

		require.Same(t, maxChild, gotChild, "Node should select child with max policy value")
		require.True(t, gotSelected, "Node should perform selection")
		require.Len(t, state.path, 2, "State should follow the selected move")
		require.Equal(t, state.current(), state.path[0].children[1])
		require.Equal(t, 2, n.visits, "Node stats should not change")
	})

	t.Run("unvisited child comes first", func(t *testing.T) {
		visited := &node{move: game.Place(0, 0), player: game.First, rewards: 1, visits: 1}
		fresh := &node{move: game.Place(1, 0), player: game.First}
		n := &node{
			player:   game.Second,
			explored: []game.Move{game.Place(0, 0), game.Place(1, 0)},
			children: []*node{visited, fresh},
			visits:   1,
		}

		gotChild, _ := n.SelectOrExpand(newMockState(tree([]int{1}, []int{2})), 2.0, rng)
		require.Same(t, fresh, gotChild)
	})

	t.Run("expanding node with unexplored moves", func(t *testing.T) {
		state := newMockState(tree([]int{1}, []int{2}))
		n := newNode(nil, game.Pass, game.Second, state)

		gotChild, gotSelected := n.SelectOrExpand(state, 2.0, rng)

		require.False(t, gotSelected, "Node should expand a new child")
		require.Len(t, n.unexplored, 1)
		require.Len(t, n.children, 1)
		require.Same(t, gotChild, n.children[0])
		require.Same(t, n, gotChild.parent)
		require.Equal(t, game.First, gotChild.player, "Child should belong to the mover")
		require.Equal(t, state.Hash(), gotChild.hash, "State should follow the expanded move")
		require.Equal(t, []game.Move{gotChild.move}, n.explored)
	})

	t.Run("terminal node returns itself", func(t *testing.T) {
		state := newMockState(&treeNode{id: 1})
		n := newNode(nil, game.Pass, game.Second, state)

		gotChild, gotSelected := n.SelectOrExpand(state, 2.0, rng)

		require.Same(t, n, gotChild)
		require.False(t, gotSelected)
		require.Len(t, state.path, 1, "State should not change")
	})
}

func TestNodeBackup(t *testing.T) {
	t.Run("recording results for the mover", func(t *testing.T) {
		parent := &node{player: game.Second}
		n := &node{parent: parent, player: game.First}

		require.Same(t, parent, n.Backup(game.FirstWon, 0.5))
		n.Backup(game.SecondWon, 0.5)
		n.Backup(game.Draw, 0.5)

		require.Equal(t, 3, n.visits)
		require.InDelta(t, 1.5, n.rewards, 1e-9)
	})

	t.Run("walking up to the root", func(t *testing.T) {
		root := &node{player: game.Second}
		child := &node{parent: root, player: game.First}
		leaf := &node{parent: child, player: game.Second}

		backup(leaf, game.SecondWon, 0.5)

		require.Equal(t, []int{1, 1, 1}, []int{root.visits, child.visits, leaf.visits})
		require.Equal(t, []float64{Win, Loss, Win}, []float64{root.rewards, child.rewards, leaf.rewards})
	})
}

func TestNodeFindBestMove(t *testing.T) {
	n := &node{
		explored: []game.Move{game.Place(0, 0), game.Place(1, 0), game.Place(2, 0)},
		children: []*node{{visits: 3}, {visits: 5}, {visits: 5}},
	}

	require.Equal(t, game.Place(1, 0), n.findBestMove(), "Earliest most visited child should win")
	require.Same(t, n.children[2], n.child(game.Place(2, 0)))
	require.Nil(t, n.child(game.Place(3, 0)))
	require.Panics(t, func() { (&node{}).findBestMove() })
}
