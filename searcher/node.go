package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/utils"
)

// node is an MCTS tree node. Its statistics are kept from the point of view
// of player, the side that made the move leading to it.
type node struct {
	parent     *node
	move       game.Move
	player     game.Player
	hash       uint64
	unexplored []game.Move
	explored   []game.Move // expansion order, aligned with children
	children   []*node
	rewards    float64
	visits     int
}

// newNode creates the node reached after player played move, state being
// the resulting position.
func newNode(parent *node, move game.Move, player game.Player, state game.State) *node {
	var moves []game.Move
	if !state.Result().Decided() {
		moves = state.LegalMoves(player.Opponent())
		if len(moves) == 0 {
			moves = []game.Move{game.Pass}
		}
	}
	return &node{
		parent:     parent,
		move:       move,
		player:     player,
		hash:       state.Hash(),
		unexplored: moves,
	}
}

// toMove is the side choosing among the node's children.
func (n *node) toMove() game.Player {
	return n.player.Opponent()
}

func (n *node) isTerminal() bool {
	return len(n.unexplored) == 0 && len(n.explored) == 0
}

// mustPass reports whether the side to move has no legal move.
func (n *node) mustPass() bool {
	switch {
	case len(n.unexplored) == 1 && len(n.explored) == 0:
		return n.unexplored[0].IsPass()
	case len(n.explored) == 1 && len(n.unexplored) == 0:
		return n.explored[0].IsPass()
	}
	return false
}

// SelectOrExpand descends one level and plays the corresponding move on
// state. It expands a random unexplored move when there is one and selects
// the child with the best UCT score otherwise. Terminal nodes return
// themselves.
func (n *node) SelectOrExpand(state game.State, cSquared float64, rng *rand.Rand) (child *node, selected bool) {
	if n.isTerminal() {
		return n, false
	}

	if len(n.unexplored) > 0 {
		return n.addChild(state, rng), false
	}

	child = n.children[n.pickChild(cSquared)]
	state.Apply(child.move, n.toMove())
	return child, true
}

func (n *node) addChild(state game.State, rng *rand.Rand) *node {
	i := rng.Intn(len(n.unexplored))
	move := n.unexplored[i]
	last := len(n.unexplored) - 1
	n.unexplored[i] = n.unexplored[last]
	n.unexplored = n.unexplored[:last]

	state.Apply(move, n.toMove())
	child := newNode(n, move, n.toMove(), state)
	n.explored = append(n.explored, move)
	n.children = append(n.children, child)
	return child
}

func (n *node) pickChild(cSquared float64) int {
	if n.visits == 0 {
		panic("node has children but no visits")
	}
	policy := newUCT(cSquared, float64(n.visits))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := policy.evaluate(child.rewards, float64(child.visits))
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// Backup records a finished simulation and returns the parent.
func (n *node) Backup(result game.Result, drawScore float64) *node {
	n.rewards += reward(result, n.player, drawScore)
	n.visits++
	return n.parent
}

// child returns the expanded child reached by move, nil if it was never
// expanded.
func (n *node) child(move game.Move) *node {
	i := utils.FindIndex(n.explored, move)
	if i < 0 {
		return nil
	}
	return n.children[i]
}

// findBestMove returns the most visited child's move, the earliest expanded
// one on ties.
func (n *node) findBestMove() game.Move {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	bestIndex := 0
	maxVisits := n.children[0].visits
	for i, child := range n.children[1:] {
		if child.visits > maxVisits {
			maxVisits = child.visits
			bestIndex = i + 1
		}
	}
	return n.explored[bestIndex]
}
