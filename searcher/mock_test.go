package searcher

import (
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/game"
)

// treeNode is a position of a synthetic game. Leaves are terminal and values
// are seen from First.
type treeNode struct {
	id       uint64
	value    int
	children []*treeNode
}

// mockState walks a synthetic game tree. Move i selects child i.
type mockState struct {
	path   []*treeNode
	toMove game.Player
	calls  int // LegalMoves invocations
}

func newMockState(root *treeNode) *mockState {
	return &mockState{path: []*treeNode{root}}
}

func (m *mockState) current() *treeNode {
	return m.path[len(m.path)-1]
}

func (m *mockState) ToMove() game.Player {
	return m.toMove
}

func (m *mockState) LegalMoves(game.Player) []game.Move {
	m.calls++
	var moves []game.Move
	for i := range m.current().children {
		moves = append(moves, game.Place(i, 0))
	}
	return moves
}

func (m *mockState) Apply(move game.Move, p game.Player) game.Token {
	t := game.Token(len(m.path) - 1)
	m.path = append(m.path, m.current().children[move.To.X])
	m.toMove = p.Opponent()
	return t
}

func (m *mockState) Undo(t game.Token) {
	if int(t) != len(m.path)-2 {
		panic("mock: undo out of order")
	}
	m.path = m.path[:len(m.path)-1]
	m.toMove = m.toMove.Opponent()
}

func (m *mockState) Result() game.Result {
	if len(m.current().children) == 0 {
		return game.Draw
	}
	return game.NoResult
}

func (m *mockState) Hash() uint64 {
	return m.current().id
}

func (m *mockState) Clone() game.State {
	c := *m
	c.path = append([]*treeNode(nil), m.path...)
	return &c
}

func evaluateMock(s game.State, perspective game.Player) int {
	v := s.(*mockState).current().value
	if perspective == game.Second {
		return -v
	}
	return v
}

// tree builds a two-level tree from leaf values, grouped per root move.
func tree(groups ...[]int) *treeNode {
	var id uint64
	next := func() uint64 {
		id++
		return id
	}
	root := &treeNode{id: next()}
	for _, leaves := range groups {
		child := &treeNode{id: next()}
		for _, v := range leaves {
			child.children = append(child.children, &treeNode{id: next(), value: v})
		}
		root.children = append(root.children, child)
	}
	return root
}

// randomTree builds a tree of at most depth plies with 1 to 3 children per
// inner node. Some branches end early.
func randomTree(rng *rand.Rand, depth int) *treeNode {
	var id uint64
	var build func(depth int) *treeNode
	build = func(depth int) *treeNode {
		id++
		n := &treeNode{id: id, value: rng.Intn(201) - 100}
		if depth == 0 || (id > 1 && rng.Intn(5) == 0) {
			return n
		}
		k := 1 + rng.Intn(3)
		for i := 0; i < k; i++ {
			n.children = append(n.children, build(depth-1))
		}
		return n
	}
	return build(depth)
}

func minimax(n *treeNode, maximizing bool) int {
	if len(n.children) == 0 {
		return n.value
	}
	best := minimax(n.children[0], !maximizing)
	for _, c := range n.children[1:] {
		v := minimax(c, !maximizing)
		if maximizing {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}

// stuckState never has a legal move. With terminal set it ends after two
// consecutive passes.
type stuckState struct {
	passes   int
	terminal bool
	toMove   game.Player
}

func (s *stuckState) ToMove() game.Player                { return s.toMove }
func (s *stuckState) LegalMoves(game.Player) []game.Move { return nil }
func (s *stuckState) Hash() uint64                       { return uint64(s.passes)<<1 | uint64(s.toMove) }
func (s *stuckState) Clone() game.State                  { c := *s; return &c }

func (s *stuckState) Apply(move game.Move, p game.Player) game.Token {
	if !move.IsPass() {
		panic("stuck: only passes are possible")
	}
	s.passes++
	s.toMove = p.Opponent()
	return game.Token(s.passes - 1)
}

func (s *stuckState) Undo(t game.Token) {
	if int(t) != s.passes-1 {
		panic("stuck: undo out of order")
	}
	s.passes--
	s.toMove = s.toMove.Opponent()
}

func (s *stuckState) Result() game.Result {
	if s.terminal && s.passes >= 2 {
		return game.Draw
	}
	return game.NoResult
}

func evaluateZero(game.State, game.Player) int {
	return 0
}
