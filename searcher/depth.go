package searcher

// DepthController re-derives the remaining depth of a node once its
// branching factor is known.
type DepthController interface {
	NextDepth(depth, branching int) int
}

// BranchingDepth searches forced lines deeper and wide nodes shallower.
type BranchingDepth struct {
	Upper int // above this many moves the node loses two plies
	Lower int // below this many moves the node keeps its depth
}

func NewBranchingDepth() BranchingDepth {
	return BranchingDepth{Upper: DefaultUpperBranching, Lower: DefaultLowerBranching}
}

func (b BranchingDepth) NextDepth(depth, branching int) int {
	switch {
	case branching == 1:
		return depth + 1
	case branching > b.Upper:
		return depth - 2
	case branching < b.Lower:
		return depth
	default:
		return depth - 1
	}
}

// FixedDepth leaves the depth untouched.
type FixedDepth struct{}

func (FixedDepth) NextDepth(depth, _ int) int {
	return depth
}
