package searcher

// Hyperparameters for alpha-beta

const DefaultMaxDepth = 9

// DefaultSafetyFactor is the share of the time budget a search may use
// before it starts returning static evaluations.
const DefaultSafetyFactor = 0.9

// Move ordering pays off only when enough depth remains below the node
const DefaultOrderingDepth = 4

// DefaultMaxPly caps recursion regardless of the depth controller.
const DefaultMaxPly = 64

// Branching thresholds of the depth controller
const (
	DefaultUpperBranching = 7
	DefaultLowerBranching = 4
)

// Hyperparameters for MCTS

const DefaultExploration = 1.44

// Rewards are win probabilities from the mover's point of view
const (
	Win              = 1.0
	Loss             = 0.0
	DefaultDrawScore = 0.5
)

// DefaultCutoff bounds rollouts in plies.
const DefaultCutoff = 200
