package variants

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/game/connect4"
	"github.com/Hortensjaa/AI-course/game/jungle"
	"github.com/Hortensjaa/AI-course/game/reversi"
	"github.com/Hortensjaa/AI-course/searcher"
)

// Strategies understood by the agent builders.
const (
	AlphaBeta = "ab"
	MCTS      = "mcts"
)

// Variant binds a game to its evaluator, notation and default search tuning.
type Variant struct {
	Name     string
	New      func() game.State
	Evaluate game.Evaluate
	Notation game.Notation
	Depth    int                    // alpha-beta root depth
	Rollout  searcher.RolloutPolicy // greedy MCTS rollout, nil when the game has none
	Strategy string
}

var registry = map[string]Variant{
	"reversi": {
		Name:     "reversi",
		New:      func() game.State { return reversi.New() },
		Evaluate: reversi.NewEvaluator(reversi.DefaultWeights),
		Notation: reversi.Notation{},
		Depth:    searcher.DefaultMaxDepth,
		Rollout:  searcher.GreedyRollout(reversi.DefaultWeights.MoveWeight),
		Strategy: MCTS,
	},
	"jungle": {
		Name:     "jungle",
		New:      func() game.State { return jungle.NewStandard() },
		Evaluate: jungle.NewEvaluator(jungle.DefaultWeights),
		Notation: jungle.Notation{},
		Depth:    4,
		Strategy: AlphaBeta,
	},
	"connect4": {
		Name:     "connect4",
		New:      func() game.State { return connect4.New() },
		Evaluate: connect4.NewEvaluator(connect4.DefaultWeights),
		Notation: connect4.Notation{},
		Depth:    7,
		Strategy: AlphaBeta,
	},
}

func Lookup(name string) (Variant, error) {
	v, ok := registry[name]
	if !ok {
		return Variant{}, errors.Errorf("unknown game %q, expected one of %v", name, Names())
	}
	return v, nil
}

// Names lists the registered variants in alphabetical order.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}
