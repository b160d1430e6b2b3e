package searcher

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hortensjaa/AI-course/experiments/metrics"
	"github.com/Hortensjaa/AI-course/game"
)

const infinity = math.MaxInt

type ABOption func(ab *AlphaBeta)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning. It
// mutates the state in place and restores it before returning.
type AlphaBeta struct {
	evaluate      game.Evaluate
	maxDepth      int
	safety        float64
	orderingDepth int
	maxPly        int
	depth         DepthController
	orderer       *MoveOrderer
	cache         *TranspositionCache
	metrics       metrics.Collector
	last          metrics.SearchMetric

	start   time.Time
	limit   time.Duration // zero when the search is unbounded
	expired bool
}

func WithMaxDepth(depth int) ABOption {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.maxDepth = depth
		}
	}
}

func WithSafetyFactor(factor float64) ABOption {
	return func(ab *AlphaBeta) {
		if factor > 0 && factor <= 1 {
			ab.safety = factor
		}
	}
}

func WithOrderingDepth(depth int) ABOption {
	return func(ab *AlphaBeta) {
		ab.orderingDepth = depth
	}
}

func WithDepthController(controller DepthController) ABOption {
	return func(ab *AlphaBeta) {
		if controller != nil {
			ab.depth = controller
		}
	}
}

func WithMaxPly(plies int) ABOption {
	return func(ab *AlphaBeta) {
		if plies > 0 {
			ab.maxPly = plies
		}
	}
}

func WithoutCache() ABOption {
	return func(ab *AlphaBeta) {
		ab.cache = nil
	}
}

func WithABMetrics() ABOption {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(evaluate game.Evaluate, options ...ABOption) *AlphaBeta {
	if evaluate == nil {
		panic("alpha-beta needs an evaluation function")
	}
	ab := &AlphaBeta{ // Default values
		evaluate:      evaluate,
		maxDepth:      DefaultMaxDepth,
		safety:        DefaultSafetyFactor,
		orderingDepth: DefaultOrderingDepth,
		maxPly:        DefaultMaxPly,
		depth:         NewBranchingDepth(),
		orderer:       NewMoveOrderer(evaluate),
		cache:         NewTranspositionCache(),
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) ChooseMove(state game.State, player game.Player, budget time.Duration) (game.Move, bool) {
	ab.begin(budget)
	defer ab.complete()

	if state.Result().Decided() {
		return game.Pass, false
	}
	moves := state.LegalMoves(player)
	if len(moves) == 0 {
		return game.Pass, false
	}

	best, bestScore := moves[0], -infinity
	for i, move := range moves {
		// Every root move gets a full window; once time is up the best
		// scored move so far is kept.
		if i > 0 && ab.timeUp() {
			break
		}
		score := ab.child(state, move, player, ab.maxDepth-1, -infinity, infinity, 0, player)
		if score > bestScore {
			best, bestScore = move, score
		}
	}

	ab.metrics.SetScore(bestScore)
	log.Debug().
		Str("strategy", "alphabeta").
		Stringer("move", best).
		Int("score", bestScore).
		Int("depth", ab.maxDepth).
		Dur("elapsed", time.Since(ab.start)).
		Bool("timed_out", ab.expired).
		Int("cache", ab.CacheLen()).
		Msg("search completed")
	return best, true
}

// Value returns the minimax value of state for player searched to depth,
// without a time limit.
func (ab *AlphaBeta) Value(state game.State, player game.Player, depth int) int {
	ab.begin(0)
	defer ab.complete()
	return ab.search(state, depth, -infinity, infinity, 0, player, player)
}

func (ab *AlphaBeta) Observe(game.Move) {}

func (ab *AlphaBeta) Reset() {
	if ab.cache != nil {
		ab.cache.Clear()
	}
}

func (ab *AlphaBeta) LastMetric() metrics.SearchMetric {
	return ab.last
}

// CacheLen reports the number of cached nodes, 0 without a cache.
func (ab *AlphaBeta) CacheLen() int {
	if ab.cache == nil {
		return 0
	}
	return ab.cache.Len()
}

func (ab *AlphaBeta) begin(budget time.Duration) {
	ab.start = time.Now()
	ab.limit = 0
	if budget > 0 {
		ab.limit = time.Duration(float64(budget) * ab.safety)
	}
	ab.expired = false
	ab.metrics.Start("alphabeta", budget, ab.maxDepth)
}

func (ab *AlphaBeta) complete() {
	ab.last = ab.metrics.Complete()
}

func (ab *AlphaBeta) timeUp() bool {
	if ab.expired {
		return true
	}
	if ab.limit > 0 && time.Since(ab.start) > ab.limit {
		ab.expired = true
		ab.metrics.SetTimedOut()
	}
	return ab.expired
}

func (ab *AlphaBeta) search(state game.State, depth, alpha, beta, ply int, current, perspective game.Player) int {
	if ab.timeUp() {
		return ab.evaluate(state, perspective)
	}
	ab.metrics.AddNode()

	key := CacheKey{Hash: state.Hash(), Current: current, Perspective: perspective}
	if ab.cache != nil {
		if value, ok := ab.cache.Get(key, depth); ok {
			ab.metrics.AddCacheHit()
			return value
		}
	}

	if depth <= 0 || ply >= ab.maxPly || state.Result().Decided() {
		value := ab.evaluate(state, perspective)
		ab.store(key, depth, value)
		return value
	}

	moves := state.LegalMoves(current)
	nominal := depth
	depth = ab.depth.NextDepth(depth, len(moves))

	if len(moves) == 0 {
		return ab.child(state, game.Pass, current, depth-1, alpha, beta, ply, perspective)
	}

	maximizing := current == perspective
	if depth >= ab.orderingDepth {
		moves = ab.orderer.Order(moves, state, current, perspective, maximizing)
	}

	var value int
	if maximizing {
		value = -infinity
		for _, move := range moves {
			value = max(value, ab.child(state, move, current, depth-1, alpha, beta, ply, perspective))
			alpha = max(alpha, value)
			if beta <= alpha {
				ab.metrics.AddCutoff()
				break
			}
		}
	} else {
		value = infinity
		for _, move := range moves {
			value = min(value, ab.child(state, move, current, depth-1, alpha, beta, ply, perspective))
			beta = min(beta, value)
			if beta <= alpha {
				ab.metrics.AddCutoff()
				break
			}
		}
	}

	ab.store(key, nominal, value)
	return value
}

// child plays move for player, searches the reply and takes the move back.
func (ab *AlphaBeta) child(state game.State, move game.Move, player game.Player, depth, alpha, beta, ply int, perspective game.Player) int {
	token := state.Apply(move, player)
	defer state.Undo(token)
	return ab.search(state, depth, alpha, beta, ply+1, player.Opponent(), perspective)
}

// store skips values computed after the deadline since they are provisional.
func (ab *AlphaBeta) store(key CacheKey, depth, value int) {
	if ab.cache != nil && !ab.expired {
		ab.cache.Put(key, depth, value)
	}
}
