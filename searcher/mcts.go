package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/Hortensjaa/AI-course/experiments/metrics"
	"github.com/Hortensjaa/AI-course/game"
)

type Option func(mcts *MCTS)

// MCTS is a single-threaded UCT search whose tree survives between moves of
// the same game.
type MCTS struct {
	duration  time.Duration
	episodes  int
	cutoff    int
	cSquared  float64
	drawScore float64
	evaluate  game.Evaluate
	rollout   RolloutPolicy
	rng       *rand.Rand
	root      *node
	metrics   metrics.Collector
	last      metrics.SearchMetric
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithExploration sets the constant C of the UCT formula.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.cSquared = c * c
		}
	}
}

func WithDrawScore(score float64) Option {
	return func(m *MCTS) {
		if score >= Loss && score <= Win {
			m.drawScore = score
		}
	}
}

// WithEvaluationFn scores rollouts stopped at the cutoff by the sign of the
// evaluation. Without it such rollouts count as draws.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRollout(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.rollout = policy
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:    DefaultCutoff,
		cSquared:  DefaultExploration * DefaultExploration,
		drawScore: DefaultDrawScore,
		rollout:   RandomRollout,
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

func (m *MCTS) ChooseMove(state game.State, player game.Player, budget time.Duration) (game.Move, bool) {
	m.metrics.Start("mcts", budget, 0)
	defer func() {
		m.last = m.metrics.Complete()
	}()

	m.findRoot(state, player)
	if m.root.isTerminal() || m.root.mustPass() {
		return game.Pass, false
	}

	limit := m.duration
	if budget > 0 {
		limit = time.Duration(float64(budget) * DefaultSafetyFactor)
	}
	start := time.Now()
	for episodes := 0; ; {
		m.simulate(state)
		m.metrics.AddEpisode()
		episodes++
		if m.episodes > 0 && episodes >= m.episodes {
			break
		}
		if limit > 0 && time.Since(start) >= limit {
			break
		}
	}

	move := m.root.findBestMove()
	log.Debug().
		Str("strategy", "mcts").
		Stringer("move", move).
		Int("root_visits", m.root.visits).
		Int("children", len(m.root.children)).
		Dur("elapsed", time.Since(start)).
		Msg("search completed")
	return move, true
}

// Observe moves the root to the child reached by move. An unexpanded move
// drops the tree.
func (m *MCTS) Observe(move game.Move) {
	if m.root == nil {
		return
	}
	m.root = m.root.child(move)
	if m.root != nil {
		m.root.parent = nil
	}
}

func (m *MCTS) Reset() {
	m.root = nil
}

func (m *MCTS) LastMetric() metrics.SearchMetric {
	return m.last
}

// Root returns the visit count of the current root and of each child, in
// expansion order.
func (m *MCTS) Root() (visits int, moves []game.Move, childVisits []int) {
	if m.root == nil {
		return 0, nil, nil
	}
	for _, child := range m.root.children {
		childVisits = append(childVisits, child.visits)
	}
	return m.root.visits, append([]game.Move(nil), m.root.explored...), childVisits
}

func (m *MCTS) findRoot(state game.State, player game.Player) {
	if m.root != nil && m.root.hash == state.Hash() && m.root.toMove() == player {
		m.metrics.SetTreeReset(false)
		return
	}
	if m.root != nil {
		log.Warn().Msgf("root state hash %d does not match state hash %d", m.root.hash, state.Hash())
	}
	m.root = newNode(nil, game.Pass, player.Opponent(), state)
	m.metrics.SetTreeReset(true)
}

func (m *MCTS) simulate(state game.State) {
	state = state.Clone()
	leaf := selectThenExpand(m.root, state, m.cSquared, m.rng)
	result := m.playout(state, leaf.toMove())
	backup(leaf, result, m.drawScore)
}

func selectThenExpand(root *node, state game.State, cSquared float64, rng *rand.Rand) *node {
	parent := root
	child, selected := parent.SelectOrExpand(state, cSquared, rng)
	for selected && child != parent {
		parent = child
		child, selected = parent.SelectOrExpand(state, cSquared, rng)
	}
	return child
}

// playout finishes the game on a throwaway state, or stops at the cutoff and
// judges the position by the sign of its evaluation.
func (m *MCTS) playout(state game.State, player game.Player) game.Result {
	for depth := 0; depth < m.cutoff; depth++ {
		if result := state.Result(); result.Decided() {
			m.metrics.AddFullPlayout()
			return result
		}
		move := game.Pass
		if moves := state.LegalMoves(player); len(moves) > 0 {
			move = m.rollout(state, player, moves, m.rng)
		}
		state.Apply(move, player)
		player = player.Opponent()
	}

	if result := state.Result(); result.Decided() {
		m.metrics.AddFullPlayout()
		return result
	}
	if m.evaluate == nil {
		return game.Draw
	}
	return game.Sign(m.evaluate(state, game.First))
}

func backup(newNode *node, result game.Result, drawScore float64) {
	node := newNode
	for node != nil {
		node = node.Backup(result, drawScore)
	}
}
