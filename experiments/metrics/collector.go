package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy     string
	Budget       time.Duration
	Duration     time.Duration
	Nodes        int // alpha-beta nodes visited
	CacheHits    int
	Cutoffs      int
	Depth        int // nominal root depth
	TimedOut     bool
	Score        int
	Episodes     int // MCTS simulations
	FullPlayouts int // rollouts that reached a terminal state
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player int
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(strategy string, budget time.Duration, depth int)
	SetTreeReset(value bool)
	SetTimedOut()
	SetScore(score int)
	AddNode()
	AddCacheHit()
	AddCutoff()
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	strategy     string
	budget       time.Duration
	depth        int
	startTime    time.Time
	score        int
	nodes        atomic.Int32
	cacheHits    atomic.Int32
	cutoffs      atomic.Int32
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	timedOut     atomic.Bool
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(strategy string, budget time.Duration, depth int) {
	m.strategy = strategy
	m.budget = budget
	m.depth = depth
	m.startTime = time.Now()
	m.score = 0
	m.nodes.Store(0)
	m.cacheHits.Store(0)
	m.cutoffs.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) SetScore(score int) {
	m.score = score
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:     m.strategy,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Nodes:        int(m.nodes.Load()),
		CacheHits:    int(m.cacheHits.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		Depth:        m.depth,
		TimedOut:     m.timedOut.Load(),
		Score:        m.score,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, budget time.Duration, depth int) {}
func (m *dummyCollector) SetTreeReset(value bool)                                {}
func (m *dummyCollector) SetTimedOut()                                           {}
func (m *dummyCollector) SetScore(score int)                                     {}
func (m *dummyCollector) AddNode()                                               {}
func (m *dummyCollector) AddCacheHit()                                           {}
func (m *dummyCollector) AddCutoff()                                             {}
func (m *dummyCollector) AddEpisode()                                            {}
func (m *dummyCollector) AddFullPlayout()                                        {}
func (m *dummyCollector) Complete() SearchMetric                                 { return SearchMetric{} }
