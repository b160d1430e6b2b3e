package player

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/Hortensjaa/AI-course/meta"
	"github.com/Hortensjaa/AI-course/searcher"
	"github.com/Hortensjaa/AI-course/variants"
)

// AgentSpec describes how to build a searcher. Zero parameters keep the
// variant's or the searcher's defaults.
type AgentSpec struct {
	Strategy  string
	AlphaBeta meta.AlphaBetaConfig
	MCTS      meta.MCTSConfig
	raw       string
}

func SpecFromConfig(cfg meta.Config) AgentSpec {
	return AgentSpec{Strategy: cfg.Strategy, AlphaBeta: cfg.AlphaBeta, MCTS: cfg.MCTS}
}

// ParseAgentSpec reads "strategy:key=value,..." over base, e.g.
// "ab:max_depth=6,no_cache" or "mcts:episodes=300,seed=7". An empty string
// returns base unchanged.
func ParseAgentSpec(spec string, base AgentSpec) (AgentSpec, error) {
	s := base
	s.raw = spec
	if spec == "" {
		return s, nil
	}

	strategy, config, _ := strings.Cut(spec, ":")
	switch strategy {
	case variants.AlphaBeta, variants.MCTS:
		s.Strategy = strategy
	default:
		return s, errors.Errorf("unknown strategy %q", strategy)
	}

	params := splitConfigString(config)
	var err error
	switch s.Strategy {
	case variants.AlphaBeta:
		err = s.parseAlphaBeta(params)
	case variants.MCTS:
		err = s.parseMCTS(params)
	}
	if err != nil {
		return s, errors.WithMessagef(err, "failed to parse agent %q", spec)
	}
	if len(params) > 0 {
		return s, errors.Errorf("unknown %s parameters %v in %q", s.Strategy, lo.Keys(params), spec)
	}
	return s, nil
}

func (s *AgentSpec) parseAlphaBeta(params map[string]string) (err error) {
	ab := &s.AlphaBeta
	if ab.MaxDepth, err = popParamOr(params, "max_depth", ab.MaxDepth); err != nil {
		return err
	}
	if ab.OrderingDepth, err = popParamOr(params, "ordering_depth", ab.OrderingDepth); err != nil {
		return err
	}
	if ab.SafetyFactor, err = popParamOr(params, "safety", ab.SafetyFactor); err != nil {
		return err
	}
	if ab.FixedDepth, err = popParamOr(params, "fixed_depth", ab.FixedDepth); err != nil {
		return err
	}
	ab.NoCache, err = popParamOr(params, "no_cache", ab.NoCache)
	return err
}

func (s *AgentSpec) parseMCTS(params map[string]string) (err error) {
	m := &s.MCTS
	if m.Episodes, err = popParamOr(params, "episodes", m.Episodes); err != nil {
		return err
	}
	if m.Duration, err = popParamOr(params, "duration", m.Duration); err != nil {
		return err
	}
	if m.Cutoff, err = popParamOr(params, "cutoff", m.Cutoff); err != nil {
		return err
	}
	if m.Exploration, err = popParamOr(params, "c", m.Exploration); err != nil {
		return err
	}
	if _, ok := params["draw"]; ok {
		draw, err := popParamOr(params, "draw", 0.0)
		if err != nil {
			return err
		}
		m.DrawScore = &draw
	}
	if m.Seed, err = popParamOr(params, "seed", m.Seed); err != nil {
		return err
	}
	if rollout, ok := params["rollout"]; ok {
		m.Rollout = rollout
		delete(params, "rollout")
	}
	return nil
}

func (s AgentSpec) String() string {
	if s.raw != "" {
		return s.raw
	}
	if s.Strategy == "" {
		return "default"
	}
	return s.Strategy
}

// Build returns a fresh searcher for one game of v. seed is used unless the
// spec pins its own.
func (s AgentSpec) Build(v variants.Variant, seed uint64) (searcher.Searcher, error) {
	strategy := s.Strategy
	if strategy == "" {
		strategy = v.Strategy
	}
	switch strategy {
	case variants.AlphaBeta:
		return s.buildAlphaBeta(v), nil
	case variants.MCTS:
		return s.buildMCTS(v, seed)
	default:
		return nil, errors.Errorf("unknown strategy %q", strategy)
	}
}

func (s AgentSpec) buildAlphaBeta(v variants.Variant) *searcher.AlphaBeta {
	ab := s.AlphaBeta
	depth := v.Depth
	if ab.MaxDepth > 0 {
		depth = ab.MaxDepth
	}
	options := []searcher.ABOption{searcher.WithMaxDepth(depth), searcher.WithABMetrics()}
	if ab.OrderingDepth > 0 {
		options = append(options, searcher.WithOrderingDepth(ab.OrderingDepth))
	}
	if ab.SafetyFactor > 0 {
		options = append(options, searcher.WithSafetyFactor(ab.SafetyFactor))
	}
	if ab.FixedDepth {
		options = append(options, searcher.WithDepthController(searcher.FixedDepth{}))
	}
	if ab.NoCache {
		options = append(options, searcher.WithoutCache())
	}
	return searcher.NewAlphaBeta(v.Evaluate, options...)
}

func (s AgentSpec) buildMCTS(v variants.Variant, seed uint64) (*searcher.MCTS, error) {
	m := s.MCTS
	if m.Seed != 0 {
		seed = m.Seed
	}
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithEvaluationFn(v.Evaluate),
		searcher.WithMetrics(),
	}

	if m.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(m.Episodes))
	}
	if m.Duration > 0 || m.Episodes <= 0 {
		options = append(options, searcher.WithDuration(lo.Ternary(m.Duration > 0, m.Duration, meta.MOVE_TIME)))
	}
	if m.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(m.Cutoff))
	}
	if m.Exploration > 0 {
		options = append(options, searcher.WithExploration(m.Exploration))
	}
	if m.DrawScore != nil {
		options = append(options, searcher.WithDrawScore(*m.DrawScore))
	}

	switch m.Rollout {
	case "":
		if v.Rollout != nil {
			options = append(options, searcher.WithRollout(v.Rollout))
		}
	case "random":
		options = append(options, searcher.WithRollout(searcher.RandomRollout))
	case "greedy":
		if v.Rollout == nil {
			return nil, errors.Errorf("%s has no greedy rollout", v.Name)
		}
		options = append(options, searcher.WithRollout(v.Rollout))
	case "lookahead":
		options = append(options, searcher.WithRollout(searcher.LookaheadRollout(v.Evaluate)))
	default:
		return nil, errors.Errorf("unknown rollout %q", m.Rollout)
	}
	return searcher.NewMCTS(options...), nil
}

// splitConfigString splits "k1=v1,k2" into a map, keys without a value map
// to "".
func splitConfigString(config string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(config, ",") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[key] = value
	}
	return params
}

// popParamOr parses and removes key from params, returning defaultValue when
// it is absent. A bool key without a value is true.
func popParamOr[T bool | int | uint64 | float64 | time.Duration](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	delete(params, key)

	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case bool:
		parsed, err = true, nil
		if value != "" {
			parsed, err = strconv.ParseBool(value)
		}
	case int:
		parsed, err = strconv.Atoi(value)
	case uint64:
		parsed, err = strconv.ParseUint(value, 10, 64)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case time.Duration:
		parsed, err = time.ParseDuration(value)
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q", key, value)
	}
	return parsed.(T), nil
}
