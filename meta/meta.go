// meta/meta.go
package meta

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GO_ROUTINES defines the number of arena games played at once.
const GO_ROUTINES = 8

// WITH_CUTOFF bounds MCTS rollouts in plies.
const WITH_CUTOFF = 100

// MAX_TURNS caps the plies of a local game.
const MAX_TURNS = 300

// GAMES defines the number of arena games per match up.
const GAMES = 30

// MOVE_TIME is the per-move budget of local games.
const MOVE_TIME = 100 * time.Millisecond

// Config is the YAML configuration of the CLI. Zero search parameters keep
// the searcher defaults.
type Config struct {
	Game      string          `yaml:"game"`
	Strategy  string          `yaml:"strategy"` // ab or mcts, the game default when empty
	LogLevel  string          `yaml:"log_level"`
	AlphaBeta AlphaBetaConfig `yaml:"alphabeta"`
	MCTS      MCTSConfig      `yaml:"mcts"`
	Arena     ArenaConfig     `yaml:"arena"`
}

type AlphaBetaConfig struct {
	MaxDepth      int     `yaml:"max_depth"`
	OrderingDepth int     `yaml:"ordering_depth"`
	SafetyFactor  float64 `yaml:"safety_factor"`
	FixedDepth    bool    `yaml:"fixed_depth"`
	NoCache       bool    `yaml:"no_cache"`
}

type MCTSConfig struct {
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Cutoff      int           `yaml:"cutoff"`
	Exploration float64       `yaml:"exploration"`
	DrawScore   *float64      `yaml:"draw_score"` // nil keeps the searcher default
	Rollout     string        `yaml:"rollout"` // random, greedy or lookahead
	Seed        uint64        `yaml:"seed"`
}

type ArenaConfig struct {
	Games    int           `yaml:"games"`
	Parallel int           `yaml:"parallel"`
	MaxPlies int           `yaml:"max_plies"`
	MoveTime time.Duration `yaml:"move_time"`
	Out      string        `yaml:"out"`
	Seed     uint64        `yaml:"seed"`
}

func Default() Config {
	drawScore := 0.5
	return Config{
		Game:     "reversi",
		LogLevel: "info",
		MCTS: MCTSConfig{
			Cutoff:      WITH_CUTOFF,
			Exploration: 1.44,
			DrawScore:   &drawScore,
		},
		Arena: ArenaConfig{
			Games:    GAMES,
			Parallel: GO_ROUTINES,
			MaxPlies: MAX_TURNS,
			MoveTime: MOVE_TIME,
			Out:      "results",
			Seed:     1,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, errors.WithMessagef(cfg.Validate(), "invalid config %s", path)
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	switch c.Strategy {
	case "", "ab", "mcts":
	default:
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}
	switch c.MCTS.Rollout {
	case "", "random", "greedy", "lookahead":
	default:
		return errors.Errorf("unknown rollout %q", c.MCTS.Rollout)
	}
	switch {
	case c.AlphaBeta.MaxDepth < 0:
		return errors.Errorf("alphabeta.max_depth must not be negative, got %d", c.AlphaBeta.MaxDepth)
	case c.AlphaBeta.SafetyFactor < 0 || c.AlphaBeta.SafetyFactor > 1:
		return errors.Errorf("alphabeta.safety_factor must be within [0, 1], got %g", c.AlphaBeta.SafetyFactor)
	case c.MCTS.Exploration < 0:
		return errors.Errorf("mcts.exploration must not be negative, got %g", c.MCTS.Exploration)
	case c.MCTS.DrawScore != nil && (*c.MCTS.DrawScore < 0 || *c.MCTS.DrawScore > 1):
		return errors.Errorf("mcts.draw_score must be within [0, 1], got %g", *c.MCTS.DrawScore)
	case c.Arena.Games < 1:
		return errors.Errorf("arena.games must be positive, got %d", c.Arena.Games)
	case c.Arena.Parallel < 1:
		return errors.Errorf("arena.parallel must be positive, got %d", c.Arena.Parallel)
	}
	return nil
}
