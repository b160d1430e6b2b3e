package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hortensjaa/AI-course/communication"
	"github.com/Hortensjaa/AI-course/experiments"
	"github.com/Hortensjaa/AI-course/meta"
	"github.com/Hortensjaa/AI-course/player"
	"github.com/Hortensjaa/AI-course/variants"
)

const usage = `usage: %[1]s <command> [flags]

commands:
  play   answer a referee on stdin/stdout
  arena  play a match between two agents

run "%[1]s <command> -h" for the flags of a command
`

func main() {
	// stdout belongs to the referee protocol
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "arena":
		err = runArena(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

type common struct {
	config string
	game   string
	level  string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "YAML configuration file")
	fs.StringVar(&c.game, "game", "", fmt.Sprintf("game to play, one of %v", variants.Names()))
	fs.StringVar(&c.level, "log", "", "log level, overrides the configuration")
}

// load reads the configuration, applies the flag overrides and sets up
// logging.
func (c *common) load() (meta.Config, variants.Variant, error) {
	cfg := meta.Default()
	if c.config != "" {
		var err error
		if cfg, err = meta.Load(c.config); err != nil {
			return cfg, variants.Variant{}, err
		}
	}
	if c.game != "" {
		cfg.Game = c.game
	}
	if c.level != "" {
		cfg.LogLevel = c.level
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, variants.Variant{}, errors.Wrap(err, "invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	v, err := variants.Lookup(cfg.Game)
	return cfg, v, err
}

func seedOr(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var c common
	c.register(fs)
	agent := fs.String("agent", "", "agent spec, e.g. ab:max_depth=6 or mcts:episodes=300")
	fs.Parse(args)

	cfg, v, err := c.load()
	if err != nil {
		return err
	}
	spec, err := player.ParseAgentSpec(*agent, player.SpecFromConfig(cfg))
	if err != nil {
		return err
	}
	s, err := spec.Build(v, seedOr(cfg.MCTS.Seed))
	if err != nil {
		return err
	}

	log.Info().Str("game", v.Name).Stringer("agent", spec).Msg("waiting for the referee")
	return player.NewPlayer(v, s, communication.NewConn(os.Stdin, os.Stdout)).Play()
}

func runArena(args []string) error {
	fs := flag.NewFlagSet("arena", flag.ExitOnError)
	var c common
	c.register(fs)
	a := fs.String("a", "ab", "spec of the first agent")
	b := fs.String("b", "mcts", "spec of the second agent")
	name := fs.String("name", "arena", "experiment name")
	games := fs.Int("games", 0, "number of games, overrides the configuration")
	parallel := fs.Int("parallel", 0, "games played at once, overrides the configuration")
	budget := fs.Duration("budget", 0, "time per move, overrides the configuration")
	out := fs.String("out", "", "results directory, overrides the configuration")
	fs.Parse(args)

	cfg, v, err := c.load()
	if err != nil {
		return err
	}
	arena := experiments.Arena{
		Name:     *name,
		Variant:  v,
		Games:    cfg.Arena.Games,
		Parallel: cfg.Arena.Parallel,
		MaxPlies: cfg.Arena.MaxPlies,
		Budget:   cfg.Arena.MoveTime,
		Seed:     seedOr(cfg.Arena.Seed),
		Out:      cfg.Arena.Out,
	}
	for i, raw := range []string{*a, *b} {
		if arena.Agents[i], err = player.ParseAgentSpec(raw, player.SpecFromConfig(cfg)); err != nil {
			return err
		}
	}
	if *games > 0 {
		arena.Games = *games
	}
	if *parallel > 0 {
		arena.Parallel = *parallel
	}
	if *budget > 0 {
		arena.Budget = *budget
	}
	if *out != "" {
		arena.Out = *out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	summary, err := arena.Run(ctx)
	if err != nil {
		return err
	}
	experiments.PrintSummary(os.Stdout, arena, summary)
	return nil
}
