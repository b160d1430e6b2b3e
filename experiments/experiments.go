package experiments

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Hortensjaa/AI-course/engine"
	"github.com/Hortensjaa/AI-course/experiments/metrics"
	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/gamemaster"
	"github.com/Hortensjaa/AI-course/player"
	"github.com/Hortensjaa/AI-course/utils"
	"github.com/Hortensjaa/AI-course/variants"
)

// Arena plays a match between two agents. Colours alternate, agent A starts
// the even games.
type Arena struct {
	Name     string
	Variant  variants.Variant
	Agents   [2]player.AgentSpec
	Games    int
	Parallel int
	MaxPlies int
	Budget   time.Duration // per move
	Seed     uint64
	Out      string // results root, nothing is written when empty
}

// Summary tallies a match from the agents' point of view.
type Summary struct {
	Games      int
	Wins       [2]int
	Draws      int
	Unfinished int
	MeanNodes  [2]float64
	MeanSearch [2]time.Duration
	Dir        string
}

type played struct {
	agents [2]int // agent index playing First and Second
	result game.Result
	game   metrics.GameMetric
	moves  []metrics.MoveMetric
}

// Run plays the match with up to Parallel games at once. Every game owns
// its states and searchers.
func (a Arena) Run(ctx context.Context) (Summary, error) {
	if a.Games < 1 {
		return Summary{}, errors.Errorf("arena needs at least one game, got %d", a.Games)
	}
	log.Info().Msgf("starting %s experiment: %v vs %v on %s, %d games", a.Name, a.Agents[0], a.Agents[1], a.Variant.Name, a.Games)

	results := make([]played, a.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Parallel, 1))
	for i := range results {
		i := i
		g.Go(func() error {
			r, err := a.play(ctx, i)
			if err != nil {
				return errors.WithMessagef(err, "game %d", i+1)
			}
			results[i] = r
			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, a.Games, r.game.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	log.Info().Msgf("completed %s experiment", a.Name)

	summary := summarize(results)
	if a.Out != "" {
		dir, err := a.store(results)
		if err != nil {
			return summary, err
		}
		summary.Dir = dir
	}
	return summary, nil
}

func (a Arena) play(ctx context.Context, i int) (played, error) {
	order := [2]int{0, 1}
	if i%2 == 1 {
		order = [2]int{1, 0}
	}

	var agents [2]engine.Agent
	for side, idx := range order {
		s, err := a.Agents[idx].Build(a.Variant, a.Seed+uint64(2*i+idx))
		if err != nil {
			return played{}, err
		}
		agents[side] = engine.Agent{Name: fmt.Sprintf("agent%d", idx+1), Searcher: s, Budget: a.Budget}
	}

	e := engine.New(gamemaster.New(a.Variant.New()), agents, a.MaxPlies)
	result, gm, moves, err := e.Run(ctx)
	return played{agents: order, result: result, game: gm, moves: moves}, err
}

func summarize(results []played) Summary {
	s := Summary{Games: len(results)}
	var nodes [2][]int
	var searches [2][]time.Duration
	for _, r := range results {
		for _, mm := range r.moves {
			idx := r.agents[mm.Player]
			nodes[idx] = append(nodes[idx], mm.Nodes)
			searches[idx] = append(searches[idx], mm.Duration)
		}
		winner, ok := r.result.Winner()
		switch {
		case ok:
			s.Wins[r.agents[winner]]++
		case r.result == game.Draw:
			s.Draws++
		default:
			s.Unfinished++
		}
	}
	for idx := range s.MeanNodes {
		s.MeanNodes[idx] = utils.Mean(nodes[idx])
		s.MeanSearch[idx] = utils.MeanDuration(searches[idx])
	}
	return s
}

func (a Arena) store(results []played) (string, error) {
	writer, err := metrics.NewWriter(a.Out, a.Name)
	if err != nil {
		return "", err
	}

	configs := []metrics.AgentConfig{
		{ID: 1, Name: "agent1", Spec: a.Agents[0].String()},
		{ID: 2, Name: "agent2", Spec: a.Agents[1].String()},
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	gameRecords := lo.Map(results, func(r played, i int) metrics.GameRecord {
		return metrics.NewGameRecord(int32(i+1), a.Variant.Name, int32(r.agents[0]+1), int32(r.agents[1]+1), r.game)
	})
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	var moveRecords []metrics.MoveRecord
	for i, r := range results {
		for _, mm := range r.moves {
			moveRecords = append(moveRecords, metrics.NewMoveRecord(int32(i+1), int32(r.agents[mm.Player]+1), mm))
		}
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// PrintSummary writes a coloured match report to w. Colours are dropped when
// w is not a terminal.
func PrintSummary(w io.Writer, a Arena, s Summary) {
	out := termenv.NewOutput(w)
	header := out.String(fmt.Sprintf("%s: %s, %d games", a.Name, a.Variant.Name, s.Games)).Bold()
	fmt.Fprintln(w, header)

	for idx, spec := range a.Agents {
		wins := out.String(fmt.Sprintf("%3d wins", s.Wins[idx])).Foreground(out.Color("2"))
		losses := out.String(fmt.Sprintf("%3d losses", s.Wins[1-idx])).Foreground(out.Color("1"))
		fmt.Fprintf(w, "  agent%d %-32s %s %s  nodes/move %10.1f  search %v\n",
			idx+1, spec, wins, losses, s.MeanNodes[idx], s.MeanSearch[idx].Round(time.Microsecond))
	}
	fmt.Fprintf(w, "  %s\n", out.String(fmt.Sprintf("%d draws, %d unfinished", s.Draws, s.Unfinished)).Faint())
	if s.Dir != "" {
		fmt.Fprintf(w, "  results in %s\n", s.Dir)
	}
}
