package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Hortensjaa/AI-course/experiments/metrics"
	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/gamemaster"
	"github.com/Hortensjaa/AI-course/searcher"
)

const MaxMoves = 10000

// Agent is one side of a local game.
type Agent struct {
	Name     string
	Searcher searcher.Searcher
	Budget   time.Duration // per move, 0 for unbounded
}

// Engine plays two agents against each other through a referee.
type Engine struct {
	referee  *gamemaster.GameMaster
	agents   [2]Agent // indexed by game.Player
	maxPlies int
}

func New(referee *gamemaster.GameMaster, agents [2]Agent, maxPlies int) *Engine {
	if maxPlies <= 0 {
		maxPlies = MaxMoves
	}
	for _, a := range agents {
		if a.Searcher == nil {
			panic("agent " + a.Name + " has no searcher")
		}
	}
	return &Engine{referee: referee, agents: agents, maxPlies: maxPlies}
}

// Run plays until the game is decided or maxPlies moves were made, in which
// case the result is NoResult. Every applied move is observed by both agents.
func (e *Engine) Run(ctx context.Context) (game.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	for _, a := range e.agents {
		a.Searcher.Reset()
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.referee.ToMove()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	log.Info().Msgf("%s is starting", e.agents[e.referee.ToMove()].Name)

	for step := 1; !e.referee.Result().Decided() && step <= e.maxPlies; step++ {
		if err := ctx.Err(); err != nil {
			return game.NoResult, gameMetric, moveMetrics, errors.WithMessagef(err, "game stopped at ply %d", step)
		}

		player := e.referee.ToMove()
		agent := e.agents[player]
		move, ok := agent.Searcher.ChooseMove(e.referee.State(), player, agent.Budget)
		if !ok {
			move = game.Pass
		}
		if err := e.referee.Play(move); err != nil {
			return game.NoResult, gameMetric, moveMetrics, errors.Wrapf(err, "%s played an illegal move", agent.Name)
		}
		for _, a := range e.agents {
			a.Searcher.Observe(move)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         move.String(),
			SearchMetric: agent.Searcher.LastMetric(),
		})
	}

	result := e.referee.Result()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.winner(result)

	if result.Decided() {
		log.Info().Msgf("game over after %d moves, winner: %s", gameMetric.TotalMoves, gameMetric.Winner)
	} else {
		log.Info().Msgf("stopped after %d moves (no winner yet)", gameMetric.TotalMoves)
	}
	return result, gameMetric, moveMetrics, nil
}

func (e *Engine) winner(result game.Result) string {
	if winner, ok := result.Winner(); ok {
		return e.agents[winner].Name
	}
	return result.String()
}
