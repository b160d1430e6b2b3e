package player

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Hortensjaa/AI-course/communication"
	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/gamemaster"
	"github.com/Hortensjaa/AI-course/searcher"
	"github.com/Hortensjaa/AI-course/variants"
)

// Player answers a referee over the line protocol. It plays Second until
// the referee says UGO on an empty board.
type Player struct {
	variant  variants.Variant
	searcher searcher.Searcher
	comm     communication.Communicator
	referee  *gamemaster.GameMaster
	me       game.Player
}

func NewPlayer(v variants.Variant, s searcher.Searcher, comm communication.Communicator) *Player {
	return &Player{variant: v, searcher: s, comm: comm}
}

// Play runs games until BYE or the end of the input.
func (p *Player) Play() error {
	if err := p.reset(); err != nil {
		return err
	}
	sessionStart, gameStart := time.Now(), time.Now()
	games := 1

	for {
		cmd, err := p.comm.Receive()
		if errors.Is(err, io.EOF) {
			log.Warn().Msg("referee closed the connection")
			return nil
		}
		if err != nil {
			return err
		}

		switch cmd.Kind {
		case communication.HEDID:
			move, err := p.variant.Notation.Parse(cmd.Move)
			if err != nil {
				return errors.WithMessage(err, "failed to parse opponent move")
			}
			if err := p.referee.Play(move); err != nil {
				return errors.Wrapf(err, "opponent move %v rejected", move)
			}
			p.searcher.Observe(move)
		case communication.ONEMORE:
			log.Info().Int("game", games).Dur("elapsed", time.Since(gameStart)).Msg("game finished")
			games++
			gameStart = time.Now()
			if err := p.reset(); err != nil {
				return err
			}
			continue
		case communication.BYE:
			log.Info().Int("games", games).Dur("elapsed", time.Since(sessionStart)).Msg("session finished")
			return nil
		case communication.UGO:
			if len(p.referee.History()) > 0 {
				return errors.New("UGO received after the game started")
			}
			p.me = game.First
			gameStart = time.Now()
		}

		if err := p.move(cmd.MoveTimeout); err != nil {
			return err
		}
	}
}

func (p *Player) reset() error {
	p.referee = gamemaster.New(p.variant.New())
	p.me = game.Second
	p.searcher.Reset()
	return p.comm.Ready()
}

func (p *Player) move(budget time.Duration) error {
	start := time.Now()
	move, ok := p.searcher.ChooseMove(p.referee.State(), p.me, budget)
	if !ok {
		move = game.Pass
	}
	if err := p.referee.Play(move); err != nil {
		return errors.Wrapf(err, "searcher chose %v", move)
	}
	p.searcher.Observe(move)

	log.Debug().
		Stringer("player", p.me).
		Stringer("move", move).
		Dur("budget", budget).
		Dur("elapsed", time.Since(start)).
		Msg("move sent")
	return p.comm.Send(p.variant.Notation.Format(move))
}
