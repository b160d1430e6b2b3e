package gamemaster

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Hortensjaa/AI-course/game"
	"github.com/Hortensjaa/AI-course/utils"
)

// ErrGameOver is returned by Play once the game is decided.
var ErrGameOver = errors.New("game is over - no moves allowed")

// Turn is one applied move.
type Turn struct {
	Player game.Player
	Move   game.Move
}

// GameMaster is the authoritative copy of a game. It validates every move
// against the rules before applying it.
type GameMaster struct {
	state   game.State
	history []Turn
}

func New(state game.State) *GameMaster {
	return &GameMaster{state: state}
}

func (gm *GameMaster) ToMove() game.Player {
	return gm.state.ToMove()
}

func (gm *GameMaster) LegalMoves() []game.Move {
	if gm.state.Result().Decided() {
		return nil
	}
	return gm.state.LegalMoves(gm.state.ToMove())
}

// Play applies m for the side to move. Passing is legal only without any
// other move.
func (gm *GameMaster) Play(m game.Move) error {
	if gm.state.Result().Decided() {
		return ErrGameOver
	}

	player := gm.state.ToMove()
	legalMoves := gm.state.LegalMoves(player)
	if m.IsPass() {
		if len(legalMoves) > 0 {
			return fmt.Errorf("illegal pass: %d legal moves available", len(legalMoves))
		}
	} else if utils.FindIndex(legalMoves, m) < 0 {
		return fmt.Errorf("illegal move %v for %v", m, player)
	}

	gm.state.Apply(m, player)
	gm.history = append(gm.history, Turn{Player: player, Move: m})
	log.Debug().Stringer("player", player).Stringer("move", m).Int("ply", len(gm.history)).Msg("move applied")
	return nil
}

// State returns a copy of the current position.
func (gm *GameMaster) State() game.State {
	return gm.state.Clone()
}

func (gm *GameMaster) Result() game.Result {
	return gm.state.Result()
}

func (gm *GameMaster) History() []Turn {
	return append([]Turn(nil), gm.history...)
}
