package game

import (
	"errors"
	"fmt"
)

// StateHash identifies a position (occupant layout + phase + side to move)
// regardless of the move order that produced it.
type StateHash uint64

// Player identifies a side. NoPlayer doubles as "no winner yet".
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Color returns the square color the player's pawns live on.
func (p Player) Color() Color {
	if p == Player2 {
		return Dark
	}
	return Light
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

var (
	// ErrInvalidAction is returned for any illegal placement or move.
	// The state it was applied to is left untouched.
	ErrInvalidAction = errors.New("invalid action")

	// ErrWrongPhase is an ErrInvalidAction for an action of the wrong kind
	// for the current phase.
	ErrWrongPhase = fmt.Errorf("%w: wrong phase", ErrInvalidAction)

	// ErrNoLegalActions marks a stalemate: the side to move has no legal
	// action but no winner was detected.
	ErrNoLegalActions = errors.New("no legal actions")
)

// State is the position interface the searcher operates on. Operations on a
// State always return a new copy; the receiver is never mutated.
type State interface {
	Player() Player
	LegalActions() []Action
	Play(Action) (State, error)
	Hash() StateHash
	Winner() Player
}

// Evaluate scores a state between 0 and 1 indicating how favorable the
// position is to the side to move (0.5 is neutral, 1 is a won position).
type Evaluate func(State) float64
