package domain

import (
	"context"
)

type Side byte

const (
	Human = Side(iota)
	Opponent
)

func (s Side) String() string {
	if s == Opponent {
		return "opponent"
	}
	return "human"
}

func (s Side) Other() Side {
	if s == Human {
		return Opponent
	}
	return Human
}

type MatchState byte

const (
	HumanTurn = MatchState(iota)
	OpponentTurn
	HumanWon
	OpponentWon
)

func (s MatchState) String() string {
	switch s {
	case OpponentTurn:
		return "opponent turn"
	case HumanWon:
		return "human won"
	case OpponentWon:
		return "opponent won"
	default:
		return "human turn"
	}
}

func (s MatchState) IsTerminal() bool {
	return s == HumanWon || s == OpponentWon
}

// Turn returns the side allowed to attack; ok is false once the match is over.
func (s MatchState) Turn() (side Side, ok bool) {
	switch s {
	case HumanTurn:
		return Human, true
	case OpponentTurn:
		return Opponent, true
	default:
		return 0, false
	}
}

// Report is what a match hands back after every resolved attack.
type Report struct {
	Attacker Side
	Shot     Shot
	State    MatchState
}

func (r Report) Finished() bool {
	return r.State.IsTerminal()
}

// Random is the source of randomness for fleet placement and the opponent's hunt phase.
type Random interface {
	Intn(n int) int
}

type Match interface {
	Start() error
	Attack(c Coord) (Report, error)
	OpponentMove() (Report, error)
	Reset() error
	State() MatchState
	HumanBoard() *Board
}

type GameUseCase interface {
	Play(ctx context.Context, player Player, match Match) error
}
