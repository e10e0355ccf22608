package match

import (
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Planner interface {
	Fill(board *domain.Board) error
}

type Strategy interface {
	Attack(board *domain.Board) (domain.Shot, error)
	Reset()
}

// Match binds the two boards and the opponent strategy and decides whose turn it is.
// It is not safe for concurrent use.
type Match struct {
	planner  Planner
	strategy Strategy
	human    *domain.Board
	opponent *domain.Board
	state    domain.MatchState
	logger   *zap.Logger
}

func New(planner Planner, strategy Strategy, logger *zap.Logger) *Match {
	return &Match{
		planner:  planner,
		strategy: strategy,
		state:    domain.HumanTurn,
		logger:   logger,
	}
}

// Start places both fleets on fresh boards and hands the first turn to the human.
func (m *Match) Start() error {
	human, opponent := domain.NewBoard(), domain.NewBoard()
	if err := m.planner.Fill(human); err != nil {
		return errors.WithMessage(err, "place human fleet")
	}
	if err := m.planner.Fill(opponent); err != nil {
		return errors.WithMessage(err, "place opponent fleet")
	}
	m.human, m.opponent = human, opponent
	m.strategy.Reset()
	m.state = domain.HumanTurn
	return nil
}

func (m *Match) Reset() error {
	m.human, m.opponent = nil, nil
	if err := m.Start(); err != nil {
		return errors.WithMessage(err, "restart match")
	}
	m.logger.Info("match reset")
	return nil
}

func (m *Match) State() domain.MatchState {
	return m.state
}

func (m *Match) Winner() (domain.Side, bool) {
	switch m.state {
	case domain.HumanWon:
		return domain.Human, true
	case domain.OpponentWon:
		return domain.Opponent, true
	default:
		return 0, false
	}
}

func (m *Match) HumanBoard() *domain.Board {
	return m.human
}

func (m *Match) OpponentBoard() *domain.Board {
	return m.opponent
}

// Attack resolves the human's shot at c against the opponent's board.
func (m *Match) Attack(c domain.Coord) (domain.Report, error) {
	if err := m.checkTurn(domain.Human); err != nil {
		return domain.Report{}, err
	}
	shot, err := m.opponent.ReceiveAttack(c)
	if err != nil {
		return domain.Report{}, errors.WithMessage(err, "human attack")
	}
	return m.resolve(domain.Human, shot, m.opponent), nil
}

// OpponentMove lets the strategy fire a single shot at the human's board.
func (m *Match) OpponentMove() (domain.Report, error) {
	if err := m.checkTurn(domain.Opponent); err != nil {
		return domain.Report{}, err
	}
	shot, err := m.strategy.Attack(m.human)
	if err != nil {
		return domain.Report{}, errors.WithMessage(err, "opponent attack")
	}
	return m.resolve(domain.Opponent, shot, m.human), nil
}

func (m *Match) checkTurn(side domain.Side) error {
	if m.human == nil || m.opponent == nil {
		return errors.WithMessage(domain.ErrInvalidState, "match is not started")
	}
	turn, ok := m.state.Turn()
	if !ok {
		return errors.WithMessagef(domain.ErrInvalidState, "match is over: %s", m.state)
	}
	if turn != side {
		return errors.WithMessagef(domain.ErrInvalidState, "it is not the %s's turn", side)
	}
	return nil
}

func (m *Match) resolve(attacker domain.Side, shot domain.Shot, defender *domain.Board) domain.Report {
	switch {
	case defender.AllShipsSunk():
		m.state = wonBy(attacker)
	case shot.Outcome == domain.OutcomeMiss:
		m.state = turnOf(attacker.Other())
	}
	m.logger.Debug("attack resolved",
		zap.Stringer("attacker", attacker),
		zap.Stringer("coord", shot.Coord),
		zap.Stringer("outcome", shot.Outcome),
		zap.Stringer("state", m.state),
	)
	return domain.Report{Attacker: attacker, Shot: shot, State: m.state}
}

func wonBy(side domain.Side) domain.MatchState {
	if side == domain.Opponent {
		return domain.OpponentWon
	}
	return domain.HumanWon
}

func turnOf(side domain.Side) domain.MatchState {
	if side == domain.Opponent {
		return domain.OpponentTurn
	}
	return domain.HumanTurn
}
